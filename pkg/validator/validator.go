// Package validator wraps go-playground struct validation together with the
// custom rules the models rely on.
package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// FieldError describes one failed rule on one struct field.
type FieldError struct {
	Field string // struct namespace, e.g. "CreateOrderRequest.CustomerID"
	Rule  string // the tag that failed, e.g. "required"
	Param string // the rule parameter, e.g. "6" for min=6
}

var v = validator.New()

func init() {
	// A zero uuid.UUID passes "required", so foreign-key fields carry their
	// own rule instead.
	v.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		id, ok := fl.Field().Interface().(uuid.UUID)
		return ok && id != uuid.Nil
	})
}

// ValidateStruct checks data against its validate tags. It returns one
// FieldError per failed rule, or nil when everything passes.
func ValidateStruct(data any) []FieldError {
	err := v.Struct(data)
	if err == nil {
		return nil
	}

	var out []FieldError
	for _, fe := range err.(validator.ValidationErrors) {
		out = append(out, FieldError{
			Field: fe.StructNamespace(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}
