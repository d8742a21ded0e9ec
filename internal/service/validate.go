package service

import (
	"go-tailorshop/pkg/apperr"
	"go-tailorshop/pkg/validator"
)

// validateRequest runs struct validation and reports the first failure the
// way the handlers expect: as a 400-mapped validation error.
func validateRequest(data any) error {
	if errs := validator.ValidateStruct(data); len(errs) > 0 {
		first := errs[0]
		return apperr.Validationf("validation failed: field '%s' failed on rule '%s'", first.Field, first.Rule)
	}
	return nil
}
