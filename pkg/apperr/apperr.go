package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error so handlers can map it to an HTTP status.
type Kind int

const (
	// KindInternal is the fallback for errors this package did not produce.
	KindInternal Kind = iota
	// KindValidation marks malformed or missing input, including bad enum values.
	KindValidation
	// KindNotFound marks an absent entity. Cross-tenant hits report this kind
	// too, so a caller cannot distinguish "not yours" from "does not exist".
	KindNotFound
	// KindConflict marks a uniqueness-constraint violation.
	KindConflict
	// KindState marks an operation that is invalid for the entity's current state.
	KindState
)

// Error is a classified, user-presentable error.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

func Statef(format string, args ...any) *Error {
	return &Error{Kind: KindState, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the classification of err, or KindInternal for plain errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
