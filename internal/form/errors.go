// Package form holds the local draft state and validation for the two
// user-entered mutations: adding a game and recording a play. Validation
// failures stay inside the form (shown inline), never reach the shared
// error channel and never trigger a network call.
package form

import "errors"

// ErrInvalidInput is the marker error for aggregated validation failures.
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// ErrSubmitInFlight rejects re-submission while a prior one is pending.
var ErrSubmitInFlight = errors.New("submission already in flight")

// FieldError describes a single invalid field in a draft.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates FieldError instances and unwraps to
// ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// NewInvalidInputError builds an aggregated validation error, or nil when
// no field errors are present.
func NewInvalidInputError(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	if v, ok := err.(feIface); ok && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}
