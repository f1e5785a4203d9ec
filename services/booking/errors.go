package booking

import (
	"errors"
	"fmt"
)

// ValidationError reports bad input. Never retried, surfaced to the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// GatewayError reports a payment provider communication or business failure.
// Retryable for status checks; charge creation is not retried automatically.
type GatewayError struct {
	Provider string
	Message  string
	Err      error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment provider %s: %s", e.Provider, e.Message)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// StoreError reports a record-store failure. Surfaced as-is, not retried.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsGateway reports whether err is a GatewayError.
func IsGateway(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge)
}

// IsStore reports whether err is a StoreError.
func IsStore(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
