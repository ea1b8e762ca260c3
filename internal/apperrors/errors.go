// Package apperrors defines the error taxonomy shared by services, the
// payment gateway client and the HTTP layer: validation failures, missing
// resources and external-gateway failures. All three surface to the caller;
// none are recovered or retried locally.
package apperrors

import "fmt"

// ValidationError reports every violated field of a malformed request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// NotFoundError names the resource type and identifier that could not be
// resolved.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// GatewayError wraps a transport or protocol failure from the external
// payment gateway. The wrapped error stays server-side; callers see only a
// generic external-service failure.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway failure during %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }
