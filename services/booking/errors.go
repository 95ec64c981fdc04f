package booking

import "fmt"

// ServiceError is a typed booking failure with a stable code the handler
// layer maps onto HTTP statuses.
type ServiceError struct {
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrCode exposes the stable error code.
func (e *ServiceError) ErrCode() string { return e.Code }

var (
	// ErrNotFound signals a booking id with no stored record.
	ErrNotFound = &ServiceError{
		Code:    "NOT_FOUND",
		Message: "booking not found",
	}
	// ErrAlreadyResolved signals an accept/decline on a booking that has
	// already reached a terminal state. The first resolution stands; nothing
	// is double-applied.
	ErrAlreadyResolved = &ServiceError{
		Code:    "ALREADY_RESOLVED",
		Message: "this booking request was already handled",
	}
	// ErrInvalidTransition signals a status change the state machine forbids.
	ErrInvalidTransition = &ServiceError{
		Code:    "INVALID_TRANSITION",
		Message: "booking status transition not permitted",
	}
)

// newInvalidInputError flags a malformed booking request.
func newInvalidInputError(msg string) error {
	return &ServiceError{Code: "INVALID_ARGUMENT", Message: msg}
}
