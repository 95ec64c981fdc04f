package schedule

import "fmt"

// ServiceError is a typed scheduling failure with a stable code the handler
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
	// ErrNotEditable rejects mutations on a week inside the editable-window
	// lead time. Rejected before any write is attempted.
	ErrNotEditable = &ServiceError{
		Code:    "NOT_EDITABLE",
		Message: "week can no longer be edited; only weeks starting at least one full week ahead are editable",
	}
	// ErrUnknownPreset rejects a preset name the editor does not know.
	ErrUnknownPreset = &ServiceError{
		Code:    "UNKNOWN_PRESET",
		Message: "unknown schedule preset",
	}
)

// newInvalidSlotError flags an out-of-grid day or slot reference.
func newInvalidSlotError(day, index int) error {
	return &ServiceError{
		Code:    "INVALID_SLOT",
		Message: fmt.Sprintf("slot reference out of range: day %d, index %d", day, index),
	}
}

// newPartialWriteError reports how much of a batch failed. The slots that
// succeeded stay written; the result lists the failed subset for retry.
func newPartialWriteError(failed, attempted int) error {
	return &ServiceError{
		Code:    "PARTIAL_WRITE",
		Message: fmt.Sprintf("%d of %d slot writes failed", failed, attempted),
	}
}
