package feedback

import "fmt"

// ValidationError reports caller input the service refuses to store.
type ValidationError struct {
	Field string
	Code  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Code)
}

// ErrEmptyMessage is returned when a submission has no message text.
var ErrEmptyMessage = &ValidationError{Field: "message", Code: "empty-message"}

// StoreError wraps a failure of the underlying persistence layer.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("feedback store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
