package booking

import (
	"errors"
	"fmt"
)

var (
	ErrRoomOccupied = errors.New("room is not available")
	ErrInvalidDates = errors.New("invalid booking dates")
)

// ValidationError rejects a request before anything is written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets callers match every date problem with errors.Is(err, ErrInvalidDates).
func (e *ValidationError) Unwrap() error {
	if e.Field == "checkIn" || e.Field == "checkOut" {
		return ErrInvalidDates
	}
	return nil
}

func newValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
