package billing

import "errors"

var (
	// ErrMissingStayDates means a booking without both stay dates reached billing.
	ErrMissingStayDates = errors.New("booking has no check-in or check-out date")
	// ErrDuplicateBill means a bill already exists for the booking, month and kind.
	ErrDuplicateBill = errors.New("bill already generated for this period")
	// ErrUnknownTrigger is returned when dispatching a trigger name that does not exist.
	ErrUnknownTrigger = errors.New("unknown trigger")
)
