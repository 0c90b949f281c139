package booking

import (
	"errors"
	"fmt"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrSlotConflict        = errors.New("time slot already booked")
	ErrNoSlotsAvailable    = errors.New("no requested slot is available")
	ErrLimitReached        = errors.New("self-service limit reached")
	ErrOwnership           = errors.New("appointment does not belong to caller")
	ErrNotFound            = errors.New("appointment not found")
	ErrDuplicatePerson     = errors.New("person already registered in category")
	ErrPaymentNotCompleted = errors.New("payment not completed")
	ErrPaymentUnavailable  = errors.New("payment processor unavailable")
	ErrForbidden           = errors.New("operation not permitted for caller")
)

// ValidationError names the rejected input. It matches ErrValidation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// LimitError reports which allowance is spent. It matches ErrLimitReached.
type LimitError struct {
	Action string // cancel or reschedule
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s: %s", ErrLimitReached, e.Action)
}

func (e *LimitError) Is(target error) bool { return target == ErrLimitReached }
