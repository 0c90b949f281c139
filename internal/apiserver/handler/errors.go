package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stemwithlyn/booking/internal/apiserver/database"
	"github.com/stemwithlyn/booking/internal/booking"
	"github.com/stemwithlyn/booking/internal/common/errorx"
)

// MapBookingError translates engine and storage errors into the API catalog
func MapBookingError(err error) *errorx.APIError {
	var (
		ve *booking.ValidationError
		le *booking.LimitError
	)
	switch {
	case errors.As(err, &ve):
		return errorx.ValidationError(ve.Field + " " + ve.Reason)
	case errors.Is(err, booking.ErrValidation):
		return errorx.ValidationError(err.Error())
	case errors.As(err, &le):
		return errorx.ErrLimitReached.WithDetail("Action", le.Action)
	case errors.Is(err, booking.ErrLimitReached):
		return errorx.ErrLimitReached.WithDetail("Action", "cancel")
	case errors.Is(err, booking.ErrSlotConflict):
		return errorx.ErrSlotConflict
	case errors.Is(err, booking.ErrNoSlotsAvailable):
		return errorx.ErrNoSlotsAvailable
	case errors.Is(err, booking.ErrOwnership), errors.Is(err, booking.ErrNotFound):
		return errorx.ErrAppointmentNotFound
	case errors.Is(err, booking.ErrDuplicatePerson):
		return errorx.ErrDuplicatePerson
	case errors.Is(err, booking.ErrPaymentNotCompleted):
		return errorx.ErrPaymentNotCompleted
	case errors.Is(err, booking.ErrPaymentUnavailable):
		return errorx.ErrPaymentUnavailable
	case errors.Is(err, booking.ErrForbidden):
		return errorx.ErrForbidden
	case errors.Is(err, database.ErrRecordNotFound):
		return errorx.ErrResourceNotFound
	case errors.Is(err, database.ErrDuplicateKey):
		return errorx.ErrDuplicateEntity
	}
	return nil
}

// bindError wraps a request decoding failure
func bindError(err error) error {
	return errorx.ValidationError(err.Error())
}

// pathID parses a positive numeric path parameter
func pathID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errorx.ValidationError(name + " must be a positive integer")
	}
	return uint(id), nil
}
