package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stemwithlyn/booking/internal/booking"
	"github.com/stemwithlyn/booking/internal/common/dto"
	"github.com/stemwithlyn/booking/internal/common/errorx"
	"github.com/stemwithlyn/booking/internal/i18n"
)

// Payment books slots paid through the external processor
type Payment struct {
	svc *booking.Service
	eh  *errorx.ErrorHandler
}

func NewPayment(svc *booking.Service, eh *errorx.ErrorHandler) *Payment {
	return &Payment{svc: svc, eh: eh}
}

// Finalize handles POST /api/finalize-payment-and-book.
// A replayed transaction id answers 200 with the appointment booked first.
func (h *Payment) Finalize(c *gin.Context) {
	var req dto.FinalizePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.eh.HandleError(c, bindError(err))
		return
	}
	res, err := h.svc.FinalizePayment(c.Request.Context(), &req)
	if err != nil {
		h.eh.HandleError(c, err)
		return
	}

	payload := gin.H{
		"appointment":      res.Appointment,
		"alreadyProcessed": res.AlreadyProcessed,
	}
	if res.AlreadyProcessed {
		i18n.RespondWithSuccess(c, http.StatusOK, i18n.SuccessPaymentAlreadyBooked, nil, payload)
		return
	}
	i18n.RespondCreated(c, i18n.SuccessPaymentFinalized, payload)
}
