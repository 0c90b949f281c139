package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stemwithlyn/booking/internal/apiserver/middleware"
	"github.com/stemwithlyn/booking/internal/booking"
	"github.com/stemwithlyn/booking/internal/common/dto"
	"github.com/stemwithlyn/booking/internal/common/errorx"
	"github.com/stemwithlyn/booking/internal/i18n"
)

// Portal is the client self-service surface. Callers are resolved by
// middleware.ClientIdentity.
type Portal struct {
	svc *booking.Service
	eh  *errorx.ErrorHandler
}

func NewPortal(svc *booking.Service, eh *errorx.ErrorHandler) *Portal {
	return &Portal{svc: svc, eh: eh}
}

// List handles GET /client/appointments
func (h *Portal) List(c *gin.Context) {
	appts, err := h.svc.ClientAppointments(c.Request.Context(), middleware.IdentityFromContext(c))
	if err != nil {
		h.eh.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

// Cancel handles POST /client/appointments/:id/cancel
func (h *Portal) Cancel(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.eh.HandleError(c, err)
		return
	}
	if err := h.svc.CancelAppointment(c.Request.Context(), middleware.IdentityFromContext(c), id); err != nil {
		h.eh.HandleError(c, err)
		return
	}
	i18n.RespondOK(c, i18n.SuccessAppointmentCancelled, gin.H{"success": true})
}

// Reschedule handles POST /client/appointments/:id/reschedule
func (h *Portal) Reschedule(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.eh.HandleError(c, err)
		return
	}
	var req dto.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.eh.HandleError(c, bindError(err))
		return
	}
	appt, err := h.svc.RescheduleAppointment(c.Request.Context(), middleware.IdentityFromContext(c), id, &req)
	if err != nil {
		h.eh.HandleError(c, err)
		return
	}
	i18n.RespondOK(c, i18n.SuccessAppointmentRescheduled, gin.H{
		"success":     true,
		"appointment": appt,
	})
}
