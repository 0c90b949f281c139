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

// Appointment serves the booking form and the operator calendar
type Appointment struct {
	svc *booking.Service
	eh  *errorx.ErrorHandler
}

func NewAppointment(svc *booking.Service, eh *errorx.ErrorHandler) *Appointment {
	return &Appointment{svc: svc, eh: eh}
}

// Create handles POST /appointments
func (h *Appointment) Create(c *gin.Context) {
	var req dto.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.eh.HandleError(c, bindError(err))
		return
	}

	res, err := h.svc.CreateAppointments(c.Request.Context(), middleware.IdentityFromContext(c), &req)
	if err != nil {
		h.eh.HandleError(c, err)
		return
	}
	i18n.RespondCreated(c, i18n.SuccessAppointmentsCreated, gin.H{
		"appointment":  res.Appointments[0],
		"appointments": res.Appointments,
		"requested":    res.Requested,
		"skipped":      res.Skipped,
	})
}

// List handles GET /appointments
func (h *Appointment) List(c *gin.Context) {
	var q dto.ListAppointmentsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.eh.HandleError(c, bindError(err))
		return
	}
	appts, err := h.svc.ListAppointments(c.Request.Context(), q)
	if err != nil {
		h.eh.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

// Get handles GET /appointments/:id
func (h *Appointment) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.eh.HandleError(c, err)
		return
	}
	appt, err := h.svc.GetAppointment(c.Request.Context(), id)
	if err != nil {
		h.eh.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// Update handles PATCH /appointments/:id. Only the allow-listed fields of
// UpdateAppointmentRequest are applied.
func (h *Appointment) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.eh.HandleError(c, err)
		return
	}
	var req dto.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.eh.HandleError(c, bindError(err))
		return
	}
	appt, err := h.svc.UpdateAppointment(c.Request.Context(), id, &req)
	if err != nil {
		h.eh.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// Delete handles DELETE /appointments/:id
func (h *Appointment) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.eh.HandleError(c, err)
		return
	}
	if err := h.svc.DeleteAppointment(c.Request.Context(), id); err != nil {
		h.eh.HandleError(c, err)
		return
	}
	i18n.RespondOK(c, i18n.SuccessAppointmentDeleted, nil)
}

// SetPaid handles PATCH /appointments/:id/paid
func (h *Appointment) SetPaid(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.eh.HandleError(c, err)
		return
	}
	var req dto.SetPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.eh.HandleError(c, bindError(err))
		return
	}
	if req.Paid == nil {
		h.eh.HandleError(c, errorx.ValidationError("paid is required"))
		return
	}
	appt, err := h.svc.SetPaid(c.Request.Context(), id, *req.Paid)
	if err != nil {
		h.eh.HandleError(c, err)
		return
	}
	i18n.RespondOK(c, i18n.SuccessPaymentStatusUpdated, gin.H{"appointment": appt})
}
