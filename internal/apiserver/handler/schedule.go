package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stemwithlyn/booking/internal/booking"
	"github.com/stemwithlyn/booking/internal/common/dto"
	"github.com/stemwithlyn/booking/internal/common/errorx"
	"github.com/stemwithlyn/booking/internal/i18n"
)

// Schedule manages blocked slots, the weekly availability template and the
// public free-slot lookup
type Schedule struct {
	svc *booking.Service
	eh  *errorx.ErrorHandler
}

func NewSchedule(svc *booking.Service, eh *errorx.ErrorHandler) *Schedule {
	return &Schedule{svc: svc, eh: eh}
}

// CreateBlock handles POST /schedule-blocks
func (h *Schedule) CreateBlock(c *gin.Context) {
	var req dto.ScheduleBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.eh.HandleError(c, bindError(err))
		return
	}
	block, err := h.svc.CreateScheduleBlock(c.Request.Context(), &req)
	if err != nil {
		h.eh.HandleError(c, err)
		return
	}
	i18n.RespondCreated(c, i18n.SuccessScheduleBlockCreated, gin.H{"block": block})
}

// ListBlocks handles GET /schedule-blocks?date=
func (h *Schedule) ListBlocks(c *gin.Context) {
	blocks, err := h.svc.ListScheduleBlocks(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.eh.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, blocks)
}

// DeleteBlock handles DELETE /schedule-blocks/:id
func (h *Schedule) DeleteBlock(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.eh.HandleError(c, err)
		return
	}
	if err := h.svc.DeleteScheduleBlock(c.Request.Context(), id); err != nil {
		h.eh.HandleError(c, err)
		return
	}
	i18n.RespondOK(c, i18n.SuccessScheduleBlockDeleted, nil)
}

// SaveWeekly handles POST /weekly-availability
func (h *Schedule) SaveWeekly(c *gin.Context) {
	var req dto.WeeklyAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.eh.HandleError(c, bindError(err))
		return
	}
	rows, err := h.svc.SaveWeeklyAvailability(c.Request.Context(), &req)
	if err != nil {
		h.eh.HandleError(c, err)
		return
	}
	i18n.RespondCreated(c, i18n.SuccessAvailabilitySaved, gin.H{"rows": rows})
}

// ListWeekly handles GET /weekly-availability?type=
func (h *Schedule) ListWeekly(c *gin.Context) {
	rows, err := h.svc.ListWeeklyAvailability(c.Request.Context(), c.Query("type"))
	if err != nil {
		h.eh.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Availability handles GET /availability?date=YYYY-MM-DD[&type=]
func (h *Schedule) Availability(c *gin.Context) {
	var q dto.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.eh.HandleError(c, bindError(err))
		return
	}
	slots, err := h.svc.Availability(c.Request.Context(), q.Date, q.Type)
	if err != nil {
		h.eh.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AvailabilityResponse{Date: q.Date, Slots: slots})
}
