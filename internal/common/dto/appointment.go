package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/stemwithlyn/booking/internal/apiserver/database"
)

// CreateAppointmentRequest is the body of POST /appointments
type CreateAppointmentRequest struct {
	Title       string           `json:"title"`
	ClientName  string           `json:"client_name"`
	ClientEmail string           `json:"client_email"`
	ClientPhone string           `json:"client_phone"`
	Category    string           `json:"category,omitempty"`
	Date        string           `json:"date"`
	Time        FlexTime         `json:"time"`
	EndTime     FlexTime         `json:"end_time,omitempty"`
	Description string           `json:"description,omitempty"`
	AmountPaid  *decimal.Decimal `json:"amount_paid,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Recurrence  string           `json:"recurrence,omitempty"` // "", weekly, biweekly, monthly
	Occurrences int              `json:"occurrences,omitempty"`
	Weekdays    []string         `json:"weekdays,omitempty"`
	Addons      json.RawMessage  `json:"addons,omitempty"`
	IsAdmin     bool             `json:"isAdmin,omitempty"`
}

// CreateAppointmentsResponse carries the first created row and the full list
type CreateAppointmentsResponse struct {
	Appointment  *database.Appointment   `json:"appointment"`
	Appointments []*database.Appointment `json:"appointments"`
	Requested    int                     `json:"requested"`
}

// UpdateAppointmentRequest lists the operator-editable fields. Other keys are ignored.
type UpdateAppointmentRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Date        *string   `json:"date"`
	Time        *FlexTime `json:"time"`
	EndTime     *FlexTime `json:"end_time"`
	ClientID    *uint     `json:"client_id"`
}

// RescheduleRequest is the body of POST /client/appointments/:id/reschedule
type RescheduleRequest struct {
	Date    string   `json:"date"`
	Time    FlexTime `json:"time"`
	EndTime FlexTime `json:"end_time,omitempty"`
}

// SetPaidRequest is the body of PATCH /appointments/:id/paid
type SetPaidRequest struct {
	Paid *bool `json:"paid"`
}

// ClientAppointment is a portal row with the remaining self-service allowances
type ClientAppointment struct {
	*database.Appointment
	CanCancel     bool `json:"canCancel"`
	CanReschedule bool `json:"canReschedule"`
}

// ListAppointmentsQuery binds GET /appointments
type ListAppointmentsQuery struct {
	Date string `form:"date"`
	From string `form:"from"`
	To   string `form:"to"`
}
