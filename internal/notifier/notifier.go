package notifier

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stemwithlyn/booking/internal/common/config"
)

// EventType names a booking lifecycle change
type EventType string

const (
	EventAppointmentCreated     EventType = "appointment.created"
	EventAppointmentUpdated     EventType = "appointment.updated"
	EventAppointmentRescheduled EventType = "appointment.rescheduled"
	EventAppointmentCancelled   EventType = "appointment.cancelled"
	EventAppointmentDeleted     EventType = "appointment.deleted"
	EventPaymentFinalized       EventType = "payment.finalized"
)

// Event is published after the change it describes has committed
type Event struct {
	ID             string                `json:"id"`
	Type           EventType             `json:"type"`
	Origin         string                `json:"origin,omitempty"`
	AppointmentIDs []uint                `json:"appointmentIds"`
	Title          string                `json:"title,omitempty"`
	Dates          []string              `json:"dates,omitempty"`
	Time           string                `json:"time,omitempty"`
	EndTime        string                `json:"endTime,omitempty"`
	ClientName     string                `json:"clientName,omitempty"`
	ClientEmail    string                `json:"clientEmail,omitempty"`
	Amount         string                `json:"amount,omitempty"`
	Staff          []config.StaffContact `json:"staff,omitempty"`
	OccurredAt     time.Time             `json:"occurredAt"`
}

// NewEvent stamps an event with a fresh id and the current time
func NewEvent(typ EventType) *Event {
	return &Event{
		ID:         uuid.NewString(),
		Type:       typ,
		OccurredAt: time.Now().UTC(),
	}
}

// Notifier delivers booking events to staff channels
type Notifier interface {
	// Notify publishes one event. Implementations must not block for long.
	Notify(ctx context.Context, event *Event) error
	// Close releases any connection held by the notifier
	Close() error
}

// NoopNotifier drops every event
type NoopNotifier struct{}

func (NoopNotifier) Notify(context.Context, *Event) error { return nil }

func (NoopNotifier) Close() error { return nil }
