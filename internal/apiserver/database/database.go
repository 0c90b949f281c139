package database

import (
	"context"
)

// Database defines the methods for database operations.
// Every method honours a transaction carried in ctx.
type Database interface {
	// Close closes the database connection.
	Close() error

	// Transaction runs fn atomically, joining any transaction already in ctx.
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error

	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id uint) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	CreateClient(ctx context.Context, client *Client) error
	GetClient(ctx context.Context, id uint) (*Client, error)
	// GetClientByEmailKey finds the client owning a deduplicated email.
	GetClientByEmailKey(ctx context.Context, emailKey string) (*Client, error)
	// FirstOrCreateClientByEmailKey inserts client unless its email_key is taken,
	// then returns the stored row. created reports whether this call inserted it.
	FirstOrCreateClientByEmailKey(ctx context.Context, client *Client) (stored *Client, created bool, err error)
	// LinkClientToUser attaches a client to the portal user that may manage its appointments
	LinkClientToUser(ctx context.Context, clientID, userID uint) error
	// ListClientIDsByUser returns the clients linked to a user.
	ListClientIDsByUser(ctx context.Context, userID uint) ([]uint, error)

	CreateAppointment(ctx context.Context, appt *Appointment) error
	GetAppointment(ctx context.Context, id uint) (*Appointment, error)
	ListAppointments(ctx context.Context, filter AppointmentFilter) ([]*Appointment, error)
	// SlotTaken reports whether another appointment holds (date, time).
	SlotTaken(ctx context.Context, date, time string, excludeID uint) (bool, error)
	UpdateAppointment(ctx context.Context, id uint, patch AppointmentPatch) (*Appointment, error)
	SetAppointmentPaid(ctx context.Context, id uint, paid bool) error
	DeleteAppointment(ctx context.Context, id uint) error
	// ClaimCancel increments client_cancel_count when it is below limit.
	// It reports false when the allowance is already spent.
	ClaimCancel(ctx context.Context, id uint, limit int) (bool, error)
	// ClaimReschedule moves the appointment and increments client_reschedule_count
	// when it is below limit. It reports false when the allowance is already spent.
	ClaimReschedule(ctx context.Context, id uint, date, time string, endTime *string, limit int) (bool, error)

	CreateProfit(ctx context.Context, profit *Profit) error
	// CreateProfitIfAbsent inserts profit unless its appointment or transaction
	// already has a ledger row. It reports whether a row was written.
	CreateProfitIfAbsent(ctx context.Context, profit *Profit) (bool, error)
	GetProfitByAppointment(ctx context.Context, appointmentID uint) (*Profit, error)
	GetProfitByTxnID(ctx context.Context, txnID string) (*Profit, error)
	// DeleteProfitByAppointment removes the appointment's ledger row written by processor.
	DeleteProfitByAppointment(ctx context.Context, appointmentID uint, processor string) (bool, error)

	CreateScheduleBlock(ctx context.Context, block *ScheduleBlock) error
	ListScheduleBlocks(ctx context.Context, date string) ([]*ScheduleBlock, error)
	SlotBlocked(ctx context.Context, date, time string) (bool, error)
	DeleteScheduleBlock(ctx context.Context, id uint) error

	CreateWeeklyAvailability(ctx context.Context, rows []*WeeklyAvailability) error
	// ListWeeklyAvailability filters by weekday (negative for all) and type (empty for all).
	ListWeeklyAvailability(ctx context.Context, weekday int, appointmentType string) ([]*WeeklyAvailability, error)
}
