package database

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stemwithlyn/booking/internal/common/cnst"
)

// User is a login identity. Clients link back to it through Client.UserID.
type User struct {
	ID           uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string         `json:"name" gorm:"type:varchar(255)"`
	Username     string         `json:"username" gorm:"type:varchar(100);uniqueIndex;not null"`
	Email        string         `json:"email" gorm:"type:varchar(255)"`
	Phone        string         `json:"phone" gorm:"type:varchar(50)"`
	PasswordHash string         `json:"-" gorm:"not null"`
	Role         cnst.Role      `json:"role" gorm:"type:varchar(20);not null;default:'user'"`
	UserType     *cnst.UserType `json:"userType,omitempty" gorm:"type:varchar(20)"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// Client is the billing and contact record attached to appointments.
// EmailKey is "category|email" for categories that dedupe by email and stays NULL
// otherwise, so the unique index only binds those categories.
type Client struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	FullName  string    `json:"fullName" gorm:"type:varchar(255);not null;uniqueIndex:idx_clients_person"`
	Email     *string   `json:"email,omitempty" gorm:"type:varchar(255);uniqueIndex:idx_clients_person"`
	EmailKey  *string   `json:"-" gorm:"type:varchar(255);uniqueIndex:idx_clients_email_key"`
	Phone     string    `json:"phone" gorm:"type:varchar(50)"`
	Category  string    `json:"category" gorm:"type:varchar(100);not null;uniqueIndex:idx_clients_person"`
	UserID    *uint     `json:"userId,omitempty" gorm:"index"`
	CreatedAt time.Time `json:"createdAt"`
}

// Appointment occupies one slot. (date, time) is unique across the calendar.
type Appointment struct {
	ID                    uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	Title                 string          `json:"title" gorm:"type:varchar(255);not null"`
	ClientID              uint            `json:"client_id" gorm:"not null;index"`
	Date                  string          `json:"date" gorm:"type:varchar(10);not null;uniqueIndex:idx_appointments_slot"`
	Time                  string          `json:"time" gorm:"type:varchar(8);not null;uniqueIndex:idx_appointments_slot"`
	EndTime               *string         `json:"end_time,omitempty" gorm:"type:varchar(8)"`
	Description           string          `json:"description" gorm:"type:text"`
	Price                 decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null;default:0"`
	Paid                  bool            `json:"paid" gorm:"not null;default:false"`
	Addons                string          `json:"addons,omitempty" gorm:"type:text"` // JSON stored as text
	ClientCancelCount     int             `json:"client_cancel_count" gorm:"not null;default:0"`
	ClientRescheduleCount int             `json:"client_reschedule_count" gorm:"not null;default:0"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

// Profit is one ledger row. AppointmentID and ProcessorTxnID are idempotency keys.
type Profit struct {
	ID             uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	Category       string          `json:"category" gorm:"type:varchar(100);not null"`
	Description    string          `json:"description" gorm:"type:text"`
	Amount         decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	Fee            decimal.Decimal `json:"fee" gorm:"type:decimal(10,2);not null;default:0"`
	Type           string          `json:"type" gorm:"type:varchar(20);not null;default:'income'"`
	Processor      string          `json:"processor" gorm:"type:varchar(50);not null"`
	ProcessorTxnID *string         `json:"processor_txn_id,omitempty" gorm:"type:varchar(255);uniqueIndex"`
	AppointmentID  *uint           `json:"appointment_id,omitempty" gorm:"uniqueIndex"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ScheduleBlock marks a slot the operator declared unavailable
type ScheduleBlock struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Date      string    `json:"date" gorm:"type:varchar(10);not null;uniqueIndex:idx_schedule_blocks_slot"`
	TimeSlot  string    `json:"time_slot" gorm:"type:varchar(8);not null;uniqueIndex:idx_schedule_blocks_slot"`
	Label     string    `json:"label" gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"createdAt"`
}

// WeeklyAvailability is a template row. Weekday is 0 (Sunday) to 6.
type WeeklyAvailability struct {
	ID              uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Weekday         int    `json:"weekday" gorm:"not null;index"`
	StartTime       string `json:"start_time" gorm:"type:varchar(8);not null"`
	EndTime         string `json:"end_time" gorm:"type:varchar(8);not null"`
	AppointmentType string `json:"appointment_type" gorm:"type:varchar(100)"`
}

func (WeeklyAvailability) TableName() string { return "weekly_availability" }

// AppointmentPatch lists the operator-editable columns. Nil fields are left untouched.
type AppointmentPatch struct {
	Title       *string
	Description *string
	Date        *string
	Time        *string
	EndTime     *string
	ClientID    *uint
}

// Empty reports whether the patch changes nothing
func (p AppointmentPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Date == nil &&
		p.Time == nil && p.EndTime == nil && p.ClientID == nil
}

func (p AppointmentPatch) columns() map[string]any {
	cols := make(map[string]any, 6)
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.Date != nil {
		cols["date"] = *p.Date
	}
	if p.Time != nil {
		cols["time"] = *p.Time
	}
	if p.EndTime != nil {
		cols["end_time"] = *p.EndTime
	}
	if p.ClientID != nil {
		cols["client_id"] = *p.ClientID
	}
	return cols
}

// AppointmentFilter narrows ListAppointments. Dates compare as YYYY-MM-DD strings.
type AppointmentFilter struct {
	Date      string
	From      string
	To        string
	ClientIDs []uint
}

// allModels is the migration set
func allModels() []any {
	return []any{&User{}, &Client{}, &Appointment{}, &Profit{}, &ScheduleBlock{}, &WeeklyAvailability{}}
}
