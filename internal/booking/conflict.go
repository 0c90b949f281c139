package booking

import (
	"context"

	"github.com/stemwithlyn/booking/internal/apiserver/database"
)

// ConflictChecker answers whether a slot can take a new appointment.
// It is a fast pre-check, the unique slot index is the real guard.
type ConflictChecker struct {
	db database.Database
}

func NewConflictChecker(db database.Database) *ConflictChecker {
	return &ConflictChecker{db: db}
}

// HasConflict reports an appointment at (date, time) other than excludeID
func (c *ConflictChecker) HasConflict(ctx context.Context, date, time string, excludeID uint) (bool, error) {
	return c.db.SlotTaken(ctx, date, time, excludeID)
}

// Available also honours operator schedule blocks
func (c *ConflictChecker) Available(ctx context.Context, date, time string, excludeID uint) (bool, error) {
	taken, err := c.HasConflict(ctx, date, time, excludeID)
	if err != nil || taken {
		return false, err
	}
	blocked, err := c.db.SlotBlocked(ctx, date, time)
	if err != nil {
		return false, err
	}
	return !blocked, nil
}
