package database

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrRecordNotFound is returned when a lookup matches no row
	ErrRecordNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when a unique index rejects a write
	ErrDuplicateKey = errors.New("duplicate key")
)

// normalizeErr maps driver and gorm errors onto the package sentinels
func normalizeErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrRecordNotFound), errors.Is(err, ErrDuplicateKey):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isDuplicateMessage(err.Error()):
		return errors.Join(ErrDuplicateKey, err)
	default:
		return err
	}
}

// isDuplicateMessage covers drivers that do not implement gorm's error translator
func isDuplicateMessage(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}
