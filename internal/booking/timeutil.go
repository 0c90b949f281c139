package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// NormalizeTime canonicalizes a slot time to HH:MM:SS.
//
//	"9"        -> "09:00:00"
//	"14:30"    -> "14:30:00"
//	"08:15:00" -> "08:15:00"
//
// Input it cannot read is returned unchanged, ValidTime rejects it later.
func NormalizeTime(raw string) string {
	s := strings.TrimSpace(raw)
	switch {
	case s == "":
		return raw
	case len(s) == 8:
		return s
	case len(s) == 5 && s[2] == ':':
		return s + ":00"
	}
	if h, err := strconv.Atoi(s); err == nil {
		if h < 0 || h > 23 {
			return raw
		}
		return fmt.Sprintf("%02d:00:00", h)
	}
	for _, layout := range []string{"15:04", TimeLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(TimeLayout)
		}
	}
	return raw
}

// ValidTime reports whether s is a real HH:MM:SS clock time
func ValidTime(s string) bool {
	if len(s) != 8 {
		return false
	}
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}

// ParseDate parses a YYYY-MM-DD calendar date in UTC
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, invalid("date", "must be YYYY-MM-DD")
	}
	return d, nil
}

// normalizeSlot returns the canonical date and time or a validation error
func normalizeSlot(date, rawTime string) (string, string, error) {
	d, err := ParseDate(date)
	if err != nil {
		return "", "", err
	}
	t := NormalizeTime(rawTime)
	if !ValidTime(t) {
		return "", "", invalid("time", "must be HH:MM, HH:MM:SS or an hour")
	}
	return d.Format(DateLayout), t, nil
}

// normalizeOptionalTime handles end_time, empty means absent
func normalizeOptionalTime(field, raw string) (*string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t := NormalizeTime(raw)
	if !ValidTime(t) {
		return nil, invalid(field, "must be HH:MM, HH:MM:SS or an hour")
	}
	return &t, nil
}
