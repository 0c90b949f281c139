package booking

import (
	"sort"
	"strings"
	"time"

	"github.com/ifuryst/lol"
)

// Recurrence kinds
const (
	RecurrenceNone     = ""
	RecurrenceWeekly   = "weekly"
	RecurrenceBiweekly = "biweekly"
	RecurrenceMonthly  = "monthly"
)

// MaxOccurrences caps how many blocks or months one request may expand to
const MaxOccurrences = 104

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// RecurrenceRule describes a booking pattern anchored at StartDate
type RecurrenceRule struct {
	StartDate   string
	Recurrence  string
	Occurrences int
	Weekdays    []string
}

// ExpandDates turns rule into sorted, distinct YYYY-MM-DD dates.
//
// weekly and biweekly with weekdays treat Occurrences as week blocks of 7 or 14 days.
// Within each block the weekday offset is taken from the block anchor with Sunday as 0,
// so a weekday earlier than the start weekday lands before the anchor.
// Without weekdays they yield the start date alone.
// monthly adds i calendar months to the start date, Jan 31 + 1 month rolls into March.
func ExpandDates(rule RecurrenceRule) ([]string, error) {
	start, err := ParseDate(rule.StartDate)
	if err != nil {
		return nil, err
	}
	occurrences := rule.Occurrences
	if occurrences < 1 {
		occurrences = 1
	}
	if occurrences > MaxOccurrences {
		return nil, invalid("occurrences", "is too large")
	}

	switch strings.ToLower(strings.TrimSpace(rule.Recurrence)) {
	case RecurrenceNone:
		return []string{start.Format(DateLayout)}, nil
	case RecurrenceWeekly:
		return expandWeekly(start, occurrences, 7, rule.Weekdays)
	case RecurrenceBiweekly:
		return expandWeekly(start, occurrences, 14, rule.Weekdays)
	case RecurrenceMonthly:
		dates := make([]string, 0, occurrences)
		for i := 0; i < occurrences; i++ {
			dates = append(dates, start.AddDate(0, i, 0).Format(DateLayout))
		}
		return sortedUnique(dates), nil
	default:
		return nil, invalid("recurrence", "must be weekly, biweekly or monthly")
	}
}

func expandWeekly(start time.Time, blocks, interval int, names []string) ([]string, error) {
	weekdays, err := parseWeekdays(names)
	if err != nil {
		return nil, err
	}
	if len(weekdays) == 0 {
		return []string{start.Format(DateLayout)}, nil
	}

	dates := make([]string, 0, blocks*len(weekdays))
	for i := 0; i < blocks; i++ {
		anchor := start.AddDate(0, 0, i*interval)
		for _, wd := range weekdays {
			offset := int(wd) - int(anchor.Weekday())
			dates = append(dates, anchor.AddDate(0, 0, offset).Format(DateLayout))
		}
	}
	return sortedUnique(dates), nil
}

func parseWeekdays(names []string) ([]time.Weekday, error) {
	normalized := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			normalized = append(normalized, n)
		}
	}
	normalized = lol.UniqSlice(normalized)

	weekdays := make([]time.Weekday, 0, len(normalized))
	seen := make(map[time.Weekday]bool, len(normalized))
	for _, n := range normalized {
		wd, ok := weekdayNames[n]
		if !ok {
			return nil, invalid("weekdays", "contains an unknown day "+n)
		}
		if !seen[wd] {
			seen[wd] = true
			weekdays = append(weekdays, wd)
		}
	}
	return weekdays, nil
}

// sortedUnique relies on YYYY-MM-DD sorting lexically
func sortedUnique(dates []string) []string {
	out := lol.UniqSlice(dates)
	sort.Strings(out)
	return out
}
