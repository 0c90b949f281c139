package booking

import (
	"context"
	"sort"
	"time"

	"github.com/stemwithlyn/booking/internal/apiserver/database"
	"github.com/stemwithlyn/booking/internal/common/dto"
)

// Availability lists the open slots of date. Slots come from the weekly
// template for that weekday, stepped by the configured slot length, minus
// booked appointments and schedule blocks.
func (s *Service) Availability(ctx context.Context, date, appointmentType string) ([]string, error) {
	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	date = day.Format(DateLayout)

	rows, err := s.db.ListWeeklyAvailability(ctx, int(day.Weekday()), appointmentType)
	if err != nil {
		return nil, err
	}
	appts, err := s.db.ListAppointments(ctx, database.AppointmentFilter{Date: date})
	if err != nil {
		return nil, err
	}
	blocks, err := s.db.ListScheduleBlocks(ctx, date)
	if err != nil {
		return nil, err
	}

	busy := make(map[string]bool, len(appts)+len(blocks))
	for _, a := range appts {
		busy[a.Time] = true
	}
	for _, b := range blocks {
		busy[b.TimeSlot] = true
	}

	step := time.Duration(s.cfg.SlotMinutes) * time.Minute
	seen := make(map[string]bool)
	slots := make([]string, 0)
	for _, row := range rows {
		for _, slot := range stepSlots(row.StartTime, row.EndTime, step) {
			if busy[slot] || seen[slot] {
				continue
			}
			seen[slot] = true
			slots = append(slots, slot)
		}
	}
	sort.Strings(slots)
	return slots, nil
}

// stepSlots yields the slot starts in [start, end)
func stepSlots(start, end string, step time.Duration) []string {
	from, err := time.Parse(TimeLayout, start)
	if err != nil {
		return nil
	}
	to, err := time.Parse(TimeLayout, end)
	if err != nil || step <= 0 {
		return nil
	}
	var out []string
	for t := from; t.Add(step).Compare(to) <= 0; t = t.Add(step) {
		out = append(out, t.Format(TimeLayout))
	}
	return out
}

// CreateScheduleBlock marks a slot unavailable to clients
func (s *Service) CreateScheduleBlock(ctx context.Context, req *dto.ScheduleBlockRequest) (*database.ScheduleBlock, error) {
	date, slot, err := normalizeSlot(req.Date, req.TimeSlot.String())
	if err != nil {
		return nil, err
	}
	block := &database.ScheduleBlock{Date: date, TimeSlot: slot, Label: req.Label}
	if err := s.db.CreateScheduleBlock(ctx, block); err != nil {
		return nil, err
	}
	return block, nil
}

func (s *Service) ListScheduleBlocks(ctx context.Context, date string) ([]*database.ScheduleBlock, error) {
	if date != "" {
		d, err := ParseDate(date)
		if err != nil {
			return nil, err
		}
		date = d.Format(DateLayout)
	}
	return s.db.ListScheduleBlocks(ctx, date)
}

func (s *Service) DeleteScheduleBlock(ctx context.Context, id uint) error {
	return s.db.DeleteScheduleBlock(ctx, id)
}

// SaveWeeklyAvailability validates and stores template rows
func (s *Service) SaveWeeklyAvailability(ctx context.Context, req *dto.WeeklyAvailabilityRequest) ([]*database.WeeklyAvailability, error) {
	if len(req.Rows) == 0 {
		return nil, invalid("rows", "must not be empty")
	}
	rows := make([]*database.WeeklyAvailability, 0, len(req.Rows))
	for _, r := range req.Rows {
		if r.Weekday < 0 || r.Weekday > 6 {
			return nil, invalid("weekday", "must be 0 (Sunday) to 6")
		}
		start, end := NormalizeTime(r.StartTime.String()), NormalizeTime(r.EndTime.String())
		if !ValidTime(start) || !ValidTime(end) {
			return nil, invalid("start_time", "and end_time must be clock times")
		}
		if start >= end {
			return nil, invalid("end_time", "must be after start_time")
		}
		rows = append(rows, &database.WeeklyAvailability{
			Weekday:         r.Weekday,
			StartTime:       start,
			EndTime:         end,
			AppointmentType: r.AppointmentType,
		})
	}
	if err := s.db.CreateWeeklyAvailability(ctx, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) ListWeeklyAvailability(ctx context.Context, appointmentType string) ([]*database.WeeklyAvailability, error) {
	return s.db.ListWeeklyAvailability(ctx, -1, appointmentType)
}
