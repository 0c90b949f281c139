package booking

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/stemwithlyn/booking/internal/apiserver/database"
	"github.com/stemwithlyn/booking/internal/common/cnst"
	"github.com/stemwithlyn/booking/internal/common/dto"
	"github.com/stemwithlyn/booking/internal/notifier"
)

func isNotFound(err error) bool {
	return errors.Is(err, database.ErrRecordNotFound)
}

func (s *Service) getAppointment(ctx context.Context, id uint) (*database.Appointment, error) {
	appt, err := s.db.GetAppointment(ctx, id)
	if isNotFound(err) {
		return nil, ErrNotFound
	}
	return appt, err
}

// ListAppointments returns the calendar ordered by date and time
func (s *Service) ListAppointments(ctx context.Context, q dto.ListAppointmentsQuery) ([]*database.Appointment, error) {
	filter := database.AppointmentFilter{}
	for _, f := range []struct {
		name string
		in   string
		out  *string
	}{{"date", q.Date, &filter.Date}, {"from", q.From, &filter.From}, {"to", q.To, &filter.To}} {
		if f.in == "" {
			continue
		}
		d, err := ParseDate(f.in)
		if err != nil {
			return nil, invalid(f.name, "must be YYYY-MM-DD")
		}
		*f.out = d.Format(DateLayout)
	}
	return s.db.ListAppointments(ctx, filter)
}

// GetAppointment returns one appointment or ErrNotFound
func (s *Service) GetAppointment(ctx context.Context, id uint) (*database.Appointment, error) {
	return s.getAppointment(ctx, id)
}

// UpdateAppointment applies an operator edit. Moving onto a taken slot fails
// with ErrSlotConflict, schedule blocks do not bind operators.
func (s *Service) UpdateAppointment(ctx context.Context, id uint, req *dto.UpdateAppointmentRequest) (*database.Appointment, error) {
	patch := database.AppointmentPatch{
		Title:       req.Title,
		Description: req.Description,
		ClientID:    req.ClientID,
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, invalid("title", "must not be empty")
		}
		patch.Title = &title
	}
	if req.Date != nil {
		d, err := ParseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		date := d.Format(DateLayout)
		patch.Date = &date
	}
	if req.Time != nil {
		t := NormalizeTime(req.Time.String())
		if !ValidTime(t) {
			return nil, invalid("time", "must be HH:MM, HH:MM:SS or an hour")
		}
		patch.Time = &t
	}
	if req.EndTime != nil {
		end, err := normalizeOptionalTime("end_time", req.EndTime.String())
		if err != nil {
			return nil, err
		}
		patch.EndTime = end
	}
	if patch.Empty() {
		return nil, invalid("body", "has no editable field")
	}

	var updated *database.Appointment
	err := s.db.Transaction(ctx, func(ctx context.Context) error {
		current, err := s.getAppointment(ctx, id)
		if err != nil {
			return err
		}
		if patch.ClientID != nil {
			if _, err := s.db.GetClient(ctx, *patch.ClientID); err != nil {
				if isNotFound(err) {
					return invalid("client_id", "does not exist")
				}
				return err
			}
		}
		date, slot := current.Date, current.Time
		if patch.Date != nil {
			date = *patch.Date
		}
		if patch.Time != nil {
			slot = *patch.Time
		}
		if date != current.Date || slot != current.Time {
			taken, err := s.conflicts.HasConflict(ctx, date, slot, id)
			if err != nil {
				return err
			}
			if taken {
				return slotConflict(date, slot)
			}
		}
		updated, err = s.db.UpdateAppointment(ctx, id, patch)
		if errors.Is(err, database.ErrDuplicateKey) {
			return slotConflict(date, slot)
		}
		if isNotFound(err) {
			return ErrNotFound
		}
		return err
	})
	if err != nil {
		s.logOutcome("appointment update rejected", err, zap.Uint("id", id))
		return nil, err
	}

	s.logger.Info("appointment updated", zap.Uint("id", id), zap.String("date", updated.Date), zap.String("time", updated.Time))
	s.publish(ctx, s.appointmentEvent(notifier.EventAppointmentUpdated, cnst.OriginAdmin, updated))
	return updated, nil
}

// DeleteAppointment removes an appointment. Its ledger row is kept.
func (s *Service) DeleteAppointment(ctx context.Context, id uint) error {
	var appt *database.Appointment
	err := s.db.Transaction(ctx, func(ctx context.Context) error {
		var err error
		if appt, err = s.getAppointment(ctx, id); err != nil {
			return err
		}
		err = s.db.DeleteAppointment(ctx, id)
		if isNotFound(err) {
			return ErrNotFound
		}
		return err
	})
	if err != nil {
		s.logOutcome("appointment delete rejected", err, zap.Uint("id", id))
		return err
	}
	s.logger.Info("appointment deleted", zap.Uint("id", id), zap.String("date", appt.Date), zap.String("time", appt.Time))
	s.publish(ctx, s.appointmentEvent(notifier.EventAppointmentDeleted, cnst.OriginAdmin, appt))
	return nil
}

// SetPaid flips the paid flag and keeps the manual ledger row in step.
// Marking paid records the price once, marking unpaid removes the manual row
// and leaves processor rows alone.
func (s *Service) SetPaid(ctx context.Context, id uint, paid bool) (*database.Appointment, error) {
	var appt *database.Appointment
	err := s.db.Transaction(ctx, func(ctx context.Context) error {
		var err error
		if appt, err = s.getAppointment(ctx, id); err != nil {
			return err
		}
		if err := s.db.SetAppointmentPaid(ctx, id, paid); err != nil {
			if isNotFound(err) {
				return ErrNotFound
			}
			return err
		}
		appt.Paid = paid
		if paid {
			_, err = s.recordLedger(ctx, appt, ledgerEntry{amount: appt.Price, processor: cnst.ProcessorManual})
			return err
		}
		_, err = s.db.DeleteProfitByAppointment(ctx, id, cnst.ProcessorManual)
		return err
	})
	if err != nil {
		s.logOutcome("payment status update rejected", err, zap.Uint("id", id))
		return nil, err
	}
	s.logger.Info("payment status updated", zap.Uint("id", id), zap.Bool("paid", paid))
	return appt, nil
}
