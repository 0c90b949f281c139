package booking

import (
	"context"
	"errors"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/stemwithlyn/booking/internal/apiserver/database"
	"github.com/stemwithlyn/booking/internal/common/cnst"
	"github.com/stemwithlyn/booking/internal/common/dto"
	"github.com/stemwithlyn/booking/internal/notifier"
)

// Self-service actions, used as metric labels
const (
	actionCancel     = "cancel"
	actionReschedule = "reschedule"
)

// ownedAppointment loads id and checks it belongs to one of the caller's clients.
// A foreign appointment is reported as ErrOwnership, never as its contents.
func (s *Service) ownedAppointment(ctx context.Context, who Identity, id uint) (*database.Appointment, error) {
	if !who.Can(CapSelfService) {
		return nil, ErrForbidden
	}
	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	clientIDs, err := s.db.ListClientIDsByUser(ctx, who.UserID)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(clientIDs, appt.ClientID) {
		return nil, ErrOwnership
	}
	return appt, nil
}

// ClientAppointments lists the caller's appointments with their remaining allowances
func (s *Service) ClientAppointments(ctx context.Context, who Identity) ([]dto.ClientAppointment, error) {
	if !who.Can(CapSelfService) {
		return nil, ErrForbidden
	}
	clientIDs, err := s.db.ListClientIDsByUser(ctx, who.UserID)
	if err != nil {
		return nil, err
	}
	if clientIDs == nil {
		clientIDs = []uint{}
	}
	appts, err := s.db.ListAppointments(ctx, database.AppointmentFilter{ClientIDs: clientIDs})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientAppointment, 0, len(appts))
	for _, a := range appts {
		out = append(out, dto.ClientAppointment{
			Appointment:   a,
			CanCancel:     a.ClientCancelCount < CancelLimit,
			CanReschedule: a.ClientRescheduleCount < RescheduleLimit,
		})
	}
	return out, nil
}

// CancelAppointment spends the caller's one cancellation and deletes the appointment
func (s *Service) CancelAppointment(ctx context.Context, who Identity, id uint) (err error) {
	scope := s.tracer.Start(ctx, cnst.SpanSelfCancel).WithAttrs(attribute.Int64(cnst.AttrAppointmentID, int64(id)))
	ctx = scope.Ctx
	defer func() {
		scope.Fail(err)
		scope.End()
		s.metrics.SelfService(actionCancel, selfServiceLabel(err))
	}()

	var appt *database.Appointment
	err = s.db.Transaction(ctx, func(ctx context.Context) error {
		var err error
		if appt, err = s.ownedAppointment(ctx, who, id); err != nil {
			return err
		}
		claimed, err := s.db.ClaimCancel(ctx, id, CancelLimit)
		if err != nil {
			return err
		}
		if !claimed {
			return &LimitError{Action: actionCancel}
		}
		err = s.db.DeleteAppointment(ctx, id)
		if isNotFound(err) {
			return ErrNotFound
		}
		return err
	})
	fields := []zap.Field{zap.Uint("id", id), zap.Uint("user_id", who.UserID), zap.String("origin", cnst.OriginClient)}
	if err != nil {
		s.logOutcome("client cancel rejected", err, fields...)
		return err
	}

	s.logger.Info("appointment cancelled by client", append(fields, zap.String("date", appt.Date), zap.String("time", appt.Time))...)
	ev := s.appointmentEvent(notifier.EventAppointmentCancelled, cnst.OriginClient, appt)
	ev.ClientName = who.Username
	s.publish(ctx, ev)
	return nil
}

// RescheduleAppointment spends the caller's one reschedule and moves the appointment.
// The new slot must be free of other appointments and schedule blocks.
func (s *Service) RescheduleAppointment(ctx context.Context, who Identity, id uint, req *dto.RescheduleRequest) (appt *database.Appointment, err error) {
	scope := s.tracer.Start(ctx, cnst.SpanSelfReschedule).WithAttrs(attribute.Int64(cnst.AttrAppointmentID, int64(id)))
	ctx = scope.Ctx
	defer func() {
		scope.Fail(err)
		scope.End()
		s.metrics.SelfService(actionReschedule, selfServiceLabel(err))
	}()

	date, slot, err := normalizeSlot(req.Date, req.Time.String())
	if err != nil {
		return nil, err
	}
	endTime, err := normalizeOptionalTime("end_time", req.EndTime.String())
	if err != nil {
		return nil, err
	}
	scope.WithAttrs(attribute.String(cnst.AttrSlotDate, date), attribute.String(cnst.AttrSlotTime, slot))

	err = s.db.Transaction(ctx, func(ctx context.Context) error {
		current, err := s.ownedAppointment(ctx, who, id)
		if err != nil {
			return err
		}
		if current.ClientRescheduleCount >= RescheduleLimit {
			return &LimitError{Action: actionReschedule}
		}
		if current.Date == date && current.Time == slot {
			return invalid("time", "must differ from the current slot")
		}
		free, err := s.conflicts.Available(ctx, date, slot, id)
		if err != nil {
			return err
		}
		if !free {
			return slotConflict(date, slot)
		}
		claimed, err := s.db.ClaimReschedule(ctx, id, date, slot, endTime, RescheduleLimit)
		if errors.Is(err, database.ErrDuplicateKey) {
			return slotConflict(date, slot)
		}
		if err != nil {
			return err
		}
		if !claimed {
			return &LimitError{Action: actionReschedule}
		}
		appt, err = s.db.GetAppointment(ctx, id)
		return err
	})
	fields := []zap.Field{zap.Uint("id", id), zap.Uint("user_id", who.UserID), zap.String("date", date), zap.String("time", slot), zap.String("origin", cnst.OriginClient)}
	if err != nil {
		s.logOutcome("client reschedule rejected", err, fields...)
		return nil, err
	}

	s.logger.Info("appointment rescheduled by client", fields...)
	ev := s.appointmentEvent(notifier.EventAppointmentRescheduled, cnst.OriginClient, appt)
	ev.ClientName = who.Username
	s.publish(ctx, ev)
	return appt, nil
}

func selfServiceLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrLimitReached):
		return "limit"
	case errors.Is(err, ErrSlotConflict):
		return "conflict"
	case errors.Is(err, ErrOwnership), errors.Is(err, ErrNotFound), errors.Is(err, ErrForbidden):
		return "denied"
	case errors.Is(err, ErrValidation):
		return "rejected"
	default:
		return "error"
	}
}
