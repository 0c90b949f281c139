package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/stemwithlyn/booking/internal/apiserver/database"
	"github.com/stemwithlyn/booking/internal/common/cnst"
	"github.com/stemwithlyn/booking/internal/common/dto"
	"github.com/stemwithlyn/booking/internal/notifier"
	"github.com/stemwithlyn/booking/internal/payment"
)

const resultReplayed = "replayed"

// errReplayed aborts a finalize that lost the race for its transaction id
var errReplayed = errors.New("transaction already recorded")

// FinalizeResult is the appointment a payment booked
type FinalizeResult struct {
	Appointment *database.Appointment
	// AlreadyProcessed marks a transaction id that had been finalized before
	AlreadyProcessed bool
}

// FinalizePayment books the slot a captured payment was made for.
//
// The transaction id is the idempotency key: a replay returns the appointment
// booked the first time and writes nothing. Payments that are not captured
// book nothing. A slot taken in the meantime fails with ErrSlotConflict and
// the payment is left for manual refund.
func (s *Service) FinalizePayment(ctx context.Context, req *dto.FinalizePaymentRequest) (res *FinalizeResult, err error) {
	started := time.Now()
	txnID := strings.TrimSpace(req.TransactionID)
	scope := s.tracer.Start(ctx, cnst.SpanFinalizePayment).WithAttrs(attribute.String(cnst.AttrTransactionID, txnID))
	ctx = scope.Ctx
	defer func() {
		scope.Fail(err)
		scope.End()
		result := resultLabel(err)
		if res != nil && res.AlreadyProcessed {
			result = resultReplayed
		}
		s.metrics.BookingDone(cnst.OriginClient, result, started)
	}()

	if txnID == "" {
		return nil, invalid("transactionId", "is required")
	}

	if res, err := s.replayed(ctx, txnID); res != nil || err != nil {
		return res, err
	}

	// the payment is for one slot, recurrence is not honoured here
	data := req.AppointmentData
	data.IsAdmin = false
	data.Recurrence = ""
	plan, err := s.planBooking(&data, false)
	if err != nil {
		return nil, err
	}
	date := plan.dates[0]
	scope.WithAttrs(attribute.String(cnst.AttrSlotDate, date), attribute.String(cnst.AttrSlotTime, plan.time))

	if s.verifier == nil {
		return nil, ErrPaymentUnavailable
	}
	conf, err := s.verifier.VerifyOrder(ctx, txnID)
	switch {
	case errors.Is(err, payment.ErrOrderNotFound):
		return nil, fmt.Errorf("%w: order %s not found", ErrPaymentNotCompleted, txnID)
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrPaymentUnavailable, err)
	}
	scope.WithAttrs(attribute.String(cnst.AttrOrderStatus, conf.Status))
	if !conf.Completed() {
		s.logger.Info("payment not completed", zap.String("txn_id", txnID), zap.String("status", conf.Status))
		return nil, fmt.Errorf("%w: status %s", ErrPaymentNotCompleted, conf.Status)
	}

	plan.paid = true
	plan.amount = conf.Gross
	plan.price = conf.Gross
	processor := conf.Processor
	if processor == "" {
		processor = cnst.ProcessorPayPal
	}

	var appt *database.Appointment
	err = s.db.Transaction(ctx, func(ctx context.Context) error {
		client, err := s.clients.Resolve(ctx, plan.client)
		if err != nil {
			return err
		}
		if appt, err = s.insertAppointment(ctx, plan, client.ID, date, true); err != nil {
			return err
		}
		created, err := s.recordLedger(ctx, appt, ledgerEntry{
			amount:    conf.Net(),
			fee:       conf.Fee,
			processor: processor,
			txnID:     txnID,
		})
		if err != nil {
			return err
		}
		if !created {
			return errReplayed
		}
		return nil
	})
	fields := []zap.Field{zap.String("txn_id", txnID), zap.String("date", date), zap.String("time", plan.time), zap.String("origin", cnst.OriginClient)}
	if errors.Is(err, errReplayed) {
		s.logger.Info("concurrent finalize lost the race", fields...)
		return s.replayed(ctx, txnID)
	}
	if err != nil {
		s.logOutcome("paid booking rejected", err, fields...)
		return nil, err
	}

	s.logger.Info("paid booking finalized", append(fields,
		zap.Uint("id", appt.ID),
		zap.String("gross", conf.Gross.StringFixed(2)),
		zap.String("net", conf.Net().StringFixed(2)))...)

	ev := s.appointmentEvent(notifier.EventPaymentFinalized, cnst.OriginClient, appt)
	ev.ClientName = plan.client.Name
	ev.ClientEmail = plan.client.Email
	ev.Amount = conf.Gross.StringFixed(2)
	s.publish(ctx, ev)
	return &FinalizeResult{Appointment: appt}, nil
}

// replayed answers a transaction id that already has a ledger row.
// It returns nil, nil for an unseen id.
func (s *Service) replayed(ctx context.Context, txnID string) (*FinalizeResult, error) {
	profit, err := s.db.GetProfitByTxnID(ctx, txnID)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	res := &FinalizeResult{AlreadyProcessed: true}
	if profit.AppointmentID == nil {
		return res, nil
	}
	appt, err := s.db.GetAppointment(ctx, *profit.AppointmentID)
	switch {
	case isNotFound(err):
		// booked, then cancelled or deleted
	case err != nil:
		return nil, err
	default:
		res.Appointment = appt
	}
	s.logger.Info("payment already finalized", zap.String("txn_id", txnID))
	return res, nil
}
