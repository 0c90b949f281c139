package booking

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stemwithlyn/booking/internal/apiserver/database"
	"github.com/stemwithlyn/booking/internal/template"
)

type ledgerEntry struct {
	amount    decimal.Decimal
	fee       decimal.Decimal
	processor string
	txnID     string
}

// recordLedger writes the ledger row for appt once. A row already keyed by the
// appointment or the transaction makes it a no-op that reports false.
func (s *Service) recordLedger(ctx context.Context, appt *database.Appointment, entry ledgerEntry) (bool, error) {
	if _, err := s.db.GetProfitByAppointment(ctx, appt.ID); err == nil {
		return false, nil
	} else if !isNotFound(err) {
		return false, err
	}

	data := template.Context{
		Title:  appt.Title,
		Date:   appt.Date,
		Time:   appt.Time,
		Amount: entry.amount.StringFixed(2),
		Addons: appt.Addons,
	}
	if appt.EndTime != nil {
		data.EndTime = *appt.EndTime
	}
	desc, err := s.renderer.Render(s.cfg.LedgerDescription, data)
	if err != nil {
		return false, fmt.Errorf("failed to render ledger description: %w", err)
	}

	id := appt.ID
	profit := &database.Profit{
		Category:      s.cfg.LedgerCategory,
		Description:   desc,
		Amount:        entry.amount,
		Fee:           entry.fee,
		Type:          "income",
		Processor:     entry.processor,
		AppointmentID: &id,
	}
	if entry.txnID != "" {
		txn := entry.txnID
		profit.ProcessorTxnID = &txn
	}
	created, err := s.db.CreateProfitIfAbsent(ctx, profit)
	if err != nil {
		return false, err
	}
	if created {
		s.metrics.LedgerEntry(entry.processor)
		s.logger.Info("ledger entry recorded",
			zap.Uint("appointment_id", appt.ID),
			zap.String("processor", entry.processor),
			zap.String("amount", entry.amount.StringFixed(2)))
	}
	return created, nil
}
