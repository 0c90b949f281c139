package notifier

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier writes events to the application log
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notifier.log")}
}

func (n *LogNotifier) Notify(_ context.Context, event *Event) error {
	n.logger.Info("booking event",
		zap.String("id", event.ID),
		zap.String("type", string(event.Type)),
		zap.String("origin", event.Origin),
		zap.Uints("appointment_ids", event.AppointmentIDs),
		zap.Strings("dates", event.Dates),
		zap.String("time", event.Time),
		zap.String("client", event.ClientName),
		zap.Int("staff", len(event.Staff)))
	return nil
}

func (n *LogNotifier) Close() error { return nil }
