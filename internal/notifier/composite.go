package notifier

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// CompositeNotifier fans an event out to every underlying notifier
type CompositeNotifier struct {
	logger    *zap.Logger
	notifiers []Notifier
}

func NewCompositeNotifier(logger *zap.Logger, notifiers ...Notifier) *CompositeNotifier {
	return &CompositeNotifier{
		logger:    logger.Named("notifier.composite"),
		notifiers: notifiers,
	}
}

// Notify delivers to all notifiers and joins their failures
func (n *CompositeNotifier) Notify(ctx context.Context, event *Event) error {
	var errs []error
	for _, nt := range n.notifiers {
		if err := nt.Notify(ctx, event); err != nil {
			n.logger.Warn("underlying notifier failed", zap.String("type", string(event.Type)), zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (n *CompositeNotifier) Close() error {
	var errs []error
	for _, nt := range n.notifiers {
		errs = append(errs, nt.Close())
	}
	return errors.Join(errs...)
}
