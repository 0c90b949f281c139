package notifier

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/stemwithlyn/booking/internal/common/config"
)

// Type represents the type of notifier
type Type string

const (
	TypeNoop      Type = "noop"
	TypeLog       Type = "log"
	TypeRedis     Type = "redis"
	TypeComposite Type = "composite"
)

// NewNotifier creates a notifier based on the configuration
func NewNotifier(ctx context.Context, logger *zap.Logger, cfg *config.NotifierConfig) (Notifier, error) {
	switch Type(cfg.Type) {
	case "", TypeNoop:
		return NoopNotifier{}, nil
	case TypeLog:
		return NewLogNotifier(logger), nil
	case TypeRedis:
		return NewRedisNotifier(ctx, logger, &cfg.Redis)
	case TypeComposite:
		notifiers := []Notifier{NewLogNotifier(logger)}
		if cfg.Redis.Addr != "" {
			rn, err := NewRedisNotifier(ctx, logger, &cfg.Redis)
			if err != nil {
				return nil, err
			}
			notifiers = append(notifiers, rn)
		}
		return NewCompositeNotifier(logger, notifiers...), nil
	default:
		return nil, fmt.Errorf("unknown notifier type: %s", cfg.Type)
	}
}
