package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/stemwithlyn/booking/internal/common/cnst"
	"github.com/stemwithlyn/booking/internal/common/config"
	"github.com/stemwithlyn/booking/pkg/utils"
)

// streamMaxLen bounds the stream, consumers are expected to keep up
const streamMaxLen = 10000

// RedisNotifier appends events to a Redis stream read by the SMS and email relays
type RedisNotifier struct {
	logger     *zap.Logger
	client     redis.UniversalClient
	streamName string
}

// NewRedisNotifier connects to Redis and checks the connection
func NewRedisNotifier(ctx context.Context, logger *zap.Logger, cfg *config.RedisConfig) (*RedisNotifier, error) {
	addrs := utils.SplitList(cfg.Addr, ';', ',')
	opts := &redis.UniversalOptions{
		Addrs:    addrs,
		Username: cfg.Username,
		Password: cfg.Password,
	}
	if cfg.ClusterType == cnst.RedisClusterTypeSentinel {
		opts.MasterName = cfg.MasterName
	}
	if cfg.ClusterType != cnst.RedisClusterTypeCluster {
		// can not set db in cluster mode
		opts.DB = cfg.DB
	}
	client := redis.NewUniversalClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisNotifier{
		logger:     logger.Named("notifier.redis"),
		client:     client,
		streamName: cfg.Stream,
	}, nil
}

// Notify implements Notifier.Notify
func (r *RedisNotifier) Notify(ctx context.Context, event *Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	id, err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: r.streamName,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]interface{}{
			"type":  string(event.Type),
			"event": string(data),
		},
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to add message to stream: %w", err)
	}

	r.logger.Debug("event published", zap.String("type", string(event.Type)), zap.String("messageID", id))
	return nil
}

// Close closes the Redis client
func (r *RedisNotifier) Close() error {
	return r.client.Close()
}
