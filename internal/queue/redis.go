// =============================
// File: internal/queue/redis.go
// =============================
package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Source is one end of the durable notification queue: a blocking pop that
// suspends until an item is available or the context is cancelled.
type Source interface {
	Pop(ctx context.Context) ([]byte, error)
	Close() error
}

// RedisSource pops JSON notifications from a Redis list with BLPOP.
type RedisSource struct {
	client *redis.Client
	queue  string
	logger *zap.Logger
}

// NewRedisSource connects to Redis and verifies connectivity, retrying the
// initial ping with exponential backoff before giving up.
func NewRedisSource(ctx context.Context, url, queueName string, logger *zap.Logger) (*RedisSource, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)

	backoffPolicy := backoff.NewExponentialBackOff()
	backoffPolicy.InitialInterval = 200 * time.Millisecond
	backoffPolicy.MaxInterval = 2 * time.Second

	notify := func(err error, duration time.Duration) {
		logger.Info("Retrying redis ping", zap.Error(err), zap.Duration("backoff", duration))
	}

	operation := func() (string, error) {
		return client.Ping(ctx).Result()
	}

	if _, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoffPolicy),
		backoff.WithMaxTries(5),
		backoff.WithNotify(notify)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis not reachable: %w", err)
	}

	logger.Info("Connected to redis queue", zap.String("queue", queueName))

	return &RedisSource{
		client: client,
		queue:  queueName,
		logger: logger,
	}, nil
}

// Pop blocks until an item is available on the queue. The zero BLPOP timeout
// means it suspends indefinitely; cancellation comes from the context.
func (s *RedisSource) Pop(ctx context.Context) ([]byte, error) {
	result, err := s.client.BLPop(ctx, 0, s.queue).Result()
	if err != nil {
		return nil, fmt.Errorf("blpop %s: %w", s.queue, err)
	}
	// BLPOP returns [key, value].
	if len(result) < 2 {
		return nil, fmt.Errorf("blpop %s: short reply", s.queue)
	}
	return []byte(result[1]), nil
}

func (s *RedisSource) Close() error {
	return s.client.Close()
}
