package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// MaxStreamLen is the approximate max length of each stream.
const MaxStreamLen = 100000

// Sink delivers a serialized record to one analytics stream.
type Sink interface {
	Publish(ctx context.Context, stream string, payload any) error
	Ping(ctx context.Context) error
}

// StreamSink publishes records to Redis streams for an external consumer.
type StreamSink struct {
	client *redis.Client
}

// NewStreamSink connects to Redis and returns a stream-backed sink.
func NewStreamSink(ctx context.Context, redisURL string) (*StreamSink, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	// Connection pool settings
	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &StreamSink{client: client}, nil
}

// Publish appends the record to the stream, trimming to ~MaxStreamLen.
func (s *StreamSink) Publish(ctx context.Context, stream string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	err = s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		MaxLen: MaxStreamLen,
		Approx: true, // ~MAXLEN for performance
		ID:     "*",
		Values: map[string]interface{}{
			"payload": string(data),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd: %w", err)
	}
	return nil
}

// Ping checks Redis connectivity.
func (s *StreamSink) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (s *StreamSink) Close() error {
	return s.client.Close()
}

// LogSink writes records to the log. It is the fallback when no stream
// transport is configured, so events remain visible in development.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink returns a log-backed sink.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger.With("component", "analytics.logsink")}
}

// Publish logs the record.
func (s *LogSink) Publish(ctx context.Context, stream string, payload any) error {
	s.logger.InfoContext(ctx, "analytics record",
		"stream", stream,
		"payload", payload,
	)
	return nil
}

// Ping always succeeds; there is no remote dependency.
func (s *LogSink) Ping(ctx context.Context) error {
	return nil
}
