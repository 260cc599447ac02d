// Package publisher announces imported games on a Redis stream so other
// services can react without polling the database.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/courtiq/cogscore/internal/config"
)

// RedisPublisher publishes events to Redis streams.
type RedisPublisher struct {
	client *redis.Client
	stream string
}

// NewRedisPublisher connects to redisURL and verifies the connection.
func NewRedisPublisher(redisURL string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return NewRedisStreamPublisher(client), nil
}

// NewRedisStreamPublisher wraps an existing client. Events go to
// config.EventStream.
func NewRedisStreamPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client, stream: config.EventStream}
}

// Close closes the Redis connection.
func (rp *RedisPublisher) Close() error {
	return rp.client.Close()
}

// HealthCheck pings Redis.
func (rp *RedisPublisher) HealthCheck(ctx context.Context) error {
	return rp.client.Ping(ctx).Err()
}

// PublishGameImported appends one imported-game event to the stream.
func (rp *RedisPublisher) PublishGameImported(ctx context.Context, event any) error {
	values, err := streamValues(event, time.Now())
	if err != nil {
		return err
	}
	if err := rp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: rp.stream,
		Values: values,
	}).Err(); err != nil {
		return fmt.Errorf("xadd %s: %w", rp.stream, err)
	}
	return nil
}

func streamValues(event any, now time.Time) (map[string]any, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode event: %w", err)
	}
	return map[string]any{
		"data":      string(data),
		"timestamp": now.Unix(),
	}, nil
}
