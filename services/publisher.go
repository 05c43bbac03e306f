package services

import (
	"context"
	"encoding/json"
	"fmt"

	"employee_management/models"

	"github.com/redis/go-redis/v9"
)

// Publisher pushes committed notifications to a live channel.
type Publisher interface {
	Publish(ctx context.Context, notification models.Notification) error
}

// NopPublisher is used when no live channel is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, models.Notification) error {
	return nil
}

// RedisPublisher publishes each notification as JSON on notifications:<user id>.
type RedisPublisher struct {
	rdb *redis.Client
}

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

func NotificationChannel(userID string) string {
	return "notifications:" + userID
}

func (p *RedisPublisher) Publish(ctx context.Context, notification models.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return err
	}

	if err := p.rdb.Publish(ctx, NotificationChannel(notification.UserID), payload).Err(); err != nil {
		return fmt.Errorf("publish notification %s: %w", notification.ID, err)
	}
	return nil
}
