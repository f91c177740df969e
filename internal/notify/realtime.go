package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type RealtimePublisher interface {
	// PushToUser is fire-and-forget; callers log failures and move on.
	PushToUser(ctx context.Context, userID uint, event string, payload any) error
}

type realtimeEnvelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// RedisRealtimePublisher publishes per-user events on a redis channel
// that connected gateway processes fan out to websocket sessions.
type RedisRealtimePublisher struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisRealtimePublisher(client redis.UniversalClient, prefix string) *RedisRealtimePublisher {
	if prefix == "" {
		prefix = "rt"
	}
	return &RedisRealtimePublisher{client: client, prefix: prefix}
}

func (p *RedisRealtimePublisher) channel(userID uint) string {
	return fmt.Sprintf("%s:user:%d", p.prefix, userID)
}

func (p *RedisRealtimePublisher) PushToUser(ctx context.Context, userID uint, event string, payload any) error {
	body, err := json.Marshal(realtimeEnvelope{Event: event, Payload: payload})
	if err != nil {
		return fmt.Errorf("marshal realtime payload: %w", err)
	}
	return p.client.Publish(ctx, p.channel(userID), body).Err()
}
