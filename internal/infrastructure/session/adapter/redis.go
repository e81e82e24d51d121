package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/session/port"
)

// sessionTTL bounds how long an abandoned dialog survives. A user who walks
// away mid-questionnaire starts over after this window.
const sessionTTL = 24 * time.Hour

// RedisStore is an adapter that satisfies the port.Store interface using
// Redis, giving dialog state restart resilience. It wraps a go-redis v9
// Client.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a RedisStore from a redis URL and verifies
// connectivity with a ping.
func NewRedisStore(url string) (*RedisStore, error) {
	if url == "" {
		return nil, fmt.Errorf("session: redis url is required")
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("session: parse redis url: %w", err)
	}
	c := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("session: redis ping: %w", err)
	}
	return &RedisStore{client: c}, nil
}

// Ensure interface compliance at compile time
var _ port.Store = (*RedisStore)(nil)

func sessionKey(userID int64) string {
	return fmt.Sprintf("dialog:%d", userID)
}

func (r *RedisStore) Get(ctx context.Context, userID int64) (port.DialogState, error) {
	raw, err := r.client.Get(ctx, sessionKey(userID)).Result()
	if err == redis.Nil {
		return port.DialogState{}, port.ErrMiss
	}
	if err != nil {
		return port.DialogState{}, fmt.Errorf("session: redis get: %w", err)
	}
	var s port.DialogState
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return port.DialogState{}, fmt.Errorf("session: decode state: %w", err)
	}
	if s.Answers == nil {
		s.Answers = make(map[string]string)
	}
	return s, nil
}

func (r *RedisStore) Set(ctx context.Context, userID int64, s port.DialogState) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: encode state: %w", err)
	}
	if err := r.client.Set(ctx, sessionKey(userID), raw, sessionTTL).Err(); err != nil {
		return fmt.Errorf("session: redis set: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context, userID int64) error {
	if err := r.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("session: redis del: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
