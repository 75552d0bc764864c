package cart

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSlot persists the serialized cart as a single JSON blob under
// SlotKey, optionally prefixed per session so separate storefront
// sessions do not share a cart.
type RedisSlot struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisSlot returns a slot bound to SlotKey. A non-empty sessionID
// scopes the key to one session. ttl of zero means no expiry.
func NewRedisSlot(client *redis.Client, sessionID string, ttl time.Duration) *RedisSlot {
	key := SlotKey
	if sessionID != "" {
		key = SlotKey + ":" + sessionID
	}
	return &RedisSlot{client: client, key: key, ttl: ttl}
}

func (s *RedisSlot) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *RedisSlot) Save(ctx context.Context, data []byte) error {
	return s.client.Set(ctx, s.key, data, s.ttl).Err()
}
