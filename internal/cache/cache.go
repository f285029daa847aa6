package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store wraps the redis connection used for device-style snapshot storage:
// cached balances, recent recipients and saved form state. Every read is
// best-effort; a miss or a broken payload reads as "nothing cached".
type Store struct {
	conn *redis.Client
}

// Connect parses the redis URL and pings the server.
func Connect(redisURL string) *Store {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}

	conn := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.Ping(ctx).Err(); err != nil {
		log.Printf("warning: redis ping failed: %v", err)
	}

	return &Store{conn: conn}
}

// NewStore wraps an existing client, mainly for tests.
func NewStore(conn *redis.Client) *Store {
	return &Store{conn: conn}
}

// GetJSON loads and unmarshals the value at key into dest. Returns false when
// the key is absent or the payload cannot be decoded.
func (s *Store) GetJSON(ctx context.Context, key string, dest any) bool {
	raw, err := s.conn.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("redis get %s: %v", key, err)
		}
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.Printf("redis decode %s: %v", key, err)
		return false
	}

	return true
}

// SetJSON marshals value and stores it at key. ttl of zero means no expiry.
func (s *Store) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("redis encode %s: %v", key, err)
		return
	}

	if err := s.conn.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Printf("redis set %s: %v", key, err)
	}
}

// Delete removes a key; missing keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) {
	if err := s.conn.Del(ctx, key).Err(); err != nil {
		log.Printf("redis del %s: %v", key, err)
	}
}
