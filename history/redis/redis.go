// Package redis implements the history store on Redis.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/docuflow/docuflow/history"
)

// RedisHistoryStore implements history.Store using a Redis list per
// session, which preserves append order.
type RedisHistoryStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ history.Store = (*RedisHistoryStore)(nil)

// RedisOptions configuration for the Redis connection.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string        // Key prefix, default "docuflow:"
	TTL      time.Duration // Expiration for session logs, default 0 (no expiration)
}

// NewRedisHistoryStore creates a new Redis history store.
func NewRedisHistoryStore(opts RedisOptions) *RedisHistoryStore {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "docuflow:"
	}

	return &RedisHistoryStore{
		client: client,
		prefix: prefix,
		ttl:    opts.TTL,
	}
}

func (s *RedisHistoryStore) sessionKey(sessionID string) string {
	return fmt.Sprintf("%shistory:%s", s.prefix, sessionID)
}

// Append pushes the record onto the session's list.
func (s *RedisHistoryStore) Append(ctx context.Context, record history.Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	key := s.sessionKey(record.SessionID)
	pipe := s.client.Pipeline()

	pipe.RPush(ctx, key, data)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append record to redis: %w", err)
	}

	return nil
}

// List returns all records for a session, oldest first.
func (s *RedisHistoryStore) List(ctx context.Context, sessionID string) ([]history.Record, error) {
	entries, err := s.client.LRange(ctx, s.sessionKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list records for session %s: %w", sessionID, err)
	}

	records := make([]history.Record, 0, len(entries))
	for _, entry := range entries {
		var r history.Record
		if err := json.Unmarshal([]byte(entry), &r); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record: %w", err)
		}
		records = append(records, r)
	}

	return records, nil
}

// Clear removes the session's log.
func (s *RedisHistoryStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	return nil
}

// Close closes the Redis client.
func (s *RedisHistoryStore) Close() error {
	return s.client.Close()
}
