package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"puissance4/games"
)

// DefaultRedisKey is the list holding one JSON record per saved tally.
const DefaultRedisKey = "connect4:scores"

// RedisStore appends score records to a Redis list.
type RedisStore struct {
	rdb *redis.Client
	key string
}

// OpenRedis connects to the server in rawURL (redis:// or rediss://).
func OpenRedis(ctx context.Context, rawURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewRedisStore(ctx, redis.NewClient(opts), DefaultRedisKey)
}

// NewRedisStore wraps an existing client. The list lives under key.
func NewRedisStore(ctx context.Context, rdb *redis.Client, key string) (*RedisStore, error) {
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{rdb: rdb, key: key}, nil
}

func (s *RedisStore) Append(ctx context.Context, rec ScoreRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode score: %w", err)
	}
	if err := s.rdb.RPush(ctx, s.key, raw).Err(); err != nil {
		return fmt.Errorf("push score: %w", err)
	}
	return nil
}

func (s *RedisStore) Summary(ctx context.Context) (games.Summary, error) {
	var summary games.Summary

	items, err := s.rdb.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return summary, fmt.Errorf("read scores: %w", err)
	}
	for _, item := range items {
		var rec ScoreRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return games.Summary{}, fmt.Errorf("decode score: %w", err)
		}
		summary.Add(rec.tally())
	}
	return summary, nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
