package storage

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"docportal/internal/config"
)

const redisKeyPrefix = "docportal:client:"

// Redis stores each client's values in one hash with a sliding TTL.
type Redis struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// NewRedis wraps an existing client. A non-positive ttl keeps hashes forever.
func NewRedis(client redis.Cmdable, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

var _ Storage = (*Redis)(nil)

func redisKey(clientID string) string {
	return redisKeyPrefix + clientID
}

func (r *Redis) Load(ctx context.Context, clientID string) (map[string]string, error) {
	if clientID == "" {
		return nil, ErrClientIDRequired
	}
	vals, err := r.client.HGetAll(ctx, redisKey(clientID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall: %w", err)
	}
	if vals == nil {
		vals = make(map[string]string)
	}
	return vals, nil
}

func (r *Redis) Save(ctx context.Context, clientID string, values map[string]string) error {
	if clientID == "" {
		return ErrClientIDRequired
	}
	if len(values) == 0 {
		return nil
	}
	key := redisKey(clientID)

	// Field order is fixed so the command is deterministic.
	fields := make([]string, 0, len(values))
	for k := range values {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	args := make([]any, 0, len(values)*2)
	for _, k := range fields {
		args = append(args, k, values[k])
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, args...)
		if r.ttl > 0 {
			pipe.Expire(ctx, key, r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save: %w", err)
	}
	return nil
}

func (r *Redis) Remove(ctx context.Context, clientID string, keys ...string) error {
	if clientID == "" {
		return ErrClientIDRequired
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.HDel(ctx, redisKey(clientID), keys...).Err(); err != nil {
		return fmt.Errorf("redis hdel: %w", err)
	}
	return nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
