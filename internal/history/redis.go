package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Kazeyhaya/orkcord/internal/domain"
)

const keyPrefix = "orkcord:history:"

// RedisLog keeps the same bounded per-channel window in a Redis list so
// history survives a process restart. Append pushes to the list tail and trims
// to capacity in one pipeline, keeping the size invariant on the server side.
type RedisLog struct {
	client   *redis.Client
	capacity int
}

func NewRedisLog(addr, password string, db, capacity int) (*RedisLog, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisLog{client: client, capacity: capacity}, nil
}

func (l *RedisLog) Append(ctx context.Context, channel string, msg domain.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	key := keyPrefix + channel
	pipe := l.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, int64(-l.capacity), -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	return nil
}

func (l *RedisLog) Recent(ctx context.Context, channel string) ([]domain.Message, error) {
	raw, err := l.client.LRange(ctx, keyPrefix+channel, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	out := make([]domain.Message, 0, len(raw))
	for _, item := range raw {
		var msg domain.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal message: %w", err)
		}
		out = append(out, msg)
	}
	return out, nil
}

func (l *RedisLog) Close() error {
	return l.client.Close()
}

var _ Log = (*RedisLog)(nil)
