package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/games"
)

const (
	keyPrefix      = "schedule:"
	defaultTTL     = 30 * 24 * time.Hour
	connectTimeout = 5 * time.Second
)

// RedisCache keeps per-date schedules in Redis as JSON under schedule:{date}.
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisCache wraps an existing client. A non-positive ttl uses the default.
func NewRedisCache(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// DialRedis connects to addr and verifies the connection with a ping.
func DialRedis(ctx context.Context, addr string, ttl time.Duration) (*RedisCache, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("cache: redis address is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  connectTimeout,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: connect redis at %s: %w", addr, err)
	}
	return NewRedisCache(client, ttl), nil
}

func (c *RedisCache) Name() string { return "redis" }

// LoadGames returns ErrMiss when the key is absent.
func (c *RedisCache) LoadGames(ctx context.Context, date string) ([]games.Game, error) {
	raw, err := c.client.Get(ctx, Key(date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache: get %s: %w", date, err)
	}

	var day games.DaySchedule
	if err := json.Unmarshal(raw, &day); err != nil {
		return nil, fmt.Errorf("cache: decode %s: %w", date, err)
	}
	return day.Games, nil
}

func (c *RedisCache) StoreGames(ctx context.Context, date string, gs []games.Game) error {
	payload, err := json.Marshal(games.NewDaySchedule(date, gs))
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", date, err)
	}
	if err := c.client.Set(ctx, Key(date), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: set %s: %w", date, err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Key returns the Redis key for a date.
func Key(date string) string {
	return keyPrefix + date
}
