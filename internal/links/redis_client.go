package links

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the slice of Redis the link cache needs.
// This allows swapping between real Redis and an in-memory implementation.
type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type RealRedisClient struct {
	client *redis.Client
}

func NewRealRedisClient(url string) (*RealRedisClient, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &RealRedisClient{client: redis.NewClient(opt)}, nil
}

func (c *RealRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.client.Set(ctx, key, value, expiration).Err()
}

func (c *RealRedisClient) Get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, key).Result()
}

func (c *RealRedisClient) Del(ctx context.Context, keys ...string) error {
	return c.client.Del(ctx, keys...).Err()
}

// InMemoryRedisClient backs the cache when REDIS_URL is unset and in tests.
// Get mirrors go-redis by returning a "redis: nil" error on missing keys.
type InMemoryRedisClient struct {
	mu       sync.Mutex
	values   map[string]string
	expiries map[string]time.Time
	now      func() time.Time
}

func NewInMemoryRedisClient() *InMemoryRedisClient {
	return &InMemoryRedisClient{
		values:   make(map[string]string),
		expiries: make(map[string]time.Time),
		now:      time.Now,
	}
}

// SetClock overrides the clock used for expiry checks (for testing).
func (c *InMemoryRedisClient) SetClock(nowFn func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = nowFn
}

func (c *InMemoryRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	_ = ctx
	c.mu.Lock()
	defer c.mu.Unlock()
	switch val := value.(type) {
	case []byte:
		c.values[key] = string(val)
	case string:
		c.values[key] = val
	default:
		return errors.New("unsupported value type")
	}
	if expiration > 0 {
		c.expiries[key] = c.now().Add(expiration)
	} else {
		delete(c.expiries, key)
	}
	return nil
}

func (c *InMemoryRedisClient) Get(ctx context.Context, key string) (string, error) {
	_ = ctx
	c.mu.Lock()
	defer c.mu.Unlock()
	if expiry, ok := c.expiries[key]; ok && c.now().After(expiry) {
		delete(c.values, key)
		delete(c.expiries, key)
		return "", errors.New("redis: nil")
	}
	if val, ok := c.values[key]; ok {
		return val, nil
	}
	return "", errors.New("redis: nil")
}

func (c *InMemoryRedisClient) Del(ctx context.Context, keys ...string) error {
	_ = ctx
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.values, key)
		delete(c.expiries, key)
	}
	return nil
}
