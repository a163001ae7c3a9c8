package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/tetrator/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces cache keys.
const DefaultPrefix = "tetrator:result:"

// Cache implements ports.ResultCache using Redis.
type Cache struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Cache)

// WithTTL sets the expiration for entries.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithPrefix sets the key prefix for entries. An empty prefix keeps DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		if prefix != "" {
			c.prefix = prefix
		}
	}
}

// New creates a cache from a redis:// URL.
func New(url string, opts ...Option) (*Cache, error) {
	redisOpts, err := backend.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return NewFromClient(backend.NewClient(redisOpts), opts...), nil
}

// NewFromClient creates a cache from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Cache {
	cache := &Cache{
		client: client,
		prefix: DefaultPrefix,
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

func (c *Cache) key(k string) string {
	return c.prefix + k
}

// Get retrieves the entry from Redis.
func (c *Cache) Get(ctx context.Context, key string) (domain.CacheEntry, error) {
	val, err := c.client.Get(ctx, c.key(key)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return domain.CacheEntry{}, domain.ErrCacheMiss
		}
		return domain.CacheEntry{}, fmt.Errorf("failed to get from redis: %w", err)
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		return domain.CacheEntry{}, fmt.Errorf("failed to unmarshal entry: %w", err)
	}
	return entry, nil
}

// Put persists the entry to Redis.
func (c *Cache) Put(ctx context.Context, key string, entry domain.CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	// A ttl of 0 keeps the key forever.
	if err := c.client.Set(ctx, c.key(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Ping checks the connection.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}
