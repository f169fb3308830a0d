package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/setjustgo/travel-assistant/internal/models"
	"go.uber.org/zap"
)

// DefaultCacheTTL bounds how stale a cached user or event record may be.
const DefaultCacheTTL = 1 * time.Minute

// Cached decorates a Store with a Redis read-through cache for user and
// event lookups, the two hot read paths of the engine. Writes and queries
// pass straight through; cache failures fall back to the inner store.
type Cached struct {
	inner  Store
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCached creates a caching decorator around inner.
func NewCached(inner Store, client *redis.Client, ttl time.Duration, logger *zap.Logger) *Cached {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cached{inner: inner, client: client, ttl: ttl, logger: logger}
}

// GetUser fetches an account record, consulting the cache first.
func (c *Cached) GetUser(ctx context.Context, userID string) (*models.User, error) {
	key := "assistant:cache:user:" + userID
	user := &models.User{}
	if c.lookup(ctx, key, user) {
		return user, nil
	}

	user, err := c.inner.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.fill(ctx, key, user)
	return user, nil
}

// GetEvent fetches an event record, consulting the cache first.
func (c *Cached) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	key := "assistant:cache:event:" + eventID
	event := &models.Event{}
	if c.lookup(ctx, key, event) {
		return event, nil
	}

	event, err := c.inner.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	c.fill(ctx, key, event)
	return event, nil
}

func (c *Cached) lookup(ctx context.Context, key string, out any) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil && c.logger != nil {
			c.logger.Debug("cache_lookup_failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false
	}
	return true
}

func (c *Cached) fill(ctx context.Context, key string, record any) {
	raw, err := json.Marshal(record)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil && c.logger != nil {
		c.logger.Debug("cache_fill_failed", zap.String("key", key), zap.Error(err))
	}
}

// Add delegates to the inner store.
func (c *Cached) Add(ctx context.Context, collection string, record any) (string, error) {
	return c.inner.Add(ctx, collection, record)
}

// Find delegates to the inner store.
func (c *Cached) Find(ctx context.Context, collection string, q Query, out any) error {
	return c.inner.Find(ctx, collection, q, out)
}

// Update delegates to the inner store.
func (c *Cached) Update(ctx context.Context, collection string, id string, fields map[string]any) error {
	return c.inner.Update(ctx, collection, id, fields)
}

// Ping verifies both the cache and the inner store.
func (c *Cached) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return err
	}
	return c.inner.Ping(ctx)
}

var _ Store = (*Cached)(nil)
