package links

import (
	"context"
	"time"

	"linkgate/pkg/store"
)

const (
	cacheKeyPrefix  = "linkgate:link:"
	DefaultCacheTTL = 24 * time.Hour
)

// Cache is a read-through cache of link ID -> group link in front of a
// store.Store. Lookups dominate writes here: every /join page view and
// every /start payload resolves the same ID.
type Cache struct {
	client RedisClient
	ttl    time.Duration
}

func NewCache(client RedisClient) *Cache {
	return &Cache{client: client, ttl: DefaultCacheTTL}
}

func (c *Cache) key(id string) string {
	return cacheKeyPrefix + id
}

// Resolve returns the group link for id, consulting the cache first and
// falling back to the store. Store hits are written back with the TTL.
func (c *Cache) Resolve(ctx context.Context, st store.Store, id string) (string, bool, error) {
	if val, err := c.client.Get(ctx, c.key(id)); err == nil && val != "" {
		return val, true, nil
	}
	link, ok, err := st.GetLink(id)
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	_ = c.client.Set(ctx, c.key(id), link.GroupLink, c.ttl)
	return link.GroupLink, true, nil
}

// Put primes the cache after a link is minted.
func (c *Cache) Put(ctx context.Context, id, groupLink string) {
	_ = c.client.Set(ctx, c.key(id), groupLink, c.ttl)
}

// Invalidate drops a cached entry after revocation.
func (c *Cache) Invalidate(ctx context.Context, id string) {
	_ = c.client.Del(ctx, c.key(id))
}
