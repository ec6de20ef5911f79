package github

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/vytor/ghlookup/internal/logger"
	"github.com/vytor/ghlookup/internal/models"
)

// CachingClient wraps a UserFetcher with a TTL cache of successful lookups.
// Failures are never cached so a retry always reaches the API.
type CachingClient struct {
	next  UserFetcher
	ttl   time.Duration
	now   func() time.Time
	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	profile   models.Profile
	expiresAt time.Time
}

// NewCachingClient wraps next. A non-positive ttl disables caching.
func NewCachingClient(next UserFetcher, ttl time.Duration) *CachingClient {
	return &CachingClient{
		next:  next,
		ttl:   ttl,
		now:   time.Now,
		cache: make(map[string]cacheEntry),
	}
}

// FetchUser returns a cached copy when fresh, otherwise delegates.
func (c *CachingClient) FetchUser(ctx context.Context, username string) (*models.Profile, error) {
	if c.ttl <= 0 {
		return c.next.FetchUser(ctx, username)
	}

	log := logger.FromContext(ctx).WithPrefix("github-cache")
	key := strings.ToLower(username)

	if p, ok := c.get(key); ok {
		log.Debug("cache hit: %s", key)
		return p, nil
	}

	log.Debug("cache miss: %s", key)
	profile, err := c.next.FetchUser(ctx, username)
	if err != nil {
		return nil, err
	}

	c.set(key, profile)
	return profile, nil
}

// Purge drops expired entries and returns how many were removed.
func (c *CachingClient) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, entry := range c.cache {
		if now.After(entry.expiresAt) {
			delete(c.cache, key)
			removed++
		}
	}
	return removed
}

// Run purges expired entries every interval until ctx is done.
func (c *CachingClient) Run(ctx context.Context, interval time.Duration) {
	if c.ttl <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.Purge(); n > 0 {
				logger.Default().WithPrefix("github-cache").Debug("purged %d expired profiles", n)
			}
		}
	}
}

func (c *CachingClient) get(key string) (*models.Profile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.cache[key]
	if !ok || c.now().After(entry.expiresAt) {
		return nil, false
	}
	// Hand out a copy so callers cannot mutate the cached record.
	p := entry.profile
	return &p, true
}

func (c *CachingClient) set(key string, profile *models.Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache[key] = cacheEntry{
		profile:   *profile,
		expiresAt: c.now().Add(c.ttl),
	}
}
