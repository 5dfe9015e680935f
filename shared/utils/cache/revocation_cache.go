package cache

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"user-service-backend/shared/config"
)

// RevocationCache memoizes revocation lookups in front of the durable
// ledger. Entries expire after a fixed TTL, so a negative answer written
// by another instance can be stale for at most that long. The cache never
// consults the ledger itself; callers populate it on miss.
type RevocationCache interface {
	// Get returns the cached revocation status, or ok=false on a miss.
	Get(token string) (revoked bool, ok bool)
	// Set inserts or overwrites the entry with a fresh TTL.
	Set(token string, revoked bool)
}

const (
	DefaultTTL           = 10 * time.Minute
	DefaultSweepInterval = 2 * time.Minute
)

type memoryEntry struct {
	revoked   bool
	expiresAt time.Time
}

// MemoryRevocationCache is the in-process backend: a TTL map with a
// janitor goroutine sweeping expired entries.
type MemoryRevocationCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	done    chan struct{}
}

// NewMemoryRevocationCache creates the cache and starts its janitor.
func NewMemoryRevocationCache(ttl, sweepInterval time.Duration) *MemoryRevocationCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if sweepInterval <= 0 {
		sweepInterval = DefaultSweepInterval
	}

	c := &MemoryRevocationCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		done:    make(chan struct{}),
	}

	go c.sweep(sweepInterval)

	return c
}

func (c *MemoryRevocationCache) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for token, entry := range c.entries {
				if now.After(entry.expiresAt) {
					delete(c.entries, token)
				}
			}
			c.mu.Unlock()
		case <-c.done:
			return
		}
	}
}

func (c *MemoryRevocationCache) Get(token string) (bool, bool) {
	c.mu.RLock()
	entry, ok := c.entries[token]
	c.mu.RUnlock()

	if !ok {
		return false, false
	}
	// Expired entries the janitor has not reached yet count as misses.
	if time.Now().After(entry.expiresAt) {
		return false, false
	}
	return entry.revoked, true
}

func (c *MemoryRevocationCache) Set(token string, revoked bool) {
	c.mu.Lock()
	c.entries[token] = memoryEntry{
		revoked:   revoked,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Stop halts the janitor goroutine.
func (c *MemoryRevocationCache) Stop() {
	close(c.done)
}

// RedisRevocationCache is the shared backend for multi-instance
// deployments; Redis handles expiry itself.
type RedisRevocationCache struct {
	client *redis.Client
	ttl    time.Duration
	ctx    context.Context
}

// NewRedisRevocationCache connects to Redis using the service config and
// verifies the connection before returning.
func NewRedisRevocationCache(cfg *config.Config, ttl time.Duration) (*RedisRevocationCache, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	redisDB, err := strconv.Atoi(cfg.RedisDB)
	if err != nil {
		log.Printf("❌ Invalid Redis DB number: %s, using default 0", cfg.RedisDB)
		redisDB = 0
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       redisDB,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Printf("✅ Redis revocation cache connected - %s:%s DB:%d", cfg.RedisHost, cfg.RedisPort, redisDB)

	return &RedisRevocationCache{
		client: client,
		ttl:    ttl,
		ctx:    ctx,
	}, nil
}

func revocationKey(token string) string {
	return "revoked:" + token
}

func (c *RedisRevocationCache) Get(token string) (bool, bool) {
	result, err := c.client.Get(c.ctx, revocationKey(token)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("❌ Revocation cache read error: %v", err)
		}
		return false, false
	}
	return result == "1", true
}

func (c *RedisRevocationCache) Set(token string, revoked bool) {
	value := "0"
	if revoked {
		value = "1"
	}
	if err := c.client.Set(c.ctx, revocationKey(token), value, c.ttl).Err(); err != nil {
		log.Printf("❌ Revocation cache write error: %v", err)
	}
}

// Close closes the Redis connection.
func (c *RedisRevocationCache) Close() error {
	return c.client.Close()
}
