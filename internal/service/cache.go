package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// SearchCache caches search responses in Redis. Rankings are deterministic
// for a fixed corpus, so cached entries stay valid until the corpus is
// reseeded; the TTL bounds staleness after that.
type SearchCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewSearchCache creates a new SearchCache instance.
func NewSearchCache(client *redis.Client, ttl time.Duration) *SearchCache {
	return &SearchCache{redis: client, ttl: ttl}
}

// Key builds a stable cache key from the search inputs.
func (c *SearchCache) Key(query string, restrictions []string, limit int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d",
		strings.ToLower(query), strings.ToLower(strings.Join(restrictions, ",")), limit)))
	return "search:" + hex.EncodeToString(sum[:16])
}

// Get unmarshals a cached response into v. Returns false on a miss.
func (c *SearchCache) Get(ctx context.Context, key string, v interface{}) (bool, error) {
	data, err := c.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache read failed: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("cache entry corrupt: %w", err)
	}
	return true, nil
}

// Set stores v under key with the configured TTL.
func (c *SearchCache) Set(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache write failed: %w", err)
	}
	return nil
}
