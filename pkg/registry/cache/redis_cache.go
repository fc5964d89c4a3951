package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/antiquarium-museum/artifact-register/pkg/registry/domain"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/helpers/util"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/models"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client     *redis.Client
	keyPrefix  string
	defaultTTL time.Duration
}

func NewRedisCache(client *redis.Client, keyPrefix string, defaultTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, keyPrefix: keyPrefix, defaultTTL: defaultTTL}
}

func (c *RedisCache) key(inventoryID string) string {
	return c.keyPrefix + inventoryID
}

// GetArtifact returns the cached artifact, or (nil, false) on a miss or any
// cache failure. Cached payloads were validated before they were written, so
// they are rehydrated without re-running the invariants.
func (c *RedisCache) GetArtifact(ctx context.Context, inventoryID string) (*domain.Artifact, bool) {
	data, err := c.client.Get(ctx, c.key(inventoryID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		log.Printf("[cache] get failed key=%s: %v", c.key(inventoryID), err)
		return nil, false
	}

	var payload models.ArtifactResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		log.Printf("[cache] decode failed key=%s: %v", c.key(inventoryID), err)
		return nil, false
	}
	return util.FromArtifactResponse(payload), true
}

// SetArtifact writes the serialized artifact with the given TTL (or the
// configured default when ttl <= 0). Failures are logged and reported as
// false, never returned as an error.
func (c *RedisCache) SetArtifact(ctx context.Context, inventoryID string, artifact *domain.Artifact, ttl time.Duration) bool {
	data, err := json.Marshal(util.ToArtifactResponse(artifact))
	if err != nil {
		log.Printf("[cache] encode failed key=%s: %v", c.key(inventoryID), err)
		return false
	}

	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	if err := c.client.Set(ctx, c.key(inventoryID), data, ttl).Err(); err != nil {
		log.Printf("[cache] set failed key=%s: %v", c.key(inventoryID), err)
		return false
	}
	return true
}
