package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/habitly/backend/domain"
	"github.com/habitly/backend/repository"
)

// ErrIdentityNotCached marks a cache miss.
var ErrIdentityNotCached = domain.NewError(domain.ErrCodeNotFound, "identity not cached")

type identityCache struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewIdentityCache creates a Redis-backed cache of verified identities. Tokens
// are stored under their SHA-256 digest, never verbatim.
func NewIdentityCache(client *redislib.Client, ttl time.Duration) repository.IdentityCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &identityCache{
		client: client,
		prefix: "identity:",
		ttl:    ttl,
	}
}

func (c *identityCache) Get(ctx context.Context, token string) (*domain.Identity, error) {
	result, err := c.client.Get(ctx, c.key(token)).Result()
	if err != nil {
		if err == redislib.Nil {
			return nil, ErrIdentityNotCached
		}
		return nil, err
	}

	var identity domain.Identity
	if err := json.Unmarshal([]byte(result), &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

func (c *identityCache) Set(ctx context.Context, token string, identity *domain.Identity) error {
	if !identity.Valid() {
		return domain.ErrInvalidPayload
	}

	payload, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(token), payload, c.ttl).Err()
}

func (c *identityCache) Invalidate(ctx context.Context, token string) error {
	return c.client.Del(ctx, c.key(token)).Err()
}

func (c *identityCache) key(token string) string {
	digest := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%s%s", c.prefix, hex.EncodeToString(digest[:]))
}
