package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	profilesGenerationKey = "profiles:gen"
	profilesCachePrefix   = "profiles:all:"
)

// ProfileCache holds the rendered profile listing between registrations.
// Listings are stored per generation; Invalidate advances the generation so
// a snapshot read from the store before it can never be served after it.
type ProfileCache interface {
	Generation(ctx context.Context) (int64, error)
	// Get returns the listing cached for gen. ok is false on a miss.
	Get(ctx context.Context, gen int64) (profiles []Profile, ok bool, err error)
	Set(ctx context.Context, gen int64, profiles []Profile) error
	// Invalidate retires the current listing after a new record is stored
	Invalidate(ctx context.Context) error
}

// NopCache never stores anything
type NopCache struct{}

func (NopCache) Generation(context.Context) (int64, error) { return 0, nil }
func (NopCache) Get(context.Context, int64) ([]Profile, bool, error) { return nil, false, nil }
func (NopCache) Set(context.Context, int64, []Profile) error { return nil }
func (NopCache) Invalidate(context.Context) error { return nil }

// RedisProfileCache keeps the listing as a JSON blob with a TTL under a key
// derived from the generation counter
type RedisProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisProfileCache(client *redis.Client, ttl time.Duration) *RedisProfileCache {
	return &RedisProfileCache{client: client, ttl: ttl}
}

func profilesCacheKey(gen int64) string {
	return profilesCachePrefix + strconv.FormatInt(gen, 10)
}

func (c *RedisProfileCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, profilesGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read profile cache generation: %w", err)
	}
	return gen, nil
}

func (c *RedisProfileCache) Get(ctx context.Context, gen int64) ([]Profile, bool, error) {
	data, err := c.client.Get(ctx, profilesCacheKey(gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read profile cache: %w", err)
	}

	var profiles []Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, false, fmt.Errorf("failed to decode profile cache: %w", err)
	}
	return profiles, true, nil
}

func (c *RedisProfileCache) Set(ctx context.Context, gen int64, profiles []Profile) error {
	data, err := json.Marshal(profiles)
	if err != nil {
		return fmt.Errorf("failed to encode profile cache: %w", err)
	}

	if err := c.client.Set(ctx, profilesCacheKey(gen), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write profile cache: %w", err)
	}
	return nil
}

func (c *RedisProfileCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, profilesGenerationKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate profile cache: %w", err)
	}
	return nil
}

var (
	_ ProfileCache = NopCache{}
	_ ProfileCache = (*RedisProfileCache)(nil)
)
