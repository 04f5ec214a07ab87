package options

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Triaksa-Space/cookie-notice/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "options:"

// CachedStore is a read-through redis cache in front of another Store.
// Redis failures are logged and the underlying store is used directly.
type CachedStore struct {
	next   Store
	client redis.UniversalClient
	ttl    time.Duration
	log    logger.Logger
}

func NewCachedStore(next Store, client redis.UniversalClient, ttl time.Duration) *CachedStore {
	return &CachedStore{
		next:   next,
		client: client,
		ttl:    ttl,
		log:    logger.Get().WithComponent("options_cache"),
	}
}

func cacheKey(name string) string {
	return cacheKeyPrefix + name
}

func (s *CachedStore) Get(ctx context.Context, name string) (*Record, error) {
	key := cacheKey(name)
	data, err := s.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var rec Record
		if jsonErr := json.Unmarshal(data, &rec); jsonErr == nil {
			return &rec, nil
		}
		s.log.Warn("Dropping undecodable cache entry", logger.OptionName(name))
		s.client.Del(ctx, key)
	case !errors.Is(err, redis.Nil):
		s.log.Error("Option cache read failed", err, logger.OptionName(name))
	}

	rec, err := s.next.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(rec); err == nil {
		if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
			s.log.Error("Option cache write failed", err, logger.OptionName(name))
		}
	}
	return rec, nil
}

// Set writes through and evicts the cached entry.
func (s *CachedStore) Set(ctx context.Context, name string, value []byte, updatedBy int64) error {
	if err := s.next.Set(ctx, name, value, updatedBy); err != nil {
		return err
	}
	if err := s.client.Del(ctx, cacheKey(name)).Err(); err != nil {
		s.log.Error("Option cache eviction failed", err, logger.OptionName(name))
	}
	return nil
}
