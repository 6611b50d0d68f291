package settings

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/crgw/cover-quote/internal/schema"
	"bitbucket.org/crgw/cover-quote/internal/tools/caching"
	"github.com/rs/zerolog"
)

const DefaultCacheTTL = 5 * time.Minute

type CachedStore struct {
	inner  Provider
	cacher *caching.Cacher
	ttl    time.Duration
	log    *zerolog.Logger
}

func NewCachedStore(inner Provider, cacher *caching.Cacher, ttl time.Duration, log *zerolog.Logger) *CachedStore {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &CachedStore{
		inner:  inner,
		cacher: cacher,
		ttl:    ttl,
		log:    log,
	}
}

func cacheKey(profile string) string {
	return "settings:" + profile
}

func (s *CachedStore) Load(ctx context.Context, profile string) (schema.Settings, error) {
	key := cacheKey(profile)

	var cached schema.Settings
	err := s.cacher.Fetch(ctx, key, &cached)
	if err == nil {
		return cached, nil
	}

	if !errors.Is(err, caching.ErrMiss) {
		s.log.Warn().Err(err).Str("profile", profile).Msg("settings cache fetch failed")
	}

	settings, err := s.inner.Load(ctx, profile)
	if err != nil {
		return schema.Settings{}, err
	}

	if err := s.cacher.Store(ctx, key, settings, s.ttl); err != nil {
		s.log.Warn().Err(err).Str("profile", profile).Msg("settings cache store failed")
	}

	return settings, nil
}

// Save writes through to the inner provider and drops the cached copy.
func (s *CachedStore) Save(ctx context.Context, profile string, settings schema.Settings) error {
	if err := s.inner.Save(ctx, profile, settings); err != nil {
		return err
	}

	if err := s.cacher.Delete(ctx, cacheKey(profile)); err != nil {
		s.log.Warn().Err(err).Str("profile", profile).Msg("settings cache invalidation failed")
	}

	return nil
}
