package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"telemed/internal/domain"
)

// CachedProviderRepository decorates a ProviderRepository with a read-mostly
// redis cache. Provider configuration changes only on administrative action,
// so last-writer-wins invalidation on mutation is sufficient.
type CachedProviderRepository struct {
	inner ProviderRepository
	rdb   *redis.Client
	ttl   time.Duration
}

func NewCachedProviderRepository(inner ProviderRepository, rdb *redis.Client, ttl time.Duration) *CachedProviderRepository {
	return &CachedProviderRepository{inner: inner, rdb: rdb, ttl: ttl}
}

func providerCacheKey(provider domain.VideoProvider) string {
	return fmt.Sprintf("provider_config:%s", provider)
}

func (r *CachedProviderRepository) GetByProvider(ctx context.Context, provider domain.VideoProvider) (*domain.VideoProviderConfig, error) {
	key := providerCacheKey(provider)

	cached, err := r.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var config domain.VideoProviderConfig
		if err := json.Unmarshal(cached, &config); err == nil {
			return &config, nil
		}
		// Unreadable cache entries are dropped, not returned.
		r.rdb.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		// Redis being down must not take provider lookups with it.
		return r.inner.GetByProvider(ctx, provider)
	}

	config, err := r.inner.GetByProvider(ctx, provider)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(config); err == nil {
		r.rdb.Set(ctx, key, data, r.ttl)
	}

	return config, nil
}

// List always goes to the database: it backs administrative screens and
// provider selection, both of which want fresh priority ordering.
func (r *CachedProviderRepository) List(ctx context.Context) ([]domain.VideoProviderConfig, error) {
	return r.inner.List(ctx)
}

func (r *CachedProviderRepository) Update(ctx context.Context, provider domain.VideoProvider, dto domain.UpdateProviderDTO) (*domain.VideoProviderConfig, error) {
	config, err := r.inner.Update(ctx, provider, dto)
	if err != nil {
		return nil, err
	}
	r.rdb.Del(ctx, providerCacheKey(provider))
	return config, nil
}

func (r *CachedProviderRepository) UpdateCredentials(ctx context.Context, provider domain.VideoProvider, apiKey, apiSecret string) error {
	if err := r.inner.UpdateCredentials(ctx, provider, apiKey, apiSecret); err != nil {
		return err
	}
	r.rdb.Del(ctx, providerCacheKey(provider))
	return nil
}
