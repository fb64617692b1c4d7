package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telemed/internal/domain"
)

// countingProviderRepo records how often the backing store is hit.
type countingProviderRepo struct {
	config *domain.VideoProviderConfig
	gets   int
}

func (r *countingProviderRepo) GetByProvider(_ context.Context, provider domain.VideoProvider) (*domain.VideoProviderConfig, error) {
	r.gets++
	if r.config == nil || r.config.Provider != provider {
		return nil, domain.ErrNotFound
	}
	cp := *r.config
	return &cp, nil
}

func (r *countingProviderRepo) List(_ context.Context) ([]domain.VideoProviderConfig, error) {
	if r.config == nil {
		return nil, nil
	}
	return []domain.VideoProviderConfig{*r.config}, nil
}

func (r *countingProviderRepo) Update(_ context.Context, provider domain.VideoProvider, dto domain.UpdateProviderDTO) (*domain.VideoProviderConfig, error) {
	if r.config == nil || r.config.Provider != provider {
		return nil, domain.ErrNotFound
	}
	if dto.PriorityOrder != nil {
		r.config.PriorityOrder = *dto.PriorityOrder
	}
	cp := *r.config
	return &cp, nil
}

func (r *countingProviderRepo) UpdateCredentials(_ context.Context, provider domain.VideoProvider, apiKey, apiSecret string) error {
	if r.config == nil || r.config.Provider != provider {
		return domain.ErrNotFound
	}
	r.config.APIKey = &apiKey
	r.config.APISecret = &apiSecret
	return nil
}

func newCacheFixture(t *testing.T) (*CachedProviderRepository, *countingProviderRepo, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	inner := &countingProviderRepo{config: &domain.VideoProviderConfig{
		ID:            1,
		Provider:      domain.VideoProviderWebRTC,
		IsActive:      true,
		PriorityOrder: 10,
	}}

	return NewCachedProviderRepository(inner, rdb, time.Minute), inner, mr
}

func TestCachedProviderGetHitsBackingStoreOnce(t *testing.T) {
	repo, inner, _ := newCacheFixture(t)
	ctx := context.Background()

	first, err := repo.GetByProvider(ctx, domain.VideoProviderWebRTC)
	require.NoError(t, err)
	second, err := repo.GetByProvider(ctx, domain.VideoProviderWebRTC)
	require.NoError(t, err)

	assert.Equal(t, first.Provider, second.Provider)
	assert.Equal(t, 1, inner.gets, "second read must come from the cache")
}

func TestCachedProviderUpdateInvalidates(t *testing.T) {
	repo, inner, _ := newCacheFixture(t)
	ctx := context.Background()

	_, err := repo.GetByProvider(ctx, domain.VideoProviderWebRTC)
	require.NoError(t, err)

	priority := 5
	_, err = repo.Update(ctx, domain.VideoProviderWebRTC, domain.UpdateProviderDTO{PriorityOrder: &priority})
	require.NoError(t, err)

	config, err := repo.GetByProvider(ctx, domain.VideoProviderWebRTC)
	require.NoError(t, err)
	assert.Equal(t, 5, config.PriorityOrder, "stale entry must not survive an update")
	assert.Equal(t, 2, inner.gets)
}

func TestCachedProviderCredentialRotationInvalidates(t *testing.T) {
	repo, inner, _ := newCacheFixture(t)
	ctx := context.Background()

	_, err := repo.GetByProvider(ctx, domain.VideoProviderWebRTC)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateCredentials(ctx, domain.VideoProviderWebRTC, "k", "s"))

	config, err := repo.GetByProvider(ctx, domain.VideoProviderWebRTC)
	require.NoError(t, err)
	require.NotNil(t, config.APIKey)
	assert.Equal(t, "k", *config.APIKey)
	assert.Equal(t, 2, inner.gets)
}

func TestCachedProviderSurvivesRedisOutage(t *testing.T) {
	repo, inner, mr := newCacheFixture(t)
	ctx := context.Background()

	mr.Close()

	config, err := repo.GetByProvider(ctx, domain.VideoProviderWebRTC)
	require.NoError(t, err)
	assert.Equal(t, domain.VideoProviderWebRTC, config.Provider)
	assert.Equal(t, 1, inner.gets)
}

func TestCachedProviderDropsCorruptEntries(t *testing.T) {
	repo, inner, mr := newCacheFixture(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(providerCacheKey(domain.VideoProviderWebRTC), "not json"))

	config, err := repo.GetByProvider(ctx, domain.VideoProviderWebRTC)
	require.NoError(t, err)
	assert.Equal(t, domain.VideoProviderWebRTC, config.Provider)
	assert.Equal(t, 1, inner.gets, "corrupt entry falls through to the backing store")
}
