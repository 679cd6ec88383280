package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dropDatabas3/cordely/internal/cache"
)

// CachedRepository es un read-through cache sobre un SiteRepository.
// Las lecturas por siteKey se cachean con TTL corto; toda escritura invalida
// la entrada para no servir settings viejos tras un merge.
type CachedRepository struct {
	inner SiteRepository
	cache cache.Cache
	ttl   time.Duration
}

// NewCached envuelve el repositorio con el cache dado.
func NewCached(inner SiteRepository, c cache.Cache, ttl time.Duration) *CachedRepository {
	return &CachedRepository{inner: inner, cache: c, ttl: ttl}
}

func cacheKey(siteKey string) string { return "site:" + siteKey }

func (r *CachedRepository) Get(ctx context.Context, siteKey string) (*SiteSettings, error) {
	if b, ok := r.cache.Get(cacheKey(siteKey)); ok {
		var s SiteSettings
		if err := json.Unmarshal(b, &s); err == nil {
			return &s, nil
		}
		// entrada corrupta: se ignora y se relee del backend
		r.cache.Delete(cacheKey(siteKey))
	}

	s, err := r.inner.Get(ctx, siteKey)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(s); err == nil {
		r.cache.Set(cacheKey(siteKey), b, r.ttl)
	}
	return s, nil
}

// GetByOwnerEmail no se cachea: es una búsqueda secundaria de baja frecuencia.
func (r *CachedRepository) GetByOwnerEmail(ctx context.Context, email string) (*SiteSettings, error) {
	return r.inner.GetByOwnerEmail(ctx, email)
}

func (r *CachedRepository) Put(ctx context.Context, s *SiteSettings) error {
	if err := r.inner.Put(ctx, s); err != nil {
		return err
	}
	r.cache.Delete(cacheKey(s.SiteKey))
	return nil
}

func (r *CachedRepository) Merge(ctx context.Context, siteKey string, fields map[string]any) error {
	if err := r.inner.Merge(ctx, siteKey, fields); err != nil {
		return err
	}
	r.cache.Delete(cacheKey(siteKey))
	return nil
}

func (r *CachedRepository) Delete(ctx context.Context, siteKey string) error {
	if err := r.inner.Delete(ctx, siteKey); err != nil {
		return err
	}
	r.cache.Delete(cacheKey(siteKey))
	return nil
}

func (r *CachedRepository) List(ctx context.Context) ([]*SiteSettings, error) {
	return r.inner.List(ctx)
}

func (r *CachedRepository) Exists(ctx context.Context, siteKey string) (bool, error) {
	if _, ok := r.cache.Get(cacheKey(siteKey)); ok {
		return true, nil
	}
	return r.inner.Exists(ctx, siteKey)
}

func (r *CachedRepository) Close() error { return r.inner.Close() }
