// Package memory implementa store.SiteRepository en memoria.
// Para desarrollo y tests; no persiste nada.
package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dropDatabas3/cordely/internal/store"
)

type Repository struct {
	mu    sync.RWMutex
	sites map[string]*store.SiteSettings
}

func New() *Repository {
	return &Repository{sites: map[string]*store.SiteSettings{}}
}

func (r *Repository) Get(_ context.Context, siteKey string) (*store.SiteSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sites[siteKey]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *Repository) GetByOwnerEmail(_ context.Context, email string) (*store.SiteSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sites {
		if strings.EqualFold(s.OwnerEmail, email) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r *Repository) Put(_ context.Context, s *store.SiteSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	if cp.CreatedAt.IsZero() {
		if prev, ok := r.sites[s.SiteKey]; ok {
			cp.CreatedAt = prev.CreatedAt
		} else {
			cp.CreatedAt = time.Now()
		}
	}
	cp.UpdatedAt = time.Now()
	r.sites[s.SiteKey] = &cp
	return nil
}

func (r *Repository) Merge(_ context.Context, siteKey string, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sites[siteKey]
	if !ok {
		return store.ErrNotFound
	}

	// round-trip por JSON para aplicar los campos sueltos sobre el struct
	cur := map[string]any{}
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, &cur); err != nil {
		return err
	}
	for k, v := range fields {
		cur[k] = v
	}
	merged, err := json.Marshal(cur)
	if err != nil {
		return err
	}
	var out store.SiteSettings
	if err := json.Unmarshal(merged, &out); err != nil {
		return err
	}
	out.UpdatedAt = time.Now()
	r.sites[siteKey] = &out
	return nil
}

func (r *Repository) Delete(_ context.Context, siteKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sites[siteKey]; !ok {
		return store.ErrNotFound
	}
	delete(r.sites, siteKey)
	return nil
}

func (r *Repository) List(_ context.Context) ([]*store.SiteSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.sites))
	for k := range r.sites {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*store.SiteSettings, 0, len(keys))
	for _, k := range keys {
		cp := *r.sites[k]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *Repository) Exists(_ context.Context, siteKey string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.sites[siteKey]
	return ok, nil
}

func (r *Repository) Close() error { return nil }
