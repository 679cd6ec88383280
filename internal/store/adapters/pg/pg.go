// Package pg implementa store.SiteRepository sobre Postgres (jsonb).
// Backend alternativo para deploys que no usan Firestore.
//
// Esquema esperado:
//
//	CREATE TABLE IF NOT EXISTS sites (
//	    site_key   TEXT PRIMARY KEY,
//	    settings   JSONB NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/cordely/internal/store"
)

type Repository struct {
	pool *pgxpool.Pool
}

// New abre el pool de conexiones y verifica la conexión.
func New(ctx context.Context, dsn string) (*Repository, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pg pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg ping: %w", err)
	}
	return &Repository{pool: pool}, nil
}

func (r *Repository) Get(ctx context.Context, siteKey string) (*store.SiteSettings, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx,
		`SELECT settings FROM sites WHERE site_key = $1`, siteKey,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var s store.SiteSettings
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) GetByOwnerEmail(ctx context.Context, email string) (*store.SiteSettings, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx,
		`SELECT settings FROM sites WHERE lower(settings->>'ownerEmail') = lower($1) LIMIT 1`, email,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var s store.SiteSettings
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) Put(ctx context.Context, s *store.SiteSettings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	// merge-write: el upsert concatena sobre lo existente (jsonb ||)
	_, err = r.pool.Exec(ctx, `
		INSERT INTO sites (site_key, settings)
		VALUES ($1, $2)
		ON CONFLICT (site_key)
		DO UPDATE SET settings = sites.settings || EXCLUDED.settings,
		              updated_at = now()`,
		s.SiteKey, raw)
	return err
}

func (r *Repository) Merge(ctx context.Context, siteKey string, fields map[string]any) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE sites
		SET settings = settings || $2, updated_at = now()
		WHERE site_key = $1`,
		siteKey, raw)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, siteKey string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sites WHERE site_key = $1`, siteKey)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]*store.SiteSettings, error) {
	rows, err := r.pool.Query(ctx, `SELECT settings FROM sites ORDER BY site_key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*store.SiteSettings
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var s store.SiteSettings
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *Repository) Exists(ctx context.Context, siteKey string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM sites WHERE site_key = $1)`, siteKey,
	).Scan(&exists)
	return exists, err
}

func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}
