package kv

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresStore struct {
	dsn string

	mu sync.Mutex
	// pool is lazily initialised on first use.
	pool *pgxpool.Pool
}

func newPostgresStore(dsn string) *postgresStore {
	return &postgresStore{dsn: dsn}
}

func (s *postgresStore) ensurePool(ctx context.Context) (*pgxpool.Pool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pool != nil {
		return s.pool, nil
	}
	pool, err := pgxpool.New(ctx, s.dsn)
	if err != nil {
		return nil, err
	}
	const schema = `CREATE TABLE IF NOT EXISTS gallery_documents (
		key        text PRIMARY KEY,
		doc        bytea NOT NULL,
		updated_at timestamptz NOT NULL DEFAULT now()
	)`
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, err
	}
	s.pool = pool
	return pool, nil
}

func (s *postgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	pool, err := s.ensurePool(ctx)
	if err != nil {
		return nil, false, err
	}

	var doc []byte
	err = pool.QueryRow(ctx, `SELECT doc FROM gallery_documents WHERE key = $1`, key).Scan(&doc)
	if err == pgx.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return doc, true, nil
}

func (s *postgresStore) Set(ctx context.Context, key string, value []byte) error {
	pool, err := s.ensurePool(ctx)
	if err != nil {
		return err
	}

	const q = `INSERT INTO gallery_documents (key, doc, updated_at)
	           VALUES ($1, $2, now())
	           ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`
	_, err = pool.Exec(ctx, q, key, value)
	return err
}

func (s *postgresStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}
	return nil
}
