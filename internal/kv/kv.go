// Package kv persists the gallery's collections as whole JSON documents
// under fixed keys. Reads return the full document; writes replace it.
//
// Primary backend: Redis (env REDIS_DSN).
// Fallbacks: Postgres (env DATABASE_URL), then an embedded SQLite file.
// If nothing is configured, an in-memory store is used (development only).
package kv

import (
	"context"
	"errors"
)

// Store reads and replaces whole documents by key. There are no partial
// writes, transactions, or versioning: Set overwrites the full document.
type Store interface {
	// Get returns the document stored under key, or found=false when the
	// key has never been written.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Set replaces the document stored under key.
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// NewStore creates the best available document store:
// Redis > Postgres > SQLite > in-memory (dev fallback).
// When isProd is true the in-memory fallback is not allowed and the
// function returns an error instead.
func NewStore(redisDSN, databaseURL, sqlitePath string, isProd bool) (Store, error) {
	if redisDSN != "" {
		return newRedisStore(redisDSN), nil
	}
	if databaseURL != "" {
		return newPostgresStore(databaseURL), nil
	}
	if sqlitePath != "" {
		return newSQLiteStore(sqlitePath)
	}
	if isProd {
		return nil, errors.New("production requires REDIS_DSN, DATABASE_URL or SQLITE_PATH; in-memory storage is not allowed")
	}
	return NewMemoryStore(), nil
}

// Ready returns a readiness check backed by a cheap read against the
// store. A backend that cannot answer a Get is not ready to serve.
func Ready(s Store) func() error {
	return func() error {
		_, _, err := s.Get(context.Background(), "readyz")
		return err
	}
}
