//go:build integration

// Package containers starts the record store backends for integration tests.
// Each backend is started once per test binary, by the first suite that asks.
package containers

import (
	"sync"
	"testing"
)

// lazy starts a container on first use and hands the same one to later
// callers in the package.
type lazy[T any] struct {
	mu  sync.Mutex
	val *T
}

func (l *lazy[T]) get(t *testing.T, start func(*testing.T) *T) *T {
	t.Helper()
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.val == nil {
		l.val = start(t)
	}
	return l.val
}

type Manager struct {
	postgres lazy[PostgresContainer]
	mongo    lazy[MongoContainer]
}

var manager = &Manager{}

func GetManager() *Manager {
	return manager
}

// GetPostgres returns a migrated Postgres container.
func (m *Manager) GetPostgres(t *testing.T) *PostgresContainer {
	t.Helper()
	return m.postgres.get(t, NewPostgresContainer)
}

func (m *Manager) GetMongo(t *testing.T) *MongoContainer {
	t.Helper()
	return m.mongo.get(t, NewMongoContainer)
}
