// Package cache keeps prepared statements keyed by the fingerprint of their
// SQL text.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/Konsultn-Engineering/sqlview/utils"
	lru "github.com/hashicorp/golang-lru/v2"
)

var ErrNotCached = errors.New("cache: statement not cached")

// Preparer is satisfied by *sql.DB and *sql.Conn.
type Preparer interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

type entry struct {
	query string
	stmt  *sql.Stmt
}

type StatementCache struct {
	cache *lru.Cache[uint64, entry]
	mu    sync.RWMutex
}

func NewStatementCache(size int) *StatementCache {
	cache, _ := lru.NewWithEvict(size, func(key uint64, e entry) {
		e.stmt.Close() // Clean up evicted statements
	})

	return &StatementCache{
		cache: cache,
	}
}

func (s *StatementCache) Get(query string) (*sql.Stmt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e, ok := s.cache.Get(utils.FingerprintString(query)); ok && e.query == query {
		return e.stmt, nil
	}
	return nil, ErrNotCached
}

func (s *StatementCache) Set(query string, stmt *sql.Stmt) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.add(utils.FingerprintString(query), entry{query: query, stmt: stmt})
}

// add stores e, closing a statement it replaces under the same key.
func (s *StatementCache) add(key uint64, e entry) {
	if old, ok := s.cache.Peek(key); ok && old.stmt != e.stmt {
		old.stmt.Close()
	}
	s.cache.Add(key, e)
}

// GetOrPrepare returns the cached statement for query, preparing it on db
// first when needed. A fingerprint collision replaces the older statement.
func (s *StatementCache) GetOrPrepare(ctx context.Context, db Preparer, query string) (*sql.Stmt, error) {
	key := utils.FingerprintString(query)

	// Fast path: try to get from cache with read lock
	s.mu.RLock()
	if e, ok := s.cache.Get(key); ok && e.query == query {
		s.mu.RUnlock()
		return e.stmt, nil
	}
	s.mu.RUnlock()

	// Slow path: prepare and cache with write lock
	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock
	if e, ok := s.cache.Get(key); ok && e.query == query {
		return e.stmt, nil
	}

	stmt, err := db.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}

	s.add(key, entry{query: query, stmt: stmt})
	return stmt, nil
}

func (s *StatementCache) Len() int {
	return s.cache.Len()
}

func (s *StatementCache) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Purge() // This will trigger the evict callback for all items
	return nil
}
