// Package postgres implements the devis module's repository interfaces on
// top of database/sql and github.com/lib/pq, following the same thin
// *sql.DB wrapper pattern used elsewhere in this codebase.
package postgres

import (
	"database/sql"
)

// Store wraps the shared connection pool and is embedded by every
// per-aggregate repository implementation in this package.
type Store struct {
	db *sql.DB
}

// NewStore builds a Store over an already-opened connection pool.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying connection pool, for callers that need to run
// ad-hoc statements (migrations, health checks) outside the repositories.
func (s *Store) DB() *sql.DB {
	return s.db
}
