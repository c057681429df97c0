// Package sqlitetest opens migrated SQLite databases for repository and engine tests.
package sqlitetest

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/muhammadheryan/stock-allocation/repository/migration"
)

// New returns a fresh, migrated in-memory database. The pool is pinned to one connection,
// so transactions from concurrent goroutines run one at a time.
func New(t testing.TB) *sqlx.DB {
	t.Helper()
	return open(t, fmt.Sprintf("file:alloc_%s?mode=memory&cache=shared", uuid.NewString()), 1)
}

// NewPooled returns a fresh, migrated file-backed database whose pool holds up to conns
// connections, so transactions really interleave. A writer waits on another through the
// busy timeout.
func NewPooled(t testing.TB, conns int) *sqlx.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "alloc.db")
	return open(t, fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=10000", path), conns)
}

func open(t testing.TB, dsn string, conns int) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(conns)
	t.Cleanup(func() { _ = db.Close() })

	if err := migration.Run(context.Background(), db.DB, db.DriverName()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
