package tx

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

type TxRepository interface {
	BeginTx(ctx context.Context) (*sqlx.Tx, error)
	CommitTx(tx *sqlx.Tx) error
	RollbackTx(tx *sqlx.Tx) error
}

type txRepo struct {
	db   *sqlx.DB
	opts *sql.TxOptions
}

func NewTxRepository(db *sqlx.DB) TxRepository {
	return &txRepo{db: db}
}

// NewTxRepositoryWithIsolation begins every transaction at the given isolation level.
func NewTxRepositoryWithIsolation(db *sqlx.DB, level sql.IsolationLevel) TxRepository {
	return &txRepo{db: db, opts: &sql.TxOptions{Isolation: level}}
}

func (r *txRepo) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, r.opts)
}

func (r *txRepo) CommitTx(tx *sqlx.Tx) error {
	return tx.Commit()
}

func (r *txRepo) RollbackTx(tx *sqlx.Tx) error {
	return tx.Rollback()
}

// LockClause is the row-locking suffix for SELECTs on the given driver. SQLite has no
// row locks and serializes writers on its own.
func LockClause(driverName string) string {
	switch driverName {
	case "sqlite3", "sqlite":
		return ""
	default:
		return " FOR UPDATE"
	}
}
