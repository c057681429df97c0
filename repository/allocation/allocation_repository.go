package allocation

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/stock-allocation/constant"
	"github.com/muhammadheryan/stock-allocation/model"
	txrepo "github.com/muhammadheryan/stock-allocation/repository/tx"
	"github.com/muhammadheryan/stock-allocation/utils/errors"
)

type AllocationRepository interface {
	CreateTx(ctx context.Context, tx *sqlx.Tx, alloc *model.Allocation) error
	TransitionTx(ctx context.Context, tx *sqlx.Tx, allocationID string, from, to constant.AllocationStatus) error
	LockOrderTx(ctx context.Context, tx *sqlx.Tx, orderID string) error
	ListByOrderTx(ctx context.Context, tx *sqlx.Tx, orderID string) ([]model.Allocation, error)
	ListByOrder(ctx context.Context, orderID string) ([]model.Allocation, error)
	SumReservedByLot(ctx context.Context, lotID string) (int64, error)
}

type SQL struct {
	conn   *sqlx.DB
	lock   string
	upsert string
	now    func() time.Time
}

func NewAllocationRepository(conn *sqlx.DB) AllocationRepository {
	return &SQL{
		conn: conn,
		lock:   txrepo.LockClause(conn.DriverName()),
		upsert: guardUpsert(conn.DriverName()),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

const listByOrder = `SELECT a.allocation_id, a.order_id, a.stock_lot_id, l.item_id, a.quantity, a.status, a.created_at, a.updated_at
FROM allocations a
JOIN stock_lots l ON l.lot_id = a.stock_lot_id
WHERE a.order_id = ?
ORDER BY a.created_at, a.allocation_id`

// CreateTx inserts alloc as RESERVED, filling in timestamps.
func (r *SQL) CreateTx(ctx context.Context, tx *sqlx.Tx, alloc *model.Allocation) error {
	if alloc.Quantity <= 0 {
		return errors.SetCustomErrorf(constant.ErrInvariantViolation, "allocation quantity %d", alloc.Quantity)
	}
	now := r.now()
	alloc.Status = constant.AllocationStatusReserved
	alloc.CreatedAt = now
	alloc.UpdatedAt = now
	q := "INSERT INTO allocations (allocation_id, order_id, stock_lot_id, quantity, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)"
	_, err := tx.ExecContext(ctx, q, alloc.ID, alloc.OrderID, alloc.StockLotID, alloc.Quantity, alloc.Status, alloc.CreatedAt, alloc.UpdatedAt)
	return err
}

// TransitionTx is a compare-and-set on status: it fails with ErrConflict unless the row is
// currently in from, and rejects edges outside the allocation transition table.
func (r *SQL) TransitionTx(ctx context.Context, tx *sqlx.Tx, allocationID string, from, to constant.AllocationStatus) error {
	if !from.CanTransitionTo(to) {
		return errors.SetCustomErrorf(constant.ErrInvariantViolation, "illegal allocation transition %s -> %s", from, to)
	}
	res, err := tx.ExecContext(ctx, "UPDATE allocations SET status = ?, updated_at = ? WHERE allocation_id = ? AND status = ?", to, r.now(), allocationID, from)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n != 1 {
		return errors.SetCustomErrorf(constant.ErrConflict, "allocation %s is not %s", allocationID, from)
	}
	return nil
}

func guardUpsert(driverName string) string {
	switch driverName {
	case "sqlite3", "sqlite":
		return "INSERT INTO allocation_order_guards (order_id, locked_at) VALUES (?, ?) ON CONFLICT(order_id) DO UPDATE SET locked_at = excluded.locked_at"
	default:
		return "INSERT INTO allocation_order_guards (order_id, locked_at) VALUES (?, ?) ON DUPLICATE KEY UPDATE locked_at = VALUES(locked_at)"
	}
}

// LockOrderTx writes the order's guard row, holding its write lock until tx ends. A second
// transaction for the same order blocks here, whether or not the order has allocations yet.
func (r *SQL) LockOrderTx(ctx context.Context, tx *sqlx.Tx, orderID string) error {
	_, err := tx.ExecContext(ctx, r.upsert, orderID, r.now())
	return err
}

// ListByOrderTx reads the order's allocations, locking them for the rest of tx.
func (r *SQL) ListByOrderTx(ctx context.Context, tx *sqlx.Tx, orderID string) ([]model.Allocation, error) {
	res := make([]model.Allocation, 0)
	q := listByOrder
	if r.lock != "" {
		q += r.lock + " OF a"
	}
	if err := tx.SelectContext(ctx, &res, q, orderID); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *SQL) ListByOrder(ctx context.Context, orderID string) ([]model.Allocation, error) {
	res := make([]model.Allocation, 0)
	if err := r.conn.SelectContext(ctx, &res, listByOrder, orderID); err != nil {
		return nil, err
	}
	return res, nil
}

// SumReservedByLot totals the RESERVED allocations of a lot; it must equal the lot's
// quantity_reserved.
func (r *SQL) SumReservedByLot(ctx context.Context, lotID string) (int64, error) {
	var total int64
	q := "SELECT COALESCE(SUM(quantity),0) FROM allocations WHERE stock_lot_id = ? AND status = ?"
	if err := r.conn.GetContext(ctx, &total, q, lotID, constant.AllocationStatusReserved); err != nil {
		return 0, err
	}
	return total, nil
}
