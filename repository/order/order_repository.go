package order

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/stock-allocation/constant"
	"github.com/muhammadheryan/stock-allocation/model"
	"github.com/muhammadheryan/stock-allocation/utils/errors"
)

type SQL struct {
	conn *sqlx.DB
	now  func() time.Time
}

type OrderRepository interface {
	InsertOrderTx(ctx context.Context, tx *sqlx.Tx, req *model.InsertOrderItem) error
	InsertOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID string, items []model.LineItem) error
	UpdateOrderStatus(ctx context.Context, orderID string, from, to constant.OrderStatus, reason string) error
	GetOrderDetail(ctx context.Context, orderID string) (*model.OrderDetail, error)
	GetOrderItems(ctx context.Context, orderID string) ([]model.LineItem, error)
}

func NewOrderRepository(conn *sqlx.DB) OrderRepository {
	return &SQL{conn: conn, now: func() time.Time { return time.Now().UTC() }}
}

func (r *SQL) InsertOrderTx(ctx context.Context, tx *sqlx.Tx, req *model.InsertOrderItem) error {
	now := r.now()
	_, err := tx.ExecContext(ctx, "INSERT INTO orders (order_id, status, failure_reason, created_at, updated_at) VALUES (?, ?, ?, ?, ?)", req.OrderID, req.Status, req.FailureReason, now, now)
	return err
}

func (r *SQL) InsertOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID string, items []model.LineItem) error {
	q := "INSERT INTO order_items (order_id, item_id, location_id, quantity) VALUES (?, ?, ?, ?)"
	for _, it := range items {
		if _, err := tx.ExecContext(ctx, q, orderID, it.ItemID, it.LocationID, it.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// UpdateOrderStatus moves the order from one status to another, failing with ErrConflict
// when another writer changed it first.
func (r *SQL) UpdateOrderStatus(ctx context.Context, orderID string, from, to constant.OrderStatus, reason string) error {
	res, err := r.conn.ExecContext(ctx, "UPDATE orders SET status = ?, failure_reason = ?, updated_at = ? WHERE order_id = ? AND status = ?", to, reason, r.now(), orderID, from)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n != 1 {
		return errors.SetCustomErrorf(constant.ErrConflict, "order %s is not %s", orderID, from)
	}
	return nil
}

// GetOrderDetail returns nil, nil when the order does not exist.
func (r *SQL) GetOrderDetail(ctx context.Context, orderID string) (*model.OrderDetail, error) {
	var detail model.OrderDetail
	err := r.conn.QueryRowxContext(ctx, "SELECT order_id, status, failure_reason, created_at, updated_at FROM orders WHERE order_id = ?", orderID).StructScan(&detail)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *SQL) GetOrderItems(ctx context.Context, orderID string) ([]model.LineItem, error) {
	items := make([]model.LineItem, 0)
	if err := r.conn.SelectContext(ctx, &items, "SELECT item_id, location_id, quantity FROM order_items WHERE order_id = ? ORDER BY item_id", orderID); err != nil {
		return nil, err
	}
	return items, nil
}
