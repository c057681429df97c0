package stocklot

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/stock-allocation/constant"
	"github.com/muhammadheryan/stock-allocation/model"
	txrepo "github.com/muhammadheryan/stock-allocation/repository/tx"
	"github.com/muhammadheryan/stock-allocation/utils/errors"
)

type StockLotRepository interface {
	CreateLot(ctx context.Context, lot *model.StockLot) error
	GetLot(ctx context.Context, lotID string) (*model.StockLot, error)
	ListLots(ctx context.Context, itemID, locationID string) ([]model.StockLot, error)
	GetAvailability(ctx context.Context, itemID, locationID string) (*model.ItemAvailability, error)
	DeleteLot(ctx context.Context, lotID string) error
	FindLotsForItemTx(ctx context.Context, tx *sqlx.Tx, itemID, locationID string) ([]model.StockLot, error)
	GetLotTx(ctx context.Context, tx *sqlx.Tx, lotID string) (*model.StockLot, error)
	AdjustReservationTx(ctx context.Context, tx *sqlx.Tx, lotID string, delta, expectedTotal int64) error
}

type SQL struct {
	conn *sqlx.DB
	lock string
}

func NewStockLotRepository(conn *sqlx.DB) StockLotRepository {
	return &SQL{conn: conn, lock: txrepo.LockClause(conn.DriverName())}
}

const (
	lotColumns = "lot_id, item_id, location_id, quantity_total, quantity_reserved, unit_cost, acquired_at"

	// an empty location matches every location of the item
	itemFilter = "item_id = ? AND (? = '' OR location_id = ?)"

	lotOrder = " ORDER BY acquired_at, unit_cost, lot_id"
)

func (r *SQL) CreateLot(ctx context.Context, lot *model.StockLot) error {
	q := "INSERT INTO stock_lots (" + lotColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?)"
	_, err := r.conn.ExecContext(ctx, q, lot.ID, lot.ItemID, lot.LocationID, lot.QuantityTotal, lot.QuantityReserved, lot.UnitCost, lot.AcquiredAt)
	return err
}

// GetLot returns nil, nil when the lot does not exist.
func (r *SQL) GetLot(ctx context.Context, lotID string) (*model.StockLot, error) {
	var lot model.StockLot
	err := r.conn.GetContext(ctx, &lot, "SELECT "+lotColumns+" FROM stock_lots WHERE lot_id = ?", lotID)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lot, nil
}

func (r *SQL) ListLots(ctx context.Context, itemID, locationID string) ([]model.StockLot, error) {
	lots := make([]model.StockLot, 0)
	q := "SELECT " + lotColumns + " FROM stock_lots WHERE " + itemFilter + lotOrder
	if err := r.conn.SelectContext(ctx, &lots, q, itemID, locationID, locationID); err != nil {
		return nil, err
	}
	return lots, nil
}

func (r *SQL) GetAvailability(ctx context.Context, itemID, locationID string) (*model.ItemAvailability, error) {
	var av model.ItemAvailability
	q := `SELECT ? AS item_id, COUNT(*) AS lot_count, COALESCE(SUM(quantity_total),0) AS quantity_total, COALESCE(SUM(quantity_reserved),0) AS quantity_reserved
FROM stock_lots WHERE ` + itemFilter
	if err := r.conn.GetContext(ctx, &av, q, itemID, itemID, locationID, locationID); err != nil {
		return nil, err
	}
	av.LocationID = locationID
	av.QuantityAvailable = av.QuantityTotal - av.QuantityReserved
	return &av, nil
}

// DeleteLot removes a lot only while nothing is reserved against it.
func (r *SQL) DeleteLot(ctx context.Context, lotID string) error {
	res, err := r.conn.ExecContext(ctx, "DELETE FROM stock_lots WHERE lot_id = ? AND quantity_reserved = 0", lotID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}
	lot, err := r.GetLot(ctx, lotID)
	if err != nil {
		return err
	}
	if lot == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	return errors.SetCustomError(constant.ErrLotHasReservations)
}

// FindLotsForItemTx returns the lots with free quantity for an item, row-locked for the
// rest of tx where the driver supports it.
func (r *SQL) FindLotsForItemTx(ctx context.Context, tx *sqlx.Tx, itemID, locationID string) ([]model.StockLot, error) {
	lots := make([]model.StockLot, 0)
	q := "SELECT " + lotColumns + " FROM stock_lots WHERE " + itemFilter + " AND quantity_reserved < quantity_total" + lotOrder + r.lock
	if err := tx.SelectContext(ctx, &lots, q, itemID, locationID, locationID); err != nil {
		return nil, err
	}
	return lots, nil
}

// GetLotTx returns nil, nil when the lot does not exist.
func (r *SQL) GetLotTx(ctx context.Context, tx *sqlx.Tx, lotID string) (*model.StockLot, error) {
	var lot model.StockLot
	err := tx.GetContext(ctx, &lot, "SELECT "+lotColumns+" FROM stock_lots WHERE lot_id = ?"+r.lock, lotID)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lot, nil
}

// AdjustReservationTx moves quantity_reserved by delta in one guarded statement. It fails
// with ErrConflict when quantity_total is no longer expectedTotal and with
// ErrInvariantViolation when the result would leave [0, quantity_total].
func (r *SQL) AdjustReservationTx(ctx context.Context, tx *sqlx.Tx, lotID string, delta, expectedTotal int64) error {
	if delta == 0 {
		return nil
	}
	q := `UPDATE stock_lots SET quantity_reserved = quantity_reserved + ?
WHERE lot_id = ? AND quantity_total = ? AND quantity_reserved + ? >= 0 AND quantity_reserved + ? <= quantity_total`
	res, err := tx.ExecContext(ctx, q, delta, lotID, expectedTotal, delta, delta)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	lot, err := r.GetLotTx(ctx, tx, lotID)
	if err != nil {
		return err
	}
	switch {
	case lot == nil:
		return errors.SetCustomErrorf(constant.ErrNotFound, "lot %s", lotID)
	case lot.QuantityTotal != expectedTotal:
		return errors.SetCustomErrorf(constant.ErrConflict, "lot %s total changed from %d to %d", lotID, expectedTotal, lot.QuantityTotal)
	default:
		return errors.SetCustomErrorf(constant.ErrInvariantViolation, "lot %s: reserved %d%+d outside [0,%d]", lotID, lot.QuantityReserved, delta, lot.QuantityTotal)
	}
}
