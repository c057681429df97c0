package allocation_test

import (
	"context"
	"testing"
	"time"

	"github.com/muhammadheryan/stock-allocation/constant"
	"github.com/muhammadheryan/stock-allocation/model"
	"github.com/muhammadheryan/stock-allocation/repository/allocation"
	"github.com/muhammadheryan/stock-allocation/repository/sqlitetest"
	"github.com/muhammadheryan/stock-allocation/repository/stocklot"
	cerr "github.com/muhammadheryan/stock-allocation/utils/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocationRepository_Lifecycle(t *testing.T) {
	db := sqlitetest.New(t)
	ctx := context.Background()
	lots := stocklot.NewStockLotRepository(db)
	repo := allocation.NewAllocationRepository(db)

	require.NoError(t, lots.CreateLot(ctx, &model.StockLot{ID: "lot-1", ItemID: "sku", QuantityTotal: 10, QuantityReserved: 5, AcquiredAt: time.Now().UTC()}))

	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	a1 := &model.Allocation{ID: "a1", OrderID: "o1", StockLotID: "lot-1", Quantity: 3}
	a2 := &model.Allocation{ID: "a2", OrderID: "o1", StockLotID: "lot-1", Quantity: 2}
	require.NoError(t, repo.CreateTx(ctx, tx, a1))
	require.NoError(t, repo.CreateTx(ctx, tx, a2))
	assert.Equal(t, constant.AllocationStatusReserved, a1.Status)
	assert.False(t, a1.CreatedAt.IsZero())
	require.NoError(t, tx.Commit())

	got, err := repo.ListByOrder(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "sku", got[0].ItemID)
	assert.Equal(t, constant.AllocationStatusReserved, got[0].Status)

	sum, err := repo.SumReservedByLot(ctx, "lot-1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), sum)

	tx, err = db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	locked, err := repo.ListByOrderTx(ctx, tx, "o1")
	require.NoError(t, err)
	require.Len(t, locked, 2)
	require.NoError(t, repo.TransitionTx(ctx, tx, "a1", constant.AllocationStatusReserved, constant.AllocationStatusConsumed))

	// second transition of the same row loses the compare-and-set
	err = repo.TransitionTx(ctx, tx, "a1", constant.AllocationStatusReserved, constant.AllocationStatusReleased)
	assert.True(t, cerr.IsType(err, constant.ErrConflict), "got %v", err)
	require.NoError(t, tx.Commit())

	sum, err = repo.SumReservedByLot(ctx, "lot-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), sum)
}

func TestAllocationRepository_RejectsIllegalEdges(t *testing.T) {
	db := sqlitetest.New(t)
	ctx := context.Background()
	repo := allocation.NewAllocationRepository(db)

	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	err = repo.TransitionTx(ctx, tx, "a1", constant.AllocationStatusConsumed, constant.AllocationStatusReleased)
	assert.True(t, cerr.IsType(err, constant.ErrInvariantViolation))

	err = repo.CreateTx(ctx, tx, &model.Allocation{ID: "z", OrderID: "o", StockLotID: "l", Quantity: 0})
	assert.True(t, cerr.IsType(err, constant.ErrInvariantViolation))
}

func TestAllocationRepository_ListEmpty(t *testing.T) {
	db := sqlitetest.New(t)
	repo := allocation.NewAllocationRepository(db)

	got, err := repo.ListByOrder(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAllocationRepository_LockOrderTxSerializesSameOrder(t *testing.T) {
	db := sqlitetest.NewPooled(t, 2)
	ctx := context.Background()
	repo := allocation.NewAllocationRepository(db)

	first, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, repo.LockOrderTx(ctx, first, "o1"))

	locked := make(chan error, 1)
	go func() {
		second, err := db.BeginTxx(ctx, nil)
		if err != nil {
			locked <- err
			return
		}
		if err := repo.LockOrderTx(ctx, second, "o1"); err != nil {
			_ = second.Rollback()
			locked <- err
			return
		}
		locked <- second.Commit()
	}()

	select {
	case err := <-locked:
		t.Fatalf("second transaction took the order guard while the first held it: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	require.NoError(t, first.Commit())
	select {
	case err := <-locked:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("second transaction never took the order guard")
	}

	var rows int
	require.NoError(t, db.Get(&rows, "SELECT COUNT(*) FROM allocation_order_guards WHERE order_id = ?", "o1"))
	assert.Equal(t, 1, rows)
}
