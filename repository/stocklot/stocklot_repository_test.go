package stocklot_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/muhammadheryan/stock-allocation/constant"
	"github.com/muhammadheryan/stock-allocation/model"
	"github.com/muhammadheryan/stock-allocation/repository/sqlitetest"
	"github.com/muhammadheryan/stock-allocation/repository/stocklot"
	cerr "github.com/muhammadheryan/stock-allocation/utils/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)

func seed(t *testing.T, repo stocklot.StockLotRepository, lots ...model.StockLot) {
	t.Helper()
	for i := range lots {
		require.NoError(t, repo.CreateLot(context.Background(), &lots[i]))
	}
}

func TestFindLotsForItemTx_OrderAndFilter(t *testing.T) {
	db := sqlitetest.New(t)
	repo := stocklot.NewStockLotRepository(db)
	ctx := context.Background()

	seed(t, repo,
		model.StockLot{ID: "c", ItemID: "sku", LocationID: "wh1", QuantityTotal: 5, UnitCost: decimal.NewFromInt(3), AcquiredAt: t0},
		model.StockLot{ID: "b", ItemID: "sku", LocationID: "wh1", QuantityTotal: 5, UnitCost: decimal.NewFromInt(1), AcquiredAt: t0},
		model.StockLot{ID: "a", ItemID: "sku", LocationID: "wh2", QuantityTotal: 5, UnitCost: decimal.NewFromInt(1), AcquiredAt: t0},
		model.StockLot{ID: "old", ItemID: "sku", LocationID: "wh2", QuantityTotal: 5, UnitCost: decimal.NewFromInt(9), AcquiredAt: t0.Add(-time.Hour)},
		model.StockLot{ID: "full", ItemID: "sku", LocationID: "wh1", QuantityTotal: 2, QuantityReserved: 2, AcquiredAt: t0.Add(-2 * time.Hour)},
		model.StockLot{ID: "other", ItemID: "other", QuantityTotal: 5, AcquiredAt: t0},
	)

	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	lots, err := repo.FindLotsForItemTx(ctx, tx, "sku", "")
	require.NoError(t, err)
	ids := make([]string, 0, len(lots))
	for _, l := range lots {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []string{"old", "a", "b", "c"}, ids)

	lots, err = repo.FindLotsForItemTx(ctx, tx, "sku", "wh1")
	require.NoError(t, err)
	require.Len(t, lots, 2)
	assert.Equal(t, "b", lots[0].ID)
	assert.True(t, lots[0].UnitCost.Equal(decimal.NewFromInt(1)))
	assert.True(t, lots[0].AcquiredAt.Equal(t0))
}

func TestAdjustReservationTx(t *testing.T) {
	db := sqlitetest.New(t)
	repo := stocklot.NewStockLotRepository(db)
	ctx := context.Background()
	seed(t, repo, model.StockLot{ID: "l1", ItemID: "sku", QuantityTotal: 10, AcquiredAt: t0})

	tests := []struct {
		name          string
		delta         int64
		expectedTotal int64
		wantErr       error
		wantReserved  int64
	}{
		{name: "reserve", delta: 7, expectedTotal: 10, wantReserved: 7},
		{name: "over total", delta: 4, expectedTotal: 10, wantErr: cerr.SetCustomError(constant.ErrInvariantViolation), wantReserved: 7},
		{name: "stale total", delta: 1, expectedTotal: 9, wantErr: cerr.SetCustomError(constant.ErrConflict), wantReserved: 7},
		{name: "release", delta: -7, expectedTotal: 10, wantReserved: 0},
		{name: "below zero", delta: -1, expectedTotal: 10, wantErr: cerr.SetCustomError(constant.ErrInvariantViolation), wantReserved: 0},
		{name: "zero delta", delta: 0, expectedTotal: 10, wantReserved: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := db.BeginTxx(ctx, nil)
			require.NoError(t, err)
			err = repo.AdjustReservationTx(ctx, tx, "l1", tt.delta, tt.expectedTotal)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, stderrors.Is(err, tt.wantErr), "got %v", err)
				require.NoError(t, tx.Rollback())
			} else {
				require.NoError(t, err)
				require.NoError(t, tx.Commit())
			}

			lot, err := repo.GetLot(ctx, "l1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantReserved, lot.QuantityReserved)
		})
	}
}

func TestAdjustReservationTx_MissingLot(t *testing.T) {
	db := sqlitetest.New(t)
	repo := stocklot.NewStockLotRepository(db)
	ctx := context.Background()

	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	err = repo.AdjustReservationTx(ctx, tx, "ghost", 1, 1)
	assert.True(t, cerr.IsType(err, constant.ErrNotFound), "got %v", err)
}

func TestDeleteLot_GuardsReservations(t *testing.T) {
	db := sqlitetest.New(t)
	repo := stocklot.NewStockLotRepository(db)
	ctx := context.Background()
	seed(t, repo,
		model.StockLot{ID: "busy", ItemID: "sku", QuantityTotal: 3, QuantityReserved: 1, AcquiredAt: t0},
		model.StockLot{ID: "idle", ItemID: "sku", QuantityTotal: 3, AcquiredAt: t0},
	)

	assert.True(t, cerr.IsType(repo.DeleteLot(ctx, "busy"), constant.ErrLotHasReservations))
	assert.True(t, cerr.IsType(repo.DeleteLot(ctx, "ghost"), constant.ErrNotFound))
	require.NoError(t, repo.DeleteLot(ctx, "idle"))

	lot, err := repo.GetLot(ctx, "idle")
	require.NoError(t, err)
	assert.Nil(t, lot)
}

func TestGetAvailability(t *testing.T) {
	db := sqlitetest.New(t)
	repo := stocklot.NewStockLotRepository(db)
	ctx := context.Background()
	seed(t, repo,
		model.StockLot{ID: "l1", ItemID: "sku", LocationID: "wh1", QuantityTotal: 10, QuantityReserved: 4, AcquiredAt: t0},
		model.StockLot{ID: "l2", ItemID: "sku", LocationID: "wh2", QuantityTotal: 5, QuantityReserved: 0, AcquiredAt: t0},
	)

	av, err := repo.GetAvailability(ctx, "sku", "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), av.LotCount)
	assert.Equal(t, int64(15), av.QuantityTotal)
	assert.Equal(t, int64(4), av.QuantityReserved)
	assert.Equal(t, int64(11), av.QuantityAvailable)

	av, err = repo.GetAvailability(ctx, "sku", "wh2")
	require.NoError(t, err)
	assert.Equal(t, int64(5), av.QuantityAvailable)

	av, err = repo.GetAvailability(ctx, "nothing", "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), av.LotCount)
	assert.Equal(t, "nothing", av.ItemID)
}
