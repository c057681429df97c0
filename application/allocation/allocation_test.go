package allocation

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/stock-allocation/cmd/config"
	"github.com/muhammadheryan/stock-allocation/constant"
	allocationmocks "github.com/muhammadheryan/stock-allocation/mocks/repository/allocation"
	stocklotmocks "github.com/muhammadheryan/stock-allocation/mocks/repository/stocklot"
	txmocks "github.com/muhammadheryan/stock-allocation/mocks/repository/tx"
	"github.com/muhammadheryan/stock-allocation/model"
	"github.com/muhammadheryan/stock-allocation/utils/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type failingAuditor struct{ calls int }

func (f *failingAuditor) Publish(context.Context, model.AuditEvent) error {
	f.calls++
	return stderrors.New("broker down")
}

func newTestApp(t *testing.T, retries int, auditor Auditor) (*allocationAppImpl, *txmocks.TxRepository, *stocklotmocks.StockLotRepository, *allocationmocks.AllocationRepository) {
	txRepo := txmocks.NewTxRepository(t)
	lotRepo := stocklotmocks.NewStockLotRepository(t)
	allocRepo := allocationmocks.NewAllocationRepository(t)
	cfg := &config.Config{Allocation: config.AllocationConfig{MaxConflictRetries: retries, AuditTimeout: time.Second}}
	app := NewAllocationApp(cfg, txRepo, lotRepo, allocRepo, nil, auditor, nil).(*allocationAppImpl)
	ids := 0
	app.newID = func() string {
		ids++
		return "alloc-" + string(rune('0'+ids))
	}
	return app, txRepo, lotRepo, allocRepo
}

func TestAllocateStockForOrder(t *testing.T) {
	lot := model.StockLot{ID: "L1", ItemID: "sku", QuantityTotal: 5, AcquiredAt: time.Now()}
	items := []model.LineItem{{ItemID: "sku", Quantity: 2}}
	conflict := errors.SetCustomError(constant.ErrConflict)

	tests := []struct {
		name       string
		retries    int
		setupMocks func(tx *txmocks.TxRepository, lots *stocklotmocks.StockLotRepository, allocs *allocationmocks.AllocationRepository)
		wantErr    constant.ErrorType
		wantCount  int
	}{
		{
			name:    "conflict then success",
			retries: 3,
			setupMocks: func(tx *txmocks.TxRepository, lots *stocklotmocks.StockLotRepository, allocs *allocationmocks.AllocationRepository) {
				tx.On("BeginTx", mock.Anything).Return(&sqlx.Tx{}, nil).Times(2)
				allocs.On("LockOrderTx", mock.Anything, mock.Anything, "O1").Return(nil).Times(2)
				allocs.On("ListByOrderTx", mock.Anything, mock.Anything, "O1").Return(nil, nil).Times(2)
				lots.On("FindLotsForItemTx", mock.Anything, mock.Anything, "sku", "").Return([]model.StockLot{lot}, nil).Times(2)
				lots.On("AdjustReservationTx", mock.Anything, mock.Anything, "L1", int64(2), int64(5)).Return(conflict).Once()
				lots.On("AdjustReservationTx", mock.Anything, mock.Anything, "L1", int64(2), int64(5)).Return(nil).Once()
				allocs.On("CreateTx", mock.Anything, mock.Anything, mock.AnythingOfType("*model.Allocation")).Return(nil).Once()
				tx.On("RollbackTx", mock.Anything).Return(nil).Once()
				tx.On("CommitTx", mock.Anything).Return(nil).Once()
			},
			wantCount: 1,
		},
		{
			name:    "conflicts exhaust retries",
			retries: 2,
			setupMocks: func(tx *txmocks.TxRepository, lots *stocklotmocks.StockLotRepository, allocs *allocationmocks.AllocationRepository) {
				tx.On("BeginTx", mock.Anything).Return(&sqlx.Tx{}, nil).Times(2)
				allocs.On("LockOrderTx", mock.Anything, mock.Anything, "O1").Return(nil).Times(2)
				allocs.On("ListByOrderTx", mock.Anything, mock.Anything, "O1").Return(nil, nil).Times(2)
				lots.On("FindLotsForItemTx", mock.Anything, mock.Anything, "sku", "").Return([]model.StockLot{lot}, nil).Times(2)
				lots.On("AdjustReservationTx", mock.Anything, mock.Anything, "L1", int64(2), int64(5)).Return(conflict).Times(2)
				tx.On("RollbackTx", mock.Anything).Return(nil).Times(2)
			},
			wantErr: constant.ErrConflict,
		},
		{
			name:    "begin tx failure is a storage error",
			retries: 3,
			setupMocks: func(tx *txmocks.TxRepository, lots *stocklotmocks.StockLotRepository, allocs *allocationmocks.AllocationRepository) {
				tx.On("BeginTx", mock.Anything).Return(nil, stderrors.New("connection refused")).Once()
			},
			wantErr: constant.ErrStorage,
		},
		{
			name:    "order guard failure is a storage error",
			retries: 3,
			setupMocks: func(tx *txmocks.TxRepository, lots *stocklotmocks.StockLotRepository, allocs *allocationmocks.AllocationRepository) {
				tx.On("BeginTx", mock.Anything).Return(&sqlx.Tx{}, nil).Once()
				allocs.On("LockOrderTx", mock.Anything, mock.Anything, "O1").Return(stderrors.New("lock wait timeout exceeded")).Once()
				tx.On("RollbackTx", mock.Anything).Return(nil).Once()
			},
			wantErr: constant.ErrStorage,
		},
		{
			name:    "invariant violation is not retried",
			retries: 3,
			setupMocks: func(tx *txmocks.TxRepository, lots *stocklotmocks.StockLotRepository, allocs *allocationmocks.AllocationRepository) {
				tx.On("BeginTx", mock.Anything).Return(&sqlx.Tx{}, nil).Once()
				allocs.On("LockOrderTx", mock.Anything, mock.Anything, "O1").Return(nil).Once()
				allocs.On("ListByOrderTx", mock.Anything, mock.Anything, "O1").Return(nil, nil).Once()
				lots.On("FindLotsForItemTx", mock.Anything, mock.Anything, "sku", "").Return([]model.StockLot{lot}, nil).Once()
				lots.On("AdjustReservationTx", mock.Anything, mock.Anything, "L1", int64(2), int64(5)).
					Return(errors.SetCustomError(constant.ErrInvariantViolation)).Once()
				tx.On("RollbackTx", mock.Anything).Return(nil).Once()
			},
			wantErr: constant.ErrInvariantViolation,
		},
		{
			name:    "raw driver error on create",
			retries: 3,
			setupMocks: func(tx *txmocks.TxRepository, lots *stocklotmocks.StockLotRepository, allocs *allocationmocks.AllocationRepository) {
				tx.On("BeginTx", mock.Anything).Return(&sqlx.Tx{}, nil).Once()
				allocs.On("LockOrderTx", mock.Anything, mock.Anything, "O1").Return(nil).Once()
				allocs.On("ListByOrderTx", mock.Anything, mock.Anything, "O1").Return(nil, nil).Once()
				lots.On("FindLotsForItemTx", mock.Anything, mock.Anything, "sku", "").Return([]model.StockLot{lot}, nil).Once()
				lots.On("AdjustReservationTx", mock.Anything, mock.Anything, "L1", int64(2), int64(5)).Return(nil).Once()
				allocs.On("CreateTx", mock.Anything, mock.Anything, mock.Anything).Return(stderrors.New("disk full")).Once()
				tx.On("RollbackTx", mock.Anything).Return(nil).Once()
			},
			wantErr: constant.ErrStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, tx, lots, allocs := newTestApp(t, tt.retries, nil)
			tt.setupMocks(tx, lots, allocs)

			res, err := app.AllocateStockForOrder(context.Background(), "O1", items)
			if tt.wantErr != constant.Successful {
				assert.True(t, errors.IsType(err, tt.wantErr), "got %v", err)
				assert.Nil(t, res)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, res.Allocations, tt.wantCount)
		})
	}
}

func TestAllocateStockForOrder_AuditFailureIsSwallowed(t *testing.T) {
	auditor := &failingAuditor{}
	app, tx, lots, allocs := newTestApp(t, 1, auditor)
	tx.On("BeginTx", mock.Anything).Return(&sqlx.Tx{}, nil).Once()
	allocs.On("LockOrderTx", mock.Anything, mock.Anything, "O1").Return(nil).Once()
	allocs.On("ListByOrderTx", mock.Anything, mock.Anything, "O1").Return(nil, nil).Once()
	lots.On("FindLotsForItemTx", mock.Anything, mock.Anything, "sku", "").
		Return([]model.StockLot{{ID: "L1", ItemID: "sku", QuantityTotal: 1}}, nil).Once()
	tx.On("RollbackTx", mock.Anything).Return(nil).Once()

	_, err := app.AllocateStockForOrder(context.Background(), "O1", []model.LineItem{{ItemID: "sku", Quantity: 4}})
	ce, ok := errors.As(err)
	assert.True(t, ok)
	assert.Equal(t, constant.ErrInsufficientStock, ce.Type())
	assert.Equal(t, int64(3), ce.Shortfall())
	assert.Equal(t, 1, auditor.calls)
}

func TestReleaseAllocationsForOrder(t *testing.T) {
	reserved := model.Allocation{ID: "a1", OrderID: "O1", StockLotID: "L1", ItemID: "sku", Quantity: 3, Status: constant.AllocationStatusReserved}
	released := model.Allocation{ID: "a0", OrderID: "O1", StockLotID: "L1", ItemID: "sku", Quantity: 1, Status: constant.AllocationStatusReleased}

	tests := []struct {
		name       string
		setupMocks func(tx *txmocks.TxRepository, lots *stocklotmocks.StockLotRepository, allocs *allocationmocks.AllocationRepository)
		wantErr    constant.ErrorType
	}{
		{
			name: "releases reserved and skips terminal",
			setupMocks: func(tx *txmocks.TxRepository, lots *stocklotmocks.StockLotRepository, allocs *allocationmocks.AllocationRepository) {
				tx.On("BeginTx", mock.Anything).Return(&sqlx.Tx{}, nil).Once()
				allocs.On("LockOrderTx", mock.Anything, mock.Anything, "O1").Return(nil).Once()
				allocs.On("ListByOrderTx", mock.Anything, mock.Anything, "O1").Return([]model.Allocation{released, reserved}, nil).Once()
				lots.On("GetLotTx", mock.Anything, mock.Anything, "L1").Return(&model.StockLot{ID: "L1", QuantityTotal: 10, QuantityReserved: 3}, nil).Once()
				lots.On("AdjustReservationTx", mock.Anything, mock.Anything, "L1", int64(-3), int64(10)).Return(nil).Once()
				allocs.On("TransitionTx", mock.Anything, mock.Anything, "a1", constant.AllocationStatusReserved, constant.AllocationStatusReleased).Return(nil).Once()
				tx.On("CommitTx", mock.Anything).Return(nil).Once()
			},
		},
		{
			name: "nothing to release",
			setupMocks: func(tx *txmocks.TxRepository, lots *stocklotmocks.StockLotRepository, allocs *allocationmocks.AllocationRepository) {
				tx.On("BeginTx", mock.Anything).Return(&sqlx.Tx{}, nil).Once()
				allocs.On("LockOrderTx", mock.Anything, mock.Anything, "O1").Return(nil).Once()
				allocs.On("ListByOrderTx", mock.Anything, mock.Anything, "O1").Return([]model.Allocation{released}, nil).Once()
				tx.On("RollbackTx", mock.Anything).Return(nil).Once()
			},
		},
		{
			name: "missing lot is an invariant violation",
			setupMocks: func(tx *txmocks.TxRepository, lots *stocklotmocks.StockLotRepository, allocs *allocationmocks.AllocationRepository) {
				tx.On("BeginTx", mock.Anything).Return(&sqlx.Tx{}, nil).Once()
				allocs.On("LockOrderTx", mock.Anything, mock.Anything, "O1").Return(nil).Once()
				allocs.On("ListByOrderTx", mock.Anything, mock.Anything, "O1").Return([]model.Allocation{reserved}, nil).Once()
				lots.On("GetLotTx", mock.Anything, mock.Anything, "L1").Return(nil, nil).Once()
				tx.On("RollbackTx", mock.Anything).Return(nil).Once()
			},
			wantErr: constant.ErrInvariantViolation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, tx, lots, allocs := newTestApp(t, 3, nil)
			tt.setupMocks(tx, lots, allocs)

			err := app.ReleaseAllocationsForOrder(context.Background(), "O1")
			if tt.wantErr != constant.Successful {
				assert.True(t, errors.IsType(err, tt.wantErr), "got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConsumeAllocationsForOrder_DoesNotTouchLots(t *testing.T) {
	app, tx, _, allocs := newTestApp(t, 3, nil)
	reserved := model.Allocation{ID: "a1", OrderID: "O1", StockLotID: "L1", Quantity: 3, Status: constant.AllocationStatusReserved}
	tx.On("BeginTx", mock.Anything).Return(&sqlx.Tx{}, nil).Once()
	allocs.On("LockOrderTx", mock.Anything, mock.Anything, "O1").Return(nil).Once()
	allocs.On("ListByOrderTx", mock.Anything, mock.Anything, "O1").Return([]model.Allocation{reserved}, nil).Once()
	allocs.On("TransitionTx", mock.Anything, mock.Anything, "a1", constant.AllocationStatusReserved, constant.AllocationStatusConsumed).Return(nil).Once()
	tx.On("CommitTx", mock.Anything).Return(nil).Once()

	assert.NoError(t, app.ConsumeAllocationsForOrder(context.Background(), "O1"))
}

func TestGetAllocationSummary_StorageError(t *testing.T) {
	app, _, _, allocs := newTestApp(t, 3, nil)
	allocs.On("ListByOrder", mock.Anything, "O1").Return(nil, stderrors.New("timeout")).Once()

	_, err := app.GetAllocationSummary(context.Background(), "O1")
	assert.True(t, errors.IsType(err, constant.ErrStorage))
	assert.True(t, errors.IsRetryable(err))
}
