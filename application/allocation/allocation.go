package allocation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/stock-allocation/cmd/config"
	"github.com/muhammadheryan/stock-allocation/constant"
	"github.com/muhammadheryan/stock-allocation/model"
	allocationrepo "github.com/muhammadheryan/stock-allocation/repository/allocation"
	"github.com/muhammadheryan/stock-allocation/repository/lock"
	stocklotrepo "github.com/muhammadheryan/stock-allocation/repository/stocklot"
	txrepo "github.com/muhammadheryan/stock-allocation/repository/tx"
	"github.com/muhammadheryan/stock-allocation/utils/errors"
	"github.com/muhammadheryan/stock-allocation/utils/logger"
	"github.com/muhammadheryan/stock-allocation/utils/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	opAllocate = "allocate"
	opRelease  = "release"
	opConsume  = "consume"
	opSummary  = "summary"
)

// AllocationApp reserves stock lots against orders and moves those reservations through
// their lifecycle. Every mutating call is one transaction: it commits fully or not at all.
type AllocationApp interface {
	AllocateStockForOrder(ctx context.Context, orderID string, items []model.LineItem) (*model.AllocationResult, error)
	ReleaseAllocationsForOrder(ctx context.Context, orderID string) error
	ConsumeAllocationsForOrder(ctx context.Context, orderID string) error
	GetAllocationSummary(ctx context.Context, orderID string) (*model.OrderAllocationSummary, error)
}

type allocationAppImpl struct {
	config         *config.Config
	txRepo         txrepo.TxRepository
	stockLotRepo   stocklotrepo.StockLotRepository
	allocationRepo allocationrepo.AllocationRepository
	locker         lock.OrderLocker
	auditor        Auditor
	metrics        *metrics.AllocationMetrics
	tracer         trace.Tracer
	newID          func() string
	now            func() time.Time
}

func NewAllocationApp(config *config.Config, txRepo txrepo.TxRepository, stockLotRepo stocklotrepo.StockLotRepository, allocationRepo allocationrepo.AllocationRepository, locker lock.OrderLocker, auditor Auditor, m *metrics.AllocationMetrics) AllocationApp {
	if locker == nil {
		locker = lock.NoopLocker()
	}
	if auditor == nil {
		auditor = NoopAuditor{}
	}
	return &allocationAppImpl{
		config:         config,
		txRepo:         txRepo,
		stockLotRepo:   stockLotRepo,
		allocationRepo: allocationRepo,
		locker:         locker,
		auditor:        auditor,
		metrics:        m,
		tracer:         otel.Tracer("github.com/muhammadheryan/stock-allocation/application/allocation"),
		newID:          uuid.NewString,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (s *allocationAppImpl) AllocateStockForOrder(ctx context.Context, orderID string, items []model.LineItem) (*model.AllocationResult, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "allocation.AllocateStockForOrder", trace.WithAttributes(
		attribute.String("order.id", orderID),
		attribute.Int("order.line_items", len(items)),
	))
	defer span.End()

	if err := validateRequest(orderID, items); err != nil {
		logger.Ctx(ctx).Info("[AllocateStockForOrder] invalid request", zap.String("order_id", orderID), zap.String("error", err.Error()))
		s.auditFailure(ctx, orderID, err)
		s.finish(span, opAllocate, start, err)
		return nil, err
	}
	ordered := sortedByItem(items)

	var result *model.AllocationResult
	err := s.locker.WithOrderLock(ctx, orderID, func(ctx context.Context) error {
		return s.withConflictRetry(ctx, "[AllocateStockForOrder]", orderID, func() error {
			var err error
			result, err = s.allocateOnce(ctx, orderID, ordered)
			return err
		})
	})
	if err != nil {
		if errors.IsType(err, constant.ErrInsufficientStock) {
			s.auditFailure(ctx, orderID, err)
		}
		s.finish(span, opAllocate, start, err)
		return nil, err
	}

	var units int64
	for _, a := range result.Allocations {
		units += a.Quantity
		s.auditTransition(ctx, a, "", constant.AllocationStatusReserved)
	}
	s.metrics.AddReserved(units)
	span.SetAttributes(attribute.Int("allocation.count", len(result.Allocations)), attribute.Int64("allocation.units", units))
	s.finish(span, opAllocate, start, nil)
	return result, nil
}

func (s *allocationAppImpl) allocateOnce(ctx context.Context, orderID string, items []model.LineItem) (*model.AllocationResult, error) {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		return nil, storageError(ctx, "[AllocateStockForOrder] begin tx", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	if err := s.allocationRepo.LockOrderTx(ctx, tx, orderID); err != nil {
		return nil, storageError(ctx, "[AllocateStockForOrder] lock order", err)
	}

	existing, err := s.allocationRepo.ListByOrderTx(ctx, tx, orderID)
	if err != nil {
		return nil, storageError(ctx, "[AllocateStockForOrder] list allocations", err)
	}
	for _, a := range existing {
		if a.Status == constant.AllocationStatusReserved {
			return nil, errors.SetCustomErrorf(constant.ErrAllocationExists, "order %s", orderID)
		}
	}

	created := make([]model.Allocation, 0, len(items))
	for _, item := range items {
		lots, err := s.stockLotRepo.FindLotsForItemTx(ctx, tx, item.ItemID, item.LocationID)
		if err != nil {
			return nil, storageError(ctx, "[AllocateStockForOrder] find lots", err)
		}
		sortLots(lots)

		slices, shortfall := planSlices(lots, item.Quantity)
		if shortfall > 0 {
			logger.Ctx(ctx).Info("[AllocateStockForOrder] insufficient stock",
				zap.String("order_id", orderID),
				zap.String("item_id", item.ItemID),
				zap.Int64("need", item.Quantity),
				zap.Int64("shortfall", shortfall))
			return nil, errors.NewInsufficientStockError(item.ItemID, shortfall)
		}

		for _, sl := range slices {
			if err := s.stockLotRepo.AdjustReservationTx(ctx, tx, sl.lot.ID, sl.quantity, sl.lot.QuantityTotal); err != nil {
				return nil, classify(ctx, "[AllocateStockForOrder] adjust reservation", err)
			}
			alloc := model.Allocation{
				ID:         s.newID(),
				OrderID:    orderID,
				StockLotID: sl.lot.ID,
				ItemID:     item.ItemID,
				Quantity:   sl.quantity,
			}
			if err := s.allocationRepo.CreateTx(ctx, tx, &alloc); err != nil {
				return nil, classify(ctx, "[AllocateStockForOrder] create allocation", err)
			}
			created = append(created, alloc)
		}
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		return nil, storageError(ctx, "[AllocateStockForOrder] commit", err)
	}
	committed = true

	return &model.AllocationResult{OrderID: orderID, Allocations: created}, nil
}

// ReleaseAllocationsForOrder returns every RESERVED slice of the order to its lot.
// Terminal allocations are skipped, so repeating the call is harmless.
func (s *allocationAppImpl) ReleaseAllocationsForOrder(ctx context.Context, orderID string) error {
	return s.finalize(ctx, opRelease, "[ReleaseAllocationsForOrder]", orderID, constant.AllocationStatusReleased)
}

// ConsumeAllocationsForOrder marks every RESERVED slice of the order as used. The lots keep
// their reserved quantity until stock is written off elsewhere.
func (s *allocationAppImpl) ConsumeAllocationsForOrder(ctx context.Context, orderID string) error {
	return s.finalize(ctx, opConsume, "[ConsumeAllocationsForOrder]", orderID, constant.AllocationStatusConsumed)
}

func (s *allocationAppImpl) finalize(ctx context.Context, op, tag, orderID string, to constant.AllocationStatus) error {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "allocation."+tag[1:len(tag)-1], trace.WithAttributes(attribute.String("order.id", orderID)))
	defer span.End()

	if orderID == "" {
		err := errors.NewValidationError("order_id is required")
		s.finish(span, op, start, err)
		return err
	}

	var moved []model.Allocation
	err := s.locker.WithOrderLock(ctx, orderID, func(ctx context.Context) error {
		return s.withConflictRetry(ctx, tag, orderID, func() error {
			var err error
			moved, err = s.finalizeOnce(ctx, tag, orderID, to)
			return err
		})
	})
	if err != nil {
		s.finish(span, op, start, err)
		return err
	}

	for _, a := range moved {
		s.auditTransition(ctx, a, constant.AllocationStatusReserved, to)
	}
	span.SetAttributes(attribute.Int("allocation.count", len(moved)))
	s.finish(span, op, start, nil)
	return nil
}

func (s *allocationAppImpl) finalizeOnce(ctx context.Context, tag, orderID string, to constant.AllocationStatus) ([]model.Allocation, error) {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		return nil, storageError(ctx, tag+" begin tx", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	// a release racing a first allocation must wait for it, not read an empty order
	if err := s.allocationRepo.LockOrderTx(ctx, tx, orderID); err != nil {
		return nil, storageError(ctx, tag+" lock order", err)
	}

	allocs, err := s.allocationRepo.ListByOrderTx(ctx, tx, orderID)
	if err != nil {
		return nil, storageError(ctx, tag+" list allocations", err)
	}

	moved := make([]model.Allocation, 0, len(allocs))
	for _, a := range allocs {
		if a.Status != constant.AllocationStatusReserved {
			continue
		}
		if to == constant.AllocationStatusReleased {
			if err := s.returnToLot(ctx, tx, tag, a); err != nil {
				return nil, err
			}
		}
		if err := s.allocationRepo.TransitionTx(ctx, tx, a.ID, constant.AllocationStatusReserved, to); err != nil {
			return nil, classify(ctx, tag+" transition", err)
		}
		a.Status = to
		moved = append(moved, a)
	}

	if len(moved) == 0 {
		return moved, nil
	}
	if err := s.txRepo.CommitTx(tx); err != nil {
		return nil, storageError(ctx, tag+" commit", err)
	}
	committed = true
	return moved, nil
}

func (s *allocationAppImpl) returnToLot(ctx context.Context, tx *sqlx.Tx, tag string, a model.Allocation) error {
	lot, err := s.stockLotRepo.GetLotTx(ctx, tx, a.StockLotID)
	if err != nil {
		return storageError(ctx, tag+" get lot", err)
	}
	if lot == nil {
		err := errors.SetCustomErrorf(constant.ErrInvariantViolation, "lot %s of allocation %s is gone", a.StockLotID, a.ID)
		logger.Ctx(ctx).Error(tag+" missing lot", zap.String("allocation_id", a.ID), zap.String("lot_id", a.StockLotID))
		return err
	}
	if err := s.stockLotRepo.AdjustReservationTx(ctx, tx, lot.ID, -a.Quantity, lot.QuantityTotal); err != nil {
		return classify(ctx, tag+" adjust reservation", err)
	}
	return nil
}

func (s *allocationAppImpl) GetAllocationSummary(ctx context.Context, orderID string) (*model.OrderAllocationSummary, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "allocation.GetAllocationSummary", trace.WithAttributes(attribute.String("order.id", orderID)))
	defer span.End()

	allocs, err := s.allocationRepo.ListByOrder(ctx, orderID)
	if err != nil {
		err = storageError(ctx, "[GetAllocationSummary] list allocations", err)
		s.finish(span, opSummary, start, err)
		return nil, err
	}
	s.finish(span, opSummary, start, nil)
	return buildSummary(orderID, allocs), nil
}

// withConflictRetry re-runs attempt while it loses an optimistic race, up to the configured
// limit. The last conflict is returned once attempts run out.
func (s *allocationAppImpl) withConflictRetry(ctx context.Context, tag, orderID string, attempt func() error) error {
	limit := 1
	if s.config != nil && s.config.Allocation.MaxConflictRetries > 0 {
		limit = s.config.Allocation.MaxConflictRetries
	}
	var err error
	for i := 1; i <= limit; i++ {
		err = attempt()
		if err == nil || !errors.IsType(err, constant.ErrConflict) {
			return err
		}
		if ctx.Err() != nil {
			return err
		}
		logger.Ctx(ctx).Warn(tag+" conflict, retrying", zap.String("order_id", orderID), zap.Int("attempt", i), zap.String("error", err.Error()))
	}
	return err
}

// classify keeps typed failures and folds anything else into a retryable storage error.
// Invariant violations are logged at error severity.
func classify(ctx context.Context, tag string, err error) error {
	ce, ok := errors.As(err)
	if !ok {
		return storageError(ctx, tag, err)
	}
	if ce.Type() == constant.ErrInvariantViolation {
		logger.Ctx(ctx).Error(tag+" invariant violation", zap.String("error", err.Error()))
	}
	return ce
}

func storageError(ctx context.Context, tag string, err error) error {
	logger.Ctx(ctx).Error(tag, zap.String("error", err.Error()))
	return errors.SetCustomError(constant.ErrStorage)
}

func (s *allocationAppImpl) finish(span trace.Span, op string, start time.Time, err error) {
	s.metrics.Observe(op, outcome(err), time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

func outcome(err error) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}
	ce, ok := errors.As(err)
	if !ok {
		return metrics.OutcomeError
	}
	switch ce.Type() {
	case constant.ErrInsufficientStock:
		return metrics.OutcomeInsufficient
	case constant.ErrAllocationValidation:
		return metrics.OutcomeInvalid
	case constant.ErrConflict:
		return metrics.OutcomeConflict
	default:
		return metrics.OutcomeError
	}
}
