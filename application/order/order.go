package order

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	allocationapp "github.com/muhammadheryan/stock-allocation/application/allocation"
	"github.com/muhammadheryan/stock-allocation/cmd/config"
	"github.com/muhammadheryan/stock-allocation/constant"
	"github.com/muhammadheryan/stock-allocation/model"
	orderrepo "github.com/muhammadheryan/stock-allocation/repository/order"
	txrepo "github.com/muhammadheryan/stock-allocation/repository/tx"
	"github.com/muhammadheryan/stock-allocation/utils/errors"
	"github.com/muhammadheryan/stock-allocation/utils/logger"
	"github.com/muhammadheryan/stock-allocation/utils/metrics"
	validatorx "github.com/muhammadheryan/stock-allocation/utils/validator"
	"go.uber.org/zap"
)

// OrderApp turns order lifecycle events into allocation calls and owns the order status
// that callers see.
type OrderApp interface {
	PlaceOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error)
	CancelOrder(ctx context.Context, orderID string) (*model.OrderResponse, error)
	FulfillOrder(ctx context.Context, orderID string) (*model.OrderResponse, error)
	GetOrder(ctx context.Context, orderID string) (*model.OrderResponse, error)
}

type orderAppImpl struct {
	config        *config.Config
	txRepo        txrepo.TxRepository
	orderRepo     orderrepo.OrderRepository
	allocationApp allocationapp.AllocationApp
	metrics       *metrics.AllocationMetrics
}

func NewOrderApp(config *config.Config, txRepo txrepo.TxRepository, orderRepo orderrepo.OrderRepository, allocationApp allocationapp.AllocationApp, m *metrics.AllocationMetrics) OrderApp {
	return &orderAppImpl{config: config, txRepo: txRepo, orderRepo: orderRepo, allocationApp: allocationApp, metrics: m}
}

// PlaceOrder records a new order and reserves stock for it. Re-placing a PENDING or
// BACKORDERED order retries allocation with its stored items; any other known order is
// returned as is.
func (s *orderAppImpl) PlaceOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	if req == nil || req.OrderID == "" {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	detail, err := s.orderRepo.GetOrderDetail(ctx, req.OrderID)
	if err != nil {
		logger.Ctx(ctx).Error("[PlaceOrder] get order", zap.String("order_id", req.OrderID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if detail == nil {
		detail, err = s.createOrder(ctx, req)
		if err != nil {
			return nil, err
		}
		if detail.Status == constant.OrderStatusFailed {
			return nil, errors.NewValidationError(detail.FailureReason)
		}
	}

	switch detail.Status {
	case constant.OrderStatusPending, constant.OrderStatusBackordered:
	default:
		return s.response(ctx, detail.ID, detail.Status, detail.FailureReason), nil
	}

	items, err := s.orderRepo.GetOrderItems(ctx, detail.ID)
	if err != nil {
		logger.Ctx(ctx).Error("[PlaceOrder] get order items", zap.String("order_id", detail.ID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return s.allocate(ctx, detail.ID, detail.Status, items)
}

// createOrder persists the order with its items as PENDING, or without items as FAILED when
// the line items are malformed. A concurrent insert of the same order yields that order.
func (s *orderAppImpl) createOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderDetail, error) {
	status := constant.OrderStatusPending
	reason := ""
	if verr := validateItems(req); verr != nil {
		status = constant.OrderStatusFailed
		reason = verr.Detail()
	}

	if insertErr := s.insertOrder(ctx, req, status, reason); insertErr != nil {
		// lost an insert race against a redelivery of the same event
		existing, err := s.orderRepo.GetOrderDetail(ctx, req.OrderID)
		if err == nil && existing != nil {
			return existing, nil
		}
		logger.Ctx(ctx).Error("[PlaceOrder] insert order", zap.String("order_id", req.OrderID), zap.String("error", insertErr.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	s.metrics.OrderTransition("NEW", status.String())
	logger.Ctx(ctx).Info("[PlaceOrder] order created", zap.String("order_id", req.OrderID), zap.String("status", status.String()))
	return &model.OrderDetail{ID: req.OrderID, Status: status, FailureReason: reason}, nil
}

func (s *orderAppImpl) insertOrder(ctx context.Context, req *model.OrderRequest, status constant.OrderStatus, reason string) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	if err := s.orderRepo.InsertOrderTx(ctx, tx, &model.InsertOrderItem{OrderID: req.OrderID, Status: status, FailureReason: reason}); err != nil {
		return err
	}
	if status == constant.OrderStatusPending {
		if err := s.orderRepo.InsertOrderItemsTx(ctx, tx, req.OrderID, req.Items); err != nil {
			return err
		}
	}
	if err := s.txRepo.CommitTx(tx); err != nil {
		return err
	}
	committed = true
	return nil
}

func (s *orderAppImpl) allocate(ctx context.Context, orderID string, from constant.OrderStatus, items []model.LineItem) (*model.OrderResponse, error) {
	err := s.retry(ctx, "[PlaceOrder]", orderID, func() error {
		_, err := s.allocationApp.AllocateStockForOrder(ctx, orderID, items)
		return err
	})

	ce, _ := errors.As(err)
	switch {
	case err == nil, ce.Type() == constant.ErrAllocationExists:
		return s.transition(ctx, orderID, from, constant.OrderStatusAllocated, "")

	case ce.Type() == constant.ErrInsufficientStock:
		resp, terr := s.transition(ctx, orderID, from, constant.OrderStatusBackordered, ce.Error())
		if terr != nil {
			return nil, terr
		}
		resp.ShortItemID = ce.ItemID()
		resp.Shortfall = ce.Shortfall()
		return resp, nil

	case ce.Type() == constant.ErrAllocationValidation:
		if _, terr := s.transition(ctx, orderID, from, constant.OrderStatusFailed, ce.Error()); terr != nil {
			return nil, terr
		}
		return nil, err

	default:
		return nil, s.unavailable(ctx, "[PlaceOrder]", orderID, err)
	}
}

// CancelOrder releases whatever the order still holds. Cancelling twice is a no-op and a
// fulfilled order cannot be cancelled.
func (s *orderAppImpl) CancelOrder(ctx context.Context, orderID string) (*model.OrderResponse, error) {
	detail, err := s.getDetail(ctx, "[CancelOrder]", orderID)
	if err != nil {
		return nil, err
	}

	switch detail.Status {
	case constant.OrderStatusCanceled:
		return s.response(ctx, orderID, detail.Status, detail.FailureReason), nil
	case constant.OrderStatusFulfilled:
		return nil, errors.SetCustomErrorf(constant.ErrInvalidOrderStatus, "order %s is %s", orderID, detail.Status)
	}

	err = s.retry(ctx, "[CancelOrder]", orderID, func() error {
		return s.allocationApp.ReleaseAllocationsForOrder(ctx, orderID)
	})
	if err != nil {
		return nil, s.unavailable(ctx, "[CancelOrder]", orderID, err)
	}
	return s.transition(ctx, orderID, detail.Status, constant.OrderStatusCanceled, "")
}

// FulfillOrder consumes the reservations of an ALLOCATED order.
func (s *orderAppImpl) FulfillOrder(ctx context.Context, orderID string) (*model.OrderResponse, error) {
	detail, err := s.getDetail(ctx, "[FulfillOrder]", orderID)
	if err != nil {
		return nil, err
	}

	switch detail.Status {
	case constant.OrderStatusFulfilled:
		return s.response(ctx, orderID, detail.Status, detail.FailureReason), nil
	case constant.OrderStatusAllocated:
	default:
		return nil, errors.SetCustomErrorf(constant.ErrInvalidOrderStatus, "order %s is %s", orderID, detail.Status)
	}

	err = s.retry(ctx, "[FulfillOrder]", orderID, func() error {
		return s.allocationApp.ConsumeAllocationsForOrder(ctx, orderID)
	})
	if err != nil {
		return nil, s.unavailable(ctx, "[FulfillOrder]", orderID, err)
	}
	return s.transition(ctx, orderID, detail.Status, constant.OrderStatusFulfilled, "")
}

func (s *orderAppImpl) GetOrder(ctx context.Context, orderID string) (*model.OrderResponse, error) {
	detail, err := s.getDetail(ctx, "[GetOrder]", orderID)
	if err != nil {
		return nil, err
	}
	return s.response(ctx, orderID, detail.Status, detail.FailureReason), nil
}

func (s *orderAppImpl) getDetail(ctx context.Context, tag, orderID string) (*model.OrderDetail, error) {
	if orderID == "" {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	detail, err := s.orderRepo.GetOrderDetail(ctx, orderID)
	if err != nil {
		logger.Ctx(ctx).Error(tag+" get order", zap.String("order_id", orderID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if detail == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	return detail, nil
}

// transition writes the new order status. When another writer moved the order first, the
// order's current state is returned instead.
func (s *orderAppImpl) transition(ctx context.Context, orderID string, from, to constant.OrderStatus, reason string) (*model.OrderResponse, error) {
	if from == to {
		return s.response(ctx, orderID, to, reason), nil
	}

	err := s.orderRepo.UpdateOrderStatus(ctx, orderID, from, to, reason)
	if errors.IsType(err, constant.ErrConflict) {
		current, gerr := s.getDetail(ctx, "[UpdateOrderStatus]", orderID)
		if gerr != nil {
			return nil, gerr
		}
		logger.Ctx(ctx).Warn("[UpdateOrderStatus] order moved concurrently",
			zap.String("order_id", orderID),
			zap.String("want", to.String()),
			zap.String("current", current.Status.String()))
		return s.response(ctx, orderID, current.Status, current.FailureReason), nil
	}
	if err != nil {
		logger.Ctx(ctx).Error("[UpdateOrderStatus] update status", zap.String("order_id", orderID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	s.metrics.OrderTransition(from.String(), to.String())
	logger.Ctx(ctx).Info("[UpdateOrderStatus] order status changed",
		zap.String("order_id", orderID),
		zap.String("from", from.String()),
		zap.String("to", to.String()))
	return s.response(ctx, orderID, to, reason), nil
}

// response builds the order view. The allocation summary is best effort.
func (s *orderAppImpl) response(ctx context.Context, orderID string, status constant.OrderStatus, reason string) *model.OrderResponse {
	resp := &model.OrderResponse{OrderID: orderID, Status: status.String(), FailureReason: reason}
	summary, err := s.allocationApp.GetAllocationSummary(ctx, orderID)
	if err != nil {
		logger.Ctx(ctx).Warn("[GetAllocationSummary] summary unavailable", zap.String("order_id", orderID), zap.String("error", err.Error()))
		return resp
	}
	resp.Summary = summary
	return resp
}

// retry runs op with exponential backoff while it fails with a retryable error.
func (s *orderAppImpl) retry(ctx context.Context, tag, orderID string, op func() error) error {
	b := backoff.NewExponentialBackOff()
	maxRetries := 0
	if s.config != nil {
		if s.config.Order.RetryInitialInterval > 0 {
			b.InitialInterval = s.config.Order.RetryInitialInterval
		}
		if s.config.Order.RetryMaxInterval > 0 {
			b.MaxInterval = s.config.Order.RetryMaxInterval
		}
		maxRetries = s.config.Order.MaxRetries
	}
	b.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(max(maxRetries, 0))), ctx)

	return backoff.RetryNotify(func() error {
		err := op()
		if err == nil || errors.IsRetryable(err) {
			return err
		}
		return backoff.Permanent(err)
	}, policy, func(err error, wait time.Duration) {
		logger.Ctx(ctx).Warn(tag+" retrying", zap.String("order_id", orderID), zap.Duration("wait", wait), zap.String("error", err.Error()))
	})
}

// unavailable reports a failure the caller may try again later. Typed errors that are not
// retryable pass through unchanged.
func (s *orderAppImpl) unavailable(ctx context.Context, tag, orderID string, err error) error {
	if ce, ok := errors.As(err); ok && !ce.Retryable() {
		return ce
	}
	logger.Ctx(ctx).Error(tag+" giving up", zap.String("order_id", orderID), zap.String("error", err.Error()))
	return errors.SetCustomErrorf(constant.ErrServiceUnavailable, "order %s", orderID)
}

func validateItems(req *model.OrderRequest) *errors.CustomError {
	if err := validatorx.ValidateStruct(req); err != nil {
		verr := errors.NewValidationError(validatorx.FirstFieldError(err))
		return &verr
	}
	seen := make(map[string]struct{}, len(req.Items))
	for _, it := range req.Items {
		if _, dup := seen[it.ItemID]; dup {
			verr := errors.NewValidationError("duplicate item_id " + it.ItemID)
			return &verr
		}
		seen[it.ItemID] = struct{}{}
	}
	return nil
}
