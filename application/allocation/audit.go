package allocation

import (
	"context"
	"time"

	"github.com/muhammadheryan/stock-allocation/constant"
	"github.com/muhammadheryan/stock-allocation/model"
	utilsContext "github.com/muhammadheryan/stock-allocation/utils/context"
	"github.com/muhammadheryan/stock-allocation/utils/errors"
	"github.com/muhammadheryan/stock-allocation/utils/logger"
	"go.uber.org/zap"
)

const defaultAuditTimeout = 2 * time.Second

// Auditor receives failed allocations and allocation status transitions.
type Auditor interface {
	Publish(ctx context.Context, event model.AuditEvent) error
}

// NoopAuditor drops every event.
type NoopAuditor struct{}

func (NoopAuditor) Publish(context.Context, model.AuditEvent) error { return nil }

func (s *allocationAppImpl) auditFailure(ctx context.Context, orderID string, err error) {
	event := model.AuditEvent{
		Type:    constant.AuditAllocationFailed,
		OrderID: orderID,
		Reason:  err.Error(),
	}
	if ce, ok := errors.As(err); ok {
		event.ItemID = ce.ItemID()
		event.Shortfall = ce.Shortfall()
	}
	s.publish(ctx, event)
}

func (s *allocationAppImpl) auditTransition(ctx context.Context, a model.Allocation, from, to constant.AllocationStatus) {
	s.publish(ctx, model.AuditEvent{
		Type:         constant.AuditAllocationTransition,
		OrderID:      a.OrderID,
		AllocationID: a.ID,
		StockLotID:   a.StockLotID,
		ItemID:       a.ItemID,
		Quantity:     a.Quantity,
		From:         from,
		To:           to,
	})
}

// publish delivers event within the audit timeout. Failures are logged and dropped.
func (s *allocationAppImpl) publish(ctx context.Context, event model.AuditEvent) {
	event.OccurredAt = s.now()
	if id, ok := utilsContext.GetRequestID(ctx); ok {
		event.RequestID = id
	}

	timeout := defaultAuditTimeout
	if s.config != nil && s.config.Allocation.AuditTimeout > 0 {
		timeout = s.config.Allocation.AuditTimeout
	}
	actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := s.auditor.Publish(actx, event); err != nil {
		logger.Ctx(ctx).Warn("[Audit] publish failed",
			zap.String("type", string(event.Type)),
			zap.String("order_id", event.OrderID),
			zap.String("error", err.Error()))
	}
}
