package model

import (
	"time"

	"github.com/muhammadheryan/stock-allocation/constant"
)

type OrderRequest struct {
	OrderID string     `json:"order_id" validate:"required,max=64"`
	Items   []LineItem `json:"items" validate:"required,min=1,dive"`
}

type OrderResponse struct {
	OrderID       string                  `json:"order_id"`
	Status        string                  `json:"status"`
	FailureReason string                  `json:"failure_reason,omitempty"`
	ShortItemID   string                  `json:"short_item_id,omitempty"`
	Shortfall     int64                   `json:"shortfall,omitempty"`
	Summary       *OrderAllocationSummary `json:"summary,omitempty"`
}

type InsertOrderItem struct {
	OrderID       string
	Status        constant.OrderStatus
	FailureReason string
}

type OrderDetail struct {
	ID            string               `db:"order_id"`
	Status        constant.OrderStatus `db:"status"`
	FailureReason string               `db:"failure_reason"`
	CreatedAt     time.Time            `db:"created_at"`
	UpdatedAt     time.Time            `db:"updated_at"`
}

// OrderEvent is the upstream order lifecycle message consumed from the broker.
type OrderEvent struct {
	Type    constant.OrderEventType `json:"type"`
	OrderID string                  `json:"order_id"`
	Items   []LineItem              `json:"items,omitempty"`
}
