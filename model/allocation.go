package model

import (
	"time"

	"github.com/muhammadheryan/stock-allocation/constant"
)

// LineItem is one requested item of an allocation call. LocationID is optional.
type LineItem struct {
	ItemID     string `json:"item_id" db:"item_id" validate:"required,max=64"`
	LocationID string `json:"location_id,omitempty" db:"location_id" validate:"max=64"`
	Quantity   int64  `json:"quantity" db:"quantity" validate:"gt=0"`
}

type AllocationRequest struct {
	OrderID   string     `validate:"required,max=64"`
	LineItems []LineItem `validate:"required,min=1,dive"`
}

// Allocation links an order to a quantity of one stock lot. ItemID is read through
// the lot and is not stored on the allocation row.
type Allocation struct {
	ID         string                    `db:"allocation_id" json:"allocation_id"`
	OrderID    string                    `db:"order_id" json:"order_id"`
	StockLotID string                    `db:"stock_lot_id" json:"stock_lot_id"`
	ItemID     string                    `db:"item_id" json:"item_id"`
	Quantity   int64                     `db:"quantity" json:"quantity"`
	Status     constant.AllocationStatus `db:"status" json:"status"`
	CreatedAt  time.Time                 `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time                 `db:"updated_at" json:"updated_at"`
}

type AllocationResult struct {
	OrderID     string       `json:"order_id"`
	Allocations []Allocation `json:"allocations"`
}

// LotSlice is the part of an item's allocation drawn from one lot.
type LotSlice struct {
	AllocationID string                    `json:"allocation_id"`
	StockLotID   string                    `json:"stock_lot_id"`
	Quantity     int64                     `json:"quantity"`
	Status       constant.AllocationStatus `json:"status"`
}

type ItemAllocationSummary struct {
	ItemID   string     `json:"item_id"`
	Reserved int64      `json:"reserved"`
	Consumed int64      `json:"consumed"`
	Released int64      `json:"released"`
	Lots     []LotSlice `json:"lots"`
}

type OrderAllocationSummary struct {
	OrderID       string                  `json:"order_id"`
	Items         []ItemAllocationSummary `json:"items"`
	TotalReserved int64                   `json:"total_reserved"`
	TotalConsumed int64                   `json:"total_consumed"`
	TotalReleased int64                   `json:"total_released"`
}

// AuditEvent is reported to the audit collaborator for failed allocations and
// allocation status transitions.
type AuditEvent struct {
	Type         constant.AuditEventType   `json:"type"`
	OrderID      string                    `json:"order_id"`
	RequestID    string                    `json:"request_id,omitempty"`
	AllocationID string                    `json:"allocation_id,omitempty"`
	StockLotID   string                    `json:"stock_lot_id,omitempty"`
	ItemID       string                    `json:"item_id,omitempty"`
	Quantity     int64                     `json:"quantity,omitempty"`
	From         constant.AllocationStatus `json:"from,omitempty"`
	To           constant.AllocationStatus `json:"to,omitempty"`
	Reason       string                    `json:"reason,omitempty"`
	Shortfall    int64                     `json:"shortfall,omitempty"`
	OccurredAt   time.Time                 `json:"occurred_at"`
}
