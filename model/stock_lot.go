package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLot is a discrete batch of one item at one location.
// QuantityAvailable is derived and never persisted.
type StockLot struct {
	ID               string          `db:"lot_id" json:"lot_id"`
	ItemID           string          `db:"item_id" json:"item_id"`
	LocationID       string          `db:"location_id" json:"location_id"`
	QuantityTotal    int64           `db:"quantity_total" json:"quantity_total"`
	QuantityReserved int64           `db:"quantity_reserved" json:"quantity_reserved"`
	UnitCost         decimal.Decimal `db:"unit_cost" json:"unit_cost"`
	AcquiredAt       time.Time       `db:"acquired_at" json:"acquired_at"`
}

func (l StockLot) QuantityAvailable() int64 {
	return l.QuantityTotal - l.QuantityReserved
}

type ReceiveLotRequest struct {
	ItemID     string          `json:"item_id" validate:"required,max=64"`
	LocationID string          `json:"location_id" validate:"max=64"`
	Quantity   int64           `json:"quantity" validate:"required,gt=0"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	AcquiredAt time.Time       `json:"acquired_at"`
}

type LotResponse struct {
	StockLot
	QuantityAvailable int64 `json:"quantity_available"`
}

func NewLotResponse(l StockLot) LotResponse {
	return LotResponse{StockLot: l, QuantityAvailable: l.QuantityAvailable()}
}

type ItemAvailability struct {
	ItemID            string `db:"item_id" json:"item_id"`
	LocationID        string `db:"-" json:"location_id,omitempty"`
	LotCount          int64  `db:"lot_count" json:"lot_count"`
	QuantityTotal     int64  `db:"quantity_total" json:"quantity_total"`
	QuantityReserved  int64  `db:"quantity_reserved" json:"quantity_reserved"`
	QuantityAvailable int64  `db:"-" json:"quantity_available"`
}
