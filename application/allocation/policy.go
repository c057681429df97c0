package allocation

import (
	"sort"
	"strings"

	"github.com/muhammadheryan/stock-allocation/constant"
	"github.com/muhammadheryan/stock-allocation/model"
	"github.com/muhammadheryan/stock-allocation/utils/errors"
	validatorx "github.com/muhammadheryan/stock-allocation/utils/validator"
)

// lotSlice is the quantity one line item draws from one lot.
type lotSlice struct {
	lot      model.StockLot
	quantity int64
}

// sortLots orders candidates oldest first, then cheapest, then by lot id.
func sortLots(lots []model.StockLot) {
	sort.SliceStable(lots, func(i, j int) bool {
		a, b := lots[i], lots[j]
		if !a.AcquiredAt.Equal(b.AcquiredAt) {
			return a.AcquiredAt.Before(b.AcquiredAt)
		}
		if c := a.UnitCost.Cmp(b.UnitCost); c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	})
}

// planSlices walks lots in order, taking as much of each as needed to cover quantity.
// It returns the slices and the units still missing once every lot is exhausted.
func planSlices(lots []model.StockLot, quantity int64) ([]lotSlice, int64) {
	remaining := quantity
	slices := make([]lotSlice, 0, 1)
	for _, lot := range lots {
		if remaining == 0 {
			break
		}
		available := lot.QuantityAvailable()
		if available <= 0 {
			continue
		}
		take := min(available, remaining)
		slices = append(slices, lotSlice{lot: lot, quantity: take})
		remaining -= take
	}
	return slices, remaining
}

// validateRequest rejects malformed calls before any storage access.
func validateRequest(orderID string, items []model.LineItem) error {
	if strings.TrimSpace(orderID) == "" {
		return errors.NewValidationError("order_id is required")
	}
	if len(items) == 0 {
		return errors.NewValidationError("at least one line item is required")
	}
	if err := validatorx.ValidateStruct(model.AllocationRequest{OrderID: orderID, LineItems: items}); err != nil {
		return errors.NewValidationError(validatorx.FirstFieldError(err))
	}
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if strings.TrimSpace(it.ItemID) == "" {
			return errors.NewValidationError("item_id is required")
		}
		if _, dup := seen[it.ItemID]; dup {
			return errors.NewValidationError("duplicate item_id " + it.ItemID)
		}
		seen[it.ItemID] = struct{}{}
	}
	return nil
}

// sortedByItem returns a copy of items ordered by item id so concurrent callers lock
// lots in the same order.
func sortedByItem(items []model.LineItem) []model.LineItem {
	out := append([]model.LineItem(nil), items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}

// buildSummary groups allocations by item, keeping first-seen item order.
func buildSummary(orderID string, allocs []model.Allocation) *model.OrderAllocationSummary {
	summary := &model.OrderAllocationSummary{OrderID: orderID, Items: make([]model.ItemAllocationSummary, 0)}
	index := make(map[string]int)
	for _, a := range allocs {
		i, ok := index[a.ItemID]
		if !ok {
			i = len(summary.Items)
			index[a.ItemID] = i
			summary.Items = append(summary.Items, model.ItemAllocationSummary{ItemID: a.ItemID, Lots: make([]model.LotSlice, 0)})
		}
		item := &summary.Items[i]
		item.Lots = append(item.Lots, model.LotSlice{
			AllocationID: a.ID,
			StockLotID:   a.StockLotID,
			Quantity:     a.Quantity,
			Status:       a.Status,
		})
		switch a.Status {
		case constant.AllocationStatusReserved:
			item.Reserved += a.Quantity
			summary.TotalReserved += a.Quantity
		case constant.AllocationStatusConsumed:
			item.Consumed += a.Quantity
			summary.TotalConsumed += a.Quantity
		case constant.AllocationStatusReleased:
			item.Released += a.Quantity
			summary.TotalReleased += a.Quantity
		}
	}
	return summary
}
