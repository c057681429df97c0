package constant

type OrderStatus int

const (
	OrderStatusPending     OrderStatus = 1
	OrderStatusAllocated   OrderStatus = 2
	OrderStatusBackordered OrderStatus = 3
	OrderStatusCanceled    OrderStatus = 4
	OrderStatusFulfilled   OrderStatus = 5
	OrderStatusFailed      OrderStatus = 6
)

var orderStatusName = map[OrderStatus]string{
	OrderStatusPending:     "PENDING",
	OrderStatusAllocated:   "ALLOCATED",
	OrderStatusBackordered: "BACKORDERED",
	OrderStatusCanceled:    "CANCELLED",
	OrderStatusFulfilled:   "FULFILLED",
	OrderStatusFailed:      "FAILED",
}

func (s OrderStatus) String() string {
	if name, ok := orderStatusName[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// OrderEventType is the kind of order lifecycle event received from upstream.
type OrderEventType string

const (
	OrderEventPlaced    OrderEventType = "placed"
	OrderEventCancelled OrderEventType = "cancelled"
	OrderEventFulfilled OrderEventType = "fulfilled"
)

type contextKey string

const RequestIDKey contextKey = "request_id"
