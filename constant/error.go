package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrAllocationValidation
	ErrInsufficientStock
	ErrConflict
	ErrStorage
	ErrServiceUnavailable
	ErrInvariantViolation
	ErrInvalidOrderStatus
	ErrAllocationExists
	ErrLotHasReservations
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:              "success",
	ErrInternal:             "error internal",
	ErrNotFound:             "data not found",
	ErrInvalidRequest:       "invalid request",
	ErrUnauthorize:          "unauthorize request",
	ErrAllocationValidation: "invalid allocation request",
	ErrInsufficientStock:    "insufficient stock",
	ErrConflict:             "concurrent update conflict",
	ErrStorage:              "storage unavailable",
	ErrServiceUnavailable:   "service unavailable",
	ErrInvariantViolation:   "stock invariant violation",
	ErrInvalidOrderStatus:   "invalid order status",
	ErrAllocationExists:     "order already has active allocations",
	ErrLotHasReservations:   "lot has reserved quantity",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:              http.StatusOK,
	ErrInternal:             http.StatusInternalServerError,
	ErrNotFound:             http.StatusNotFound,
	ErrInvalidRequest:       http.StatusBadRequest,
	ErrUnauthorize:          http.StatusUnauthorized,
	ErrAllocationValidation: http.StatusBadRequest,
	ErrInsufficientStock:    http.StatusConflict,
	ErrConflict:             http.StatusConflict,
	ErrStorage:              http.StatusServiceUnavailable,
	ErrServiceUnavailable:   http.StatusServiceUnavailable,
	ErrInvariantViolation:   http.StatusInternalServerError,
	ErrInvalidOrderStatus:   http.StatusUnprocessableEntity,
	ErrAllocationExists:     http.StatusConflict,
	ErrLotHasReservations:   http.StatusConflict,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:              "0000",
	ErrInternal:             "0001",
	ErrNotFound:             "0002",
	ErrInvalidRequest:       "0003",
	ErrUnauthorize:          "0004",
	ErrAllocationValidation: "0101",
	ErrInsufficientStock:    "0102",
	ErrConflict:             "0103",
	ErrStorage:              "0104",
	ErrServiceUnavailable:   "0105",
	ErrInvariantViolation:   "0106",
	ErrInvalidOrderStatus:   "0107",
	ErrAllocationExists:     "0108",
	ErrLotHasReservations:   "0109",
}

// ErrorTypeRetryable lists the transient conditions a caller may retry with backoff.
var ErrorTypeRetryable = map[ErrorType]bool{
	ErrConflict: true,
	ErrStorage:  true,
}
