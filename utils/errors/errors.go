package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/muhammadheryan/stock-allocation/constant"
)

type CustomError struct {
	errType   constant.ErrorType
	detail    string
	itemID    string
	shortfall int64
}

func (c CustomError) Error() string {
	msg := constant.ErrorTypeMessage[c.errType]
	if c.detail != "" {
		return msg + ": " + c.detail
	}
	return msg
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[c.errType]
}

func (c CustomError) Type() constant.ErrorType {
	return c.errType
}

func (c CustomError) Detail() string {
	return c.detail
}

// ItemID is the short-falling item of an insufficient stock error.
func (c CustomError) ItemID() string {
	return c.itemID
}

// Shortfall is the number of units missing for ItemID.
func (c CustomError) Shortfall() int64 {
	return c.shortfall
}

func (c CustomError) Retryable() bool {
	return constant.ErrorTypeRetryable[c.errType]
}

// Is matches any CustomError of the same type, so errors.Is(err, SetCustomError(t))
// works regardless of detail.
func (c CustomError) Is(target error) bool {
	t, ok := target.(CustomError)
	return ok && t.errType == c.errType
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{
		errType: errorType,
	}
}

func SetCustomErrorf(errorType constant.ErrorType, format string, args ...interface{}) CustomError {
	return CustomError{
		errType: errorType,
		detail:  fmt.Sprintf(format, args...),
	}
}

func NewValidationError(detail string) CustomError {
	return CustomError{
		errType: constant.ErrAllocationValidation,
		detail:  detail,
	}
}

func NewInsufficientStockError(itemID string, shortfall int64) CustomError {
	return CustomError{
		errType:   constant.ErrInsufficientStock,
		detail:    fmt.Sprintf("item %s short by %d", itemID, shortfall),
		itemID:    itemID,
		shortfall: shortfall,
	}
}

// As extracts the CustomError from err's chain.
func As(err error) (CustomError, bool) {
	var ce CustomError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	return CustomError{}, false
}

func IsType(err error, errorType constant.ErrorType) bool {
	ce, ok := As(err)
	return ok && ce.errType == errorType
}

func IsRetryable(err error) bool {
	ce, ok := As(err)
	return ok && ce.Retryable()
}
