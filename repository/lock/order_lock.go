package lock

import (
	"context"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/muhammadheryan/stock-allocation/constant"
	"github.com/muhammadheryan/stock-allocation/utils/errors"
	"github.com/muhammadheryan/stock-allocation/utils/logger"
	goredislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// OrderLocker serializes work on one order across service instances.
type OrderLocker interface {
	WithOrderLock(ctx context.Context, orderID string, fn func(ctx context.Context) error) error
}

type Options struct {
	Expiry     time.Duration
	Tries      int
	RetryDelay time.Duration
}

func DefaultOptions() Options {
	return Options{
		Expiry:     10 * time.Second,
		Tries:      20,
		RetryDelay: 50 * time.Millisecond,
	}
}

type redisLocker struct {
	rs   *redsync.Redsync
	opts Options
}

func NewOrderLocker(client goredislib.UniversalClient, opts Options) OrderLocker {
	if opts.Expiry <= 0 || opts.Tries < 1 {
		opts = DefaultOptions()
	}
	return &redisLocker{
		rs:   redsync.New(goredis.NewPool(client)),
		opts: opts,
	}
}

func lockKey(orderID string) string {
	return "lock:order:" + orderID
}

// WithOrderLock runs fn while holding the order's mutex. Failing to acquire it is a
// retryable ErrConflict.
func (l *redisLocker) WithOrderLock(ctx context.Context, orderID string, fn func(ctx context.Context) error) error {
	mutex := l.rs.NewMutex(lockKey(orderID),
		redsync.WithExpiry(l.opts.Expiry),
		redsync.WithTries(l.opts.Tries),
		redsync.WithRetryDelay(l.opts.RetryDelay),
	)
	if err := mutex.LockContext(ctx); err != nil {
		logger.Ctx(ctx).Warn("[WithOrderLock] acquire", zap.String("order_id", orderID), zap.String("error", err.Error()))
		return errors.SetCustomErrorf(constant.ErrConflict, "order %s is locked", orderID)
	}
	defer func() {
		if ok, err := mutex.UnlockContext(context.WithoutCancel(ctx)); !ok || err != nil {
			logger.Ctx(ctx).Warn("[WithOrderLock] release", zap.String("order_id", orderID), zap.Bool("released", ok), zap.Error(err))
		}
	}()
	return fn(ctx)
}

type noopLocker struct{}

// NoopLocker runs fn directly. Same-order calls are then serialized only by the guard
// row the allocation engine locks inside its transaction.
func NoopLocker() OrderLocker {
	return noopLocker{}
}

func (noopLocker) WithOrderLock(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
