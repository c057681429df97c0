package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/muhammadheryan/stock-allocation/constant"
	cerr "github.com/muhammadheryan/stock-allocation/utils/errors"
	goredislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocker(t *testing.T, opts Options) (OrderLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredislib.NewClient(&goredislib.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewOrderLocker(client, opts), mr
}

func TestWithOrderLock_MutualExclusion(t *testing.T) {
	locker, _ := newLocker(t, Options{Expiry: 5 * time.Second, Tries: 200, RetryDelay: 5 * time.Millisecond})

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := locker.WithOrderLock(context.Background(), "o1", func(ctx context.Context) error {
				n := atomic.AddInt32(&inside, 1)
				for {
					m := atomic.LoadInt32(&maxInside)
					if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)
				atomic.AddInt32(&inside, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), atomic.LoadInt32(&maxInside))
}

func TestWithOrderLock_BusyIsConflict(t *testing.T) {
	locker, mr := newLocker(t, Options{Expiry: 5 * time.Second, Tries: 1, RetryDelay: time.Millisecond})
	require.NoError(t, mr.Set(lockKey("o2"), "someone-else"))

	called := false
	err := locker.WithOrderLock(context.Background(), "o2", func(ctx context.Context) error {
		called = true
		return nil
	})
	assert.False(t, called)
	assert.True(t, cerr.IsType(err, constant.ErrConflict), "got %v", err)
	assert.True(t, cerr.IsRetryable(err))
}

func TestWithOrderLock_ReleasesAndPropagates(t *testing.T) {
	locker, mr := newLocker(t, DefaultOptions())

	want := cerr.SetCustomError(constant.ErrInsufficientStock)
	err := locker.WithOrderLock(context.Background(), "o3", func(ctx context.Context) error {
		assert.True(t, mr.Exists(lockKey("o3")))
		return want
	})
	assert.ErrorIs(t, err, want)
	assert.False(t, mr.Exists(lockKey("o3")))
}

func TestNoopLocker(t *testing.T) {
	called := false
	err := NoopLocker().WithOrderLock(context.Background(), "o", func(ctx context.Context) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}
