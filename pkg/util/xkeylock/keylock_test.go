package xkeylock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newLocker(t *testing.T, opts ...Option) Locker {
	t.Helper()
	kl, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = kl.Close() })
	return kl
}

func TestNew_InvalidShardCount(t *testing.T) {
	for _, n := range []int{0, -1, 3, 1 << 17} {
		_, err := New(WithShardCount(n))
		assert.ErrorIs(t, err, ErrInvalidShardCount, "shardCount=%d", n)
	}
}

func TestAcquire_Unlock(t *testing.T) {
	kl := newLocker(t)

	h, err := kl.Acquire(context.Background(), "/tmp/info-2024-12.log")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/info-2024-12.log", h.Key())
	assert.Equal(t, 1, kl.Len())

	require.NoError(t, h.Unlock())
	assert.ErrorIs(t, h.Unlock(), ErrLockNotHeld, "重复 Unlock 应返回 ErrLockNotHeld")
	assert.Equal(t, 0, kl.Len(), "无持有者时 key 应被回收")
}

func TestAcquire_InvalidKey(t *testing.T) {
	kl := newLocker(t)

	_, err := kl.Acquire(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = kl.TryAcquire("")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestTryAcquire_Occupied(t *testing.T) {
	kl := newLocker(t)

	h, err := kl.TryAcquire("k")
	require.NoError(t, err)

	_, err = kl.TryAcquire("k")
	assert.ErrorIs(t, err, ErrLockOccupied)

	other, err := kl.TryAcquire("other")
	require.NoError(t, err, "不同 key 互不影响")
	require.NoError(t, other.Unlock())

	require.NoError(t, h.Unlock())
	h2, err := kl.TryAcquire("k")
	require.NoError(t, err)
	require.NoError(t, h2.Unlock())
}

func TestAcquire_ContextTimeout(t *testing.T) {
	kl := newLocker(t)

	h, err := kl.Acquire(context.Background(), "k")
	require.NoError(t, err)
	defer func() { _ = h.Unlock() }()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = kl.Acquire(ctx, "k")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClose_WakesWaiters(t *testing.T) {
	kl, err := New()
	require.NoError(t, err)

	h, err := kl.Acquire(context.Background(), "k")
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() {
		_, err := kl.Acquire(context.Background(), "k")
		errCh <- err
	}()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, kl.Close())
	assert.ErrorIs(t, <-errCh, ErrClosed)
	assert.ErrorIs(t, kl.Close(), ErrClosed)

	_, err = kl.TryAcquire("k2")
	assert.ErrorIs(t, err, ErrClosed)
	require.NoError(t, h.Unlock(), "关闭后已持有的锁仍可释放")
}

func TestMaxKeys(t *testing.T) {
	kl := newLocker(t, WithMaxKeys(1))

	h, err := kl.TryAcquire("a")
	require.NoError(t, err)
	_, err = kl.TryAcquire("b")
	assert.ErrorIs(t, err, ErrMaxKeysExceeded)
	require.NoError(t, h.Unlock())
}

func TestAcquire_MutualExclusion(t *testing.T) {
	kl := newLocker(t, WithShardCount(4))

	var (
		wg      sync.WaitGroup
		inside  int
		maxSeen int
		mu      sync.Mutex
	)
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h, err := kl.Acquire(context.Background(), "shared")
			if err != nil {
				t.Error(err)
				return
			}
			mu.Lock()
			inside++
			maxSeen = max(maxSeen, inside)
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
			_ = h.Unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen, "同一 key 同时只能有一个持有者")
	assert.Equal(t, 0, kl.Len())
}
