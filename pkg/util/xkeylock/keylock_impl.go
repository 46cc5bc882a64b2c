package xkeylock

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

type keyLockImpl struct {
	shards   []shard
	mask     uint64
	maxKeys  int
	closed   atomic.Bool
	keyCount atomic.Int64
	done     chan struct{}
}

type shard struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

// lockEntry 以 size=1 的 channel 作为互斥量：发送成功即获取锁，接收即释放。
type lockEntry struct {
	ch chan struct{}
	// refcnt 为持有者 + 等待者数量，归零时条目从 map 中删除。
	refcnt atomic.Int32
}

type handle struct {
	kl    *keyLockImpl
	key   string
	entry *lockEntry
	done  atomic.Bool
}

func newKeyLockImpl(opts *options) *keyLockImpl {
	shards := make([]shard, opts.shardCount)
	for i := range shards {
		shards[i].entries = make(map[string]*lockEntry)
	}
	return &keyLockImpl{
		shards:  shards,
		mask:    uint64(opts.shardCount - 1),
		maxKeys: opts.maxKeys,
		done:    make(chan struct{}),
	}
}

func (kl *keyLockImpl) getShard(key string) *shard {
	return &kl.shards[xxhash.Sum64String(key)&kl.mask]
}

// getOrCreate 获取或创建 lockEntry，并增加引用计数。
func (kl *keyLockImpl) getOrCreate(key string) (*lockEntry, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}
	s := kl.getShard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if kl.closed.Load() {
		return nil, ErrClosed
	}

	e, ok := s.entries[key]
	if !ok {
		if kl.maxKeys > 0 {
			// CAS 严格限制 key 数量，避免跨分片并发突破上限
			for {
				cur := kl.keyCount.Load()
				if cur >= int64(kl.maxKeys) {
					return nil, ErrMaxKeysExceeded
				}
				if kl.keyCount.CompareAndSwap(cur, cur+1) {
					break
				}
			}
		} else {
			kl.keyCount.Add(1)
		}
		e = &lockEntry{ch: make(chan struct{}, 1)}
		s.entries[key] = e
	}
	e.refcnt.Add(1)
	return e, nil
}

func (kl *keyLockImpl) releaseRef(key string, entry *lockEntry) {
	s := kl.getShard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.refcnt.Add(-1) == 0 {
		delete(s.entries, key)
		kl.keyCount.Add(-1)
	}
}

func (kl *keyLockImpl) Acquire(ctx context.Context, key string) (Handle, error) {
	if ctx == nil {
		panic("xkeylock: nil Context")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entry, err := kl.getOrCreate(key)
	if err != nil {
		return nil, err
	}
	select {
	case entry.ch <- struct{}{}:
		return &handle{kl: kl, key: key, entry: entry}, nil
	case <-ctx.Done():
		kl.releaseRef(key, entry)
		return nil, ctx.Err()
	case <-kl.done:
		kl.releaseRef(key, entry)
		return nil, ErrClosed
	}
}

func (kl *keyLockImpl) TryAcquire(key string) (Handle, error) {
	entry, err := kl.getOrCreate(key)
	if err != nil {
		return nil, err
	}
	select {
	case entry.ch <- struct{}{}:
		return &handle{kl: kl, key: key, entry: entry}, nil
	default:
		kl.releaseRef(key, entry)
		return nil, ErrLockOccupied
	}
}

func (kl *keyLockImpl) Len() int {
	return int(max(kl.keyCount.Load(), 0))
}

func (kl *keyLockImpl) Close() error {
	if !kl.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	close(kl.done)
	return nil
}

func (h *handle) Unlock() error {
	if !h.done.CompareAndSwap(false, true) {
		return ErrLockNotHeld
	}
	<-h.entry.ch
	h.kl.releaseRef(h.key, h.entry)
	return nil
}

func (h *handle) Key() string {
	return h.key
}

var (
	_ Locker = (*keyLockImpl)(nil)
	_ Handle = (*handle)(nil)
)
