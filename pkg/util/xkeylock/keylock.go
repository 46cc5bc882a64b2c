package xkeylock

import (
	"context"
	"io"
)

// Handle 表示一次成功的锁获取。
type Handle interface {
	// Unlock 释放锁。
	// 幂等：第一次调用返回 nil，后续调用返回 [ErrLockNotHeld]。
	Unlock() error

	// Key 返回锁的 key，Unlock 之后仍然有效。
	Key() string
}

// Locker 提供基于 key 的进程内互斥锁，所有方法并发安全。
type Locker interface {
	io.Closer

	// Acquire 阻塞式获取锁。
	// ctx 取消时返回 ctx.Err()；Locker 已关闭时返回 [ErrClosed]；
	// key 为空时返回 [ErrInvalidKey]。
	//
	// 锁不可重入，与 sync.Mutex 一致。
	Acquire(ctx context.Context, key string) (Handle, error)

	// TryAcquire 非阻塞获取锁，锁被占用时返回 (nil, [ErrLockOccupied])。
	TryAcquire(key string) (Handle, error)

	// Len 返回当前活跃的 key 数量（持有者 + 等待者，瞬时快照）。
	Len() int
}

// New 创建一个新的 Locker 实例。
// 配置无效时返回错误（如分片数不是 2 的幂）。
func New(opts ...Option) (Locker, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	return newKeyLockImpl(&o), nil
}
