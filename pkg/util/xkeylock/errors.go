package xkeylock

import "errors"

var (
	// ErrLockNotHeld 表示锁已被释放。
	// Unlock 第二次及后续调用时返回此错误。
	ErrLockNotHeld = errors.New("xkeylock: lock not held")

	// ErrLockOccupied 表示 TryAcquire 时锁已被其他持有者占用。
	ErrLockOccupied = errors.New("xkeylock: lock occupied")

	// ErrClosed 表示 Locker 已关闭。
	ErrClosed = errors.New("xkeylock: closed")

	// ErrInvalidKey 表示 key 为空字符串。
	ErrInvalidKey = errors.New("xkeylock: invalid key")

	// ErrMaxKeysExceeded 表示已达到最大 key 数量限制。
	ErrMaxKeysExceeded = errors.New("xkeylock: max keys exceeded")

	// ErrInvalidShardCount 表示分片数不是 1~65536 之间的 2 的幂。
	ErrInvalidShardCount = errors.New("xkeylock: invalid shard count")
)
