// Package xkeylock 提供基于 key 的进程内互斥锁。
//
// xloger 以日志文件的绝对路径为 key，串行化同一文件的 open-append-close 序列，
// 保证并发写入不会产生交错的半行；指向同一目录的多个 Logger 实例共享同一把锁。
//
// # 特性
//
//   - Context 支持：Acquire 支持超时和取消（ctx 不得为 nil，否则 panic）
//   - TryAcquire：非阻塞获取，锁被占用时返回 [ErrLockOccupied]
//   - Handle 语义：Unlock 幂等（首次返回 nil，后续返回 [ErrLockNotHeld]）
//   - 分片 map：默认 32 分片（xxhash 定位），减少管理锁争用
//   - 引用计数：无持有者和等待者的 key 自动回收，长期运行不会积累按日期滚动的旧路径
//   - 关闭语义：Close() 拒绝新请求并唤醒所有等待中的 Acquire，已持有锁不受影响
package xkeylock
