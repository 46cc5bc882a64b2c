// Package observability 提供日志相关的子包。
//
// 子包列表：
//   - xloger: 带调用点上下文的多通道日志器（控制台、系统日志、按周期命名的文件）
//   - xlog: 基于 log/slog 的系统日志通道
//   - xrotate: 周期文件命名、按数量与过期时间清理、按大小轮转
package observability
