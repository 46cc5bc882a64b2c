// Package xlog 基于 log/slog 的系统日志通道。
//
// xloger 在启用 SystemLog 时把"级别 + 带图标的消息"交给本包，而不是直接写标准输出；
// 本包相当于 Go 进程里的系统日志设施（对应 os_log / syslog 的角色）：
// 每条消息带有级别、subsystem/category 固定属性，输出到 stderr 或按大小轮转的文件。
//
// # 创建 Logger
//
// Builder 模式（first-error-wins：遇到第一个配置错误后，后续 Set 操作被跳过）：
//
//	logger, cleanup, err := xlog.New().
//		SetSubsystem("com.example.app", "network").
//		SetRotation("/var/log/app/system.log").
//		Build()
//	defer cleanup()
//
// # 日志级别
//
// LevelDebug(-4) < LevelInfo(0) < LevelNotice(2) < LevelError(8) < LevelFault(12)，
// 输出时以 DEBUG/INFO/NOTICE/ERROR/FAULT 渲染。可通过 [ParseLevel] 从字符串解析，
// Level 实现 encoding.TextMarshaler/TextUnmarshaler。
//
// # 错误处理
//
// 写入失败不会向调用方返回错误，也不会 panic；通过 [Builder.SetOnError] 接收通知。
// 回调内部触发的日志错误不会递归，回调 panic 被隔离。
package xlog
