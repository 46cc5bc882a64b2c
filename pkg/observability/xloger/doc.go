// Package xloger 为本地诊断场景提供带调用点上下文的多通道日志器。
//
// 每条记录按两个独立阈值分发：控制台阈值决定是否输出到标准输出（或系统日志通道），
// 文件阈值决定是否追加到 "<根目录>/<名称>/<级别>-<周期>.log"。
// 日志调用返回实际输出到控制台的行，被控制台阈值过滤时返回空串。
//
// # 级别
//
// Notice < Info < Debug < Error < Fault，Off 仅作阈值使用。
// 注意 Debug 排在 Info 之后：阈值为 Debug 时 Info 与 Notice 都被过滤。
//
// # 行格式
//
//	2026-10-19 08:05:03.007 [Net] [✖️] [client.go:42] [Main] net.(*Client).Dial => dial failed
//
// 各字段可通过 [ShowFlags] 关闭；关闭文件名但保留行号时退化为 "line:<n>"。
//
// # 文件与清理
//
// 文件名周期由 xrotate.Format 决定（默认 "Y-WY"，一周一个文件）。
// 每次写入都打开、追加、关闭，进程内按文件路径互斥，不持有句柄。
// MaxFiles 或 FileExpire 调大时自动执行一次清理，也可调用 [Logger.AutoClean]。
// 清理只删除超出数量且已过期的最旧文件。
//
// # 错误处理
//
// 日志调用从不返回错误也不 panic：文件、控制台、系统日志的失败计入
// [Logger.ErrorCount]，并可通过 [WithOnError] 接收。
// 配置错误（无效格式串、数量、时长、级别）由 setter 返回，原值保持不变。
//
// # 默认实例
//
//	xloger.Notice(xloger.String("started"), xloger.Int(port))
//
// 包级函数使用 [Default]，首次调用时以名称 "default" 创建。
package xloger
