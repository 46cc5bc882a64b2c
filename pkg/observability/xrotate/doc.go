// Package xrotate 提供日志文件的滚动命名与保留策略。
//
// # 按周期命名
//
// [ParseFormat] 解析形如 "Y-WY" 的格式串，[Format.BaseName] 结合当前时间生成文件名：
//
//	f, _ := xrotate.ParseFormat("Y-WY")
//	f.BaseName("info", t) // "info-2024-12.log"
//
// 输出顺序固定为 Y、M、WY、D，与格式串中的书写顺序无关；格式串只决定启用哪些分量。
// 同一天内名称稳定，分量值变化（新的一周、新的一月）时自然滚动到新文件。
//
// # 保留策略
//
// [Policy.Enforce] 按"数量 + 时长"双条件删除旧文件：仅当匹配前缀的文件数超过 MaxFiles，
// 且文件创建时间早于 Expire 时才删除，最多删除超出配额的数量，从最旧的开始。
// 删除失败的文件被跳过，不影响其余文件。
//
// # Rotator
//
// [Rotator] 是可写可轮转的 io.WriteCloser。[NewLumberjack] 基于 lumberjack v2
// 提供按大小轮转，供系统日志通道（xlog）输出到文件时使用。
package xrotate
