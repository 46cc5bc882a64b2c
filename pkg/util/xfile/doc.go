// Package xfile 提供日志目录相关的文件系统工具。
//
// # 路径安全
//
//   - SanitizePath: 检查路径格式，防止相对路径穿越，不限制目标目录
//   - SafeJoin: 确保结果路径始终在指定的 base 目录内，用于拼接 logger 名称等外部输入
//
// 路径穿越检测按路径段精确匹配，只有 ".." 作为独立路径段时才被视为穿越：
//
//	SafeJoin("/var/log", "..config")      // ✓ 合法 -> "/var/log/..config"
//	SafeJoin("/var/log", "../etc/passwd") // ✗ 拒绝 -> 路径穿越
//
// SanitizePath 和 SafeJoin 均拒绝包含空字节（\x00）的路径。
//
// # 目录与文件
//
//   - EnsureDir / EnsureDirWithPerm: 确保文件的父目录存在
//   - EnsureDirectory: 确保目录本身存在
//   - ListFiles: 列出目录下的普通文件（按名称排序）
//
// 以上创建函数都是幂等的：目录已存在（包括并发创建竞争）视为成功。
//
// # 错误处理
//
// 预定义错误变量支持 [errors.Is] 判断：
//
//	_, err := xfile.SafeJoin("/var/log", "../etc/passwd")
//	if errors.Is(err, xfile.ErrPathTraversal) {
//	    // 处理路径穿越
//	}
package xfile
