// Package xarchive 把一组日志文件打包成 zip，便于整体分享。
//
// 归档文件与源目录同级，命名为 "<dir>.zip"；条目名为文件相对 dir 的路径，
// 不在 dir 内的文件使用基本名。先写临时文件，完成后原子 rename。
// 所有错误都包装 [ErrArchive]。
package xarchive
