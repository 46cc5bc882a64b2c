// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xfile: 路径安全检查、幂等目录创建、目录文件列表
//   - xkeylock: 基于 key 的进程内互斥锁，支持 context 超时和非阻塞获取
//   - xarchive: 把一组文件打包为 zip，带进度回调
package util
