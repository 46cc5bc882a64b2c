// Package xconf 加载 YAML/JSON 配置文件，基于 koanf 实现。
//
// xconf 只负责读取、反序列化和热重载；字段校验与默认值由调用方处理
// （xloger 用它读取日志器配置文件，缺失的键保留默认值）。
//
// # 支持的格式
//
//   - YAML：.yaml, .yml
//   - JSON：.json
//
// # 并发安全
//
// Reload 通过互斥锁串行化，解析成功后原子替换 koanf 实例；解析失败时保留旧配置。
// Client 返回当前快照，Reload 之后旧指针仍可用但数据已过期。
//
// # 配置监视
//
// [Watch] 监视配置文件所在目录（兼容编辑器"写临时文件再 rename"的保存方式），
// 防抖后调用 Reload 并回调。Stop 返回后不再有回调执行。
package xconf
