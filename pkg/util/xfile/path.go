package xfile

import (
	"fmt"
	"path/filepath"
	"strings"
)

func containsNullByte(path string) bool {
	return strings.ContainsRune(path, 0)
}

// isWindowsAbsPath 检测 Windows 风格的绝对或驱动器相关路径（"C:\..."、"C:foo"、"\\server\..."、"\foo"）。
// 非 Windows 平台上 filepath.IsAbs 不识别这些形式，需要显式拒绝。
func isWindowsAbsPath(path string) bool {
	if len(path) >= 2 && isASCIILetter(path[0]) && path[1] == ':' {
		return true
	}
	return len(path) >= 1 && path[0] == '\\'
}

func isASCIILetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// hasDotDotSegment 检测路径中是否包含 ".." 作为独立路径段。
// '/' 和 '\' 都视为分隔符。
func hasDotDotSegment(path string) bool {
	i := 0
	for i < len(path) {
		if path[i] == '/' || path[i] == '\\' {
			i++
			continue
		}
		j := i
		for j < len(path) && path[j] != '/' && path[j] != '\\' {
			j++
		}
		if j-i == 2 && path[i] == '.' && path[i+1] == '.' {
			return true
		}
		i = j
	}
	return false
}

// SanitizePath 对文件路径进行格式检查和规范化
//
//   - 路径规范化（消除 . 和冗余斜杠）
//   - 阻止相对路径穿越（如 "../etc/passwd"）
//   - 拒绝空路径、空字节和显式目录路径（尾随 "/" 或 "\"）
//
// 本函数接受绝对路径，不限制目标目录；需要目录隔离时使用 [SafeJoin]。
func SanitizePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename is required: %w", ErrEmptyPath)
	}
	if containsNullByte(filename) {
		return "", fmt.Errorf("filename contains null byte: %w", ErrNullByte)
	}
	// 必须在 filepath.Clean 之前检查，Clean 会移除尾部斜杠
	if strings.HasSuffix(filename, "/") || strings.HasSuffix(filename, "\\") {
		return "", fmt.Errorf("path is a directory: %w", ErrInvalidPath)
	}

	cleaned := filepath.Clean(filename)
	if hasDotDotSegment(cleaned) {
		return "", fmt.Errorf("path traversal in filename: %w", ErrPathTraversal)
	}

	base := filepath.Base(cleaned)
	if base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("no file name specified: %w", ErrInvalidPath)
	}
	return cleaned, nil
}

// SafeJoin 安全地将相对路径拼接到基准目录，结果保证位于 base 内
//
//   - base 必须是绝对路径
//   - path 必须是相对路径，且不含 ".." 路径段
//
// 示例：
//
//	SafeJoin("/var/log", "app")           // -> "/var/log/app", nil
//	SafeJoin("/var/log", "../etc/passwd") // -> "", ErrPathTraversal
//	SafeJoin("/var/log", "/etc/passwd")   // -> "", ErrInvalidPath
//
// 不解析符号链接；检查与实际文件操作之间存在 TOCTOU 窗口，适用于可信环境下的路径构建。
func SafeJoin(base, path string) (string, error) {
	if base == "" {
		return "", fmt.Errorf("base directory is required: %w", ErrEmptyPath)
	}
	if containsNullByte(base) {
		return "", fmt.Errorf("base contains null byte: %w", ErrNullByte)
	}
	cleanBase := filepath.Clean(base)
	if !filepath.IsAbs(cleanBase) {
		return "", fmt.Errorf("base must be an absolute path: %w", ErrInvalidPath)
	}

	if path == "" {
		return "", fmt.Errorf("path is required: %w", ErrEmptyPath)
	}
	if containsNullByte(path) {
		return "", fmt.Errorf("path contains null byte: %w", ErrNullByte)
	}
	if filepath.IsAbs(path) || isWindowsAbsPath(path) {
		return "", fmt.Errorf("path must be relative (absolute path not allowed): %w", ErrInvalidPath)
	}
	cleanPath := filepath.Clean(path)
	if hasDotDotSegment(cleanPath) {
		return "", fmt.Errorf("path traversal in path: %w", ErrPathTraversal)
	}

	joined := filepath.Join(cleanBase, cleanPath)
	rel, err := filepath.Rel(cleanBase, joined)
	if err != nil || hasDotDotSegment(rel) || rel == "." {
		return "", ErrPathEscaped
	}
	return joined, nil
}
