// dvtlogctl 是 xloger 日志目录的命令行工具。
//
// 用法:
//
//	dvtlogctl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-r, --root     日志根目录 (默认: $DVTLOGER_ROOT 或 $HOME/Documents/DVTLoger)
//	-n, --name     日志器名称，可重复（retain 支持多个，其它命令使用第一个）
//	-c, --config   日志器配置文件 (YAML/JSON)
//
// 命令:
//
//	files              列出全部日志文件
//	path <级别>        输出当前周期的日志文件路径（不存在时创建）
//	emit <级别> 值...  写入一条日志
//	clean              删除日志目录
//	retain             按数量与过期时间清理日志文件
//	archive            打包为 <目录>.zip
//
// 退出码:
//
//	0: 成功
//	1: 执行失败
//	2: 参数错误（未知级别、缺少参数、未知命令等）
//
// 示例:
//
//	dvtlogctl -n Network files
//	dvtlogctl -n Network emit error "dial failed" 3
//	dvtlogctl -n Network -n Storage retain --max-files 3 --expire 72h
//	dvtlogctl -r /tmp/logs -n Network archive
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/dvtloger/pkg/observability/xloger"
)

// 版本信息（可通过 -ldflags "-X main.Version=..." 注入）
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// createApp 创建 CLI 应用
func createApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "dvtlogctl",
		Usage:     "xloger 日志目录管理工具",
		Version:   fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "日志根目录",
				Sources: cli.EnvVars(xloger.EnvRoot),
			},
			&cli.StringSliceFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "日志器名称（可重复）",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "日志器配置文件 (YAML/JSON)",
			},
		},
		Commands: createCommands(),
		// 禁止 urfave/cli 直接 os.Exit，由 run 统一映射退出码
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(stderr, err)
			}
		},
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	err := createApp(stdout, stderr).Run(ctx, args)
	if err == nil {
		return 0
	}
	var usageErr *usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(stderr, "参数错误: %v\n", usageErr)
		return 2
	}
	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	fmt.Fprintf(stderr, "错误: %v\n", err)
	return 1
}
