package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/omeyang/dvtloger/pkg/observability/xloger"
	"github.com/omeyang/dvtloger/pkg/util/xfile"
)

// usageError 参数错误，退出码 2
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// retainConcurrency retain 并发处理的日志器上限
const retainConcurrency = 4

func createCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "files",
			Usage:  "列出全部日志文件",
			Action: cmdFiles,
		},
		{
			Name:      "path",
			Usage:     "输出当前周期的日志文件路径（不存在时创建）",
			ArgsUsage: "<" + severityList() + ">",
			Action:    cmdPath,
		},
		{
			Name:      "emit",
			Usage:     "写入一条日志",
			ArgsUsage: "<" + severityList() + "> <value>...",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "separator", Usage: "值之间的分隔符", Value: xloger.DefaultSeparator},
			},
			Action: cmdEmit,
		},
		{
			Name:   "clean",
			Usage:  "删除日志目录",
			Action: cmdClean,
		},
		{
			Name:  "retain",
			Usage: "按数量与过期时间清理日志文件（未指定 --name 时处理根目录下全部日志器）",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "max-files", Usage: "每个级别保留的文件数（默认取配置）"},
				&cli.DurationFlag{Name: "expire", Usage: "文件过期时长（默认取配置）", Value: -1},
			},
			Action: cmdRetain,
		},
		{
			Name:   "archive",
			Usage:  "打包为 <目录>.zip",
			Flags:  []cli.Flag{&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "不输出进度"}},
			Action: cmdArchive,
		},
	}
}

// baseConfig 读取 --config，未指定时使用默认配置
func baseConfig(cmd *cli.Command) (xloger.Config, error) {
	path := cmd.String("config")
	if path == "" {
		return xloger.DefaultConfig(xloger.DefaultName), nil
	}
	return xloger.LoadConfig(path)
}

// rootDir 解析 --root，未指定时使用配置文件中的 directory，再退回默认根目录
func rootDir(cmd *cli.Command, cfg xloger.Config) string {
	if root := cmd.String("root"); root != "" {
		return root
	}
	if cfg.Directory != "" {
		return cfg.Directory
	}
	return xloger.DefaultRoot()
}

// openLogger 打开 --name 指定的第一个日志器；未指定时使用配置文件中的名称
func openLogger(cmd *cli.Command) (*xloger.Logger, error) {
	cfg, err := baseConfig(cmd)
	if err != nil {
		return nil, err
	}
	name := cfg.Name
	if names := cmd.StringSlice("name"); len(names) > 0 {
		name = names[0]
	} else if cmd.String("config") == "" {
		return nil, usagef("missing --name")
	}
	return xloger.New(name,
		xloger.WithConfig(cfg),
		xloger.WithDirectory(rootDir(cmd, cfg)),
		xloger.WithConsole(cmd.Root().Writer),
		xloger.WithSystemLogOutput(cmd.Root().ErrWriter),
	)
}

func parseSeverityArg(cmd *cli.Command) (xloger.Severity, error) {
	if cmd.Args().Len() < 1 {
		return 0, usagef("missing severity")
	}
	sev, err := xloger.ParseSeverity(cmd.Args().First())
	if err != nil || sev == xloger.SeverityOff {
		return 0, usagef("unknown severity %q", cmd.Args().First())
	}
	return sev, nil
}

func cmdFiles(_ context.Context, cmd *cli.Command) error {
	l, err := openLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()
	for _, path := range l.FilePaths() {
		fmt.Fprintln(cmd.Root().Writer, path)
	}
	return nil
}

func cmdPath(_ context.Context, cmd *cli.Command) error {
	sev, err := parseSeverityArg(cmd)
	if err != nil {
		return err
	}
	l, err := openLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()

	path := l.CurrentFilePath(sev)
	if l.ErrorCount() > 0 {
		return fmt.Errorf("create %s failed", path)
	}
	fmt.Fprintln(cmd.Root().Writer, path)
	return nil
}

// cmdEmit 控制台阈值之下的记录只写文件，不输出
func cmdEmit(_ context.Context, cmd *cli.Command) error {
	sev, err := parseSeverityArg(cmd)
	if err != nil {
		return err
	}
	values := cmd.Args().Tail()
	if len(values) == 0 {
		return usagef("missing value")
	}
	l, err := openLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()

	l.Log(sev, xloger.Caller(0), cmd.String("separator"), xloger.Strings(values...)...)
	if l.ErrorCount() > 0 {
		return fmt.Errorf("write to %s failed", l.Directory())
	}
	return nil
}

func cmdClean(_ context.Context, cmd *cli.Command) error {
	l, err := openLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()
	if !l.CleanAll() {
		return fmt.Errorf("files remain in %s", l.Directory())
	}
	fmt.Fprintln(cmd.Root().Writer, "removed", l.Directory())
	return nil
}

// cmdRetain 并发清理多个日志器，输出按路径排序的删除列表
func cmdRetain(ctx context.Context, cmd *cli.Command) error {
	cfg, err := baseConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.IsSet("max-files") {
		cfg.MaxFiles = cmd.Int("max-files")
	}
	if d := cmd.Duration("expire"); d >= 0 {
		cfg.FileExpire = d
	}
	if err := cfg.Validate(); err != nil {
		return usagef("%v", err)
	}

	root := rootDir(cmd, cfg)
	names := cmd.StringSlice("name")
	if len(names) == 0 {
		if names, err = loggerNames(root); err != nil {
			return err
		}
	}

	var mu sync.Mutex
	var removed []string
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(retainConcurrency)
	for _, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			l, err := xloger.New(name, xloger.WithConfig(cfg), xloger.WithDirectory(root), xloger.WithConsole(io.Discard))
			if err != nil {
				return err
			}
			defer func() { _ = l.Close() }()
			paths := l.AutoClean()

			mu.Lock()
			removed = append(removed, paths...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	sort.Strings(removed)
	for _, path := range removed {
		fmt.Fprintln(cmd.Root().Writer, path)
	}
	return nil
}

// loggerNames 根目录下的每个子目录是一个日志器
func loggerNames(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := xfile.SafeJoin(root, e.Name()); err == nil {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func cmdArchive(ctx context.Context, cmd *cli.Command) error {
	l, err := openLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()

	var progress func(float64)
	if !cmd.Bool("quiet") {
		errw := cmd.Root().ErrWriter
		progress = func(f float64) {
			fmt.Fprintf(errw, "\r%3.0f%%", f*100)
			if f >= 1 {
				fmt.Fprintln(errw)
			}
		}
	}
	path, err := l.Archive(ctx, progress)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.Root().Writer, filepath.Clean(path))
	return nil
}

// severityList 帮助文本中的级别列表
func severityList() string {
	names := make([]string, 0, len(xloger.Severities()))
	for _, s := range xloger.Severities() {
		names = append(names, s.String())
	}
	return strings.Join(names, "|")
}
