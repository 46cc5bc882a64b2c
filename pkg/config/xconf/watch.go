package xconf

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce 默认防抖间隔
const DefaultDebounce = 100 * time.Millisecond

// WatchCallback 重载完成后的回调，err 非 nil 表示重载失败（旧配置仍生效）
type WatchCallback func(cfg *Config, err error)

// WatchOption 监视选项
type WatchOption func(*Watcher)

// WithDebounce 设置防抖间隔，非正值被忽略
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// Watcher 配置文件监视器
type Watcher struct {
	cfg      *Config
	fs       *fsnotify.Watcher
	callback WatchCallback
	debounce time.Duration
	filename string

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
	done    chan struct{}
	stop    sync.Once
	cbWG    sync.WaitGroup
}

// Watch 监视 cfg 对应的配置文件并在变更时自动重载。
// 返回时后台监视已启动，调用方负责 Stop。
func Watch(cfg *Config, callback WatchCallback, opts ...WatchOption) (*Watcher, error) {
	if cfg == nil || cfg.path == "" {
		return nil, ErrNotReloadable
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("xconf: create watcher: %w", err)
	}
	dir := filepath.Dir(cfg.path)
	if err := fsw.Add(dir); err != nil {
		return nil, errors.Join(fmt.Errorf("xconf: watch directory %s: %w", dir, err), fsw.Close())
	}

	w := &Watcher{
		cfg:      cfg,
		fs:       fsw,
		callback: callback,
		debounce: DefaultDebounce,
		filename: filepath.Base(cfg.path),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.notify(fmt.Errorf("xconf: watch error: %w", err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Base(event.Name) != w.filename {
		return
	}
	// Rename/Create 覆盖编辑器的原子保存
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if w.timer != nil && w.timer.Stop() {
		w.cbWG.Done()
	}
	w.cbWG.Add(1)
	w.timer = time.AfterFunc(w.debounce, func() {
		defer w.cbWG.Done()
		w.mu.Lock()
		stopped := w.stopped
		w.mu.Unlock()
		if stopped {
			return
		}
		w.notify(w.cfg.Reload())
	})
}

func (w *Watcher) notify(err error) {
	if w.callback != nil {
		w.callback(w.cfg, err)
	}
}

// Stop 停止监视并等待进行中的回调结束，可重复调用。
// 不要在回调内部调用 Stop。
func (w *Watcher) Stop() error {
	var err error
	w.stop.Do(func() {
		w.mu.Lock()
		w.stopped = true
		if w.timer != nil && w.timer.Stop() {
			w.cbWG.Done()
		}
		w.mu.Unlock()

		err = w.fs.Close()
		<-w.done
		w.cbWG.Wait()
	})
	return err
}
