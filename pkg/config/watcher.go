package config

import (
	"io"
	"path/filepath"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/deptree/pkg/errors"
)

// Watcher holds the latest valid configuration of a file and reloads it when
// the file changes.
type Watcher struct {
	path   string
	logger *log.Logger

	mu       sync.RWMutex
	current  *AppConfig
	onChange []func(*AppConfig)
}

// NewWatcher loads path once and returns a Watcher for it. A nil logger
// discards reload failures.
func NewWatcher(path string, logger *log.Logger) (*Watcher, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Watcher{path: filepath.Clean(path), logger: logger, current: cfg}, nil
}

// Config returns the latest valid configuration.
func (w *Watcher) Config() *AppConfig {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// OnChange registers fn to run after every successful reload.
func (w *Watcher) OnChange(fn func(*AppConfig)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, fn)
}

// Reload re-reads the file immediately. On failure the previous
// configuration stays current.
func (w *Watcher) Reload() (*AppConfig, error) {
	cfg, err := Load(w.path)
	if err != nil {
		return nil, err
	}
	w.mu.Lock()
	w.current = cfg
	callbacks := slices.Clone(w.onChange)
	w.mu.Unlock()

	for _, fn := range callbacks {
		fn(cfg)
	}
	return cfg, nil
}

// Watch reloads the configuration in the background whenever the file is
// written or recreated. The containing directory is watched so editors that
// save by renaming a temp file are picked up. Call stop to end watching.
func (w *Watcher) Watch() (stop func(), err error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "config watcher")
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "watch %s", w.path)
	}

	done := make(chan struct{})
	go func() {
		defer fw.Close()
		for {
			select {
			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != w.path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
					continue
				}
				if _, err := w.Reload(); err != nil {
					w.logger.Warn("config reload failed, keeping previous config", "path", w.path, "err", errors.UserMessage(err))
					continue
				}
				w.logger.Debug("config reloaded", "path", w.path)
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				w.logger.Warn("config watcher", "err", err)
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }, nil
}
