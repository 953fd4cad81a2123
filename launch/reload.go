// File: launch/reload.go
// Package launch
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Development-mode reload support. When a configuration is reloadable, the
// server watches the base directory and notifies subscribers on changes.
// Subscribers decide for themselves what reloading means.

package launch

import (
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Reloader watches a directory and fans change notifications out to
// registered callbacks. Callbacks run on the watcher goroutine and should
// return quickly.
type Reloader struct {
	watcher *fsnotify.Watcher
	log     *zap.Logger

	mu     sync.Mutex
	fns    []func()
	closed bool
}

// NewReloader starts watching dir. The returned Reloader must be closed.
func NewReloader(dir string, logger *zap.Logger) (*Reloader, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}
	r := &Reloader{watcher: w, log: logger}
	go r.run()
	return r, nil
}

// OnReload registers fn to run whenever the watched directory changes.
func (r *Reloader) OnReload(fn func()) {
	r.mu.Lock()
	r.fns = append(r.fns, fn)
	r.mu.Unlock()
}

// Close stops the watcher. Pending callbacks may still run.
func (r *Reloader) Close() error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	return r.watcher.Close()
}

func (r *Reloader) run() {
	for {
		select {
		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			r.log.Debug("reload trigger", zap.String("path", event.Name), zap.Stringer("op", event.Op))
			r.notify()
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			r.log.Warn("reload watcher error", zap.Error(err))
		}
	}
}

func (r *Reloader) notify() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	fns := append([]func(){}, r.fns...)
	r.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
