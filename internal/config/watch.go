package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"fidel/internal/layout"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 100 * time.Millisecond

// LayoutWatcher reloads a layout file when it changes on disk.
//
// The callback runs on a timer goroutine with either the new layout or the
// error that prevented loading it. Callers keep their previous layout on
// error.
type LayoutWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func(*layout.Layout, error)
	delay    time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
	done   chan struct{}
}

// WatchLayout starts watching path. The file's directory is watched so
// that editors that replace the file on save are followed.
func WatchLayout(path string, onChange func(*layout.Layout, error)) (*LayoutWatcher, error) {
	return watchLayout(path, DefaultDebounce, onChange)
}

func watchLayout(path string, delay time.Duration, onChange func(*layout.Layout, error)) (*LayoutWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch directory: %w", err)
	}
	w := &LayoutWatcher{
		path:     path,
		watcher:  watcher,
		onChange: onChange,
		delay:    delay,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Path returns the watched file.
func (w *LayoutWatcher) Path() string { return w.path }

func (w *LayoutWatcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.schedule()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.onChange(nil, fmt.Errorf("watch %s: %w", w.path, err))
		}
	}
}

func (w *LayoutWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.reload)
}

func (w *LayoutWatcher) reload() {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}
	l, err := layout.Load(w.path)
	w.onChange(l, err)
}

// Close stops watching. No callback starts after Close returns.
func (w *LayoutWatcher) Close() error {
	w.mu.Lock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	err := w.watcher.Close()
	<-w.done
	return err
}
