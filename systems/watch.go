package systems

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	reloadDebounce   = 100 * time.Millisecond
	watchErrorBuffer = 8
)

// LevelWatcher reports writes to a level file. The containing directory is
// watched so editors that replace the file on save are still seen.
type LevelWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	Changed chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewLevelWatcher(path string) (*LevelWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	lw := &LevelWatcher{
		watcher: w,
		path:    path,
		Changed: make(chan string, 1),
		Errors:  make(chan error, watchErrorBuffer),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go lw.run()
	return lw, nil
}

// Poll reports whether the level changed since the last call. It never
// blocks, so it can be called from the game loop.
func (w *LevelWatcher) Poll() bool {
	select {
	case <-w.Changed:
		return true
	default:
		return false
	}
}

// PollError returns the next pending watch error, or nil when there is
// none. It never blocks.
func (w *LevelWatcher) PollError() error {
	select {
	case err := <-w.Errors:
		return err
	default:
		return nil
	}
}

func (w *LevelWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *LevelWatcher) run() {
	defer close(w.done)
	var last time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			now := time.Now()
			if now.Sub(last) < reloadDebounce {
				continue
			}
			last = now
			select {
			case w.Changed <- event.Name:
			default:
				// A reload is already pending.
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}
