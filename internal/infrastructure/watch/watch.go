// Package watch reports edits to level files so loaded levels can be
// reloaded while the game runs.
package watch

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/younwookim/levelkeeper/internal/infrastructure/config"
)

const debounce = 100 * time.Millisecond

// Watcher emits the name of every level whose file changes.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher watches the given level directories.
func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 4),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops watching. Events and Errors are closed once the watch loop exits.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

// Drain returns every level name reported since the last call without blocking.
func (w *Watcher) Drain() []string {
	var names []string
	seen := make(map[string]bool)
	for {
		select {
		case name, ok := <-w.Events:
			if !ok {
				return names
			}
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		default:
			return names
		}
	}
}

// DrainErrors returns every watch error reported since the last call without blocking.
func (w *Watcher) DrainErrors() []error {
	var errs []error
	for {
		select {
		case err, ok := <-w.Errors:
			if !ok {
				return errs
			}
			errs = append(errs, err)
		default:
			return errs
		}
	}
}

func (w *Watcher) run() {
	defer close(w.done)
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < debounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- config.LevelName(event.Name):
			case <-w.closeCh:
				return
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

func relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	return config.IsLevelFile(event.Name)
}
