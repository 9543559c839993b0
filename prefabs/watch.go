package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceWindow = 100 * time.Millisecond

// watchedOps are the filesystem ops that can change a spec's contents.
var watchedOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// Watcher forwards change notifications for spec files in the watched
// directories, debounced per path so one editor save produces one event.
type Watcher struct {
	fs      *fsnotify.Watcher
	deb     debouncer
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fs.Add(dir); err != nil {
			_ = fs.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:      fs,
		deb:     newDebouncer(debounceWindow),
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fs.Close()
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&watchedOps == 0 || !isSpecFile(event.Name) {
				continue
			}
			if w.deb.allow(event.Name, time.Now()) {
				w.Events <- event.Name
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.Errors <- err
		case <-w.closeCh:
			return
		}
	}
}

// debouncer passes the first event per path inside each window and swallows
// the rest. Editors write a save as several filesystem ops in a burst.
type debouncer struct {
	window time.Duration
	seen   map[string]time.Time
}

func newDebouncer(window time.Duration) debouncer {
	return debouncer{window: window, seen: make(map[string]time.Time)}
}

func (d *debouncer) allow(name string, now time.Time) bool {
	if last, ok := d.seen[name]; ok && now.Sub(last) < d.window {
		return false
	}
	d.seen[name] = now
	return true
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
