package workspace

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/luca-della-vedova/rmf-workcell/pkg/envutil"
	"github.com/luca-della-vedova/rmf-workcell/pkg/logger"
)

var watchLog = logger.New("workspace:watcher")

const defaultDebounceMs = 250

// Watcher re-runs a callback whenever a watched file changes on disk.
// Events are debounced so editors that write in bursts trigger one run.
// The directory is watched rather than the file itself so the watch
// survives the rename-and-replace strategy most editors use.
type Watcher struct {
	path     string
	onChange func(path string)

	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]time.Time
	doneCh  chan struct{}
}

// NewWatcher creates a watcher for a single file. The debounce window is
// configurable through WORKCELL_WATCH_DEBOUNCE_MS.
func NewWatcher(path string, onChange func(path string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, err
	}
	debounceMs := envutil.GetIntFromEnv("WORKCELL_WATCH_DEBOUNCE_MS", defaultDebounceMs, 10, 60000, watchLog)
	return &Watcher{
		path:     absPath,
		onChange: onChange,
		watcher:  fsw,
		debounce: time.Duration(debounceMs) * time.Millisecond,
		pending:  map[string]time.Time{},
		doneCh:   make(chan struct{}),
	}, nil
}

// Run watches until the context is cancelled, then closes the underlying
// watcher.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.doneCh)
	defer w.watcher.Close()

	watchLog.Printf("watching %s (debounce %s)", w.path, w.debounce)
	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			watchLog.Print("watch cancelled")
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			watchLog.Printf("watch error: %v", err)
		case <-ticker.C:
			w.fireSettled()
		}
	}
}

// Done is closed once Run has returned.
func (w *Watcher) Done() <-chan struct{} { return w.doneCh }

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	watchLog.Printf("%s on %s", event.Op, event.Name)
	w.mu.Lock()
	w.pending[w.path] = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) fireSettled() {
	now := time.Now()
	var settled []string
	w.mu.Lock()
	for path, at := range w.pending {
		if now.Sub(at) >= w.debounce {
			settled = append(settled, path)
			delete(w.pending, path)
		}
	}
	w.mu.Unlock()
	for _, path := range settled {
		w.onChange(path)
	}
}
