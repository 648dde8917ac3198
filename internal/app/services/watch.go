// Package services holds the background helpers of the application model.
package services

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatchDebounce is the debounce window for watcher events.
const FileWatchDebounce = 600 * time.Millisecond

// FileWatchService watches a single file for changes. The parent directory is
// watched so editors that replace the file through a rename are noticed.
type FileWatchService struct {
	Started     bool
	Waiting     bool
	Path        string
	Dir         string
	Events      chan struct{}
	Done        chan struct{}
	Mu          sync.Mutex
	Watcher     *fsnotify.Watcher
	LastRefresh time.Time
	logf        func(string, ...any)
}

// NewFileWatchService creates a new FileWatchService.
func NewFileWatchService(logf func(string, ...any)) *FileWatchService {
	return &FileWatchService{logf: logf}
}

// Start initialises the watcher for path and starts the background goroutine.
func (w *FileWatchService) Start(path string) (bool, error) {
	if w.Started {
		return false, nil
	}
	if path == "" {
		return false, errors.New("no file to watch")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}
	dir := filepath.Dir(abs)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		w.debugf("%s is not a directory", dir)
		return false, nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return false, err
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return false, err
	}

	w.Started = true
	w.Watcher = watcher
	w.Path = abs
	w.Dir = dir
	w.Events = make(chan struct{}, 1)
	w.Done = make(chan struct{})

	go w.run()
	return true, nil
}

// Stop stops the watcher and closes channels.
func (w *FileWatchService) Stop() {
	if !w.Started {
		return
	}
	close(w.Done)
	w.Started = false
	if w.Watcher != nil {
		_ = w.Watcher.Close()
	}
}

// NextEvent returns the event channel if waiting is not already active.
func (w *FileWatchService) NextEvent() <-chan struct{} {
	if w.Events == nil || w.Waiting {
		return nil
	}
	w.Waiting = true
	return w.Events
}

// ResetWaiting clears the waiting flag after an event is processed.
func (w *FileWatchService) ResetWaiting() {
	w.Waiting = false
}

// ShouldRefresh checks debounce timing for watcher events.
func (w *FileWatchService) ShouldRefresh(now time.Time) bool {
	w.Mu.Lock()
	defer w.Mu.Unlock()
	if !w.LastRefresh.IsZero() && now.Sub(w.LastRefresh) < FileWatchDebounce {
		return false
	}
	w.LastRefresh = now
	return true
}

// Signal notifies listeners of watcher activity.
func (w *FileWatchService) Signal() {
	select {
	case <-w.Done:
		return
	default:
	}
	select {
	case w.Events <- struct{}{}:
	default:
	}
}

// IsWatched reports whether an event on name concerns the watched file.
func (w *FileWatchService) IsWatched(name string) bool {
	if name == "" {
		return false
	}
	return filepath.Clean(name) == w.Path
}

func (w *FileWatchService) run() {
	for {
		select {
		case <-w.Done:
			return
		case event, ok := <-w.Watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !w.IsWatched(event.Name) {
				continue
			}
			w.debugf("%s %s", event.Op, event.Name)
			w.Signal()
		case err, ok := <-w.Watcher.Errors:
			if !ok {
				return
			}
			w.debugf("watcher error: %v", err)
		}
	}
}

func (w *FileWatchService) debugf(format string, args ...any) {
	if w.logf == nil {
		return
	}
	w.logf(format, args...)
}
