package config

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// FileWatcher polls file modification times and triggers a callback on change.
type FileWatcher struct {
	Paths     []string
	Interval  time.Duration
	onChange  func(string) // called with path that changed
	lastMTime map[string]time.Time
	primed    bool
}

// NewFileWatcher creates a watcher for given paths and interval.
func NewFileWatcher(paths []string, interval time.Duration, onChange func(string)) *FileWatcher {
	return &FileWatcher{
		Paths:     paths,
		Interval:  interval,
		onChange:  onChange,
		lastMTime: make(map[string]time.Time),
	}
}

// Run polls until ctx is done.
func (w *FileWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	// prime cache
	w.scanAll()
	for {
		select {
		case <-ticker.C:
			for _, p := range w.scanAll() {
				if w.onChange != nil {
					w.onChange(p)
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

// scanAll records mtimes and returns files that changed since the last scan.
// A file seen for the first time (including one created after start) counts
// as changed only after the first scan.
func (w *FileWatcher) scanAll() []string {
	primed := w.primed
	w.primed = true
	var changed []string
	for _, p := range w.Paths {
		fi, err := os.Stat(p)
		if err != nil {
			// missing file: keep going, it may show up later
			continue
		}
		mt := fi.ModTime()
		last, ok := w.lastMTime[p]
		w.lastMTime[p] = mt
		switch {
		case !ok && primed:
			changed = append(changed, p)
		case ok && mt.After(last):
			changed = append(changed, p)
		}
	}
	return changed
}

// WatchLoader invalidates l's cache whenever one of profile's files changes.
func WatchLoader(ctx context.Context, l *Loader, profile string, interval time.Duration, logger *log.Logger) {
	w := NewFileWatcher(l.Paths(profile), interval, func(path string) {
		l.Invalidate()
		if logger != nil {
			logger.Info("config changed, cache cleared", "path", path)
		}
	})
	go w.Run(ctx)
}
