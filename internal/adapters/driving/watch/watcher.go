// Package watch monitors a directory for new transcript files and
// feeds them to a handler once they have settled on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/scrivia-labs/scrivia-cli/internal/logger"
)

// DefaultSettle is how long a file must stay quiet after its last
// write event before it is handed to the handler. ASR tools write
// transcripts incrementally, so acting on the first event would read
// partial JSON.
const DefaultSettle = 500 * time.Millisecond

// artifactSuffixes are outputs of a processing run. They land next to
// the input file and would otherwise match a *.json watch pattern,
// re-triggering the watcher on its own output.
var artifactSuffixes = []string{
	".transcript.txt",
	".transcript.srt",
	".transcript.json",
	".notes.md",
	".meeting-type.json",
	".changes.md",
	".metadata.json",
}

// Handler processes one settled file.
type Handler func(ctx context.Context, path string) error

// Watcher watches a single directory for files matching a set of
// glob patterns.
type Watcher struct {
	dir      string
	patterns []string
	handler  Handler
	settle   time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithSettle overrides the settle delay.
func WithSettle(d time.Duration) Option {
	return func(w *Watcher) {
		w.settle = d
	}
}

// New creates a watcher for dir. Patterns are matched against file
// base names with filepath.Match semantics; an empty pattern list
// matches nothing.
func New(dir string, patterns []string, handler Handler, opts ...Option) (*Watcher, error) {
	if dir == "" {
		return nil, fmt.Errorf("watch directory is required")
	}
	if handler == nil {
		return nil, fmt.Errorf("watch handler is required")
	}

	w := &Watcher{
		dir:      dir,
		patterns: patterns,
		handler:  handler,
		settle:   DefaultSettle,
		pending:  make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run watches the directory until ctx is cancelled. Handler errors
// are logged, not returned: one bad file must not stop the watch.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	logger.Info("watching %s for %s", w.dir, strings.Join(w.patterns, ", "))

	settled := make(chan string, 16)
	defer w.cancelPending()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !w.matches(event.Name) {
				continue
			}
			w.schedule(event.Name, settled)

		case path := <-settled:
			logger.Section("Watch")
			logger.Info("processing %s", filepath.Base(path))
			if err := w.handler(ctx, path); err != nil {
				logger.Warn("processing %s failed: %v", filepath.Base(path), err)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// matches reports whether path names a watchable transcript: it must
// match a configured pattern and must not be a processing artifact.
func (w *Watcher) matches(path string) bool {
	name := filepath.Base(path)
	for _, suffix := range artifactSuffixes {
		if strings.HasSuffix(name, suffix) {
			return false
		}
	}
	for _, pattern := range w.patterns {
		if ok, err := filepath.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// schedule arms (or re-arms) the settle timer for path. Each write
// event pushes the deadline back, so the handler only sees files
// that have stopped changing.
func (w *Watcher) schedule(path string, settled chan<- string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Reset(w.settle)
		return
	}
	w.pending[path] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		settled <- path
	})
}

func (w *Watcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
}
