// Package watch re-checks a text file whenever it changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"illumicheck/internal/checker"
	"illumicheck/internal/contextutil"
)

// Result is the check of one snapshot of the watched file.
type Result struct {
	Path   string
	Text   string
	Result checker.Result
}

// Handler receives every check result. It is called from the Run goroutine.
type Handler func(Result)

// Option configures a Watcher.
type Option func(*Watcher)

// WithRecheckOn re-checks the file once each channel is closed, e.g. when the
// dictionary becomes ready or finishes loading.
func WithRecheckOn(chs ...<-chan struct{}) Option {
	return func(w *Watcher) {
		w.recheckOn = append(w.recheckOn, chs...)
	}
}

// WithLogger sets the logger used when the run context carries none.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// Watcher checks a file on start, on every write or create, and on each recheck signal.
type Watcher struct {
	path      string
	checker   *checker.Checker
	onResult  Handler
	recheckOn []<-chan struct{}
	logger    *slog.Logger

	last    string
	checked bool
}

// New creates a Watcher for path.
func New(path string, c *checker.Checker, onResult Handler, opts ...Option) (*Watcher, error) {
	if c == nil {
		return nil, errors.New("checker is required")
	}
	if onResult == nil {
		return nil, errors.New("result handler is required")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	w := &Watcher{
		path:     abs,
		checker:  c,
		onResult: onResult,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run watches until ctx is done. The parent directory is watched so files
// replaced by rename are still seen.
func (w *Watcher) Run(ctx context.Context) error {
	logger := contextutil.LoggerFromContext(ctx, w.logger)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	logger.InfoContext(ctx, "watching file", "path", w.path)

	recheck := make(chan struct{}, 1)
	for _, ch := range w.recheckOn {
		go func(ch <-chan struct{}) {
			select {
			case <-ch:
				select {
				case recheck <- struct{}{}:
				default:
				}
			case <-ctx.Done():
			}
		}(ch)
	}

	w.check(ctx, logger, false)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				logger.DebugContext(ctx, "file changed", "path", w.path, "op", event.Op.String())
				w.check(ctx, logger, false)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.WarnContext(ctx, "file watcher error", "error", err)
		case <-recheck:
			logger.DebugContext(ctx, "dictionary changed, re-checking", "path", w.path)
			w.checker.Reset()
			w.check(ctx, logger, true)
		}
	}
}

// check reads the file and reports its misspellings, skipping unchanged content unless forced.
func (w *Watcher) check(ctx context.Context, logger *slog.Logger, force bool) {
	raw, err := os.ReadFile(w.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.DebugContext(ctx, "watched file does not exist yet", "path", w.path)
			return
		}
		logger.WarnContext(ctx, "failed to read watched file", "path", w.path, "error", err)
		return
	}

	text := string(raw)
	if !force && w.checked && text == w.last {
		return
	}
	w.last = text
	w.checked = true

	w.onResult(Result{Path: w.path, Text: text, Result: w.checker.Check(text)})
}
