package dictionary

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"illumicheck/internal/cache"
	"illumicheck/internal/contextutil"
	"illumicheck/internal/storage"
	"illumicheck/internal/tokenizer"
)

// DefaultPageTimeout bounds each call to the word store.
const DefaultPageTimeout = 30 * time.Second

// ProgressFunc receives the load percentage after each page.
// It is called from the loader goroutine.
type ProgressFunc func(percent float64)

// Status is a point-in-time view of a Loader.
type Status struct {
	Ready     bool    `json:"ready"`
	Loading   bool    `json:"loading"`
	Words     int     `json:"words"`
	Progress  float64 `json:"progress"`
	LastError string  `json:"last_error,omitempty"`
}

// Option configures a Loader.
type Option func(*Loader)

// WithPageSize sets how many rows are read per store page.
func WithPageSize(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.pageSize = n
		}
	}
}

// WithPageTimeout bounds each store call. Zero disables the timeout.
func WithPageTimeout(d time.Duration) Option {
	return func(l *Loader) {
		l.pageTimeout = d
	}
}

// WithNormalizer sets the normalizer applied to every loaded word.
func WithNormalizer(n *tokenizer.Normalizer) Option {
	return func(l *Loader) {
		if n != nil {
			l.normalizer = n
		}
	}
}

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(l *Loader) {
		l.onProgress = fn
	}
}

// WithLogger sets the logger used when the start context carries none.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Loader fills a Set from the cache snapshot, then refreshes it from the word store
// in a background goroutine. Either source may be nil.
type Loader struct {
	store       storage.WordStore
	cache       cache.SnapshotStore
	normalizer  *tokenizer.Normalizer
	pageSize    int
	pageTimeout time.Duration
	onProgress  ProgressFunc
	logger      *slog.Logger

	set       *Set
	startOnce sync.Once
	done      chan struct{}
	loading   atomic.Bool
	progress  atomic.Uint64 // math.Float64bits of the percentage

	mu  sync.Mutex
	err error
}

// NewLoader creates a Loader reading from store and cache.
func NewLoader(store storage.WordStore, snapshots cache.SnapshotStore, opts ...Option) *Loader {
	l := &Loader{
		store:       store,
		cache:       snapshots,
		normalizer:  tokenizer.NewNormalizer(tokenizer.DefaultLocale),
		pageSize:    storage.DefaultPageSize,
		pageTimeout: DefaultPageTimeout,
		logger:      slog.Default(),
		set:         NewSet(),
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Set returns the shared word set. It is usable before Start and never replaced.
func (l *Loader) Set() *Set {
	return l.set
}

// Start merges the cache snapshot synchronously, then loads the word store
// in a background goroutine and returns the shared set without waiting.
// Calling Start again has no effect.
func (l *Loader) Start(ctx context.Context) *Set {
	l.startOnce.Do(func() {
		logger := contextutil.LoggerFromContext(ctx, l.logger)
		l.loadCache(ctx, logger)
		l.loading.Store(true)
		go l.run(ctx, logger)
	})
	return l.set
}

// Done is closed when the background load has finished, successfully or not.
func (l *Loader) Done() <-chan struct{} {
	return l.done
}

// Wait blocks until the background load finishes or ctx is done.
// It returns the load error, if any.
func (l *Loader) Wait(ctx context.Context) error {
	select {
	case <-l.done:
		return l.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns the error that stopped the last store load.
func (l *Loader) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Progress returns the last reported load percentage.
func (l *Loader) Progress() float64 {
	return math.Float64frombits(l.progress.Load())
}

// Status returns the current loader state.
func (l *Loader) Status() Status {
	st := Status{
		Ready:    l.set.Ready(),
		Loading:  l.loading.Load(),
		Words:    l.set.Len(),
		Progress: l.Progress(),
	}
	if err := l.Err(); err != nil {
		st.LastError = err.Error()
	}
	return st
}

func (l *Loader) loadCache(ctx context.Context, logger *slog.Logger) {
	if l.cache == nil {
		return
	}

	words, err := l.cache.Load()
	if err != nil {
		logger.WarnContext(ctx, "dictionary cache unavailable, starting without it", "error", err)
		return
	}

	added := l.merge(words)
	if l.set.Len() > 0 {
		l.set.MarkReady()
	}
	logger.InfoContext(ctx, "loaded dictionary from cache", "words", added)
}

func (l *Loader) run(ctx context.Context, logger *slog.Logger) {
	defer close(l.done)
	defer l.loading.Store(false)
	// Whatever has loaded by now is all this session gets.
	defer l.set.MarkReady()

	if l.store == nil {
		l.report(100)
		return
	}

	start := time.Now()
	logger.InfoContext(ctx, "starting background dictionary load", "page_size", l.pageSize)

	store := &timeoutStore{WordStore: l.store, timeout: l.pageTimeout}
	pages := 0
	for batch, err := range storage.FetchAll(ctx, store, l.pageSize) {
		if err != nil {
			l.fail(err)
			logger.ErrorContext(ctx, "dictionary load failed, keeping loaded words",
				"error", err, "processed", batch.Processed, "total", batch.Total, "words", l.set.Len())
			return
		}

		added := l.merge(batch.Words)
		l.set.MarkReady()
		pages++

		pct := 100.0
		if batch.Total > 0 {
			pct = float64(batch.Processed) / float64(batch.Total) * 100
		}
		l.report(pct)
		logger.DebugContext(ctx, "merged dictionary page",
			"offset", batch.Offset, "rows", len(batch.Words), "added", added, "progress", l.Progress())
	}

	if l.Progress() < 100 {
		l.report(100)
	}

	words := l.set.Words()
	logger.InfoContext(ctx, "dictionary load completed",
		"pages", pages, "words", len(words), "duration", time.Since(start))

	if l.cache == nil {
		return
	}
	if err := l.cache.Save(words); err != nil {
		logger.WarnContext(ctx, "failed to save dictionary cache", "error", err)
		return
	}
	logger.DebugContext(ctx, "saved dictionary cache", "words", len(words))
}

// merge normalizes words and adds the non-empty ones to the set.
func (l *Loader) merge(words []string) int {
	if len(words) == 0 {
		return 0
	}
	normalized := make([]string, 0, len(words))
	for _, w := range words {
		if n := l.normalizer.Normalize(w); n != "" {
			normalized = append(normalized, n)
		}
	}
	return l.set.Add(normalized...)
}

// report publishes pct, clamped so progress never decreases or exceeds 100.
func (l *Loader) report(pct float64) {
	pct = math.Min(math.Max(pct, l.Progress()), 100)
	l.progress.Store(math.Float64bits(pct))
	if l.onProgress != nil {
		l.onProgress(pct)
	}
}

func (l *Loader) fail(err error) {
	l.mu.Lock()
	l.err = fmt.Errorf("failed to load dictionary: %w", err)
	l.mu.Unlock()
}

// timeoutStore bounds every read on the wrapped store.
type timeoutStore struct {
	storage.WordStore
	timeout time.Duration
}

func (s *timeoutStore) Count(ctx context.Context) (int, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.WordStore.Count(ctx)
}

func (s *timeoutStore) Page(ctx context.Context, limit, offset int) ([]string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.WordStore.Page(ctx, limit, offset)
}

func (s *timeoutStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
