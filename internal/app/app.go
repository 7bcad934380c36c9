// Package app wires the word database, the cache and the dictionary loader from configuration.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"illumicheck/internal/cache"
	"illumicheck/internal/checker"
	"illumicheck/internal/config"
	"illumicheck/internal/contextutil"
	"illumicheck/internal/dictionary"
	"illumicheck/internal/storage"
	"illumicheck/internal/tokenizer"
)

// Dictionary is the running dictionary of a process.
type Dictionary struct {
	// DB is nil when the word database could not be opened.
	DB         *sql.DB
	dbErr      error
	Loader     *dictionary.Loader
	Set        *dictionary.Set
	Normalizer *tokenizer.Normalizer
	Mode       checker.Mode
}

// OpenDB opens and migrates the configured word database.
func OpenDB(cfg *config.Config) (*sql.DB, *storage.WordRepo, error) {
	db, err := storage.New(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, nil, &storage.ConnectionError{Op: "open", Err: err}
	}

	if err := storage.Migrate(db, cfg.DBDriver, cfg.WordTable, cfg.WordColumn); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	repo, err := storage.NewWordRepo(db, cfg.DBDriver, cfg.WordTable, cfg.WordColumn)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to create word repository: %w", err)
	}
	return db, repo, nil
}

// StartDictionary merges the cache and starts the background load.
// An unreachable database is logged and the dictionary runs from the cache alone.
func StartDictionary(ctx context.Context, cfg *config.Config) *Dictionary {
	logger := contextutil.LoggerFromContext(ctx)

	mode, _ := checker.ParseMode(cfg.CheckMode)
	d := &Dictionary{
		Normalizer: tokenizer.NewNormalizer(cfg.Locale),
		Mode:       mode,
	}

	var store storage.WordStore
	db, repo, err := OpenDB(cfg)
	if err != nil {
		d.dbErr = err
		logger.ErrorContext(ctx, "word database unavailable, using cached dictionary only",
			"driver", cfg.DBDriver, "error", err)
	} else {
		d.DB = db
		store = repo
		logger.InfoContext(ctx, "word database initialized",
			"driver", cfg.DBDriver, "table", cfg.WordTable, "column", cfg.WordColumn)
	}

	d.Loader = dictionary.NewLoader(store, cache.NewFileCache(cfg.CachePath),
		dictionary.WithPageSize(cfg.PageSize),
		dictionary.WithPageTimeout(cfg.StoreTimeout),
		dictionary.WithNormalizer(d.Normalizer),
		dictionary.WithProgress(func(pct float64) {
			logger.InfoContext(ctx, "dictionary load progress", "percent", fmt.Sprintf("%.1f", pct))
		}),
		dictionary.WithLogger(logger),
	)
	d.Set = d.Loader.Start(ctx)
	return d
}

// NewChecker returns a checker over the dictionary in the configured mode.
func (d *Dictionary) NewChecker() *checker.Checker {
	return checker.New(d.Set, d.Normalizer, d.Mode)
}

// PingContext verifies the word database, reporting the open error if it never came up.
func (d *Dictionary) PingContext(ctx context.Context) error {
	if d.DB == nil {
		return d.dbErr
	}
	return d.DB.PingContext(ctx)
}

// Close closes the word database.
func (d *Dictionary) Close() {
	if d.DB == nil {
		return
	}
	if err := d.DB.Close(); err != nil {
		slog.Warn("failed to close word database", "error", err)
	}
}
