package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_word_store.go -package=mocks illumicheck/internal/storage WordStore

import (
	"context"
	"database/sql"
	"fmt"
)

// MaxWordLength is the longest word, in characters, read from the word source.
// Longer rows are treated as noise.
const MaxWordLength = 20

// WordStore defines the interface for word storage operations.
type WordStore interface {
	// Count returns the number of words no longer than MaxWordLength.
	Count(ctx context.Context) (int, error)
	// Page returns up to limit words starting at offset, in a stable order.
	Page(ctx context.Context, limit, offset int) ([]string, error)
	// Insert adds words, skipping ones already present. It returns how many were inserted.
	Insert(ctx context.Context, words []string) (int, error)
}

// WordRepo provides methods for word operations.
// It implements the WordStore interface.
type WordRepo struct {
	db          *sql.DB
	table       string
	countQuery  string
	pageQuery   string
	insertQuery string
}

// NewWordRepo creates a new WordRepo reading column of table.
// driver selects the SQL dialect (DriverSQLite or DriverMySQL).
func NewWordRepo(db *sql.DB, driver, table, column string) (*WordRepo, error) {
	if err := validateIdentifiers(table, column); err != nil {
		return nil, err
	}

	var lengthFunc, insertVerb string
	switch driver {
	case DriverSQLite:
		lengthFunc, insertVerb = "LENGTH", "INSERT OR IGNORE"
	case DriverMySQL:
		// LENGTH counts bytes in MySQL
		lengthFunc, insertVerb = "CHAR_LENGTH", "INSERT IGNORE"
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	filter := fmt.Sprintf("%s(%s) <= %d", lengthFunc, column, MaxWordLength)
	return &WordRepo{
		db:          db,
		table:       table,
		countQuery:  fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", table, filter),
		pageQuery:   fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY %s LIMIT ? OFFSET ?", column, table, filter, column),
		insertQuery: fmt.Sprintf("%s INTO %s (%s) VALUES (?)", insertVerb, table, column),
	}, nil
}

// DB returns the underlying database handle.
func (r *WordRepo) DB() *sql.DB {
	return r.db
}

// Count returns the number of words no longer than MaxWordLength.
func (r *WordRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, r.countQuery).Scan(&count); err != nil {
		return 0, &ConnectionError{Op: "count", Err: err}
	}
	return count, nil
}

// Page returns up to limit words starting at offset, ordered by the word column.
// Returns an empty slice past the end (not an error).
func (r *WordRepo) Page(ctx context.Context, limit, offset int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, r.pageQuery, limit, offset)
	if err != nil {
		return nil, &ConnectionError{Op: "page", Err: err}
	}
	defer func() {
		_ = rows.Close()
	}()

	words := make([]string, 0, limit)
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, &ConnectionError{Op: "page", Err: fmt.Errorf("failed to scan word: %w", err)}
		}
		words = append(words, word)
	}

	if err := rows.Err(); err != nil {
		return nil, &ConnectionError{Op: "page", Err: fmt.Errorf("row iteration error: %w", err)}
	}

	return words, nil
}

// Insert adds words in a single transaction, skipping duplicates and empty strings.
func (r *WordRepo) Insert(ctx context.Context, words []string) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, r.insertQuery)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	inserted := 0
	for _, word := range words {
		if word == "" {
			continue
		}
		res, err := stmt.ExecContext(ctx, word)
		if err != nil {
			return 0, fmt.Errorf("failed to insert word %q: %w", word, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to read affected rows: %w", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit words into %s: %w", r.table, err)
	}
	return inserted, nil
}
