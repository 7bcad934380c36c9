package storage

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func newTestWordRepo(t *testing.T) *WordRepo {
	t.Helper()

	repo, err := NewWordRepo(newTestDB(t), DriverSQLite, "words", "WordText")
	if err != nil {
		t.Fatalf("NewWordRepo() error = %v", err)
	}
	return repo
}

func TestNewWordRepo(t *testing.T) {
	db := newTestDB(t)

	tests := []struct {
		name    string
		driver  string
		table   string
		column  string
		wantErr bool
	}{
		{name: "sqlite", driver: DriverSQLite, table: "words", column: "WordText"},
		{name: "mysql", driver: DriverMySQL, table: "TDK", column: "turkishwords"},
		{name: "bad table", driver: DriverSQLite, table: "words--", column: "WordText", wantErr: true},
		{name: "bad driver", driver: "oracle", table: "words", column: "WordText", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, err := NewWordRepo(db, tt.driver, tt.table, tt.column)
			if tt.wantErr {
				if err == nil {
					t.Error("NewWordRepo() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewWordRepo() unexpected error: %v", err)
			}
			if repo.DB() != db {
				t.Error("NewWordRepo() DB() should return the given handle")
			}
		})
	}
}

func TestNewWordRepo_MySQLUsesCharLength(t *testing.T) {
	repo, err := NewWordRepo(nil, DriverMySQL, "TDK", "turkishwords")
	if err != nil {
		t.Fatalf("NewWordRepo() error = %v", err)
	}

	wantCount := "SELECT COUNT(*) FROM TDK WHERE CHAR_LENGTH(turkishwords) <= 20"
	if repo.countQuery != wantCount {
		t.Errorf("countQuery = %q, want %q", repo.countQuery, wantCount)
	}
	if !strings.HasPrefix(repo.insertQuery, "INSERT IGNORE INTO TDK") {
		t.Errorf("insertQuery = %q, want INSERT IGNORE", repo.insertQuery)
	}
}

func TestWordRepo_Insert(t *testing.T) {
	repo := newTestWordRepo(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		words []string
		want  int
	}{
		{name: "new words", words: []string{"cat", "dog"}, want: 2},
		{name: "duplicates skipped", words: []string{"cat", "fish"}, want: 1},
		{name: "empty strings skipped", words: []string{"", ""}, want: 0},
		{name: "nothing", words: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Insert(ctx, tt.words)
			if err != nil {
				t.Fatalf("Insert() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Insert() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWordRepo_Count_FiltersLongWords(t *testing.T) {
	repo := newTestWordRepo(t)
	ctx := context.Background()

	words := []string{
		"kısa",
		strings.Repeat("a", MaxWordLength),
		strings.Repeat("b", MaxWordLength+1),
		strings.Repeat("ç", MaxWordLength), // 20 characters, 40 bytes
	}
	if _, err := repo.Insert(ctx, words); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 3 {
		t.Errorf("Count() = %d, want 3", count)
	}
}

func TestWordRepo_Page(t *testing.T) {
	repo := newTestWordRepo(t)
	ctx := context.Background()

	if _, err := repo.Insert(ctx, []string{"dog", "cat", "fish", "bird", strings.Repeat("x", 30)}); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	tests := []struct {
		name   string
		limit  int
		offset int
		want   []string
	}{
		{name: "first page", limit: 2, offset: 0, want: []string{"bird", "cat"}},
		{name: "second page", limit: 2, offset: 2, want: []string{"dog", "fish"}},
		{name: "past the end", limit: 2, offset: 4, want: []string{}},
		{name: "all", limit: 10, offset: 0, want: []string{"bird", "cat", "dog", "fish"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Page(ctx, tt.limit, tt.offset)
			if err != nil {
				t.Fatalf("Page() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Page() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWordRepo_ClosedDatabase(t *testing.T) {
	repo := newTestWordRepo(t)
	_ = repo.DB().Close()
	ctx := context.Background()

	if _, err := repo.Count(ctx); !errors.Is(err, ErrConnection) {
		t.Errorf("Count() error = %v, want ErrConnection", err)
	}

	_, err := repo.Page(ctx, 10, 0)
	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("Page() error = %v, want *ConnectionError", err)
	}
	if connErr.Op != "page" {
		t.Errorf("ConnectionError.Op = %q, want page", connErr.Op)
	}
}
