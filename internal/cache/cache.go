// Package cache keeps a local snapshot of the dictionary so a session can
// start checking before the word store answers.
package cache

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_snapshot_store.go -package=mocks illumicheck/internal/cache SnapshotStore

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrCorrupt is returned by Load when the snapshot cannot be parsed.
var ErrCorrupt = errors.New("cache snapshot is corrupt")

// SnapshotStore loads and saves dictionary snapshots.
type SnapshotStore interface {
	// Load returns the saved words. A missing snapshot yields no words and no error.
	Load() ([]string, error)
	// Save replaces the snapshot with words.
	Save(words []string) error
}

// FileCache stores the snapshot as a JSON array of strings in a single file.
// It implements the SnapshotStore interface.
type FileCache struct {
	path     string
	permFile os.FileMode
	permDir  os.FileMode
}

// NewFileCache creates a FileCache at path.
func NewFileCache(path string) *FileCache {
	return &FileCache{path: path, permFile: 0o644, permDir: 0o755}
}

// Path returns the snapshot file path.
func (c *FileCache) Path() string {
	return c.path
}

// Load reads the snapshot. A missing file is not an error.
// An unparsable file, or one with data after the word array, returns an
// error wrapping ErrCorrupt. Other open errors are returned as is.
func (c *FileCache) Load() ([]string, error) {
	f, err := os.Open(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open cache %s: %w", c.path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	var words []string
	dec := json.NewDecoder(bufio.NewReader(f))
	if err := dec.Decode(&words); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, c.path, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: %s: trailing data after word list", ErrCorrupt, c.path)
	}
	return words, nil
}

// Save overwrites the snapshot with words.
// It writes a temp file in the same directory and renames it over the target,
// so a failed save leaves the previous snapshot intact.
func (c *FileCache) Save(words []string) error {
	if words == nil {
		words = []string{}
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, c.permDir); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".cache-*")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, c.permFile)

	bw := bufio.NewWriter(tmp)
	enc := json.NewEncoder(bw)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(words); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to encode cache: %w", err)
	}
	if err := bw.Flush(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write cache: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close cache: %w", err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace cache %s: %w", c.path, err)
	}
	return nil
}
