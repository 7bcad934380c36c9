// Command seed imports a newline-delimited word list into the configured word table.
//
// Usage:
//
//	seed [-batch n] <file|->
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"illumicheck/internal/app"
	"illumicheck/internal/config"
	"illumicheck/internal/storage"
)

func main() {
	batchSize := flag.Int("batch", 500, "words inserted per transaction")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: seed [-batch n] <file|->")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 || *batchSize <= 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	slog.SetDefault(cfg.NewLogger(os.Stderr))

	in := os.Stdin
	if name := flag.Arg(0); name != "-" {
		f, err := os.Open(name)
		if err != nil {
			log.Fatalf("Failed to open word list: %v", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	db, repo, err := app.OpenDB(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	read, inserted, err := seed(context.Background(), repo, in, *batchSize)
	if err != nil {
		log.Fatalf("Failed to import word list: %v", err)
	}
	slog.Info("Word list imported", "read", read, "inserted", inserted, "table", cfg.WordTable)
}

// seed reads one word per line from r and inserts them in batches.
// Blank lines and lines starting with # are skipped.
func seed(ctx context.Context, store storage.WordStore, r io.Reader, batchSize int) (read, inserted int, err error) {
	scanner := bufio.NewScanner(r)
	batch := make([]string, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := store.Insert(ctx, batch)
		if err != nil {
			return err
		}
		inserted += n
		batch = batch[:0]
		return nil
	}

	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		read++
		batch = append(batch, word)
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return read, inserted, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return read, inserted, fmt.Errorf("failed to read word list: %w", err)
	}
	if err := flush(); err != nil {
		return read, inserted, err
	}
	return read, inserted, nil
}
