// Command watch re-checks a text file whenever it is saved and prints the misspelled words.
//
// Usage:
//
//	watch <file>
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"illumicheck/internal/app"
	"illumicheck/internal/config"
	"illumicheck/internal/watch"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: watch <file>")
		os.Exit(2)
	}
	path := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Results go to stdout, logs to stderr
	slog.SetDefault(cfg.NewLogger(os.Stderr))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dict := app.StartDictionary(ctx, cfg)
	defer dict.Close()

	w, err := watch.New(path, dict.NewChecker(), printResult,
		watch.WithRecheckOn(dict.Set.ReadyC(), dict.Loader.Done()))
	if err != nil {
		log.Fatalf("Failed to create watcher: %v", err)
	}

	if err := w.Run(ctx); err != nil {
		log.Fatalf("Watcher failed: %v", err)
	}
}

func printResult(r watch.Result) {
	if !r.Result.Ready {
		fmt.Printf("%s: dictionary not ready yet\n", r.Path)
		return
	}
	if len(r.Result.Misspellings) == 0 {
		fmt.Printf("%s: no misspellings\n", r.Path)
		return
	}
	fmt.Printf("%s: %d misspelled\n", r.Path, len(r.Result.Misspellings))
	for _, m := range r.Result.Misspellings {
		fmt.Printf("  %d-%d\t%s\n", m.Start, m.End, m.Text)
	}
}
