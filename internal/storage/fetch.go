package storage

import (
	"context"
	"iter"
)

// DefaultPageSize is used by FetchAll when pageSize is not positive.
const DefaultPageSize = 1000

// Batch is one page of words read by FetchAll.
type Batch struct {
	Words     []string
	Offset    int // offset the page was read at
	Processed int // rows read so far, this page included
	Total     int // row count queried before the first page
}

// FetchAll returns a lazy sequence of word pages read from store.
// The total is counted once up front; pages are read with limit/offset
// until the total is reached or a short page shows the table ended early.
// The first error is yielded with the batch position it occurred at and ends the sequence.
func FetchAll(ctx context.Context, store WordStore, pageSize int) iter.Seq2[Batch, error] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return func(yield func(Batch, error) bool) {
		total, err := store.Count(ctx)
		if err != nil {
			yield(Batch{}, err)
			return
		}

		processed := 0
		for offset := 0; offset < total; offset += pageSize {
			if err := ctx.Err(); err != nil {
				yield(Batch{Offset: offset, Processed: processed, Total: total}, err)
				return
			}

			words, err := store.Page(ctx, pageSize, offset)
			if err != nil {
				yield(Batch{Offset: offset, Processed: processed, Total: total}, err)
				return
			}
			if len(words) == 0 {
				return
			}

			processed += len(words)
			if !yield(Batch{Words: words, Offset: offset, Processed: processed, Total: total}, nil) {
				return
			}
			if len(words) < pageSize {
				return
			}
		}
	}
}
