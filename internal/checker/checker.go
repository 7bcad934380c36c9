// Package checker finds the misspelled words of a text snapshot.
//
// A Checker is meant to be called on every text change. In
// ModeApproximate it skips the recompute while the number of spaces
// in the text and the dictionary version are unchanged, reusing the
// previous result. Edits inside a word therefore only show up after the
// next edit that adds or removes a space.
package checker

import (
	"sort"
	"sync"

	"illumicheck/internal/tokenizer"
)

// Mode selects how eagerly a Checker recomputes.
type Mode int

const (
	// ModeApproximate reuses the previous result while the separator count is unchanged.
	ModeApproximate Mode = iota
	// ModeExact recomputes on every call.
	ModeExact
)

// String returns the config name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeApproximate:
		return "approximate"
	case ModeExact:
		return "exact"
	}
	return "unknown"
}

// ParseMode maps a config name to a Mode. Unknown names give ModeApproximate and false.
func ParseMode(name string) (Mode, bool) {
	switch name {
	case "approximate":
		return ModeApproximate, true
	case "exact":
		return ModeExact, true
	}
	return ModeApproximate, false
}

// Lexicon is the dictionary a Checker reads from.
// dictionary.Set implements it.
type Lexicon interface {
	Contains(word string) bool
	Ready() bool
	Version() uint64
}

// Misspelling is a token whose normalized form is not in the dictionary.
// Start and End are rune offsets into the checked text; End is exclusive.
type Misspelling struct {
	Word  string `json:"word"`
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Result is the outcome of one Check.
type Result struct {
	// Ready is false while the dictionary is not ready; nothing is reported then.
	Ready bool `json:"ready"`
	// Reused is true when the previous result was returned without a recompute.
	Reused       bool          `json:"reused"`
	Misspellings []Misspelling `json:"misspellings"`
}

// Checker computes misspellings against a Lexicon, remembering the last
// result for the approximate pre-filter. It is safe for concurrent use,
// though calls are serialized.
type Checker struct {
	lex  Lexicon
	norm *tokenizer.Normalizer
	mode Mode

	mu          sync.Mutex
	hasPrev     bool
	prevSpaces  int
	prevVersion uint64
	prev        []Misspelling
}

// New creates a Checker. A nil normalizer uses locale-independent lower-casing.
func New(lex Lexicon, norm *tokenizer.Normalizer, mode Mode) *Checker {
	if norm == nil {
		norm = tokenizer.NewNormalizer(tokenizer.DefaultLocale)
	}
	return &Checker{lex: lex, norm: norm, mode: mode}
}

// Mode returns the recompute mode.
func (c *Checker) Mode() Mode {
	return c.mode
}

// Check returns the misspellings of text. It never blocks on the dictionary
// loader; it reads whatever the lexicon holds now.
func (c *Checker) Check(text string) Result {
	if !c.lex.Ready() {
		return Result{Misspellings: []Misspelling{}}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	spaces := tokenizer.CountSeparators(text)
	version := c.lex.Version()

	if c.mode == ModeApproximate && c.hasPrev && spaces == c.prevSpaces && version == c.prevVersion {
		return Result{Ready: true, Reused: true, Misspellings: clone(c.prev)}
	}

	found := c.find(text)
	c.hasPrev = true
	c.prevSpaces = spaces
	c.prevVersion = version
	c.prev = found

	return Result{Ready: true, Misspellings: clone(found)}
}

// Reset forgets the previous result so the next Check recomputes.
func (c *Checker) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hasPrev = false
	c.prev = nil
}

func (c *Checker) find(text string) []Misspelling {
	found := []Misspelling{}
	for _, tok := range tokenizer.Tokenize(text) {
		word := c.norm.Normalize(tok.Text)
		if word == "" {
			continue
		}
		if c.lex.Contains(word) {
			continue
		}
		found = append(found, Misspelling{Word: word, Text: tok.Text, Start: tok.Start, End: tok.End})
	}
	return found
}

// Check is a one-shot exact check of text against lex.
func Check(text string, lex Lexicon, norm *tokenizer.Normalizer) []Misspelling {
	return New(lex, norm, ModeExact).Check(text).Misspellings
}

// Distinct returns the sorted distinct words of ms.
func Distinct(ms []Misspelling) []string {
	seen := make(map[string]struct{}, len(ms))
	words := make([]string, 0, len(ms))
	for _, m := range ms {
		if _, ok := seen[m.Word]; ok {
			continue
		}
		seen[m.Word] = struct{}{}
		words = append(words, m.Word)
	}
	sort.Strings(words)
	return words
}

func clone(ms []Misspelling) []Misspelling {
	out := make([]Misspelling, len(ms))
	copy(out, ms)
	return out
}
