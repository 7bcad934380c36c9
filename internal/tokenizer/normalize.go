package tokenizer

import (
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultLocale lower-cases without language-specific rules.
var DefaultLocale = language.Und

// Normalizer maps raw tokens and dictionary entries to their lookup form.
// It is safe for concurrent use.
type Normalizer struct {
	tag    language.Tag
	casers sync.Pool
}

// NewNormalizer returns a Normalizer that lower-cases with the rules of tag.
// language.Und gives locale-independent lower-casing; language.Turkish folds I to ı.
func NewNormalizer(tag language.Tag) *Normalizer {
	n := &Normalizer{tag: tag}
	n.casers.New = func() any {
		c := cases.Lower(tag)
		return &c
	}
	return n
}

// Locale returns the language tag the normalizer lower-cases with.
func (n *Normalizer) Locale() language.Tag {
	return n.tag
}

// Normalize lower-cases raw and strips every rune that is not a word rune.
// A raw value made only of punctuation normalizes to the empty string.
func (n *Normalizer) Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	c := n.casers.Get().(*cases.Caser)
	lower := c.String(raw)
	n.casers.Put(c)
	return stripNonWord(lower)
}

var defaultNormalizer = NewNormalizer(DefaultLocale)

// Normalize normalizes raw with locale-independent lower-casing.
func Normalize(raw string) string {
	return defaultNormalizer.Normalize(raw)
}
