// Package tokenizer splits editor text into word tokens and normalizes them
// for dictionary lookup.
package tokenizer

import (
	"strings"
	"unicode"
)

// Separator is the character counted by CountSeparators.
const Separator = ' '

// Token is a maximal run of word runes taken from a text snapshot.
// Start and End are rune offsets into that snapshot; End is exclusive.
type Token struct {
	Text  string
	Start int
	End   int
}

// IsWordRune reports whether r is part of a word: a letter, a number,
// a combining mark or an underscore.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r)
}

// Tokenize returns the word tokens of text in order of appearance.
// Everything that is not a word rune separates tokens and is never a token itself.
func Tokenize(text string) []Token {
	var tokens []Token

	start := -1    // byte offset of the current token, -1 when outside a token
	startRune := 0 // rune offset of the current token
	runeIdx := 0

	for i, r := range text {
		if IsWordRune(r) {
			if start < 0 {
				start = i
				startRune = runeIdx
			}
		} else if start >= 0 {
			tokens = append(tokens, Token{Text: text[start:i], Start: startRune, End: runeIdx})
			start = -1
		}
		runeIdx++
	}
	if start >= 0 {
		tokens = append(tokens, Token{Text: text[start:], Start: startRune, End: runeIdx})
	}

	return tokens
}

// CountSeparators returns the number of space characters in text.
func CountSeparators(text string) int {
	return strings.Count(text, string(Separator))
}

// stripNonWord removes every rune that is not a word rune.
// Clean input is returned as is.
func stripNonWord(s string) string {
	for _, r := range s {
		if !IsWordRune(r) {
			return strings.Map(func(r rune) rune {
				if !IsWordRune(r) {
					return -1
				}
				return r
			}, s)
		}
	}
	return s
}
