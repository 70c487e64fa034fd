// Package textnorm provides the text normalization and keyword matching
// primitives used by the triage engine. All matching downstream operates on
// normalized text: lowercase, accent-free, punctuation-free, single-spaced.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases the input, strips accents (NFD decomposition, combining
// marks dropped), replaces punctuation with spaces and collapses whitespace.
// It never fails; empty input yields an empty string.
func Normalize(s string) string {
	decomposed := norm.NFD.String(strings.ToLower(s))

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
			// combining mark from the decomposition — drop
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Words returns the set of words of an already-normalized message.
func Words(normalized string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(normalized) {
		words[w] = true
	}
	return words
}

// SplitKeywords splits a raw keyword field on commas, semicolons and newlines,
// normalizing each part and dropping empties. Operator-entered trigger rows
// store their keyword lists in this delimited form.
func SplitKeywords(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		if kw := Normalize(part); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

// Contains reports whether a normalized keyword matches the message. Phrases
// (keywords containing a space) match as substrings of the full message;
// single words must be an exact member of the message's word set, so "top"
// never matches inside "topico".
func Contains(message string, words map[string]bool, keyword string) bool {
	if keyword == "" {
		return false
	}
	if strings.Contains(keyword, " ") {
		return strings.Contains(message, keyword)
	}
	return words[keyword]
}

// Weight is the score contribution of a matched keyword: phrases count double
// because a multi-word hit is a much stronger signal than a lone word.
func Weight(keyword string) int {
	if strings.Contains(keyword, " ") {
		return 2
	}
	return 1
}

// ContainsAny reports whether any keyword in the list matches the message.
func ContainsAny(message string, words map[string]bool, keywords []string) bool {
	for _, kw := range keywords {
		if Contains(message, words, kw) {
			return true
		}
	}
	return false
}
