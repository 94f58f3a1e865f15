package palette

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	ScoreExact       = 100
	ScorePrefix      = 90
	ScoreSubstring   = 70
	ScorePerSubMatch = 10
)

// Score rates how well query matches text. Higher is better and 0 means no
// match. Comparison is case-insensitive and runs on NFC-normalised text so
// that composed and decomposed accents compare equal.
//
// Rules, first hit wins:
//   - exact match: 100
//   - text starts with query: 90
//   - text contains query: 70
//   - every query rune appears in text in order: 10 per matched rune
//
// An empty query never matches; the palette shows quick picks instead.
func Score(query, text string) int {
	if query == "" {
		return 0
	}

	q := fold(query)
	t := fold(text)

	switch {
	case t == q:
		return ScoreExact
	case strings.HasPrefix(t, q):
		return ScorePrefix
	case strings.Contains(t, q):
		return ScoreSubstring
	}

	return subsequenceScore([]rune(q), t)
}

func subsequenceScore(q []rune, t string) int {
	qi := 0
	score := 0
	for _, r := range t {
		if qi == len(q) {
			break
		}
		if r == q[qi] {
			qi++
			score += ScorePerSubMatch
		}
	}
	if qi < len(q) {
		return 0
	}
	return score
}

func fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}
