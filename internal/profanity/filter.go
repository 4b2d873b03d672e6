// Package profanity masks disallowed words in user supplied text.
package profanity

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultWords is the built-in word list.
var DefaultWords = []string{
	"arse", "arsehole", "ass", "asshole", "bastard", "bitch", "bollocks",
	"bullshit", "crap", "cunt", "damn", "dick", "dickhead", "fuck", "fucked",
	"fucker", "fucking", "motherfucker", "piss", "prick", "shit", "shitty",
	"slut", "twat", "wanker", "whore",
}

const placeholder = "*"

// Filter replaces whole-word matches with a run of placeholders of equal
// length. It is immutable after construction and safe for concurrent use.
type Filter struct {
	pattern *regexp.Regexp
}

func New(words ...string) *Filter {
	seen := make(map[string]struct{}, len(words))
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		quoted = append(quoted, regexp.QuoteMeta(w))
	}

	if len(quoted) == 0 {
		return &Filter{}
	}

	// longest first so alternation prefers "fucking" over "fuck"
	sort.Slice(quoted, func(i, j int) bool { return len(quoted[i]) > len(quoted[j]) })

	return &Filter{
		pattern: regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`),
	}
}

// NewDefault builds a filter from DefaultWords plus extra.
func NewDefault(extra ...string) *Filter {
	words := make([]string, 0, len(DefaultWords)+len(extra))
	words = append(words, DefaultWords...)
	words = append(words, extra...)
	return New(words...)
}

func (f *Filter) Clean(text string) string {
	if f == nil || f.pattern == nil || text == "" {
		return text
	}
	return f.pattern.ReplaceAllStringFunc(text, func(match string) string {
		return strings.Repeat(placeholder, utf8.RuneCountInString(match))
	})
}
