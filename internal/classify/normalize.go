package classify

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeText canonicalizes free text for dictionary matching: diacritics
// are stripped, everything is lowercased, whitespace is collapsed and
// characters outside [0-9a-z\-\s/] are dropped.
func NormalizeText(s string) string {
	if s == "" {
		return ""
	}

	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}

	lowered := strings.ToLower(stripped)
	collapsed := strings.Join(strings.Fields(lowered), " ")

	var b strings.Builder
	b.Grow(len(collapsed))
	for _, r := range collapsed {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r == '-' || r == ' ' || r == '/':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// collapseLower lowercases and collapses whitespace without touching
// diacritics. Task-plan dictionary keys keep their accents, so this is the
// normalization used for the task-type classifier.
func collapseLower(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
