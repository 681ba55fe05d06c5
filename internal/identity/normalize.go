// Package identity canonicalizes free-text provider names into comparison
// keys. Normalization is pure and total: it never fails, and two names that
// differ only in casing or whitespace map to the same key.
package identity

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Key returns the canonical comparison key for a free-text name: surrounding
// whitespace trimmed, internal runs collapsed to single spaces, title-cased.
// Empty or whitespace-only input yields the empty key.
func Key(raw string) string {
	words := strings.Fields(raw)
	if len(words) == 0 {
		return ""
	}

	caser := cases.Title(language.English)
	return caser.String(strings.ToLower(strings.Join(words, " ")))
}

// DisplayName renders a key as "Last, First" for presentation. This is a
// display concern only: the comparison key never depends on word order.
// Single-token keys and keys already containing a comma pass through.
func DisplayName(key string) string {
	if strings.Contains(key, ",") {
		return key
	}

	words := strings.Fields(key)
	if len(words) < 2 {
		return key
	}

	last := words[len(words)-1]
	rest := strings.Join(words[:len(words)-1], " ")
	return last + ", " + rest
}
