// Package roster loads the provider reference dataset and exposes exact and
// approximate identity lookups over it. An Index is immutable after
// construction and safe to reuse across sequential reconciliation runs.
package roster

import (
	"math"
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/mosier/radflow/internal/identity"
	"github.com/mosier/radflow/internal/model"
)

// DefaultThreshold is the similarity cutoff (0-100 scale) below which an
// approximate lookup reports no match.
const DefaultThreshold = 85

var bracketed = regexp.MustCompile(`\[[^\]]*\]`)

// Index holds the cleaned roster. Entries keep their load order; approximate
// lookups resolve score ties to the earliest entry, so results are
// deterministic for a given reference file.
type Index struct {
	byKey   map[string]int
	entries []model.RosterEntry
}

// NewIndex builds an index from raw roster rows, applying all load-time
// cleaning in one place: name canonicalized via identity.Key, bracketed
// annotations stripped from the employment type, and blanks replaced with the
// sentinels. Rows with an empty name are skipped; on duplicate names the
// first row wins.
func NewIndex(entries []model.RosterEntry) *Index {
	ix := &Index{byKey: make(map[string]int, len(entries))}

	for _, e := range entries {
		key := identity.Key(e.Name)
		if key == "" {
			continue
		}
		if _, dup := ix.byKey[key]; dup {
			continue
		}

		cleaned := model.RosterEntry{
			Name:           key,
			EmploymentType: cleanEmploymentType(e.EmploymentType),
			Subspecialty:   strings.TrimSpace(e.Subspecialty),
		}
		if cleaned.EmploymentType == "" {
			cleaned.EmploymentType = model.UnknownEmployment
		}
		if cleaned.Subspecialty == "" {
			cleaned.Subspecialty = model.NonAffiliated
		}

		ix.byKey[key] = len(ix.entries)
		ix.entries = append(ix.entries, cleaned)
	}

	return ix
}

// cleanEmploymentType strips bracketed annotations such as "Partner [2024]"
// and collapses the whitespace left behind.
func cleanEmploymentType(s string) string {
	s = bracketed.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// Len returns the number of indexed entries.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.entries)
}

// Exact looks up a canonical key.
func (ix *Index) Exact(key string) (model.RosterEntry, bool) {
	if ix == nil || key == "" {
		return model.RosterEntry{}, false
	}
	i, ok := ix.byKey[key]
	if !ok {
		return model.RosterEntry{}, false
	}
	return ix.entries[i], true
}

// Approximate returns the best-scoring entry at or above threshold, along
// with its similarity score. Ties on the top score go to the entry earliest
// in roster load order. A threshold outside 1-100 falls back to
// DefaultThreshold.
func (ix *Index) Approximate(key string, threshold int) (model.RosterEntry, int, bool) {
	if ix == nil || key == "" {
		return model.RosterEntry{}, 0, false
	}
	if threshold <= 0 || threshold > 100 {
		threshold = DefaultThreshold
	}

	best := -1
	bestScore := 0
	for i, e := range ix.entries {
		score := Similarity(key, e.Name)
		if score > bestScore {
			best = i
			bestScore = score
		}
	}

	if best < 0 || bestScore < threshold {
		return model.RosterEntry{}, 0, false
	}
	return ix.entries[best], bestScore, true
}

// Similarity scores two keys on a 0-100 scale using normalized edit distance:
// 100 means identical, 0 means nothing in common.
func Similarity(a, b string) int {
	if a == b {
		return 100
	}

	longest := len([]rune(a))
	if n := len([]rune(b)); n > longest {
		longest = n
	}
	if longest == 0 {
		return 100
	}

	dist := levenshtein.ComputeDistance(a, b)
	return int(math.Round(100 * (1 - float64(dist)/float64(longest))))
}
