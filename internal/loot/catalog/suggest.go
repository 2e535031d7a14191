package catalog

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/samber/lo"
)

// SuggestQuality returns the configured quality closest to name.
func (c *Catalog) SuggestQuality(name string) (string, bool) {
	return closest(name, lo.Keys(c.qualities))
}

// SuggestItemType returns the configured item type closest to name.
func (c *Catalog) SuggestItemType(name string) (string, bool) {
	return closest(name, c.ItemTypeNames())
}

// SuggestSubtype returns the subtype of itemType closest to name.
func (c *Catalog) SuggestSubtype(itemType, name string) (string, bool) {
	return closest(name, c.Subtypes(itemType))
}

// closest picks the candidate with the smallest edit distance from name,
// ignoring case. Ties go to the lexicographically smaller candidate and
// distances past levenshteinLimit are rejected.
func closest(name string, candidates []string) (string, bool) {
	if name == "" || len(candidates) == 0 {
		return "", false
	}
	sort.Strings(candidates)
	needle := strings.ToLower(name)
	best, bestDist := "", -1
	for _, cand := range candidates {
		dist := levenshtein.ComputeDistance(needle, strings.ToLower(cand))
		if dist > levenshteinLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best, bestDist >= 0
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
