// Package selector picks keys from weight tables.
package selector

import (
	"fmt"
	"slices"

	apperrors "github.com/louisbranch/lootforge/internal/platform/errors"
	"github.com/louisbranch/lootforge/internal/random"
	"github.com/samber/lo"
)

// ErrNoCandidates is returned when the weight table is empty.
var ErrNoCandidates = apperrors.New(apperrors.CodeInvalidData, "no items to select from")

// Pick returns one key of weights chosen with probability proportional to
// its weight.
//
// # Determinism
//
// Candidates are walked in lexicographic order, so a given draw maps to the
// same key no matter how the map iterates. The ordering decides which of
// several equal-weight keys a draw lands on; it does not change the
// probabilities.
//
// Constraints and errors
//
//   - An empty table returns ErrNoCandidates.
//   - A negative weight or an all-zero table returns a CodeInvalidData error.
func Pick(weights map[string]int, rng random.Source) (string, error) {
	if len(weights) == 0 {
		return "", ErrNoCandidates
	}
	for name, weight := range weights {
		if weight < 0 {
			return "", apperrors.WithMetadata(apperrors.CodeInvalidData,
				fmt.Sprintf("negative weight %d for %q", weight, name),
				map[string]string{"candidate": name})
		}
	}
	total := lo.Sum(lo.Values(weights))
	if total <= 0 {
		return "", apperrors.New(apperrors.CodeInvalidData, "total weight must be positive")
	}

	roll := rng.Intn(total)

	names := lo.Keys(weights)
	slices.Sort(names)
	for _, name := range names {
		roll -= weights[name]
		if roll < 0 {
			return name, nil
		}
	}

	// Unreachable: roll < total and the weights sum to total.
	panic(fmt.Sprintf("selector: roll fell through %d candidates", len(names)))
}

// PickIndex returns a uniform index into a collection of size n, or -1 when
// the collection is empty.
func PickIndex(n int, rng random.Source) int {
	if n <= 0 {
		return -1
	}
	return rng.Intn(n)
}
