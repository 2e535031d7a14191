package random

import (
	"math/rand"
	"time"
)

// Source is the random stream consumed by selection and generation.
// Implementations need not be safe for concurrent use.
type Source interface {
	// Intn returns a uniform integer in [0, n). n must be positive.
	Intn(n int) int
	// Float64 returns a uniform float in [0.0, 1.0).
	Float64() float64
}

// NewSeeded returns a deterministic source for seed.
func NewSeeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// New returns a source seeded from crypto/rand, falling back to the clock
// when the system entropy pool cannot be read.
func New() *rand.Rand {
	seed, err := NewSeed()
	if err != nil {
		seed = time.Now().UnixNano()
	}
	return NewSeeded(seed)
}

// IntRange returns a uniform integer in the closed range [lo, hi]. The
// bounds are swapped when hi < lo.
func IntRange(src Source, lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + src.Intn(hi-lo+1)
}

// Chance reports whether a draw in [0,1) falls strictly below p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}
