// Package random provides the random sources used by loot generation.
//
// Generation draws every decision from a Source so callers can inject a
// seeded generator and reproduce a batch exactly. The default source is a
// math/rand generator seeded from crypto/rand: statistically sound, not
// cryptographically secure.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
