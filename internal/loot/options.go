package loot

import "fmt"

// ScalingMode selects how attribute values grow with level.
type ScalingMode int

const (
	// Linear adds level*factor to the value.
	Linear ScalingMode = iota
	// Exponential multiplies the value by factor^level.
	Exponential
)

func (m ScalingMode) String() string {
	switch m {
	case Linear:
		return "linear"
	case Exponential:
		return "exponential"
	default:
		return fmt.Sprintf("ScalingMode(%d)", int(m))
	}
}

// ParseScalingMode accepts "linear" and "exponential".
func ParseScalingMode(s string) (ScalingMode, error) {
	switch s {
	case "linear", "":
		return Linear, nil
	case "exponential":
		return Exponential, nil
	default:
		return Linear, fmt.Errorf("unknown scaling mode %q", s)
	}
}

// Options control one generation batch.
type Options struct {
	Count         int
	BaseLevel     float64
	LevelVariance float64
	// AffixChance is the probability (0-1) used for prefix, suffix and
	// optional attribute rolls.
	AffixChance   float64
	Scaling       ScalingMode
	ScalingFactor float64
}

// DefaultOptions returns one linear item around level 1.
func DefaultOptions() Options {
	return Options{
		Count:         1,
		BaseLevel:     1,
		LevelVariance: 1,
		AffixChance:   0.25,
		Scaling:       Linear,
		ScalingFactor: 1,
	}
}

// Overrides force quality, type or subtype. Empty fields select randomly.
type Overrides struct {
	Quality string
	Type    string
	Subtype string
}
