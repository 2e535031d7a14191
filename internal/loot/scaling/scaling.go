// Package scaling grows attribute values with item level.
package scaling

import (
	"math"
	"strings"

	"github.com/louisbranch/lootforge/internal/loot"
)

// RequirementMarker flags attributes whose value tracks the item level
// instead of being scaled.
const RequirementMarker = "_requirement"

// IsRequirement reports whether name is a level requirement attribute.
func IsRequirement(name string) bool {
	return strings.Contains(name, RequirementMarker)
}

// Scale updates attr in place for level.
//
// Unset bounds are seeded from a non-zero initial value, exponential scaling
// starts from 1 when the value is zero, and the result never goes below 0.
// Min and Max are not used as limits.
func Scale(attr *loot.Attribute, level float64, mode loot.ScalingMode, factor float64) {
	if attr.Min == 0 && attr.Max == 0 && attr.InitialValue != 0 {
		attr.Min = attr.InitialValue
		attr.Max = attr.InitialValue
	}

	if attr.InitialValue == 0 && mode == loot.Exponential {
		attr.InitialValue = 1
	}

	switch mode {
	case loot.Exponential:
		attr.InitialValue *= math.Pow(factor, level)
	default:
		attr.InitialValue += level * factor
	}

	if attr.InitialValue < 0 {
		attr.InitialValue = 0
	}
}
