package loot

// Attribute is a named numeric stat with scaling rules and advisory bounds.
//
// Min and Max are advisory: generation seeds them on first use but never
// clamps against them, apart from the zero floor applied while scaling.
type Attribute struct {
	Name          string  `json:"name" yaml:"name" toml:"name"`
	InitialValue  float64 `json:"initial_value" yaml:"initial_value" toml:"initial_value"`
	Min           float64 `json:"min" yaml:"min" toml:"min"`
	Max           float64 `json:"max" yaml:"max" toml:"max"`
	Required      bool    `json:"required" yaml:"required" toml:"required"`
	ScalingFactor float64 `json:"scaling_factor" yaml:"scaling_factor" toml:"scaling_factor"`
	Chance        float64 `json:"chance" yaml:"chance" toml:"chance"`
}

// NewAttribute builds an attribute with a scaling factor of 1 and no chance.
func NewAttribute(name string, initialValue, min, max float64, required bool) Attribute {
	return Attribute{
		Name:          name,
		InitialValue:  initialValue,
		Min:           min,
		Max:           max,
		Required:      required,
		ScalingFactor: 1,
	}
}

// SetInitialValue assigns v, seeding both bounds with v when they are still
// zero.
func (a *Attribute) SetInitialValue(v float64) {
	if a.Min == 0 && a.Max == 0 {
		a.Min = v
		a.Max = v
	}
	a.InitialValue = v
}
