package loot

// AffixKind distinguishes prefixes from suffixes.
type AffixKind int

const (
	Prefix AffixKind = iota
	Suffix
)

func (k AffixKind) String() string {
	if k == Suffix {
		return "suffix"
	}
	return "prefix"
}

// Affix is an optional named modifier bundling attribute contributions.
// The zero Affix means no affix was applied.
type Affix struct {
	Name       string      `json:"name" yaml:"name" toml:"name"`
	Attributes []Attribute `json:"attributes" yaml:"attributes" toml:"attributes"`
}

// IsEmpty reports whether a is the "no affix" sentinel.
func (a Affix) IsEmpty() bool {
	return a.Name == "" && len(a.Attributes) == 0
}

// SetAttribute replaces the attribute with the same name or appends attr.
func (a *Affix) SetAttribute(attr Attribute) {
	for i := range a.Attributes {
		if a.Attributes[i].Name == attr.Name {
			a.Attributes[i] = attr
			return
		}
	}
	a.Attributes = append(a.Attributes, attr)
}

// Attribute returns the attribute named name.
func (a Affix) Attribute(name string) (Attribute, bool) {
	for _, attr := range a.Attributes {
		if attr.Name == name {
			return attr, true
		}
	}
	return Attribute{}, false
}

// Clone returns a deep copy of a.
func (a Affix) Clone() Affix {
	out := Affix{Name: a.Name}
	if a.Attributes != nil {
		out.Attributes = append([]Attribute(nil), a.Attributes...)
	}
	return out
}

// CloneAffixes deep-copies a list of affixes.
func CloneAffixes(affixes []Affix) []Affix {
	if affixes == nil {
		return nil
	}
	out := make([]Affix, len(affixes))
	for i, affix := range affixes {
		out[i] = affix.Clone()
	}
	return out
}
