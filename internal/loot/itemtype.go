package loot

import "sort"

// ItemType is a weighted category with weighted subtypes. Subtype weights are
// relative only within their type.
type ItemType struct {
	Name     string         `json:"item_type" yaml:"item_type" toml:"item_type"`
	Subtypes map[string]int `json:"subtypes" yaml:"subtypes" toml:"subtypes"`
	Weight   int            `json:"weight" yaml:"weight" toml:"weight"`
	Metadata Metadata       `json:"metadata,omitempty" yaml:"metadata,omitempty" toml:"metadata,omitempty"`
}

// NewItemType returns a type with no subtypes.
func NewItemType(name string, weight int) ItemType {
	return ItemType{Name: name, Weight: weight, Subtypes: map[string]int{}}
}

// HasSubtype reports whether subtype is configured on t.
func (t ItemType) HasSubtype(subtype string) bool {
	_, ok := t.Subtypes[subtype]
	return ok
}

// SubtypeNames returns the configured subtype names in sorted order.
func (t ItemType) SubtypeNames() []string {
	names := make([]string, 0, len(t.Subtypes))
	for name := range t.Subtypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy of t.
func (t ItemType) Clone() ItemType {
	out := ItemType{Name: t.Name, Weight: t.Weight, Metadata: t.Metadata.Clone()}
	out.Subtypes = make(map[string]int, len(t.Subtypes))
	for k, v := range t.Subtypes {
		out.Subtypes[k] = v
	}
	return out
}
