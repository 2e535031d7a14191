package loot

// LevelAttribute names the attribute that records an item's generated level.
const LevelAttribute = "level"

// Item is one generated piece of loot.
type Item struct {
	Name       string               `json:"name"`
	Quality    string               `json:"quality"`
	Type       string               `json:"type"`
	Subtype    string               `json:"subtype"`
	Prefix     Affix                `json:"prefix"`
	Suffix     Affix                `json:"suffix"`
	Attributes map[string]Attribute `json:"attributes"`
	Metadata   Metadata             `json:"metadata"`
}

// Attribute returns the attribute stored under name.
func (i Item) Attribute(name string) (Attribute, bool) {
	attr, ok := i.Attributes[name]
	return attr, ok
}

// HasAttribute reports whether the item carries name.
func (i Item) HasAttribute(name string) bool {
	_, ok := i.Attributes[name]
	return ok
}

// SetAttribute stores attr under name, allocating the map when needed.
func (i *Item) SetAttribute(name string, attr Attribute) {
	if i.Attributes == nil {
		i.Attributes = make(map[string]Attribute)
	}
	i.Attributes[name] = attr
}

// Level returns the generated level and whether the item has one.
func (i Item) Level() (float64, bool) {
	attr, ok := i.Attributes[LevelAttribute]
	return attr.InitialValue, ok
}

// Clone returns a deep copy of i. Metadata values are copied shallowly.
func (i Item) Clone() Item {
	out := i
	out.Prefix = i.Prefix.Clone()
	out.Suffix = i.Suffix.Clone()
	if i.Attributes != nil {
		out.Attributes = make(map[string]Attribute, len(i.Attributes))
		for k, v := range i.Attributes {
			out.Attributes[k] = v
		}
	}
	out.Metadata = i.Metadata.Clone()
	return out
}
