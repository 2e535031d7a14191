package loot

// Scope keys configuration by item type and subtype. An empty field is a
// wildcard: Scope{} applies to every item, Scope{Type: "weapon"} to every
// weapon regardless of subtype.
type Scope struct {
	Type    string
	Subtype string
}

// Global is the scope that applies to every item.
var Global = Scope{}

// IsGlobal reports whether both fields are wildcards.
func (s Scope) IsGlobal() bool {
	return s.Type == "" && s.Subtype == ""
}

func (s Scope) String() string {
	t, st := s.Type, s.Subtype
	if t == "" {
		t = "*"
	}
	if st == "" {
		st = "*"
	}
	return t + "/" + st
}

// ScopesFor returns the four scopes consulted for an item of (itemType,
// subtype), in precedence order: global, type only, subtype only, type and
// subtype. Later scopes overwrite earlier ones for same-named attributes.
func ScopesFor(itemType, subtype string) [4]Scope {
	return [4]Scope{
		{},
		{Type: itemType},
		{Subtype: subtype},
		{Type: itemType, Subtype: subtype},
	}
}
