package loot

import "encoding/json"

// Metadata holds opaque tags attached to subtypes, item names and items.
// Values are kept in their JSON form: strings, float64 numbers, booleans,
// nil, []any and map[string]any.
type Metadata map[string]any

// Clone returns a shallow copy of m; nil stays nil.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Merge copies every entry of src into m, overwriting existing keys.
func (m Metadata) Merge(src Metadata) {
	for k, v := range src {
		m[k] = v
	}
}

// Normalized returns a copy of m with every value converted by
// NormalizeValue; nil stays nil.
func (m Metadata) Normalized() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = NormalizeValue(v)
	}
	return out
}

// NormalizeValue converts v to the value encoding/json would decode from
// its JSON encoding, so tags read back from serialized loot compare equal
// to the ones generated. Integers become float64, timestamps become
// RFC 3339 strings and nested maps become map[string]any. Values JSON
// cannot encode are returned unchanged.
func NormalizeValue(v any) any {
	switch v.(type) {
	case nil, string, bool, float64:
		return v
	}
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}
