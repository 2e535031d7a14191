// Package export writes generated loot as JSON documents or spreadsheets.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/louisbranch/lootforge/internal/loot"
	apperrors "github.com/louisbranch/lootforge/internal/platform/errors"
)

// number encodes non-finite values as null. Scaling has no ceiling, so an
// exponential batch can overflow to +Inf; null reads back as +Inf.
type number float64

func (n number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

func (n *number) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*n = number(math.Inf(1))
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = number(f)
	return nil
}

type attributeJSON struct {
	Name          string `json:"name"`
	InitialValue  number `json:"initial_value"`
	Min           number `json:"min"`
	Max           number `json:"max"`
	Required      bool   `json:"required"`
	ScalingFactor number `json:"scaling_factor"`
	Chance        number `json:"chance"`
}

// affixJSON always carries an attributes array, empty for the "no affix"
// value.
type affixJSON struct {
	Name       string          `json:"name"`
	Attributes []attributeJSON `json:"attributes"`
}

type itemJSON struct {
	Name       string                   `json:"name"`
	Quality    string                   `json:"quality"`
	Type       string                   `json:"type"`
	Subtype    string                   `json:"subtype"`
	Prefix     affixJSON                `json:"prefix"`
	Suffix     affixJSON                `json:"suffix"`
	Attributes map[string]attributeJSON `json:"attributes"`
	Metadata   loot.Metadata            `json:"metadata"`
}

func toAttributeJSON(a loot.Attribute) attributeJSON {
	return attributeJSON{
		Name:          a.Name,
		InitialValue:  number(a.InitialValue),
		Min:           number(a.Min),
		Max:           number(a.Max),
		Required:      a.Required,
		ScalingFactor: number(a.ScalingFactor),
		Chance:        number(a.Chance),
	}
}

func (a attributeJSON) attribute() loot.Attribute {
	return loot.Attribute{
		Name:          a.Name,
		InitialValue:  float64(a.InitialValue),
		Min:           float64(a.Min),
		Max:           float64(a.Max),
		Required:      a.Required,
		ScalingFactor: float64(a.ScalingFactor),
		Chance:        float64(a.Chance),
	}
}

func toAffixJSON(a loot.Affix) affixJSON {
	out := affixJSON{Name: a.Name, Attributes: make([]attributeJSON, 0, len(a.Attributes))}
	for _, attr := range a.Attributes {
		out.Attributes = append(out.Attributes, toAttributeJSON(attr))
	}
	return out
}

func (a affixJSON) affix() loot.Affix {
	out := loot.Affix{Name: a.Name}
	for _, attr := range a.Attributes {
		out.Attributes = append(out.Attributes, attr.attribute())
	}
	return out
}

func toItemJSON(item loot.Item) itemJSON {
	out := itemJSON{
		Name:     item.Name,
		Quality:  item.Quality,
		Type:     item.Type,
		Subtype:  item.Subtype,
		Prefix:   toAffixJSON(item.Prefix),
		Suffix:   toAffixJSON(item.Suffix),
		Metadata: item.Metadata,
	}
	if item.Attributes != nil {
		out.Attributes = make(map[string]attributeJSON, len(item.Attributes))
		for name, attr := range item.Attributes {
			out.Attributes[name] = toAttributeJSON(attr)
		}
	}
	return out
}

func (i itemJSON) item() loot.Item {
	out := loot.Item{
		Name:     i.Name,
		Quality:  i.Quality,
		Type:     i.Type,
		Subtype:  i.Subtype,
		Prefix:   i.Prefix.affix(),
		Suffix:   i.Suffix.affix(),
		Metadata: i.Metadata,
	}
	if i.Attributes != nil {
		out.Attributes = make(map[string]loot.Attribute, len(i.Attributes))
		for name, attr := range i.Attributes {
			out.Attributes[name] = attr.attribute()
		}
	}
	return out
}

func encodeItems(items []loot.Item) []itemJSON {
	out := make([]itemJSON, 0, len(items))
	for _, item := range items {
		out = append(out, toItemJSON(item))
	}
	return out
}

func decodeItems(in []itemJSON) []loot.Item {
	if in == nil {
		return nil
	}
	out := make([]loot.Item, 0, len(in))
	for _, item := range in {
		out = append(out, item.item())
	}
	return out
}

// MarshalJSON encodes a batch as a compact JSON array.
func MarshalJSON(items []loot.Item) ([]byte, error) {
	data, err := json.Marshal(encodeItems(items))
	if err != nil {
		return nil, fmt.Errorf("marshal items: %w", err)
	}
	return data, nil
}

// UnmarshalJSON decodes a batch written by MarshalJSON or WriteJSON.
func UnmarshalJSON(data []byte) ([]loot.Item, error) {
	var items []itemJSON
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeParse, "decode items", err)
	}
	return decodeItems(items), nil
}

// WriteJSON writes an indented JSON array to w.
func WriteJSON(w io.Writer, items []loot.Item) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(encodeItems(items)); err != nil {
		return fmt.Errorf("write items: %w", err)
	}
	return nil
}

// ReadJSON reads a JSON array of items from r.
func ReadJSON(r io.Reader) ([]loot.Item, error) {
	var items []itemJSON
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeParse, "decode items", err)
	}
	return decodeItems(items), nil
}
