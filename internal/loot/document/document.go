// Package document decodes declarative catalog documents and applies them
// to a catalog.
//
// The same shape is accepted as TOML, JSON, YAML or a Lua script returning a
// table:
//
//	quality_data    name -> weight (required)
//	item_types      [{item_type, weight, subtypes, metadata}]
//	item_attributes [{item_type, subtype, attributes}]
//	item_list       [{item_type, subtype, names, item_metadata}]
//	item_affixes    [{item_type, subtype, prefixes, suffixes, metadata}]
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/louisbranch/lootforge/internal/loot"
	"github.com/louisbranch/lootforge/internal/loot/catalog"
	apperrors "github.com/louisbranch/lootforge/internal/platform/errors"
	"gopkg.in/yaml.v3"
)

// Format names a document encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatLua  Format = "lua"
)

// ParseFormat normalizes a format name. "yml" is accepted for YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "toml":
		return FormatTOML, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "lua":
		return FormatLua, nil
	default:
		return "", apperrors.WithMetadata(apperrors.CodeUnsupportedFormat,
			fmt.Sprintf("unsupported document format %q", name),
			map[string]string{"format": name})
	}
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Document is the decoded configuration.
type Document struct {
	QualityData    map[string]int  `json:"quality_data" yaml:"quality_data" toml:"quality_data"`
	ItemTypes      []loot.ItemType `json:"item_types" yaml:"item_types" toml:"item_types"`
	ItemAttributes []AttributeSet  `json:"item_attributes" yaml:"item_attributes" toml:"item_attributes"`
	ItemList       []NameList      `json:"item_list" yaml:"item_list" toml:"item_list"`
	ItemAffixes    []AffixSet      `json:"item_affixes" yaml:"item_affixes" toml:"item_affixes"`
}

// AttributeSet lists the attributes of one scope.
type AttributeSet struct {
	ItemType   string           `json:"item_type" yaml:"item_type" toml:"item_type"`
	Subtype    string           `json:"subtype" yaml:"subtype" toml:"subtype"`
	Attributes []loot.Attribute `json:"attributes" yaml:"attributes" toml:"attributes"`
}

// NameList lists candidate item names of one scope with optional per-name
// metadata.
type NameList struct {
	ItemType     string                   `json:"item_type" yaml:"item_type" toml:"item_type"`
	Subtype      string                   `json:"subtype" yaml:"subtype" toml:"subtype"`
	Names        []string                 `json:"names" yaml:"names" toml:"names"`
	ItemMetadata map[string]loot.Metadata `json:"item_metadata" yaml:"item_metadata" toml:"item_metadata"`
}

// AffixSet lists the prefixes and suffixes of one scope. Metadata becomes
// the subtype metadata of that scope.
type AffixSet struct {
	ItemType string        `json:"item_type" yaml:"item_type" toml:"item_type"`
	Subtype  string        `json:"subtype" yaml:"subtype" toml:"subtype"`
	Prefixes []loot.Affix  `json:"prefixes" yaml:"prefixes" toml:"prefixes"`
	Suffixes []loot.Affix  `json:"suffixes" yaml:"suffixes" toml:"suffixes"`
	Metadata loot.Metadata `json:"metadata" yaml:"metadata" toml:"metadata"`
}

func parseError(format Format, err error) error {
	return apperrors.Wrap(apperrors.CodeParse, fmt.Sprintf("decode %s document", format), err)
}

func missingQualities(format Format) error {
	return apperrors.WithMetadata(apperrors.CodeParse,
		fmt.Sprintf("decode %s document: missing quality_data", format),
		map[string]string{"field": "quality_data"})
}

// DecodeTOML decodes a TOML document.
func DecodeTOML(data []byte) (Document, error) {
	var doc Document
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return Document{}, parseError(FormatTOML, err)
	}
	if !md.IsDefined("quality_data") {
		return Document{}, missingQualities(FormatTOML)
	}
	if doc.QualityData == nil {
		doc.QualityData = map[string]int{}
	}
	return doc, nil
}

// DecodeJSON decodes a JSON document. Unknown fields are ignored.
func DecodeJSON(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, parseError(FormatJSON, err)
	}
	if doc.QualityData == nil {
		return Document{}, missingQualities(FormatJSON)
	}
	return doc, nil
}

// DecodeYAML decodes a YAML document.
func DecodeYAML(data []byte) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return Document{}, parseError(FormatYAML, err)
	}
	if doc.QualityData == nil {
		return Document{}, missingQualities(FormatYAML)
	}
	return doc, nil
}

// Decode dispatches on format.
func Decode(format Format, data []byte) (Document, error) {
	switch format {
	case FormatTOML:
		return DecodeTOML(data)
	case FormatJSON:
		return DecodeJSON(data)
	case FormatYAML:
		return DecodeYAML(data)
	case FormatLua:
		return DecodeLua(data)
	default:
		_, err := ParseFormat(string(format))
		return Document{}, err
	}
}

// DecodeFile reads path and decodes it according to its extension.
func DecodeFile(path string) (Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Document{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read document %s: %w", path, err)
	}
	return Decode(format, data)
}

// Apply loads doc into cat. Qualities and item types are replaced wholesale;
// attribute, name and affix entries replace only the scopes they name.
func Apply(cat *catalog.Catalog, doc Document) {
	cat.ReplaceQualities(doc.QualityData)
	cat.ReplaceItemTypes(doc.ItemTypes)

	for _, set := range doc.ItemAttributes {
		cat.ReplaceAttributes(loot.Scope{Type: set.ItemType, Subtype: set.Subtype}, set.Attributes)
	}

	for _, list := range doc.ItemList {
		cat.SetNames(list.ItemType, list.Subtype, list.Names)
		for name, md := range list.ItemMetadata {
			for key, value := range md {
				cat.SetItemNameMetadata(list.ItemType, list.Subtype, name, key, value)
			}
		}
	}

	for _, set := range doc.ItemAffixes {
		scope := loot.Scope{Type: set.ItemType, Subtype: set.Subtype}
		cat.ReplaceAffixes(scope, set.Prefixes, set.Suffixes)
		if len(set.Metadata) > 0 {
			cat.ReplaceSubtypeMetadata(scope, set.Metadata)
		}
	}
}

// Import decodes data and applies it to cat. A decode failure leaves cat
// untouched.
func Import(cat *catalog.Catalog, format Format, data []byte) error {
	doc, err := Decode(format, data)
	if err != nil {
		return err
	}
	Apply(cat, doc)
	return nil
}
