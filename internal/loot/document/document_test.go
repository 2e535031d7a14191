package document

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/louisbranch/lootforge/internal/loot"
	"github.com/louisbranch/lootforge/internal/loot/catalog"
	apperrors "github.com/louisbranch/lootforge/internal/platform/errors"
)

func TestDecodeFormatsAgree(t *testing.T) {
	want, err := DecodeFile(filepath.Join("testdata", "catalog.toml"))
	if err != nil {
		t.Fatalf("decode toml: %v", err)
	}
	for _, name := range []string{"catalog.json", "catalog.yaml", "catalog.lua"} {
		t.Run(name, func(t *testing.T) {
			got, err := DecodeFile(filepath.Join("testdata", name))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("document mismatch\n got: %+v\nwant: %+v", got, want)
			}
		})
	}
}

func TestDecodeTOMLFields(t *testing.T) {
	doc, err := DecodeFile(filepath.Join("testdata", "catalog.toml"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.QualityData["common"] != 100 || doc.QualityData["rare"] != 10 {
		t.Fatalf("unexpected qualities %v", doc.QualityData)
	}
	if len(doc.ItemTypes) != 2 || doc.ItemTypes[0].Subtypes["sword"] != 2 {
		t.Fatalf("unexpected item types %+v", doc.ItemTypes)
	}
	damage := doc.ItemAttributes[0].Attributes[0]
	want := loot.Attribute{Name: "damage", InitialValue: 10, Min: 5, Max: 20, Required: true, ScalingFactor: 1}
	if damage != want {
		t.Fatalf("expected %+v, got %+v", want, damage)
	}
	luck := doc.ItemAttributes[1].Attributes[0]
	if luck.ScalingFactor != 0 || luck.Chance != 0.25 {
		t.Fatalf("expected defaults of zero with chance 0.25, got %+v", luck)
	}
}

func TestDecodeMissingQualityData(t *testing.T) {
	tests := []struct {
		format Format
		data   string
	}{
		{FormatTOML, "[[item_types]]\nitem_type = \"weapon\"\nweight = 1\nsubtypes = {}\n"},
		{FormatJSON, `{"item_types": []}`},
		{FormatYAML, "item_types: []\n"},
		{FormatLua, `return { item_types = { { item_type = "weapon", weight = 1 } } }`},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			_, err := Decode(tt.format, []byte(tt.data))
			if !apperrors.HasCode(err, apperrors.CodeParse) {
				t.Fatalf("expected parse error, got %v", err)
			}
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		format Format
		data   string
	}{
		{FormatTOML, "quality_data = ["},
		{FormatJSON, `{"quality_data": `},
		{FormatYAML, "quality_data: [1, 2"},
		{FormatLua, "return {"},
		{FormatLua, "return 42"},
		{FormatLua, `error("boom")`},
	}
	for _, tt := range tests {
		_, err := Decode(tt.format, []byte(tt.data))
		if !apperrors.HasCode(err, apperrors.CodeParse) {
			t.Fatalf("%s %q: expected parse error, got %v", tt.format, tt.data, err)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for input, want := range map[string]Format{"TOML": FormatTOML, "yml": FormatYAML, " json ": FormatJSON, "lua": FormatLua} {
		got, err := ParseFormat(input)
		if err != nil || got != want {
			t.Fatalf("%q: expected %s, got %s (%v)", input, want, got, err)
		}
	}
	if _, err := ParseFormat("xml"); !apperrors.HasCode(err, apperrors.CodeUnsupportedFormat) {
		t.Fatalf("expected unsupported format, got %v", err)
	}
	if _, err := Decode(Format("ini"), nil); !apperrors.HasCode(err, apperrors.CodeUnsupportedFormat) {
		t.Fatalf("expected unsupported format, got %v", err)
	}
}

func TestDecodeFileReadError(t *testing.T) {
	_, err := DecodeFile(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatal("expected read error")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist cause, got %v", err)
	}
}

func TestApply(t *testing.T) {
	doc, err := DecodeFile(filepath.Join("testdata", "catalog.yaml"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	c := catalog.New()
	c.SetQuality("junk", 1)
	c.SetItemType("potion", 1)
	c.SetNames("potion", "", []string{"Elixir"})

	Apply(c, doc)

	if c.HasQuality("junk") || !c.HasQuality("rare") {
		t.Fatalf("expected qualities replaced, got %v", c.Qualities())
	}
	if c.HasItemType("potion") || !c.HasItemSubtype("weapon", "axe") {
		t.Fatalf("expected item types replaced, got %v", c.ItemTypeNames())
	}
	if names := c.Names("potion", ""); len(names) != 1 {
		t.Fatalf("expected untouched scopes to be kept, got %v", names)
	}
	if !c.HasAttribute("weapon", "", "damage") {
		t.Fatal("expected damage attribute")
	}
	if v, ok := c.ItemNameMetadata("weapon", "sword", "Excalibur", "rarity"); !ok || v != "unique" {
		t.Fatalf("unexpected name metadata %v", v)
	}
	if v, ok := c.SubtypeMetadata("weapon", "sword", "slot"); !ok || v != "hand" {
		t.Fatalf("unexpected subtype metadata %v", v)
	}
	prefixes := c.Prefixes(loot.Scope{Type: "weapon", Subtype: "sword"})
	if len(prefixes) != 1 || prefixes[0].Name != "Flaming" {
		t.Fatalf("unexpected prefixes %+v", prefixes)
	}
}

func TestApplyReplacesScopedAttributes(t *testing.T) {
	c := catalog.New()
	c.SetAttribute("weapon", "", loot.NewAttribute("old", 1, 0, 0, true))
	doc := Document{
		QualityData: map[string]int{"common": 1},
		ItemAttributes: []AttributeSet{{
			ItemType:   "weapon",
			Attributes: []loot.Attribute{loot.NewAttribute("new", 1, 0, 0, true)},
		}},
	}
	Apply(c, doc)
	attrs := c.Attributes(loot.Scope{Type: "weapon"})
	if len(attrs) != 1 || attrs[0].Name != "new" {
		t.Fatalf("expected scope replaced, got %+v", attrs)
	}
}

func TestImportLeavesCatalogOnFailure(t *testing.T) {
	c := catalog.New()
	c.SetQuality("common", 5)
	c.SetItemSubtype("weapon", "sword", 1)

	err := Import(c, FormatTOML, []byte("quality_data = { rare = "))
	if err == nil {
		t.Fatal("expected import error")
	}
	if got := c.Qualities(); len(got) != 1 || got["common"] != 5 {
		t.Fatalf("expected qualities untouched, got %v", got)
	}
	if !c.HasItemSubtype("weapon", "sword") {
		t.Fatal("expected item types untouched")
	}
}

func TestImport(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "catalog.json"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	c := catalog.New()
	if err := Import(c, FormatJSON, data); err != nil {
		t.Fatalf("import: %v", err)
	}
	if got := c.ItemTypeNames(); !reflect.DeepEqual(got, []string{"weapon", "armor"}) {
		t.Fatalf("unexpected types %v", got)
	}
}
