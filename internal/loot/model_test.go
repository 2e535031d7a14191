package loot

import (
	"reflect"
	"testing"
	"time"
)

func TestSetInitialValueSeedsZeroBounds(t *testing.T) {
	attr := NewAttribute("level_requirement", 0, 0, 0, false)
	attr.SetInitialValue(12)
	if attr.Min != 12 || attr.Max != 12 || attr.InitialValue != 12 {
		t.Fatalf("expected bounds seeded to 12, got %+v", attr)
	}

	attr = NewAttribute("damage", 1, 1, 5, true)
	attr.SetInitialValue(9)
	if attr.Min != 1 || attr.Max != 5 {
		t.Fatalf("expected configured bounds to stay, got %+v", attr)
	}
}

func TestNewAttributeDefaults(t *testing.T) {
	attr := NewAttribute("damage", 10, 1, 20, true)
	if attr.ScalingFactor != 1 {
		t.Fatalf("expected scaling factor 1, got %v", attr.ScalingFactor)
	}
	if attr.Chance != 0 {
		t.Fatalf("expected chance 0, got %v", attr.Chance)
	}
}

func TestAffixSetAttributeReplacesByName(t *testing.T) {
	var affix Affix
	if !affix.IsEmpty() {
		t.Fatal("expected zero affix to be empty")
	}
	affix.Name = "Flaming"
	affix.SetAttribute(NewAttribute("damage", 3, 0, 0, false))
	affix.SetAttribute(NewAttribute("burn", 1, 0, 0, false))
	affix.SetAttribute(NewAttribute("damage", 5, 0, 0, false))

	if len(affix.Attributes) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(affix.Attributes))
	}
	if affix.Attributes[0].Name != "damage" || affix.Attributes[0].InitialValue != 5 {
		t.Fatalf("expected damage replaced in place, got %+v", affix.Attributes[0])
	}
	if _, ok := affix.Attribute("burn"); !ok {
		t.Fatal("expected burn attribute")
	}
}

func TestItemCloneIsDeep(t *testing.T) {
	item := Item{
		Name:     "longsword",
		Prefix:   Affix{Name: "sharp", Attributes: []Attribute{NewAttribute("damage", 5, 0, 0, false)}},
		Metadata: Metadata{"slot": "hand"},
	}
	item.SetAttribute("damage", NewAttribute("damage", 10, 1, 20, true))

	clone := item.Clone()
	clone.Prefix.Attributes[0].InitialValue = 99
	clone.Attributes["damage"] = NewAttribute("damage", 0, 0, 0, true)
	clone.Metadata["slot"] = "back"

	if item.Prefix.Attributes[0].InitialValue != 5 {
		t.Fatal("expected prefix attributes to be copied")
	}
	if item.Attributes["damage"].InitialValue != 10 {
		t.Fatal("expected attribute map to be copied")
	}
	if item.Metadata["slot"] != "hand" {
		t.Fatal("expected metadata to be copied")
	}
}

func TestScopesForOrder(t *testing.T) {
	got := ScopesFor("weapon", "sword")
	want := [4]Scope{
		{},
		{Type: "weapon"},
		{Subtype: "sword"},
		{Type: "weapon", Subtype: "sword"},
	}
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if !got[0].IsGlobal() || got[3].String() != "weapon/sword" || got[2].String() != "*/sword" {
		t.Fatalf("unexpected scope rendering %v", got)
	}
}

func TestParseScalingMode(t *testing.T) {
	for input, want := range map[string]ScalingMode{"": Linear, "linear": Linear, "exponential": Exponential} {
		got, err := ParseScalingMode(input)
		if err != nil {
			t.Fatalf("%q: %v", input, err)
		}
		if got != want {
			t.Fatalf("%q: expected %s, got %s", input, want, got)
		}
	}
	if _, err := ParseScalingMode("quadratic"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestItemTypeSubtypeNamesSorted(t *testing.T) {
	it := NewItemType("armor", 1)
	it.Subtypes["legs"] = 1
	it.Subtypes["chest"] = 2
	names := it.SubtypeNames()
	if len(names) != 2 || names[0] != "chest" || names[1] != "legs" {
		t.Fatalf("unexpected subtype names %v", names)
	}
	if !it.HasSubtype("legs") || it.HasSubtype("head") {
		t.Fatal("unexpected HasSubtype result")
	}
}

func TestNormalizeValue(t *testing.T) {
	when := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"string", "hand", "hand"},
		{"int", 2, float64(2)},
		{"int64", int64(3), float64(3)},
		{"float", 3.5, 3.5},
		{"bool", true, true},
		{"nil", nil, nil},
		{"time", when, "2024-03-01T12:00:00Z"},
		{"list", []string{"a", "b"}, []any{"a", "b"}},
		{"map", map[string]int64{"x": 1}, map[string]any{"x": float64(1)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeValue(tc.in); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %#v, got %#v", tc.want, got)
			}
		})
	}
}

func TestMetadataNormalized(t *testing.T) {
	var empty Metadata
	if empty.Normalized() != nil {
		t.Fatal("expected nil metadata to stay nil")
	}
	md := Metadata{"tier": int64(3)}
	got := md.Normalized()
	if got["tier"] != float64(3) {
		t.Fatalf("expected float64 tier, got %#v", got["tier"])
	}
	if md["tier"] != int64(3) {
		t.Fatal("expected source metadata untouched")
	}
}
