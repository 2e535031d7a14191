package scaling

import (
	"math"
	"testing"

	"github.com/louisbranch/lootforge/internal/loot"
)

func TestScaleBootstrapsBounds(t *testing.T) {
	attr := loot.NewAttribute("damage", 10, 0, 0, true)
	Scale(&attr, 3, loot.Linear, 1)
	if attr.Min != 10 || attr.Max != 10 {
		t.Fatalf("expected bounds 10/10, got %v/%v", attr.Min, attr.Max)
	}
	if attr.InitialValue != 13 {
		t.Fatalf("expected 13, got %v", attr.InitialValue)
	}
}

func TestScaleKeepsConfiguredBounds(t *testing.T) {
	attr := loot.NewAttribute("damage", 10, 2, 4, true)
	Scale(&attr, 100, loot.Linear, 1)
	if attr.Min != 2 || attr.Max != 4 {
		t.Fatalf("expected bounds unchanged, got %v/%v", attr.Min, attr.Max)
	}
	if attr.InitialValue != 110 {
		t.Fatalf("expected max not to clamp, got %v", attr.InitialValue)
	}
}

func TestScaleExponentialFromZero(t *testing.T) {
	attr := loot.NewAttribute("armor", 0, 0, 0, true)
	Scale(&attr, 5, loot.Exponential, 1.5)
	want := math.Pow(1.5, 5)
	if math.Abs(attr.InitialValue-want) > 1e-9 {
		t.Fatalf("expected %v, got %v", want, attr.InitialValue)
	}
	if attr.Min != 0 || attr.Max != 0 {
		t.Fatalf("expected zero bounds to stay zero, got %v/%v", attr.Min, attr.Max)
	}
}

func TestScaleClampsNegativeToZero(t *testing.T) {
	attr := loot.NewAttribute("speed", 5, 0, 0, true)
	Scale(&attr, 10, loot.Linear, -2)
	if attr.InitialValue != 0 {
		t.Fatalf("expected 0, got %v", attr.InitialValue)
	}
}

func TestIsRequirement(t *testing.T) {
	tests := map[string]bool{
		"level_requirement":    true,
		"strength_requirement": true,
		"damage":               false,
		"requirement":          false,
	}
	for name, want := range tests {
		if got := IsRequirement(name); got != want {
			t.Fatalf("%s: expected %v, got %v", name, want, got)
		}
	}
}
