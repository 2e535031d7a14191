package lootgen

import (
	"github.com/louisbranch/lootforge/internal/loot"
	"github.com/louisbranch/lootforge/internal/loot/catalog"
)

// BuiltinCatalog returns the demo catalog used by -builtin: five qualities,
// weapons and armor with their subtypes, requirement attributes, and a
// handful of prefixes and suffixes per type.
func BuiltinCatalog() *catalog.Catalog {
	c := catalog.New()

	for _, q := range []struct {
		name   string
		weight int
	}{
		{"common", 100},
		{"uncommon", 60},
		{"rare", 30},
		{"epic", 9},
		{"legendary", 1},
	} {
		c.SetQuality(q.name, q.weight)
	}

	c.SetItemType("weapon", 1)
	c.SetItemType("armor", 1)
	for _, st := range []string{"one-handed", "two-handed"} {
		c.SetItemSubtype("weapon", st, 1)
	}
	armor := map[string][]string{
		"chest":     {"chestplate", "tunic"},
		"feet":      {"boots", "shoes"},
		"hands":     {"gauntlets", "gloves"},
		"head":      {"helm", "hood"},
		"legs":      {"legplates", "leggings"},
		"shoulders": {"shoulderplates", "pauldrons"},
		"waist":     {"belt", "girdle"},
		"wrists":    {"bracers", "vambraces"},
	}
	for st, names := range armor {
		c.SetItemSubtype("armor", st, 1)
		c.SetNames("armor", st, names)
	}
	c.SetNames("weapon", "one-handed", []string{"sword", "axe", "mace", "dagger"})
	c.SetNames("weapon", "two-handed", []string{"sword", "axe", "mace", "staff"})

	for _, name := range []string{"strength_requirement", "dexterity_requirement", "intelligence_requirement"} {
		c.SetAttribute("", "", loot.NewAttribute(name, 0, 0, 100, false))
	}
	c.SetAttribute("weapon", "", loot.NewAttribute("level_requirement", 0, 0, 100, false))
	c.SetAttribute("weapon", "", loot.NewAttribute("durability", 16, 1, 16, true))
	c.SetAttribute("weapon", "", loot.NewAttribute("attack_damage", 1, 1, 5, true))
	c.SetAttribute("weapon", "", loot.NewAttribute("attack_speed", 0, 0, 100, true))
	c.SetAttribute("weapon", "", loot.NewAttribute("critical_chance", 0, 0, 100, false))
	c.SetAttribute("weapon", "", loot.NewAttribute("critical_damage", 0, 0, 100, false))
	c.SetAttribute("armor", "", loot.NewAttribute("durability", 20, 1, 20, true))

	affix := func(name string, value float64) loot.Attribute {
		return loot.NewAttribute(name, value, 0, 0, false)
	}
	c.SetPrefixAttribute("armor", "", "heavy", affix("durability", 10))
	c.SetPrefixAttribute("armor", "", "light", affix("durability", -10))
	c.SetPrefixAttribute("armor", "", "light", affix("strength_requirement", -10))
	c.SetPrefixAttribute("armor", "", "strong", affix("strength_requirement", 10))

	c.SetPrefixAttribute("weapon", "", "sharp", affix("attack_damage", 10))
	c.SetPrefixAttribute("weapon", "", "dull", affix("attack_damage", -10))
	c.SetPrefixAttribute("weapon", "", "heavy", affix("attack_speed", -10))
	c.SetPrefixAttribute("weapon", "", "light", affix("attack_speed", 10))
	c.SetPrefixAttribute("weapon", "", "strong", affix("strength_requirement", 10))

	for _, itemType := range []string{"weapon", "armor"} {
		c.SetSuffixAttribute(itemType, "", "of the bear", affix("strength_requirement", 10))
		c.SetSuffixAttribute(itemType, "", "of the eagle", affix("intelligence_requirement", 10))
		c.SetSuffixAttribute(itemType, "", "of the wolf", affix("dexterity_requirement", 10))
		c.SetSuffixAttribute(itemType, "", "of the lion", affix("strength_requirement", 5))
	}

	c.SetSubtypeMetadata("weapon", "two-handed", "hands", 2)
	c.SetSubtypeMetadata("weapon", "one-handed", "hands", 1)
	return c
}
