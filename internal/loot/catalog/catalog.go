// Package catalog holds the weighted tables and scoped configuration that
// loot generation draws from.
//
// A Catalog has no internal locking. Callers that share one across
// goroutines must serialize access themselves; session.Session does so with
// a single mutex per catalog.
package catalog

import "github.com/louisbranch/lootforge/internal/loot"

type nameKey struct {
	scope loot.Scope
	name  string
}

type affixPools struct {
	prefixes []loot.Affix
	suffixes []loot.Affix
}

// Catalog is the configuration store for one generation context.
type Catalog struct {
	qualities    map[string]int
	itemTypes    []loot.ItemType
	attributes   map[loot.Scope][]loot.Attribute
	names        map[loot.Scope][]string
	affixes      map[loot.Scope]*affixPools
	subtypeMeta  map[loot.Scope]loot.Metadata
	itemNameMeta map[nameKey]loot.Metadata
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{
		qualities:    make(map[string]int),
		attributes:   make(map[loot.Scope][]loot.Attribute),
		names:        make(map[loot.Scope][]string),
		affixes:      make(map[loot.Scope]*affixPools),
		subtypeMeta:  make(map[loot.Scope]loot.Metadata),
		itemNameMeta: make(map[nameKey]loot.Metadata),
	}
}

// SetQuality inserts or replaces the weight of a quality tier.
func (c *Catalog) SetQuality(name string, weight int) {
	c.qualities[name] = weight
}

// Qualities returns a copy of the quality weights.
func (c *Catalog) Qualities() map[string]int {
	out := make(map[string]int, len(c.qualities))
	for k, v := range c.qualities {
		out[k] = v
	}
	return out
}

// HasQuality reports whether name is configured. The empty name always
// matches.
func (c *Catalog) HasQuality(name string) bool {
	if name == "" {
		return true
	}
	_, ok := c.qualities[name]
	return ok
}

// ReplaceQualities swaps the whole quality table.
func (c *Catalog) ReplaceQualities(qualities map[string]int) {
	c.qualities = make(map[string]int, len(qualities))
	for k, v := range qualities {
		c.qualities[k] = v
	}
}

func (c *Catalog) itemTypeIndex(name string) int {
	for i := range c.itemTypes {
		if c.itemTypes[i].Name == name {
			return i
		}
	}
	return -1
}

// SetItemType adds a type or updates the weight of an existing one. Existing
// subtypes are kept.
func (c *Catalog) SetItemType(name string, weight int) {
	if i := c.itemTypeIndex(name); i >= 0 {
		c.itemTypes[i].Weight = weight
		return
	}
	c.itemTypes = append(c.itemTypes, loot.NewItemType(name, weight))
}

// SetItemTypeMetadata tags an item type. The tag is descriptive only and is
// not copied onto generated items. Tag values are normalized with
// loot.NormalizeValue, as are subtype and item name tags.
func (c *Catalog) SetItemTypeMetadata(itemType, key string, value any) bool {
	i := c.itemTypeIndex(itemType)
	if i < 0 {
		return false
	}
	if c.itemTypes[i].Metadata == nil {
		c.itemTypes[i].Metadata = loot.Metadata{}
	}
	c.itemTypes[i].Metadata[key] = loot.NormalizeValue(value)
	return true
}

// ItemType returns a copy of the named type.
func (c *Catalog) ItemType(name string) (loot.ItemType, bool) {
	i := c.itemTypeIndex(name)
	if i < 0 {
		return loot.ItemType{}, false
	}
	return c.itemTypes[i].Clone(), true
}

// ItemTypes returns copies of every type in insertion order.
func (c *Catalog) ItemTypes() []loot.ItemType {
	out := make([]loot.ItemType, len(c.itemTypes))
	for i, it := range c.itemTypes {
		out[i] = it.Clone()
	}
	return out
}

// ItemTypeNames returns type names in insertion order.
func (c *Catalog) ItemTypeNames() []string {
	out := make([]string, len(c.itemTypes))
	for i, it := range c.itemTypes {
		out[i] = it.Name
	}
	return out
}

// ItemTypeWeights returns type name to weight.
func (c *Catalog) ItemTypeWeights() map[string]int {
	out := make(map[string]int, len(c.itemTypes))
	for _, it := range c.itemTypes {
		out[it.Name] = it.Weight
	}
	return out
}

// HasItemType reports whether name is configured. The empty name always
// matches.
func (c *Catalog) HasItemType(name string) bool {
	if name == "" {
		return true
	}
	return c.itemTypeIndex(name) >= 0
}

// ReplaceItemTypes swaps the whole item type list.
func (c *Catalog) ReplaceItemTypes(types []loot.ItemType) {
	c.itemTypes = make([]loot.ItemType, 0, len(types))
	for _, it := range types {
		clone := it.Clone()
		clone.Metadata = clone.Metadata.Normalized()
		c.itemTypes = append(c.itemTypes, clone)
	}
}

// SetItemSubtype adds or replaces a subtype weight. A missing type is created
// with weight 0, which keeps it out of random type selection.
func (c *Catalog) SetItemSubtype(itemType, subtype string, weight int) {
	i := c.itemTypeIndex(itemType)
	if i < 0 {
		it := loot.NewItemType(itemType, 0)
		it.Subtypes[subtype] = weight
		c.itemTypes = append(c.itemTypes, it)
		return
	}
	if c.itemTypes[i].Subtypes == nil {
		c.itemTypes[i].Subtypes = map[string]int{}
	}
	c.itemTypes[i].Subtypes[subtype] = weight
}

// HasItemSubtype reports whether subtype belongs to itemType. Either name
// being empty matches; an unknown type never does.
func (c *Catalog) HasItemSubtype(itemType, subtype string) bool {
	if itemType == "" || subtype == "" {
		return true
	}
	i := c.itemTypeIndex(itemType)
	if i < 0 {
		return false
	}
	return c.itemTypes[i].HasSubtype(subtype)
}

// Subtypes returns the sorted subtype names of itemType.
func (c *Catalog) Subtypes(itemType string) []string {
	i := c.itemTypeIndex(itemType)
	if i < 0 {
		return nil
	}
	return c.itemTypes[i].SubtypeNames()
}

// SubtypeWeights returns a copy of the subtype weights of itemType.
func (c *Catalog) SubtypeWeights(itemType string) (map[string]int, bool) {
	i := c.itemTypeIndex(itemType)
	if i < 0 {
		return nil, false
	}
	return c.itemTypes[i].Clone().Subtypes, true
}

// SetNames replaces the candidate names for a (type, subtype) pair.
func (c *Catalog) SetNames(itemType, subtype string, names []string) {
	c.names[loot.Scope{Type: itemType, Subtype: subtype}] = append([]string(nil), names...)
}

// Names returns the candidate names for a (type, subtype) pair.
func (c *Catalog) Names(itemType, subtype string) []string {
	return append([]string(nil), c.names[loot.Scope{Type: itemType, Subtype: subtype}]...)
}

// SetAttribute adds attr at the exact scope. When an attribute of the same
// name already exists there its initial value is increased by attr's.
func (c *Catalog) SetAttribute(itemType, subtype string, attr loot.Attribute) {
	scope := loot.Scope{Type: itemType, Subtype: subtype}
	attrs := c.attributes[scope]
	for i := range attrs {
		if attrs[i].Name == attr.Name {
			attrs[i].InitialValue += attr.InitialValue
			return
		}
	}
	c.attributes[scope] = append(attrs, attr)
}

// Attributes returns the attributes configured at exactly scope.
func (c *Catalog) Attributes(scope loot.Scope) []loot.Attribute {
	return append([]loot.Attribute(nil), c.attributes[scope]...)
}

// ReplaceAttributes swaps the attribute list at scope.
func (c *Catalog) ReplaceAttributes(scope loot.Scope, attrs []loot.Attribute) {
	c.attributes[scope] = append([]loot.Attribute(nil), attrs...)
}

// HasAttribute reports whether name is configured at exactly (itemType,
// subtype). Unknown types or subtypes report false.
func (c *Catalog) HasAttribute(itemType, subtype, name string) bool {
	if !c.HasItemType(itemType) || !c.HasItemSubtype(itemType, subtype) {
		return false
	}
	for _, attr := range c.attributes[loot.Scope{Type: itemType, Subtype: subtype}] {
		if attr.Name == name {
			return true
		}
	}
	return false
}

// SetAffixAttribute sets attr on the named affix at the scope, creating the
// affix if needed. An attribute of the same name on the affix is replaced.
func (c *Catalog) SetAffixAttribute(itemType, subtype string, kind loot.AffixKind, affixName string, attr loot.Attribute) {
	scope := loot.Scope{Type: itemType, Subtype: subtype}
	pools, ok := c.affixes[scope]
	if !ok {
		pools = &affixPools{}
		c.affixes[scope] = pools
	}
	list := &pools.prefixes
	if kind == loot.Suffix {
		list = &pools.suffixes
	}
	for i := range *list {
		if (*list)[i].Name == affixName {
			(*list)[i].SetAttribute(attr)
			return
		}
	}
	*list = append(*list, loot.Affix{Name: affixName, Attributes: []loot.Attribute{attr}})
}

// SetPrefixAttribute is SetAffixAttribute for prefixes.
func (c *Catalog) SetPrefixAttribute(itemType, subtype, affixName string, attr loot.Attribute) {
	c.SetAffixAttribute(itemType, subtype, loot.Prefix, affixName, attr)
}

// SetSuffixAttribute is SetAffixAttribute for suffixes.
func (c *Catalog) SetSuffixAttribute(itemType, subtype, affixName string, attr loot.Attribute) {
	c.SetAffixAttribute(itemType, subtype, loot.Suffix, affixName, attr)
}

// Prefixes returns copies of the prefixes at exactly scope.
func (c *Catalog) Prefixes(scope loot.Scope) []loot.Affix {
	if pools, ok := c.affixes[scope]; ok {
		return loot.CloneAffixes(pools.prefixes)
	}
	return nil
}

// Suffixes returns copies of the suffixes at exactly scope.
func (c *Catalog) Suffixes(scope loot.Scope) []loot.Affix {
	if pools, ok := c.affixes[scope]; ok {
		return loot.CloneAffixes(pools.suffixes)
	}
	return nil
}

// ReplaceAffixes swaps both affix pools at scope.
func (c *Catalog) ReplaceAffixes(scope loot.Scope, prefixes, suffixes []loot.Affix) {
	c.affixes[scope] = &affixPools{
		prefixes: loot.CloneAffixes(prefixes),
		suffixes: loot.CloneAffixes(suffixes),
	}
}

// SetSubtypeMetadata tags every item generated for (itemType, subtype).
func (c *Catalog) SetSubtypeMetadata(itemType, subtype, key string, value any) {
	scope := loot.Scope{Type: itemType, Subtype: subtype}
	md, ok := c.subtypeMeta[scope]
	if !ok {
		md = loot.Metadata{}
		c.subtypeMeta[scope] = md
	}
	md[key] = loot.NormalizeValue(value)
}

// SubtypeMetadata returns one subtype tag.
func (c *Catalog) SubtypeMetadata(itemType, subtype, key string) (any, bool) {
	v, ok := c.subtypeMeta[loot.Scope{Type: itemType, Subtype: subtype}][key]
	return v, ok
}

// AllSubtypeMetadata returns a copy of every subtype tag.
func (c *Catalog) AllSubtypeMetadata(itemType, subtype string) (loot.Metadata, bool) {
	md, ok := c.subtypeMeta[loot.Scope{Type: itemType, Subtype: subtype}]
	return md.Clone(), ok
}

// ReplaceSubtypeMetadata swaps the tags at scope.
func (c *Catalog) ReplaceSubtypeMetadata(scope loot.Scope, md loot.Metadata) {
	c.subtypeMeta[scope] = md.Normalized()
}

// SetItemNameMetadata tags items generated with a specific name.
func (c *Catalog) SetItemNameMetadata(itemType, subtype, itemName, key string, value any) {
	k := nameKey{scope: loot.Scope{Type: itemType, Subtype: subtype}, name: itemName}
	md, ok := c.itemNameMeta[k]
	if !ok {
		md = loot.Metadata{}
		c.itemNameMeta[k] = md
	}
	md[key] = loot.NormalizeValue(value)
}

// ItemNameMetadata returns one item name tag.
func (c *Catalog) ItemNameMetadata(itemType, subtype, itemName, key string) (any, bool) {
	k := nameKey{scope: loot.Scope{Type: itemType, Subtype: subtype}, name: itemName}
	v, ok := c.itemNameMeta[k][key]
	return v, ok
}

// AllItemNameMetadata returns a copy of every tag for an item name.
func (c *Catalog) AllItemNameMetadata(itemType, subtype, itemName string) (loot.Metadata, bool) {
	k := nameKey{scope: loot.Scope{Type: itemType, Subtype: subtype}, name: itemName}
	md, ok := c.itemNameMeta[k]
	return md.Clone(), ok
}
