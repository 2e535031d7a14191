// Package loot defines the data model shared by the catalog, the generator
// and every adapter: attributes, affixes, item types, generated items,
// generation options and the scope keys used for wildcard lookups.
package loot
