// Package generator assembles loot items from a catalog.
//
// Generation is a single synchronous pass per item: pick a quality, a type
// and a subtype by weight, pick a name, roll affixes, roll a level, then
// layer scoped attributes, affix contributions and metadata onto the item.
// A selection failure aborts the whole batch and no items are returned.
package generator

import (
	"context"
	"fmt"

	"github.com/louisbranch/lootforge/internal/loot"
	"github.com/louisbranch/lootforge/internal/loot/scaling"
	"github.com/louisbranch/lootforge/internal/loot/selector"
	"github.com/louisbranch/lootforge/internal/platform/logging"
	"github.com/louisbranch/lootforge/internal/random"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/lootforge/internal/loot/generator"

// Catalog is the read side of a loot catalog.
type Catalog interface {
	Qualities() map[string]int
	ItemTypeWeights() map[string]int
	SubtypeWeights(itemType string) (map[string]int, bool)
	Names(itemType, subtype string) []string
	Attributes(scope loot.Scope) []loot.Attribute
	Prefixes(scope loot.Scope) []loot.Affix
	Suffixes(scope loot.Scope) []loot.Affix
	AllSubtypeMetadata(itemType, subtype string) (loot.Metadata, bool)
	AllItemNameMetadata(itemType, subtype, itemName string) (loot.Metadata, bool)
}

// Generator draws items from a catalog. It is not safe for concurrent use
// because the random source is not.
type Generator struct {
	rng    random.Source
	logger logrus.FieldLogger
	tracer trace.Tracer
}

// Option configures a Generator.
type Option func(*Generator)

// WithSource sets the random source. Use random.NewSeeded for reproducible
// batches.
func WithSource(src random.Source) Option {
	return func(g *Generator) {
		if src != nil {
			g.rng = src
		}
	}
}

// WithLogger sets the logger used for failed batches.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(g *Generator) {
		g.logger = logging.OrDiscard(logger)
	}
}

// WithTracer sets the tracer used for batch spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(g *Generator) {
		if tracer != nil {
			g.tracer = tracer
		}
	}
}

// New returns a generator seeded from system entropy unless WithSource is
// given.
func New(opts ...Option) *Generator {
	g := &Generator{
		logger: logging.Discard(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = random.New()
	}
	return g
}

// Generate produces opts.Count items. Any failure discards the items built so
// far.
func (g *Generator) Generate(ctx context.Context, cat Catalog, opts loot.Options, overrides loot.Overrides) ([]loot.Item, error) {
	_, span := g.tracer.Start(ctx, "loot.generate", trace.WithAttributes(
		attribute.Int("loot.count", opts.Count),
		attribute.String("loot.scaling", opts.Scaling.String()),
		attribute.String("loot.quality_override", overrides.Quality),
		attribute.String("loot.type_override", overrides.Type),
		attribute.String("loot.subtype_override", overrides.Subtype),
	))
	defer span.End()

	if opts.Count <= 0 {
		return []loot.Item{}, nil
	}

	items := make([]loot.Item, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		item, err := g.GenerateItem(cat, opts, overrides)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			g.logger.WithFields(logrus.Fields{
				"count": opts.Count,
				"index": i,
			}).WithError(err).Warn("loot generation failed")
			return nil, fmt.Errorf("generate item %d: %w", i, err)
		}
		items = append(items, item)
	}
	span.SetAttributes(attribute.Int("loot.generated", len(items)))
	return items, nil
}

// GenerateItem produces a single item.
func (g *Generator) GenerateItem(cat Catalog, opts loot.Options, overrides loot.Overrides) (loot.Item, error) {
	quality := overrides.Quality
	if quality == "" {
		picked, err := selector.Pick(cat.Qualities(), g.rng)
		if err != nil {
			return loot.Item{}, fmt.Errorf("select quality: %w", err)
		}
		quality = picked
	}

	itemType := overrides.Type
	if itemType == "" {
		picked, err := selector.Pick(cat.ItemTypeWeights(), g.rng)
		if err != nil {
			return loot.Item{}, fmt.Errorf("select item type: %w", err)
		}
		itemType = picked
	}

	subtype := overrides.Subtype
	if subtype == "" {
		// An unknown type yields an empty subtype rather than an error.
		if weights, ok := cat.SubtypeWeights(itemType); ok {
			picked, err := selector.Pick(weights, g.rng)
			if err != nil {
				return loot.Item{}, fmt.Errorf("select subtype of %s: %w", itemType, err)
			}
			subtype = picked
		}
	}

	name := subtype
	if names := cat.Names(itemType, subtype); len(names) > 0 {
		name = names[selector.PickIndex(len(names), g.rng)]
	}

	item := loot.Item{
		Name:       name,
		Quality:    quality,
		Type:       itemType,
		Subtype:    subtype,
		Attributes: map[string]loot.Attribute{},
		Metadata:   loot.Metadata{},
	}
	item.Prefix, item.Suffix = g.rollAffixes(cat, opts, itemType, subtype)

	g.applyAttributes(cat, &item, opts)

	if md, ok := cat.AllSubtypeMetadata(itemType, subtype); ok {
		item.Metadata.Merge(md)
	}
	if md, ok := cat.AllItemNameMetadata(itemType, subtype, item.Name); ok {
		item.Metadata.Merge(md)
	}
	return item, nil
}

// rollAffixes decides whether the item gets a prefix and a suffix and picks
// them uniformly from the pools of all four scopes. An affix configured at
// several scopes appears in the pool once per scope.
func (g *Generator) rollAffixes(cat Catalog, opts loot.Options, itemType, subtype string) (loot.Affix, loot.Affix) {
	wantPrefix := random.Chance(g.rng, opts.AffixChance)
	wantSuffix := random.Chance(g.rng, opts.AffixChance)

	var prefix, suffix loot.Affix
	if !wantPrefix && !wantSuffix {
		return prefix, suffix
	}

	var prefixes, suffixes []loot.Affix
	for _, scope := range loot.ScopesFor(itemType, subtype) {
		if wantPrefix {
			prefixes = append(prefixes, cat.Prefixes(scope)...)
		}
		if wantSuffix {
			suffixes = append(suffixes, cat.Suffixes(scope)...)
		}
	}

	if i := selector.PickIndex(len(prefixes), g.rng); i >= 0 {
		prefix = prefixes[i].Clone()
	}
	if i := selector.PickIndex(len(suffixes), g.rng); i >= 0 {
		suffix = suffixes[i].Clone()
	}
	return prefix, suffix
}

func (g *Generator) applyAttributes(cat Catalog, item *loot.Item, opts loot.Options) {
	lo := int(opts.BaseLevel - opts.LevelVariance)
	hi := int(opts.BaseLevel + opts.LevelVariance)
	level := float64(random.IntRange(g.rng, lo, hi))

	item.SetAttribute(loot.LevelAttribute, loot.NewAttribute(loot.LevelAttribute, level, 0, 0, false))

	var optional []loot.Attribute
	for _, scope := range loot.ScopesFor(item.Type, item.Subtype) {
		for _, attr := range cat.Attributes(scope) {
			if !attr.Required {
				optional = append(optional, attr)
				continue
			}
			if scaling.IsRequirement(attr.Name) {
				attr.SetInitialValue(level)
			} else {
				scaling.Scale(&attr, level, opts.Scaling, opts.ScalingFactor)
			}
			item.SetAttribute(attr.Name, attr)
		}
	}

	for _, attr := range optional {
		// Optional attributes apply when the draw is <= AffixChance.
		if g.rng.Float64() > opts.AffixChance {
			continue
		}
		final := attr
		if existing, ok := item.Attribute(attr.Name); ok {
			final = existing
			final.InitialValue += attr.InitialValue
		} else if !scaling.IsRequirement(attr.Name) {
			scaling.Scale(&final, level, opts.Scaling, opts.ScalingFactor)
		}
		if scaling.IsRequirement(final.Name) {
			final.SetInitialValue(level)
		}
		item.SetAttribute(attr.Name, final)
	}

	mergeAffix(item, item.Prefix, level)
	mergeAffix(item, item.Suffix, level)
}

// mergeAffix adds affix contributions onto the item without scaling them.
func mergeAffix(item *loot.Item, affix loot.Affix, level float64) {
	for _, attr := range affix.Attributes {
		final := attr
		if existing, ok := item.Attribute(attr.Name); ok {
			final = existing
			final.InitialValue += attr.InitialValue
		}
		if scaling.IsRequirement(final.Name) {
			final.SetInitialValue(level)
		}
		item.SetAttribute(attr.Name, final)
	}
}
