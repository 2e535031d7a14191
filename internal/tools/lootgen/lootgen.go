// Package lootgen implements the lootgen command: load a catalog, generate
// a batch and write it as JSON or a spreadsheet.
package lootgen

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/louisbranch/lootforge/internal/loot"
	"github.com/louisbranch/lootforge/internal/loot/catalog"
	"github.com/louisbranch/lootforge/internal/loot/document"
	"github.com/louisbranch/lootforge/internal/loot/export"
	"github.com/louisbranch/lootforge/internal/loot/generator"
	"github.com/louisbranch/lootforge/internal/loot/ledger/sqlite"
	"github.com/louisbranch/lootforge/internal/loot/session"
	entrypoint "github.com/louisbranch/lootforge/internal/platform/cmd"
	"github.com/louisbranch/lootforge/internal/platform/logging"
	"github.com/louisbranch/lootforge/internal/random"
	"github.com/sirupsen/logrus"
)

const batchKey = "lootgen"

// Output formats.
const (
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

// Config holds lootgen configuration. Environment variables carry the
// LOOTFORGE_ prefix.
type Config struct {
	Input         string  `env:"INPUT"`
	Output        string  `env:"OUTPUT"`
	Format        string  `env:"OUTPUT_FORMAT" envDefault:"json"`
	Count         int     `env:"COUNT" envDefault:"10"`
	BaseLevel     float64 `env:"BASE_LEVEL" envDefault:"10"`
	LevelVariance float64 `env:"LEVEL_VARIANCE" envDefault:"5"`
	AffixChance   float64 `env:"AFFIX_CHANCE" envDefault:"0.75"`
	Exponential   bool    `env:"EXPONENTIAL"`
	ScalingFactor float64 `env:"SCALING_FACTOR" envDefault:"1"`
	// Seed makes output reproducible. Zero seeds from system entropy.
	Seed    int64  `env:"SEED"`
	Quality string `env:"QUALITY"`
	Type    string `env:"TYPE"`
	Subtype string `env:"SUBTYPE"`
	Builtin bool   `env:"BUILTIN"`

	Logging logging.Settings
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Input, "input", cfg.Input, "catalog document (.toml, .json, .yaml, .lua)")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "output file (default: stdout)")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "output format: json or xlsx")
	fs.IntVar(&cfg.Count, "n", cfg.Count, "number of items to generate")
	fs.Float64Var(&cfg.BaseLevel, "base-level", cfg.BaseLevel, "center of the item level range")
	fs.Float64Var(&cfg.LevelVariance, "level-variance", cfg.LevelVariance, "spread of the item level range")
	fs.Float64Var(&cfg.AffixChance, "affix-chance", cfg.AffixChance, "probability of each affix and optional attribute")
	fs.BoolVar(&cfg.Exponential, "exponential", cfg.Exponential, "scale attributes exponentially instead of linearly")
	fs.Float64Var(&cfg.ScalingFactor, "scaling-factor", cfg.ScalingFactor, "attribute growth per level")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0: random)")
	fs.StringVar(&cfg.Quality, "quality", cfg.Quality, "force item quality")
	fs.StringVar(&cfg.Type, "type", cfg.Type, "force item type")
	fs.StringVar(&cfg.Subtype, "subtype", cfg.Subtype, "force item subtype")
	fs.BoolVar(&cfg.Builtin, "builtin", cfg.Builtin, "use the built-in demo catalog instead of -input")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	switch cfg.Format {
	case FormatJSON, FormatXLSX:
	default:
		return fmt.Errorf("format must be json or xlsx, got %q", cfg.Format)
	}
	if !cfg.Builtin && strings.TrimSpace(cfg.Input) == "" {
		return errors.New("input is required unless -builtin is set")
	}
	if cfg.Count < 0 {
		return errors.New("n must not be negative")
	}
	return nil
}

// Options converts the flags into generation options.
func (cfg Config) Options() loot.Options {
	mode := loot.Linear
	if cfg.Exponential {
		mode = loot.Exponential
	}
	return loot.Options{
		Count:         cfg.Count,
		BaseLevel:     cfg.BaseLevel,
		LevelVariance: cfg.LevelVariance,
		AffixChance:   cfg.AffixChance,
		Scaling:       mode,
		ScalingFactor: cfg.ScalingFactor,
	}
}

// Overrides returns the forced quality, type and subtype.
func (cfg Config) Overrides() loot.Overrides {
	return loot.Overrides{
		Quality: strings.TrimSpace(cfg.Quality),
		Type:    strings.TrimSpace(cfg.Type),
		Subtype: strings.TrimSpace(cfg.Subtype),
	}
}

// Run generates a batch and writes it to cfg.Output, or to out when no
// output file is set. Logs go to errOut.
func Run(ctx context.Context, cfg Config, out, errOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = io.Discard
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	logger := logging.New(cfg.Logging, errOut)

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceLootgen, entrypoint.RunOptions{Logger: logger}, func(ctx context.Context) error {
		return run(ctx, cfg, out, logger)
	})
}

func run(ctx context.Context, cfg Config, out io.Writer, logger logrus.FieldLogger) error {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	overrides := cfg.Overrides()
	warnUnknownOverrides(cat, overrides, logger)

	store, err := sqlite.Open()
	if err != nil {
		return err
	}
	defer store.Close()

	var src random.Source = random.New()
	if cfg.Seed != 0 {
		src = random.NewSeeded(cfg.Seed)
	}
	sess, err := session.New(store,
		session.WithCatalog(cat),
		session.WithLogger(logger),
		session.WithGeneratorOptions(generator.WithSource(src)),
	)
	if err != nil {
		return err
	}
	defer sess.Close(ctx)

	items, _, err := sess.GenerateLoot(ctx, cfg.Options(), overrides, batchKey)
	if err != nil {
		return fmt.Errorf("generate loot: %w", err)
	}

	if err := writeItems(cfg, out, items); err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"count":  len(items),
		"format": cfg.Format,
		"output": outputName(cfg),
	}).Info("loot generated")
	return nil
}

func loadCatalog(cfg Config) (*catalog.Catalog, error) {
	if cfg.Builtin {
		return BuiltinCatalog(), nil
	}
	doc, err := document.DecodeFile(strings.TrimSpace(cfg.Input))
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	cat := catalog.New()
	document.Apply(cat, doc)
	return cat, nil
}

// warnUnknownOverrides logs overrides the catalog does not know about. They
// are still honored.
func warnUnknownOverrides(cat *catalog.Catalog, ov loot.Overrides, logger logrus.FieldLogger) {
	warn := func(field, value, suggestion string, found bool) {
		entry := logger.WithFields(logrus.Fields{"override": field, "value": value})
		if found {
			entry = entry.WithField("suggestion", suggestion)
		}
		entry.Warn("override not in catalog")
	}
	if !cat.HasQuality(ov.Quality) {
		s, ok := cat.SuggestQuality(ov.Quality)
		warn("quality", ov.Quality, s, ok)
	}
	if !cat.HasItemType(ov.Type) {
		s, ok := cat.SuggestItemType(ov.Type)
		warn("type", ov.Type, s, ok)
	}
	if ov.Type != "" && !cat.HasItemSubtype(ov.Type, ov.Subtype) {
		s, ok := cat.SuggestSubtype(ov.Type, ov.Subtype)
		warn("subtype", ov.Subtype, s, ok)
	}
}

func writeItems(cfg Config, out io.Writer, items []loot.Item) (err error) {
	w := out
	if path := strings.TrimSpace(cfg.Output); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close output: %w", cerr)
			}
		}()
		w = f
	}

	if cfg.Format == FormatXLSX {
		return export.WriteXLSX(w, items)
	}
	return export.WriteJSON(w, items)
}

func outputName(cfg Config) string {
	if path := strings.TrimSpace(cfg.Output); path != "" {
		return path
	}
	return "stdout"
}
