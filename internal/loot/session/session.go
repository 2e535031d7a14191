// Package session pairs a catalog with a generator and a ledger behind one
// lock, so a catalog can be shared by concurrent callers.
package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/louisbranch/lootforge/internal/loot"
	"github.com/louisbranch/lootforge/internal/loot/catalog"
	"github.com/louisbranch/lootforge/internal/loot/document"
	"github.com/louisbranch/lootforge/internal/loot/export"
	"github.com/louisbranch/lootforge/internal/loot/generator"
	"github.com/louisbranch/lootforge/internal/loot/ledger"
	apperrors "github.com/louisbranch/lootforge/internal/platform/errors"
	"github.com/louisbranch/lootforge/internal/platform/logging"
	"github.com/sirupsen/logrus"
)

// Session owns one catalog. Every method is safe for concurrent use.
type Session struct {
	id        string
	mu        sync.Mutex
	catalog   *catalog.Catalog
	generator *generator.Generator
	ledger    ledger.Store
	logger    logrus.FieldLogger
}

// Option configures a Session.
type Option func(*config)

type config struct {
	generatorOpts []generator.Option
	logger        logrus.FieldLogger
	catalog       *catalog.Catalog
}

// WithGeneratorOptions forwards options to the session's generator.
func WithGeneratorOptions(opts ...generator.Option) Option {
	return func(c *config) {
		c.generatorOpts = append(c.generatorOpts, opts...)
	}
}

// WithLogger sets the session logger. It is also handed to the generator.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithCatalog starts the session from an existing catalog. The session takes
// ownership of it.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(c *config) {
		c.catalog = cat
	}
}

// New creates a session recording batches in store.
func New(store ledger.Store, opts ...Option) (*Session, error) {
	if store == nil {
		return nil, apperrors.New(apperrors.CodeStorage, "ledger is required")
	}
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	id := uuid.NewString()
	logger := logging.OrDiscard(cfg.logger).WithField("session_id", id)

	cat := cfg.catalog
	if cat == nil {
		cat = catalog.New()
	}
	genOpts := append([]generator.Option{generator.WithLogger(logger)}, cfg.generatorOpts...)

	return &Session{
		id:        id,
		catalog:   cat,
		generator: generator.New(genOpts...),
		ledger:    store,
		logger:    logger,
	}, nil
}

// ID returns the session identifier used as the ledger partition.
func (s *Session) ID() string {
	return s.id
}

// Update runs fn with exclusive access to the catalog.
func (s *Session) Update(fn func(*catalog.Catalog)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.catalog)
}

// View runs fn with the catalog. fn must not mutate it.
func (s *Session) View(fn func(*catalog.Catalog)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.catalog)
}

// Import decodes a document and applies it. On failure the catalog is left
// unchanged.
func (s *Session) Import(format document.Format, data []byte) error {
	doc, err := document.Decode(format, data)
	if err != nil {
		s.logger.WithField("format", string(format)).WithError(err).Warn("document rejected")
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	document.Apply(s.catalog, doc)
	s.logger.WithFields(logrus.Fields{
		"format":     string(format),
		"qualities":  len(doc.QualityData),
		"item_types": len(doc.ItemTypes),
	}).Debug("document imported")
	return nil
}

// GenerateLoot generates a batch and records it under key. An empty key is
// replaced by a fresh identifier, returned alongside the items.
func (s *Session) GenerateLoot(ctx context.Context, opts loot.Options, overrides loot.Overrides, key string) ([]loot.Item, string, error) {
	if key == "" {
		key = uuid.NewString()
	}

	s.mu.Lock()
	items, err := s.generator.Generate(ctx, s.catalog, opts, overrides)
	s.mu.Unlock()
	if err != nil {
		return nil, "", err
	}

	if err := s.ledger.Record(ctx, s.id, key, items); err != nil {
		return nil, "", err
	}
	s.logger.WithFields(logrus.Fields{"key": key, "count": len(items)}).Debug("loot recorded")
	return items, key, nil
}

// Loot returns the batch recorded under key, or an empty batch.
func (s *Session) Loot(ctx context.Context, key string) ([]loot.Item, error) {
	return s.ledger.Load(ctx, s.id, key)
}

// LootJSON returns the batch recorded under key as a JSON array.
func (s *Session) LootJSON(ctx context.Context, key string) ([]byte, error) {
	items, err := s.Loot(ctx, key)
	if err != nil {
		return nil, err
	}
	return export.MarshalJSON(items)
}

// Keys lists the recorded batch keys.
func (s *Session) Keys(ctx context.Context) ([]string, error) {
	return s.ledger.Keys(ctx, s.id)
}

// Close forgets every batch recorded by the session. The ledger itself stays
// open.
func (s *Session) Close(ctx context.Context) error {
	return s.ledger.Forget(ctx, s.id)
}
