// Package handle exposes sessions and generated batches through opaque
// integer handles for callers across a C boundary.
//
// Every allocation (NewSession, Generate) hands back a handle the caller
// must release exactly once with the matching free function. Unknown, null
// or already released handles and text that is not valid UTF-8 yield
// StatusFailure instead of a panic. Text is normalized to NFC before use.
package handle

import (
	"context"
	"sync"
	"unicode/utf8"

	"github.com/louisbranch/lootforge/internal/loot"
	"github.com/louisbranch/lootforge/internal/loot/catalog"
	"github.com/louisbranch/lootforge/internal/loot/document"
	"github.com/louisbranch/lootforge/internal/loot/ledger"
	"github.com/louisbranch/lootforge/internal/loot/session"
	apperrors "github.com/louisbranch/lootforge/internal/platform/errors"
	"github.com/louisbranch/lootforge/internal/platform/logging"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/unicode/norm"
)

// Version is the library version reported to foreign callers.
const Version = "0.1.0"

// Handle identifies a session or an item array. Zero is the null handle.
type Handle uint64

// Null is the handle returned on failure.
const Null Handle = 0

// Status is the integer result of boundary calls.
type Status int32

const (
	StatusFailure Status = -1
	StatusOK      Status = 0
	StatusFalse   Status = 0
	StatusTrue    Status = 1
)

// GenerateRequest carries generation parameters. Key names the ledger batch;
// when empty a fresh key is used.
type GenerateRequest struct {
	Options   loot.Options
	Overrides loot.Overrides
	Key       string
}

// Registry owns every live session and item array.
type Registry struct {
	mu          sync.Mutex
	next        Handle
	sessions    map[Handle]*session.Session
	batches     map[Handle][]loot.Item
	ledger      ledger.Store
	logger      logrus.FieldLogger
	sessionOpts []session.Option
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(r *Registry) {
		r.logger = logging.OrDiscard(logger)
	}
}

// WithSessionOptions applies opts to every session the registry creates.
func WithSessionOptions(opts ...session.Option) Option {
	return func(r *Registry) {
		r.sessionOpts = append(r.sessionOpts, opts...)
	}
}

// NewRegistry returns an empty registry whose sessions record into store.
func NewRegistry(store ledger.Store, opts ...Option) *Registry {
	r := &Registry{
		sessions: make(map[Handle]*session.Session),
		batches:  make(map[Handle][]loot.Item),
		ledger:   store,
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) allocate() Handle {
	r.next++
	return r.next
}

// text validates and normalizes one incoming string.
func text(s string) (string, bool) {
	if !utf8.ValidString(s) {
		return "", false
	}
	return norm.NFC.String(s), true
}

// texts validates every value in place.
func texts(values ...*string) bool {
	for _, v := range values {
		s, ok := text(*v)
		if !ok {
			return false
		}
		*v = s
	}
	return true
}

func (r *Registry) session(h Handle) (*session.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[h]
	return s, ok
}

// NewSession allocates a session with an empty catalog.
func (r *Registry) NewSession() Handle {
	opts := append([]session.Option{session.WithLogger(r.logger)}, r.sessionOpts...)
	s, err := session.New(r.ledger, opts...)
	if err != nil {
		r.logger.WithError(err).Warn("session allocation failed")
		return Null
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	h := r.allocate()
	r.sessions[h] = s
	return h
}

// FreeSession releases a session and forgets its recorded batches.
func (r *Registry) FreeSession(h Handle) Status {
	r.mu.Lock()
	s, ok := r.sessions[h]
	delete(r.sessions, h)
	r.mu.Unlock()
	if !ok {
		return StatusFailure
	}
	if err := s.Close(context.Background()); err != nil {
		r.logger.WithField("handle", uint64(h)).WithError(err).Warn("forget session batches")
	}
	return StatusOK
}

// LoadDocument imports a catalog document. The string result describes the
// failure and is empty on success.
func (r *Registry) LoadDocument(h Handle, format, data string) (Status, string) {
	s, ok := r.session(h)
	if !ok {
		return StatusFailure, apperrors.New(apperrors.CodeInvalidHandle, "invalid handle").Error()
	}
	if !texts(&format, &data) {
		return StatusFailure, apperrors.New(apperrors.CodeInvalidEncoding, "text is not valid UTF-8").Error()
	}
	f, err := document.ParseFormat(format)
	if err != nil {
		return StatusFailure, err.Error()
	}
	if err := s.Import(f, []byte(data)); err != nil {
		return StatusFailure, err.Error()
	}
	return StatusOK, ""
}

// update runs fn on the session catalog after validating the handle and
// the given strings.
func (r *Registry) update(h Handle, fn func(*catalog.Catalog), values ...*string) Status {
	s, ok := r.session(h)
	if !ok || !texts(values...) {
		return StatusFailure
	}
	s.Update(fn)
	return StatusOK
}

// SetQuality sets a quality weight.
func (r *Registry) SetQuality(h Handle, name string, weight int32) Status {
	return r.update(h, func(c *catalog.Catalog) {
		c.SetQuality(name, int(weight))
	}, &name)
}

// SetItemType sets an item type weight.
func (r *Registry) SetItemType(h Handle, name string, weight int32) Status {
	return r.update(h, func(c *catalog.Catalog) {
		c.SetItemType(name, int(weight))
	}, &name)
}

// SetItemSubtype sets a subtype weight.
func (r *Registry) SetItemSubtype(h Handle, itemType, subtype string, weight int32) Status {
	return r.update(h, func(c *catalog.Catalog) {
		c.SetItemSubtype(itemType, subtype, int(weight))
	}, &itemType, &subtype)
}

// SetAttribute adds an attribute at (itemType, subtype).
func (r *Registry) SetAttribute(h Handle, itemType, subtype string, attr loot.Attribute) Status {
	return r.update(h, func(c *catalog.Catalog) {
		c.SetAttribute(itemType, subtype, attr)
	}, &itemType, &subtype, &attr.Name)
}

// SetItemNames replaces the names at (itemType, subtype).
func (r *Registry) SetItemNames(h Handle, itemType, subtype string, names []string) Status {
	values := []*string{&itemType, &subtype}
	names = append([]string(nil), names...)
	for i := range names {
		values = append(values, &names[i])
	}
	return r.update(h, func(c *catalog.Catalog) {
		c.SetNames(itemType, subtype, names)
	}, values...)
}

// SetPrefixAttribute sets an attribute on a prefix.
func (r *Registry) SetPrefixAttribute(h Handle, itemType, subtype, affixName string, attr loot.Attribute) Status {
	return r.update(h, func(c *catalog.Catalog) {
		c.SetPrefixAttribute(itemType, subtype, affixName, attr)
	}, &itemType, &subtype, &affixName, &attr.Name)
}

// SetSuffixAttribute sets an attribute on a suffix.
func (r *Registry) SetSuffixAttribute(h Handle, itemType, subtype, affixName string, attr loot.Attribute) Status {
	return r.update(h, func(c *catalog.Catalog) {
		c.SetSuffixAttribute(itemType, subtype, affixName, attr)
	}, &itemType, &subtype, &affixName, &attr.Name)
}

// HasQuality returns StatusTrue or StatusFalse, or StatusFailure for a bad
// handle or string.
func (r *Registry) HasQuality(h Handle, name string) Status {
	s, ok := r.session(h)
	if !ok || !texts(&name) {
		return StatusFailure
	}
	found := false
	s.View(func(c *catalog.Catalog) {
		found = c.HasQuality(name)
	})
	if found {
		return StatusTrue
	}
	return StatusFalse
}

// Generate runs a batch and returns a handle to a private copy of it. On
// failure the null handle is returned with the error text.
func (r *Registry) Generate(h Handle, req GenerateRequest) (Handle, string) {
	s, ok := r.session(h)
	if !ok {
		return Null, apperrors.New(apperrors.CodeInvalidHandle, "invalid handle").Error()
	}
	ov := req.Overrides
	if !texts(&ov.Quality, &ov.Type, &ov.Subtype, &req.Key) {
		return Null, apperrors.New(apperrors.CodeInvalidEncoding, "text is not valid UTF-8").Error()
	}
	items, _, err := s.GenerateLoot(context.Background(), req.Options, ov, req.Key)
	if err != nil {
		return Null, "failed to generate loot: " + err.Error()
	}

	batch := make([]loot.Item, len(items))
	for i, item := range items {
		batch[i] = item.Clone()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a := r.allocate()
	r.batches[a] = batch
	return a, ""
}

// ItemCount returns the size of an item array, or 0 for an invalid handle.
func (r *Registry) ItemCount(a Handle) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return uint32(len(r.batches[a]))
}

// Item returns a copy of item i of an item array.
func (r *Registry) Item(a Handle, i uint32) (loot.Item, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	batch, ok := r.batches[a]
	if !ok || int(i) >= len(batch) {
		return loot.Item{}, false
	}
	return batch[i].Clone(), true
}

// FreeItems releases an item array.
func (r *Registry) FreeItems(a Handle) Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.batches[a]; !ok {
		return StatusFailure
	}
	delete(r.batches, a)
	return StatusOK
}

// Live reports how many handles are allocated and not yet freed.
func (r *Registry) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions) + len(r.batches)
}

// Version returns the library version. It needs no session handle.
func (r *Registry) Version() string {
	return Version
}
