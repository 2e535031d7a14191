// Package ledger defines where generated batches are kept so they can be
// fetched again by key.
package ledger

import (
	"context"

	"github.com/louisbranch/lootforge/internal/loot"
)

// Store keeps generated batches per session.
type Store interface {
	// Record stores items under key, replacing any earlier batch with the
	// same key.
	Record(ctx context.Context, sessionID, key string, items []loot.Item) error
	// Load returns the batch stored under key. A missing key yields an empty
	// batch and no error.
	Load(ctx context.Context, sessionID, key string) ([]loot.Item, error)
	// Keys lists the batch keys of a session in sorted order.
	Keys(ctx context.Context, sessionID string) ([]string, error)
	// Forget drops every batch of a session.
	Forget(ctx context.Context, sessionID string) error
	Close() error
}
