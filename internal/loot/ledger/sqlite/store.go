// Package sqlite provides an in-memory SQLite ledger.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/lootforge/internal/loot"
	"github.com/louisbranch/lootforge/internal/loot/export"
	"github.com/louisbranch/lootforge/internal/loot/ledger"
	"github.com/louisbranch/lootforge/internal/loot/ledger/sqlite/migrations"
	apperrors "github.com/louisbranch/lootforge/internal/platform/errors"
	sqlitemigrate "github.com/louisbranch/lootforge/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

var _ ledger.Store = (*Store)(nil)

// Store keeps batches in a private in-memory database. Nothing survives
// Close.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open creates an empty in-memory ledger.
func Open() (*Store, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "open sqlite db", err)
	}
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, apperrors.Wrap(apperrors.CodeStorage, "ping sqlite db", err)
	}
	if err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, apperrors.Wrap(apperrors.CodeStorage, "run migrations", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return apperrors.New(apperrors.CodeStorage, "ledger is not configured")
	}
	return nil
}

// Record stores items under (sessionID, key).
func (s *Store) Record(ctx context.Context, sessionID, key string, items []loot.Item) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return apperrors.New(apperrors.CodeStorage, "session id is required")
	}
	payload, err := export.MarshalJSON(items)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "encode batch", err)
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT OR REPLACE INTO loot_batches (
		   session_id,
		   batch_key,
		   items_json,
		   item_count,
		   created_at
		 ) VALUES (?, ?, ?, ?, ?)`,
		sessionID,
		key,
		string(payload),
		len(items),
		s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "record batch", err)
	}
	return nil
}

// Load returns the batch under (sessionID, key), or an empty batch.
func (s *Store) Load(ctx context.Context, sessionID, key string) ([]loot.Item, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	var payload string
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT items_json
		   FROM loot_batches
		  WHERE session_id = ? AND batch_key = ?`,
		strings.TrimSpace(sessionID),
		key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return []loot.Item{}, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "load batch", err)
	}

	items, err := export.UnmarshalJSON([]byte(payload))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, fmt.Sprintf("decode batch %q", key), err)
	}
	return items, nil
}

// Keys lists the batch keys of sessionID.
func (s *Store) Keys(ctx context.Context, sessionID string) ([]string, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT batch_key
		   FROM loot_batches
		  WHERE session_id = ?
		  ORDER BY batch_key ASC`,
		strings.TrimSpace(sessionID),
	)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "list batches", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeStorage, "scan batch key", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "iterate batches", err)
	}
	return keys, nil
}

// Forget deletes every batch of sessionID.
func (s *Store) Forget(ctx context.Context, sessionID string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM loot_batches WHERE session_id = ?`,
		strings.TrimSpace(sessionID),
	); err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "forget session", err)
	}
	return nil
}

// Count reports how many items are stored for sessionID across all batches.
func (s *Store) Count(ctx context.Context, sessionID string) (int, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	var total int
	if err := s.sqlDB.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(item_count), 0) FROM loot_batches WHERE session_id = ?`,
		strings.TrimSpace(sessionID),
	).Scan(&total); err != nil {
		return 0, apperrors.Wrap(apperrors.CodeStorage, "count items", err)
	}
	return total, nil
}
