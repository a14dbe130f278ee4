package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/portfolio/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/portfolio/internal/prefs"
	"github.com/louisbranch/portfolio/internal/prefs/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed persistence for visitor preferences.
type Store struct {
	sqlDB *sql.DB
}

// Open opens and migrates a preference SQLite store.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	if dir := filepath.Dir(filepath.Clean(path)); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetPreference loads one preference slot for a visitor.
func (s *Store) GetPreference(ctx context.Context, visitorID string, key string) (string, bool, error) {
	if s == nil || s.sqlDB == nil {
		return "", false, fmt.Errorf("storage is not configured")
	}
	visitorID, key, err := normalizeSlot(visitorID, key)
	if err != nil {
		return "", false, err
	}

	var value string
	err = s.sqlDB.QueryRowContext(
		ctx,
		`SELECT pref_value FROM visitor_preferences WHERE visitor_id = ? AND pref_key = ?`,
		visitorID,
		key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get preference: %w", err)
	}
	return value, true, nil
}

// PutPreference upserts one preference slot for a visitor.
func (s *Store) PutPreference(ctx context.Context, visitorID string, key string, value string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	visitorID, key, err := normalizeSlot(visitorID, key)
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO visitor_preferences (visitor_id, pref_key, pref_value, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(visitor_id, pref_key) DO UPDATE SET
		    pref_value = excluded.pref_value,
		    updated_at = excluded.updated_at`,
		visitorID,
		key,
		value,
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put preference: %w", err)
	}
	return nil
}

// Visitor returns a prefs.Store bound to visitorID.
func (s *Store) Visitor(visitorID string) prefs.Store {
	return visitorStore{store: s, visitorID: visitorID}
}

type visitorStore struct {
	store     *Store
	visitorID string
}

func (v visitorStore) Get(ctx context.Context, key string) (string, bool, error) {
	return v.store.GetPreference(ctx, v.visitorID, key)
}

func (v visitorStore) Set(ctx context.Context, key string, value string) error {
	return v.store.PutPreference(ctx, v.visitorID, key, value)
}

func normalizeSlot(visitorID string, key string) (string, string, error) {
	visitorID = strings.TrimSpace(visitorID)
	if visitorID == "" {
		return "", "", fmt.Errorf("visitor id is required")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", fmt.Errorf("preference key is required")
	}
	return visitorID, key, nil
}
