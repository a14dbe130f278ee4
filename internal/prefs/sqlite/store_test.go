package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/louisbranch/portfolio/internal/prefs"
	_ "modernc.org/sqlite"
)

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected error")
	}
}

func TestOpenRunsMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")
	openStore(t, path)

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer func() {
		_ = sqlDB.Close()
	}()

	var name string
	if err := sqlDB.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'visitor_preferences'`).Scan(&name); err != nil {
		t.Fatalf("expected visitor_preferences table: %v", err)
	}
}

func TestPreferenceRoundTrip(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "prefs.db"))
	ctx := context.Background()

	if _, found, err := store.GetPreference(ctx, "v1", prefs.ThemeKey); err != nil || found {
		t.Fatalf("GetPreference before put = (found=%v, err=%v), want (false, nil)", found, err)
	}
	if err := store.PutPreference(ctx, "v1", prefs.ThemeKey, "dark"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.PutPreference(ctx, "v1", prefs.ThemeKey, "light"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, found, err := store.GetPreference(ctx, "v1", prefs.ThemeKey)
	if err != nil || !found || value != "light" {
		t.Fatalf("GetPreference = (%q, %v, %v), want (light, true, nil)", value, found, err)
	}
}

func TestVisitorStoresAreIsolated(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "prefs.db"))
	ctx := context.Background()

	alice := store.Visitor("alice")
	bob := store.Visitor("bob")
	if err := alice.Set(ctx, prefs.LocaleKey, "fi"); err != nil {
		t.Fatalf("alice set: %v", err)
	}
	if _, found, _ := bob.Get(ctx, prefs.LocaleKey); found {
		t.Fatal("bob must not see alice's locale")
	}
	if value, found, _ := alice.Get(ctx, prefs.LocaleKey); !found || value != "fi" {
		t.Fatalf("alice locale = (%q, %v), want (fi, true)", value, found)
	}
}

func TestPreferencesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")
	ctx := context.Background()

	first, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.Visitor("v1").Set(ctx, prefs.ThemeKey, "dark"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second := openStore(t, path)
	if value, found, _ := second.Visitor("v1").Get(ctx, prefs.ThemeKey); !found || value != "dark" {
		t.Fatalf("theme after reopen = (%q, %v), want (dark, true)", value, found)
	}
}

func TestPreferenceRequiresVisitorAndKey(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "prefs.db"))
	ctx := context.Background()

	if err := store.PutPreference(ctx, " ", prefs.ThemeKey, "dark"); err == nil {
		t.Fatal("expected error for blank visitor id")
	}
	if _, _, err := store.GetPreference(ctx, "v1", ""); err == nil {
		t.Fatal("expected error for blank key")
	}
}

func TestNilStoreReportsNotConfigured(t *testing.T) {
	var store *Store
	if _, _, err := store.GetPreference(context.Background(), "v1", prefs.ThemeKey); err == nil {
		t.Fatal("expected error from nil store")
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close on nil store = %v, want nil", err)
	}
}

func openStore(t *testing.T, path string) *Store {
	t.Helper()
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	})
	return store
}
