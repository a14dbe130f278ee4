package prefs

import (
	"context"
	"testing"
)

func TestMemoryRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemory(map[string]string{ThemeKey: "dark"})

	value, ok, err := store.Get(ctx, ThemeKey)
	if err != nil || !ok || value != "dark" {
		t.Fatalf("Get(theme) = (%q, %v, %v), want (dark, true, nil)", value, ok, err)
	}
	if _, ok, _ := store.Get(ctx, LocaleKey); ok {
		t.Fatal("expected locale slot to be empty")
	}
	if err := store.Set(ctx, LocaleKey, "fi"); err != nil {
		t.Fatalf("Set(locale): %v", err)
	}
	if value, _, _ := store.Get(ctx, LocaleKey); value != "fi" {
		t.Fatalf("Get(locale) = %q, want fi", value)
	}
}

func TestMemoryZeroValueIsUsable(t *testing.T) {
	t.Parallel()

	var store Memory
	if err := store.Set(context.Background(), ThemeKey, "light"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if value, ok, _ := store.Get(context.Background(), ThemeKey); !ok || value != "light" {
		t.Fatalf("Get = (%q, %v), want (light, true)", value, ok)
	}
}
