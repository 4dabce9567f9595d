package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hammamikhairi/barmate/internal/domain"
)

func TestFileStoreRoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	roundTrip(t, NewAdapter(s, DriverFile, "", testLogger()))

	if _, err := os.Stat(filepath.Join(s.Root(), "barmate.recipes.json")); err != nil {
		t.Fatalf("expected recipes document on disk: %v", err)
	}
}

func TestFileStoreMissingAndDelete(t *testing.T) {
	ctx := context.Background()
	s, _ := NewFileStore(t.TempDir())

	if _, err := s.Get(ctx, "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Put(ctx, "k", []byte("1")); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, _ := NewFileStore(dir)

	for i := 0; i < 3; i++ {
		if err := s.Put(ctx, "doc", []byte("[]")); err != nil {
			t.Fatal(err)
		}
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 || entries[0].Name() != "doc.json" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("unexpected dir contents: %v", names)
	}
}

func TestSanitizeKey(t *testing.T) {
	bad := []string{"", "  ", "../escape", "a/../../b", "/etc/passwd"}
	for _, k := range bad {
		if _, err := sanitizeKey(k); err == nil {
			t.Errorf("sanitizeKey(%q) accepted", k)
		}
	}
	if got, err := sanitizeKey("barmate.ingredients"); err != nil || got != "barmate.ingredients" {
		t.Fatalf("sanitizeKey = %q, %v", got, err)
	}
}
