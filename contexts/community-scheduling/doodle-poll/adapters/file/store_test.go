package fileadapter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	domainerrors "doodle/contexts/community-scheduling/doodle-poll/domain/errors"
)

func TestStorePutGet(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewStore(filepath.Join(dir, "meta"), nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if _, found, err := store.Get(ctx, "team_lunch"); err != nil || found {
		t.Fatalf("expected missing blob, found=%v err=%v", found, err)
	}
	if err := store.Put(ctx, "team_lunch", []byte("v1")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put(ctx, "team_lunch", []byte("v2")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	blob, found, err := store.Get(ctx, "team_lunch")
	if err != nil || !found || string(blob) != "v2" {
		t.Fatalf("unexpected get result %q found=%v err=%v", blob, found, err)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "meta"))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "team_lunch"+Extension {
		t.Fatalf("expected a single vote set file, got %v", entries)
	}
}

func TestStoreRejectsUnsafeKeys(t *testing.T) {
	store, err := NewStore(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	for _, key := range []string{"", "..", "a/b", `a\b`} {
		if err := store.Put(context.Background(), key, []byte("x")); !errors.Is(err, domainerrors.ErrStorage) {
			t.Fatalf("key %q: expected ErrStorage, got %v", key, err)
		}
	}
}

func TestStoreHonoursCancelledContext(t *testing.T) {
	store, err := NewStore(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := store.Put(ctx, "retro", []byte("x")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNewStoreRequiresDir(t *testing.T) {
	if _, err := NewStore(" ", nil); err == nil {
		t.Fatalf("expected error for blank dir")
	}
}
