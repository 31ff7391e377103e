package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func newTempStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}
	return s, path
}

func TestFileStore_LoadMissingFile(t *testing.T) {
	s, _ := newTempStore(t)

	token, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if token != "" {
		t.Fatalf("expected empty token, got %q", token)
	}
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	s, path := newTempStore(t)

	if err := s.Save(context.Background(), "tok123"); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	token, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if token != "tok123" {
		t.Fatalf("expected tok123, got %q", token)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat token file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected 0600 permissions, got %o", perm)
	}
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	s, path := newTempStore(t)
	if err := s.Save(context.Background(), "persisted"); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}
	token, err := reopened.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if token != "persisted" {
		t.Fatalf("expected persisted token after reopen, got %q", token)
	}
}

func TestFileStore_Clear(t *testing.T) {
	s, path := newTempStore(t)
	if err := s.Save(context.Background(), "tok"); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if err := s.Clear(context.Background()); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected token file removed, stat err: %v", err)
	}

	// Clearing an already-empty store is not an error.
	if err := s.Clear(context.Background()); err != nil {
		t.Fatalf("repeated Clear returned error: %v", err)
	}

	token, err := s.Load(context.Background())
	if err != nil || token != "" {
		t.Fatalf("expected empty store after clear, got %q err %v", token, err)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	s, path := newTempStore(t)
	if err := os.WriteFile(path, []byte("not json"), 0o600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	if _, err := s.Load(context.Background()); err == nil {
		t.Fatal("expected error for corrupt token file")
	}
}
