package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/therapynotes/internal/apperr"
)

func tempStore(t *testing.T) *FS {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestPutAndGet(t *testing.T) {
	s := tempStore(t)
	content := []byte(`[{"id":"a"}]`)
	if err := s.Put("therapyClients", content); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := s.Get("therapyClients")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestGetMissingKey(t *testing.T) {
	s := tempStore(t)
	_, err := s.Get("noSuchKey")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	s := tempStore(t)
	_ = s.Put("userData", []byte(`{}`))
	if err := s.Delete("userData"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get("userData"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDeleteMissingKeyIsNoop(t *testing.T) {
	s := tempStore(t)
	if err := s.Delete("neverExisted"); err != nil {
		t.Errorf("Delete on missing key: %v", err)
	}
}

func TestInvalidKeysRejected(t *testing.T) {
	s := tempStore(t)
	for _, key := range []string{"", "a/b", `a\b`, "..", "."} {
		if err := s.Put(key, []byte("x")); err == nil {
			t.Errorf("Put(%q) should fail", key)
		}
		if _, err := s.Get(key); err == nil {
			t.Errorf("Get(%q) should fail", key)
		}
	}
}

func TestKeysListsOnlyJSONFiles(t *testing.T) {
	s := tempStore(t)
	_ = s.Put("therapyClients", []byte("[]"))
	_ = s.Put("siteSettings", []byte("{}"))
	// Stray non-JSON file should be ignored.
	if err := os.WriteFile(filepath.Join(s.Root(), "README.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	keys, err := s.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("keys = %v, want 2 entries", keys)
	}
}

func TestPutOverwrites(t *testing.T) {
	s := tempStore(t)
	_ = s.Put("siteSettings", []byte(`{"v":1}`))
	_ = s.Put("siteSettings", []byte(`{"v":2}`))
	got, err := s.Get("siteSettings")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `{"v":2}` {
		t.Errorf("got %q after overwrite", got)
	}
}

func TestKeyFromFile(t *testing.T) {
	if k, ok := KeyFromFile("/data/therapyClients.json"); !ok || k != "therapyClients" {
		t.Errorf("KeyFromFile = %q, %v", k, ok)
	}
	if _, ok := KeyFromFile("/data/.therapynotes-tmp-123"); ok {
		t.Error("temp files should not map to keys")
	}
	if _, ok := KeyFromFile("/data/notes.txt"); ok {
		t.Error("non-json files should not map to keys")
	}
}
