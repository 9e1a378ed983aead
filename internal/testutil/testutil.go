// Package testutil provides shared test helpers for setting up data
// directories and session indexes.
package testutil

import (
	"os"
	"testing"

	"github.com/starford/therapynotes/internal/index"
	"github.com/starford/therapynotes/internal/storage"
)

// TestDB creates a temporary SQLite index that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "therapynotes-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestData creates a temporary data directory with a storage.FS provider.
func TestData(t *testing.T) (string, *storage.FS) {
	t.Helper()
	dataDir := t.TempDir()
	fs, err := storage.NewFS(dataDir)
	if err != nil {
		t.Fatal(err)
	}
	return dataDir, fs
}
