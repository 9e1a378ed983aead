package index

import (
	"os"
	"testing"

	"github.com/starford/therapynotes/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "therapynotes-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := Open(dbFile.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleClient() models.Client {
	return models.Client{
		ID:       "c1",
		ClientID: "CL-001",
		Name:     "Asha Rao",
		SessionHistory: []models.SessionRecord{
			{ID: "s1", Date: "2025-02-01", Notes: "intake, reported poor sleep"},
			{ID: "s2", Date: "2025-02-15", Notes: "breathing exercises", FollowUpNotes: "review sleep diary"},
		},
	}
}

func TestReplaceClientSessions(t *testing.T) {
	db := testDB(t)
	c := sampleClient()

	if err := db.ReplaceClientSessions(c.ID, RowsFor(c)); err != nil {
		t.Fatalf("ReplaceClientSessions: %v", err)
	}
	n, err := db.SessionCount()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}

	// Replacing with fewer rows drops the stale ones.
	c.SessionHistory = c.SessionHistory[:1]
	if err := db.ReplaceClientSessions(c.ID, RowsFor(c)); err != nil {
		t.Fatalf("second replace: %v", err)
	}
	if n, _ = db.SessionCount(); n != 1 {
		t.Errorf("count after shrink = %d, want 1", n)
	}
}

func TestDeleteClient(t *testing.T) {
	db := testDB(t)
	c := sampleClient()
	_ = db.ReplaceClientSessions(c.ID, RowsFor(c))

	if err := db.DeleteClient(c.ID); err != nil {
		t.Fatalf("DeleteClient: %v", err)
	}
	if n, _ := db.SessionCount(); n != 0 {
		t.Errorf("count = %d, want 0", n)
	}
}

func TestSearchFindsNotes(t *testing.T) {
	db := testDB(t)
	c := sampleClient()
	_ = db.ReplaceClientSessions(c.ID, RowsFor(c))

	hits, err := db.Search("sleep", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("hits = %d, want 2", len(hits))
	}
	for _, h := range hits {
		if h.ClientID != "c1" || h.ClientCode != "CL-001" || h.ClientName != "Asha Rao" {
			t.Errorf("hit fields = %+v", h)
		}
	}

	none, err := db.Search("unicorn", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("unexpected hits: %+v", none)
	}
}

func TestMetaRoundTrip(t *testing.T) {
	db := testDB(t)
	if v, err := db.Meta("clients_checksum"); err != nil || v != "" {
		t.Fatalf("empty meta = %q, %v", v, err)
	}
	if err := db.SetMeta("clients_checksum", "abc"); err != nil {
		t.Fatal(err)
	}
	if err := db.SetMeta("clients_checksum", "def"); err != nil {
		t.Fatal(err)
	}
	if v, _ := db.Meta("clients_checksum"); v != "def" {
		t.Errorf("meta = %q, want def", v)
	}
}
