package store

import (
	"testing"

	"github.com/starford/therapynotes/internal/models"
)

func TestGenerateClientIDEmptyStore(t *testing.T) {
	s, _ := testStore(t)
	if got := s.GenerateClientID(); got != "CL-001" {
		t.Errorf("GenerateClientID = %q, want CL-001", got)
	}
}

func TestGenerateClientIDMaxPlusOne(t *testing.T) {
	s, _ := testStore(t)
	s.SaveClients([]models.Client{
		{ID: "a", ClientID: "CL-001"},
		{ID: "b", ClientID: "CL-003"},
	})

	// Max-plus-one, not gap-filling: CL-002 stays unused.
	if got := s.GenerateClientID(); got != "CL-004" {
		t.Errorf("GenerateClientID = %q, want CL-004", got)
	}
}

func TestGenerateClientIDCountsTombstones(t *testing.T) {
	s, _ := testStore(t)
	s.SaveClients([]models.Client{{ID: "a", ClientID: "CL-002"}})
	s.SaveDeletedClients([]models.DeletedClient{{ID: "b", ClientID: "CL-007"}})

	if got := s.GenerateClientID(); got != "CL-008" {
		t.Errorf("GenerateClientID = %q, want CL-008", got)
	}
}

func TestGenerateClientIDToleratesMalformed(t *testing.T) {
	s, _ := testStore(t)
	s.SaveClients([]models.Client{
		{ID: "a", ClientID: "garbage"},
		{ID: "b", ClientID: "CL-009"},
	})

	if got := s.GenerateClientID(); got != "CL-010" {
		t.Errorf("GenerateClientID = %q, want CL-010", got)
	}
}

func TestGenerateClientIDGrowsPastThreeDigits(t *testing.T) {
	s, _ := testStore(t)
	s.SaveClients([]models.Client{{ID: "a", ClientID: "CL-999"}})

	if got := s.GenerateClientID(); got != "CL-1000" {
		t.Errorf("GenerateClientID = %q, want CL-1000", got)
	}
}
