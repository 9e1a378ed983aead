package api

import (
	"github.com/starford/therapynotes/internal/index"
	"github.com/starford/therapynotes/internal/models"
	"github.com/starford/therapynotes/internal/schedule"
)

// ClientListResponse wraps the active roster.
type ClientListResponse struct {
	Clients []models.Client `json:"clients"`
	Total   int             `json:"total"`
}

// DeletedClientListResponse wraps the tombstone list.
type DeletedClientListResponse struct {
	Deleted []models.DeletedClient `json:"deleted"`
}

// SearchResult is a single session-notes hit (aliased from the index layer).
type SearchResult = index.SearchResult

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

// AppointmentListResponse wraps appointment listings.
type AppointmentListResponse struct {
	Appointments []models.Appointment `json:"appointments"`
}

// FollowUpListResponse wraps upcoming follow-ups.
type FollowUpListResponse struct {
	FollowUps []schedule.FollowUp `json:"followups"`
}

// EarningListResponse wraps the earnings ledger.
type EarningListResponse struct {
	Earnings []models.Earning `json:"earnings"`
}

// SessionCountRequest is the body for the session counter endpoint.
type SessionCountRequest struct {
	Delta int `json:"delta"`
}

// SidebarState is the persisted sidebar flag.
type SidebarState struct {
	Collapsed bool `json:"collapsed"`
}
