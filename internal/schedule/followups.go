// Package schedule derives follow-up items from client session history.
package schedule

import (
	"sort"
	"time"

	"github.com/starford/therapynotes/internal/models"
	"github.com/starford/therapynotes/internal/timeutil"
)

// FollowUp is one derived follow-up item: a session record that carries a
// follow-up date, enriched with the owning client's identity.
type FollowUp struct {
	SessionID  string    `json:"sessionId"`
	ClientID   string    `json:"clientId"`
	ClientCode string    `json:"clientCode"`
	ClientName string    `json:"clientName"`
	ClientAge  int       `json:"clientAge,omitempty"`
	At         time.Time `json:"at"`
	Notes      string    `json:"notes,omitempty"`
}

// Derive returns one item per session record with a non-empty follow-up
// date, across every client, ascending by resolved time. Records whose
// date cannot be parsed are skipped rather than failing the whole
// derivation.
func Derive(clients []models.Client) []FollowUp {
	items := []FollowUp{}
	for _, c := range clients {
		for _, rec := range c.SessionHistory {
			if rec.FollowUpDate == "" {
				continue
			}
			at, err := timeutil.ResolveFollowUp(rec.FollowUpDate)
			if err != nil {
				continue
			}
			items = append(items, FollowUp{
				SessionID:  rec.ID,
				ClientID:   c.ID,
				ClientCode: c.ClientID,
				ClientName: c.Name,
				ClientAge:  c.Age,
				At:         at,
				Notes:      rec.FollowUpNotes,
			})
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].At.Before(items[j].At) })
	return items
}

// Upcoming keeps only items strictly after now. Past follow-ups stay
// visible inside the originating client's history but are never
// resurfaced as upcoming.
func Upcoming(items []FollowUp, now time.Time) []FollowUp {
	out := []FollowUp{}
	for _, it := range items {
		if it.At.After(now) {
			out = append(out, it)
		}
	}
	return out
}
