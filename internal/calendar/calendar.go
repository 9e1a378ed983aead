// Package calendar implements the month-grid view-model: building the
// visible grid, merging appointments with derived follow-ups, and
// bucketing events by calendar day.
//
// Everything here is pure; callers pass in the collections and keep the
// results for the render cycle.
package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/starford/therapynotes/internal/models"
	"github.com/starford/therapynotes/internal/schedule"
)

// EventType discriminates the two event sources.
type EventType string

const (
	TypeAppointment EventType = "appointment"
	TypeFollowUp    EventType = "followup"
)

// Event is a displayed calendar entry projected from either source.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	ClientName string    `json:"clientName"`
	ClientID   string    `json:"clientId,omitempty"`
	ClientAge  int       `json:"clientAge,omitempty"`
	Start      time.Time `json:"start"`
	Duration   int       `json:"duration,omitempty"`
	Notes      string    `json:"notes,omitempty"`
}

// DayKey identifies a calendar day irrespective of time-of-day.
type DayKey struct {
	Year  int
	Month time.Month
	Day   int
}

// KeyFor returns the day key of t in its own location.
func KeyFor(t time.Time) DayKey {
	return DayKey{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// String renders the key as "year-month-day".
func (k DayKey) String() string {
	return fmt.Sprintf("%d-%d-%d", k.Year, int(k.Month), k.Day)
}

// MonthGrid returns the flattened 7-column grid for the given month.
// Leading cells before day 1 (week starts on Sunday) and trailing cells
// after the last day are nil padding, not neighboring-month dates. The
// result length is always a multiple of 7.
func MonthGrid(year int, month time.Month) []*time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)

	days := make([]*time.Time, 0, 42)
	for i := 0; i < int(first.Weekday()); i++ {
		days = append(days, nil)
	}
	for d := 1; d <= last.Day(); d++ {
		day := time.Date(year, month, d, 0, 0, 0, 0, time.Local)
		days = append(days, &day)
	}
	for len(days)%7 != 0 {
		days = append(days, nil)
	}
	return days
}

// Merge projects both event sources into one list: appointments map 1:1,
// and every session record with a follow-up date becomes a followup event
// (time-of-day defaulted by the derivation). The result is a plain
// concatenation; an appointment and a follow-up for the same name on the
// same day stay two distinct events.
func Merge(appointments []models.Appointment, clients []models.Client) []Event {
	events := make([]Event, 0, len(appointments))

	for _, a := range appointments {
		events = append(events, Event{
			ID:         a.ID,
			Type:       TypeAppointment,
			ClientName: a.ClientName,
			ClientAge:  a.ClientAge,
			Start:      time.UnixMilli(a.DateTime),
			Duration:   a.DurationMinutes(),
			Notes:      a.Notes,
		})
	}

	for _, f := range schedule.Derive(clients) {
		events = append(events, Event{
			ID:         f.SessionID,
			Type:       TypeFollowUp,
			ClientName: f.ClientName,
			ClientID:   f.ClientCode,
			ClientAge:  f.ClientAge,
			Start:      f.At,
			Notes:      f.Notes,
		})
	}

	return events
}

// IndexByDay buckets events by calendar day, each bucket ascending by
// start time.
func IndexByDay(events []Event) map[DayKey][]Event {
	idx := make(map[DayKey][]Event)
	for _, e := range events {
		k := KeyFor(e.Start)
		idx[k] = append(idx[k], e)
	}
	for k := range idx {
		day := idx[k]
		sort.Slice(day, func(i, j int) bool { return day[i].Start.Before(day[j].Start) })
		idx[k] = day
	}
	return idx
}

// EventsOn returns the events whose local calendar date matches t,
// ignoring time-of-day. A day with no events yields an empty slice.
func EventsOn(idx map[DayKey][]Event, t time.Time) []Event {
	if day, ok := idx[KeyFor(t)]; ok {
		return day
	}
	return []Event{}
}
