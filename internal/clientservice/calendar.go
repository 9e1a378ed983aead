package clientservice

import (
	"context"
	"time"

	"github.com/starford/therapynotes/internal/calendar"
	"github.com/starford/therapynotes/internal/schedule"
)

// CalendarMonth is the month view-model handed to the rendering layer:
// the padded grid plus every event of the month bucketed by day key.
type CalendarMonth struct {
	Year   int                         `json:"year"`
	Month  int                         `json:"month"`
	Grid   []*string                   `json:"grid"`
	Events map[string][]calendar.Event `json:"events"`
}

// CalendarMonth builds the view-model for one month. The grid cells are
// ISO dates with nil padding; events cover the whole month so that
// navigation needs no further queries.
func (s *Service) CalendarMonth(_ context.Context, year int, month time.Month) *CalendarMonth {
	grid := calendar.MonthGrid(year, month)
	cells := make([]*string, len(grid))
	for i, day := range grid {
		if day != nil {
			iso := day.Format("2006-01-02")
			cells[i] = &iso
		}
	}

	idx := calendar.IndexByDay(calendar.Merge(s.store.Appointments(), s.store.Clients()))
	events := make(map[string][]calendar.Event)
	for key, day := range idx {
		if key.Year == year && key.Month == month {
			events[key.String()] = day
		}
	}

	return &CalendarMonth{
		Year:   year,
		Month:  int(month),
		Grid:   cells,
		Events: events,
	}
}

// EventsOn answers the day-selection query: all events on the local
// calendar date of t, ignoring time-of-day.
func (s *Service) EventsOn(_ context.Context, t time.Time) []calendar.Event {
	idx := calendar.IndexByDay(calendar.Merge(s.store.Appointments(), s.store.Clients()))
	return calendar.EventsOn(idx, t)
}

// UpcomingFollowUps returns strictly-future derived follow-ups, ascending.
func (s *Service) UpcomingFollowUps(_ context.Context) []schedule.FollowUp {
	return schedule.Upcoming(schedule.Derive(s.store.Clients()), s.now())
}
