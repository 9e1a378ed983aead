package clientservice

import (
	"context"
	"sort"

	"github.com/starford/therapynotes/internal/apperr"
	"github.com/starford/therapynotes/internal/models"
)

// Appointments returns every stored appointment.
func (s *Service) Appointments(_ context.Context) []models.Appointment {
	return s.store.Appointments()
}

// CreateAppointment validates and stores a new appointment. A missing
// duration falls back to the default of 60 minutes.
func (s *Service) CreateAppointment(_ context.Context, in AppointmentInput) (*models.Appointment, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.store.Lock()
	defer s.store.Unlock()

	duration := in.Duration
	if duration <= 0 {
		duration = models.DefaultAppointmentDuration
	}

	a := models.Appointment{
		ID:         s.store.NewID(),
		ClientName: in.ClientName,
		ClientAge:  in.ClientAge,
		DateTime:   in.DateTime,
		Duration:   duration,
		Notes:      in.Notes,
	}
	s.store.SaveAppointments(append(s.store.Appointments(), a))
	return &a, nil
}

// DeleteAppointment removes an appointment by id.
func (s *Service) DeleteAppointment(_ context.Context, id string) error {
	s.store.Lock()
	defer s.store.Unlock()

	appointments := s.store.Appointments()
	for i, a := range appointments {
		if a.ID == id {
			s.store.SaveAppointments(append(appointments[:i], appointments[i+1:]...))
			return nil
		}
	}
	return apperr.ErrNotFound
}

// UpcomingAppointments returns appointments strictly after now, ascending.
func (s *Service) UpcomingAppointments(_ context.Context) []models.Appointment {
	nowMillis := s.now().UnixMilli()
	out := []models.Appointment{}
	for _, a := range s.store.Appointments() {
		if a.DateTime > nowMillis {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateTime < out[j].DateTime })
	return out
}
