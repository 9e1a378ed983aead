package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/therapynotes/internal/clientservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
// dataRoot is used to resolve the avatars directory.
func NewRouter(svc *clientservice.Service, authEnabled bool, token string, sseHandler http.Handler, dataRoot string) chi.Router {
	h := NewHandler(svc)
	av := NewAvatarHandler(dataRoot, svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Roster CRUD and the soft-delete tombstones.
	r.Get("/clients", h.ListClients)
	r.Post("/clients", h.CreateClient)
	r.Get("/clients/deleted", h.ListDeletedClients)
	r.Delete("/clients/deleted/{id}", h.PurgeDeletedClient)
	r.Get("/clients/{id}", h.GetClient)
	r.Put("/clients/{id}", h.UpdateClient)
	r.Delete("/clients/{id}", h.DeleteClient)

	// Session history.
	r.Post("/clients/{id}/sessions", h.AddSession)
	r.Delete("/clients/{id}/sessions/{sessionID}", h.DeleteSession)
	r.Post("/clients/{id}/session-count", h.AdjustSessionCount)

	// Appointments.
	r.Get("/appointments", h.ListAppointments)
	r.Post("/appointments", h.CreateAppointment)
	r.Get("/appointments/upcoming", h.UpcomingAppointments)
	r.Delete("/appointments/{id}", h.DeleteAppointment)

	// Calendar and follow-ups.
	r.Get("/calendar/day", h.CalendarDay)
	r.Get("/calendar/{year}/{month}", h.CalendarMonth)
	r.Get("/followups", h.UpcomingFollowUps)

	// Earnings.
	r.Get("/earnings", h.ListEarnings)
	r.Post("/earnings", h.AddEarning)
	r.Delete("/earnings/{id}", h.DeleteEarning)

	// Account and preferences.
	r.Get("/profile", h.GetProfile)
	r.Put("/profile", h.SaveProfile)
	r.Post("/profile/avatar", av.Upload)
	r.Get("/settings", h.GetSettings)
	r.Put("/settings", h.SaveSettings)
	r.Get("/ui/sidebar", h.GetSidebar)
	r.Put("/ui/sidebar", h.SaveSidebar)

	// Registration-form strength meter.
	r.Post("/validate/password", h.CheckPassword)

	// Search and export.
	r.Get("/search", h.Search)
	r.Get("/export", h.Export)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
