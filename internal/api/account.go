package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/therapynotes/internal/clientservice"
)

// ListAppointments handles GET /api/appointments.
func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"appointments": h.svc.Appointments(r.Context()),
	})
}

// CreateAppointment handles POST /api/appointments.
//
//	@Summary		Schedule an appointment
//	@Tags			appointments
//	@Accept			json
//	@Produce		json
//	@Param			body	body		clientservice.AppointmentInput	true	"Appointment"
//	@Success		201		{object}	models.Appointment
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/appointments [post]
func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var in clientservice.AppointmentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	a, err := h.svc.CreateAppointment(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// DeleteAppointment handles DELETE /api/appointments/{id}.
func (h *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteAppointment(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpcomingAppointments handles GET /api/appointments/upcoming.
func (h *Handler) UpcomingAppointments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"appointments": h.svc.UpcomingAppointments(r.Context()),
	})
}

// ListEarnings handles GET /api/earnings.
func (h *Handler) ListEarnings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"earnings": h.svc.Earnings(r.Context()),
	})
}

// AddEarning handles POST /api/earnings. Months are zero-based on the
// wire, matching the stored records.
func (h *Handler) AddEarning(w http.ResponseWriter, r *http.Request) {
	var in clientservice.EarningInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	e, err := h.svc.AddEarning(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// DeleteEarning handles DELETE /api/earnings/{id}.
func (h *Handler) DeleteEarning(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteEarning(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetProfile handles GET /api/profile. Returns 404 until an account has
// been registered.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Profile(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// SaveProfile handles PUT /api/profile.
func (h *Handler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var in clientservice.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	p, err := h.svc.SaveProfile(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// GetSettings handles GET /api/settings. Always succeeds; unset or
// unreadable settings come back as the defaults.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Settings(r.Context()))
}

// SaveSettings handles PUT /api/settings.
func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var in clientservice.SettingsInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	s, err := h.svc.SaveSettings(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// GetSidebar handles GET /api/ui/sidebar.
func (h *Handler) GetSidebar(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{
		"collapsed": h.svc.SidebarCollapsed(r.Context()),
	})
}

// SaveSidebar handles PUT /api/ui/sidebar.
func (h *Handler) SaveSidebar(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Collapsed bool `json:"collapsed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	h.svc.SaveSidebarCollapsed(r.Context(), req.Collapsed)
	writeJSON(w, http.StatusOK, map[string]bool{"collapsed": req.Collapsed})
}
