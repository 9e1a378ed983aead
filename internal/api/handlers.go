package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/starford/therapynotes/internal/clientservice"
	"github.com/starford/therapynotes/internal/validate"
)

// Handler holds API route handlers.
type Handler struct {
	svc *clientservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *clientservice.Service) *Handler {
	return &Handler{svc: svc}
}

// ListClients handles GET /api/clients.
//
//	@Summary		List the active client roster
//	@Tags			clients
//	@Produce		json
//	@Success		200	{object}	ClientListResponse
//	@Security		BearerAuth
//	@Router			/clients [get]
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients := h.svc.Clients(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"clients": clients,
		"total":   len(clients),
	})
}

// GetClient handles GET /api/clients/{id}.
//
//	@Summary		Get a single client by id
//	@Tags			clients
//	@Produce		json
//	@Param			id	path		string	true	"Client id"
//	@Success		200	{object}	models.Client
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/clients/{id} [get]
func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetClient(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// CreateClient handles POST /api/clients.
//
//	@Summary		Add a client to the roster
//	@Tags			clients
//	@Accept			json
//	@Produce		json
//	@Param			body	body		clientservice.ClientInput	true	"Client to create"
//	@Success		201		{object}	models.Client
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/clients [post]
func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var in clientservice.ClientInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	c, err := h.svc.CreateClient(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// UpdateClient handles PUT /api/clients/{id}.
func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var in clientservice.ClientInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	c, err := h.svc.UpdateClient(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// DeleteClient handles DELETE /api/clients/{id}. The client is soft
// deleted: a tombstone stays behind on the deleted list.
func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteClient(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListDeletedClients handles GET /api/clients/deleted.
func (h *Handler) ListDeletedClients(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"deleted": h.svc.DeletedClients(r.Context()),
	})
}

// PurgeDeletedClient handles DELETE /api/clients/deleted/{id}.
func (h *Handler) PurgeDeletedClient(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.PurgeDeletedClient(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddSession handles POST /api/clients/{id}/sessions.
//
//	@Summary		Append a session record to a client's history
//	@Tags			sessions
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Client id"
//	@Param			body	body		clientservice.SessionInput	true	"Session record"
//	@Success		201		{object}	models.Client
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/clients/{id}/sessions [post]
func (h *Handler) AddSession(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var in clientservice.SessionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	c, err := h.svc.AddSession(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// DeleteSession handles DELETE /api/clients/{id}/sessions/{sessionID}.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.DeleteSession(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// AdjustSessionCount handles POST /api/clients/{id}/session-count.
// The body carries a signed delta; the counter never drops below zero.
func (h *Handler) AdjustSessionCount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	c, err := h.svc.AdjustSessionCount(r.Context(), chi.URLParam(r, "id"), req.Delta)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Search handles GET /api/search.
//
//	@Summary		Full-text search across session notes
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results": results,
	})
}

// CalendarMonth handles GET /api/calendar/{year}/{month}.
//
//	@Summary		Month view-model: padded grid plus events bucketed by day
//	@Tags			calendar
//	@Produce		json
//	@Param			year	path		int	true	"Year"
//	@Param			month	path		int	true	"Month (1-12)"
//	@Success		200		{object}	clientservice.CalendarMonth
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/calendar/{year}/{month} [get]
func (h *Handler) CalendarMonth(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid year"))
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid month"))
		return
	}
	writeJSON(w, http.StatusOK, h.svc.CalendarMonth(r.Context(), year, time.Month(month)))
}

// CalendarDay handles GET /api/calendar/day?date=YYYY-MM-DD.
func (h *Handler) CalendarDay(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	day, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'date' must be YYYY-MM-DD"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":   raw,
		"events": h.svc.EventsOn(r.Context(), day),
	})
}

// CheckPassword handles POST /api/validate/password: the strength meter
// behind the registration form.
func (h *Handler) CheckPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"valid":    validate.Password(req.Password),
		"strength": validate.CheckStrength(req.Password),
	})
}

// UpcomingFollowUps handles GET /api/followups.
func (h *Handler) UpcomingFollowUps(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"followups": h.svc.UpcomingFollowUps(r.Context()),
	})
}
