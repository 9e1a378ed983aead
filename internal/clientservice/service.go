// Package clientservice coordinates the JSON store and the session index
// for every roster, appointment, and calendar operation.
package clientservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/starford/therapynotes/internal/apperr"
	"github.com/starford/therapynotes/internal/index"
	"github.com/starford/therapynotes/internal/models"
	"github.com/starford/therapynotes/internal/store"
)

// Service is the application service behind the API and MCP surfaces.
type Service struct {
	store  *store.Store
	db     *index.DB
	logger *slog.Logger

	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

// NewService creates a new Service.
func NewService(st *store.Store, db *index.DB, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: st, db: db, logger: logger, now: time.Now}
}

// SetClock overrides the service clock. Intended for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// DuplicateClientIDError reports a clientId collision together with a
// generated suggestion the caller can offer instead.
type DuplicateClientIDError struct {
	ClientID  string
	Suggested string
}

func (e *DuplicateClientIDError) Error() string {
	return fmt.Sprintf("client id %s already in use (suggested: %s)", e.ClientID, e.Suggested)
}

// Unwrap ties the error to the apperr sentinel.
func (e *DuplicateClientIDError) Unwrap() error {
	return apperr.ErrDuplicateClientID
}

// Clients returns the active roster.
func (s *Service) Clients(_ context.Context) []models.Client {
	return s.store.Clients()
}

// GetClient returns one client by opaque id.
func (s *Service) GetClient(_ context.Context, id string) (*models.Client, error) {
	for _, c := range s.store.Clients() {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, apperr.ErrNotFound
}

// DeletedClients returns the tombstone list.
func (s *Service) DeletedClients(_ context.Context) []models.DeletedClient {
	return s.store.DeletedClients()
}

// CreateClient validates the input, ensures the clientId is unique across
// the roster and the tombstones, and appends the new client.
func (s *Service) CreateClient(_ context.Context, in ClientInput) (*models.Client, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.store.Lock()
	defer s.store.Unlock()

	clientID := in.ClientID
	if clientID == "" {
		clientID = s.store.GenerateClientID()
	} else if s.clientIDTaken(clientID, "") {
		return nil, &DuplicateClientIDError{ClientID: clientID, Suggested: s.store.GenerateClientID()}
	}

	status := in.Status
	if status == "" {
		status = models.StatusActive
	}

	c := models.Client{
		ID:                 s.store.NewID(),
		ClientID:           clientID,
		Name:               in.Name,
		Email:              in.Email,
		Phone:              in.Phone,
		Gender:             in.Gender,
		RelationshipStatus: in.RelationshipStatus,
		Age:                in.Age,
		Occupation:         in.Occupation,
		Status:             status,
		ChiefComplaints:    in.ChiefComplaints,
		HOPI:               in.HOPI,
		SessionHistory:     []models.SessionRecord{},
		CreatedAt:          s.now().UnixMilli(),
	}

	clients := append(s.store.Clients(), c)
	s.store.SaveClients(clients)
	s.reindex()
	return &c, nil
}

// UpdateClient replaces the profile fields of an existing client. The
// session history and creation time are untouched.
func (s *Service) UpdateClient(_ context.Context, id string, in ClientInput) (*models.Client, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.store.Lock()
	defer s.store.Unlock()

	clients := s.store.Clients()
	pos := clientPos(clients, id)
	if pos < 0 {
		return nil, apperr.ErrNotFound
	}

	if in.ClientID != "" && in.ClientID != clients[pos].ClientID && s.clientIDTaken(in.ClientID, id) {
		return nil, &DuplicateClientIDError{ClientID: in.ClientID, Suggested: s.store.GenerateClientID()}
	}

	c := &clients[pos]
	if in.ClientID != "" {
		c.ClientID = in.ClientID
	}
	c.Name = in.Name
	c.Email = in.Email
	c.Phone = in.Phone
	c.Gender = in.Gender
	c.RelationshipStatus = in.RelationshipStatus
	c.Age = in.Age
	c.Occupation = in.Occupation
	if in.Status != "" {
		c.Status = in.Status
	}
	c.ChiefComplaints = in.ChiefComplaints
	c.HOPI = in.HOPI

	s.store.SaveClients(clients)
	s.reindex()
	out := clients[pos]
	return &out, nil
}

// DeleteClient soft-deletes a client: a summary tombstone is appended to
// the deleted list and the client leaves the active roster. These are two
// independent writes with no atomicity guarantee; a crash in between can
// leave the client on both lists or neither. Accepted limitation of the
// single-user store.
func (s *Service) DeleteClient(_ context.Context, id string) error {
	s.store.Lock()
	defer s.store.Unlock()

	clients := s.store.Clients()
	pos := clientPos(clients, id)
	if pos < 0 {
		return apperr.ErrNotFound
	}
	c := clients[pos]

	deleted := append(s.store.DeletedClients(), c.Tombstone(s.now().UnixMilli()))
	s.store.SaveDeletedClients(deleted)

	s.store.SaveClients(append(clients[:pos], clients[pos+1:]...))

	if err := s.db.DeleteClient(id); err != nil {
		s.logger.Warn("deindex failed", slog.String("client", id), slog.String("error", err.Error()))
	}
	s.reindex()
	return nil
}

// PurgeDeletedClient removes a tombstone permanently.
func (s *Service) PurgeDeletedClient(_ context.Context, id string) error {
	s.store.Lock()
	defer s.store.Unlock()

	deleted := s.store.DeletedClients()
	for i, d := range deleted {
		if d.ID == id {
			s.store.SaveDeletedClients(append(deleted[:i], deleted[i+1:]...))
			return nil
		}
	}
	return apperr.ErrNotFound
}

// AdjustSessionCount shifts a client's session counter by delta, clamped
// at zero. Backs the hold-to-increment counter in the roster UI.
func (s *Service) AdjustSessionCount(_ context.Context, id string, delta int) (*models.Client, error) {
	s.store.Lock()
	defer s.store.Unlock()

	clients := s.store.Clients()
	pos := clientPos(clients, id)
	if pos < 0 {
		return nil, apperr.ErrNotFound
	}
	clients[pos].SessionCount += delta
	if clients[pos].SessionCount < 0 {
		clients[pos].SessionCount = 0
	}
	s.store.SaveClients(clients)
	s.reindex()
	out := clients[pos]
	return &out, nil
}

// clientIDTaken reports whether code is used by any active client (other
// than excludeID) or any tombstone.
func (s *Service) clientIDTaken(code, excludeID string) bool {
	for _, c := range s.store.Clients() {
		if c.ClientID == code && c.ID != excludeID {
			return true
		}
	}
	for _, d := range s.store.DeletedClients() {
		if d.ClientID == code {
			return true
		}
	}
	return false
}

// reindex brings the session index up to date with the stored clients.
func (s *Service) reindex() {
	if err := index.Sync(s.db, s.store.Provider(), s.logger); err != nil {
		s.logger.Warn("reindex failed", slog.String("error", err.Error()))
	}
}

func clientPos(clients []models.Client, id string) int {
	for i := range clients {
		if clients[i].ID == id {
			return i
		}
	}
	return -1
}

// Search runs a full-text query over indexed session notes.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}
