package clientservice

import (
	"context"

	"github.com/starford/therapynotes/internal/apperr"
	"github.com/starford/therapynotes/internal/models"
)

// AddSession appends a session record to a client's history and bumps the
// session counter.
func (s *Service) AddSession(_ context.Context, clientID string, in SessionInput) (*models.Client, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.store.Lock()
	defer s.store.Unlock()

	clients := s.store.Clients()
	pos := clientPos(clients, clientID)
	if pos < 0 {
		return nil, apperr.ErrNotFound
	}

	date := in.Date
	if date == "" {
		date = s.now().Format("2006-01-02")
	}

	rec := models.SessionRecord{
		ID:            s.store.NewID(),
		Date:          date,
		Notes:         in.Notes,
		FollowUpDate:  in.FollowUpDate,
		FollowUpNotes: in.FollowUpNotes,
	}
	clients[pos].SessionHistory = append(clients[pos].SessionHistory, rec)
	clients[pos].SessionCount++

	s.store.SaveClients(clients)
	s.reindex()
	out := clients[pos]
	return &out, nil
}

// DeleteSession removes one record from a client's history. The session
// counter is left alone; it tracks sessions held, not records kept.
func (s *Service) DeleteSession(_ context.Context, clientID, sessionID string) (*models.Client, error) {
	s.store.Lock()
	defer s.store.Unlock()

	clients := s.store.Clients()
	pos := clientPos(clients, clientID)
	if pos < 0 {
		return nil, apperr.ErrNotFound
	}

	history := clients[pos].SessionHistory
	found := -1
	for i, rec := range history {
		if rec.ID == sessionID {
			found = i
			break
		}
	}
	if found < 0 {
		return nil, apperr.ErrNotFound
	}
	clients[pos].SessionHistory = append(history[:found], history[found+1:]...)

	s.store.SaveClients(clients)
	s.reindex()
	out := clients[pos]
	return &out, nil
}
