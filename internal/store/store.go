// Package store provides typed accessors over the named JSON collections.
//
// Reads never fail: a missing key yields the collection's default and a
// corrupt document is discarded (with a warning) rather than crashing the
// caller. Writes log failures and return nothing; the caller keeps
// operating on its in-memory value for that cycle. There is no
// transactionality across collections: moving a client to the deleted list
// is two independent writes, and a crash between them leaves a consistent
// enough but duplicated (or dropped) record. Accepted limitation for a
// single-user local tool.
package store

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/starford/therapynotes/internal/apperr"
	"github.com/starford/therapynotes/internal/models"
	"github.com/starford/therapynotes/internal/storage"
)

// Collection keys. The names match the legacy browser-storage layout so
// exported data imports unchanged.
const (
	KeyClients          = "therapyClients"
	KeyDeletedClients   = "therapyDeletedClients"
	KeyAppointments     = "therapyAppointments"
	KeyEarnings         = "therapyEarnings"
	KeyUserProfile      = "userData"
	KeySiteSettings     = "siteSettings"
	KeySidebarCollapsed = "sidebarCollapsed"
)

// CollectionKeys lists every key the store owns.
var CollectionKeys = []string{
	KeyClients,
	KeyDeletedClients,
	KeyAppointments,
	KeyEarnings,
	KeyUserProfile,
	KeySiteSettings,
	KeySidebarCollapsed,
}

// Store wraps a storage.Provider with typed per-collection accessors.
type Store struct {
	p      storage.Provider
	logger *slog.Logger

	// mu serializes read-modify-write cycles from API handlers; the
	// collections have no finer-grained concurrency model.
	mu sync.Mutex
}

// New creates a Store over the given provider.
func New(p storage.Provider, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{p: p, logger: logger}
}

// Provider exposes the underlying key-value provider for components that
// need raw document access (index sync, change watcher).
func (s *Store) Provider() storage.Provider {
	return s.p
}

// Lock acquires the store's mutation lock.
func (s *Store) Lock() { s.mu.Lock() }

// Unlock releases the store's mutation lock.
func (s *Store) Unlock() { s.mu.Unlock() }

// NewID returns a fresh opaque entity identifier.
func (s *Store) NewID() string {
	return ulid.Make().String()
}

// get reads and decodes key into out. It returns false when the caller
// should fall back to the default value: the key is missing, unreadable,
// or holds corrupt JSON. Corrupt documents are deleted so the next read
// starts clean.
func (s *Store) get(key string, out any) bool {
	raw, err := s.p.Get(key)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			s.logger.Warn("store: read failed",
				slog.String("key", key),
				slog.String("error", err.Error()))
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.logger.Warn("store: corrupt JSON, resetting key",
			slog.String("key", key),
			slog.String("error", err.Error()))
		if delErr := s.p.Delete(key); delErr != nil {
			s.logger.Warn("store: reset failed",
				slog.String("key", key),
				slog.String("error", delErr.Error()))
		}
		return false
	}
	return true
}

// save encodes v and writes it under key. Write failures are logged,
// never surfaced.
func (s *Store) save(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn("store: encode failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return
	}
	if err := s.p.Put(key, raw); err != nil {
		s.logger.Warn("store: write failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}

// getList decodes a JSON array collection, defaulting to empty.
func getList[T any](s *Store, key string) []T {
	var items []T
	if !s.get(key, &items) || items == nil {
		return []T{}
	}
	return items
}

// Clients returns the active roster.
func (s *Store) Clients() []models.Client {
	return getList[models.Client](s, KeyClients)
}

// SaveClients replaces the active roster.
func (s *Store) SaveClients(clients []models.Client) {
	s.save(KeyClients, clients)
}

// DeletedClients returns the tombstone list.
func (s *Store) DeletedClients() []models.DeletedClient {
	return getList[models.DeletedClient](s, KeyDeletedClients)
}

// SaveDeletedClients replaces the tombstone list.
func (s *Store) SaveDeletedClients(deleted []models.DeletedClient) {
	s.save(KeyDeletedClients, deleted)
}

// Appointments returns every scheduled appointment.
func (s *Store) Appointments() []models.Appointment {
	return getList[models.Appointment](s, KeyAppointments)
}

// SaveAppointments replaces the appointment list.
func (s *Store) SaveAppointments(appointments []models.Appointment) {
	s.save(KeyAppointments, appointments)
}

// Earnings returns every recorded earning.
func (s *Store) Earnings() []models.Earning {
	return getList[models.Earning](s, KeyEarnings)
}

// SaveEarnings replaces the earnings list.
func (s *Store) SaveEarnings(earnings []models.Earning) {
	s.save(KeyEarnings, earnings)
}

// UserProfile returns the stored profile singleton, or nil when no
// account has been registered.
func (s *Store) UserProfile() *models.UserProfile {
	var p models.UserProfile
	if !s.get(KeyUserProfile, &p) {
		return nil
	}
	return &p
}

// SaveUserProfile replaces the profile singleton.
func (s *Store) SaveUserProfile(p models.UserProfile) {
	s.save(KeyUserProfile, p)
}

// SiteSettings returns the stored preferences, falling back to the fixed
// defaults when absent or unparsable.
func (s *Store) SiteSettings() models.SiteSettings {
	settings := models.DefaultSiteSettings()
	if !s.get(KeySiteSettings, &settings) {
		return models.DefaultSiteSettings()
	}
	return settings
}

// SaveSiteSettings replaces the preference singleton.
func (s *Store) SaveSiteSettings(settings models.SiteSettings) {
	s.save(KeySiteSettings, settings)
}

// SidebarCollapsed returns the persisted sidebar flag, default false.
func (s *Store) SidebarCollapsed() bool {
	var collapsed bool
	if !s.get(KeySidebarCollapsed, &collapsed) {
		return false
	}
	return collapsed
}

// SaveSidebarCollapsed persists the sidebar flag.
func (s *Store) SaveSidebarCollapsed(collapsed bool) {
	s.save(KeySidebarCollapsed, collapsed)
}
