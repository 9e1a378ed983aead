package clientservice

import (
	"context"
	"sort"
	"time"

	"github.com/starford/therapynotes/internal/apperr"
	"github.com/starford/therapynotes/internal/models"
)

// Earnings returns every recorded earning, newest first.
func (s *Service) Earnings(_ context.Context) []models.Earning {
	earnings := s.store.Earnings()
	sort.Slice(earnings, func(i, j int) bool { return earnings[i].Timestamp > earnings[j].Timestamp })
	return earnings
}

// AddEarning validates and records a payment.
func (s *Service) AddEarning(_ context.Context, in EarningInput) (*models.Earning, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.store.Lock()
	defer s.store.Unlock()

	e := models.Earning{
		ID:        s.store.NewID(),
		Day:       in.Day,
		Month:     in.Month,
		Year:      in.Year,
		Amount:    in.Amount,
		Timestamp: s.now().UnixMilli(),
	}
	s.store.SaveEarnings(append(s.store.Earnings(), e))
	return &e, nil
}

// DeleteEarning removes an earning by id.
func (s *Service) DeleteEarning(_ context.Context, id string) error {
	s.store.Lock()
	defer s.store.Unlock()

	earnings := s.store.Earnings()
	for i, e := range earnings {
		if e.ID == id {
			s.store.SaveEarnings(append(earnings[:i], earnings[i+1:]...))
			return nil
		}
	}
	return apperr.ErrNotFound
}

// Profile returns the stored practitioner profile, or ErrNotFound when
// no account has been registered yet.
func (s *Service) Profile(_ context.Context) (*models.UserProfile, error) {
	p := s.store.UserProfile()
	if p == nil {
		return nil, apperr.ErrNotFound
	}
	return p, nil
}

// SaveProfile validates and stores the profile singleton. The first save
// stamps the registration time; later saves keep it.
func (s *Service) SaveProfile(_ context.Context, in ProfileInput) (*models.UserProfile, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.store.Lock()
	defer s.store.Unlock()

	p := models.UserProfile{
		Email:                in.Email,
		Name:                 in.Name,
		ProfessionalID:       in.ProfessionalID,
		Avatar:               in.Avatar,
		NotificationsEnabled: in.NotificationsEnabled,
	}
	if existing := s.store.UserProfile(); existing != nil {
		p.ID = existing.ID
		p.RegisteredAt = existing.RegisteredAt
		if p.Avatar == "" {
			p.Avatar = existing.Avatar
		}
	}
	if p.ID == "" {
		p.ID = s.store.NewID()
	}
	if p.RegisteredAt == "" {
		p.RegisteredAt = s.now().Format(time.RFC3339)
	}

	s.store.SaveUserProfile(p)
	return &p, nil
}

// SetAvatar stores the avatar reference on the profile.
func (s *Service) SetAvatar(_ context.Context, avatarURL string) (*models.UserProfile, error) {
	s.store.Lock()
	defer s.store.Unlock()

	p := s.store.UserProfile()
	if p == nil {
		return nil, apperr.ErrNotFound
	}
	p.Avatar = avatarURL
	s.store.SaveUserProfile(*p)
	return p, nil
}

// SidebarCollapsed returns the persisted sidebar state.
func (s *Service) SidebarCollapsed(_ context.Context) bool {
	return s.store.SidebarCollapsed()
}

// SaveSidebarCollapsed persists the sidebar state.
func (s *Service) SaveSidebarCollapsed(_ context.Context, collapsed bool) {
	s.store.Lock()
	defer s.store.Unlock()
	s.store.SaveSidebarCollapsed(collapsed)
}

// Settings returns the preference bag, defaulted when unset.
func (s *Service) Settings(_ context.Context) models.SiteSettings {
	return s.store.SiteSettings()
}

// SaveSettings validates and stores the preference bag.
func (s *Service) SaveSettings(_ context.Context, in SettingsInput) (*models.SiteSettings, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.store.Lock()
	defer s.store.Unlock()

	settings := models.SiteSettings{
		ThemeMode:       in.ThemeMode,
		Density:         in.Density,
		SidebarBehavior: in.SidebarBehavior,
		Language:        in.Language,
		TimeFormat:      in.TimeFormat,
		AccentColor:     in.AccentColor,
		PracticeName:    in.PracticeName,
	}
	s.store.SaveSiteSettings(settings)
	return &settings, nil
}
