// Package models defines the domain types for Therapy Notes.
package models

// SessionRecord is a single dated entry in a client's session history.
// Records are appended by the UI and deleted individually; they are never
// edited in place except via full replacement of the client document.
type SessionRecord struct {
	ID            string `json:"id"`
	Date          string `json:"date"`
	Notes         string `json:"notes"`
	FollowUpDate  string `json:"followUpDate"`
	FollowUpNotes string `json:"followUpNotes"`
}

// Client statuses.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Client is the aggregate root of the practice roster.
//
// ID is an opaque identifier; ClientID is the human-readable sequential
// code (CL-001, CL-002, ...) and must be unique across active clients and
// deleted-client tombstones.
type Client struct {
	ID                 string          `json:"id"`
	ClientID           string          `json:"clientId"`
	Name               string          `json:"name"`
	Email              string          `json:"email"`
	Phone              string          `json:"phone"`
	Gender             string          `json:"gender"`
	RelationshipStatus string          `json:"relationshipStatus"`
	Age                int             `json:"age"`
	Occupation         string          `json:"occupation"`
	Status             string          `json:"status"`
	SessionCount       int             `json:"sessionCount"`
	ChiefComplaints    string          `json:"chiefComplaints"`
	HOPI               string          `json:"hopi"`
	SessionHistory     []SessionRecord `json:"sessionHistory"`
	CreatedAt          int64           `json:"createdAt"`
}

// DeletedClient is the tombstone kept when a client is removed from the
// active roster. It carries summary fields only; the clinical history is
// not retained.
type DeletedClient struct {
	ID        string `json:"id"`
	ClientID  string `json:"clientId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	DeletedAt int64  `json:"deletedAt"`
}

// Tombstone builds the deletion record for a client.
func (c Client) Tombstone(deletedAt int64) DeletedClient {
	return DeletedClient{
		ID:        c.ID,
		ClientID:  c.ClientID,
		Name:      c.Name,
		Email:     c.Email,
		DeletedAt: deletedAt,
	}
}

// DefaultAppointmentDuration is applied when an appointment is stored
// without an explicit duration, in minutes.
const DefaultAppointmentDuration = 60

// Appointment is a directly scheduled calendar event. It references a
// client by name string only; there is no foreign key to the roster.
type Appointment struct {
	ID         string `json:"id"`
	ClientName string `json:"clientName"`
	ClientAge  int    `json:"clientAge,omitempty"`
	DateTime   int64  `json:"dateTime"`
	Duration   int    `json:"duration,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// DurationMinutes returns the stored duration, or the default when unset.
func (a Appointment) DurationMinutes() int {
	if a.Duration <= 0 {
		return DefaultAppointmentDuration
	}
	return a.Duration
}

// Earning is a single recorded payment.
type Earning struct {
	ID        string  `json:"id"`
	Day       int     `json:"day"`
	Month     int     `json:"month"`
	Year      int     `json:"year"`
	Amount    float64 `json:"amount"`
	Timestamp int64   `json:"timestamp"`
}

// UserProfile is the practitioner's account singleton.
type UserProfile struct {
	ID                   string `json:"id,omitempty"`
	Email                string `json:"email"`
	Name                 string `json:"name"`
	ProfessionalID       string `json:"professionalId,omitempty"`
	RegisteredAt         string `json:"registeredAt,omitempty"`
	Avatar               string `json:"avatar,omitempty"`
	NotificationsEnabled bool   `json:"notificationsEnabled,omitempty"`
}

// Time display formats.
const (
	TimeFormat12h = "12h"
	TimeFormat24h = "24h"
)

// SiteSettings is the process-wide UI preference bag.
type SiteSettings struct {
	ThemeMode       string `json:"themeMode"`
	Density         string `json:"density"`
	SidebarBehavior string `json:"sidebarBehavior"`
	Language        string `json:"language"`
	TimeFormat      string `json:"timeFormat"`
	AccentColor     string `json:"accentColor"`
	PracticeName    string `json:"practiceName"`
}

// DefaultSiteSettings returns the fixed preference defaults used whenever
// the stored value is absent or unparsable.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		ThemeMode:       "system",
		Density:         "comfortable",
		SidebarBehavior: "expanded",
		Language:        "en",
		TimeFormat:      TimeFormat12h,
		AccentColor:     "#667eea",
		PracticeName:    "Therapy",
	}
}
