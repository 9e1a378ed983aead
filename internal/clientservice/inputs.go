package clientservice

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/therapynotes/internal/models"
	"github.com/starford/therapynotes/internal/timeutil"
	"github.com/starford/therapynotes/internal/validate"
)

// emailShape adapts the form validator to an ozzo rule.
var emailShape = validation.By(func(v interface{}) error {
	s, _ := v.(string)
	if s == "" {
		return nil
	}
	if !validate.Email(s) {
		return validation.NewError("validation_email", "must be a valid email address")
	}
	return nil
})

// personName requires a trimmed length of at least two characters.
var personName = validation.By(func(v interface{}) error {
	s, _ := v.(string)
	if !validate.Name(s) {
		return validation.NewError("validation_name", "must be at least 2 characters")
	}
	return nil
})

// professionalID accepts an empty value or a plausible license code.
var professionalID = validation.By(func(v interface{}) error {
	s, _ := v.(string)
	if s == "" {
		return nil
	}
	if !validate.ProfessionalID(s) {
		return validation.NewError("validation_professional_id", "must be at least 3 characters")
	}
	return nil
})

// followUpDate accepts an empty value or a parseable follow-up date.
var followUpDate = validation.By(func(v interface{}) error {
	s, _ := v.(string)
	if s == "" {
		return nil
	}
	if _, _, err := timeutil.ParseFollowUp(s); err != nil {
		return validation.NewError("validation_followup", "must be YYYY-MM-DD with an optional time")
	}
	return nil
})

// ClientInput carries the editable profile fields of a client.
type ClientInput struct {
	ClientID           string `json:"clientId"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	Gender             string `json:"gender"`
	RelationshipStatus string `json:"relationshipStatus"`
	Age                int    `json:"age"`
	Occupation         string `json:"occupation"`
	Status             string `json:"status"`
	ChiefComplaints    string `json:"chiefComplaints"`
	HOPI               string `json:"hopi"`
}

// Validate checks the input field by field.
func (in ClientInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, personName),
		validation.Field(&in.Email, emailShape),
		validation.Field(&in.Age, validation.Min(0), validation.Max(150)),
		validation.Field(&in.Status, validation.In("", models.StatusActive, models.StatusCompleted)),
	)
}

// SessionInput carries a new session-history record.
type SessionInput struct {
	Date          string `json:"date"`
	Notes         string `json:"notes"`
	FollowUpDate  string `json:"followUpDate"`
	FollowUpNotes string `json:"followUpNotes"`
}

// Validate checks the session record fields.
func (in SessionInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Notes, validation.Required),
		validation.Field(&in.FollowUpDate, followUpDate),
	)
}

// AppointmentInput carries a new scheduled appointment.
type AppointmentInput struct {
	ClientName string `json:"clientName"`
	ClientAge  int    `json:"clientAge"`
	DateTime   int64  `json:"dateTime"`
	Duration   int    `json:"duration"`
	Notes      string `json:"notes"`
}

// Validate checks the appointment fields.
func (in AppointmentInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.ClientName, validation.Required, personName),
		validation.Field(&in.DateTime, validation.Required, validation.Min(1)),
		validation.Field(&in.Duration, validation.Min(0), validation.Max(24*60)),
		validation.Field(&in.ClientAge, validation.Min(0), validation.Max(150)),
	)
}

// EarningInput carries a new earning entry. Month is zero-based
// (0 = January) for compatibility with the stored document layout.
type EarningInput struct {
	Day    int     `json:"day"`
	Month  int     `json:"month"`
	Year   int     `json:"year"`
	Amount float64 `json:"amount"`
}

// Validate checks the earning fields.
func (in EarningInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Day, validation.Required, validation.Min(1), validation.Max(31)),
		validation.Field(&in.Month, validation.Min(0), validation.Max(11)),
		validation.Field(&in.Year, validation.Required, validation.Min(2000), validation.Max(2200)),
		validation.Field(&in.Amount, validation.Required, validation.Min(0.0)),
	)
}

// ProfileInput carries the practitioner account fields.
type ProfileInput struct {
	Email                string `json:"email"`
	Name                 string `json:"name"`
	ProfessionalID       string `json:"professionalId"`
	Avatar               string `json:"avatar"`
	NotificationsEnabled bool   `json:"notificationsEnabled"`
}

// Validate checks the profile fields.
func (in ProfileInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, emailShape),
		validation.Field(&in.Name, validation.Required, personName),
		validation.Field(&in.ProfessionalID, professionalID),
	)
}

// SettingsInput carries the UI preference bag.
type SettingsInput struct {
	ThemeMode       string `json:"themeMode"`
	Density         string `json:"density"`
	SidebarBehavior string `json:"sidebarBehavior"`
	Language        string `json:"language"`
	TimeFormat      string `json:"timeFormat"`
	AccentColor     string `json:"accentColor"`
	PracticeName    string `json:"practiceName"`
}

// Validate checks the preference enums.
func (in SettingsInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.ThemeMode, validation.Required, validation.In("light", "dark", "system")),
		validation.Field(&in.Density, validation.Required, validation.In("compact", "comfortable")),
		validation.Field(&in.SidebarBehavior, validation.Required, validation.In("expanded", "collapsed")),
		validation.Field(&in.Language, validation.Required, validation.In("en", "hi", "ta", "es", "fr")),
		validation.Field(&in.TimeFormat, validation.Required, validation.In(models.TimeFormat12h, models.TimeFormat24h)),
		validation.Field(&in.AccentColor, validation.Required),
		validation.Field(&in.PracticeName, validation.Required),
	)
}
