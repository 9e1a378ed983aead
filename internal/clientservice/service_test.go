package clientservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/starford/therapynotes/internal/apperr"
	"github.com/starford/therapynotes/internal/index"
	"github.com/starford/therapynotes/internal/models"
	"github.com/starford/therapynotes/internal/storage"
	"github.com/starford/therapynotes/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dir := t.TempDir()

	dataDir := filepath.Join(dir, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatal(err)
	}
	fs, err := storage.NewFS(dataDir)
	if err != nil {
		t.Fatal(err)
	}
	db, err := index.Open(filepath.Join(dir, "index.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewService(store.New(fs, logger), db, logger)
}

func validClient(name string) ClientInput {
	return ClientInput{Name: name, Email: "someone@example.com", Age: 30}
}

func TestCreateClientGeneratesID(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	c, err := svc.CreateClient(ctx, validClient("Maya Lind"))
	if err != nil {
		t.Fatalf("CreateClient: %v", err)
	}
	if c.ClientID != "CL-001" {
		t.Errorf("ClientID = %q, want CL-001", c.ClientID)
	}
	if c.Status != models.StatusActive {
		t.Errorf("Status = %q, want active", c.Status)
	}
	if c.SessionHistory == nil {
		t.Error("SessionHistory should be an empty slice, not nil")
	}
	if c.CreatedAt == 0 {
		t.Error("CreatedAt not stamped")
	}

	second, err := svc.CreateClient(ctx, validClient("Oren Falk"))
	if err != nil {
		t.Fatalf("CreateClient: %v", err)
	}
	if second.ClientID != "CL-002" {
		t.Errorf("second ClientID = %q, want CL-002", second.ClientID)
	}
}

func TestCreateClientRejectsDuplicateID(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	in := validClient("Maya Lind")
	in.ClientID = "CL-007"
	if _, err := svc.CreateClient(ctx, in); err != nil {
		t.Fatalf("CreateClient: %v", err)
	}

	in2 := validClient("Oren Falk")
	in2.ClientID = "CL-007"
	_, err := svc.CreateClient(ctx, in2)
	if !errors.Is(err, apperr.ErrDuplicateClientID) {
		t.Fatalf("err = %v, want ErrDuplicateClientID", err)
	}
	var dup *DuplicateClientIDError
	if !errors.As(err, &dup) {
		t.Fatalf("err = %T, want *DuplicateClientIDError", err)
	}
	if dup.Suggested != "CL-008" {
		t.Errorf("Suggested = %q, want CL-008", dup.Suggested)
	}
}

func TestCreateClientRejectsTombstonedID(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	c, err := svc.CreateClient(ctx, validClient("Maya Lind"))
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteClient(ctx, c.ID); err != nil {
		t.Fatalf("DeleteClient: %v", err)
	}

	in := validClient("Oren Falk")
	in.ClientID = c.ClientID
	if _, err := svc.CreateClient(ctx, in); !errors.Is(err, apperr.ErrDuplicateClientID) {
		t.Fatalf("err = %v, want ErrDuplicateClientID", err)
	}
}

func TestCreateClientValidation(t *testing.T) {
	svc := newTestService(t)

	in := validClient("X")
	if _, err := svc.CreateClient(context.Background(), in); err == nil {
		t.Fatal("one-character name accepted")
	}

	in = validClient("Maya Lind")
	in.Email = "not-an-email"
	if _, err := svc.CreateClient(context.Background(), in); err == nil {
		t.Fatal("malformed email accepted")
	}
}

func TestUpdateClient(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	c, err := svc.CreateClient(ctx, validClient("Maya Lind"))
	if err != nil {
		t.Fatal(err)
	}

	in := validClient("Maya Lind-Berg")
	in.Occupation = "teacher"
	got, err := svc.UpdateClient(ctx, c.ID, in)
	if err != nil {
		t.Fatalf("UpdateClient: %v", err)
	}
	if got.Name != "Maya Lind-Berg" || got.Occupation != "teacher" {
		t.Errorf("update not applied: %+v", got)
	}
	if got.ClientID != c.ClientID {
		t.Errorf("ClientID changed to %q", got.ClientID)
	}
	if got.CreatedAt != c.CreatedAt {
		t.Error("CreatedAt changed on update")
	}

	if _, err := svc.UpdateClient(ctx, "missing", in); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteClientLeavesTombstone(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	c, err := svc.CreateClient(ctx, validClient("Maya Lind"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddSession(ctx, c.ID, SessionInput{Notes: "intake"}); err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteClient(ctx, c.ID); err != nil {
		t.Fatalf("DeleteClient: %v", err)
	}

	if clients := svc.Clients(ctx); len(clients) != 0 {
		t.Fatalf("roster still has %d clients", len(clients))
	}
	deleted := svc.DeletedClients(ctx)
	if len(deleted) != 1 {
		t.Fatalf("tombstones = %d, want 1", len(deleted))
	}
	d := deleted[0]
	if d.ID != c.ID || d.ClientID != c.ClientID || d.Name != c.Name {
		t.Errorf("tombstone fields wrong: %+v", d)
	}
	if d.DeletedAt == 0 {
		t.Error("DeletedAt not stamped")
	}

	if err := svc.DeleteClient(ctx, c.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestPurgeDeletedClient(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	c, err := svc.CreateClient(ctx, validClient("Maya Lind"))
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteClient(ctx, c.ID); err != nil {
		t.Fatal(err)
	}

	if err := svc.PurgeDeletedClient(ctx, c.ID); err != nil {
		t.Fatalf("PurgeDeletedClient: %v", err)
	}
	if deleted := svc.DeletedClients(ctx); len(deleted) != 0 {
		t.Fatalf("tombstones = %d, want 0", len(deleted))
	}
	if err := svc.PurgeDeletedClient(ctx, c.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAddSession(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	svc.SetClock(func() time.Time { return time.Date(2025, 3, 9, 15, 0, 0, 0, time.UTC) })

	c, err := svc.CreateClient(ctx, validClient("Maya Lind"))
	if err != nil {
		t.Fatal(err)
	}

	got, err := svc.AddSession(ctx, c.ID, SessionInput{Notes: "trouble sleeping"})
	if err != nil {
		t.Fatalf("AddSession: %v", err)
	}
	if len(got.SessionHistory) != 1 {
		t.Fatalf("history = %d records, want 1", len(got.SessionHistory))
	}
	rec := got.SessionHistory[0]
	if rec.Date != "2025-03-09" {
		t.Errorf("Date = %q, want clock date", rec.Date)
	}
	if rec.ID == "" {
		t.Error("record ID not assigned")
	}
	if got.SessionCount != 1 {
		t.Errorf("SessionCount = %d, want 1", got.SessionCount)
	}

	if _, err := svc.AddSession(ctx, c.ID, SessionInput{}); err == nil {
		t.Fatal("empty notes accepted")
	}
	if _, err := svc.AddSession(ctx, "missing", SessionInput{Notes: "x"}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteSessionKeepsCounter(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	c, err := svc.CreateClient(ctx, validClient("Maya Lind"))
	if err != nil {
		t.Fatal(err)
	}
	c, err = svc.AddSession(ctx, c.ID, SessionInput{Notes: "intake"})
	if err != nil {
		t.Fatal(err)
	}

	got, err := svc.DeleteSession(ctx, c.ID, c.SessionHistory[0].ID)
	if err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if len(got.SessionHistory) != 0 {
		t.Fatalf("history = %d records, want 0", len(got.SessionHistory))
	}
	if got.SessionCount != 1 {
		t.Errorf("SessionCount = %d, want 1 (counter tracks sessions held)", got.SessionCount)
	}

	if _, err := svc.DeleteSession(ctx, c.ID, "missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAdjustSessionCountClampsAtZero(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	c, err := svc.CreateClient(ctx, validClient("Maya Lind"))
	if err != nil {
		t.Fatal(err)
	}

	got, err := svc.AdjustSessionCount(ctx, c.ID, 3)
	if err != nil {
		t.Fatal(err)
	}
	if got.SessionCount != 3 {
		t.Errorf("SessionCount = %d, want 3", got.SessionCount)
	}

	got, err = svc.AdjustSessionCount(ctx, c.ID, -10)
	if err != nil {
		t.Fatal(err)
	}
	if got.SessionCount != 0 {
		t.Errorf("SessionCount = %d, want clamp at 0", got.SessionCount)
	}
}

func TestSearchFindsSessionNotes(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	c, err := svc.CreateClient(ctx, validClient("Maya Lind"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddSession(ctx, c.ID, SessionInput{Notes: "recurring nightmares since March"}); err != nil {
		t.Fatal(err)
	}

	hits, err := svc.Search(ctx, "nightmares", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("hits = %d, want 1", len(hits))
	}
	if hits[0].ClientID != c.ID {
		t.Errorf("hit client = %q, want %q", hits[0].ClientID, c.ID)
	}

	if hits, _ := svc.Search(ctx, "unicorn", 10); len(hits) != 0 {
		t.Errorf("unexpected hits: %v", hits)
	}
}

func TestAppointments(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return now })

	past, err := svc.CreateAppointment(ctx, AppointmentInput{
		ClientName: "Maya Lind",
		DateTime:   now.Add(-2 * time.Hour).UnixMilli(),
	})
	if err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}
	if past.DurationMinutes() != models.DefaultAppointmentDuration {
		t.Errorf("duration = %d, want default", past.DurationMinutes())
	}

	future, err := svc.CreateAppointment(ctx, AppointmentInput{
		ClientName: "Oren Falk",
		DateTime:   now.Add(2 * time.Hour).UnixMilli(),
		Duration:   90,
	})
	if err != nil {
		t.Fatal(err)
	}

	upcoming := svc.UpcomingAppointments(ctx)
	if len(upcoming) != 1 || upcoming[0].ID != future.ID {
		t.Fatalf("upcoming = %+v, want only the future appointment", upcoming)
	}

	if err := svc.DeleteAppointment(ctx, past.ID); err != nil {
		t.Fatalf("DeleteAppointment: %v", err)
	}
	if got := svc.Appointments(ctx); len(got) != 1 {
		t.Fatalf("appointments = %d, want 1", len(got))
	}
	if err := svc.DeleteAppointment(ctx, "missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCalendarMonthViewModel(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	c, err := svc.CreateClient(ctx, validClient("Maya Lind"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddSession(ctx, c.ID, SessionInput{
		Notes:        "intake",
		FollowUpDate: "2025-03-09",
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateAppointment(ctx, AppointmentInput{
		ClientName: "Oren Falk",
		DateTime:   time.Date(2025, 3, 15, 15, 0, 0, 0, time.Local).UnixMilli(),
	}); err != nil {
		t.Fatal(err)
	}

	vm := svc.CalendarMonth(ctx, 2025, time.March)
	if len(vm.Grid)%7 != 0 {
		t.Errorf("grid length %d not a multiple of 7", len(vm.Grid))
	}
	if vm.Grid[0] != nil {
		t.Error("March 2025 starts on Saturday; leading cells should be nil")
	}
	if got := len(vm.Events["2025-3-9"]); got != 1 {
		t.Errorf("events on Mar 9 = %d, want 1 follow-up", got)
	}
	if got := len(vm.Events["2025-3-15"]); got != 1 {
		t.Errorf("events on Mar 15 = %d, want 1 appointment", got)
	}

	day := svc.EventsOn(ctx, time.Date(2025, 3, 9, 23, 59, 0, 0, time.Local))
	if len(day) != 1 {
		t.Errorf("day query = %d events, want 1", len(day))
	}
}

func TestEarnings(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddEarning(ctx, EarningInput{Day: 9, Month: 2, Year: 2025, Amount: 120}); err != nil {
		t.Fatalf("AddEarning: %v", err)
	}
	if _, err := svc.AddEarning(ctx, EarningInput{Day: 40, Month: 2, Year: 2025, Amount: 120}); err == nil {
		t.Fatal("day 40 accepted")
	}
	if _, err := svc.AddEarning(ctx, EarningInput{Day: 9, Month: 12, Year: 2025, Amount: 120}); err == nil {
		t.Fatal("month 12 accepted; months are zero-based")
	}

	earnings := svc.Earnings(ctx)
	if len(earnings) != 1 {
		t.Fatalf("earnings = %d, want 1", len(earnings))
	}
	if err := svc.DeleteEarning(ctx, earnings[0].ID); err != nil {
		t.Fatalf("DeleteEarning: %v", err)
	}
	if err := svc.DeleteEarning(ctx, "missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestProfileLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	svc.SetClock(func() time.Time { return time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC) })

	if _, err := svc.Profile(ctx); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound before registration", err)
	}

	p, err := svc.SaveProfile(ctx, ProfileInput{Email: "dr@example.com", Name: "Dana Reyes"})
	if err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	if p.RegisteredAt == "" {
		t.Fatal("RegisteredAt not stamped on first save")
	}
	registered := p.RegisteredAt

	svc.SetClock(func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) })
	p, err = svc.SaveProfile(ctx, ProfileInput{Email: "dr@example.com", Name: "Dana Reyes-Ortiz"})
	if err != nil {
		t.Fatal(err)
	}
	if p.RegisteredAt != registered {
		t.Errorf("RegisteredAt changed on re-save: %q -> %q", registered, p.RegisteredAt)
	}

	if _, err := svc.SaveProfile(ctx, ProfileInput{Email: "bad", Name: "Dana Reyes"}); err == nil {
		t.Fatal("malformed email accepted")
	}
	if _, err := svc.SaveProfile(ctx, ProfileInput{Email: "dr@example.com", Name: "Dana Reyes", ProfessionalID: "ab"}); err == nil {
		t.Fatal("two-character professional id accepted")
	}
}

func TestSettingsSaveAndDefaults(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if got := svc.Settings(ctx); got != models.DefaultSiteSettings() {
		t.Errorf("unset settings = %+v, want defaults", got)
	}

	in := SettingsInput{
		ThemeMode:       "dark",
		Density:         "compact",
		SidebarBehavior: "collapsed",
		Language:        "en",
		TimeFormat:      models.TimeFormat24h,
		AccentColor:     "#336699",
		PracticeName:    "Northside Practice",
	}
	saved, err := svc.SaveSettings(ctx, in)
	if err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	if got := svc.Settings(ctx); got != *saved {
		t.Errorf("round-trip mismatch: %+v", got)
	}

	in.ThemeMode = "neon"
	if _, err := svc.SaveSettings(ctx, in); err == nil {
		t.Fatal("unknown theme mode accepted")
	}
}
