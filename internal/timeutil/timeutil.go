// Package timeutil implements date parsing and display formatting for
// follow-up dates, appointment times, and relative timestamps.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/starford/therapynotes/internal/models"
)

// DefaultFollowUpHour is the hour-of-day assumed for follow-up dates
// stored without a time component.
const DefaultFollowUpHour = 10

// Layouts accepted for stored follow-up dates. Date-only values carry no
// time component; the rest do.
var followUpLayouts = []struct {
	layout  string
	hasTime bool
}{
	{time.RFC3339, true},
	{"2006-01-02T15:04", true},
	{"2006-01-02 15:04", true},
	{"2006-01-02", false},
}

// ParseFollowUp parses a stored follow-up date string. hasTime reports
// whether the value carried an explicit time component.
func ParseFollowUp(raw string) (t time.Time, hasTime bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false, fmt.Errorf("timeutil: empty follow-up date")
	}
	for _, l := range followUpLayouts {
		if parsed, parseErr := time.ParseInLocation(l.layout, raw, time.Local); parseErr == nil {
			return parsed, l.hasTime, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("timeutil: unrecognized follow-up date %q", raw)
}

// ResolveFollowUp parses a follow-up date and defaults the time of day to
// DefaultFollowUpHour when the stored value is date-only. A midnight
// timestamp is also treated as date-only, since date pickers serialize
// date-only input as midnight.
func ResolveFollowUp(raw string) (time.Time, error) {
	t, hasTime, err := ParseFollowUp(raw)
	if err != nil {
		return time.Time{}, err
	}
	if !hasTime || (t.Hour() == 0 && t.Minute() == 0) {
		t = time.Date(t.Year(), t.Month(), t.Day(), DefaultFollowUpHour, 0, 0, 0, t.Location())
	}
	return t, nil
}

var time12Pattern = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*(?i:(AM|PM))?`)

// Format24To12 converts "14:30" to "02:30 PM". Values that do not look
// like a 24h clock time pass through unchanged.
func Format24To12(time24 string) string {
	if !strings.Contains(time24, ":") {
		return time24
	}
	parts := strings.SplitN(time24, ":", 2)
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return time24
	}
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%02d:%s %s", display, parts[1], ampm)
}

// Format12To24 converts "02:30 PM" to "14:30". Unrecognized values pass
// through unchanged.
func Format12To24(time12 string) string {
	m := time12Pattern.FindStringSubmatch(time12)
	if m == nil {
		return time12
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return time12
	}
	switch strings.ToUpper(m[3]) {
	case "PM":
		if hour != 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	}
	return fmt.Sprintf("%02d:%s", hour, m[2])
}

// FormatTimeDisplay renders a 24h clock string per the configured display
// format.
func FormatTimeDisplay(time24, timeFormat string) string {
	if time24 == "" || timeFormat == models.TimeFormat24h {
		return time24
	}
	return Format24To12(time24)
}

// TimeAgo renders a millisecond timestamp relative to now.
func TimeAgo(tsMillis int64, now time.Time) string {
	diff := now.Sub(time.UnixMilli(tsMillis))
	minutes := int(diff.Minutes())
	hours := int(diff.Hours())
	days := int(diff.Hours() / 24)

	switch {
	case minutes < 1:
		return "Just now"
	case minutes < 60:
		return fmt.Sprintf("%d min ago", minutes)
	case hours < 24:
		return fmt.Sprintf("%d %s ago", hours, plural("hour", hours))
	case days < 7:
		return fmt.Sprintf("%d %s ago", days, plural("day", days))
	default:
		return time.UnixMilli(tsMillis).Format("1/2/2006")
	}
}

// FormatDateTime renders a millisecond timestamp with Today/Tomorrow
// prefixes, honoring the 12h/24h preference.
func FormatDateTime(tsMillis int64, timeFormat string, now time.Time) string {
	t := time.UnixMilli(tsMillis)

	var clock string
	if timeFormat == models.TimeFormat24h {
		clock = t.Format("15:04")
	} else {
		clock = t.Format("03:04 PM")
	}

	if sameDay(t, now) {
		return "Today at " + clock
	}
	if sameDay(t, now.AddDate(0, 0, 1)) {
		return "Tomorrow at " + clock
	}
	return t.Format("Jan 2") + " at " + clock
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func plural(word string, n int) string {
	if n > 1 {
		return word + "s"
	}
	return word
}
