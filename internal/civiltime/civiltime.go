// Package civiltime converts between the textual interview timestamps found
// in stored schedules, absolute instants, and zone-specific display strings.
//
// Source timestamps use a fixed two-offset rule: a CET label means +01:00 and
// a CEST label means +02:00, with unlabelled strings read as CET. The rule is
// deliberately not DST-aware and never consults the host timezone database;
// legacy records encode the two offsets, not real transition tables.
package civiltime

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// CET and CEST are fixed offsets, not IANA zones.
	CET  = time.FixedZone("CET", 1*60*60)
	CEST = time.FixedZone("CEST", 2*60*60)

	// Tehran is fixed at +03:30; Iran abolished DST in 2022.
	Tehran = time.FixedZone("IRST", 3*60*60+30*60)
)

// DefaultDurationMinutes is assumed when duration text carries no number.
const DefaultDurationMinutes = 60

var (
	offsetRe   = regexp.MustCompile(`(?i)[T ]\d{2}:\d{2}(:\d{2})?(\.\d+)?([+-]\d{2}:?\d{2}|Z)$`)
	labelledRe = regexp.MustCompile(`(?i)^(\d{4}-\d{2}-\d{2})[ T](\d{2}:\d{2}:\d{2})(?:\s*\(?(CET|CEST)\)?)?$`)
	durationRe = regexp.MustCompile(`(?i)(\d+)\s*(hours?|hrs?|h\b)?`)
)

// Layouts accepted by the best-effort fallback, all read as CET wall time.
// The set is closed on purpose: anything outside it is treated as unusable
// rather than handed to a lenient parser.
var fallbackLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

var offsetLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05Z07:00",
}

// Parse turns raw timestamp text into an instant. It reports false for
// anything unusable; a malformed legacy record must never block the caller.
//
// Priority: explicit offset or UTC designator first (the fixed-offset rule is
// bypassed entirely), then the labelled civil form
// "YYYY-MM-DD HH:MM:SS [CET|CEST]", then the closed fallback grammar.
func Parse(text string) (time.Time, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return time.Time{}, false
	}

	if offsetRe.MatchString(s) {
		for _, layout := range offsetLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	}

	if m := labelledRe.FindStringSubmatch(s); m != nil {
		loc := CET
		if strings.EqualFold(m[3], "CEST") {
			loc = CEST
		}
		t, err := time.ParseInLocation("2006-01-02 15:04:05", m[1]+" "+m[2], loc)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.ParseInLocation(layout, s, CET); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// FormatInput renders an instant for an editable datetime control: CET wall
// clock at minute precision, no seconds, no zone suffix.
func FormatInput(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(CET).Format("2006-01-02T15:04")
}

// FormatStorage renders the canonical persisted form
// "YYYY-MM-DD HH:MM:SS CET", truncated to the minute. Seconds and the
// original zone label are not round-tripped; the approximation is accepted.
func FormatStorage(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Truncate(time.Minute).In(CET).Format("2006-01-02 15:04:05 MST")
}

// fixedZones resolves the zone names this service displays without touching
// the host timezone database.
var fixedZones = map[string]*time.Location{
	"Asia/Tehran": Tehran,
	"CET":         CET,
	"CEST":        CEST,
	"UTC":         time.UTC,
}

// Reproject renders an instant in a named zone at second precision with the
// zone abbreviation appended. It returns "-" for a zero instant or an
// unresolvable zone; display code shows the sentinel as-is.
func Reproject(t time.Time, zone string) string {
	if t.IsZero() {
		return "-"
	}

	loc, ok := fixedZones[zone]
	if !ok {
		var err error
		loc, err = time.LoadLocation(zone)
		if err != nil {
			return "-"
		}
	}

	return t.In(loc).Format("2006-01-02 15:04:05 MST")
}

// TehranTime is the Iran-time display used by the assignee-facing list.
func TehranTime(text string) string {
	t, ok := Parse(text)
	if !ok {
		return "-"
	}
	return Reproject(t, "Asia/Tehran")
}

// DurationMinutes scans freeform duration text ("45 min", "1 hour", "60")
// for its first number. Hour units multiply explicitly rather than falling
// through to the default; text with no number at all yields the default 60.
func DurationMinutes(text string) int {
	m := durationRe.FindStringSubmatch(text)
	if m == nil {
		return DefaultDurationMinutes
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return DefaultDurationMinutes
	}

	if m[2] != "" {
		return n * 60
	}
	return n
}
