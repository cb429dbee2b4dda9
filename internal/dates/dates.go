// Package dates resolves the posting dates scrapers emit into comparable
// instants.
//
// Offsets are dropped rather than converted: "2026-02-03T14:00:06+05:00"
// becomes 14:00:06 on Feb 3 with no zone. Results are stored in UTC only so
// that they compare by wall clock.
package dates

import (
	"net/mail"
	"strings"
	"time"

	"jobboard-engine/internal/domain"
)

// DisplayLayout renders dates like "Feb 3, 2026".
const DisplayLayout = "Jan 2, 2006"

type attempt func(raw string) (time.Time, bool)

var isoLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05Z07",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02 15:04:05Z07",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02T15",
	"2006-01-02",
	"20060102",
}

// rfc2822Zoneless covers headers written without a zone, which
// mail.ParseDate rejects.
var rfc2822Zoneless = []string{
	"Mon, 2 Jan 2006 15:04:05",
	"2 Jan 2006 15:04:05",
	"Mon, 2 Jan 2006 15:04",
	"2 Jan 2006 15:04",
}

// attempts run in order; the first success wins.
var attempts = []attempt{
	parseISO,
	parseRFC2822,
	layout("Jan 2, 2006"),
	layout("2006-01-02"),
}

// Parse tries ISO-8601, RFC 2822, "Feb 4, 2026" and "2026-02-03" in that
// order.
func Parse(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, try := range attempts {
		if t, ok := try(raw); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// FromJob parses posted_date, falling back to date_posted when posted_date
// is missing or empty. It returns nil when neither parses.
func FromJob(job domain.RawJob) *time.Time {
	raw := job.Str("posted_date")
	if raw == "" {
		raw = job.Str("date_posted")
	}
	t, ok := Parse(raw)
	if !ok {
		return nil
	}
	return &t
}

// Format renders t as "Mon D, YYYY", or "" for nil.
func Format(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DisplayLayout)
}

func parseISO(raw string) (time.Time, bool) {
	for _, l := range isoLayouts {
		if t, err := time.Parse(l, raw); err == nil {
			return naive(t), true
		}
	}
	return time.Time{}, false
}

func parseRFC2822(raw string) (time.Time, bool) {
	if t, err := mail.ParseDate(raw); err == nil {
		return naive(t), true
	}
	for _, l := range rfc2822Zoneless {
		if t, err := time.Parse(l, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func layout(l string) attempt {
	return func(raw string) (time.Time, bool) {
		t, err := time.Parse(l, raw)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
}

// naive keeps the wall clock and drops the zone.
func naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
