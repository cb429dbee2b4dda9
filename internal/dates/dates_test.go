package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard-engine/internal/domain"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2026-02-03T14:00:06+00:00", time.Date(2026, 2, 3, 14, 0, 6, 0, time.UTC)},
		{"2026-02-03T14:00:06Z", time.Date(2026, 2, 3, 14, 0, 6, 0, time.UTC)},
		{"2026-02-03T14:00:06.250+05:30", time.Date(2026, 2, 3, 14, 0, 6, 250e6, time.UTC)},
		{"2026-02-03T14:00:06", time.Date(2026, 2, 3, 14, 0, 6, 0, time.UTC)},
		{"2026-02-03 09:15:00", time.Date(2026, 2, 3, 9, 15, 0, 0, time.UTC)},
		{"2026-02-03", time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)},
		{"  2026-02-03  ", time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)},
		{"Tue, 03 Feb 2026 14:00:06 -0500", time.Date(2026, 2, 3, 14, 0, 6, 0, time.UTC)},
		{"Feb 4, 2026", time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC)},
		{"feb 4, 2026", time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC)},
		{"2026-02-03T14:00:06+05", time.Date(2026, 2, 3, 14, 0, 6, 0, time.UTC)},
		{"2026-02-03 14:00:06-03", time.Date(2026, 2, 3, 14, 0, 6, 0, time.UTC)},
		{"2026-02-03T14", time.Date(2026, 2, 3, 14, 0, 0, 0, time.UTC)},
		{"20260203", time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)},
		{"Wed, 12 Nov 2025 08:56:02 GMT", time.Date(2025, 11, 12, 8, 56, 2, 0, time.UTC)},
		{"Wed, 12 Nov 2025 08:56:02", time.Date(2025, 11, 12, 8, 56, 2, 0, time.UTC)},
		{"12 Nov 2025 08:56:02", time.Date(2025, 11, 12, 8, 56, 2, 0, time.UTC)},
		{"Wed, 12 Nov 2025 08:56", time.Date(2025, 11, 12, 8, 56, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := Parse(tc.in)
			require.True(t, ok)
			assert.True(t, tc.want.Equal(got), "got %s", got)
		})
	}
}

func TestParseRejects(t *testing.T) {
	for _, in := range []string{"", "not a date", "yesterday", "2026-13-45", "20261345", "Wed, 12 Nov"} {
		_, ok := Parse(in)
		assert.False(t, ok, "input %q", in)
	}
}

func TestOffsetsAreDiscarded(t *testing.T) {
	east, ok := Parse("2026-02-03T14:00:06+05:00")
	require.True(t, ok)
	west, ok := Parse("2026-02-03T14:00:06-08:00")
	require.True(t, ok)
	assert.True(t, east.Equal(west))
}

func TestFromJob(t *testing.T) {
	full := FromJob(domain.RawJob{"posted_date": "2026-02-03T14:00:06+00:00"})
	day := FromJob(domain.RawJob{"posted_date": "2026-02-03"})
	require.NotNil(t, full)
	require.NotNil(t, day)
	assert.True(t, full.Truncate(24*time.Hour).Equal(*day))
	assert.Equal(t, "Feb 3, 2026", Format(full))

	fallback := FromJob(domain.RawJob{"posted_date": "", "date_posted": "Feb 4, 2026"})
	require.NotNil(t, fallback)
	assert.Equal(t, "Feb 4, 2026", Format(fallback))

	assert.Nil(t, FromJob(domain.RawJob{"posted_date": "not a date"}))
	assert.Nil(t, FromJob(domain.RawJob{"posted_date": "not a date", "date_posted": "2026-01-01"}),
		"date_posted is only consulted when posted_date is empty")
	assert.Nil(t, FromJob(domain.RawJob{}))
	assert.Equal(t, "", Format(nil))
}
