package salary

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard-engine/internal/domain"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"$3000/month", 3000},
		{"$20/hr", 3200},
		{"$60,000/year", 5000},
		{"$50-$70", 60},
		{"$25 per hour", 4000},
		{"$500/week", 2000},
		{"$1,000 - $2,000 monthly", 1500},
		{"120000", 10000},
		{"40", 6400},
		{"$4,500.50", 4500.5},
		{"USD 80k annual", 80.0 / 12},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := Parse(tc.in)
			require.True(t, ok)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestParseRejects(t *testing.T) {
	for _, in := range []string{
		"", "   ", "TBD", "tbd", "N/A", "DOE", "Any", "Negotiable", "Project-based",
		"Competitive salary", "Based on experience", "no numbers here",
	} {
		_, ok := Parse(in)
		assert.False(t, ok, "input %q", in)
	}
}

func TestParseMonthly(t *testing.T) {
	v, ok := ParseMonthly(domain.RawJob{"salary": "$3000/month"})
	require.True(t, ok)
	assert.Equal(t, 3000.0, v)

	_, ok = ParseMonthly(domain.RawJob{"title": "no salary"})
	assert.False(t, ok)

	_, ok = ParseMonthly(domain.RawJob{"salary": nil})
	assert.False(t, ok)
}

func TestMagnitudeThresholdsAreExclusive(t *testing.T) {
	v, _ := Parse("10000")
	assert.Equal(t, 10000.0, v, "exactly 10000 is taken as monthly")
	v, _ = Parse("50")
	assert.Equal(t, 50.0, v, "exactly 50 is taken as monthly")
}

func TestNumbers(t *testing.T) {
	assert.Equal(t, []float64{1000, 2000}, Numbers("$1,000 to $2,000"))
	assert.Empty(t, Numbers("none"))

	huge := Numbers(strings.Repeat("9", 400))
	require.Len(t, huge, 1)
	assert.True(t, math.IsInf(huge[0], 1))
}

func TestParseOverflow(t *testing.T) {
	_, ok := Parse("$" + strings.Repeat("9", 400) + "/year")
	assert.False(t, ok, "an unrepresentable amount is no estimate")

	_, ok = Parse(strings.Repeat("9", 400) + " - 50000")
	assert.False(t, ok)

	near := strings.Repeat("9", 308)
	v, ok := Parse(near + " - " + near)
	require.True(t, ok)
	assert.False(t, math.IsInf(v, 0))
	assert.InDelta(t, 1e308/12, v, 1e295)
}

func TestBrackets(t *testing.T) {
	b, ok := LookupBracket("1000to2000")
	require.True(t, ok)
	assert.True(t, b.Contains(1000))
	assert.True(t, b.Contains(1999.99))
	assert.False(t, b.Contains(2000))

	top, ok := LookupBracket("5000plus")
	require.True(t, ok)
	assert.True(t, top.Contains(math.MaxFloat64))

	_, ok = LookupBracket("lots")
	assert.False(t, ok)
}
