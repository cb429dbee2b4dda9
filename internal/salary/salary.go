// Package salary turns free-text compensation strings into a monthly USD
// estimate.
package salary

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"jobboard-engine/internal/domain"
)

var numRe = regexp.MustCompile(`\$?\s*([\d,]+(?:\.\d+)?)`)

// Values that carry no number worth parsing.
var (
	skipExact = map[string]bool{
		"tbd":           true,
		"n/a":           true,
		"doe":           true,
		"any":           true,
		"negotiable":    true,
		"project-based": true,
	}
	skipContains = []string{"based on", "competitive"}
)

// period converts an amount quoted per period into a monthly figure.
type period struct {
	markers []string
	mul     float64
	div     float64
}

func (p period) monthly(v float64) float64 { return v * p.mul / p.div }

var (
	hourly  = period{markers: []string{"/hr", "/hour", "per hour", "hourly", "hour"}, mul: 160, div: 1}
	yearly  = period{markers: []string{"/yr", "/year", "annual", "yearly"}, mul: 1, div: 12}
	weekly  = period{markers: []string{"/w", "/week", "weekly", "per week"}, mul: 4, div: 1}
	monthly = period{markers: []string{"/mo", "/month", "monthly", "per month"}, mul: 1, div: 1}
)

// periods is checked in order; the first marker hit decides.
var periods = []period{hourly, yearly, weekly, monthly}

// Magnitude fallbacks when no period is named.
const (
	yearlyAbove = 10000
	hourlyBelow = 50
)

// Parse estimates monthly USD pay from a salary string. Ranges are averaged.
// ok is false for blank, non-numeric or placeholder values, and for amounts
// too large to represent.
func Parse(raw string) (monthlyUSD float64, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	low := strings.ToLower(raw)
	if skipExact[low] {
		return 0, false
	}
	for _, s := range skipContains {
		if strings.Contains(low, s) {
			return 0, false
		}
	}

	nums := Numbers(raw)
	if len(nums) == 0 {
		return 0, false
	}
	v := estimate(low, mean(nums))
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func mean(nums []float64) float64 {
	var sum float64
	for _, n := range nums {
		sum += n
	}
	if !math.IsInf(sum, 0) {
		return sum / float64(len(nums))
	}
	// Finite bounds near the float64 limit still overflow the sum.
	var m float64
	for i, n := range nums {
		m += (n - m) / float64(i+1)
	}
	return m
}

func estimate(low string, avg float64) float64 {
	if p, found := detectPeriod(low); found {
		return p.monthly(avg)
	}
	switch {
	case avg > yearlyAbove:
		return yearly.monthly(avg)
	case avg < hourlyBelow:
		return hourly.monthly(avg)
	default:
		return avg
	}
}

// ParseMonthly reads the job's salary field.
func ParseMonthly(job domain.RawJob) (float64, bool) {
	return Parse(job.Str("salary"))
}

// Numbers extracts every amount in s, dropping thousands separators.
// Tokens beyond float64 range come back as +Inf.
func Numbers(s string) []float64 {
	var out []float64
	for _, m := range numRe.FindAllStringSubmatch(s, -1) {
		n := strings.TrimSpace(strings.ReplaceAll(m[1], ",", ""))
		if n == "" {
			continue
		}
		f, err := strconv.ParseFloat(n, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func detectPeriod(low string) (period, bool) {
	for _, p := range periods {
		for _, m := range p.markers {
			if strings.Contains(low, m) {
				return p, true
			}
		}
	}
	return period{}, false
}
