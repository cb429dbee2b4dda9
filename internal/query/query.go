// Package query filters, orders and pages normalized job collections.
// Nothing here mutates the jobs it is given.
package query

import (
	"slices"
	"strings"

	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/salary"
)

// SortOldest flips the default newest-first order.
const SortOldest = "oldest"

// Criteria holds the optional filters of one query. Empty fields are not
// applied; every supplied field must match.
type Criteria struct {
	Source        string `json:"source,omitempty"`
	Category      string `json:"category,omitempty"`
	Arrangement   string `json:"arrangement,omitempty"`
	JobType       string `json:"job_type,omitempty"`
	SalaryBracket string `json:"salary,omitempty"`
	Search        string `json:"search,omitempty"`
	Sort          string `json:"sort,omitempty"`
}

type predicate func(domain.Job) bool

func (c Criteria) predicates() []predicate {
	var ps []predicate
	if c.Source != "" {
		ps = append(ps, func(j domain.Job) bool { return j.Str("source") == c.Source })
	}
	if c.Category != "" {
		ps = append(ps, func(j domain.Job) bool {
			return j.Str("category") == c.Category || j.Str("type") == c.Category
		})
	}
	if c.Arrangement != "" {
		ps = append(ps, func(j domain.Job) bool { return j.Arrangement == c.Arrangement })
	}
	if c.JobType != "" {
		ps = append(ps, func(j domain.Job) bool { return j.JobType == c.JobType })
	}
	// Unknown bracket keys are ignored.
	if b, ok := salary.LookupBracket(c.SalaryBracket); ok {
		ps = append(ps, func(j domain.Job) bool {
			return j.SalaryMonthly != nil && b.Contains(*j.SalaryMonthly)
		})
	}
	if c.Search != "" {
		q := strings.ToLower(c.Search)
		ps = append(ps, func(j domain.Job) bool {
			return strings.Contains(strings.ToLower(j.Str("title")), q) ||
				strings.Contains(strings.ToLower(j.Str("description")), q) ||
				strings.Contains(strings.ToLower(j.Str("job_description")), q)
		})
	}
	return ps
}

// Match reports whether j passes every filter in c.
func (c Criteria) Match(j domain.Job) bool {
	for _, p := range c.predicates() {
		if !p(j) {
			return false
		}
	}
	return true
}

// Apply returns the jobs matching c in a new slice, ordered by posting date:
// newest first, or oldest first when c.Sort is "oldest". Undated jobs count
// as the earliest instant. Ties keep their input order in both directions.
func Apply(jobs []domain.Job, c Criteria) []domain.Job {
	ps := c.predicates()
	out := make([]domain.Job, 0, len(jobs))
outer:
	for _, j := range jobs {
		for _, p := range ps {
			if !p(j) {
				continue outer
			}
		}
		out = append(out, j)
	}
	SortByDate(out, c.Sort == SortOldest)
	return out
}

// SortByDate orders jobs in place by SortTime with a stable sort.
func SortByDate(jobs []domain.Job, oldestFirst bool) {
	slices.SortStableFunc(jobs, func(a, b domain.Job) int {
		if oldestFirst {
			return a.SortTime().Compare(b.SortTime())
		}
		return b.SortTime().Compare(a.SortTime())
	})
}
