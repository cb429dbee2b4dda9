package query

import (
	"slices"

	"jobboard-engine/internal/domain"
)

// UniqueSources returns the distinct non-empty source values, sorted.
func UniqueSources(jobs []domain.Job) []string {
	return unique(jobs, "source")
}

// UniqueCategories returns the distinct non-empty category and type values,
// merged and sorted.
func UniqueCategories(jobs []domain.Job) []string {
	return unique(jobs, "category", "type")
}

func unique(jobs []domain.Job, keys ...string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, j := range jobs {
		for _, k := range keys {
			v := j.Str(k)
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return out
}
