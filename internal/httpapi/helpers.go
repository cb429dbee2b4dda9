package httpapi

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"jobboard-engine/internal/query"
)

func writeJSON(w http.ResponseWriter, v any) {
	WriteJSON(w, http.StatusOK, v)
}

func methodMux(m map[string]http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h, ok := m[r.Method]; ok {
			h(w, r)
			return
		}
		WriteError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

// criteriaFrom reads the board filter parameters. Absent and empty
// parameters both mean "no filter".
func criteriaFrom(q url.Values) query.Criteria {
	return query.Criteria{
		Source:        q.Get("source"),
		Category:      q.Get("category"),
		Arrangement:   q.Get("arrangement"),
		JobType:       q.Get("job_type"),
		SalaryBracket: q.Get("salary"),
		Search:        q.Get("search"),
		Sort:          q.Get("sort"),
	}
}

// criteriaValues is the inverse of criteriaFrom, for building page links.
func criteriaValues(c query.Criteria) url.Values {
	v := url.Values{}
	set := func(k, s string) {
		if s != "" {
			v.Set(k, s)
		}
	}
	set("source", c.Source)
	set("category", c.Category)
	set("arrangement", c.Arrangement)
	set("job_type", c.JobType)
	set("salary", c.SalaryBracket)
	set("search", c.Search)
	set("sort", c.Sort)
	return v
}

// pageParam parses ?page=; anything that is not an integer means page 1.
func pageParam(q url.Values) int {
	n, err := strconv.Atoi(strings.TrimSpace(q.Get("page")))
	if err != nil {
		return 1
	}
	return n
}

// pathID extracts a non-negative integer id following prefix.
func pathID(path, prefix string) (int, bool) {
	s := strings.TrimPrefix(path, prefix)
	if s == path || s == "" || strings.Contains(s, "/") {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return id, true
}
