package httpapi

import (
	"net/http"
	"time"

	"jobboard-engine/internal/board"
	"jobboard-engine/internal/domain"
)

type JobsHandler struct {
	Board        board.Service
	SourceName   string
	LastModified func() (time.Time, bool)
	Invalidate   func()
}

type jobsResponse struct {
	Total      int          `json:"total"`
	Filtered   int          `json:"filtered"`
	Jobs       []domain.Job `json:"jobs"`
	Page       *int         `json:"page,omitempty"`
	TotalPages *int         `json:"total_pages,omitempty"`
}

// List returns every filtered job, or one page of them when ?page= is given.
func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	c := criteriaFrom(q)

	if !q.Has("page") {
		total, jobs := h.Board.All(r.Context(), c)
		writeJSON(w, jobsResponse{Total: total, Filtered: len(jobs), Jobs: jobs})
		return
	}

	res := h.Board.Query(r.Context(), c, pageParam(q))
	writeJSON(w, jobsResponse{
		Total:      res.Total,
		Filtered:   res.Filtered,
		Jobs:       res.Jobs,
		Page:       &res.Page,
		TotalPages: &res.TotalPages,
	})
}

// Get serves /api/job/{id}.
func (h JobsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/api/job/")
	if !ok {
		WriteError(w, r, http.StatusNotFound, "not_found", "Job not found")
		return
	}
	job, err := h.Board.Get(r.Context(), id)
	if err != nil {
		WriteError(w, r, http.StatusNotFound, "not_found", "Job not found")
		return
	}
	writeJSON(w, job)
}

func (h JobsHandler) Facets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Board.Facets(r.Context()))
}

type statusResponse struct {
	Source      string     `json:"source"`
	TotalJobs   int        `json:"total_jobs"`
	LastUpdated *time.Time `json:"last_updated"`
	Cached      bool       `json:"cached"`
}

// Status reports how many jobs are loaded and when the source last changed.
func (h JobsHandler) Status(w http.ResponseWriter, r *http.Request) {
	total := h.Board.Count(r.Context())
	res := statusResponse{Source: h.SourceName, TotalJobs: total, Cached: h.Invalidate != nil}
	if h.LastModified != nil {
		if t, ok := h.LastModified(); ok {
			t = t.UTC()
			res.LastUpdated = &t
		}
	}
	writeJSON(w, res)
}

// Reload drops cached jobs and rebuilds them right away.
func (h JobsHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if h.Invalidate != nil {
		h.Invalidate()
	}
	total := h.Board.Count(r.Context())
	writeJSON(w, map[string]any{"ok": true, "jobs": total, "cached": h.Invalidate != nil})
}
