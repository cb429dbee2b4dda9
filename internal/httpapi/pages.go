package httpapi

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"jobboard-engine/internal/board"
	"jobboard-engine/internal/classify"
	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/normalize"
	"jobboard-engine/internal/query"
	"jobboard-engine/internal/salary"
)

//go:embed templates/*.html
var templateFS embed.FS

// summaryWords is how much of a description the board list shows.
const summaryWords = 50

var pageTemplates = template.Must(template.New("pages").Funcs(template.FuncMap{
	"truncate_words": func(s string) string { return normalize.TruncateWords(s, summaryWords) },
	"monthly":        formatMonthly,
	"description": func(j domain.Job) string {
		if d := j.Str("description"); d != "" {
			return d
		}
		return j.Str("job_description")
	},
}).ParseFS(templateFS, "templates/*.html"))

func formatMonthly(v *float64) string {
	if v == nil {
		return ""
	}
	return "$" + strconv.FormatFloat(*v, 'f', 0, 64) + "/mo"
}

type PagesHandler struct {
	Board      board.Service
	Classifier classify.Classifier
}

type indexView struct {
	Jobs       []domain.Job
	Total      int
	Filtered   int
	Page       int
	TotalPages int
	PrevURL    string
	NextURL    string

	Criteria     query.Criteria
	Sources      []string
	Categories   []string
	Arrangements []string
	JobTypes     []string
	Brackets     []salary.Bracket
}

// Index renders the board at "/". Every other unmatched path is a 404.
func (h PagesHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	c := criteriaFrom(q)
	res := h.Board.Query(r.Context(), c, pageParam(q))
	facets := h.Board.Facets(r.Context())

	v := indexView{
		Jobs:         res.Jobs,
		Total:        res.Total,
		Filtered:     res.Filtered,
		Page:         res.Page,
		TotalPages:   res.TotalPages,
		Criteria:     c,
		Sources:      facets.Sources,
		Categories:   facets.Categories,
		Arrangements: h.Classifier.Arrangements.Labels(),
		JobTypes:     h.Classifier.JobTypes.Labels(),
		Brackets:     salary.Brackets,
	}
	if res.Page > 1 {
		v.PrevURL = pageURL(c, res.Page-1)
	}
	if res.Page < res.TotalPages {
		v.NextURL = pageURL(c, res.Page+1)
	}
	render(w, "index.html", v)
}

// Detail renders /job/{id}.
func (h PagesHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/job/")
	if !ok {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}
	job, err := h.Board.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}
	render(w, "job_detail.html", job)
}

func pageURL(c query.Criteria, page int) string {
	v := criteriaValues(c)
	v.Set("page", strconv.Itoa(page))
	return "/?" + v.Encode()
}

func render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("render failed")
	}
}
