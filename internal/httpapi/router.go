// Package httpapi serves the job board: HTML pages, the JSON API and the
// reload event stream.
package httpapi

import "net/http"

func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Pages
	ph := PagesHandler{Board: d.Board, Classifier: d.Classifier}
	mux.HandleFunc("/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.Index,
	}))
	mux.HandleFunc("/job/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.Detail, // expects /job/{id}
	}))

	// Jobs API
	jh := JobsHandler{
		Board:        d.Board,
		SourceName:   d.SourceName,
		LastModified: d.LastModified,
		Invalidate:   d.Reload,
	}
	mux.HandleFunc("/api/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.List,
	}))
	mux.HandleFunc("/api/job/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.Get, // expects /api/job/{id}
	}))
	mux.HandleFunc("/api/facets", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.Facets,
	}))
	mux.HandleFunc("/api/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.Status,
	}))
	mux.HandleFunc("/api/reload", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: jh.Reload,
	}))

	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: HealthHandler{}.Health,
	}))

	// Config
	if d.CfgVal != nil {
		ch := ConfigHandler{
			CfgVal:      d.CfgVal,
			UserCfgPath: d.UserCfgPath,
			LoadCfg:     d.LoadCfg,
		}
		mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
			http.MethodGet: ch.Get,
			http.MethodPut: ch.Put,
		}))
		mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
			http.MethodGet: ch.Validate,
		}))
	}

	// SSE events
	if d.Hub != nil {
		eh := EventsHandler{Hub: d.Hub}
		mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
			http.MethodGet: eh.ServeSSE,
		}))
	}

	return mux
}

// NewHandler is NewMux behind the standard middleware chain.
func NewHandler(d Deps) http.Handler {
	return Chain(NewMux(d), RequestID, Recover, AccessLog, Cors, RateLimit(d.Limiter))
}
