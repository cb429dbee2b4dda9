package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"jobboard-engine/internal/classify"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a cleaned copy of cfg along with everything
// wrong with it. Errors make the config unusable; warnings do not.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	out.Source.Kind = strings.ToLower(strings.TrimSpace(out.Source.Kind))
	out.Source.Refresh = strings.ToLower(strings.TrimSpace(out.Source.Refresh))
	out.Source.Path = strings.TrimSpace(out.Source.Path)
	out.App.LogLevel = strings.ToLower(strings.TrimSpace(out.App.LogLevel))
	out.Classify.Arrangement = normalizeRules(out.Classify.Arrangement)
	out.Classify.JobType = normalizeRules(out.Classify.JobType)

	// ---- app ----

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}
	if out.App.LogLevel == "" {
		out.App.LogLevel = "info"
	}
	if _, err := zerolog.ParseLevel(out.App.LogLevel); err != nil {
		res.addErr("app.log_level %q is not a log level", out.App.LogLevel)
	}

	// ---- source ----

	switch out.Source.Kind {
	case SourceFile, SourceDir, SourceSQLite:
	default:
		res.addErr("source.kind must be one of file, dir, sqlite (got %q)", out.Source.Kind)
	}
	if out.Source.Path == "" {
		res.addErr("source.path is required")
	}
	switch out.Source.Refresh {
	case "":
		out.Source.Refresh = RefreshOnDemand
	case RefreshOnDemand, RefreshCached:
	default:
		res.addErr("source.refresh must be on_demand or cached (got %q)", out.Source.Refresh)
	}
	if out.Source.CacheTTLSeconds < 0 {
		res.addErr("source.cache_ttl_seconds must be >= 0")
	}
	if out.Source.RefreshSeconds < 0 {
		res.addErr("source.refresh_seconds must be >= 0")
	} else if out.Source.RefreshSeconds > 0 && out.Source.RefreshSeconds < 5 {
		res.addWarn("source.refresh_seconds is very low (%d); the source is re-read that often.", out.Source.RefreshSeconds)
	}
	if out.Source.Refresh == RefreshOnDemand && (out.Source.CacheTTLSeconds > 0 || out.Source.RefreshSeconds > 0) {
		res.addWarn("source.cache_ttl_seconds and source.refresh_seconds only apply when source.refresh=cached.")
	}

	// ---- board ----

	if out.Board.PageSize <= 0 {
		res.addWarn("board.page_size %d is not positive; using 20.", out.Board.PageSize)
		out.Board.PageSize = 20
	} else if out.Board.PageSize > 500 {
		res.addWarn("board.page_size is %d; pages that large render slowly.", out.Board.PageSize)
	}

	// ---- http ----

	if out.HTTP.RatePerSec < 0 {
		res.addErr("http.rate_per_sec must be >= 0 (0 disables rate limiting)")
	}
	if out.HTTP.RatePerSec > 0 && out.HTTP.Burst < 1 {
		res.addErr("http.burst must be >= 1 when http.rate_per_sec > 0")
	}

	// ---- classify ----

	checkRules(&res, "classify.arrangement", out.Classify.Arrangement)
	checkRules(&res, "classify.job_type", out.Classify.JobType)

	return out, res
}

// normalizeRules trims labels and keywords and drops blank or repeated
// keywords within a rule.
func normalizeRules(rules []classify.Rule) []classify.Rule {
	if rules == nil {
		return nil
	}
	out := make([]classify.Rule, 0, len(rules))
	for _, r := range rules {
		seen := map[string]bool{}
		var kws []string
		for _, k := range r.Any {
			k = strings.TrimSpace(k)
			key := strings.ToLower(k)
			if k == "" || seen[key] {
				continue
			}
			seen[key] = true
			kws = append(kws, k)
		}
		out = append(out, classify.Rule{Label: strings.TrimSpace(r.Label), Any: kws})
	}
	return out
}

func checkRules(res *Validation, name string, rules []classify.Rule) {
	labels := map[string]bool{}
	for i, r := range rules {
		if r.Label == "" {
			res.addErr("%s[%d].label is required", name, i)
		}
		if len(r.Any) == 0 {
			res.addErr("%s[%d].any must have at least 1 term", name, i)
		}
		if r.Label != "" && labels[r.Label] {
			res.addWarn("%s: label %q is used by more than one rule.", name, r.Label)
		}
		labels[r.Label] = true
	}
}
