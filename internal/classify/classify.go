// Package classify labels jobs by scanning their text for keywords.
//
// A Table is an ordered list of rules; the first rule with any keyword
// contained in the lower-cased text wins. Tables are plain data so they can
// come from config.
package classify

import (
	"strings"

	"jobboard-engine/internal/domain"
)

// Work arrangements.
const (
	Remote = "remote"
	Hybrid = "hybrid"
	Onsite = "onsite"
)

// Employment types.
const (
	FullTime  = "full-time"
	PartTime  = "part-time"
	Contract  = "contract"
	Freelance = "freelance"
)

// Fields scanned by each classifier, in concatenation order.
var (
	ArrangementFields = []string{"location", "title", "category", "type"}
	JobTypeFields     = []string{"category", "type", "title"}
)

type Rule struct {
	Label string   `yaml:"label" json:"label"`
	Any   []string `yaml:"any" json:"any"`
}

type Table []Rule

// Match returns the label of the first rule with a keyword contained in
// text, or "". text is expected to be lower-cased already.
func (t Table) Match(text string) string {
	for _, r := range t {
		for _, kw := range r.Any {
			kw = strings.ToLower(kw)
			if kw == "" {
				continue
			}
			if strings.Contains(text, kw) {
				return r.Label
			}
		}
	}
	return ""
}

// Detect joins the given fields of job with spaces, lower-cases the result
// and matches it against the table.
func (t Table) Detect(job domain.RawJob, fields ...string) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = job.Str(f)
	}
	return t.Match(strings.ToLower(strings.Join(parts, " ")))
}

// Labels lists the table's labels in order.
func (t Table) Labels() []string {
	out := make([]string, 0, len(t))
	for _, r := range t {
		out = append(out, r.Label)
	}
	return out
}

func DefaultArrangements() Table {
	return Table{
		{Label: Remote, Any: []string{"remote", "work from home", "wfh", "anywhere"}},
		{Label: Hybrid, Any: []string{"hybrid"}},
		{Label: Onsite, Any: []string{"onsite", "on-site", "on site", "in-office", "in office"}},
	}
}

func DefaultJobTypes() Table {
	return Table{
		{Label: FullTime, Any: []string{"full-time", "full time", "fulltime"}},
		{Label: PartTime, Any: []string{"part-time", "part time", "parttime"}},
		{Label: Contract, Any: []string{"contract"}},
		{Label: Freelance, Any: []string{"freelance", "gig"}},
	}
}

// Classifier pairs the arrangement and job-type tables.
type Classifier struct {
	Arrangements Table
	JobTypes     Table
}

func Default() Classifier {
	return Classifier{
		Arrangements: DefaultArrangements(),
		JobTypes:     DefaultJobTypes(),
	}
}

// Empty reports whether neither table has any rules.
func (c Classifier) Empty() bool {
	return len(c.Arrangements) == 0 && len(c.JobTypes) == 0
}

func (c Classifier) Arrangement(job domain.RawJob) string {
	return c.Arrangements.Detect(job, ArrangementFields...)
}

func (c Classifier) JobType(job domain.RawJob) string {
	return c.JobTypes.Detect(job, JobTypeFields...)
}

// DetectArrangement classifies job with the default arrangement table.
func DetectArrangement(job domain.RawJob) string {
	return DefaultArrangements().Detect(job, ArrangementFields...)
}

// DetectJobType classifies job with the default job-type table.
func DetectJobType(job domain.RawJob) string {
	return DefaultJobTypes().Detect(job, JobTypeFields...)
}
