package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Keys of the derived fields attached to every job during normalization.
const (
	KeyID            = "id"
	KeyArrangement   = "_arrangement"
	KeyJobType       = "_job_type"
	KeyParsedDate    = "_parsed_date"
	KeyDisplayDate   = "_display_date"
	KeySalaryMonthly = "_salary_monthly"
)

var derivedKeys = []string{KeyID, KeyArrangement, KeyJobType, KeyParsedDate, KeyDisplayDate, KeySalaryMonthly}

// RawJob is one scraped listing as a source delivered it. Keys differ per
// source; the usual ones are title, description, job_description, company,
// location, salary, type, category, source, posted_date and date_posted.
type RawJob map[string]any

// Str returns the field as a string: "" when absent or null, the value itself
// for strings, and the printed form for any other scalar.
func (r RawJob) Str(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Clone returns a shallow copy that is never nil.
func (r RawJob) Clone() RawJob {
	out := make(RawJob, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Job is a RawJob after text cleaning plus the fields derived from it.
// ID is the position in the collection it was loaded with and is only
// meaningful within that load.
type Job struct {
	ID            int
	Fields        RawJob
	Arrangement   string
	JobType       string
	PostedAt      *time.Time
	DisplayDate   string
	SalaryMonthly *float64
}

func (j Job) Str(key string) string { return j.Fields.Str(key) }

// Has reports whether the raw record carried key at all.
func (j Job) Has(key string) bool {
	_, ok := j.Fields[key]
	return ok
}

// SortTime is the posting instant used for ordering; undated jobs sort as
// the zero time, earlier than any parsed date.
func (j Job) SortTime() time.Time {
	if j.PostedAt == nil {
		return time.Time{}
	}
	return *j.PostedAt
}

// MarshalJSON flattens the raw fields and the derived fields into one
// object. _parsed_date is never emitted.
func (j Job) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(j.Fields)+5)
	for k, v := range j.Fields {
		out[k] = v
	}
	delete(out, KeyParsedDate)
	out[KeyID] = j.ID
	out[KeyArrangement] = j.Arrangement
	out[KeyJobType] = j.JobType
	out[KeyDisplayDate] = j.DisplayDate
	if j.SalaryMonthly != nil {
		out[KeySalaryMonthly] = *j.SalaryMonthly
	} else {
		out[KeySalaryMonthly] = nil
	}
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON. PostedAt stays nil since the
// instant is not part of the serialized form.
func (j *Job) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return err
	}

	var out Job
	if n, ok := m[KeyID].(json.Number); ok {
		id, err := n.Int64()
		if err != nil {
			return fmt.Errorf("job id %q: %w", n, err)
		}
		out.ID = int(id)
	}
	out.Arrangement, _ = m[KeyArrangement].(string)
	out.JobType, _ = m[KeyJobType].(string)
	out.DisplayDate, _ = m[KeyDisplayDate].(string)
	if n, ok := m[KeySalaryMonthly].(json.Number); ok {
		f, err := n.Float64()
		if err != nil {
			return fmt.Errorf("job salary %q: %w", n, err)
		}
		out.SalaryMonthly = &f
	}

	for _, k := range derivedKeys {
		delete(m, k)
	}
	out.Fields = RawJob(m)
	if out.Fields == nil {
		out.Fields = RawJob{}
	}
	*j = out
	return nil
}

// StripDerived removes any derived keys a source record happened to carry so
// the computed values are the only ones serialized.
func StripDerived(r RawJob) {
	for _, k := range derivedKeys {
		delete(r, k)
	}
}
