package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawJobStr(t *testing.T) {
	r := RawJob{"title": "Dev", "salary": json.Number("4000"), "remote": true, "none": nil}
	assert.Equal(t, "Dev", r.Str("title"))
	assert.Equal(t, "4000", r.Str("salary"))
	assert.Equal(t, "true", r.Str("remote"))
	assert.Equal(t, "", r.Str("none"))
	assert.Equal(t, "", r.Str("missing"))
	assert.Equal(t, "", RawJob(nil).Str("title"))
}

func TestJobJSONRoundTrip(t *testing.T) {
	posted := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
	salary := 3200.0
	job := Job{
		ID: 4,
		Fields: RawJob{
			"title":  "Go Dev",
			"source": "remoteok",
			"tags":   []any{"go", "sql"},
		},
		Arrangement:   "remote",
		JobType:       "contract",
		PostedAt:      &posted,
		DisplayDate:   "Feb 3, 2026",
		SalaryMonthly: &salary,
	}

	b, err := json.Marshal(job)
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(b, &flat))
	assert.NotContains(t, flat, KeyParsedDate)
	assert.Equal(t, "remote", flat[KeyArrangement])
	assert.Equal(t, "Feb 3, 2026", flat[KeyDisplayDate])
	assert.Equal(t, 3200.0, flat[KeySalaryMonthly])
	assert.Equal(t, 4.0, flat[KeyID])

	var back Job
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, job.ID, back.ID)
	assert.Equal(t, job.Arrangement, back.Arrangement)
	assert.Equal(t, job.JobType, back.JobType)
	assert.Equal(t, job.DisplayDate, back.DisplayDate)
	require.NotNil(t, back.SalaryMonthly)
	assert.Equal(t, salary, *back.SalaryMonthly)
	assert.Equal(t, "Go Dev", back.Str("title"))
	assert.Equal(t, []any{"go", "sql"}, back.Fields["tags"])
	assert.Nil(t, back.PostedAt)

	again, err := json.Marshal(back)
	require.NoError(t, err)
	assert.JSONEq(t, string(b), string(again))
}

func TestJobJSONNullSalary(t *testing.T) {
	b, err := json.Marshal(Job{Fields: RawJob{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":0,"_arrangement":"","_job_type":"","_display_date":"","_salary_monthly":null}`, string(b))

	var back Job
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Nil(t, back.SalaryMonthly)
	assert.Empty(t, back.Fields)
}

func TestStripDerived(t *testing.T) {
	r := RawJob{"title": "x", "_parsed_date": "2026", "_salary_monthly": 1, "id": 9}
	StripDerived(r)
	assert.Equal(t, RawJob{"title": "x"}, r)
}

func TestSortTime(t *testing.T) {
	assert.True(t, Job{}.SortTime().IsZero())
	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, ts, Job{PostedAt: &ts}.SortTime())
}
