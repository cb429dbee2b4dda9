package normalize

import (
	"jobboard-engine/internal/classify"
	"jobboard-engine/internal/dates"
	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/salary"
)

// Normalizer builds Jobs from raw records. A zero Normalizer uses the
// default classification tables.
type Normalizer struct {
	Classifier classify.Classifier
}

func New(c classify.Classifier) Normalizer {
	return Normalizer{Classifier: c}
}

func (n Normalizer) classifier() classify.Classifier {
	if n.Classifier.Empty() {
		return classify.Default()
	}
	return n.Classifier
}

// Normalize cleans and annotates every record. IDs are positions in raws.
// The input maps are copied, never modified.
func (n Normalizer) Normalize(raws []domain.RawJob) []domain.Job {
	c := n.classifier()
	out := make([]domain.Job, len(raws))
	for i, raw := range raws {
		out[i] = n.job(c, i, raw)
	}
	return out
}

// Job normalizes a single record at position id.
func (n Normalizer) Job(id int, raw domain.RawJob) domain.Job {
	return n.job(n.classifier(), id, raw)
}

func (n Normalizer) job(c classify.Classifier, id int, raw domain.RawJob) domain.Job {
	fields := raw.Clone()
	Text(fields)
	domain.StripDerived(fields)

	posted := dates.FromJob(fields)
	j := domain.Job{
		ID:          id,
		Fields:      fields,
		Arrangement: c.Arrangement(fields),
		JobType:     c.JobType(fields),
		PostedAt:    posted,
		DisplayDate: dates.Format(posted),
	}
	if v, ok := salary.ParseMonthly(fields); ok {
		j.SalaryMonthly = &v
	}
	return j
}
