// Package board answers the queries a job board UI makes: filtered pages,
// single jobs by id and the facet lists behind the filter dropdowns.
package board

import (
	"context"

	"github.com/cockroachdb/errors"

	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/query"
)

var ErrNotFound = errors.New("job not found")

type Result struct {
	Jobs       []domain.Job `json:"jobs"`
	Total      int          `json:"total"`
	Filtered   int          `json:"filtered"`
	TotalPages int          `json:"total_pages"`
	Page       int          `json:"page"`
}

type Facets struct {
	Sources    []string `json:"sources"`
	Categories []string `json:"categories"`
}

type Service struct {
	Repo     Repository
	PageSize int
}

// Query filters and sorts the full collection, then returns one page of it.
func (s Service) Query(ctx context.Context, c query.Criteria, page int) Result {
	all := s.Repo.Jobs(ctx)
	filtered := query.Apply(all, c)
	items, pages, cur := query.Paginate(filtered, s.PageSize, page)
	return Result{
		Jobs:       items,
		Total:      len(all),
		Filtered:   len(filtered),
		TotalPages: pages,
		Page:       cur,
	}
}

// All is Query without pagination.
func (s Service) All(ctx context.Context, c query.Criteria) (total int, filtered []domain.Job) {
	all := s.Repo.Jobs(ctx)
	return len(all), query.Apply(all, c)
}

// Get looks a job up by its positional id.
func (s Service) Get(ctx context.Context, id int) (domain.Job, error) {
	all := s.Repo.Jobs(ctx)
	if id < 0 || id >= len(all) {
		return domain.Job{}, errors.Wrapf(ErrNotFound, "id %d", id)
	}
	return all[id], nil
}

func (s Service) Facets(ctx context.Context) Facets {
	all := s.Repo.Jobs(ctx)
	return Facets{
		Sources:    query.UniqueSources(all),
		Categories: query.UniqueCategories(all),
	}
}

// Count is the size of the unfiltered collection.
func (s Service) Count(ctx context.Context) int {
	return len(s.Repo.Jobs(ctx))
}
