package query

// DefaultPageSize is used when a caller passes a non-positive page size.
const DefaultPageSize = 20

// Paginate slices items into fixed-size pages and returns the requested one.
// There is always at least one page; page is clamped into [1, totalPages].
func Paginate[T any](items []T, pageSize, page int) (pageItems []T, totalPages, current int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	totalPages = (len(items) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	current = min(max(page, 1), totalPages)

	start := (current - 1) * pageSize
	end := min(start+pageSize, len(items))
	if start >= end {
		return []T{}, totalPages, current
	}
	return items[start:end], totalPages, current
}
