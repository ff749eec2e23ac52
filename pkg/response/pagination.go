package response

// Pagination is the metadata block attached to paginated payloads.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewPagination computes pagination metadata from the requested page,
// the page size, and the total number of matching records.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100

	// maxPage bounds the page number so skip offsets stay well inside
	// int64 range even at the maximum limit.
	maxPage = 10000
)

// NormalizePageLimit turns raw page/limit inputs into validated positive
// values: page defaults to 1 and is capped at 10000, limit defaults to 10
// and is capped at 100.
func NormalizePageLimit(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if page > maxPage {
		page = maxPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}
