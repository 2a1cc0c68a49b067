package domain

// PaginationParams selects one page of a list query. Page is 1-based.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset converts the 1-based page into a row offset. Pages below 1 map to
// offset 0 so a malformed page never produces a negative offset.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}
