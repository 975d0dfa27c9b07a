package domain

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

type Pagination struct {
	CurrentPage   int   `json:"currentPage"`
	TotalPages    int   `json:"totalPages"`
	TotalProducts int64 `json:"totalProducts"`
	Limit         int   `json:"limit"`
	HasNextPage   bool  `json:"hasNextPage"`
	HasPrevPage   bool  `json:"hasPrevPage"`
}

// PageRequest is used as supplied; only the zero value of each field is
// replaced by its default.
type PageRequest struct {
	Page  int
	Limit int
}

func (r PageRequest) Normalize() PageRequest {
	if r.Page == 0 {
		r.Page = DefaultPage
	}
	if r.Limit == 0 {
		r.Limit = DefaultLimit
	}
	return r
}

func (r PageRequest) Offset() int { return (r.Page - 1) * r.Limit }

func NewPagination(r PageRequest, total int64) Pagination {
	r = r.Normalize()
	totalPages := int(math.Ceil(float64(total) / float64(r.Limit)))
	return Pagination{
		CurrentPage:   r.Page,
		TotalPages:    totalPages,
		TotalProducts: total,
		Limit:         r.Limit,
		HasNextPage:   r.Page < totalPages,
		HasPrevPage:   r.Page > 1,
	}
}
