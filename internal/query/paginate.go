package query

import "gorm.io/gorm"

const (
	defaultPage  = 1
	defaultLimit = 10
)

// Page is the caller-supplied pagination request. Non-positive values fall
// back to defaults; there is no upper bound on Limit.
type Page struct {
	Page  int
	Limit int
}

// Normalize returns a copy with defaults applied.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = defaultPage
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	return p
}

func (p Page) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

// Apply adds LIMIT/OFFSET to the query.
func (p Page) Apply(db *gorm.DB) *gorm.DB {
	n := p.Normalize()
	return db.Offset(n.Offset()).Limit(n.Limit)
}

// TotalPages computes ceil(total/limit) for the normalized limit.
func (p Page) TotalPages(total int64) int {
	limit := int64(p.Normalize().Limit)
	return int((total + limit - 1) / limit)
}

// Result is a page of rows plus the pre-pagination totals.
type Result[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

func NewResult[T any](data []T, total int64, p Page) Result[T] {
	n := p.Normalize()
	return Result[T]{
		Data:       data,
		Total:      total,
		Page:       n.Page,
		Limit:      n.Limit,
		TotalPages: n.TotalPages(total),
	}
}
