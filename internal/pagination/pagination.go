// Package pagination turns a filtered GORM query into one page of results
// plus total-count metadata. It is order-agnostic: whatever Order clause the
// caller attached is preserved.
package pagination

import "gorm.io/gorm"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type Params struct {
	Page     int
	PageSize int
}

// Normalize clamps page to >= 1 and page size into [1, MaxPageSize]. A
// missing or non-positive size gets the default; an oversized one is capped.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type Page[T any] struct {
	Items      []T
	TotalCount int64
	TotalPages int
	Page       int
	PageSize   int
}

// TotalPages is integer ceiling division; zero rows means zero pages.
func TotalPages(totalCount int64, pageSize int) int {
	return int((totalCount + int64(pageSize) - 1) / int64(pageSize))
}

// Paginate counts the filtered query, then fetches one page. A page past the
// end yields empty Items with the counts unchanged, never an error.
func Paginate[T any](query *gorm.DB, params Params) (*Page[T], error) {
	params = params.Normalize()

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, err
	}

	var items []T
	if err := query.Offset(params.Offset()).Limit(params.PageSize).Find(&items).Error; err != nil {
		return nil, err
	}

	return &Page[T]{
		Items:      items,
		TotalCount: totalCount,
		TotalPages: TotalPages(totalCount, params.PageSize),
		Page:       params.Page,
		PageSize:   params.PageSize,
	}, nil
}
