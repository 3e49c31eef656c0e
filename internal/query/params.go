// Package query normalizes listing parameters and derives deterministic
// cache keys from them, so logically identical requests share one cache
// entry and any difference in shape produces a different key.
package query

import (
	"fmt"
	"math"
	"strings"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type ListParams struct {
	Search     string `query:"search"`
	CategoryID string `query:"category"`
	SupplierID string `query:"supplier"`
	Status     string `query:"status"`
	Page       int    `query:"page"`
	PageSize   int    `query:"pageSize"`
	SortBy     string `query:"sortBy"`
	SortOrder  string `query:"sortOrder"`
}

// Normalize applies defaults and clamps in place. sortFields maps the
// allow-listed client sort names to SQL column references; client values
// outside the list fall back to defaultSort.
func (p *ListParams) Normalize(sortFields map[string]string, defaultSort string) {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	if _, ok := sortFields[p.SortBy]; !ok {
		p.SortBy = defaultSort
	}
	if strings.ToLower(p.SortOrder) == "asc" {
		p.SortOrder = "asc"
	} else {
		p.SortOrder = "desc"
	}
}

// Offset returns the row offset for the current page.
func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// OrderBy returns the validated SQL order clause. Normalize must have run
// first; unknown fields cannot reach here.
func (p *ListParams) OrderBy(sortFields map[string]string) string {
	column := sortFields[p.SortBy]
	direction := "DESC"
	if p.SortOrder == "asc" {
		direction = "ASC"
	}
	return column + " " + direction
}

// CacheKey builds the deterministic key for this request shape under the
// given namespace. Field order is fixed; never derived from map iteration.
func (p *ListParams) CacheKey(namespace string) string {
	return fmt.Sprintf("%s:search=%s|category=%s|supplier=%s|status=%s|page=%d|size=%d|sort=%s|order=%s",
		namespace, p.Search, p.CategoryID, p.SupplierID, p.Status,
		p.Page, p.PageSize, p.SortBy, p.SortOrder)
}

// Meta describes one page of a paginated response.
type Meta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// PaginatedResponse is the stable listing contract:
// { data: [...], meta: { total, page, pageSize, totalPages } }.
type PaginatedResponse[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

// NewPaginatedResponse assembles the response envelope for one page.
func NewPaginatedResponse[T any](data []T, total int, p *ListParams) *PaginatedResponse[T] {
	if data == nil {
		data = []T{}
	}
	return &PaginatedResponse[T]{
		Data: data,
		Meta: Meta{
			Total:      total,
			Page:       p.Page,
			PageSize:   p.PageSize,
			TotalPages: int(math.Ceil(float64(total) / float64(p.PageSize))),
		},
	}
}
