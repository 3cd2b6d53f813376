// Package pagination implements page-number pagination with a one-row look-ahead
// instead of a COUNT query.
package pagination

import "math"

// MaxOffset is the largest offset the stored procedures accept (their INTEGER parameter).
const MaxOffset = math.MaxInt32

// Offset returns the row offset of a 1-based page. Callers validate page first.
func Offset(page, pageSize int) int {
	return (page - 1) * pageSize
}

// InRange reports whether page is at least 1 and its offset fits in MaxOffset.
func InRange(page, pageSize int) bool {
	if page < 1 || pageSize < 1 {
		return false
	}
	return page-1 <= MaxOffset/pageSize
}

// Limit is the number of rows to request for a page of pageSize rows.
func Limit(pageSize int) int {
	return pageSize + 1
}

type Meta struct {
	Page        int  `json:"page"`
	HasNextPage bool `json:"hasNextPage"`
}

type Page[T any] struct {
	Data []T `json:"data"`
	Meta Meta `json:"meta"`
}

// Trim builds a Page from rows fetched with Limit(pageSize).
func Trim[T any](rows []T, page, pageSize int) Page[T] {
	if rows == nil {
		rows = []T{}
	}
	hasNext := len(rows) > pageSize
	if hasNext {
		rows = rows[:pageSize]
	}
	return Page[T]{
		Data: rows,
		Meta: Meta{Page: page, HasNextPage: hasNext},
	}
}

// Map converts the rows of a page while keeping its metadata.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, len(p.Data))
	for i, v := range p.Data {
		out[i] = fn(v)
	}
	return Page[U]{Data: out, Meta: p.Meta}
}
