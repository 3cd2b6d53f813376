// Package store is the only point of contact with the relational database. Every
// statement is a named stored routine called with bound parameters.
package store

import (
	"context"
	"errors"
)

// Procedure names a stored routine. The same names exist in the Postgres and MySQL schemas.
type Procedure string

const (
	ProcGetBooks          Procedure = "sp_get_books"
	ProcSearchBooks       Procedure = "sp_search_books_by_param"
	ProcFeaturedBook      Procedure = "sp_search_for_featured"
	ProcInsertBook        Procedure = "sp_insert_book"
	ProcUpdateBook        Procedure = "sp_update_book"
	ProcDeleteBook        Procedure = "sp_delete_book"
	ProcDeleteBooks       Procedure = "sp_delete_books"
	ProcGetSuggestions    Procedure = "sp_get_suggested_books"
	ProcSearchSuggestions Procedure = "sp_search_sugg_books_by_param"
	ProcInsertSuggestion  Procedure = "sp_insert_suggested_book"
	ProcPromoteSuggestion Procedure = "sp_promote_suggested_book"
	ProcDeleteSuggestion  Procedure = "sp_delete_sugg_book"
	ProcDeleteSuggestions Procedure = "sp_delete_sugg_books"
	ProcGetContactForms   Procedure = "sp_get_contactForms"
	ProcSearchForms       Procedure = "sp_search_forms_by_param"
	ProcInsertContactForm Procedure = "sp_insert_contactForm"
	ProcGetAdmin          Procedure = "sp_get_admin_by_username"
	ProcInsertAdmin       Procedure = "sp_insert_admin"
)

var (
	// ErrDuplicate is returned, wrapped, when a write violates a unique constraint.
	ErrDuplicate = errors.New("store: duplicate key")
	// ErrMissingValue is returned, wrapped, when a write leaves a NOT NULL column empty.
	ErrMissingValue = errors.New("store: missing required value")
)

// Rows is a forward-only cursor over a read procedure's result set.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// Result reports how many rows a write procedure matched.
type Result struct {
	RowsAffected int64
}

// Found reports whether the write matched at least one row. Both backends count
// matched rows, so a zero means the target does not exist.
func (r Result) Found() bool {
	return r.RowsAffected > 0
}

//go:generate mockgen -destination=mocks/gateway_mock.go -package=mocks bannedbooks/internal/store Gateway

// Gateway executes stored procedures.
type Gateway interface {
	Query(ctx context.Context, proc Procedure, args ...any) (Rows, error)
	Exec(ctx context.Context, proc Procedure, args ...any) (Result, error)
	Ping(ctx context.Context) error
	Close()
}

// Collect reads every row with scan and closes rows.
func Collect[T any](rows Rows, scan func(Rows) (T, error)) ([]T, error) {
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
