// Package storetest provides in-memory store.Rows for service tests.
package storetest

import (
	"fmt"
	"reflect"

	"bannedbooks/internal/store"
)

// Rows serves fixed records. Each record holds one value per scanned column.
type Rows struct {
	records [][]any
	pos     int
	err     error
	closed  bool
}

var _ store.Rows = (*Rows)(nil)

func NewRows(records ...[]any) *Rows {
	return &Rows{records: records, pos: -1}
}

// WithErr makes Err report err after iteration.
func (r *Rows) WithErr(err error) *Rows {
	r.err = err
	return r
}

func (r *Rows) Next() bool {
	if r.closed || r.pos+1 >= len(r.records) {
		return false
	}
	r.pos++
	return true
}

// Scan assigns each record value to the matching destination pointer. A nil value
// leaves the destination at its zero value.
func (r *Rows) Scan(dest ...any) error {
	if r.pos < 0 || r.pos >= len(r.records) {
		return fmt.Errorf("storetest: scan without row")
	}
	rec := r.records[r.pos]
	if len(rec) != len(dest) {
		return fmt.Errorf("storetest: record has %d columns, scan wants %d", len(rec), len(dest))
	}

	for i, d := range dest {
		target := reflect.ValueOf(d)
		if target.Kind() != reflect.Pointer || target.IsNil() {
			return fmt.Errorf("storetest: destination %d is not a pointer", i)
		}
		elem := target.Elem()
		if rec[i] == nil {
			elem.Set(reflect.Zero(elem.Type()))
			continue
		}
		v := reflect.ValueOf(rec[i])
		switch {
		case v.Type().AssignableTo(elem.Type()):
			elem.Set(v)
		case elem.Kind() == reflect.Pointer && v.Type().AssignableTo(elem.Type().Elem()):
			p := reflect.New(elem.Type().Elem())
			p.Elem().Set(v)
			elem.Set(p)
		case v.Type().ConvertibleTo(elem.Type()):
			elem.Set(v.Convert(elem.Type()))
		default:
			return fmt.Errorf("storetest: cannot scan %T into %s", rec[i], elem.Type())
		}
	}
	return nil
}

func (r *Rows) Err() error {
	return r.err
}

func (r *Rows) Close() {
	r.closed = true
}

// Closed reports whether Close was called.
func (r *Rows) Closed() bool {
	return r.closed
}
