// Package crud holds the input rules shared by the resource services.
package crud

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"bannedbooks/internal/apperr"
	"bannedbooks/internal/pagination"
	"bannedbooks/internal/store"
	"bannedbooks/internal/validate"
)

const requiredFieldsDetail = "Required fields are missing or of invalid format."

// CheckPage rejects non-positive page numbers and pages whose offset the store cannot take.
func CheckPage(page, pageSize int) error {
	if page < 1 {
		return apperr.Validation("Invalid 'page' parameter. It must be a positive integer.", nil)
	}
	if !pagination.InRange(page, pageSize) {
		return apperr.Validation("Invalid 'page' parameter. It is out of range.", nil)
	}
	return nil
}

// SearchPattern validates term and wraps it for a LIKE comparison.
func SearchPattern(term string) (string, error) {
	if strings.TrimSpace(term) == "" {
		return "", apperr.Validation("Invalid searchTerm parameter. It must be a non-empty string.", nil)
	}
	return "%" + term + "%", nil
}

// CheckFields runs struct validation and reports every failing field in a single error.
func CheckFields(v any) error {
	errs := validate.Struct(v)
	if len(errs) == 0 {
		return nil
	}
	return apperr.Validation("Validation failed", map[string]any{
		"details":       requiredFieldsDetail,
		"invalidFields": validate.Fields(errs),
	})
}

// CheckPatch validates a partial update. present is false when no mutable field was set.
func CheckPatch(v any, present bool, validFields []string) error {
	if !present {
		return apperr.Validation("At least one field must be provided to update.", map[string]any{
			"validFields": validFields,
		})
	}
	errs := validate.Struct(v)
	if len(errs) == 0 {
		return nil
	}
	return apperr.Validation("Validation failed", map[string]any{
		"details":       validate.Messages(errs),
		"invalidFields": validate.Fields(errs),
	})
}

// CheckBatch rejects an empty create batch.
func CheckBatch(n int, noun string) error {
	if n < 1 {
		return apperr.Validation(fmt.Sprintf("Invalid create: request must contain 1 or more %s", noun), nil)
	}
	return nil
}

func invalidIDs() error {
	return apperr.Validation("Invalid input: 'ids' must be a non-empty array of positive integers", nil)
}

// ParseIDs converts a decoded JSON array into ids. Entries must be positive integers;
// numeric strings are rejected.
func ParseIDs(raw []any) ([]int64, error) {
	if len(raw) == 0 {
		return nil, invalidIDs()
	}

	ids := make([]int64, 0, len(raw))
	for _, v := range raw {
		var id int64
		switch n := v.(type) {
		case json.Number:
			parsed, err := strconv.ParseInt(n.String(), 10, 64)
			if err != nil {
				return nil, invalidIDs()
			}
			id = parsed
		case float64:
			if n != math.Trunc(n) || n > math.MaxInt64 {
				return nil, invalidIDs()
			}
			id = int64(n)
		case int:
			id = int64(n)
		case int64:
			id = n
		default:
			return nil, invalidIDs()
		}
		if id <= 0 {
			return nil, invalidIDs()
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// CheckIDs rejects an empty id set or one containing a non-positive id.
func CheckIDs(ids []int64) error {
	if len(ids) == 0 {
		return invalidIDs()
	}
	for _, id := range ids {
		if id <= 0 {
			return invalidIDs()
		}
	}
	return nil
}

// JoinIDs joins ids with sep.
func JoinIDs(ids []int64, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, sep)
}

// FromStore converts a gateway failure into a domain error.
func FromStore(action string, err error) error {
	switch {
	case errors.Is(err, store.ErrDuplicate):
		return apperr.Conflict(action, map[string]any{
			"details": "A record with the same unique key already exists.",
		})
	case errors.Is(err, store.ErrMissingValue):
		return apperr.Conflict(action, map[string]any{
			"details": "The record is missing a value required by the store.",
		})
	default:
		return apperr.Unexpected(action, err)
	}
}

// Message is the body of a successful write.
type Message struct {
	Message string `json:"message"`
}

// List is the body of an unpaginated read.
type List[T any] struct {
	Data []T `json:"data"`
}

// Batch is the body of a batch create.
type Batch struct {
	Message string    `json:"message"`
	Results []Message `json:"results"`
}
