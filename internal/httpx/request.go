package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"bannedbooks/internal/apperr"
)

// ErrInvalidID is returned by PathID for a missing, non-numeric or non-positive id.
var ErrInvalidID = apperr.Validation("Invalid ID. ID must be a positive number.", nil)

// PathID parses the {id} path segment.
func PathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// PageParam reads ?page. A missing value means page 1; an unparsable one is returned
// as 0 so the service rejects it.
func PageParam(r *http.Request) int {
	raw := strings.TrimSpace(r.URL.Query().Get("page"))
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return page
}

// DecodeJSON decodes the body into v. Numbers decode as json.Number.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return apperr.New("Request body too large", http.StatusRequestEntityTooLarge, nil)
		case errors.Is(err, io.EOF):
			return apperr.Validation("Invalid request body", map[string]any{"details": "body is empty"})
		default:
			return apperr.Validation("Invalid request body", map[string]any{"details": err.Error()})
		}
	}
	return nil
}

// BearerToken returns the token of an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	return token, token != ""
}
