package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		code int
	}{
		{"validation", Validation("bad", nil), http.StatusBadRequest},
		{"not found", NotFound("missing", nil), http.StatusNotFound},
		{"conflict", Conflict("dup", nil), http.StatusConflict},
		{"unauthorized", Unauthorized("no"), http.StatusUnauthorized},
		{"unexpected", Unexpected("boom", errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.code, Code(tt.err))
		})
	}
}

func TestCode_DefaultsTo500(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, Code(errors.New("plain")))
	assert.Equal(t, http.StatusInternalServerError, Code(New("no code", 0, nil)))
}

func TestAs_ThroughWrapping(t *testing.T) {
	inner := Validation("Validation failed", map[string]any{"invalidFields": []string{"isbn"}})
	wrapped := fmt.Errorf("create: %w", inner)

	got, ok := As(wrapped)
	require.True(t, ok)
	assert.Same(t, inner, got)
	assert.Equal(t, http.StatusBadRequest, Code(wrapped))
}

func TestUnexpected_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Unexpected("Error fetching books", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Error fetching books: connection refused", err.Error())
}
