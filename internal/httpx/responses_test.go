package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bannedbooks/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantDetails any
	}{
		{
			name:        "validation with details",
			err:         apperr.Validation("Validation failed", map[string]any{"invalidFields": []string{"isbn"}}),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Validation failed",
			wantDetails: map[string]any{"invalidFields": []any{"isbn"}},
		},
		{
			name:        "not found without details",
			err:         apperr.NotFound("Error deleting book with id: 9", nil),
			wantStatus:  http.StatusNotFound,
			wantMessage: "Error deleting book with id: 9",
			wantDetails: nil,
		},
		{
			name:        "plain error defaults to 500",
			err:         errors.New("pq: connection refused"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Internal server error",
			wantDetails: nil,
		},
		{
			name:        "unexpected keeps its message but hides the cause",
			err:         apperr.Unexpected("Error fetching books", errors.New("secret dsn")),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Error fetching books",
			wantDetails: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/books", nil)

			Error(w, r, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			body := decodeError(t, w)
			assert.Equal(t, tt.wantMessage, body["message"])
			assert.Equal(t, tt.wantDetails, body["details"])
			assert.NotContains(t, w.Body.String(), "secret dsn")
		})
	}
}

func TestError_LogsOnceWithLevelByStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	r := httptest.NewRequest(http.MethodGet, "/books", nil)
	r = r.WithContext(ContextWithLogger(r.Context(), logger))

	Error(httptest.NewRecorder(), r, apperr.Validation("bad page", nil))
	Error(httptest.NewRecorder(), r, errors.New("boom"))

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestJSONSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	JSONSuccess(w, map[string]string{"message": "ok"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"ok"}`, w.Body.String())
}
