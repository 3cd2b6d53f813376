package suggestion

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bannedbooks/internal/store"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestHTTPHandler_Create(t *testing.T) {
	svc, gw := newService(t)
	handler := NewHTTPHandler(svc)

	gw.EXPECT().Exec(gomock.Any(), store.ProcInsertSuggestion, strPtr("0306406152"), "T", "A", nilStr, nilStr, "B", strPtr("0306406152.png")).
		Return(store.Result{RowsAffected: 1}, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/suggested_books",
		strings.NewReader(`[{"isbn":"0306406152","title":"T","author":"A","banned_by":"B","cover_url":"0306406152.png"}]`))

	handler.Create(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Suggest Books inserted successfully")
}

func TestHTTPHandler_Promote(t *testing.T) {
	svc, gw := newService(t)
	handler := NewHTTPHandler(svc)

	t.Run("invalid id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/suggested_books/x/promote", nil)
		r.SetPathValue("id", "x")

		handler.Promote(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		gw.EXPECT().Exec(gomock.Any(), store.ProcPromoteSuggestion, int64(4)).Return(store.Result{RowsAffected: 1}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/suggested_books/4/promote", nil)
		r.SetPathValue("id", "4")

		handler.Promote(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestHTTPHandler_DeleteMany(t *testing.T) {
	svc, _ := newService(t)
	handler := NewHTTPHandler(svc)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/suggested_books", strings.NewReader(`{"ids":[0]}`))

	handler.DeleteMany(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
