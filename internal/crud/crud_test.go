package crud

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"bannedbooks/internal/apperr"
	"bannedbooks/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireValidation(t *testing.T, err error) *apperr.Error {
	t.Helper()
	e, ok := apperr.As(err)
	require.True(t, ok, "expected *apperr.Error, got %v", err)
	require.Equal(t, http.StatusBadRequest, e.Code)
	return e
}

func TestCheckPage(t *testing.T) {
	assert.NoError(t, CheckPage(1, 10))
	assert.NoError(t, CheckPage(42, 10))
	requireValidation(t, CheckPage(0, 10))
	requireValidation(t, CheckPage(-3, 10))

	e := requireValidation(t, CheckPage(300000000, 10))
	assert.Equal(t, "Invalid 'page' parameter. It is out of range.", e.Message)
	requireValidation(t, CheckPage(1<<62, 10))
}

func TestSearchPattern(t *testing.T) {
	p, err := SearchPattern("gatsby")
	require.NoError(t, err)
	assert.Equal(t, "%gatsby%", p)

	_, err = SearchPattern("")
	requireValidation(t, err)

	_, err = SearchPattern("   ")
	requireValidation(t, err)
}

type fields struct {
	A string `json:"a" validate:"required"`
	B string `json:"b" validate:"required"`
}

func TestCheckFields_CollectsAll(t *testing.T) {
	e := requireValidation(t, CheckFields(fields{}))
	assert.Equal(t, []string{"a", "b"}, e.Details["invalidFields"])
	assert.Equal(t, "Required fields are missing or of invalid format.", e.Details["details"])

	assert.NoError(t, CheckFields(fields{A: "x", B: "y"}))
}

func TestCheckPatch(t *testing.T) {
	e := requireValidation(t, CheckPatch(struct{}{}, false, []string{"title"}))
	assert.Equal(t, "At least one field must be provided to update.", e.Message)
	assert.Equal(t, []string{"title"}, e.Details["validFields"])

	assert.NoError(t, CheckPatch(fields{A: "x", B: "y"}, true, nil))
}

func TestParseIDs(t *testing.T) {
	t.Run("json numbers", func(t *testing.T) {
		ids, err := ParseIDs([]any{json.Number("1"), json.Number("2"), json.Number("3")})
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 3}, ids)
	})

	t.Run("float64 from default decoding", func(t *testing.T) {
		ids, err := ParseIDs([]any{float64(7)})
		require.NoError(t, err)
		assert.Equal(t, []int64{7}, ids)
	})

	invalid := map[string][]any{
		"empty":       {},
		"nil":         nil,
		"non-numeric": {"x"},
		"numeric str": {"1"},
		"zero":        {json.Number("0")},
		"negative":    {json.Number("-4")},
		"fraction":    {json.Number("1.5")},
		"float frac":  {1.5},
		"bool":        {true},
	}
	for name, raw := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := ParseIDs(raw)
			requireValidation(t, err)
		})
	}
}

func TestCheckIDs(t *testing.T) {
	assert.NoError(t, CheckIDs([]int64{1, 2}))
	requireValidation(t, CheckIDs(nil))
	requireValidation(t, CheckIDs([]int64{1, 0}))
}

func TestJoinIDs(t *testing.T) {
	assert.Equal(t, "1,2,3", JoinIDs([]int64{1, 2, 3}, ","))
	assert.Equal(t, "1, 2, 3", JoinIDs([]int64{1, 2, 3}, ", "))
	assert.Equal(t, "", JoinIDs(nil, ","))
}

func TestFromStore(t *testing.T) {
	dup := FromStore("Creation failed", fmt.Errorf("sp_insert_book: %w", store.ErrDuplicate))
	e, ok := apperr.As(dup)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, e.Code)

	missing := FromStore("Promotion failed", fmt.Errorf("x: %w", store.ErrMissingValue))
	assert.Equal(t, http.StatusConflict, apperr.Code(missing))

	cause := errors.New("connection refused")
	unexpected := FromStore("Error fetching books", cause)
	assert.Equal(t, http.StatusInternalServerError, apperr.Code(unexpected))
	assert.ErrorIs(t, unexpected, cause)
}
