package store_test

import (
	"errors"
	"testing"

	"bannedbooks/internal/store"
	"bannedbooks/internal/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct {
	ID   int64
	Name *string
}

func scanPair(rows store.Rows) (pair, error) {
	var p pair
	err := rows.Scan(&p.ID, &p.Name)
	return p, err
}

func TestCollect(t *testing.T) {
	rows := storetest.NewRows([]any{int64(1), "a"}, []any{int64(2), nil})

	got, err := store.Collect(rows, scanPair)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, "a", *got[0].Name)
	assert.Nil(t, got[1].Name)
	assert.True(t, rows.Closed())
}

func TestCollect_Empty(t *testing.T) {
	got, err := store.Collect(storetest.NewRows(), scanPair)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCollect_IterationError(t *testing.T) {
	boom := errors.New("conn reset")
	rows := storetest.NewRows([]any{int64(1), "a"}).WithErr(boom)

	_, err := store.Collect(rows, scanPair)
	assert.ErrorIs(t, err, boom)
	assert.True(t, rows.Closed())
}

func TestCollect_ScanError(t *testing.T) {
	rows := storetest.NewRows([]any{"not an id", "a"})

	_, err := store.Collect(rows, scanPair)
	assert.Error(t, err)
}
