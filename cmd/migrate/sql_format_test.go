package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bannedbooks/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readMigrations(t *testing.T, driver string) string {
	t.Helper()
	dir := repoMigrations(t, driver)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var all strings.Builder
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		s := string(b)
		assert.Contains(t, s, "-- +goose Up", e.Name())
		assert.Contains(t, s, "-- +goose Down", e.Name())
		assert.Equal(t, strings.Count(s, "-- +goose StatementBegin"), strings.Count(s, "-- +goose StatementEnd"), e.Name())
		all.WriteString(s)
	}
	return all.String()
}

func TestSQLMigrations_DefineEveryProcedure(t *testing.T) {
	procs := []store.Procedure{
		store.ProcGetBooks, store.ProcSearchBooks, store.ProcFeaturedBook, store.ProcInsertBook,
		store.ProcUpdateBook, store.ProcDeleteBook, store.ProcDeleteBooks,
		store.ProcGetSuggestions, store.ProcSearchSuggestions, store.ProcInsertSuggestion,
		store.ProcPromoteSuggestion, store.ProcDeleteSuggestion, store.ProcDeleteSuggestions,
		store.ProcGetContactForms, store.ProcSearchForms, store.ProcInsertContactForm,
		store.ProcGetAdmin, store.ProcInsertAdmin,
	}
	for _, driver := range []string{"postgres", "mysql"} {
		sql := strings.ToLower(readMigrations(t, driver))
		for _, p := range procs {
			assert.Contains(t, sql, strings.ToLower(string(p))+"(", "%s: %s", driver, p)
		}
	}
}
