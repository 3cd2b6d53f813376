//go:build integration

package store_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"bannedbooks/internal/apperr"
	"bannedbooks/internal/book"
	"bannedbooks/internal/store"
	"bannedbooks/internal/suggestion"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var gw store.Gateway

// TestMain uses DATABASE_URL when set and starts a throwaway container otherwise.
func TestMain(m *testing.M) {
	ctx := context.Background()

	dsn := os.Getenv("DATABASE_URL")
	var container testcontainers.Container
	if dsn == "" {
		c, err := tcpostgres.Run(ctx,
			"postgres:16-alpine",
			tcpostgres.WithDatabase("bannedbooks_test"),
			tcpostgres.WithUsername("bannedbooks"),
			tcpostgres.WithPassword("bannedbooks"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second)),
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "start postgres: %v\n", err)
			os.Exit(1)
		}
		container = c
		dsn, err = c.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			fmt.Fprintf(os.Stderr, "connection string: %v\n", err)
			_ = c.Terminate(ctx)
			os.Exit(1)
		}
	}

	code := run(ctx, m, dsn)
	if container != nil {
		_ = container.Terminate(ctx)
	}
	os.Exit(code)
}

func run(ctx context.Context, m *testing.M, dsn string) int {
	if err := migrate(dsn); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		return 1
	}

	var err error
	gw, err = store.Open(ctx, "postgres", dsn, 4, 5*time.Second)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open: %v\n", err)
		return 1
	}
	defer gw.Close()
	return m.Run()
}

func migrate(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, "../../db/migrations/postgres")
}

func TestPostgres_BookLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := book.NewService(gw, 10)

	_, err := svc.Create(ctx, book.NewBook{
		ISBN:     "9780451524935",
		Title:    "1984",
		Author:   "George Orwell",
		BannedBy: "Jackson County School Board",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, book.NewBook{
		ISBN:     "9780451524935",
		Title:    "Nineteen Eighty-Four",
		Author:   "George Orwell",
		BannedBy: "Somewhere",
	})
	assert.Equal(t, http.StatusConflict, apperr.Code(err))

	found, err := svc.Search(ctx, "orwell")
	require.NoError(t, err)
	require.Len(t, found.Data, 1)
	b := found.Data[0]
	assert.Equal(t, "1984", b.Title)
	assert.Nil(t, b.Description)

	title := "Nineteen Eighty-Four"
	_, err = svc.Update(ctx, b.ID, book.Patch{Title: &title})
	require.NoError(t, err)

	page, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.NotEmpty(t, page.Data)

	_, err = svc.Remove(ctx, b.ID)
	require.NoError(t, err)

	_, err = svc.Remove(ctx, b.ID)
	assert.Equal(t, http.StatusNotFound, apperr.Code(err))
}

func TestPostgres_DuplicateIsClassified(t *testing.T) {
	ctx := context.Background()
	args := []any{"0306406152", "Dup", "Author", nil, nil, "Board"}

	_, err := gw.Exec(ctx, store.ProcInsertBook, args...)
	require.NoError(t, err)
	_, err = gw.Exec(ctx, store.ProcInsertBook, args...)
	assert.True(t, errors.Is(err, store.ErrDuplicate), "got %v", err)
}

func TestPostgres_PromoteSuggestion(t *testing.T) {
	ctx := context.Background()
	books := book.NewService(gw, 10)
	suggestions := suggestion.NewService(gw, 10)

	isbn := "9780679732761"
	_, err := suggestions.Suggest(ctx, suggestion.NewSuggestion{
		ISBN:     &isbn,
		Title:    "Maus",
		Author:   "Art Spiegelman",
		BannedBy: "McMinn County School Board",
	})
	require.NoError(t, err)

	listed, err := suggestions.Search(ctx, "maus")
	require.NoError(t, err)
	require.Len(t, listed.Data, 1)
	id := listed.Data[0].ID

	_, err = suggestions.Promote(ctx, id)
	require.NoError(t, err)

	_, err = suggestions.Promote(ctx, id)
	assert.Equal(t, http.StatusNotFound, apperr.Code(err))

	promoted, err := books.Search(ctx, "spiegelman")
	require.NoError(t, err)
	assert.Len(t, promoted.Data, 1)

	left, err := suggestions.Search(ctx, "maus")
	require.NoError(t, err)
	assert.Empty(t, left.Data)
}
