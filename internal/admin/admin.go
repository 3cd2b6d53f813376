// Package admin stores administrator accounts.
package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"bannedbooks/internal/apperr"
	"bannedbooks/internal/crud"
	"bannedbooks/internal/platform/crypto"
	"bannedbooks/internal/store"
)

var ErrNotFound = errors.New("admin not found")

type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedOn    time.Time
}

func scanAccount(rows store.Rows) (Account, error) {
	var a Account
	err := rows.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedOn)
	return a, err
}

// Store reads and writes accounts through the procedure gateway.
type Store struct {
	gw store.Gateway
}

func NewStore(gw store.Gateway) *Store {
	return &Store{gw: gw}
}

// ByUsername returns ErrNotFound when no account has the name.
func (s *Store) ByUsername(ctx context.Context, username string) (Account, error) {
	rows, err := s.gw.Query(ctx, store.ProcGetAdmin, username)
	if err != nil {
		return Account{}, err
	}
	accounts, err := store.Collect(rows, scanAccount)
	if err != nil {
		return Account{}, err
	}
	if len(accounts) == 0 {
		return Account{}, ErrNotFound
	}
	return accounts[0], nil
}

// Register hashes password and creates the account.
func (s *Store) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return apperr.Validation("Validation failed", map[string]any{
			"details":       "Required fields are missing or of invalid format.",
			"invalidFields": []string{"username"},
		})
	}
	if err := crypto.ValidatePasswordStrength(password); err != nil {
		return apperr.Validation("Validation failed", map[string]any{
			"details":       err.Error(),
			"invalidFields": []string{"password"},
		})
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return apperr.Unexpected("Error creating admin", err)
	}

	res, err := s.gw.Exec(ctx, store.ProcInsertAdmin, username, hash)
	if err != nil {
		return crud.FromStore(fmt.Sprintf("Error creating admin %s", username), err)
	}
	if !res.Found() {
		return apperr.New("Error creating admin", http.StatusInternalServerError, nil)
	}
	return nil
}
