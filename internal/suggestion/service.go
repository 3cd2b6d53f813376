package suggestion

import (
	"context"
	"fmt"
	"net/http"

	"bannedbooks/internal/apperr"
	"bannedbooks/internal/crud"
	"bannedbooks/internal/pagination"
	"bannedbooks/internal/store"
)

type Service struct {
	gw       store.Gateway
	pageSize int
}

func NewService(gw store.Gateway, pageSize int) *Service {
	return &Service{gw: gw, pageSize: pageSize}
}

// List returns one page of suggestions, oldest first.
func (s *Service) List(ctx context.Context, page int) (pagination.Page[Suggestion], error) {
	if err := crud.CheckPage(page, s.pageSize); err != nil {
		return pagination.Page[Suggestion]{}, err
	}

	items, err := s.query(ctx, "Error fetching suggested books", store.ProcGetSuggestions,
		pagination.Offset(page, s.pageSize), pagination.Limit(s.pageSize))
	if err != nil {
		return pagination.Page[Suggestion]{}, err
	}
	return pagination.Trim(items, page, s.pageSize), nil
}

func (s *Service) Search(ctx context.Context, term string) (crud.List[Suggestion], error) {
	pattern, err := crud.SearchPattern(term)
	if err != nil {
		return crud.List[Suggestion]{}, err
	}

	items, err := s.query(ctx, "Error searching suggested books", store.ProcSearchSuggestions, pattern)
	if err != nil {
		return crud.List[Suggestion]{}, err
	}
	return crud.List[Suggestion]{Data: items}, nil
}

// Suggest validates and stores one submission.
func (s *Service) Suggest(ctx context.Context, ns NewSuggestion) (crud.Message, error) {
	ns = ns.normalize()
	if err := crud.CheckFields(ns); err != nil {
		return crud.Message{}, err
	}

	res, err := s.gw.Exec(ctx, store.ProcInsertSuggestion,
		ns.ISBN, ns.Title, ns.Author, ns.Description, ns.BanReason, ns.BannedBy, ns.CoverURL)
	if err != nil {
		return crud.Message{}, crud.FromStore("Creation of suggested book failed", err)
	}
	if !res.Found() {
		return crud.Message{}, apperr.New("Creation of suggested book failed", http.StatusInternalServerError, map[string]any{
			"details": "Suggested book failed to create in database",
		})
	}
	return crud.Message{Message: fmt.Sprintf("New suggested book: %s created successfully", ns.Title)}, nil
}

// SuggestMany stores submissions in order and stops at the first failure.
func (s *Service) SuggestMany(ctx context.Context, items []NewSuggestion) (crud.Batch, error) {
	if err := crud.CheckBatch(len(items), "books"); err != nil {
		return crud.Batch{}, err
	}

	results := make([]crud.Message, 0, len(items))
	for _, ns := range items {
		res, err := s.Suggest(ctx, ns)
		if err != nil {
			return crud.Batch{}, err
		}
		results = append(results, res)
	}
	return crud.Batch{Message: "Suggest Books inserted successfully", Results: results}, nil
}

// Promote moves a suggestion into the catalog. The copy and the delete happen in one
// store routine, run atomically by both backends.
func (s *Service) Promote(ctx context.Context, id int64) (crud.Message, error) {
	action := fmt.Sprintf("Error promoting suggested book with id: %d", id)

	res, err := s.gw.Exec(ctx, store.ProcPromoteSuggestion, id)
	if err != nil {
		return crud.Message{}, crud.FromStore(action, err)
	}
	if !res.Found() {
		return crud.Message{}, apperr.NotFound(action, map[string]any{
			"details": "No suggested book exists with this id",
		})
	}
	return crud.Message{Message: fmt.Sprintf("Suggested book with id: %d promoted successfully", id)}, nil
}

func (s *Service) Remove(ctx context.Context, id int64) (crud.Message, error) {
	res, err := s.gw.Exec(ctx, store.ProcDeleteSuggestion, id)
	if err != nil {
		return crud.Message{}, crud.FromStore(fmt.Sprintf("Error deleting book with id: %d", id), err)
	}
	if !res.Found() {
		return crud.Message{}, apperr.NotFound(fmt.Sprintf("Error deleting book with id: %d", id), nil)
	}
	return crud.Message{Message: fmt.Sprintf("Book with id: %d deleted successfully", id)}, nil
}

func (s *Service) RemoveMany(ctx context.Context, ids []int64) (crud.Message, error) {
	if err := crud.CheckIDs(ids); err != nil {
		return crud.Message{}, err
	}

	if _, err := s.gw.Exec(ctx, store.ProcDeleteSuggestions, crud.JoinIDs(ids, ",")); err != nil {
		return crud.Message{}, crud.FromStore("Error deleting suggested books", err)
	}
	return crud.Message{
		Message: fmt.Sprintf("Books with IDs: %s deleted successfully", crud.JoinIDs(ids, ", ")),
	}, nil
}

func (s *Service) query(ctx context.Context, action string, proc store.Procedure, args ...any) ([]Suggestion, error) {
	rows, err := s.gw.Query(ctx, proc, args...)
	if err != nil {
		return nil, crud.FromStore(action, err)
	}
	items, err := store.Collect(rows, scanSuggestion)
	if err != nil {
		return nil, apperr.Unexpected(action, err)
	}
	return items, nil
}
