package contact

import (
	"context"
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

// List returns one page of submissions, newest first, with display timestamps.
func (s *Service) List(ctx context.Context, page int) (pagination.Page[Listed], error) {
	if err := crud.CheckPage(page, s.pageSize); err != nil {
		return pagination.Page[Listed]{}, err
	}

	forms, err := s.query(ctx, "Error fetching contact forms", store.ProcGetContactForms,
		pagination.Offset(page, s.pageSize), pagination.Limit(s.pageSize))
	if err != nil {
		return pagination.Page[Listed]{}, err
	}
	return pagination.Map(pagination.Trim(forms, page, s.pageSize), listed), nil
}

// Search matches term against name, email and message. Timestamps are left as stored.
func (s *Service) Search(ctx context.Context, term string) (crud.List[Form], error) {
	pattern, err := crud.SearchPattern(term)
	if err != nil {
		return crud.List[Form]{}, err
	}

	forms, err := s.query(ctx, "Error searching contact forms", store.ProcSearchForms, pattern)
	if err != nil {
		return crud.List[Form]{}, err
	}
	return crud.List[Form]{Data: forms}, nil
}

func (s *Service) Create(ctx context.Context, nf NewForm) (crud.Message, error) {
	nf = nf.normalize()
	if err := crud.CheckFields(nf); err != nil {
		return crud.Message{}, err
	}

	res, err := s.gw.Exec(ctx, store.ProcInsertContactForm, nf.Name, nf.Email, nf.Message)
	if err != nil {
		return crud.Message{}, crud.FromStore("Creation failed", err)
	}
	if !res.Found() {
		return crud.Message{}, apperr.New("Creation failed", http.StatusInternalServerError, map[string]any{
			"details": "Form failed to create in database",
		})
	}
	return crud.Message{Message: "New form created successfully"}, nil
}

// CreateMany stores submissions in order and stops at the first failure.
func (s *Service) CreateMany(ctx context.Context, forms []NewForm) (crud.Batch, error) {
	if err := crud.CheckBatch(len(forms), "forms"); err != nil {
		return crud.Batch{}, err
	}

	results := make([]crud.Message, 0, len(forms))
	for _, nf := range forms {
		res, err := s.Create(ctx, nf)
		if err != nil {
			return crud.Batch{}, err
		}
		results = append(results, res)
	}
	return crud.Batch{Message: "Forms submitted successfully", Results: results}, nil
}

func (s *Service) query(ctx context.Context, action string, proc store.Procedure, args ...any) ([]Form, error) {
	rows, err := s.gw.Query(ctx, proc, args...)
	if err != nil {
		return nil, crud.FromStore(action, err)
	}
	forms, err := store.Collect(rows, scanForm)
	if err != nil {
		return nil, apperr.Unexpected(action, err)
	}
	return forms, nil
}
