package book

import (
	"context"
	"fmt"
	"net/http"

	"bannedbooks/internal/apperr"
	"bannedbooks/internal/crud"
	"bannedbooks/internal/pagination"
	"bannedbooks/internal/store"
)

// Service provides book-related business logic.
type Service struct {
	gw       store.Gateway
	pageSize int
}

// NewService creates a new book service.
func NewService(gw store.Gateway, pageSize int) *Service {
	return &Service{gw: gw, pageSize: pageSize}
}

// List returns one page of books.
func (s *Service) List(ctx context.Context, page int) (pagination.Page[Book], error) {
	if err := crud.CheckPage(page, s.pageSize); err != nil {
		return pagination.Page[Book]{}, err
	}

	books, err := s.query(ctx, "Error fetching books", store.ProcGetBooks,
		pagination.Offset(page, s.pageSize), pagination.Limit(s.pageSize))
	if err != nil {
		return pagination.Page[Book]{}, err
	}
	return pagination.Trim(books, page, s.pageSize), nil
}

// Search returns every book whose ISBN, title, author or banning body contains term.
func (s *Service) Search(ctx context.Context, term string) (crud.List[Book], error) {
	pattern, err := crud.SearchPattern(term)
	if err != nil {
		return crud.List[Book]{}, err
	}

	books, err := s.query(ctx, "Error searching books", store.ProcSearchBooks, pattern)
	if err != nil {
		return crud.List[Book]{}, err
	}
	return crud.List[Book]{Data: books}, nil
}

// Featured returns one randomly chosen book, or none when the catalog is empty.
func (s *Service) Featured(ctx context.Context) (crud.List[Book], error) {
	books, err := s.query(ctx, "Error fetching featured book", store.ProcFeaturedBook)
	if err != nil {
		return crud.List[Book]{}, err
	}
	return crud.List[Book]{Data: books}, nil
}

// Create validates and inserts one book.
func (s *Service) Create(ctx context.Context, nb NewBook) (crud.Message, error) {
	nb = nb.normalize()
	if err := crud.CheckFields(nb); err != nil {
		return crud.Message{}, err
	}

	res, err := s.gw.Exec(ctx, store.ProcInsertBook,
		nb.ISBN, nb.Title, nb.Author, nb.Description, nb.BanReason, nb.BannedBy)
	if err != nil {
		return crud.Message{}, crud.FromStore("Creation failed", err)
	}
	if !res.Found() {
		return crud.Message{}, apperr.New("Creation failed", http.StatusInternalServerError, map[string]any{
			"details": "Book failed to create in database",
		})
	}
	return crud.Message{Message: fmt.Sprintf("New book: %s created successfully", nb.Title)}, nil
}

// CreateMany creates books in order and stops at the first failure. Books created
// before the failure stay committed.
func (s *Service) CreateMany(ctx context.Context, books []NewBook) (crud.Batch, error) {
	if err := crud.CheckBatch(len(books), "books"); err != nil {
		return crud.Batch{}, err
	}

	results := make([]crud.Message, 0, len(books))
	for _, nb := range books {
		res, err := s.Create(ctx, nb)
		if err != nil {
			return crud.Batch{}, err
		}
		results = append(results, res)
	}
	return crud.Batch{Message: "Books inserted successfully", Results: results}, nil
}

// Update overwrites the fields set in p.
func (s *Service) Update(ctx context.Context, id int64, p Patch) (crud.Message, error) {
	p = p.normalize()
	if err := crud.CheckPatch(p, !p.isEmpty(), patchFields); err != nil {
		return crud.Message{}, err
	}

	res, err := s.gw.Exec(ctx, store.ProcUpdateBook,
		id, p.Title, p.Author, p.Description, p.BanReason, p.BannedBy)
	if err != nil {
		return crud.Message{}, crud.FromStore(fmt.Sprintf("Error updating book with id: %d", id), err)
	}
	if !res.Found() {
		return crud.Message{}, apperr.NotFound(fmt.Sprintf("Error updating book with id: %d", id), map[string]any{
			"details": "No book exists with this id",
		})
	}
	return crud.Message{Message: fmt.Sprintf("Book with id: %d updated successfully", id)}, nil
}

// Remove deletes one book.
func (s *Service) Remove(ctx context.Context, id int64) (crud.Message, error) {
	res, err := s.gw.Exec(ctx, store.ProcDeleteBook, id)
	if err != nil {
		return crud.Message{}, crud.FromStore(fmt.Sprintf("Error deleting book with id: %d", id), err)
	}
	if !res.Found() {
		return crud.Message{}, apperr.NotFound(fmt.Sprintf("Error deleting book with id: %d", id), nil)
	}
	return crud.Message{Message: fmt.Sprintf("Book with id: %d deleted successfully", id)}, nil
}

// RemoveMany deletes the given books in one store call. The reply lists the requested
// ids whether or not each one existed.
func (s *Service) RemoveMany(ctx context.Context, ids []int64) (crud.Message, error) {
	if err := crud.CheckIDs(ids); err != nil {
		return crud.Message{}, err
	}

	if _, err := s.gw.Exec(ctx, store.ProcDeleteBooks, crud.JoinIDs(ids, ",")); err != nil {
		return crud.Message{}, crud.FromStore("Error deleting books", err)
	}
	return crud.Message{
		Message: fmt.Sprintf("Books with IDs: %s deleted successfully", crud.JoinIDs(ids, ", ")),
	}, nil
}

func (s *Service) query(ctx context.Context, action string, proc store.Procedure, args ...any) ([]Book, error) {
	rows, err := s.gw.Query(ctx, proc, args...)
	if err != nil {
		return nil, crud.FromStore(action, err)
	}
	books, err := store.Collect(rows, scanBook)
	if err != nil {
		return nil, apperr.Unexpected(action, err)
	}
	return books, nil
}
