package book

import (
	"strings"
	"time"

	"bannedbooks/internal/store"
	"bannedbooks/internal/validate"
)

// Book is a banned book as stored in the catalog.
type Book struct {
	ID          int64     `json:"id"`
	ISBN        string    `json:"isbn"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description *string   `json:"description"`
	BanReason   *string   `json:"ban_reason"`
	BannedBy    *string   `json:"banned_by"`
	CreatedOn   time.Time `json:"created_on"`
	UpdatedOn   time.Time `json:"updated_on"`
}

func scanBook(rows store.Rows) (Book, error) {
	var b Book
	err := rows.Scan(
		&b.ID, &b.ISBN, &b.Title, &b.Author,
		&b.Description, &b.BanReason, &b.BannedBy,
		&b.CreatedOn, &b.UpdatedOn,
	)
	return b, err
}

// NewBook is the create payload.
type NewBook struct {
	ISBN        string  `json:"isbn" validate:"required,isbn"`
	Title       string  `json:"title" validate:"required"`
	Author      string  `json:"author" validate:"required"`
	Description *string `json:"description"`
	BanReason   *string `json:"ban_reason"`
	BannedBy    string  `json:"banned_by" validate:"required"`
}

func (n NewBook) normalize() NewBook {
	n.ISBN = strings.TrimSpace(n.ISBN)
	n.Title = strings.TrimSpace(n.Title)
	n.Author = strings.TrimSpace(n.Author)
	n.BannedBy = strings.TrimSpace(n.BannedBy)
	n.Description = optional(n.Description)
	n.BanReason = optional(n.BanReason)
	return n
}

// Patch is a partial update. Nil fields are left unchanged by the store.
type Patch struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Author      *string `json:"author" validate:"omitempty,min=1"`
	Description *string `json:"description" validate:"omitempty,min=1"`
	BanReason   *string `json:"ban_reason" validate:"omitempty,min=1"`
	BannedBy    *string `json:"banned_by" validate:"omitempty,min=1"`
}

var patchFields = []string{"title", "author", "description", "ban_reason", "banned_by"}

func (p Patch) normalize() Patch {
	return Patch{
		Title:       validate.TrimPtr(p.Title),
		Author:      validate.TrimPtr(p.Author),
		Description: validate.TrimPtr(p.Description),
		BanReason:   validate.TrimPtr(p.BanReason),
		BannedBy:    validate.TrimPtr(p.BannedBy),
	}
}

func (p Patch) isEmpty() bool {
	return p.Title == nil && p.Author == nil && p.Description == nil &&
		p.BanReason == nil && p.BannedBy == nil
}

// optional trims s and treats a blank value as absent.
func optional(s *string) *string {
	s = validate.TrimPtr(s)
	if s == nil || *s == "" {
		return nil
	}
	return s
}
