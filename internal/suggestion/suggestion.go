// Package suggestion manages reader-submitted books awaiting review.
package suggestion

import (
	"strings"
	"time"

	"bannedbooks/internal/store"
	"bannedbooks/internal/validate"
)

// Suggestion is an unreviewed book submission. Admins either promote it into the
// catalog or delete it.
type Suggestion struct {
	ID          int64     `json:"id"`
	ISBN        *string   `json:"isbn"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description *string   `json:"description"`
	BanReason   *string   `json:"ban_reason"`
	BannedBy    *string   `json:"banned_by"`
	CoverURL    *string   `json:"cover_url"`
	CreatedOn   time.Time `json:"created_on"`
	UpdatedOn   time.Time `json:"updated_on"`
}

func scanSuggestion(rows store.Rows) (Suggestion, error) {
	var s Suggestion
	err := rows.Scan(
		&s.ID, &s.ISBN, &s.Title, &s.Author,
		&s.Description, &s.BanReason, &s.BannedBy, &s.CoverURL,
		&s.CreatedOn, &s.UpdatedOn,
	)
	return s, err
}

// NewSuggestion is the public submission payload.
type NewSuggestion struct {
	ISBN        *string `json:"isbn" validate:"omitempty,isbn"`
	Title       string  `json:"title" validate:"required"`
	Author      string  `json:"author" validate:"required"`
	Description *string `json:"description"`
	BanReason   *string `json:"ban_reason"`
	BannedBy    string  `json:"banned_by" validate:"required"`
	CoverURL    *string `json:"cover_url"`
}

func (n NewSuggestion) normalize() NewSuggestion {
	n.ISBN = optional(n.ISBN)
	n.Title = strings.TrimSpace(n.Title)
	n.Author = strings.TrimSpace(n.Author)
	n.BannedBy = strings.TrimSpace(n.BannedBy)
	n.Description = optional(n.Description)
	n.BanReason = optional(n.BanReason)
	n.CoverURL = optional(n.CoverURL)
	return n
}

func optional(s *string) *string {
	s = validate.TrimPtr(s)
	if s == nil || *s == "" {
		return nil
	}
	return s
}
