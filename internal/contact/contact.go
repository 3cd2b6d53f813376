// Package contact stores messages sent through the public contact form.
package contact

import (
	"strings"
	"time"

	"bannedbooks/internal/store"
)

// DisplayLayout is how list responses render timestamps, always in UTC.
const DisplayLayout = "Jan 2, 2006, 03:04 PM"

// Form is one contact form submission.
type Form struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   *string   `json:"message"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

func scanForm(rows store.Rows) (Form, error) {
	var f Form
	err := rows.Scan(&f.ID, &f.Name, &f.Email, &f.Message, &f.CreatedOn, &f.UpdatedOn)
	return f, err
}

// Listed is a Form with display-formatted timestamps.
type Listed struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Message   *string `json:"message"`
	CreatedOn *string `json:"created_on"`
	UpdatedOn *string `json:"updated_on"`
}

func listed(f Form) Listed {
	return Listed{
		ID:        f.ID,
		Name:      f.Name,
		Email:     f.Email,
		Message:   f.Message,
		CreatedOn: displayTime(f.CreatedOn),
		UpdatedOn: displayTime(f.UpdatedOn),
	}
}

func displayTime(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(DisplayLayout)
	return &s
}

// NewForm is the submission payload.
type NewForm struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Message *string `json:"message"`
}

func (n NewForm) normalize() NewForm {
	n.Name = strings.TrimSpace(n.Name)
	n.Email = strings.TrimSpace(n.Email)
	if n.Message != nil {
		m := strings.TrimSpace(*n.Message)
		n.Message = &m
	}
	return n
}
