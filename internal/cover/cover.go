// Package cover uploads book cover images to object storage.
package cover

import (
	"context"
	"io"
	"path"
	"strings"

	"bannedbooks/internal/apperr"
)

// ErrNoFile is returned when the request carries no image part.
var ErrNoFile = apperr.Validation("No file uploaded", nil)

// Upload is one received image.
type Upload struct {
	Filename    string
	ISBN        string
	ContentType string
	Size        int64
	Body        io.ReadSeeker
}

type Result struct {
	Message  string `json:"message"`
	FileName string `json:"fileName"`
}

// ObjectKey names the stored object: the ISBN plus the original extension when an ISBN
// is given, otherwise the original file name.
func ObjectKey(isbn, filename string) string {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return filename
	}
	return isbn + path.Ext(filename)
}

type Service struct {
	store Uploader
}

func NewService(store Uploader) *Service {
	return &Service{store: store}
}

func (s *Service) Upload(ctx context.Context, u Upload) (Result, error) {
	if u.Body == nil || u.Filename == "" {
		return Result{}, ErrNoFile
	}

	key := ObjectKey(u.ISBN, u.Filename)
	contentType := u.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := s.store.Put(ctx, key, contentType, u.Body, u.Size); err != nil {
		return Result{}, apperr.Unexpected("Upload failed", err)
	}
	return Result{Message: "Upload successful", FileName: key}, nil
}
