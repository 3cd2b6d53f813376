package cover

import (
	"errors"
	"net/http"

	"bannedbooks/internal/apperr"
	"bannedbooks/internal/httpx"
)

type HTTPHandler struct {
	service  *Service
	maxBytes int64
}

func NewHTTPHandler(service *Service, maxBytes int64) *HTTPHandler {
	return &HTTPHandler{service: service, maxBytes: maxBytes}
}

// Upload handles POST /book-image/upload
// @Summary Upload a book cover
// @Tags covers
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Cover image"
// @Param isbn formData string false "ISBN used as the object name"
// @Success 200 {object} Result
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /book-image/upload [post]
func (h *HTTPHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httpx.Error(w, r, apperr.New("Request body too large", http.StatusRequestEntityTooLarge, nil))
			return
		}
		httpx.Error(w, r, ErrNoFile)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		httpx.Error(w, r, ErrNoFile)
		return
	}
	defer file.Close()

	res, err := h.service.Upload(r.Context(), Upload{
		Filename:    header.Filename,
		ISBN:        r.FormValue("isbn"),
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, res)
}
