package book

import (
	"net/http"

	"bannedbooks/internal/crud"
	"bannedbooks/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// List handles GET /books
// @Summary List banned books
// @Tags books
// @Produce json
// @Param page query int false "Page number" default(1)
// @Success 200 {object} pagination.Page[Book]
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.List(r.Context(), httpx.PageParam(r))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, page)
}

// Search handles GET /books/search
// @Summary Search banned books
// @Tags books
// @Produce json
// @Param term query string true "Search term"
// @Success 200 {object} crud.List[Book]
// @Failure 400 {object} httpx.ErrorResponse
// @Router /books/search [get]
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.Search(r.Context(), r.URL.Query().Get("term"))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, res)
}

// Featured handles GET /books/featured
func (h *HTTPHandler) Featured(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.Featured(r.Context())
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, res)
}

// Create handles POST /books with a JSON array of books.
// @Summary Add banned books
// @Tags books
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body []NewBook true "Books to add"
// @Success 200 {object} crud.Batch
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var books []NewBook
	if err := httpx.DecodeJSON(r, &books); err != nil {
		httpx.Error(w, r, err)
		return
	}

	res, err := h.service.CreateMany(r.Context(), books)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, res)
}

// Update handles PUT /books/{id}
// @Summary Update a banned book
// @Tags books
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Book id"
// @Param request body Patch true "Fields to change"
// @Success 200 {object} crud.Message
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	var p Patch
	if err := httpx.DecodeJSON(r, &p); err != nil {
		httpx.Error(w, r, err)
		return
	}

	res, err := h.service.Update(r.Context(), id, p)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, res)
}

// Delete handles DELETE /books/{id}
// @Summary Delete a banned book
// @Tags books
// @Security Bearer
// @Param id path int true "Book id"
// @Success 200 {object} crud.Message
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	res, err := h.service.Remove(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, res)
}

type deleteManyReq struct {
	IDs []any `json:"ids"`
}

// DeleteMany handles DELETE /books with {"ids": [...]}
// @Summary Delete several banned books
// @Tags books
// @Accept json
// @Security Bearer
// @Success 200 {object} crud.Message
// @Failure 400 {object} httpx.ErrorResponse
// @Router /books [delete]
func (h *HTTPHandler) DeleteMany(w http.ResponseWriter, r *http.Request) {
	var req deleteManyReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}

	ids, err := crud.ParseIDs(req.IDs)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	res, err := h.service.RemoveMany(r.Context(), ids)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, res)
}
