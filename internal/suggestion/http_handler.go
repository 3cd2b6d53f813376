package suggestion

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

// List handles GET /suggested_books
// @Summary List suggested books
// @Tags suggestions
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Success 200 {object} pagination.Page[Suggestion]
// @Failure 400 {object} httpx.ErrorResponse
// @Router /suggested_books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.List(r.Context(), httpx.PageParam(r))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, page)
}

// Search handles GET /suggested_books/search
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.Search(r.Context(), r.URL.Query().Get("term"))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, res)
}

// Create handles POST /suggested_books with a JSON array of submissions.
// @Summary Suggest banned books
// @Tags suggestions
// @Accept json
// @Produce json
// @Param request body []NewSuggestion true "Suggested books"
// @Success 200 {object} crud.Batch
// @Failure 400 {object} httpx.ErrorResponse
// @Router /suggested_books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var items []NewSuggestion
	if err := httpx.DecodeJSON(r, &items); err != nil {
		httpx.Error(w, r, err)
		return
	}

	res, err := h.service.SuggestMany(r.Context(), items)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, res)
}

// Promote handles POST /suggested_books/{id}/promote
// @Summary Move a suggestion into the catalog
// @Tags suggestions
// @Security Bearer
// @Param id path int true "Suggestion id"
// @Success 200 {object} crud.Message
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /suggested_books/{id}/promote [post]
func (h *HTTPHandler) Promote(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	res, err := h.service.Promote(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, res)
}

// Delete handles DELETE /suggested_books/{id}
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

// DeleteMany handles DELETE /suggested_books with {"ids": [...]}
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
