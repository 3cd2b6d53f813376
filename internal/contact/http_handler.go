package contact

import (
	"net/http"

	"bannedbooks/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// List handles GET /contact_form
// @Summary List contact form submissions
// @Tags contact
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Success 200 {object} pagination.Page[Listed]
// @Failure 400 {object} httpx.ErrorResponse
// @Router /contact_form [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.List(r.Context(), httpx.PageParam(r))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, page)
}

// Search handles GET /contact_form/search
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.Search(r.Context(), r.URL.Query().Get("term"))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, res)
}

// Create handles POST /contact_form with a JSON array of submissions.
// @Summary Submit the contact form
// @Tags contact
// @Accept json
// @Produce json
// @Param request body []NewForm true "Submissions"
// @Success 200 {object} crud.Batch
// @Failure 400 {object} httpx.ErrorResponse
// @Router /contact_form [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var forms []NewForm
	if err := httpx.DecodeJSON(r, &forms); err != nil {
		httpx.Error(w, r, err)
		return
	}

	res, err := h.service.CreateMany(r.Context(), forms)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, res)
}
