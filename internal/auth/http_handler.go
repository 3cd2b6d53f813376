package auth

import (
	"net/http"

	"bannedbooks/internal/apperr"
	"bannedbooks/internal/crud"
	"bannedbooks/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type LoginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /auth/login
// @Summary Admin login
// @Description Exchange admin credentials for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginReq true "Login request"
// @Success 200 {object} Token
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /auth/login [post]
func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}

	tok, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, tok)
}

// Logout handles POST /auth/logout
// @Summary Admin logout
// @Description Revoke the current bearer token
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} crud.Message
// @Failure 401 {object} httpx.ErrorResponse
// @Router /auth/logout [post]
func (h *HTTPHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := httpx.BearerToken(r)
	if !ok {
		httpx.Error(w, r, apperr.Unauthorized("Unauthorized"))
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, crud.Message{Message: "Logged out successfully"})
}
