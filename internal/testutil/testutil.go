// Package testutil holds helpers shared by HTTP tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"bannedbooks/internal/platform/crypto"

	"github.com/golang-jwt/jwt/v5"
)

// AdminID is the subject of tokens minted by GenerateAdminToken.
const AdminID = "1"

// GenerateAdminToken signs a valid admin token.
func GenerateAdminToken(secret string) string {
	token, _, _ := crypto.GenerateToken(secret, AdminID, crypto.RoleAdmin, time.Hour)
	return token
}

// GenerateToken signs a valid token with an arbitrary role.
func GenerateToken(secret, role string) string {
	token, _, _ := crypto.GenerateToken(secret, AdminID, role, time.Hour)
	return token
}

// GenerateExpiredToken signs an admin token that expired an hour ago.
func GenerateExpiredToken(secret string) string {
	c := crypto.Claims{
		Sub:  AdminID,
		Role: crypto.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "bannedbooks",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	token, _ := t.SignedString([]byte(secret))
	return token
}

// NewRequest creates a request with body encoded as JSON when it is not nil.
func NewRequest(method, path string, body any) *http.Request {
	if body == nil {
		return httptest.NewRequest(method, path, nil)
	}
	b, _ := json.Marshal(body)
	r := httptest.NewRequest(method, path, bytes.NewReader(b))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// NewRequestWithAuth is NewRequest with a bearer token.
func NewRequestWithAuth(method, path string, body any, token string) *http.Request {
	r := NewRequest(method, path, body)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]any
}

// RecordHTTPResponse decodes a JSON object body from w.
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]any
	if len(bodyBytes) > 0 {
		_ = json.Unmarshal(bodyBytes, &bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}
