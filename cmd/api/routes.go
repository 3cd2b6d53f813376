package main

import (
	"context"
	"net/http"
	"time"

	"bannedbooks/internal/admin"
	"bannedbooks/internal/auth"
	"bannedbooks/internal/book"
	"bannedbooks/internal/config"
	"bannedbooks/internal/contact"
	"bannedbooks/internal/cover"
	"bannedbooks/internal/httpx"
	"bannedbooks/internal/metrics"
	"bannedbooks/internal/session"
	"bannedbooks/internal/store"
	"bannedbooks/internal/suggestion"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"go.uber.org/zap"
)

// app holds the process-wide dependencies the routes are built from. blacklist and
// covers are nil when Redis or object storage is not configured.
type app struct {
	cfg       config.Config
	logger    *zap.Logger
	gw        store.Gateway
	blacklist session.Blacklist
	covers    cover.Uploader
	metrics   *metrics.Metrics
}

func (a *app) routes(ctx context.Context) http.Handler {
	sec := a.cfg.Security

	bookHandler := book.NewHTTPHandler(book.NewService(a.gw, a.cfg.PageSize))
	suggestionHandler := suggestion.NewHTTPHandler(suggestion.NewService(a.gw, a.cfg.PageSize))
	contactHandler := contact.NewHTTPHandler(contact.NewService(a.gw, a.cfg.PageSize))
	authHandler := auth.NewHTTPHandler(auth.NewService(sec.JWTSecret, sec.TokenTTL, admin.NewStore(a.gw), a.blacklist))

	requireAdmin := httpx.AuthMiddleware(sec.JWTSecret, a.blacklist)
	limitBody := httpx.RequestSizeLimitMiddleware(sec.MaxBodyBytes)

	public := func(h http.HandlerFunc) http.Handler { return limitBody(h) }
	private := func(h http.HandlerFunc) http.Handler { return limitBody(requireAdmin(h)) }

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONSuccess(w, map[string]string{"message": "success"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		pingCtx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := a.gw.Ping(pingCtx); err != nil {
			httpx.JSONError(w, http.StatusServiceUnavailable, "Database not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	mux.Handle("GET /metrics", a.metrics.Handler())

	mux.Handle("GET /books", public(bookHandler.List))
	mux.Handle("GET /books/search", public(bookHandler.Search))
	mux.Handle("GET /books/featured", public(bookHandler.Featured))
	mux.Handle("POST /books", private(bookHandler.Create))
	mux.Handle("PUT /books/{id}", private(bookHandler.Update))
	mux.Handle("DELETE /books/{id}", private(bookHandler.Delete))
	mux.Handle("DELETE /books", private(bookHandler.DeleteMany))

	mux.Handle("GET /suggested_books", private(suggestionHandler.List))
	mux.Handle("GET /suggested_books/search", private(suggestionHandler.Search))
	mux.Handle("POST /suggested_books", public(suggestionHandler.Create))
	mux.Handle("POST /suggested_books/{id}/promote", private(suggestionHandler.Promote))
	mux.Handle("DELETE /suggested_books/{id}", private(suggestionHandler.Delete))
	mux.Handle("DELETE /suggested_books", private(suggestionHandler.DeleteMany))

	mux.Handle("GET /contact_form", private(contactHandler.List))
	mux.Handle("GET /contact_form/search", private(contactHandler.Search))
	mux.Handle("POST /contact_form", public(contactHandler.Create))

	mux.Handle("POST /auth/login", public(authHandler.Login))
	mux.Handle("POST /auth/logout", private(authHandler.Logout))

	if a.covers != nil {
		coverHandler := cover.NewHTTPHandler(cover.NewService(a.covers), sec.MaxUploadBytes)
		mux.HandleFunc("POST /book-image/upload", coverHandler.Upload)
	}

	rateLimit := httpx.NewRateLimitMiddleware(ctx, sec.RateLimitRequests, sec.RateLimitWindow, sec.TrustedProxies)
	sentryMW := sentryhttp.New(sentryhttp.Options{Repanic: true})

	return httpx.Chain(mux,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(a.logger),
		httpx.RecoveryMiddleware,
		sentryMW.Handle,
		httpx.SecurityHeadersMiddleware(sec.EnableHSTS),
		httpx.CORSMiddleware(sec.AllowedOrigins),
		rateLimit.Middleware,
		a.metrics.Middleware,
	)
}
