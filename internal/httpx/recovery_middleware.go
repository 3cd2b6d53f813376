package httpx

import (
	"fmt"
	"net/http"

	"bannedbooks/internal/apperr"

	"go.uber.org/zap"
)

func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw, ok := w.(*responseWriter)
		if !ok {
			rw = &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		}

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			LoggerFrom(r).Error("panic recovered", zap.Any("panic", rec), zap.Stack("stack"))

			if !rw.wroteHeader() {
				Error(rw, r, apperr.Unexpected("An internal error occurred", fmt.Errorf("panic: %v", rec)))
			}
		}()
		next.ServeHTTP(rw, r)
	})
}
