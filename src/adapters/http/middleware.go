package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"propertylisting/src/services/auth"

	"github.com/go-chi/chi/v5/middleware"
)

type contextKey string

const authenticatedEmailKey contextKey = "authenticated_email"

// AuthenticatedEmail devolve o email do token validado pelo requireBearer.
func AuthenticatedEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(authenticatedEmailKey).(string)
	return email, ok
}

func requireBearer(tokens *auth.TokenIssuer, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="listings"`)
				writeMessage(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			email, err := tokens.Verify(strings.TrimSpace(token))
			if err != nil {
				logger.Debug("bearer token rejected", "error", err)
				w.Header().Set("WWW-Authenticate", `Bearer realm="listings", error="invalid_token"`)
				writeMessage(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), authenticatedEmailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()))
		})
	}
}
