// Package middleware provides the chi HTTP middleware chain shared by every
// httpapi route: request logging and brand-context extraction.
package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/socialpulse/engine/pkg/logger"
)

type contextKey string

// BrandIDKey is the context key the brand context is stored under, set by
// BrandContext from the X-Brand-ID header.
const BrandIDKey contextKey = "brand_id"

// Logger logs one structured line per request: method, path, status,
// duration, and the chi request ID.
func Logger(log *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				log.WithRequestID(middleware.GetReqID(r.Context())).
					WithBrandID(r.Header.Get("X-Brand-ID")).
					Infow("request",
						"method", r.Method,
						"path", r.URL.Path,
						"status", ww.Status(),
						"duration_ms", time.Since(start).Milliseconds(),
						"bytes", ww.BytesWritten(),
					)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// BrandContext extracts the owning brand from the X-Brand-ID header and
// attaches it to the request context. Every engine operation is scoped to a
// brand; handlers reject requests missing this header.
func BrandContext() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			brandID := r.Header.Get("X-Brand-ID")
			if brandID == "" {
				http.Error(w, `{"error":"missing X-Brand-ID header"}`, http.StatusBadRequest)
				return
			}
			ctx := context.WithValue(r.Context(), BrandIDKey, brandID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetBrandID extracts the brand ID attached by BrandContext.
func GetBrandID(ctx context.Context) (string, bool) {
	brandID, ok := ctx.Value(BrandIDKey).(string)
	return brandID, ok
}
