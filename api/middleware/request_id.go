package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/velvetcrown/wigmatch-backend/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, reqID)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, reqID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDFromHeader reads back the identifier stamped by RequestID so
// handlers can thread it through downstream calls.
func RequestIDFromHeader(w http.ResponseWriter) string {
	return w.Header().Get(requestIDHeader)
}
