package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/weaponlions/ecommerce-server/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

// RequestID tags every request with a correlation id, echoing it back in the
// response header. Inbound ids are honored only when they parse as UUIDs so a
// client cannot inject arbitrary strings into the logs.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := inboundRequestID(r)
			w.Header().Set(requestIDHeader, reqID)

			ctx := logger.ContextWithRequestID(r.Context(), reqID)
			if logg != nil {
				ctx = logg.WithRequestID(ctx, reqID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func inboundRequestID(r *http.Request) string {
	raw := r.Header.Get(requestIDHeader)
	if _, err := uuid.Parse(raw); err == nil {
		return raw
	}
	return uuid.NewString()
}
