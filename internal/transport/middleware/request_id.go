package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/kotaeba/kotaeba-backend/pkg/ctxutil"
)

// RequestIDHeader carries the request id on both request and response.
const RequestIDHeader = "X-Request-Id"

// RequestID returns middleware that propagates the incoming request id,
// generating a fresh UUID when the client did not send one. The id is
// stored in the context and echoed back on the response.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.New().String()
			}
			ctx := ctxutil.WithRequestID(r.Context(), id)
			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
