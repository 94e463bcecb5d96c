package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	stocksage "github.com/hvpham-yorku/StockSage-AI"
)

// RequestIDHeader carries the request ID back to the browser.
const RequestIDHeader = "X-Request-ID"

// RequestID adds a uuid to the request context under stocksage.RequestIDKey
// and echoes it in the X-Request-ID response header.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.NewString()
			w.Header().Set(RequestIDHeader, id)

			ctx := context.WithValue(r.Context(), stocksage.RequestIDKey, id)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
