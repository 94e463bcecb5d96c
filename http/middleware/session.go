package middleware

import (
	"context"
	"net/http"

	stocksage "github.com/hvpham-yorku/StockSage-AI"
	"github.com/hvpham-yorku/StockSage-AI/http/session"
)

// InjectSession stores the session associated with the *http.Request in *http.Request.Context
// under stocksage.SessionKey, and the browser-session ID under stocksage.SessionIDKey.
//
// A browser session without an ID yet is given one.
//
// If store is nil, NoopAdapter returns and this middleware does nothing.
func InjectSession(store session.SessionStorer) Adapter {
	if store == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := store.GetSession(r)
			if err != nil {
				h.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), stocksage.SessionKey, s)
			if id, err := s.EnsureID(w, r); err == nil {
				ctx = context.WithValue(ctx, stocksage.SessionIDKey, id)
			}

			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
