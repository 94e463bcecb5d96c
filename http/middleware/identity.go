package middleware

import (
	"context"
	"errors"
	"net/http"

	stocksage "github.com/hvpham-yorku/StockSage-AI"
	"github.com/hvpham-yorku/StockSage-AI/http/resp"
	"github.com/hvpham-yorku/StockSage-AI/http/session"
	"github.com/hvpham-yorku/StockSage-AI/identity"
	"github.com/hvpham-yorku/StockSage-AI/logger"
)

// An IdentityRegistry hands out the Session Provider owned by a browser session.
//
// *identity.Registry is an IdentityRegistry.
type IdentityRegistry interface {
	Provider(ctx context.Context, sessionID, refreshToken string) (*identity.Provider, error)
}

var _ IdentityRegistry = (*identity.Registry)(nil)

// CurrentUser stores the Session Provider of the browser session in the *http.Request.Context
// under stocksage.IdentityKey, and, when somebody is signed in, the domain.User under stocksage.CurrentUserKey.
//
// CurrentUser keeps the refresh credential in the browser session in step with the Provider's:
// an expired credential is dropped with a flash asking to log in again,
// and a rotated one is saved.
//
// CurrentUser requires InjectSession earlier in the chain.
// If reg is nil, no Session Provider is available and NoopAdapter returns;
// every gate downstream then denies.
func CurrentUser(d *resp.Responder, reg IdentityRegistry) Adapter {
	if d == nil || reg == nil {
		return NoopAdapter
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := d.Session(r.Context())
			if err != nil {
				handler.ServeHTTP(w, r)
				return
			}

			id, _ := r.Context().Value(stocksage.SessionIDKey).(string)
			if id == "" {
				handler.ServeHTTP(w, r)
				return
			}

			p, err := reg.Provider(r.Context(), id, s.RefreshToken())
			if p == nil {
				handler.ServeHTTP(w, r)
				return
			}

			switch {
			case errors.Is(err, identity.ErrTokenExpired):
				_ = s.DeregisterIdentity(w, r)
				_ = s.SetFlash(w, r, session.Flash{Class: session.FlashWarning, Msg: session.ExpiredMsg})
			case err != nil:
				d.Logger().Warn("restoring identity failed", &logger.LogContext{Error: err, Request: r})
			default:
				// NOTE: another request may still be restoring this browser session's Provider
				_ = p.Ready(r.Context())
				if rt := p.RefreshToken(); rt != s.RefreshToken() {
					_ = s.RegisterIdentity(w, r, rt)
				}
			}

			ctx := context.WithValue(r.Context(), stocksage.IdentityKey, p)
			if sess := p.Session(); sess.SignedIn() {
				w.Header().Set("Cache-Control", "no-store")
				ctx = context.WithValue(ctx, stocksage.CurrentUserKey, sess.User())
			}

			handler.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Provider retrieves the Session Provider CurrentUser stored in ctx.
func Provider(ctx context.Context) (*identity.Provider, bool) {
	p, ok := ctx.Value(stocksage.IdentityKey).(*identity.Provider)
	return p, ok && p != nil
}
