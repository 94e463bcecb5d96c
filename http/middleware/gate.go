package middleware

import (
	"net/http"

	stocksage "github.com/hvpham-yorku/StockSage-AI"
	"github.com/hvpham-yorku/StockSage-AI/gate"
	"github.com/hvpham-yorku/StockSage-AI/http/resp"
)

// Gate admits a request to the wrapped handler only once a gate.Controller,
// built from opts over the Session Provider CurrentUser stored in the request context,
// is Granted.
//
// While the Controller is Unknown or Settling, Gate holds the request.
// Nothing protected is written before the decision.
//
// When Denied, Gate takes one of these actions:
//   - a redirect Fallback answers 401 to requests accepting JSON,
//     and otherwise redirects there, carrying a GET request's URL in the "next" query param
//   - a Fallback whose Content is an http.Handler serves that handler
//   - a Fallback whose Content is a string renders that template for a signed out visitor
//   - any other Fallback answers 401
//
// Gate requires CurrentUser earlier in the chain.
// A request without a Session Provider is Denied.
func Gate(d *resp.Responder, opts ...gate.Opt) Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// NOTE: a nil *identity.Provider must not become a non-nil gate.Source
			var src gate.Source
			if p, ok := Provider(r.Context()); ok {
				src = p
			}

			c := gate.New(src, opts...)
			c.Mount()
			state, err := c.Wait(r.Context())
			c.Unmount()

			if err != nil {
				// NOTE: the client went away
				return
			}

			if state == gate.Granted {
				handler.ServeHTTP(w, r)
				return
			}

			denied(d, c.Fallback(), w, r)
		})
	}
}

func denied(d *resp.Responder, f gate.Fallback, w http.ResponseWriter, r *http.Request) {
	if f.IsRedirect() {
		if acceptsJson(r.Header) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		opts := []resp.Fn{resp.Url(f.Redirect)}
		if r.Method == http.MethodGet {
			opts = append(opts, resp.Param("next", r.URL.RequestURI()))
		}

		if err := d.Redirect(w, r, opts...); err != nil {
			d.Err(w, r, err)
		}

		return
	}

	switch content := f.Content.(type) {
	case http.Handler:
		content.ServeHTTP(w, r)
	case string:
		if err := d.Html(w, r, resp.Unauthed(), resp.Tmpls(content)); err != nil {
			d.Err(w, r, err)
		}
	default:
		w.WriteHeader(http.StatusUnauthorized)
	}
}

// RequireUnauthed redirects a signed in visitor to the URL to,
// keeping pages like login and sign up for signed out visitors.
func RequireUnauthed(d *resp.Responder, to string) Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Context().Value(stocksage.CurrentUserKey) == nil {
				handler.ServeHTTP(w, r)
				return
			}

			if err := d.Redirect(w, r, resp.Url(to)); err != nil {
				d.Err(w, r, err)
			}
		})
	}
}
