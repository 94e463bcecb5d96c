package middleware

import (
	"net/http"
	"net/url"

	stocksage "github.com/hvpham-yorku/StockSage-AI"
)

// ForceHTTPS redirects HTTP requests to HTTPS outside of development and testing.
//
// The "X-Forwarded-Proto" is used to check whether HTTP was requested due to the web client
// running behind a proxy.
func ForceHTTPS(env stocksage.Environment) Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-Forwarded-Proto") == "https" || env.IsDevelopment() || env.IsTesting() {
				handler.ServeHTTP(w, r)
				return
			}

			u := new(url.URL)
			*u = *r.URL
			u.Scheme = "https"
			u.Host = r.Host

			http.Redirect(w, r, u.String(), http.StatusPermanentRedirect)
		})
	}
}
