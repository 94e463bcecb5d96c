package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	stocksage "github.com/hvpham-yorku/StockSage-AI"
	"github.com/hvpham-yorku/StockSage-AI/http/middleware"
)

func TestForceHTTPS(t *testing.T) {
	for _, tc := range []struct {
		name     string
		env      stocksage.Environment
		proto    string
		code     int
		location string
	}{
		{"Development", stocksage.Development, "http", http.StatusOK, ""},
		{"Testing", stocksage.Testing, "http", http.StatusOK, ""},
		{"Already-HTTPS", stocksage.Production, "https", http.StatusOK, ""},
		{"Production-HTTP", stocksage.Production, "http", http.StatusPermanentRedirect, "https://example.com/portfolios?id=1"},
		{"Staging-HTTP", stocksage.Staging, "", http.StatusPermanentRedirect, "https://example.com/portfolios?id=1"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "http://example.com/portfolios?id=1", nil)
			if tc.proto != "" {
				r.Header.Set("X-Forwarded-Proto", tc.proto)
			}

			// Act
			middleware.ForceHTTPS(tc.env)(noopHandler()).ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.code, w.Code)
			require.Equal(t, tc.location, w.Header().Get("Location"))
		})
	}
}
