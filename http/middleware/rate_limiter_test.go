package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hvpham-yorku/StockSage-AI/http/middleware"
)

func TestVisitorFetch(t *testing.T) {
	t.Run("Serial", func(t *testing.T) {
		// Arrange
		vs := middleware.NewVisitors()

		// Act
		v1 := vs.Fetch("127.0.0.1")
		time.Sleep(1 * time.Millisecond)
		v2 := vs.Fetch("127.0.0.1")

		// Assert
		require.Equal(t, v1.Limiter, v2.Limiter)
		require.True(t, v1.LastSeen.Before(v2.LastSeen))
	})

	t.Run("Concurrent", func(t *testing.T) {
		// Arrange
		var wg sync.WaitGroup
		vs := middleware.NewVisitors()
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				// Act
				vs.Fetch("127.0.0.1")
			}()
		}

		wg.Wait()
	})
}

func TestRateLimit(t *testing.T) {
	// Arrange
	vs := middleware.NewVisitors()
	h := middleware.RateLimit(vs)(teapotHandler())

	var codes []int

	// Act
	for i := 0; i < 25; i++ {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
		r.Header.Set("X-Forwarded-For", "1.1.1.1")
		h.ServeHTTP(w, r)
		codes = append(codes, w.Code)
	}

	// Assert
	require.Equal(t, http.StatusTeapot, codes[0])
	require.Equal(t, http.StatusTeapot, codes[19])
	require.Equal(t, http.StatusTooManyRequests, codes[24])

	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	r.Header.Set("X-Forwarded-For", "8.8.8.8")

	// Act
	h.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusTeapot, w.Code)
}
