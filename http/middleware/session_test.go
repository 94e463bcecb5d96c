package middleware_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	stocksage "github.com/hvpham-yorku/StockSage-AI"
	"github.com/hvpham-yorku/StockSage-AI/http/middleware"
	"github.com/hvpham-yorku/StockSage-AI/http/session"
)

type failingStore struct{}

func (failingStore) GetSession(*http.Request) (session.Session, error) {
	return session.Session{}, errors.New("bad cookie")
}

func TestInjectSession(t *testing.T) {
	t.Run("Nil-Store", func(t *testing.T) {
		// Arrange + Act
		actual := middleware.InjectSession(nil)

		// Assert
		require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))
	})

	t.Run("Store-Fails", func(t *testing.T) {
		// Arrange
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

		var called bool
		h := http.HandlerFunc(func(_ http.ResponseWriter, rx *http.Request) {
			called = true
			require.Nil(t, rx.Context().Value(stocksage.SessionKey))
		})

		// Act
		middleware.InjectSession(failingStore{})(h).ServeHTTP(w, r)

		// Assert
		require.True(t, called)
	})

	for _, tc := range []struct {
		name     string
		signedIn bool
		id       string
	}{
		{"Existing-ID", true, "stub-session"},
		{"Minted-ID", false, ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			store := session.NewStub(tc.signedIn)
			r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

			// Act
			actual := withSession(t, store, r)

			// Assert
			s, ok := actual.Context().Value(stocksage.SessionKey).(session.Session)
			require.True(t, ok)

			id, ok := actual.Context().Value(stocksage.SessionIDKey).(string)
			require.True(t, ok)
			require.NotZero(t, id)
			require.Equal(t, s.ID(), id)
			if tc.id != "" {
				require.Equal(t, tc.id, id)
			}
		})
	}
}
