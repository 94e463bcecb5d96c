package middleware_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	stocksage "github.com/hvpham-yorku/StockSage-AI"
	"github.com/hvpham-yorku/StockSage-AI/domain"
	"github.com/hvpham-yorku/StockSage-AI/http/middleware"
	"github.com/hvpham-yorku/StockSage-AI/http/session"
	"github.com/hvpham-yorku/StockSage-AI/identity"
)

func TestCurrentUserNoop(t *testing.T) {
	// Arrange + Act
	actual := middleware.CurrentUser(newResponder(), nil)

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))

	// Arrange + Act
	actual = middleware.CurrentUser(nil, identity.NewRegistry(new(fakeAuth)))

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))
}

func TestCurrentUserNoSession(t *testing.T) {
	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

	var called bool
	h := http.HandlerFunc(func(_ http.ResponseWriter, rx *http.Request) {
		called = true
		_, ok := middleware.Provider(rx.Context())
		require.False(t, ok)
	})

	// Act
	middleware.CurrentUser(newResponder(), identity.NewRegistry(new(fakeAuth)))(h).ServeHTTP(w, r)

	// Assert
	require.True(t, called)
}

func TestCurrentUser(t *testing.T) {
	ada := domain.User{ID: "uid-ada", Email: "ada@example.com", DisplayName: "Ada"}

	for _, tc := range []struct {
		name        string
		signedIn    bool
		auth        *fakeAuth
		user        *domain.User
		refresh     string
		flashes     []session.Flash
		cacheHeader string
	}{
		{
			name: "Signed-Out",
			auth: new(fakeAuth),
		},
		{
			name:        "Signed-In",
			signedIn:    true,
			auth:        new(fakeAuth),
			user:        &ada,
			refresh:     "stub-refresh",
			cacheHeader: "no-store",
		},
		{
			name:        "Rotated",
			signedIn:    true,
			auth:        &fakeAuth{rotate: true},
			user:        &ada,
			refresh:     "stub-refresh-rotated",
			cacheHeader: "no-store",
		},
		{
			name:     "Expired",
			signedIn: true,
			auth:     &fakeAuth{expired: map[string]bool{"stub-refresh": true}},
			flashes:  []session.Flash{{Class: session.FlashWarning, Msg: session.ExpiredMsg}},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			store := session.NewStub(tc.signedIn)
			w := httptest.NewRecorder()
			r := withSession(t, store, httptest.NewRequest(http.MethodGet, "https://example.com", nil))

			var got *http.Request
			h := http.HandlerFunc(func(_ http.ResponseWriter, rx *http.Request) { got = rx })

			// Act
			middleware.CurrentUser(newResponder(), identity.NewRegistry(tc.auth))(h).ServeHTTP(w, r)

			// Assert
			require.NotNil(t, got)

			p, ok := middleware.Provider(got.Context())
			require.True(t, ok)
			require.Equal(t, identity.Settled, p.Session().State)

			u, ok := got.Context().Value(stocksage.CurrentUserKey).(domain.User)
			if tc.user == nil {
				require.False(t, ok)
			} else {
				require.True(t, ok)
				require.Equal(t, *tc.user, u)
			}

			s, err := store.GetSession(r)
			require.Nil(t, err)
			require.Equal(t, tc.refresh, s.RefreshToken())
			require.Equal(t, tc.flashes, nilIfEmpty(s.Flashes(w, r)))
			require.Equal(t, tc.cacheHeader, w.Header().Get("Cache-Control"))
		})
	}
}

func TestCurrentUserReusesProvider(t *testing.T) {
	// Arrange
	store := session.NewStub(true)
	reg := identity.NewRegistry(new(fakeAuth))
	mw := middleware.CurrentUser(newResponder(), reg)

	var ps []*identity.Provider
	h := http.HandlerFunc(func(_ http.ResponseWriter, rx *http.Request) {
		p, _ := middleware.Provider(rx.Context())
		ps = append(ps, p)
	})

	// Act
	for i := 0; i < 2; i++ {
		r := withSession(t, store, httptest.NewRequest(http.MethodGet, "https://example.com", nil))
		mw(h).ServeHTTP(httptest.NewRecorder(), r)
	}

	// Assert
	require.Len(t, ps, 2)
	require.Same(t, ps[0], ps[1])
	require.Equal(t, 1, reg.Len())
}

func TestProvider(t *testing.T) {
	// Arrange
	ctx := context.Background()

	// Act
	_, ok := middleware.Provider(ctx)

	// Assert
	require.False(t, ok)

	// Arrange
	var nilProvider *identity.Provider
	ctx = context.WithValue(ctx, stocksage.IdentityKey, nilProvider)

	// Act
	_, ok = middleware.Provider(ctx)

	// Assert
	require.False(t, ok)
}

func nilIfEmpty(fs []session.Flash) []session.Flash {
	if len(fs) == 0 {
		return nil
	}
	return fs
}
