package identity_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hvpham-yorku/StockSage-AI/identity"
)

func testConfig(tokenURL string) identity.Config {
	return identity.Config{
		APIKey:        "api-key",
		AuthDomain:    "stocksage.firebaseapp.com",
		ProjectID:     "stocksage",
		DatabaseURL:   "https://stocksage.firebaseio.com",
		TokenEndpoint: tokenURL,
	}
}

func TestConfigValid(t *testing.T) {
	for _, tc := range []struct {
		name    string
		cfg     identity.Config
		missing []string
	}{
		{"complete", testConfig(""), nil},
		{"empty", identity.Config{}, []string{"apiKey", "authDomain", "projectId", "databaseURL"}},
		{"blank-database", identity.Config{APIKey: "k", AuthDomain: "d", ProjectID: "p", DatabaseURL: "  "}, []string{"databaseURL"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			err := tc.cfg.Valid()

			// Assert
			require.Equal(t, tc.missing, tc.cfg.Missing())
			if tc.missing == nil {
				require.Nil(t, err)
				return
			}
			require.ErrorIs(t, err, identity.ErrBadConfig)
		})
	}
}

func TestNewFirebaseBadConfig(t *testing.T) {
	f, err := identity.NewFirebase(context.Background(), identity.Config{APIKey: "k"}, nil)
	require.ErrorIs(t, err, identity.ErrBadConfig)
	require.Nil(t, f)
}

func TestFirebaseRefresh(t *testing.T) {
	// Arrange
	var gotKey, gotGrant, gotRefresh string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Nil(t, r.ParseForm())
		gotKey = r.URL.Query().Get("key")
		gotGrant = r.PostForm.Get("grant_type")
		gotRefresh = r.PostForm.Get("refresh_token")

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"at","expires_in":"3600","token_type":"Bearer","refresh_token":"rt-rotated","id_token":"id-token","user_id":"uid-ada"}`)
	}))
	defer srv.Close()

	f, err := identity.NewFirebase(context.Background(), testConfig(srv.URL), srv.Client())
	require.Nil(t, err)

	// Act
	cred, err := f.Refresh(context.Background(), "rt-original")

	// Assert
	require.Nil(t, err)
	require.Equal(t, identity.Credential{IDToken: "id-token", RefreshToken: "rt-rotated"}, cred)
	require.Equal(t, "api-key", gotKey)
	require.Equal(t, "refresh_token", gotGrant)
	require.Equal(t, "rt-original", gotRefresh)
}

func TestFirebaseRefreshExpired(t *testing.T) {
	for _, code := range []string{"TOKEN_EXPIRED", "INVALID_REFRESH_TOKEN", "USER_DISABLED", "USER_NOT_FOUND"} {
		t.Run(code, func(t *testing.T) {
			// Arrange
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				fmt.Fprintf(w, `{"error":{"code":400,"message":%q,"status":"INVALID_ARGUMENT"}}`, code)
			}))
			defer srv.Close()

			f, err := identity.NewFirebase(context.Background(), testConfig(srv.URL), srv.Client())
			require.Nil(t, err)

			// Act
			_, err = f.Refresh(context.Background(), "rt-original")

			// Assert
			require.ErrorIs(t, err, identity.ErrTokenExpired)
		})
	}
}

func TestFirebaseRefreshServerError(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f, err := identity.NewFirebase(context.Background(), testConfig(srv.URL), srv.Client())
	require.Nil(t, err)

	// Act
	_, err = f.Refresh(context.Background(), "rt-original")

	// Assert
	require.NotNil(t, err)
	require.NotErrorIs(t, err, identity.ErrTokenExpired)
}
