package ranger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	stocksage "github.com/hvpham-yorku/StockSage-AI"
	"github.com/hvpham-yorku/StockSage-AI/http/template"
	"github.com/hvpham-yorku/StockSage-AI/logger"
	"github.com/hvpham-yorku/StockSage-AI/ranger"
	"github.com/hvpham-yorku/StockSage-AI/web"
)

const hexKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func TestMaintModeHandler(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	l := logger.NewLogger(logger.WithWriter(b))
	p := template.NewParser(template.WithFS(fstest.MapFS{}))
	handler := ranger.MaintModeHandler(p, l, "test@example.com")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(rr, req)

	// Assert
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	require.Equal(t, "600", rr.Result().Header.Get("Retry-After"))
	require.Equal(t, "", rr.Body.String())
	require.Contains(t, b.String(), "could not parse maintenance page")

	// Arrange
	p = template.NewParser(template.WithFS(fstest.MapFS{
		web.MaintTmpl: {Data: []byte(`Sorry for the inconvenience, email {{ .Contact }}`)},
	}))
	handler = ranger.MaintModeHandler(p, l, "test@example.com")
	req = httptest.NewRequest(http.MethodPost, "/maint-mode-test", nil)
	rr = httptest.NewRecorder()

	// Act
	handler.ServeHTTP(rr, req)

	// Assert
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	require.Equal(t, "600", rr.Result().Header.Get("Retry-After"))
	require.Equal(t, "Sorry for the inconvenience, email test@example.com", rr.Body.String())
}

func TestMaintModeHandlerEmbeddedPage(t *testing.T) {
	// Arrange
	p := template.NewParser(web.ParserOpts(stocksage.Testing, &url.URL{Scheme: "https", Host: "example.com"})...)
	rr := httptest.NewRecorder()

	// Act
	ranger.MaintModeHandler(p, logger.NewLogger(logger.WithWriter(new(bytes.Buffer))), "help@example.com").
		ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/portfolio", nil))

	// Assert
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	require.Contains(t, rr.Body.String(), "help@example.com")
}

func TestNewConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		// Arrange
		for _, key := range []string{
			"API_TIMEOUT", "API_URL", "APP_TITLE", "BASE_URL", "ENVIRONMENT",
			"IDENTITY_IDLE_TTL", "MAINTENANCE_MODE", "PORT", "SESSION_MAX_AGE",
		} {
			t.Setenv(key, "")
		}

		// Act
		cfg := ranger.NewConfig()

		// Assert
		require.Equal(t, 10*time.Second, cfg.APITimeout)
		require.Equal(t, "http://localhost:8000", cfg.APIURL.String())
		require.Equal(t, "StockSage", cfg.AppTitle)
		require.Equal(t, "http://localhost:3000", cfg.BaseURL.String())
		require.Equal(t, stocksage.Development, cfg.Env)
		require.Equal(t, 30*time.Minute, cfg.IdleTTL)
		require.False(t, cfg.Maintenance)
		require.Equal(t, ranger.DefaultPort, cfg.Port)
		require.Equal(t, 3600*24*7, cfg.SessionMaxAge)
	})

	t.Run("Overrides", func(t *testing.T) {
		// Arrange
		t.Setenv("API_TIMEOUT", "3s")
		t.Setenv("API_URL", "https://api.stocksage.example.com")
		t.Setenv("ENVIRONMENT", "STAGING")
		t.Setenv("FIREBASE_API_KEY", "key")
		t.Setenv("FIREBASE_PROJECT_ID", "stocksage")
		t.Setenv("IDENTITY_IDLE_TTL", "5m")
		t.Setenv("MAINTENANCE_MODE", "true")
		t.Setenv("SESSION_MAX_AGE", "60")

		// Act
		cfg := ranger.NewConfig()

		// Assert
		require.Equal(t, 3*time.Second, cfg.APITimeout)
		require.Equal(t, "https://api.stocksage.example.com", cfg.APIURL.String())
		require.Equal(t, stocksage.Staging, cfg.Env)
		require.Equal(t, "key", cfg.Firebase.APIKey)
		require.Equal(t, "stocksage", cfg.Firebase.ProjectID)
		require.Equal(t, 5*time.Minute, cfg.IdleTTL)
		require.True(t, cfg.Maintenance)
		require.Equal(t, 60, cfg.SessionMaxAge)
	})
}

// setEnv configures a Ranger talking to backend with no identity provider.
func setEnv(t *testing.T, backend string) {
	t.Helper()

	t.Setenv("API_URL", backend)
	t.Setenv("BASE_URL", "http://example.com")
	t.Setenv("CORS_ORIGIN", "")
	t.Setenv("ENVIRONMENT", "TESTING")
	t.Setenv("MAINTENANCE_MODE", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("SENTRY_DSN", "")
	t.Setenv("SESSION_AUTH_KEY", hexKey)
	t.Setenv("SESSION_ENCRYPTION_KEY", hexKey)
	t.Setenv("TEMPLATE_DIR", "")
	for _, key := range []string{"FIREBASE_API_KEY", "FIREBASE_AUTH_DOMAIN", "FIREBASE_PROJECT_ID", "FIREBASE_DATABASE_URL"} {
		t.Setenv(key, "")
	}
}

func newBackend(t *testing.T, status int) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"status":"healthy","services":{"firebase":"up"},"api_version":"1.0"}`))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func newRanger(t *testing.T, opts ...ranger.RangerOption) *ranger.Ranger {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	opts = append([]ranger.RangerOption{
		ranger.WithContext(ctx),
		ranger.WithLogger(logger.NewLogger(logger.WithWriter(new(bytes.Buffer)))),
	}, opts...)

	rng, err := ranger.New(opts...)
	require.Nil(t, err)

	return rng
}

func TestNewWithoutIdentityProvider(t *testing.T) {
	// Arrange
	setEnv(t, newBackend(t, http.StatusOK).URL)

	// Act
	rng := newRanger(t)

	// Assert
	require.Nil(t, rng.EmitRegistry())
	require.Equal(t, stocksage.Testing, rng.EmitConfig().Env)
	require.NotNil(t, rng.EmitSessionStore())
}

func TestNewBadSessionKey(t *testing.T) {
	// Arrange
	setEnv(t, newBackend(t, http.StatusOK).URL)
	t.Setenv("SESSION_AUTH_KEY", "not hex")

	// Act
	rng, err := ranger.New(ranger.WithLogger(logger.NewLogger(logger.WithWriter(new(bytes.Buffer)))))

	// Assert
	require.Nil(t, rng)
	require.ErrorIs(t, err, ranger.ErrBadConfig)
}

func TestRangerRoutes(t *testing.T) {
	for _, tc := range []struct {
		name     string
		status   int
		path     string
		accept   string
		code     int
		location string
	}{
		{"Home", http.StatusOK, "/", "text/html", http.StatusOK, ""},
		{"Protected-Page-Denied", http.StatusOK, web.PortfolioPath, "text/html", http.StatusFound, web.LoginPath},
		{"Not-Found-Html", http.StatusOK, "/nope", "text/html", http.StatusSeeOther, "http://example.com"},
		{"Not-Found", http.StatusOK, "/nope", "application/json", http.StatusNotFound, ""},
		{"Metrics", http.StatusOK, "/metrics", "text/plain", http.StatusOK, ""},
		{"Healthy", http.StatusOK, "/healthz", "application/json", http.StatusOK, ""},
		{"Unhealthy", http.StatusInternalServerError, "/healthz", "application/json", http.StatusServiceUnavailable, ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			setEnv(t, newBackend(t, tc.status).URL)
			rng := newRanger(t)

			req := httptest.NewRequest(http.MethodGet, "http://example.com"+tc.path, nil)
			req.Header.Set("Accept", tc.accept)
			w := httptest.NewRecorder()

			// Act
			rng.ServeHTTP(w, req)

			// Assert
			require.Equal(t, tc.code, w.Code)
			if tc.location != "" {
				require.Contains(t, w.Header().Get("Location"), tc.location)
			}
		})
	}
}

func TestHealthzReportsBackendStatus(t *testing.T) {
	// Arrange
	setEnv(t, newBackend(t, http.StatusOK).URL)
	rng := newRanger(t)
	w := httptest.NewRecorder()

	// Act
	rng.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://example.com/healthz", nil))

	// Assert
	var body struct {
		Data struct {
			Status   string            `json:"status"`
			Services map[string]string `json:"services"`
		} `json:"data"`
	}
	require.Nil(t, json.NewDecoder(w.Body).Decode(&body))
	require.Equal(t, "healthy", body.Data.Status)
	require.Equal(t, "up", body.Data.Services["firebase"])
}

func TestMaintenanceModeCatchesEverything(t *testing.T) {
	// Arrange
	setEnv(t, newBackend(t, http.StatusOK).URL)
	t.Setenv("MAINTENANCE_MODE", "true")
	rng := newRanger(t)

	for _, path := range []string{"/", "/healthz", web.PortfolioPath + "/p1"} {
		w := httptest.NewRecorder()

		// Act
		rng.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://example.com"+path, nil))

		// Assert
		require.Equal(t, http.StatusServiceUnavailable, w.Code, path)
		require.Equal(t, "600", w.Header().Get("Retry-After"))
	}
}

func TestShutdownCancelsContext(t *testing.T) {
	// Arrange
	setEnv(t, newBackend(t, http.StatusOK).URL)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rng, err := ranger.New(
		ranger.WithContext(ctx),
		ranger.WithLogger(logger.NewLogger(logger.WithWriter(new(bytes.Buffer)))),
		ranger.WithServer(&http.Server{Addr: "127.0.0.1:0"}),
	)
	require.Nil(t, err)

	done := make(chan error, 1)
	go func() { done <- rng.Guide() }()

	// Act
	cancel()

	// Assert
	select {
	case err := <-done:
		require.Nil(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Guide did not return after the context was cancelled")
	}
}
