package stocksage_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	stocksage "github.com/hvpham-yorku/StockSage-AI"
	"github.com/hvpham-yorku/StockSage-AI/logger"
)

func TestEnvVarOrURL(t *testing.T) {
	for _, tc := range []struct {
		name string
		val  string
		want string
	}{
		{"unset", "", "http://localhost:8000"},
		{"set", "https://api.stocksage.test", "https://api.stocksage.test"},
		{"trailing-slash", "https://api.stocksage.test/v1/", "https://api.stocksage.test/v1"},
		{"garbage", "not a url", "http://localhost:8000"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			t.Setenv("API_URL", tc.val)

			// Act
			actual := stocksage.EnvVarOrURL("API_URL", "http://localhost:8000/")

			// Assert
			require.Equal(t, tc.want, actual.String())
		})
	}
}

func TestEnvVarOrDuration(t *testing.T) {
	t.Setenv("API_TIMEOUT", "3s")
	require.Equal(t, 3*time.Second, stocksage.EnvVarOrDuration("API_TIMEOUT", time.Second))

	t.Setenv("API_TIMEOUT", "-3s")
	require.Equal(t, time.Second, stocksage.EnvVarOrDuration("API_TIMEOUT", time.Second))

	t.Setenv("API_TIMEOUT", "soon")
	require.Equal(t, time.Second, stocksage.EnvVarOrDuration("API_TIMEOUT", time.Second))
}

func TestEnvVarOrEnv(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	require.Equal(t, stocksage.Production, stocksage.EnvVarOrEnv("ENVIRONMENT", stocksage.Development))

	t.Setenv("ENVIRONMENT", "moon")
	require.Equal(t, stocksage.Development, stocksage.EnvVarOrEnv("ENVIRONMENT", stocksage.Development))
}

func TestEnvVarOrLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	require.Equal(t, logger.LogLevelWarn, stocksage.EnvVarOrLogLevel("LOG_LEVEL", logger.LogLevelInfo))

	t.Setenv("LOG_LEVEL", "")
	require.Equal(t, logger.LogLevelInfo, stocksage.EnvVarOrLogLevel("LOG_LEVEL", logger.LogLevelInfo))
}

func TestEnvVarOrBool(t *testing.T) {
	t.Setenv("FLAG", "TRUE")
	require.True(t, stocksage.EnvVarOrBool("FLAG", false))

	t.Setenv("FLAG", "nope")
	require.False(t, stocksage.EnvVarOrBool("FLAG", false))
}
