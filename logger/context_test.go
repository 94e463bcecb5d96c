package logger_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hvpham-yorku/StockSage-AI/logger"
)

func TestLogContextMarshalText(t *testing.T) {
	// Arrange
	lc := logger.LogContext{}

	// Act
	b, err := lc.MarshalText()

	// Assert
	require.Nil(t, err)
	require.Equal(t, []byte("{}"), b)

	// Arrange
	lc = logger.LogContext{Data: map[string]any{"symbol": "AAPL"}}

	// Act
	b, err = lc.MarshalText()

	// Assert
	require.Nil(t, err)
	require.Equal(t, `{"data":{"symbol":"AAPL"}}`, string(b))

	// Arrange
	lc = logger.LogContext{Error: errors.New("test")}

	// Act
	b, err = lc.MarshalText()

	// Assert
	require.Nil(t, err)
	require.Equal(t, `{"error":"test"}`, string(b))

	// Arrange
	lc = logger.LogContext{User: testUser{}}

	// Act
	b, err = lc.MarshalText()

	// Assert
	require.Nil(t, err)
	require.Equal(t, `{"user":{"email":"test@example.com","id":"uid-1"}}`, string(b))
}

func TestLogContextMarshalTextRedactsCredentials(t *testing.T) {
	// Arrange
	r := httptest.NewRequest(http.MethodGet, "https://example.com/portfolios", nil)
	r.Header.Set("Authorization", "Bearer secret-id-token")
	r.Header.Set("Cookie", "stocksage=secret")
	lc := logger.LogContext{Request: r}

	// Act
	b, err := lc.MarshalText()

	// Assert
	require.Nil(t, err)
	require.NotContains(t, string(b), "secret")

	m := make(map[string]any)
	require.Nil(t, json.Unmarshal(b, &m))
	header := m["request"].(map[string]any)["header"].(map[string]any)
	require.Equal(t, []any{"[redacted]"}, header["Authorization"])

	// the original request is untouched
	require.Equal(t, "Bearer secret-id-token", r.Header.Get("Authorization"))
}

type testUser struct{}

func (u testUser) GetID() string    { return "uid-1" }
func (u testUser) GetEmail() string { return "test@example.com" }
