package logger_test

import (
	"bytes"
	"errors"
	"io"
	"log"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hvpham-yorku/StockSage-AI/logger"
)

var (
	logLevelRegexp = regexp.MustCompile(`^\[[A-Z]+\]`)
	fpRegexp       = regexp.MustCompile(`logger/logger_test\.go:\d+`)
	msgRegexp      = regexp.MustCompile(`'(.*)'`)
)

func newTestLogger(w io.Writer) *log.Logger {
	return log.New(w, "", 0)
}

func TestAppLoggerLevels(t *testing.T) {
	for _, tc := range []struct {
		name  string
		level logger.LogLevel
		fn    func(l logger.Logger)
		want  string
	}{
		{"debug-at-debug", logger.LogLevelDebug, func(l logger.Logger) { l.Debug("quote fetched", nil) }, "[DEBUG]"},
		{"debug-at-info", logger.LogLevelInfo, func(l logger.Logger) { l.Debug("quote fetched", nil) }, ""},
		{"info-at-info", logger.LogLevelInfo, func(l logger.Logger) { l.Info("quote fetched", nil) }, "[INFO]"},
		{"warn-at-error", logger.LogLevelError, func(l logger.Logger) { l.Warn("quote fetched", nil) }, ""},
		{"error-at-warn", logger.LogLevelWarn, func(l logger.Logger) { l.Error("quote fetched", nil) }, "[ERROR]"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			t.Setenv("SENTRY_DSN", "")
			b := new(bytes.Buffer)
			l := logger.NewLogger(logger.WithLogger(newTestLogger(b)), logger.WithLevel(tc.level))

			// Act
			tc.fn(l)

			// Assert
			if tc.want == "" {
				require.Empty(t, b.String())
				return
			}

			out := stripColor(b.String())
			require.Equal(t, tc.want, logLevelRegexp.FindString(out))
			require.Regexp(t, fpRegexp, out)
			require.Equal(t, "quote fetched", msgRegexp.FindStringSubmatch(out)[1])
		})
	}
}

func TestAppLoggerLogContext(t *testing.T) {
	// Arrange
	t.Setenv("SENTRY_DSN", "")
	b := new(bytes.Buffer)
	l := logger.NewLogger(logger.WithLogger(newTestLogger(b)))

	// Act
	l.Error("gateway call failed", &logger.LogContext{Error: errors.New("boom"), Caller: "api/client.go:1"})

	// Assert
	out := stripColor(b.String())
	require.Contains(t, out, "api/client.go:1")
	require.Contains(t, out, `log_context: {"error":"boom"}`)
}

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripColor(s string) string { return ansiRegexp.ReplaceAllString(s, "") }
