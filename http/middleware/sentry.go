package middleware

import (
	sentryhttp "github.com/getsentry/sentry-go/http"

	stocksage "github.com/hvpham-yorku/StockSage-AI"
)

// ReportPanic recovers panics in the wrapped handler and reports them to Sentry.
//
// In development, panics are left alone and NoopAdapter returns.
func ReportPanic(env stocksage.Environment) Adapter {
	if env.IsDevelopment() {
		return NoopAdapter
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         false,
		WaitForDelivery: true,
	})

	return sh.Handle
}
