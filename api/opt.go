package api

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hvpham-yorku/StockSage-AI/logger"
)

// A ClientOpt configures a Client when constructing it.
type ClientOpt func(*Client)

// WithHTTPClient sets the *http.Client used to reach the backend.
func WithHTTPClient(hc *http.Client) ClientOpt {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the Logger a Client reports unreachable backends to.
func WithLogger(l logger.Logger) ClientOpt {
	return func(c *Client) { c.logger = l }
}

// WithOrigin sets the Origin header sent with every call,
// for backends enforcing CORS on server-to-server traffic.
func WithOrigin(origin string) ClientOpt {
	return func(c *Client) { c.origin = origin }
}

// WithTimeout bounds every call to d.
func WithTimeout(d time.Duration) ClientOpt {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithTokenSource sets the TokenSource calls authenticate with.
func WithTokenSource(ts TokenSource) ClientOpt {
	return func(c *Client) { c.tokens = ts }
}

// WithMetricsRegisterer registers the Client's metrics with reg
// instead of the default registerer.
func WithMetricsRegisterer(reg prometheus.Registerer) ClientOpt {
	return func(c *Client) { c.metrics = newMetrics(reg) }
}
