package gate

import (
	"time"

	"github.com/hvpham-yorku/StockSage-AI/logger"
)

// An Opt configures a Controller.
type Opt func(*Controller)

// WithCondition replaces Authenticated with cond.
func WithCondition(cond Condition) Opt {
	return func(c *Controller) {
		if cond != nil {
			c.cond = cond
		}
	}
}

// WithFallback sets what to show when Denied.
func WithFallback(f Fallback) Opt {
	return func(c *Controller) { c.fallback = f }
}

// WithLogger sets the Logger denials are reported to.
func WithLogger(l logger.Logger) Opt {
	return func(c *Controller) { c.logger = l }
}

// WithTimeout bounds how long a Controller waits for its Source to settle.
func WithTimeout(d time.Duration) Opt {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}
