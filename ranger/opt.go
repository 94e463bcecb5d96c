package ranger

import (
	"context"
	"fmt"
	"net/http"

	stocksage "github.com/hvpham-yorku/StockSage-AI"
	"github.com/hvpham-yorku/StockSage-AI/api"
	"github.com/hvpham-yorku/StockSage-AI/http/middleware"
	"github.com/hvpham-yorku/StockSage-AI/http/resp"
	"github.com/hvpham-yorku/StockSage-AI/http/router"
	"github.com/hvpham-yorku/StockSage-AI/http/session"
	"github.com/hvpham-yorku/StockSage-AI/http/template"
	"github.com/hvpham-yorku/StockSage-AI/identity"
	"github.com/hvpham-yorku/StockSage-AI/logger"
)

// A RangerOption configures a *Ranger either (1) directly, immediately upon being called
// or (2) in the OptFollowup it returns.
// Some RangerOptions require components others build and thus an OptFollowup can be returned
// in order to be called once every component exists.
//
// WithAPI is an example of the first.
// An unexported field on the passed in *Ranger is updated with the enclosed value.
//
// WithRoutes is an example of the second.
// The routes are registered only when the closure it returns is called.
type RangerOption func(rng *Ranger) (OptFollowup, error)
type OptFollowup func() error

// WithAPI exposes the provided *api.Client to the web client.
func WithAPI(c *api.Client) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if c == nil {
			return nil, fmt.Errorf("%w: nil *api.Client", ErrNotValid)
		}

		rng.api = c
		rng.debug(fmt.Sprintf("using backend %s", c.BaseURL()))

		return nil, nil
	}
}

// WithConfig replaces the Config read from the environment.
func WithConfig(cfg Config) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if cfg.BaseURL == nil || cfg.APIURL == nil {
			return nil, fmt.Errorf("%w: Config requires BaseURL and APIURL", ErrNotValid)
		}

		rng.cfg = cfg
		rng.debug("using provided config")

		return nil, nil
	}
}

// WithContext exposes the provided context.Context to the web client.
// Cancelling ctx stops [*Ranger.Guide].
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.ctx, rng.cancel = context.WithCancel(ctx)
		rng.debug(fmt.Sprintf("using context %T", ctx))

		return nil, nil
	}
}

// WithEnv casts the provided string into a valid Environment,
// or, reads from the ENVIRONMENT environment variable a valid Environment.
//
// If both fail, the default Environment is set to Development.
func WithEnv(envVar string) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		e := stocksage.Environment(envVar)
		if err := e.Valid(); err != nil {
			e = stocksage.EnvVarOrEnv(envVar, stocksage.Development)
		}

		rng.cfg.Env = e
		rng.debug(fmt.Sprintf("using env %s", e))

		return nil, nil
	}
}

// WithIdempotencyCache exposes the cache trade submissions are replayed from.
func WithIdempotencyCache(c middleware.IdempotencyCacher) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.idem = c
		rng.debug(fmt.Sprintf("using idempotency cache %T", c))

		return nil, nil
	}
}

// WithLogger exposes the provided logger.Logger to the web client.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.l = l
		rng.debug(fmt.Sprintf("using logger %T", l))

		return nil, nil
	}
}

// WithParser exposes the template.Parser pages render with.
func WithParser(p template.Parser) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.p = p
		rng.debug(fmt.Sprintf("using parser %T", p))

		return nil, nil
	}
}

// WithRegistry exposes the *identity.Registry handing out Session Providers.
func WithRegistry(reg *identity.Registry) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if reg == nil {
			return nil, fmt.Errorf("%w: nil *identity.Registry", ErrNotValid)
		}

		rng.reg = reg
		rng.debug("using identity registry")

		return nil, nil
	}
}

// WithResponder exposes the *resp.Responder to the web client.
func WithResponder(d *resp.Responder) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.Responder = d
		rng.debug("using responder")

		return nil, nil
	}
}

// WithRoutes constructs a followup option that, when called,
// lets fn register additional routes on the configured *router.Router.
func WithRoutes(fn func(rt *router.Router)) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		return func() error {
			fn(rng.Router)
			rng.debug("registered additional routes")

			return nil
		}, nil
	}
}

// WithSessionStore exposes the session.SessionStorer to the web client.
func WithSessionStore(store session.SessionStorer) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.sessions = store
		rng.debug(fmt.Sprintf("using session store %T", store))

		return nil, nil
	}
}

// WithServer exposes the *http.Server to the web client.
// Its Handler is always replaced by the configured *router.Router.
func WithServer(s *http.Server) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.srv = s
		rng.debug(fmt.Sprintf("using server at %s", s.Addr))

		return nil, nil
	}
}

func (rng *Ranger) debug(msg string) {
	if rng.l != nil {
		rng.l.Debug(msg, nil)
	}
}
