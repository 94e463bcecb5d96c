package ranger

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// TODO(dlk): configurable env files
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hvpham-yorku/StockSage-AI/api"
	"github.com/hvpham-yorku/StockSage-AI/http/middleware"
	"github.com/hvpham-yorku/StockSage-AI/http/resp"
	"github.com/hvpham-yorku/StockSage-AI/http/router"
	"github.com/hvpham-yorku/StockSage-AI/http/session"
	"github.com/hvpham-yorku/StockSage-AI/http/template"
	"github.com/hvpham-yorku/StockSage-AI/identity"
	"github.com/hvpham-yorku/StockSage-AI/logger"
)

// A Ranger manages and exposes all components of the web client to one another.
type Ranger struct {
	*resp.Responder
	*router.Router

	api      *api.Client
	cfg      Config
	ctx      context.Context
	cancel   context.CancelFunc
	idem     middleware.IdempotencyCacher
	l        logger.Logger
	metrics  *prometheus.Registry
	p        template.Parser
	reg      *identity.Registry
	sessions session.SessionStorer
	srv      *http.Server
}

// New constructs a Ranger from the provided options.
// Options supplied to New are applied first;
// every component they leave unset is then built from the Config read from the environment.
func New(opts ...RangerOption) (*Ranger, error) {
	r := &Ranger{cfg: NewConfig()}
	followups := make([]OptFollowup, 0)

	// NOTE(dlk): calling an option configures the *Ranger under construction.
	// Some options require data from other components.
	// They return an OptFollowup to be called once every component is built.
	for _, opt := range opts {
		fn, err := opt(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBadConfig, err)
		}

		if fn != nil {
			followups = append(followups, fn)
		}
	}

	if err := r.defaults(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadConfig, err)
	}

	for _, fn := range followups {
		if err := fn(); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBadConfig, err)
		}
	}

	return r, nil
}

// defaults builds every component not yet set, in dependency order.
func (r *Ranger) defaults() error {
	var err error

	if r.ctx == nil {
		r.ctx, r.cancel = context.WithCancel(context.Background())
	}

	if r.l == nil {
		r.l = defaultLogger(r.cfg)
	}

	if r.metrics == nil {
		r.metrics = defaultMetrics()
	}

	if r.sessions == nil {
		if r.sessions, err = defaultSessionStore(r.cfg); err != nil {
			return err
		}
	}

	if r.reg == nil {
		if r.reg, err = defaultRegistry(r.ctx, r.cfg, r.l); err != nil {
			return err
		}
	}

	if r.api == nil {
		r.api = defaultAPI(r.cfg, r.l, r.metrics)
	}

	if r.idem == nil {
		if r.idem, err = defaultIdempotencyCache(r.cfg); err != nil {
			return err
		}
	}

	if r.p == nil {
		r.p = defaultParser(r.cfg)
	}

	if r.Responder == nil {
		r.Responder = defaultResponder(r.cfg, r.l, r.p)
	}

	if r.Router == nil {
		r.Router = defaultRouter(r)
	}

	if r.srv == nil {
		r.srv = defaultServer(r.ctx, r.cfg)
	}
	r.srv.Handler = r.Router

	return nil
}

func (r *Ranger) EmitAPI() *api.Client                    { return r.api }
func (r *Ranger) EmitConfig() Config                      { return r.cfg }
func (r *Ranger) EmitLogger() logger.Logger               { return r.l }
func (r *Ranger) EmitRegistry() *identity.Registry        { return r.reg }
func (r *Ranger) EmitSessionStore() session.SessionStorer { return r.sessions }

// Guide begins the web server.
//
// These, and (*Ranger).Shutdown, stop Guide:
//
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (r *Ranger) Guide() error {
	ch := make(chan os.Signal, 1)
	signal.Notify(
		ch,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer signal.Stop(ch)

	go func() {
		select {
		case s := <-ch:
			r.l.Info(fmt.Sprint("received shutdown signal: ", s), nil)
			r.cancel()
		case <-r.ctx.Done():
		}
	}()

	if r.reg != nil {
		go r.reg.Run(r.ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		r.l.Info(fmt.Sprintf("running web server at %s", r.srv.Addr), nil)
		if err := r.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("could not listen: %w", err)
			r.cancel()
		}
	}()

	<-r.ctx.Done()

	select {
	case err := <-errCh:
		r.l.Error(err.Error(), nil)
		return err
	default:
		return r.Shutdown()
	}
}

// Shutdown shutdowns the web server, giving in-flight requests five seconds to finish.
func (r *Ranger) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	defer r.cancel()

	r.l.Info("shutting down web server", nil)
	err := r.srv.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	if c, ok := r.idem.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			r.l.Warn("closing idempotency cache failed", &logger.LogContext{Error: err})
		}
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}
