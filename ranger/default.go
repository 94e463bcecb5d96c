package ranger

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hvpham-yorku/StockSage-AI/api"
	"github.com/hvpham-yorku/StockSage-AI/domain"
	"github.com/hvpham-yorku/StockSage-AI/http/middleware"
	"github.com/hvpham-yorku/StockSage-AI/http/resp"
	"github.com/hvpham-yorku/StockSage-AI/http/router"
	"github.com/hvpham-yorku/StockSage-AI/http/session"
	"github.com/hvpham-yorku/StockSage-AI/http/template"
	"github.com/hvpham-yorku/StockSage-AI/identity"
	"github.com/hvpham-yorku/StockSage-AI/logger"
	"github.com/hvpham-yorku/StockSage-AI/web"
)

const (
	healthPath      = "/healthz"
	metricsPath     = "/metrics"
	healthCheckWait = 3 * time.Second
)

// defaultLogger constructs the logger.Logger used throughout the web client.
// With SENTRY_DSN set, errors are also reported to Sentry.
func defaultLogger(cfg Config) logger.Logger {
	l := logger.NewLogger(logger.WithEnv(cfg.Env), logger.WithLevel(cfg.LogLevel))
	l.Debug("setting up app logger", nil)

	return l
}

// defaultMetrics constructs the registry /metrics exposes,
// carrying Go runtime and process collectors.
func defaultMetrics() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

// defaultSessionStore constructs a SessionStorer to be used for storing session data.
//
// defaultSessionStore relies on these env vars:
//   - APP_TITLE
//   - SESSION_AUTH_KEY
//   - SESSION_ENCRYPTION_KEY
//   - REDIS_URL, optionally
//
// Both KEY env vars be valid hex encoded values; cf. [encoding/hex].
func defaultSessionStore(cfg Config) (session.SessionStorer, error) {
	appName := cases.Lower(language.English).String(cfg.AppTitle)
	appName = regexp.MustCompile(`[,':]`).ReplaceAllString(appName, "")
	appName = regexp.MustCompile(`\s`).ReplaceAllString(appName, "-")

	sc := session.Config{
		AuthKey:     cfg.SessionAuthKey,
		EncryptKey:  cfg.SessionEncryptKey,
		Env:         cfg.Env,
		SessionName: appName,
	}

	args := []session.ServiceOpt{session.WithMaxAge(cfg.SessionMaxAge)}
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("%s is not valid: %w", redisURLEnvVar, err)
		}

		args = append(args, session.WithRedis(opts.Addr, opts.Password))
	} else {
		args = append(args, session.WithCookie())
	}

	store, err := session.NewStoreService(sc, args...)
	if err != nil {
		return nil, err
	}

	return store, nil
}

// defaultRegistry constructs the identity.Registry handing out Session Providers backed by Firebase.
//
// When any FIREBASE_* env var is missing, defaultRegistry logs which
// and returns a nil *identity.Registry: nobody can sign in and every gate denies.
func defaultRegistry(ctx context.Context, cfg Config, l logger.Logger) (*identity.Registry, error) {
	if missing := cfg.Firebase.Missing(); len(missing) > 0 {
		l.Error("identity provider is not configured, sign in is unavailable", &logger.LogContext{
			Data: map[string]any{"missing": missing},
		})
		return nil, nil
	}

	fb, err := identity.NewFirebase(ctx, cfg.Firebase, &http.Client{Timeout: cfg.APITimeout})
	if err != nil {
		return nil, err
	}

	return identity.NewRegistry(
		fb,
		identity.WithIdleTTL(cfg.IdleTTL),
		identity.WithRegistryLogger(l),
		identity.WithSessionExpired(func(sessionID string) {
			l.Info("identity expired, browser session signed out", &logger.LogContext{
				Data: map[string]any{"session": sessionID},
			})
		}),
	), nil
}

// defaultAPI constructs the *api.Client calling the StockSage backend.
func defaultAPI(cfg Config, l logger.Logger, reg prometheus.Registerer) *api.Client {
	return api.New(
		cfg.APIURL,
		api.WithLogger(l),
		api.WithMetricsRegisterer(reg),
		api.WithOrigin(cfg.APIOrigin),
		api.WithTimeout(cfg.APITimeout),
	)
}

// defaultIdempotencyCache caches trade submissions in Redis when REDIS_URL is set,
// and in memory otherwise.
func defaultIdempotencyCache(cfg Config) (middleware.IdempotencyCacher, error) {
	if cfg.RedisURL == "" {
		return middleware.NewIdemResMap(), nil
	}

	c, err := middleware.NewRedisCacheFromURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("%s is not valid: %w", redisURLEnvVar, err)
	}

	return c, nil
}

// defaultParser constructs a template.Parser to be used
// when responding to HTTP requests with [*http/resp.Responder.Html].
//
// Templates in TEMPLATE_DIR, when set, shadow the embedded ones.
func defaultParser(cfg Config) template.Parser {
	opts := append(web.ParserOpts(cfg.Env, cfg.BaseURL), template.WithOverrideDir(cfg.TemplateDir))
	return template.NewParser(opts...)
}

// defaultResponder configures the [*resp.Responder] to be used by http.Handlers.
func defaultResponder(cfg Config, l logger.Logger, p template.Parser) *resp.Responder {
	return resp.NewResponder(
		resp.WithAuthTemplate(web.AuthedTmpl),
		resp.WithContactErrMsg(fmt.Sprintf(session.ContactUsErr, cfg.ContactUs)),
		resp.WithErrTemplate(web.ErrTmpl),
		resp.WithLoginPath(web.LoginPath),
		resp.WithLogger(l),
		resp.WithParser(p),
		resp.WithRootUrl(cfg.BaseURL.String()),
		resp.WithUnauthTemplate(web.UnauthedTmpl),
	)
}

// defaultRouter constructs the [*router.Router] serving every page of the web client,
// plus /metrics and /healthz.
//
// Every request passes through, in order:
// HTTPS enforcement, rate limiting, request IDs, IP address lookup, request logging,
// CORS, the browser session and its Session Provider.
func defaultRouter(r *Ranger) *router.Router {
	logReq := middleware.LogRequest(r.l)
	rt := router.New(r.cfg.Env, r.Responder, logReq, web.Assets())

	// NOTE: a nil *identity.Registry must not become a non-nil interface
	var reg middleware.IdentityRegistry
	var forget web.SessionForgetter
	if r.reg != nil {
		reg, forget = r.reg, r.reg
	}

	rt.OnEveryRequest(
		middleware.ForceHTTPS(r.cfg.Env),
		middleware.RateLimit(middleware.NewVisitors()),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		logReq,
		middleware.CORS(r.cfg.CORSOrigin),
		middleware.InjectSession(r.sessions),
		middleware.CurrentUser(r.Responder, reg),
	)

	if r.cfg.Maintenance {
		rt.CatchAll(MaintModeHandler(r.p, r.l, r.cfg.ContactUs))
		return rt
	}

	metrics := promhttp.HandlerFor(r.metrics, promhttp.HandlerOpts{})
	rt.Handle(router.Route{Path: metricsPath, Method: http.MethodGet, Handler: metrics.ServeHTTP})
	rt.Handle(router.Route{Path: healthPath, Method: http.MethodGet, Handler: healthHandler(r.Responder, r.api)})

	web.New(r.Responder, r.api, r.idem, forget).Routes(rt)

	rt.HandleNotFound(func(w http.ResponseWriter, req *http.Request) {
		if strings.Contains(req.Header.Get("Accept"), "text/html") {
			http.Redirect(w, req, r.cfg.BaseURL.String(), http.StatusSeeOther)
			return
		}

		w.WriteHeader(http.StatusNotFound)
	})

	return rt
}

// healthHandler reports whether the backend answers its health check.
func healthHandler(d *resp.Responder, client *api.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckWait)
		defer cancel()

		h, err := client.Health(ctx)
		if err != nil {
			d.Logger().Warn("backend health check failed", &logger.LogContext{Error: err, Request: r})
			h = &domain.Health{Status: "unreachable"}
			if err := d.Json(w, r, resp.Code(http.StatusServiceUnavailable), resp.Data(h)); err != nil {
				d.Err(w, r, err)
			}
			return
		}

		if err := d.Json(w, r, resp.Data(h)); err != nil {
			d.Err(w, r, err)
		}
	}
}

// defaultServer constructs a default [*http.Server].
func defaultServer(ctx context.Context, cfg Config) *http.Server {
	port := cfg.Port
	if port[0] != ':' {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		IdleTimeout:  cfg.IdleTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if ctx != nil {
		srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return srv
}
