package router

import (
	"io/fs"
	"net/http"

	"github.com/gorilla/mux"

	stocksage "github.com/hvpham-yorku/StockSage-AI"
	"github.com/hvpham-yorku/StockSage-AI/gate"
	"github.com/hvpham-yorku/StockSage-AI/http/middleware"
	"github.com/hvpham-yorku/StockSage-AI/http/resp"
)

const assetsPath = "/assets/"

// A Route maps a path and HTTP method to an [http.HandlerFunc].
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
type Route struct {
	Path        string
	Method      string
	Handler     http.HandlerFunc
	Middlewares []middleware.Adapter
}

// Router routes requests for pages, forms and assets of the web client.
type Router struct {
	d             *resp.Responder
	env           stocksage.Environment
	everyReqStack []middleware.Adapter
	logReq        middleware.Adapter
	r             *mux.Router
}

// New constructs a [*Router] for the given environment.
// When assets is not nil, its files are served under /assets/.
func New(env stocksage.Environment, d *resp.Responder, logReq middleware.Adapter, assets fs.FS) *Router {
	if logReq == nil {
		logReq = middleware.NoopAdapter
	}

	r := mux.NewRouter()
	if assets != nil {
		r.PathPrefix(assetsPath).Handler(middleware.Chain(
			http.StripPrefix(assetsPath, http.FileServer(http.FS(assets))),
			cacheControlMiddleware(),
			logReq,
		))
	}

	return &Router{d: d, env: env, logReq: logReq, r: r}
}

// AuthedRoutes registers the set of Routes as those requiring a signed in user.
// AuthedRoutes applies the given middlewares before performing that check,
// using middleware.Gate.
//
// A request denied by the gate is sent to loginPath.
// opts further configure the gate, e.g., with a narrower gate.Condition.
func (r *Router) AuthedRoutes(loginPath string, routes []Route, middlewares []middleware.Adapter, opts ...gate.Opt) {
	opts = append([]gate.Opt{gate.WithFallback(gate.RedirectTo(loginPath))}, opts...)
	mws := append(middlewares[:len(middlewares):len(middlewares)], middleware.Gate(r.d, opts...))
	r.HandleRoutes(routes, mws...)
}

// CatchAll sets up a handler for all routes to funnel to for e.g. maintenance mode.
func (r *Router) CatchAll(handler http.HandlerFunc) {
	r.r.PathPrefix("/").Handler(
		middleware.Chain(
			middleware.ReportPanic(r.env)(handler),
			r.everyReqStack...,
		),
	)
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(route Route) {
	r.HandleRoutes([]Route{route})
}

// HandleNotFound sets the provided [http.HandlerFunc] as the default function
// for when no other registered Route is matched.
func (r *Router) HandleNotFound(handler http.HandlerFunc) {
	r.r.NotFoundHandler = middleware.Chain(
		middleware.ReportPanic(r.env)(handler),
		r.logReq,
	)
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		mws := make([]middleware.Adapter, 0, len(r.everyReqStack)+len(middlewares)+len(route.Middlewares))
		mws = append(mws, r.everyReqStack...)
		mws = append(mws, middlewares...)
		mws = append(mws, route.Middlewares...)

		handler := middleware.Chain(middleware.ReportPanic(r.env)(route.Handler), mws...)
		r.r.Handle(route.Path, handler).Methods(route.Method)
	}
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every request.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.r.ServeHTTP(w, req)
}

// Subrouter constructs a [Router] that handles requests to endpoints matching the prefix.
//
// e.g., r.Subrouter("/portfolios") handles requests to endpoints like /portfolios/{id}/buy
func (r *Router) Subrouter(prefix string) *Router {
	return &Router{
		d:             r.d,
		env:           r.env,
		r:             r.r.PathPrefix(prefix).Subrouter(),
		logReq:        r.logReq,
		everyReqStack: r.everyReqStack[:len(r.everyReqStack):len(r.everyReqStack)],
	}
}

// UnauthedRoutes registers the set of Routes as those for signed out visitors.
// A signed in user is redirected to to.
// It applies the given middlewares before performing that check.
func (r *Router) UnauthedRoutes(to string, routes []Route, middlewares ...middleware.Adapter) {
	mws := append(middlewares[:len(middlewares):len(middlewares)], middleware.RequireUnauthed(r.d, to))
	r.HandleRoutes(routes, mws...)
}

// Vars returns the route variables of the request, such as a portfolio's {id}.
func Vars(r *http.Request) map[string]string { return mux.Vars(r) }

// cacheControlMiddleware helps by adding a "Cache-Control" header to the response.
func cacheControlMiddleware() middleware.Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "max-age=2592000") // 30 days
			handler.ServeHTTP(w, r)
		})
	}
}
