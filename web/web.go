package web

import (
	"embed"
	"io/fs"
	"net/http"
	"net/url"

	stocksage "github.com/hvpham-yorku/StockSage-AI"
	"github.com/hvpham-yorku/StockSage-AI/api"
	"github.com/hvpham-yorku/StockSage-AI/gate"
	"github.com/hvpham-yorku/StockSage-AI/http/middleware"
	"github.com/hvpham-yorku/StockSage-AI/http/req"
	"github.com/hvpham-yorku/StockSage-AI/http/resp"
	"github.com/hvpham-yorku/StockSage-AI/http/router"
	"github.com/hvpham-yorku/StockSage-AI/http/template"
)

// Paths of the web client.
const (
	AboutPath     = "/about"
	DashboardPath = "/dashboard"
	HeaderPath    = "/partials/header"
	HomePath      = "/"
	LoginPath     = "/login"
	LogoutPath    = "/logout"
	PortfolioPath = "/portfolio"
	ProfilePath   = "/profile"
	ResetPath     = "/reset-password"
	SignUpPath    = "/signup"
	StocksPath    = "/stocks"
)

// Templates of the web client.
const (
	AuthedTmpl   = "tmpl/layout/authenticated_base.tmpl"
	ErrTmpl      = "tmpl/error.tmpl"
	MaintTmpl    = "tmpl/maintenance.tmpl"
	UnauthedTmpl = "tmpl/layout/unauthenticated_base.tmpl"

	aboutTmpl        = "tmpl/about.tmpl"
	compareTmpl      = "tmpl/portfolio/compare.tmpl"
	createTmpl       = "tmpl/portfolio/create.tmpl"
	dashboardTmpl    = "tmpl/dashboard.tmpl"
	headerInTmpl     = "tmpl/partials/header_in.tmpl"
	headerOutTmpl    = "tmpl/partials/header_out.tmpl"
	homeTmpl         = "tmpl/home.tmpl"
	loginTmpl        = "tmpl/auth/login.tmpl"
	portfolioTmpl    = "tmpl/portfolio/detail.tmpl"
	portfoliosTmpl   = "tmpl/portfolio/list.tmpl"
	profileTmpl      = "tmpl/profile.tmpl"
	resetTmpl        = "tmpl/auth/reset.tmpl"
	signUpTmpl       = "tmpl/auth/signup.tmpl"
	stockTmpl        = "tmpl/stocks/detail.tmpl"
	stocksTmpl       = "tmpl/stocks/list.tmpl"
	termTmpl         = "tmpl/education/term.tmpl"
	termsTmpl        = "tmpl/education/terms.tmpl"
	tipsTmpl         = "tmpl/education/tips.tmpl"
	transactionsTmpl = "tmpl/portfolio/transactions.tmpl"
)

var (
	// Templates holds every page, layout and partial.
	//
	//go:embed tmpl
	Templates embed.FS

	//go:embed assets
	assets embed.FS
)

// Assets returns the stylesheets and scripts served under /assets/.
func Assets() fs.FS {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}

// ParserOpts configures a template.Parser with the embedded templates and the functions they call.
func ParserOpts(env stocksage.Environment, root *url.URL) []template.ParserOptFn {
	return []template.ParserOptFn{
		template.WithFS(Templates),
		template.WithFn(template.Date()),
		template.WithFn(template.Env(env)),
		template.WithFn(template.Money()),
		template.WithFn(template.Nonce()),
		template.WithFn(template.Percent()),
		template.WithFn(template.RootUrl(root)),
	}
}

// A SessionForgetter drops the Session Provider of a browser session.
//
// *identity.Registry is a SessionForgetter.
type SessionForgetter interface {
	Forget(sessionID string)
}

// Handler shares the initialized Responder and backend client across all pages.
type Handler struct {
	*resp.Responder

	api    *api.Client
	idem   middleware.IdempotencyCacher
	parser *req.Parser
	reg    SessionForgetter
}

// New constructs a Handler.
// idem caches trade submissions; nil uses an in-memory cache.
// reg may be nil.
func New(d *resp.Responder, client *api.Client, idem middleware.IdempotencyCacher, reg SessionForgetter) *Handler {
	if idem == nil {
		idem = middleware.NewIdemResMap()
	}

	return &Handler{
		Responder: d,
		api:       client,
		idem:      idem,
		parser:    req.NewParser(),
		reg:       reg,
	}
}

// Routes registers every page and form of the web client on rt.
func (h *Handler) Routes(rt *router.Router) {
	rt.UnauthedRoutes(DashboardPath, []router.Route{
		{Path: HomePath, Method: http.MethodGet, Handler: h.home},
		{Path: LoginPath, Method: http.MethodGet, Handler: h.loginForm},
		{Path: LoginPath, Method: http.MethodPost, Handler: h.login},
		{Path: SignUpPath, Method: http.MethodGet, Handler: h.signUpForm},
		{Path: SignUpPath, Method: http.MethodPost, Handler: h.signUp},
		{Path: ResetPath, Method: http.MethodGet, Handler: h.resetForm},
		{Path: ResetPath, Method: http.MethodPost, Handler: h.reset},
	})

	rt.HandleRoutes([]router.Route{
		{Path: AboutPath, Method: http.MethodGet, Handler: h.about},
		{Path: LogoutPath, Method: http.MethodPost, Handler: h.logout},
		{
			Path:    HeaderPath,
			Method:  http.MethodGet,
			Handler: h.header,
			Middlewares: []middleware.Adapter{
				middleware.Gate(h.Responder, gate.WithFallback(gate.Render(http.HandlerFunc(h.headerOut)))),
			},
		},
	})

	idem := middleware.Idempotent(h.idem)
	rt.AuthedRoutes(LoginPath, []router.Route{
		{Path: DashboardPath, Method: http.MethodGet, Handler: h.dashboard},
		{Path: StocksPath, Method: http.MethodGet, Handler: h.stocks},
		{Path: StocksPath + "/{symbol}", Method: http.MethodGet, Handler: h.stock},
		{Path: PortfolioPath, Method: http.MethodGet, Handler: h.portfolios},
		{Path: PortfolioPath, Method: http.MethodPost, Handler: h.createPortfolio},
		{Path: PortfolioPath + "/create", Method: http.MethodGet, Handler: h.createPortfolioForm},
		{Path: PortfolioPath + "/compare", Method: http.MethodGet, Handler: h.comparePortfolios},
		{Path: PortfolioPath + "/{id}", Method: http.MethodGet, Handler: h.portfolio},
		{Path: PortfolioPath + "/{id}", Method: http.MethodPost, Handler: h.updatePortfolio},
		{Path: PortfolioPath + "/{id}/delete", Method: http.MethodPost, Handler: h.deletePortfolio},
		{Path: PortfolioPath + "/{id}/buy", Method: http.MethodPost, Handler: h.buy, Middlewares: []middleware.Adapter{idem}},
		{Path: PortfolioPath + "/{id}/sell", Method: http.MethodPost, Handler: h.sell, Middlewares: []middleware.Adapter{idem}},
		{Path: PortfolioPath + "/{id}/transactions", Method: http.MethodGet, Handler: h.transactions},
		{Path: PortfolioPath + "/{id}/simulation", Method: http.MethodPost, Handler: h.controlSimulation},
		{Path: PortfolioPath + "/{id}/advance", Method: http.MethodPost, Handler: h.advanceSimulation},
		{Path: "/education/terms", Method: http.MethodGet, Handler: h.terms},
		{Path: "/education/terms/{term}", Method: http.MethodGet, Handler: h.term},
		{Path: "/education/tips", Method: http.MethodGet, Handler: h.tips},
		{Path: ProfilePath, Method: http.MethodGet, Handler: h.profile},
		{Path: ProfilePath, Method: http.MethodPost, Handler: h.updateProfile},
		{Path: ProfilePath + "/delete", Method: http.MethodPost, Handler: h.deleteProfile},
	}, nil)
}

// client returns the backend client acting for the browser session's Session Provider.
// Without one, only public endpoints can be reached.
func (h *Handler) client(r *http.Request) *api.Client {
	if p, ok := middleware.Provider(r.Context()); ok {
		return h.api.With(p)
	}

	return h.api
}
