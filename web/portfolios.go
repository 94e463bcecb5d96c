package web

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hvpham-yorku/StockSage-AI/domain"
	"github.com/hvpham-yorku/StockSage-AI/http/resp"
	"github.com/hvpham-yorku/StockSage-AI/http/session"
)

const dateLayout = "2006-01-02"

type tradeForm struct {
	Symbol   string  `schema:"symbol" validate:"required,max=10"`
	Quantity int     `schema:"quantity" validate:"gt=0"`
	Price    float64 `schema:"price" validate:"gte=0"`
	Date     string  `schema:"date" validate:"omitempty,datetime=2006-01-02"`
	Back     string  `schema:"back"`
}

type advanceForm struct {
	Days int `schema:"days" validate:"gt=0,lte=365"`
}

type compareQuery struct {
	IDs []string `schema:"id" validate:"max=5,dive,required"`
}

type portfoliosData struct {
	Portfolios Section[[]domain.Portfolio]
}

type portfolioData struct {
	ID          string
	Symbol      string
	Portfolio   Section[*domain.Portfolio]
	Performance Section[*domain.Performance]
}

type transactionsData struct {
	ID           string
	Portfolio    Section[*domain.Portfolio]
	Transactions Section[[]domain.Transaction]
}

type compareData struct {
	Comparison Section[*domain.Comparison]
	Portfolios Section[[]domain.Portfolio]
	Selected   []string
}

// Picked asserts whether the portfolio with id is being compared.
func (d compareData) Picked(id string) bool {
	for _, s := range d.Selected {
		if s == id {
			return true
		}
	}
	return false
}

func (h *Handler) portfolios(w http.ResponseWriter, r *http.Request) {
	data := portfoliosData{Portfolios: load(r.Context(), h, h.client(r).Portfolios)}
	h.page(w, r, portfoliosTmpl, data, data.Portfolios)
}

func (h *Handler) createPortfolioForm(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{"Today": time.Now().Format(dateLayout)}
	if err := h.Html(w, r, resp.Authed(), resp.Tmpls(createTmpl), resp.Data(data)); err != nil {
		h.Err(w, r, err)
	}
}

// createPortfolio opens a portfolio and shows it.
func (h *Handler) createPortfolio(w http.ResponseWriter, r *http.Request) {
	form := new(domain.PortfolioCreate)
	if err := h.parser.ParseForm(r, form); err != nil {
		h.retry(w, r, PortfolioPath+"/create", session.BadInputMsg, err)
		return
	}

	p, err := h.client(r).CreatePortfolio(r.Context(), *form)
	if err != nil {
		h.fail(w, r, PortfolioPath+"/create", err)
		return
	}

	h.done(w, r, portfolioPath(p.ID), "Portfolio created.")
}

// portfolio shows a portfolio's holdings and performance, with forms to trade and run its simulation.
// A "symbol" query param prefills the trade form.
func (h *Handler) portfolio(w http.ResponseWriter, r *http.Request) {
	id := routeVar(r, "id")
	c := h.client(r)
	data := portfolioData{
		ID:     id,
		Symbol: strings.ToUpper(r.URL.Query().Get("symbol")),
		Portfolio: load(r.Context(), h, func(ctx context.Context) (*domain.Portfolio, error) {
			return c.Portfolio(ctx, id)
		}),
		Performance: load(r.Context(), h, func(ctx context.Context) (*domain.Performance, error) {
			return c.Performance(ctx, id)
		}),
	}

	h.page(w, r, portfolioTmpl, data, data.Portfolio, data.Performance)
}

// updatePortfolio renames a portfolio or changes its simulation speed.
func (h *Handler) updatePortfolio(w http.ResponseWriter, r *http.Request) {
	id := routeVar(r, "id")
	form := new(domain.PortfolioUpdate)
	if err := h.parser.ParseForm(r, form); err != nil {
		h.retry(w, r, portfolioPath(id), session.BadInputMsg, err)
		return
	}

	if _, err := h.client(r).UpdatePortfolio(r.Context(), id, *form); err != nil {
		h.fail(w, r, portfolioPath(id), err)
		return
	}

	h.done(w, r, portfolioPath(id), "Portfolio updated.")
}

func (h *Handler) deletePortfolio(w http.ResponseWriter, r *http.Request) {
	id := routeVar(r, "id")
	if _, err := h.client(r).DeletePortfolio(r.Context(), id); err != nil {
		h.fail(w, r, portfolioPath(id), err)
		return
	}

	h.done(w, r, PortfolioPath, "Portfolio deleted.")
}

func (h *Handler) buy(w http.ResponseWriter, r *http.Request)  { h.trade(w, r, domain.Buy) }
func (h *Handler) sell(w http.ResponseWriter, r *http.Request) { h.trade(w, r, domain.Sell) }

// trade submits a buy or sell order.
// A replayed submission of the same form is answered by middleware.Idempotent without reaching here.
func (h *Handler) trade(w http.ResponseWriter, r *http.Request, side domain.TradeType) {
	id := routeVar(r, "id")
	form := new(tradeForm)
	if err := h.parser.ParseForm(r, form); err != nil {
		h.retry(w, r, portfolioPath(id), session.BadInputMsg, err)
		return
	}

	back := portfolioPath(id)
	if local := resp.LocalPath(form.Back); local != "" {
		back = local
	}

	if form.Date == "" {
		form.Date = time.Now().Format(dateLayout)
	}

	trade := domain.TradeRequest{
		Symbol:   strings.ToUpper(strings.TrimSpace(form.Symbol)),
		Quantity: form.Quantity,
		Price:    form.Price,
		Date:     form.Date,
	}

	c := h.client(r)
	buy := c.Buy
	if side == domain.Sell {
		buy = c.Sell
	}

	tx, err := buy(r.Context(), id, trade)
	if err != nil {
		if resp.IsAuthErr(err) {
			h.toLogin(w, r)
			return
		}

		h.retry(w, r, back, fmt.Sprintf(session.TradeFailedMsg, message(err)), err)
		return
	}

	msg := session.TradeDoneMsg
	if tx != nil {
		msg = fmt.Sprintf("%s %s %d %s at $%.2f.", msg, side, tx.Quantity, tx.Symbol, tx.Price)
	}
	h.done(w, r, back, msg)
}

// transactions lists a portfolio's trades.
func (h *Handler) transactions(w http.ResponseWriter, r *http.Request) {
	id := routeVar(r, "id")
	c := h.client(r)
	data := transactionsData{
		ID: id,
		Portfolio: load(r.Context(), h, func(ctx context.Context) (*domain.Portfolio, error) {
			return c.Portfolio(ctx, id)
		}),
		Transactions: load(r.Context(), h, func(ctx context.Context) ([]domain.Transaction, error) {
			return c.Transactions(ctx, id)
		}),
	}

	h.page(w, r, transactionsTmpl, data, data.Portfolio, data.Transactions)
}

// comparePortfolios sets the portfolios picked with "id" query params side by side.
// With fewer than two picked, it only lists the portfolios to pick from.
func (h *Handler) comparePortfolios(w http.ResponseWriter, r *http.Request) {
	q := new(compareQuery)
	if err := h.parser.ParseQueryParams(r.URL.Query(), q); err != nil {
		q.IDs = nil
	}

	c := h.client(r)
	data := compareData{
		Portfolios: load(r.Context(), h, c.Portfolios),
		Selected:   q.IDs,
	}
	if len(q.IDs) > 1 {
		data.Comparison = load(r.Context(), h, func(ctx context.Context) (*domain.Comparison, error) {
			return c.ComparePortfolios(ctx, q.IDs...)
		})
	}

	h.page(w, r, compareTmpl, data, data.Portfolios, data.Comparison)
}

// controlSimulation starts, pauses, resets or sets the date of a portfolio's simulation.
func (h *Handler) controlSimulation(w http.ResponseWriter, r *http.Request) {
	id := routeVar(r, "id")
	form := new(domain.SimulationControl)
	if err := h.parser.ParseForm(r, form); err != nil {
		h.retry(w, r, portfolioPath(id), session.BadInputMsg, err)
		return
	}

	status, err := h.client(r).ControlSimulation(r.Context(), id, *form)
	if err != nil {
		h.fail(w, r, portfolioPath(id), err)
		return
	}

	h.done(w, r, portfolioPath(id), simulationMsg(status))
}

// advanceSimulation moves a portfolio's simulated clock forward.
func (h *Handler) advanceSimulation(w http.ResponseWriter, r *http.Request) {
	id := routeVar(r, "id")
	form := new(advanceForm)
	if err := h.parser.ParseForm(r, form); err != nil {
		h.retry(w, r, portfolioPath(id), session.BadInputMsg, err)
		return
	}

	status, err := h.client(r).AdvanceSimulation(r.Context(), id, form.Days)
	if err != nil {
		h.fail(w, r, portfolioPath(id), err)
		return
	}

	h.done(w, r, portfolioPath(id), simulationMsg(status))
}

func simulationMsg(s *domain.SimulationStatus) string {
	switch {
	case s == nil:
		return ""
	case s.Message != "":
		return s.Message
	case s.CurrentDate != "":
		return "Simulation date is now " + s.CurrentDate + "."
	default:
		return "Simulation updated."
	}
}

func portfolioPath(id string) string { return PortfolioPath + "/" + id }
