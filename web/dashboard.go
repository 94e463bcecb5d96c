package web

import (
	"context"
	"net/http"

	"github.com/hvpham-yorku/StockSage-AI/domain"
	"github.com/hvpham-yorku/StockSage-AI/http/resp"
)

type dashboardData struct {
	Portfolios Section[[]domain.Portfolio]
	Stocks     Section[[]domain.Stock]
}

// dashboard shows the user's portfolios next to the market.
func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	c := h.client(r)
	data := dashboardData{
		Portfolios: load(r.Context(), h, c.Portfolios),
		Stocks:     load(r.Context(), h, c.Stocks),
	}

	h.page(w, r, dashboardTmpl, data, data.Portfolios, data.Stocks)
}

// header renders the signed in header; signed out visitors get the signed out one through the gate.
func (h *Handler) header(w http.ResponseWriter, r *http.Request) {
	u, err := h.CurrentUser(r.Context())
	if err != nil {
		u = domain.User{}
	}

	if err := h.Html(w, r, resp.Tmpls(headerInTmpl), resp.User(u)); err != nil {
		h.Err(w, r, err)
	}
}

// headerOut renders the signed out header.
func (h *Handler) headerOut(w http.ResponseWriter, r *http.Request) {
	if err := h.Html(w, r, resp.Tmpls(headerOutTmpl)); err != nil {
		h.Err(w, r, err)
	}
}

func (h *Handler) terms(w http.ResponseWriter, r *http.Request) {
	terms := load(r.Context(), h, h.client(r).Terms)
	h.page(w, r, termsTmpl, terms, terms)
}

func (h *Handler) term(w http.ResponseWriter, r *http.Request) {
	name := routeVar(r, "term")
	term := load(r.Context(), h, func(ctx context.Context) (*domain.Term, error) {
		return h.client(r).Term(ctx, name)
	})
	h.page(w, r, termTmpl, term, term)
}

func (h *Handler) tips(w http.ResponseWriter, r *http.Request) {
	tips := load(r.Context(), h, h.client(r).Tips)
	h.page(w, r, tipsTmpl, tips, tips)
}
