package web

import (
	"context"
	"net/http"
	"strings"

	"github.com/hvpham-yorku/StockSage-AI/domain"
	"github.com/hvpham-yorku/StockSage-AI/http/router"
)

const (
	defaultHistoryDays = 30
	maxHistoryDays     = 365 * 5
)

type stocksQuery struct {
	Q string `schema:"q" validate:"max=50"`
}

type stocksData struct {
	Query  string
	Stocks Section[[]domain.Stock]
}

// stocks lists the market, or the stocks matching the "q" query param.
func (h *Handler) stocks(w http.ResponseWriter, r *http.Request) {
	q := new(stocksQuery)
	if err := h.parser.ParseQueryParams(r.URL.Query(), q); err != nil {
		q.Q = ""
	}

	query := strings.TrimSpace(q.Q)
	c := h.client(r)
	data := stocksData{Query: query}
	if query == "" {
		data.Stocks = load(r.Context(), h, c.Stocks)
	} else {
		data.Stocks = load(r.Context(), h, func(ctx context.Context) ([]domain.Stock, error) {
			return c.SearchStocks(ctx, query)
		})
	}

	h.page(w, r, stocksTmpl, data, data.Stocks)
}

type historyQuery struct {
	Days int `schema:"days" validate:"gte=0"`
}

type stockData struct {
	Symbol         string
	Days           int
	Detail         Section[*domain.StockDetail]
	History        Section[[]domain.HistoryPoint]
	Company        Section[*domain.CompanyInfo]
	Recommendation Section[*domain.Recommendation]
	Portfolios     Section[[]domain.Portfolio]
}

// stock shows one stock: its quote, price history, company and recommendation,
// plus the user's portfolios to trade it in.
// Each part loads on its own, so one failing does not blank the page.
func (h *Handler) stock(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(routeVar(r, "symbol"))

	hq := new(historyQuery)
	if err := h.parser.ParseQueryParams(r.URL.Query(), hq); err != nil || hq.Days == 0 {
		hq.Days = defaultHistoryDays
	}
	hq.Days = min(hq.Days, maxHistoryDays)

	c := h.client(r)
	ctx := r.Context()
	data := stockData{
		Symbol: symbol,
		Days:   hq.Days,
		Detail: load(ctx, h, func(ctx context.Context) (*domain.StockDetail, error) {
			return c.Stock(ctx, symbol)
		}),
		History: load(ctx, h, func(ctx context.Context) ([]domain.HistoryPoint, error) {
			return c.StockHistory(ctx, symbol, hq.Days)
		}),
		Company: load(ctx, h, func(ctx context.Context) (*domain.CompanyInfo, error) {
			return c.CompanyInfo(ctx, symbol)
		}),
		Recommendation: load(ctx, h, func(ctx context.Context) (*domain.Recommendation, error) {
			return c.Recommendation(ctx, symbol)
		}),
		Portfolios: load(ctx, h, c.Portfolios),
	}

	h.page(w, r, stockTmpl, data, data.Detail, data.History, data.Company, data.Recommendation, data.Portfolios)
}

// routeVar returns the route variable key, such as a portfolio's {id}.
func routeVar(r *http.Request, key string) string {
	return router.Vars(r)[key]
}
