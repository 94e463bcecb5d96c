package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/hvpham-yorku/StockSage-AI/domain"
)

// CreatePortfolio opens a simulated portfolio.
func (c *Client) CreatePortfolio(ctx context.Context, create domain.PortfolioCreate) (*domain.Portfolio, error) {
	return fetch[domain.Portfolio](ctx, c, Request{Method: http.MethodPost, Path: "/api/portfolios", Body: create})
}

// Portfolios lists the signed in user's portfolios.
func (c *Client) Portfolios(ctx context.Context) ([]domain.Portfolio, error) {
	var ps []domain.Portfolio
	if err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/api/portfolios"}, &ps); err != nil {
		return nil, err
	}
	return ps, nil
}

// Portfolio fetches a portfolio with its holdings.
func (c *Client) Portfolio(ctx context.Context, id string) (*domain.Portfolio, error) {
	return fetch[domain.Portfolio](ctx, c, portfolioReq(http.MethodGet, id, "", nil))
}

// UpdatePortfolio renames a portfolio or changes its simulation speed.
func (c *Client) UpdatePortfolio(ctx context.Context, id string, update domain.PortfolioUpdate) (*domain.Portfolio, error) {
	return fetch[domain.Portfolio](ctx, c, portfolioReq(http.MethodPatch, id, "", update))
}

// DeletePortfolio deletes a portfolio and its transactions.
func (c *Client) DeletePortfolio(ctx context.Context, id string) (*domain.Message, error) {
	return fetchOptional[domain.Message](ctx, c, portfolioReq(http.MethodDelete, id, "", nil))
}

// Buy buys shares into a portfolio.
func (c *Client) Buy(ctx context.Context, id string, trade domain.TradeRequest) (*domain.Transaction, error) {
	return c.trade(ctx, id, domain.Buy, trade)
}

// Sell sells shares out of a portfolio.
func (c *Client) Sell(ctx context.Context, id string, trade domain.TradeRequest) (*domain.Transaction, error) {
	return c.trade(ctx, id, domain.Sell, trade)
}

func (c *Client) trade(ctx context.Context, id string, side domain.TradeType, trade domain.TradeRequest) (*domain.Transaction, error) {
	if err := side.Valid(); err != nil {
		return nil, err
	}

	trade.Symbol = strings.ToUpper(strings.TrimSpace(trade.Symbol))
	return fetchOptional[domain.Transaction](ctx, c, portfolioReq(http.MethodPost, id, "/"+side.String(), trade))
}

// Transactions lists a portfolio's executed trades.
func (c *Client) Transactions(ctx context.Context, id string) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	if err := c.Do(ctx, portfolioReq(http.MethodGet, id, "/transactions", nil), &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// Performance fetches how a portfolio has done since it opened.
func (c *Client) Performance(ctx context.Context, id string) (*domain.Performance, error) {
	return fetch[domain.Performance](ctx, c, portfolioReq(http.MethodGet, id, "/performance", nil))
}

// ComparePortfolios sets portfolios side by side.
func (c *Client) ComparePortfolios(ctx context.Context, ids ...string) (*domain.Comparison, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no portfolios to compare", ErrInvalidPayload)
	}

	req := Request{
		Method: http.MethodGet,
		Path:   "/api/portfolios/compare",
		Query:  url.Values{"ids": []string{strings.Join(ids, ",")}},
	}
	return fetch[domain.Comparison](ctx, c, req)
}

// ControlSimulation starts, pauses, resets or moves a portfolio's simulated clock.
func (c *Client) ControlSimulation(ctx context.Context, id string, ctl domain.SimulationControl) (*domain.SimulationStatus, error) {
	if err := ctl.Action.Valid(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPayload, err)
	}

	return fetchOptional[domain.SimulationStatus](ctx, c, portfolioReq(http.MethodPost, id, "/simulation", ctl))
}

// AdvanceSimulation moves a portfolio's simulated clock forward by days.
func (c *Client) AdvanceSimulation(ctx context.Context, id string, days int) (*domain.SimulationStatus, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive", ErrInvalidPayload)
	}

	body := map[string]int{"days": days}
	return fetchOptional[domain.SimulationStatus](ctx, c, portfolioReq(http.MethodPost, id, "/advance", body))
}

func portfolioReq(method, id, suffix string, body any) Request {
	return Request{
		Method: method,
		Path:   "/api/portfolios/" + url.PathEscape(id) + suffix,
		Route:  "/api/portfolios/{id}" + suffix,
		Body:   body,
	}
}
