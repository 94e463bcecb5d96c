package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hvpham-yorku/StockSage-AI/domain"
)

// DefaultHistoryDays is the price history window used when none is asked for.
const DefaultHistoryDays = 30

// Stocks lists the market.
func (c *Client) Stocks(ctx context.Context) ([]domain.Stock, error) {
	var stocks []domain.Stock
	if err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/api/stocks"}, &stocks); err != nil {
		return nil, err
	}
	return stocks, nil
}

// SearchStocks finds stocks whose symbol or company name matches query.
func (c *Client) SearchStocks(ctx context.Context, query string) ([]domain.Stock, error) {
	var stocks []domain.Stock
	req := Request{
		Method: http.MethodGet,
		Path:   "/api/stocks/search",
		Query:  url.Values{"query": []string{strings.TrimSpace(query)}},
	}
	if err := c.Do(ctx, req, &stocks); err != nil {
		return nil, err
	}
	return stocks, nil
}

// Stock fetches one stock with its market statistics.
func (c *Client) Stock(ctx context.Context, symbol string) (*domain.StockDetail, error) {
	return fetch[domain.StockDetail](ctx, c, stockReq(symbol, "", "/api/stocks/{symbol}"))
}

// StockHistory fetches days of closing prices, DefaultHistoryDays when days is not positive.
func (c *Client) StockHistory(ctx context.Context, symbol string, days int) ([]domain.HistoryPoint, error) {
	if days <= 0 {
		days = DefaultHistoryDays
	}

	req := stockReq(symbol, "/history", "/api/stocks/{symbol}/history")
	req.Query = url.Values{"days": []string{strconv.Itoa(days)}}

	var history []domain.HistoryPoint
	if err := c.Do(ctx, req, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// CompanyInfo fetches metadata about the company behind symbol.
func (c *Client) CompanyInfo(ctx context.Context, symbol string) (*domain.CompanyInfo, error) {
	return fetch[domain.CompanyInfo](ctx, c, stockReq(symbol, "/company-info", "/api/stocks/{symbol}/company-info"))
}

// Recommendation fetches the backend's trading advice for symbol.
func (c *Client) Recommendation(ctx context.Context, symbol string) (*domain.Recommendation, error) {
	return fetch[domain.Recommendation](ctx, c, stockReq(symbol, "/recommendation", "/api/stocks/{symbol}/recommendation"))
}

func stockReq(symbol, suffix, route string) Request {
	return Request{
		Method: http.MethodGet,
		Path:   "/api/stocks/" + url.PathEscape(strings.ToUpper(symbol)) + suffix,
		Route:  route,
	}
}
