package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/hvpham-yorku/StockSage-AI/domain"
)

// Terms lists the glossary.
func (c *Client) Terms(ctx context.Context) ([]domain.Term, error) {
	var terms []domain.Term
	if err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/api/education/terms"}, &terms); err != nil {
		return nil, err
	}
	return terms, nil
}

// Term fetches one glossary entry.
func (c *Client) Term(ctx context.Context, term string) (*domain.Term, error) {
	req := Request{
		Method: http.MethodGet,
		Path:   "/api/education/terms/" + url.PathEscape(term),
		Route:  "/api/education/terms/{term}",
	}
	return fetch[domain.Term](ctx, c, req)
}

// Tips lists investing tips.
func (c *Client) Tips(ctx context.Context) ([]domain.Tip, error) {
	var tips []domain.Tip
	if err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/api/education/tips"}, &tips); err != nil {
		return nil, err
	}
	return tips, nil
}
