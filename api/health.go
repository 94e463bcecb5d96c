package api

import (
	"context"
	"net/http"

	"github.com/hvpham-yorku/StockSage-AI/domain"
)

// Health checks the backend is up.
func (c *Client) Health(ctx context.Context) (*domain.Health, error) {
	return fetch[domain.Health](ctx, c, Request{Method: http.MethodGet, Path: "/api/health"})
}
