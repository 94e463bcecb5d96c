package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hvpham-yorku/StockSage-AI/domain"
)

// Profile fetches the signed in user's profile.
func (c *Client) Profile(ctx context.Context) (*domain.Profile, error) {
	return fetch[domain.Profile](ctx, c, Request{Method: http.MethodGet, Path: "/api/auth/profile"})
}

// UpdateProfile changes the signed in user's name or preferences.
func (c *Client) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.Profile, error) {
	return fetch[domain.Profile](ctx, c, Request{Method: http.MethodPut, Path: "/api/auth/profile", Body: update})
}

// DeleteProfile deletes the signed in user's data,
// and their sign in account as well when deleteAuth is true.
func (c *Client) DeleteProfile(ctx context.Context, deleteAuth bool) error {
	q := url.Values{"delete_auth": []string{strconv.FormatBool(deleteAuth)}}
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: "/api/auth/profile", Query: q}, nil)
}

// VerifyToken asks the backend whether the current bearer token is valid.
func (c *Client) VerifyToken(ctx context.Context) (*domain.TokenVerification, error) {
	return fetch[domain.TokenVerification](ctx, c, Request{Method: http.MethodGet, Path: "/api/auth/verify"})
}
