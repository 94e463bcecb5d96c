package resp

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/hvpham-yorku/StockSage-AI/api"
	"github.com/hvpham-yorku/StockSage-AI/identity"
	"github.com/hvpham-yorku/StockSage-AI/logger"
)

// IsAuthErr asserts whether err means the request has no usable identity behind it:
// nobody is signed in, the identity provider expired the credential,
// or the backend turned the bearer token away.
func IsAuthErr(err error) bool {
	var herr *api.HTTPError
	if errors.As(err, &herr) && herr.Status == http.StatusUnauthorized {
		return true
	}

	return errors.Is(err, api.ErrUnauthenticated) || errors.Is(err, identity.ErrTokenExpired)
}

// newLogContext helps structure a logger.LogContext from the provided parts.
func newLogContext(r *http.Request, err error, data any, user logger.LogUser) *logger.LogContext {
	if r == nil && err == nil && data == nil && user == nil {
		return nil
	}

	ctx := new(logger.LogContext)
	if r != nil {
		ctx.Request = r
	}

	if err != nil {
		ctx.Error = err
	}

	if mapped, ok := data.(map[string]any); ok {
		ctx.Data = mapped
	}

	if user != nil {
		ctx.User = user
	}

	return ctx
}

// populateUser helps pull a user up out of the *Response.r.Context
// and into the *Response itself.
func populateUser(d Responder, r *Response) error {
	if r.user != nil {
		return nil
	}

	u, err := d.CurrentUser(r.r.Context())
	if err != nil {
		return ErrNoUser
	}

	return User(u)(d, r)
}

// LocalPath returns raw when it is a path on this site, like "/portfolios/p1?tab=history",
// and "" otherwise.
// Use it on redirect destinations supplied by the client.
func LocalPath(raw string) string {
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host != "" || u.Scheme != "" {
		return ""
	}

	return raw
}
