package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/hvpham-yorku/StockSage-AI/api"
	"github.com/hvpham-yorku/StockSage-AI/http/resp"
	"github.com/hvpham-yorku/StockSage-AI/http/session"
	"github.com/hvpham-yorku/StockSage-AI/logger"
)

// A Section is one independently loaded part of a page.
// When loading failed, Err says why in words fit for the page.
type Section[T any] struct {
	Data T
	Err  string

	auth bool
}

// OK asserts whether the Section loaded.
func (s Section[T]) OK() bool { return s.Err == "" }

// load runs fn, turning a failure into a Section the page can show in place.
func load[T any](ctx context.Context, h *Handler, fn func(context.Context) (T, error)) Section[T] {
	v, err := fn(ctx)
	if err == nil {
		return Section[T]{Data: v}
	}

	if !errors.Is(err, context.Canceled) {
		h.Logger().Warn("loading page section failed", &logger.LogContext{Error: err})
	}

	return Section[T]{Err: message(err), auth: resp.IsAuthErr(err)}
}

// authFailed asserts whether any of the sections failed for lack of a signed in user.
func authFailed(sections ...interface{ needsAuth() bool }) bool {
	for _, s := range sections {
		if s.needsAuth() {
			return true
		}
	}
	return false
}

func (s Section[T]) needsAuth() bool { return s.auth }

// message words err for the page.
func message(err error) string {
	var herr *api.HTTPError
	var terr *api.TransportError

	switch {
	case err == nil:
		return ""
	case resp.IsAuthErr(err):
		return session.ExpiredMsg
	case errors.Is(err, api.ErrTimeout):
		return "The request took too long. Please try again."
	case errors.As(err, &terr):
		return "We could not reach StockSage. Please try again shortly."
	case errors.Is(err, api.ErrInvalidPayload):
		return "StockSage sent back something we did not understand."
	case errors.As(err, &herr) && herr.NotFound():
		return "We could not find that."
	case errors.As(err, &herr) && herr.Status < http.StatusInternalServerError && herr.Message != "":
		return herr.Message
	default:
		return session.DefaultErrMsg
	}
}

// toLogin sends the visitor to sign in again, keeping where they were headed.
func (h *Handler) toLogin(w http.ResponseWriter, r *http.Request) {
	if err := h.Redirect(w, r, resp.ToLogin(), resp.Warn(session.ExpiredMsg)); err != nil {
		h.Err(w, r, err)
	}
}

// fail answers a form submission that could not be carried out,
// flashing why and sending the visitor to the page at to.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, to string, err error) {
	if resp.IsAuthErr(err) {
		h.toLogin(w, r)
		return
	}

	h.Logger().Warn("form submission failed", &logger.LogContext{Error: err, Request: r})

	f := session.Flash{Class: session.FlashError, Msg: message(err)}
	if err := h.Redirect(w, r, resp.Flash(f), resp.Url(to), resp.Code(http.StatusSeeOther)); err != nil {
		h.Err(w, r, err)
	}
}

// done answers a form submission that was carried out, flashing msg and sending the visitor to to.
func (h *Handler) done(w http.ResponseWriter, r *http.Request, to, msg string) {
	opts := []resp.Fn{resp.Url(to), resp.Code(http.StatusSeeOther)}
	if msg != "" {
		opts = append(opts, resp.Flash(session.Flash{Class: session.FlashSuccess, Msg: msg}))
	}

	if err := h.Redirect(w, r, opts...); err != nil {
		h.Err(w, r, err)
	}
}

// page renders an authed page, or sends the visitor to sign in again
// when the backend no longer recognizes them.
func (h *Handler) page(w http.ResponseWriter, r *http.Request, tmpl string, data any, sections ...interface{ needsAuth() bool }) {
	if authFailed(sections...) {
		h.toLogin(w, r)
		return
	}

	if err := h.Html(w, r, resp.Authed(), resp.Tmpls(tmpl), resp.Data(data)); err != nil {
		h.Err(w, r, err)
	}
}
