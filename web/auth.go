package web

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/hvpham-yorku/StockSage-AI/http/middleware"
	"github.com/hvpham-yorku/StockSage-AI/http/resp"
	"github.com/hvpham-yorku/StockSage-AI/http/session"
	"github.com/hvpham-yorku/StockSage-AI/identity"
	"github.com/hvpham-yorku/StockSage-AI/logger"
)

// ErrNoIdentity means sign in is unavailable: no Session Provider is configured.
var ErrNoIdentity = errors.New("sign in is unavailable")

type loginForm struct {
	Email    string `schema:"email" validate:"required,email"`
	Password string `schema:"password" validate:"required"`
	Next     string `schema:"next"`
}

type signUpForm struct {
	Name     string `schema:"name" validate:"max=100"`
	Email    string `schema:"email" validate:"required,email"`
	Password string `schema:"password" validate:"required,min=6"`
	Confirm  string `schema:"confirm" validate:"eqfield=Password"`
}

type resetForm struct {
	Email string `schema:"email" validate:"required,email"`
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	if err := h.Html(w, r, resp.Unauthed(), resp.Tmpls(homeTmpl)); err != nil {
		h.Err(w, r, err)
	}
}

func (h *Handler) about(w http.ResponseWriter, r *http.Request) {
	opt := resp.Unauthed()
	if _, err := h.CurrentUser(r.Context()); err == nil {
		opt = resp.Authed()
	}

	if err := h.Html(w, r, opt, resp.Tmpls(aboutTmpl)); err != nil {
		h.Err(w, r, err)
	}
}

func (h *Handler) loginForm(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{"Next": resp.LocalPath(r.URL.Query().Get("next"))}
	if err := h.Html(w, r, resp.Unauthed(), resp.Tmpls(loginTmpl), resp.Data(data)); err != nil {
		h.Err(w, r, err)
	}
}

// login signs in with an email and password,
// saving the refresh credential in the browser session.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	form := new(loginForm)
	err := h.parser.ParseForm(r, form)
	next := resp.LocalPath(form.Next)

	back := LoginPath
	if next != "" {
		back += "?" + url.Values{"next": {next}}.Encode()
	}

	if err != nil {
		h.retry(w, r, back, session.BadInputMsg, err)
		return
	}

	p, s, err := h.identity(r)
	if err != nil {
		h.retry(w, r, back, session.DefaultErrMsg, err)
		return
	}

	if _, err := p.SignIn(r.Context(), form.Email, form.Password); err != nil {
		msg := session.DefaultErrMsg
		if errors.Is(err, identity.ErrInvalidCredentials) {
			msg = session.BadCredsMsg
		}

		h.retry(w, r, back, msg, err)
		return
	}

	if err := s.RegisterIdentity(w, r, p.RefreshToken()); err != nil {
		h.retry(w, r, back, session.DefaultErrMsg, err)
		return
	}

	to := DashboardPath
	if next != "" {
		to = next
	}

	h.done(w, r, to, "")
}

func (h *Handler) signUpForm(w http.ResponseWriter, r *http.Request) {
	if err := h.Html(w, r, resp.Unauthed(), resp.Tmpls(signUpTmpl)); err != nil {
		h.Err(w, r, err)
	}
}

// signUp creates an account and signs into it.
func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	form := new(signUpForm)
	if err := h.parser.ParseForm(r, form); err != nil {
		h.retry(w, r, SignUpPath, session.BadInputMsg, err)
		return
	}

	p, s, err := h.identity(r)
	if err != nil {
		h.retry(w, r, SignUpPath, session.DefaultErrMsg, err)
		return
	}

	if _, err := p.SignUp(r.Context(), form.Email, form.Password, form.Name); err != nil {
		msg := session.DefaultErrMsg
		switch {
		case errors.Is(err, identity.ErrEmailTaken):
			msg = session.EmailTakenMsg
		case errors.Is(err, identity.ErrWeakPassword):
			msg = session.WeakPassMsg
		}

		h.retry(w, r, SignUpPath, msg, err)
		return
	}

	if err := s.RegisterIdentity(w, r, p.RefreshToken()); err != nil {
		h.retry(w, r, SignUpPath, session.DefaultErrMsg, err)
		return
	}

	h.done(w, r, DashboardPath, "Welcome to StockSage!")
}

func (h *Handler) resetForm(w http.ResponseWriter, r *http.Request) {
	if err := h.Html(w, r, resp.Unauthed(), resp.Tmpls(resetTmpl)); err != nil {
		h.Err(w, r, err)
	}
}

// reset asks the identity provider to e-mail a password reset link.
// The visitor hears the same either way, so the form does not reveal who has an account.
func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	form := new(resetForm)
	if err := h.parser.ParseForm(r, form); err != nil {
		h.retry(w, r, ResetPath, session.BadInputMsg, err)
		return
	}

	p, _, err := h.identity(r)
	if err == nil {
		err = p.SendPasswordReset(r.Context(), form.Email)
	}
	if err != nil {
		h.Logger().Warn("sending password reset failed", &logger.LogContext{Error: err, Request: r})
	}

	h.done(w, r, LoginPath, session.LinkSentMsg)
}

// logout signs the browser session out and forgets its refresh credential.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.signOut(w, r)
	h.done(w, r, LoginPath, "You have been logged out.")
}

// signOut signs out the browser session's Session Provider,
// drops it from the registry and clears the refresh credential from the cookie.
func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	if p, ok := middleware.Provider(r.Context()); ok {
		p.SignOut()
	}

	s, err := h.Session(r.Context())
	if err != nil {
		return
	}

	if err := s.DeregisterIdentity(w, r); err != nil {
		h.Logger().Warn("forgetting refresh credential failed", &logger.LogContext{Error: err, Request: r})
	}

	if h.reg != nil && s.ID() != "" {
		h.reg.Forget(s.ID())
	}
}

// identity returns the browser session's Session Provider and session.
func (h *Handler) identity(r *http.Request) (*identity.Provider, session.Session, error) {
	p, ok := middleware.Provider(r.Context())
	if !ok {
		return nil, session.Session{}, ErrNoIdentity
	}

	s, err := h.Session(r.Context())
	if err != nil {
		return nil, session.Session{}, err
	}

	return p, s, nil
}

// retry sends the visitor back to the form at to, flashing msg.
func (h *Handler) retry(w http.ResponseWriter, r *http.Request, to, msg string, err error) {
	h.Logger().Info("form rejected", &logger.LogContext{Error: err, Request: r})

	f := session.Flash{Class: session.FlashError, Msg: msg}
	if err := h.Redirect(w, r, resp.Flash(f), resp.Url(to), resp.Code(http.StatusSeeOther)); err != nil {
		h.Err(w, r, err)
	}
}
