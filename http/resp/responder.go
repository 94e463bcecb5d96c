package resp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"sync"

	stocksage "github.com/hvpham-yorku/StockSage-AI"
	"github.com/hvpham-yorku/StockSage-AI/domain"
	"github.com/hvpham-yorku/StockSage-AI/http/session"
	"github.com/hvpham-yorku/StockSage-AI/http/template"
	"github.com/hvpham-yorku/StockSage-AI/logger"
)

const (
	defaultLoginPath = "/login"
	responderFrames  = 1
)

// Responder maintains reusable pieces for responding to HTTP requests.
// It exposes many common methods for writing structured data as an HTTP response.
// These are the forms of response Responder can execute:
//
//	Html
//	Json
//	Redirect
//
// Most oftentimes, setting up a single instance of a Responder suffices for an application.
//
// When handling a specific HTTP request, calling code supplies additional data, structure,
// and so forth through Fn functions.
type Responder struct {
	logger logger.Logger

	// Initialized template parser
	parser template.Parser

	// Pool of *bytes.Buffer to prerender responses into
	pool *sync.Pool

	// Error message to use for "contact us" style client-side error messages,
	// i.e., those set in a session.Flash
	contactErrMsg string

	// Root URL the responder is listening on, also used when in an error state
	rootUrl *url.URL

	// Path under rootUrl where users sign in
	loginPath string

	templates struct {
		// Root template to render when user is authenticated
		authed string

		// Root template to render when an error occurs
		// and no other response can be formed
		err string

		// Root template to render when user is not authenticated
		unauthed string
	}
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
func NewResponder(opts ...ResponderOptFn) *Responder {
	d := &Responder{
		loginPath: defaultLoginPath,
		pool:      &sync.Pool{New: func() any { return new(bytes.Buffer) }},
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.NewLogger()
	}

	if l, ok := d.logger.(logger.SkipLogger); ok {
		d.logger = l.AddSkip(l.Skip() + responderFrames)
	}

	if d.rootUrl == nil {
		WithRootUrl("http://localhost")(d)
	}

	if d.parser != nil {
		d.parser.AddFn(template.Nonce())
		d.parser.AddFn(template.RootUrl(d.rootUrl))
	}

	return d
}

// CurrentUser retrieves the user set in the context.
//
// If the context.Context has no domain.User for stocksage.CurrentUserKey, ErrNotFound returns.
func (doer Responder) CurrentUser(ctx context.Context) (domain.User, error) {
	u, ok := ctx.Value(stocksage.CurrentUserKey).(domain.User)
	if !ok {
		return domain.User{}, fmt.Errorf("%w: no user found with %s", ErrNotFound, stocksage.CurrentUserKey)
	}
	return u, nil
}

// Logger returns the logger.Logger the Responder reports to.
func (doer Responder) Logger() logger.Logger { return doer.logger }

// Err wraps http.Error(), logging the error causing the failure state.
//
// Use in exceptional circumstances when no Redirect or Html can occur.
func (doer *Responder) Err(w http.ResponseWriter, r *http.Request, err error, opts ...Fn) {
	rr, nested := doer.do(w, r, append(opts, Err(err))...)
	if nested != nil {
		err = fmt.Errorf("%w: %s", err, nested)
	}

	var msg string
	if err != nil {
		msg = err.Error()
	}

	code := http.StatusInternalServerError
	if rr != nil && rr.code != 0 {
		code = rr.code
	}

	http.Error(w, msg, code)
}

// Html composes together HTML templates set in *Responder
// and configured by Authed, Unauthed, Tmpls and other such calls.
//
// Templates execute with this data:
//
//	{{ .CurrentUser }} the domain.User, when Authed or User was called
//	{{ .Data }}        whatever Data set
//	{{ .Flashes }}     the []session.Flash waiting in the session
func (doer *Responder) Html(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, opts...)
	if err != nil {
		return doer.handleHtmlError(w, r, err)
	}

	if doer.parser == nil {
		return doer.handleHtmlError(w, r, fmt.Errorf("%w: no parser configured", ErrBadConfig))
	}

	if len(rr.tmpls) == 0 {
		return doer.handleHtmlError(w, r, fmt.Errorf("%w: no templates to render", ErrMissingData))
	}

	if rr.tmpls[0] == doer.templates.authed {
		// NOTE: guards against Html(Tmpls(authedTmpl, otherTmpl)) without a user
		if err := populateUser(*doer, rr); err != nil {
			return doer.handleHtmlError(w, r, err)
		}
	}

	tmpl, err := doer.parser.Parse(rr.tmpls...)
	if err != nil {
		return doer.handleHtmlError(w, r, fmt.Errorf("cannot parse: %w", err))
	}

	rd := struct {
		CurrentUser any
		Data        any
		Flashes     []session.Flash
	}{CurrentUser: rr.user, Data: rr.data}

	s, err := doer.Session(r.Context())
	if err != nil && !errors.Is(err, ErrNotFound) {
		return doer.handleHtmlError(w, r, fmt.Errorf("can't retrieve session: %w", err))
	}

	if err == nil {
		rd.Flashes = s.Flashes(w, r)
	}

	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	if err := tmpl.ExecuteTemplate(b, path.Base(rr.tmpls[0]), rd); err != nil {
		return doer.handleHtmlError(w, r, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=UTF-8")
	if rr.code != 0 {
		w.WriteHeader(rr.code)
	}

	if _, err := b.WriteTo(w); err != nil {
		return err
	}

	return nil
}

type jsonSchema struct {
	D any `json:"data,omitempty"`
	U any `json:"currentUser,omitempty"`
}

// Json responds with data in JSON format, collating it from User(), Data() and setting appropriate headers.
//
// When standard 2xx codes are supplied, the JSON schema will look like this:
//
//	{
//		"currentUser": {},
//		"data": {}
//	}
//
// Otherwise, "currentUser" is elided.
func (doer *Responder) Json(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, opts...)
	if err != nil {
		return err
	}

	if rr.code == 0 {
		rr.code = http.StatusOK
	}

	payload := jsonSchema{D: rr.data}
	if rr.code >= http.StatusOK && rr.code <= http.StatusNoContent {
		payload.U = rr.user
	}

	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	if err := json.NewEncoder(b).Encode(payload); err != nil {
		doer.Err(w, r, err)
		return err
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(rr.code)
	if _, err := b.WriteTo(w); err != nil {
		return err
	}

	return nil
}

// Redirect calls http.Redirect, given Url() set the redirect destination.
// If Url() is not passed in opts, then ToRoot() sets the redirect destination.
//
// The default response status code is 302.
//
// If Code() set the status code to something other than standard redirect 3xx statuses,
// Redirect overwrites the status code with an appropriate 3xx status code.
func (doer *Responder) Redirect(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, append([]Fn{ToRoot()}, opts...)...)
	if err != nil {
		return err
	}

	if rr.url == nil {
		return fmt.Errorf("%w: cannot redirect, no resp.url", ErrMissingData)
	}

	switch {
	case rr.code >= http.StatusMultipleChoices && rr.code <= http.StatusPermanentRedirect:
		// NOTE: already a 3xx
	case rr.code >= http.StatusBadRequest && rr.code < http.StatusInternalServerError:
		rr.code = http.StatusSeeOther
	case rr.code >= http.StatusInternalServerError:
		rr.code = http.StatusTemporaryRedirect
	case r.Method != http.MethodGet && r.Method != http.MethodHead:
		rr.code = http.StatusSeeOther
	default:
		rr.code = http.StatusFound
	}

	http.Redirect(w, r, rr.url.String(), rr.code)
	return nil
}

// Session retrieves the session set in the context as a session.Session.
//
// If the context.Context has no value for stocksage.SessionKey, ErrNotFound returns.
func (doer Responder) Session(ctx context.Context) (session.Session, error) {
	val := ctx.Value(stocksage.SessionKey)
	if val == nil {
		return session.Session{}, fmt.Errorf("%w: no session found with %s", ErrNotFound, stocksage.SessionKey)
	}

	s, ok := val.(session.Session)
	if !ok {
		return session.Session{}, fmt.Errorf("%w: is not session.Session, is %T", ErrInvalid, val)
	}

	return s, nil
}

// do applies all options to the passed in http.ResponseWriter and *http.Request.
//
// Calling code ought to pass Options in the correct order.
// An option requiring something set by another one should come after.
// do nonetheless attempts to retry calling functional options until all do not return errors or,
// a set of options unable to not return errors is reached.
//
// Should all options apply successfully, do returns a validly formed *Response.
func (doer *Responder) do(w http.ResponseWriter, r *http.Request, opts ...Fn) (*Response, error) {
	resp := &Response{
		w:     w,
		r:     r,
		tmpls: make([]string, 0),
	}

	redos := make([]Fn, 0)
	for _, opt := range opts {
		select {
		case <-r.Context().Done():
			return nil, fmt.Errorf("%w", ErrDone)
		default:
			if err := opt(*doer, resp); err != nil {
				redos = append(redos, opt)
			}
		}
	}

	i := -1
	for i != len(redos) {
		select {
		case <-r.Context().Done():
			return nil, fmt.Errorf("%w", ErrDone)
		default:
			// NOTE: stop once a pass through redos fixes nothing
			i = len(redos)
			redos = doer.redo(resp, redos...)
		}
	}

	var err error
	for _, opt := range redos {
		nested := opt(*doer, resp)
		if err == nil {
			err = nested
			continue
		}
		err = fmt.Errorf("%w: %s", nested, err)
	}

	return resp, err
}

// handleHtmlError specially renders the error template set on the Responder
// and reports errors.
func (doer *Responder) handleHtmlError(w http.ResponseWriter, r *http.Request, err error) error {
	doer.logger.Error(err.Error(), newLogContext(r, err, nil, nil))

	if doer.templates.err == "" || doer.parser == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return fmt.Errorf(
			"%w: no error template provided, encountered while handling: %w",
			ErrBadConfig,
			err,
		)
	}

	tmpl, nested := doer.parser.Parse(doer.templates.err)
	if nested != nil {
		err = fmt.Errorf("%w: %s", nested, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}

	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	nested = tmpl.Execute(b, map[string]any{"Contact": doer.contactErrMsg})
	if nested != nil {
		err = fmt.Errorf("%w: %s", nested, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=UTF-8")
	w.WriteHeader(http.StatusInternalServerError)
	if _, nested = b.WriteTo(w); nested != nil {
		return fmt.Errorf("%w: %s", nested, err)
	}

	return err
}

// redo applies as many may Options as it can, returning those Options that continue to throw an error.
func (doer *Responder) redo(r *Response, opts ...Fn) []Fn {
	bad := make([]Fn, 0)
	for _, opt := range opts {
		if err := opt(*doer, r); err != nil {
			bad = append(bad, opt)
		}
	}

	return bad
}
