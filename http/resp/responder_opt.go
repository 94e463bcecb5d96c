package resp

import (
	"net/url"

	"github.com/hvpham-yorku/StockSage-AI/http/template"
	"github.com/hvpham-yorku/StockSage-AI/logger"
)

// A ResponderOptFn mutates the provided *Responder in some way.
// A ResponderOptFn is used when constructing a new Responder.
type ResponderOptFn func(*Responder)

// WithAuthTemplate sets the template identified by the filepath to use for rendering
// when a user is authenticated.
//
// Authed requires this option.
func WithAuthTemplate(fp string) ResponderOptFn {
	return func(d *Responder) {
		d.templates.authed = fp
	}
}

// WithContactErrMsg sets the error message to use for error Flashes.
func WithContactErrMsg(msg string) ResponderOptFn {
	return func(d *Responder) {
		d.contactErrMsg = msg
	}
}

// WithErrTemplate sets the template identified by the filepath to use for rendering
// when an unexpected, unhandled error occurs while rendering HTML.
func WithErrTemplate(fp string) ResponderOptFn {
	return func(d *Responder) {
		d.templates.err = fp
	}
}

// WithLoginPath sets the path, relative to the root URL, ToLogin redirects to.
//
// Otherwise, the Responder uses "/login".
func WithLoginPath(p string) ResponderOptFn {
	return func(d *Responder) {
		d.loginPath = p
	}
}

// WithLogger sets the provided implementation of Logger in order to log all statements through it.
//
// If no Logger is provided through this option, logger.NewLogger configures one.
func WithLogger(log logger.Logger) ResponderOptFn {
	return func(d *Responder) {
		d.logger = log
	}
}

// WithParser sets the provided implementation of template.Parser to use for parsing HTML templates.
func WithParser(p template.Parser) ResponderOptFn {
	return func(d *Responder) {
		d.parser = p
	}
}

// WithRootUrl sets the provided URL after parsing it into a *url.URL to use for rendering and redirecting
//
// NOTE: If u fails parsing by url.ParseRequestURI, the root URL becomes http://localhost
func WithRootUrl(u string) ResponderOptFn {
	good, err := url.ParseRequestURI(u)
	if err != nil {
		good, _ = url.ParseRequestURI("http://localhost")
	}

	return func(d *Responder) {
		d.rootUrl = good
	}
}

// WithUnauthTemplate sets the template identified by the filepath to use for rendering
// when a user is not authenticated.
//
// Unauthed requires this option.
func WithUnauthTemplate(fp string) ResponderOptFn {
	return func(d *Responder) {
		d.templates.unauthed = fp
	}
}
