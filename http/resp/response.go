package resp

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/hvpham-yorku/StockSage-AI/domain"
	"github.com/hvpham-yorku/StockSage-AI/http/session"
	"github.com/hvpham-yorku/StockSage-AI/logger"
)

// A Fn is a functional option that mutates the state of the Response.
type Fn func(Responder, *Response) error

// A Response is the internal object a Responder response method builds while applying all
// functional options.
type Response struct {
	w     http.ResponseWriter
	r     *http.Request
	code  int
	data  any
	tmpls []string
	url   *url.URL
	user  logger.LogUser
}

// Authed prepends all templates with the base authenticated template and adds resp.user from the context.
//
// If no user can be retrieved from the context, it is assumed a user is not logged in and returns ErrNoUser.
//
// If WithAuthTemplate was not called setting up the Responder, ErrBadConfig returns.
func Authed() Fn {
	return func(d Responder, r *Response) error {
		if d.templates.authed == "" {
			return fmt.Errorf("%w: no authed tmpl", ErrBadConfig)
		}

		if err := populateUser(d, r); err != nil {
			return err
		}

		if len(r.tmpls) > 0 {
			if r.tmpls[0] == d.templates.authed {
				return nil
			}

			if r.tmpls[0] == d.templates.unauthed {
				r.tmpls[0] = d.templates.authed
				return nil
			}
		}

		r.tmpls = append([]string{d.templates.authed}, r.tmpls...)
		return nil
	}
}

// Code sets the response status code.
func Code(c int) Fn {
	return func(_ Responder, r *Response) error {
		r.code = c
		return nil
	}
}

// Data stores the provided value for writing to the client.
//
// Used with Responder.Html and Responder.Json.
func Data(d any) Fn {
	return func(_ Responder, r *Response) error {
		r.data = d
		return nil
	}
}

// Err sets the status code http.StatusInternalServerError and logs the error.
func Err(e error) Fn {
	return func(d Responder, r *Response) error {
		if e != nil {
			d.logger.Error(e.Error(), newLogContext(r.r, e, r.data, r.user))
		}

		r.code = http.StatusInternalServerError
		return nil
	}
}

// Flash sets a flash message in the session with the passed in class and msg.
func Flash(flash session.Flash) Fn {
	return func(d Responder, r *Response) error {
		s, err := d.Session(r.r.Context())
		if err != nil {
			return err
		}

		return s.SetFlash(r.w, r.r, flash)
	}
}

// GenericErr combines Err() and Flash() to log the passed in error
// and set a generic error flash in the session
// using either the string set by WithContactErrMsg or session.DefaultErrMsg.
func GenericErr(e error) Fn {
	return func(d Responder, r *Response) error {
		if err := Err(e)(d, r); err != nil {
			return err
		}

		msg := session.DefaultErrMsg
		if d.contactErrMsg != "" {
			msg = d.contactErrMsg
		}

		return Flash(session.Flash{Class: session.FlashError, Msg: msg})(d, r)
	}
}

// Param adds they query parameter to the response's URL.
//
// Used with Responder.Redirect.
func Param(key, val string) Fn {
	return func(_ Responder, r *Response) error {
		if r.url == nil {
			return fmt.Errorf("%w: Url() has not been called", ErrMissingData)
		}

		q := r.url.Query()
		q.Add(key, val)
		r.url.RawQuery = q.Encode()
		return nil
	}
}

// Success sets the status OK to http.StatusOK
// and sets a session.FlashSuccess flash in the session with the passed in msg.
func Success(msg string) Fn {
	return func(d Responder, r *Response) error {
		r.code = http.StatusOK
		return Flash(session.Flash{Class: session.FlashSuccess, Msg: msg})(d, r)
	}
}

// Tmpls appends to the templates to be rendered.
//
// Used with Responder.Html.
func Tmpls(fps ...string) Fn {
	return func(_ Responder, r *Response) error {
		r.tmpls = append(r.tmpls, fps...)
		return nil
	}
}

// ToLogin sets the response's URL to the login page.
// For GET requests, the requested URL rides along in the "next" query param
// so signing in can return there.
//
// Used with Responder.Redirect.
func ToLogin() Fn {
	return func(d Responder, r *Response) error {
		u := d.rootUrl.JoinPath(d.loginPath)
		if r.r.Method == http.MethodGet && r.r.URL.Path != d.loginPath {
			u.RawQuery = url.Values{"next": {r.r.URL.RequestURI()}}.Encode()
		}

		r.url = u
		return nil
	}
}

// ToRoot calls URL with the Responder's default, root URL.
func ToRoot() Fn {
	return func(d Responder, r *Response) error {
		u := *d.rootUrl
		r.url = &u
		return nil
	}
}

// Unauthed prepends all templates with the base unauthenticated template.
// If the first template is the base authenticated template, this overwrites it.
//
// If WithUnauthTemplate was not called setting up the Responder, ErrBadConfig returns.
func Unauthed() Fn {
	return func(d Responder, r *Response) error {
		if d.templates.unauthed == "" {
			return fmt.Errorf("%w: no unauthed tmpl", ErrBadConfig)
		}

		if len(r.tmpls) > 0 {
			if r.tmpls[0] == d.templates.unauthed {
				return nil
			}

			if r.tmpls[0] == d.templates.authed {
				r.tmpls[0] = d.templates.unauthed
				return nil
			}
		}

		r.tmpls = append([]string{d.templates.unauthed}, r.tmpls...)
		return nil
	}
}

// User stores the user in the *Response.
//
// Used with Responder.Html and Responder.Json.
// When used with Json, the user is assigned to the "currentUser" key.
func User(u domain.User) Fn {
	return func(d Responder, r *Response) error {
		r.user = u
		return nil
	}
}

// Url parses raw the URL string and sets it in the *Response if successful.
// A path without a host resolves against the Responder's root URL.
//
// Used with Responder.Redirect.
func Url(u string) Fn {
	return func(d Responder, r *Response) error {
		parsed, err := url.Parse(u)
		if err != nil || u == "" {
			return fmt.Errorf("%w: u is not a valid URL: %v", ErrInvalid, err)
		}

		r.url = d.rootUrl.ResolveReference(parsed)
		return nil
	}
}

// Warn sets a flash warning in the session and logs the warning.
func Warn(msg string) Fn {
	return func(d Responder, r *Response) error {
		d.logger.Warn(msg, newLogContext(r.r, nil, r.data, r.user))
		return Flash(session.Flash{Class: session.FlashWarning, Msg: msg})(d, r)
	}
}
