package resp_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hvpham-yorku/StockSage-AI/http/resp"
	"github.com/hvpham-yorku/StockSage-AI/http/session"
)

func TestFlashes(t *testing.T) {
	for _, tc := range []struct {
		name     string
		fn       resp.Fn
		expected session.Flash
		logged   string
	}{
		{
			"Flash",
			resp.Flash(session.Flash{Class: session.FlashInfo, Msg: session.LinkSentMsg}),
			session.Flash{Class: session.FlashInfo, Msg: session.LinkSentMsg},
			"",
		},
		{
			"Success",
			resp.Success(session.TradeDoneMsg),
			session.Flash{Class: session.FlashSuccess, Msg: session.TradeDoneMsg},
			"",
		},
		{
			"Warn",
			resp.Warn(session.NoAccessMsg),
			session.Flash{Class: session.FlashWarning, Msg: session.NoAccessMsg},
			session.NoAccessMsg,
		},
		{
			"GenericErr",
			resp.GenericErr(errors.New("backend down")),
			session.Flash{Class: session.FlashError, Msg: session.DefaultErrMsg},
			"backend down",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r, s := withSession(httptest.NewRequest(http.MethodPost, "/portfolios/p1/buy", nil))
			w := httptest.NewRecorder()
			l := newLogger()
			d := resp.NewResponder(resp.WithLogger(l))

			// Act
			err := d.Redirect(w, r, resp.Url("/portfolios/p1"), tc.fn)

			// Assert
			require.Nil(t, err)
			require.Equal(t, []session.Flash{tc.expected}, s.Flashes(w, r))
			require.Equal(t, tc.logged, l.b.String())
		})
	}
}

func TestFlashWithoutSession(t *testing.T) {
	// Arrange
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	d := resp.NewResponder(resp.WithLogger(newLogger()))

	// Act
	err := d.Redirect(w, r, resp.Success(session.TradeDoneMsg))

	// Assert
	require.ErrorIs(t, err, resp.ErrNotFound)
}

func TestLayouts(t *testing.T) {
	for _, tc := range []struct {
		name     string
		fns      []resp.Fn
		expected string
	}{
		{"Unauthed", []resp.Fn{resp.Unauthed(), resp.Tmpls("page.tmpl"), resp.Data("x")}, "unauthed: x"},
		{"Authed-Then-Unauthed", []resp.Fn{resp.Authed(), resp.Unauthed(), resp.Tmpls("page.tmpl"), resp.Data("x")}, "unauthed: x"},
		{"Unauthed-Then-Authed", []resp.Fn{resp.Unauthed(), resp.Authed(), resp.Tmpls("page.tmpl"), resp.Data("x")}, "authed Ada: x"},
		{"Authed-Twice", []resp.Fn{resp.Authed(), resp.Authed(), resp.Tmpls("page.tmpl"), resp.Data("x")}, "authed Ada: x"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := withUser(httptest.NewRequest(http.MethodGet, "/", nil), ada)
			w := httptest.NewRecorder()
			d := resp.NewResponder(
				resp.WithParser(newParser()),
				resp.WithAuthTemplate("authed.tmpl"),
				resp.WithUnauthTemplate("unauthed.tmpl"),
				resp.WithLogger(newLogger()),
			)

			// Act
			err := d.Html(w, r, tc.fns...)

			// Assert
			require.Nil(t, err)
			require.Equal(t, tc.expected, w.Body.String())
		})
	}
}

func TestUrlInvalid(t *testing.T) {
	// Arrange
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	d := resp.NewResponder(resp.WithLogger(newLogger()))

	// Act
	err := d.Redirect(w, r, resp.Url(""))

	// Assert
	require.ErrorIs(t, err, resp.ErrInvalid)
}
