package resp_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"testing/fstest"

	stocksage "github.com/hvpham-yorku/StockSage-AI"
	"github.com/hvpham-yorku/StockSage-AI/domain"
	"github.com/hvpham-yorku/StockSage-AI/http/session"
	"github.com/hvpham-yorku/StockSage-AI/http/template"
	"github.com/hvpham-yorku/StockSage-AI/logger"
)

var ada = domain.User{ID: "uid-ada", Email: "ada@example.com", DisplayName: "Ada"}

// withSession stores a fresh stub session in r's context.
func withSession(r *http.Request) (*http.Request, session.Session) {
	s, _ := session.NewStub(false).GetSession(r)
	return r.WithContext(context.WithValue(r.Context(), stocksage.SessionKey, s)), s
}

func withUser(r *http.Request, u domain.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), stocksage.CurrentUserKey, u))
}

func newParser() template.Parser {
	return template.NewParser(template.WithFS(fstest.MapFS{
		"authed.tmpl":   {Data: []byte(`authed {{ .CurrentUser.Name }}: {{ template "content" . }}`)},
		"unauthed.tmpl": {Data: []byte(`unauthed: {{ template "content" . }}{{ range .Flashes }} [{{ .Msg }}]{{ end }}`)},
		"err.tmpl":      {Data: []byte(`oops {{ .Contact }}`)},
		"page.tmpl":     {Data: []byte(`{{ define "content" }}{{ .Data }}{{ end }}`)},
	}))
}

type testLogger struct {
	b *bytes.Buffer
}

func newLogger() testLogger                                  { return testLogger{bytes.NewBuffer(nil)} }
func (tl testLogger) Debug(msg string, _ *logger.LogContext) { fmt.Fprint(tl.b, msg) }
func (tl testLogger) Error(msg string, _ *logger.LogContext) { fmt.Fprint(tl.b, msg) }
func (tl testLogger) Fatal(msg string, _ *logger.LogContext) { fmt.Fprint(tl.b, msg) }
func (tl testLogger) Info(msg string, _ *logger.LogContext)  { fmt.Fprint(tl.b, msg) }
func (tl testLogger) Warn(msg string, _ *logger.LogContext)  { fmt.Fprint(tl.b, msg) }
func (tl testLogger) LogLevel() logger.LogLevel              { return logger.LogLevelDebug }
