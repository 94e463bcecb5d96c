package template

import (
	html "html/template"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	stocksage "github.com/hvpham-yorku/StockSage-AI"
	"github.com/hvpham-yorku/StockSage-AI/domain"
)

var printer = message.NewPrinter(language.English)

// AddFn includes the named function in the Parse function map.
func (p *Parse) AddFn(name string, fn any) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.fns == nil {
		p.fns = make(html.FuncMap)
	}
	p.fns[name] = fn
}

// CurrentUser encloses some value representing a user.
// It returns "currentUser" as the name of the function for convenient passing to a template.FuncMap
// and returns a function returning the enclosed value when called.
func CurrentUser(u any) (string, func() any) {
	return "currentUser", func() any { return u }
}

// Env encloses some string representing an environment.
// It returns "env" as the name of the function for convenient passing to a template.FuncMap
// and returns a function returning the enclosed value when called.
func Env(e stocksage.Environment) (string, func() string) {
	return "env", func() string { return e.String() }
}

// Money returns "money" as the name of the function for convenient passing to a template.FuncMap
// and returns a function formatting a dollar amount with thousands separators, i.e., $1,234.50.
func Money() (string, func(float64) string) {
	return "money", func(v float64) string {
		if v < 0 {
			return printer.Sprintf("-$%.2f", -v)
		}
		return printer.Sprintf("$%.2f", v)
	}
}

// Nonce returns "nonce" as the name of the function for convenient passing to a template.FuncMap
// and returns a function generating a uuid.
func Nonce() (string, func() string) {
	return "nonce", func() string { return uuid.NewString() }
}

// Percent returns "percent" as the name of the function for convenient passing to a template.FuncMap
// and returns a function formatting a domain.Percent.
func Percent() (string, func(domain.Percent) string) {
	return "percent", func(p domain.Percent) string { return p.String() }
}

// Date returns "date" as the name of the function for convenient passing to a template.FuncMap
// and returns a function reformatting a backend date or timestamp as, i.e., Jan 2, 2006.
// Values in neither format pass through untouched.
func Date() (string, func(string) string) {
	return "date", func(s string) string {
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Format("Jan 2, 2006")
			}
		}
		return s
	}
}

// RootUrl encloses the *url.URL representing the base URL of the web app.
// It returns "rootUrl" as the name of the function for convenient passing to a template.FuncMap
// and returns a function returning its *url.URL.String().
// If u is nil, that function will always return an empty string.
func RootUrl(u *url.URL) (string, func() string) {
	if u == nil {
		return "rootUrl", func() string { return "" }
	}

	s := u.String()
	return "rootUrl", func() string { return s }
}
