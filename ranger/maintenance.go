package ranger

import (
	"net/http"

	"github.com/hvpham-yorku/StockSage-AI/http/template"
	"github.com/hvpham-yorku/StockSage-AI/logger"
	"github.com/hvpham-yorku/StockSage-AI/web"
)

const maintRetryAfter = "600"

// MaintModeHandler answers every request with 503 Service Unavailable,
// rendering the maintenance page when p can find it.
func MaintModeHandler(p template.Parser, l logger.Logger, contact string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", maintRetryAfter)

		tmpl, err := p.Parse(web.MaintTmpl)
		if err != nil {
			l.Error("could not parse maintenance page", &logger.LogContext{Error: err, Request: r})
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusServiceUnavailable)
		if err := tmpl.Execute(w, map[string]string{"Contact": contact}); err != nil {
			l.Error("could not render maintenance page", &logger.LogContext{Error: err, Request: r})
		}
	}
}
