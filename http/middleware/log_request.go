package middleware

import (
	"net/http"

	stocksage "github.com/hvpham-yorku/StockSage-AI"
	"github.com/hvpham-yorku/StockSage-AI/logger"
)

// A LogRequestRecord is what LogRequest reports about a handled request.
type LogRequestRecord struct {
	BodySize       int    `json:"bodySize"`
	Host           string `json:"host"`
	ID             string `json:"id"`
	IPAddr         string `json:"ipAddr"`
	Method         string `json:"method"`
	Path           string `json:"path"`
	Protocol       string `json:"protocol"`
	Referrer       string `json:"referrer"`
	ReqContentType string `json:"reqContentType"`
	Scheme         string `json:"scheme"`
	Status         int    `json:"status"`
	URI            string `json:"uri"`
	UserAgent      string `json:"userAgent"`
}

// LogRequest logs the request's method, requested URL, originating IP address
// and response status using the enclosed implementation of logger.Logger.
//
// LogRequest scrubs the values for the following keys:
// - password
//
// if logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &statusWriter{ResponseWriter: w}
			h.ServeHTTP(sw, r)

			rec := newLogRequestRecord(r)
			rec.Status = sw.status()
			rec.BodySize = sw.size

			ls.Info(r.Method+" "+rec.URI, &logger.LogContext{Data: map[string]any{"request": rec}})
		})
	}
}

func newLogRequestRecord(r *http.Request) LogRequestRecord {
	uri := r.URL.Path
	if q := r.URL.Query(); len(q) > 0 {
		stocksage.Mask(q, "password")
		uri += "?" + q.Encode()
	}

	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}

	ip, _ := r.Context().Value(stocksage.IpAddrKey).(string)
	id, _ := r.Context().Value(stocksage.RequestIDKey).(string)

	return LogRequestRecord{
		Host:           r.Host,
		ID:             id,
		IPAddr:         ip,
		Method:         r.Method,
		Path:           r.URL.Path,
		Protocol:       r.Proto,
		Referrer:       r.Referer(),
		ReqContentType: r.Header.Get("Content-Type"),
		Scheme:         scheme,
		URI:            uri,
		UserAgent:      r.UserAgent(),
	}
}

// A statusWriter remembers the status code and the number of bytes written.
type statusWriter struct {
	http.ResponseWriter
	code int
	size int
}

func (sw *statusWriter) WriteHeader(code int) {
	if sw.code == 0 {
		sw.code = code
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if sw.code == 0 {
		sw.code = http.StatusOK
	}
	n, err := sw.ResponseWriter.Write(b)
	sw.size += n
	return n, err
}

func (sw *statusWriter) status() int {
	if sw.code == 0 {
		return http.StatusOK
	}
	return sw.code
}
