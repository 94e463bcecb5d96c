package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	stocksage "github.com/hvpham-yorku/StockSage-AI"
)

const (
	// IdempotencyHeader carries the idempotency key of a request.
	IdempotencyHeader = "Idempotency-Key"

	// IdempotencyField carries the idempotency key of a form submission.
	IdempotencyField = "idempotency_key"

	// IdempotencyTTL is how long a response is replayed for its key.
	IdempotencyTTL = 10 * time.Minute
)

var _ http.ResponseWriter = idemReqWriter{}

// Idempotent returns a middleware.Adapter that enables features
// of idempotency on a POST endpoint, such as a trade submission.
//
// Idempotent pulls a key from the Idempotency-Key header
// or, failing that, the "idempotency_key" form field,
// and scopes it to the browser session.
//
// If a previous request has not used that key,
// Idempotent pairs all of the following values to the key:
// - a hash of the body of the request
// - the body of the resulting response
// - the Location header of the resulting response
// - the status code of the resulting response
//
// If that key has been used before (and has not expired),
// Idempotent falls into one of these scenarios:
//
//   - if a status code has not been set for that key,
//     Idempotent responds with 409 since the idempotent request is still processing
//
//   - if the newly requested resource (the URI) does not match the original,
//     Idempotent responds with 422
//
//   - if the new request's body does not match the body of the original request's,
//     Idempotent responds with 422
//
//   - otherwise, Idempotent writes the status code, Location and body set for the key
//
// If cache is nil, Idempotent uses an IdemResMap.
//
// Idempotent implements the draft Idempotent HTTP Header Field specification:
// https://tools.ietf.org/id/draft-idempotency-header-01.html
func Idempotent(cache IdempotencyCacher) Adapter {
	if cache == nil {
		cache = NewIdemResMap()
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			key := idempotencyKey(r, body)
			if key == "" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}

			sum := sha256.Sum256(body)

			ir, ok := cache.Get(r.Context(), key)
			if ok {
				if ir.Status == 0 {
					w.WriteHeader(http.StatusConflict)
					return
				}

				if ir.URI != r.URL.RequestURI() || !bytes.Equal(ir.Req, sum[:]) {
					w.WriteHeader(http.StatusUnprocessableEntity)
					return
				}

				if ir.Location != "" {
					w.Header().Set("Location", ir.Location)
				}
				w.WriteHeader(ir.Status)
				w.Write(ir.Body.Bytes())
				return
			}

			ir = NewIdemRes(r.URL.RequestURI(), sum[:])
			cache.Set(r.Context(), key, ir)

			irw := idemReqWriter{
				ctx: r.Context(),
				c:   cache,
				i:   &ir,
				k:   key,
				w:   w,
			}
			handler.ServeHTTP(irw, r)
		})
	}
}

// idempotencyKey finds the key the request carries, scoped to its browser session.
func idempotencyKey(r *http.Request, body []byte) string {
	key := r.Header.Get(IdempotencyHeader)
	if key == "" && strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if vals, err := url.ParseQuery(string(body)); err == nil {
			key = vals.Get(IdempotencyField)
		}
	}

	if key == "" {
		return ""
	}

	if id, _ := r.Context().Value(stocksage.SessionIDKey).(string); id != "" {
		return id + ":" + key
	}

	return key
}

// An IdemRes is data from an HTTP response
// that can be reused when another request
// matches the same idempotency key.
type IdemRes struct {
	Body     *bytes.Buffer
	Location string
	Req      []byte
	Status   int
	URI      string
}

// An idemResGob is an intermediate represenation of
// an IdemRes for the purposes of gob encoding/decoding.
//
// idemResGob is necessary as long as pkg gob cannot decode/encode
// fields in an IdemRes (e.g., Body).
type idemResGob struct {
	B []byte
	L string
	R []byte
	S int
	U string
}

// NewIdemRes constructs a new IdemRes.
func NewIdemRes(uri string, hashedBody []byte) IdemRes {
	return IdemRes{Body: bytes.NewBuffer(nil), URI: uri, Req: hashedBody}
}

// GobDecode unmarshals the gob-encoded []byte into fields of the *IdemRes.
//
// GobDecode implements gob.GobDecoder.
func (i *IdemRes) GobDecode(b []byte) error {
	g := new(idemResGob)
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(g); err != nil {
		return err
	}

	i.Body = bytes.NewBuffer(g.B)
	i.Location, i.Req, i.Status, i.URI = g.L, g.R, g.S, g.U
	return nil
}

// GobEncode marshals the fields of the IdemRes into a gob-encoded []byte.
//
// GobEncode implements gob.GobEncoder.
func (i IdemRes) GobEncode() ([]byte, error) {
	var body []byte
	if i.Body != nil {
		body = i.Body.Bytes()
	}

	buf := bytes.NewBuffer(nil)
	g := idemResGob{body, i.Location, i.Req, i.Status, i.URI}
	if err := gob.NewEncoder(buf).Encode(g); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// An idemReqWriter pairs an IdemRes with an http.ResponseWriter
// so both can be written to by an HTTP handler.
// Changes to the IdemRes in such a way are saved in the cache.
type idemReqWriter struct {
	ctx context.Context
	c   IdempotencyCacher
	i   *IdemRes
	k   string
	w   http.ResponseWriter
}

// Header returns the http.Header of the underlying http.ResponseWriter.
func (irw idemReqWriter) Header() http.Header { return irw.w.Header() }

// Write writes the bytes to all consumers the idemReqWriter is concerned with.
func (irw idemReqWriter) Write(b []byte) (int, error) {
	select {
	case <-irw.ctx.Done():
		return 0, nil
	default:
		if irw.i.Status == 0 {
			irw.WriteHeader(http.StatusOK)
		}

		n, err := irw.w.Write(b)
		if err != nil {
			return n, err
		}

		if _, err = irw.i.Body.Write(b); err != nil {
			return n, err
		}

		irw.c.Set(irw.ctx, irw.k, *irw.i)
		return n, nil
	}
}

// WriteHeader copies the status code and redirect destination about to be written
// to the IdemRes for later reuse before actually writing the status code.
func (irw idemReqWriter) WriteHeader(s int) {
	select {
	case <-irw.ctx.Done():
		return
	default:
		irw.i.Location = irw.w.Header().Get("Location")
		irw.w.WriteHeader(s)
		irw.i.Status = s
		irw.c.Set(irw.ctx, irw.k, *irw.i)
	}
}
