package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/gorilla/schema"

	stocksage "github.com/hvpham-yorku/StockSage-AI"
)

// A Parser decodes and validates request payloads.
type Parser struct {
	dec *schema.Decoder
	validator
}

func NewParser() *Parser {
	return &Parser{
		dec:       newDecoder(),
		validator: newValidator(),
	}
}

// ParseBody decodes into a pointer to a struct the JSON data in *http.Request.Body.
// If successful, ParseBody runs validation against the contents,
// returning an ErrNotValid if the data fails validation rules.
//
// ParseBody reads the entire r.Body and can't be read from again.
// Use a [io.TeeReader] if r.Body needs to be reused after calling ParseBody.
func (p *Parser) ParseBody(body io.Reader, structPtr any) error {
	var ourFault *json.InvalidUnmarshalError
	err := json.NewDecoder(body).Decode(structPtr)
	if errors.As(err, &ourFault) {
		return fmt.Errorf("stocksage/http/req: %w: ParseBody called with non-pointer: %s", stocksage.ErrBadAny, err)
	}

	if err != nil {
		return fmt.Errorf("stocksage/http/req: %w: failed decoding request body: %s", stocksage.ErrBadFormat, err)
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("stocksage/http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}

// ParseForm decodes into a pointer to a struct the url-encoded form posted in r.
// Fields are matched by their "schema" struct tag.
// If successful, ParseForm runs validation against the contents,
// returning an ErrNotValid if the data fails validation rules.
func (p *Parser) ParseForm(r *http.Request, structPtr any) error {
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("stocksage/http/req: %w: failed parsing form: %s", stocksage.ErrBadFormat, err)
	}

	if err := p.decode(structPtr, r.PostForm); err != nil {
		return fmt.Errorf("stocksage/http/req: failed decoding form: %w", err)
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("stocksage/http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}

// ParseQueryParams decodes into a pointer to a struct the query param data in *http.Request.URL.Query.
// If successful, ParseQueryParams runs validation against the contents,
// returning an ErrNotValid if the data fails validation rules.
func (p *Parser) ParseQueryParams(params url.Values, structPtr any) error {
	if err := p.decode(structPtr, params); err != nil {
		return fmt.Errorf("stocksage/http/req: failed decoding request query params: %w", err)
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("stocksage/http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}
