package req

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gorilla/schema"

	stocksage "github.com/hvpham-yorku/StockSage-AI"
)

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)

	return dec
}

// decode fills structPtr from vals, translating what goes wrong.
func (p *Parser) decode(structPtr any, vals map[string][]string) error {
	if rv := reflect.ValueOf(structPtr); rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: %T is not a pointer to a struct", stocksage.ErrBadAny, structPtr)
	}

	if err := p.dec.Decode(structPtr, vals); err != nil {
		return translateDecoderError(err)
	}

	return nil
}

// translateDecoderError converts an error returned by *schema.Decoder into standardized errors.
// Some *schema.Decoder errors are issues with calling code;
// some errors are unexpected issues;
// still some are issues with mismatches between a request's query params and the expected shape.
func translateDecoderError(err error) error {
	var pkgErrs schema.MultiError
	// NOTE: outside a non-pointer destination,
	// schema wraps everything it reports in a MultiError.
	if !errors.As(err, &pkgErrs) {
		return fmt.Errorf("%w: %s", stocksage.ErrBadFormat, err)
	}

	var validErrs ValidationErrors
	for _, pkgErr := range pkgErrs {
		switch err := pkgErr.(type) {
		case schema.ConversionError:
			ve := ValidationError{
				Field: err.Key,
				// NOTE: ce.Index is -1 for non-slice values
				Got:  fmt.Sprintf("bad value at index %d", max(0, err.Index)),
				Rule: "must be " + err.Type.String(),
			}

			validErrs = append(validErrs, ve)

		case schema.EmptyFieldError:
			return fmt.Errorf(`%w: use validate pkg to set "required" fields, not schema`, stocksage.ErrNotImplemented)

		case schema.UnknownKeyError:
			// NOTE: only reachable if IgnoreUnknownKeys is turned off
			ve := ValidationError{
				Field: err.Key,
				Got:   "value is set",
				Rule:  "unexpected key should not be set",
			}

			validErrs = append(validErrs, ve)

		default:
			// NOTE: a field lacking a registered converter only errors once vals sets it
			if strings.Contains(err.Error(), "schema: converter not found for") {
				return fmt.Errorf("%w: cannot convert values into unsupported type", stocksage.ErrNotImplemented)
			}

			return fmt.Errorf("%w: %s", stocksage.ErrUnexpected, err)
		}
	}

	return validErrs
}
