package resp

import (
	"errors"

	stocksage "github.com/hvpham-yorku/StockSage-AI"
)

var (
	ErrBadConfig   = stocksage.ErrBadConfig
	ErrDone        = errors.New("request ctx done")
	ErrInvalid     = stocksage.ErrNotValid
	ErrMissingData = stocksage.ErrMissingData
	ErrNotFound    = errors.New("not found")
	ErrNoUser      = errors.New("no user")
)
