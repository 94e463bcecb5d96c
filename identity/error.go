package identity

import (
	"errors"

	stocksage "github.com/hvpham-yorku/StockSage-AI"
)

var (
	ErrBadConfig          = stocksage.ErrBadConfig
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenExpired       = errors.New("auth/user-token-expired")
	ErrWeakPassword       = errors.New("password too weak")
)
