package identity

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/hvpham-yorku/StockSage-AI/domain"
)

// A LoadState tracks whether a Provider knows who is signed in yet.
type LoadState int

const (
	// Unknown is the state before anything has been restored or signed in.
	Unknown LoadState = iota

	// Settling means a restore or sign in is in flight.
	Settling

	// Settled means the Session is authoritative, signed in or not.
	Settled
)

func (s LoadState) String() string {
	switch s {
	case Settling:
		return "settling"
	case Settled:
		return "settled"
	default:
		return "unknown"
	}
}

// A Session is who, if anyone, is signed in to a browser session.
type Session struct {
	UserID      string
	Email       string
	DisplayName string
	State       LoadState
}

// SignedIn asserts whether s is settled with a principal.
func (s Session) SignedIn() bool { return s.State == Settled && s.UserID != "" }

// User converts s into the principal rendered in pages and logs.
func (s Session) User() domain.User {
	return domain.User{ID: s.UserID, Email: s.Email, DisplayName: s.DisplayName}
}

// A Credential is what the identity provider hands back on sign in or refresh.
type Credential struct {
	IDToken      string
	RefreshToken string
}

type claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

var parser = &jwt.Parser{SkipClaimsValidation: true}

// readClaims pulls the principal and expiry out of an ID token.
//
// The signature is not checked here: the token came straight from the identity provider
// and the backend verifies it on every call.
func readClaims(idToken string) (Session, time.Time, error) {
	c := new(claims)
	if _, _, err := parser.ParseUnverified(idToken, c); err != nil {
		return Session{}, time.Time{}, fmt.Errorf("%w: parsing ID token: %s", ErrInvalidCredentials, err)
	}

	uid := c.UserID
	if uid == "" {
		uid = c.Subject
	}
	if uid == "" {
		return Session{}, time.Time{}, fmt.Errorf("%w: ID token has no subject", ErrInvalidCredentials)
	}

	var exp time.Time
	if c.ExpiresAt != nil {
		exp = c.ExpiresAt.Time
	}

	return Session{UserID: uid, Email: c.Email, DisplayName: c.Name, State: Settled}, exp, nil
}
