package session

import (
	"net/http"

	"github.com/google/uuid"
	gorilla "github.com/gorilla/sessions"
)

// keys used internal to specific implementations of different interfaces.
const (
	sessionKey   = "stocksage-session-gorilla" // used by Service
	browserIDKey = sessionKey + "-id"          // used by Session
	refreshKey   = sessionKey + "-refresh"     // used by Session
)

// The Sessionable wraps methods for basic adding values to, deleting, and getting values from a session
// associated with an *http.Request and saving those to the session store.
type Sessionable interface {
	Delete(w http.ResponseWriter, r *http.Request) error
	Get(key string) any
	ResetExpiry(w http.ResponseWriter, r *http.Request) error
	Save(w http.ResponseWriter, r *http.Request) error
	Set(w http.ResponseWriter, r *http.Request, key string, val any) error
}

// The IdentitySessionable wraps methods for identifying a browser session
// and keeping the refresh credential of whoever signed in through it.
type IdentitySessionable interface {
	DeregisterIdentity(w http.ResponseWriter, r *http.Request) error
	EnsureID(w http.ResponseWriter, r *http.Request) (string, error)
	ID() string
	RefreshToken() string
	RegisterIdentity(w http.ResponseWriter, r *http.Request, refreshToken string) error
}

// The StockSageSessionable composes session's major interfaces.
type StockSageSessionable interface {
	FlashSessionable
	IdentitySessionable
	Sessionable
}

// A Session provides all functionality for managing a fully featured session.
//
// Its functionality is implemented by lightly wrapping a gorilla.Session.
type Session struct {
	s *gorilla.Session
}

// NewSession constructs a new Session as an implementation of StockSageSessionable.
func NewSession(g *gorilla.Session) StockSageSessionable { return Session{s: g} }

func (s Session) ClearFlashes(w http.ResponseWriter, r *http.Request) {
	_ = s.Flashes(w, r)
}

// Delete removes a session by making the MaxAge negative.
func (s Session) Delete(w http.ResponseWriter, r *http.Request) error {
	s.s.Options.MaxAge = -1
	return s.Save(w, r)
}

// DeregisterIdentity forgets the refresh credential, keeping the browser session ID.
func (s Session) DeregisterIdentity(w http.ResponseWriter, r *http.Request) error {
	delete(s.s.Values, refreshKey)
	return s.Save(w, r)
}

// EnsureID returns the ID of the browser session, minting and saving one if there is none yet.
func (s Session) EnsureID(w http.ResponseWriter, r *http.Request) (string, error) {
	if id := s.ID(); id != "" {
		return id, nil
	}

	id := uuid.NewString()
	s.s.Values[browserIDKey] = id
	return id, s.Save(w, r)
}

// Flashes retrieves []Flash stored in the session.
func (s Session) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	raw := s.s.Flashes()
	fs := make([]Flash, 0)
	for _, r := range raw {
		f, ok := r.(Flash)
		if !ok {
			continue
		}

		fs = append(fs, f)
	}
	if len(fs) > 0 {
		// NOTE: flashes are only gone for good once the session is saved
		if err := s.Save(w, r); err != nil {
			return nil
		}
	}

	return fs
}

// Get retrieves a value from the session according to the key passed in.
func (s Session) Get(key string) any {
	return s.s.Values[key]
}

// ID returns the ID of the browser session, if one was minted.
func (s Session) ID() string {
	id, _ := s.s.Values[browserIDKey].(string)
	return id
}

// RefreshToken returns the refresh credential stored in the session, if any.
func (s Session) RefreshToken() string {
	rt, _ := s.s.Values[refreshKey].(string)
	return rt
}

// RegisterIdentity stores the refresh credential of the principal signed in through this browser session.
// An empty refreshToken deregisters.
func (s Session) RegisterIdentity(w http.ResponseWriter, r *http.Request, refreshToken string) error {
	if refreshToken == "" {
		return s.DeregisterIdentity(w, r)
	}

	s.s.Values[refreshKey] = refreshToken
	return s.Save(w, r)
}

// ResetExpiry resets the expiration of the session by saving it.
func (s Session) ResetExpiry(w http.ResponseWriter, r *http.Request) error {
	return s.Save(w, r)
}

// Save wraps gorilla.Session.Save, saving the session in the request.
func (s Session) Save(w http.ResponseWriter, r *http.Request) error { return s.s.Save(r, w) }

// Set stores a value according to the key passed in on the session.
func (s Session) Set(w http.ResponseWriter, r *http.Request, key string, val any) error {
	s.s.Values[key] = val
	return s.Save(w, r)
}

// SetFlash stores the passed in Flash in the session.
func (s Session) SetFlash(w http.ResponseWriter, r *http.Request, flash Flash) error {
	s.s.AddFlash(flash)
	return s.Save(w, r)
}
