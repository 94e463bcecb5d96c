package identity

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hvpham-yorku/StockSage-AI/logger"
)

// expirySkew is how close to expiring a cached ID token may get before it is refreshed anyway.
const expirySkew = time.Minute

// A Provider owns the Session of one browser session.
//
// Listeners run synchronously, one change at a time, in the order changes happened.
// A listener must not call SignIn, SignUp, SignOut, Restore or Subscribe on the same Provider.
type Provider struct {
	auth      Authenticator
	logger    logger.Logger
	now       func() time.Time
	onExpired func(Session)

	// emitMu serializes changes with their delivery so listeners see them in order.
	emitMu sync.Mutex

	mu        sync.Mutex
	session   Session
	refresh   string
	idToken   string
	expiry    time.Time
	settled   chan struct{}
	listeners map[uint64]func(Session)
	nextID    uint64
}

// A ProviderOpt configures a Provider.
type ProviderOpt func(*Provider)

// WithOnExpired sets fn to be called after the Provider signs out
// because the identity provider rejected its credential.
// fn receives the Session as it was before signing out.
func WithOnExpired(fn func(Session)) ProviderOpt {
	return func(p *Provider) { p.onExpired = fn }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ProviderOpt {
	return func(p *Provider) { p.now = now }
}

// WithLogger sets the Logger a Provider reports expiries and refresh failures to.
func WithLogger(l logger.Logger) ProviderOpt {
	return func(p *Provider) { p.logger = l }
}

// NewProvider constructs a Provider in the Unknown state.
func NewProvider(auth Authenticator, opts ...ProviderOpt) *Provider {
	p := &Provider{
		auth:      auth,
		now:       time.Now,
		settled:   make(chan struct{}),
		listeners: make(map[uint64]func(Session)),
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Session returns a snapshot of the current Session.
func (p *Provider) Session() Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session
}

// RefreshToken returns the refresh credential backing the current Session, if any.
func (p *Provider) RefreshToken() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.refresh
}

// Subscribe registers fn to hear about Session changes.
// fn is called once with the current Session before Subscribe returns.
//
// The returned func unregisters fn; calling it more than once is a no-op.
func (p *Provider) Subscribe(fn func(Session)) (unsubscribe func()) {
	p.emitMu.Lock()
	defer p.emitMu.Unlock()

	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	current := p.session
	p.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.listeners, id)
			p.mu.Unlock()
		})
	}
}

// Ready blocks until the Session has settled at least once or ctx is done.
func (p *Provider) Ready(ctx context.Context) error {
	select {
	case <-p.settled:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// CurrentToken returns an ID token for the signed in principal.
//
// It waits for the Session to settle first.
// With nobody signed in it returns "" and a nil error.
// forceRefresh always mints a new token from the refresh credential;
// otherwise a cached token is reused until shortly before it expires.
//
// If the identity provider reports the credential expired,
// the Provider signs out and CurrentToken returns ErrTokenExpired.
func (p *Provider) CurrentToken(ctx context.Context, forceRefresh bool) (string, error) {
	if err := p.Ready(ctx); err != nil {
		return "", err
	}

	p.mu.Lock()
	signedIn := p.session.SignedIn()
	refresh, cached, expiry := p.refresh, p.idToken, p.expiry
	p.mu.Unlock()

	if !signedIn || refresh == "" {
		return "", nil
	}

	if !forceRefresh && cached != "" && p.now().Add(expirySkew).Before(expiry) {
		return cached, nil
	}

	cred, err := p.auth.Refresh(ctx, refresh)
	if errors.Is(err, ErrTokenExpired) {
		p.expire(refresh, err)
		return "", err
	}
	if err != nil {
		return "", err
	}

	_, exp, err := readClaims(cred.IDToken)
	if err != nil {
		return "", err
	}

	p.mu.Lock()
	// NOTE: a sign out or new sign in may have landed while refreshing
	if p.refresh == refresh {
		p.refresh = cred.RefreshToken
		p.idToken = cred.IDToken
		p.expiry = exp
	}
	p.mu.Unlock()

	return cred.IDToken, nil
}

// Restore rehydrates the Session from a persisted refresh credential.
// An empty refreshToken settles the Session as signed out.
//
// On failure the Session settles as signed out.
// ErrTokenExpired additionally calls the expiry hook.
func (p *Provider) Restore(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		p.set(Session{State: Settled}, Credential{}, time.Time{})
		return nil
	}

	p.set(Session{State: Settling}, Credential{}, time.Time{})

	cred, err := p.auth.Refresh(ctx, refreshToken)
	if err == nil {
		var s Session
		var exp time.Time
		s, exp, err = readClaims(cred.IDToken)
		if err == nil {
			p.set(s, cred, exp)
			return nil
		}
	}

	p.set(Session{State: Settled}, Credential{}, time.Time{})
	if errors.Is(err, ErrTokenExpired) {
		p.log(logger.LogLevelInfo, "persisted session expired", &logger.LogContext{Error: err})
		if p.onExpired != nil {
			p.onExpired(Session{State: Settled})
		}
	}

	return fmt.Errorf("restoring session: %w", err)
}

// SignIn signs in with an email and password.
func (p *Provider) SignIn(ctx context.Context, email, password string) (Session, error) {
	cred, err := p.auth.SignIn(ctx, email, password)
	if err != nil {
		return p.Session(), err
	}

	return p.signedIn(cred)
}

// SignUp creates an account and signs in to it.
func (p *Provider) SignUp(ctx context.Context, email, password, displayName string) (Session, error) {
	cred, err := p.auth.SignUp(ctx, email, password, displayName)
	if err != nil {
		return p.Session(), err
	}

	return p.signedIn(cred)
}

// SendPasswordReset asks the identity provider to e-mail a reset link to email.
func (p *Provider) SendPasswordReset(ctx context.Context, email string) error {
	return p.auth.SendPasswordReset(ctx, email)
}

// SignOut forgets the principal and its credentials.
func (p *Provider) SignOut() {
	p.set(Session{State: Settled}, Credential{}, time.Time{})
}

func (p *Provider) signedIn(cred Credential) (Session, error) {
	s, exp, err := readClaims(cred.IDToken)
	if err != nil {
		return p.Session(), err
	}

	p.set(s, cred, exp)
	return s, nil
}

// expire signs out if refresh still backs the Session.
func (p *Provider) expire(refresh string, cause error) {
	p.mu.Lock()
	current, prev := p.refresh, p.session
	p.mu.Unlock()
	if current != refresh {
		return
	}

	p.log(logger.LogLevelWarn, "identity provider rejected credential, signing out", &logger.LogContext{
		Error: cause,
		User:  prev.User(),
	})
	p.SignOut()

	if p.onExpired != nil {
		p.onExpired(prev)
	}
}

// set replaces the Session and credentials, then tells every listener when the Session changed.
func (p *Provider) set(s Session, cred Credential, exp time.Time) {
	p.emitMu.Lock()
	defer p.emitMu.Unlock()

	p.mu.Lock()
	changed := p.session != s
	p.session = s
	p.refresh = cred.RefreshToken
	p.idToken = cred.IDToken
	p.expiry = exp

	if s.State == Settled {
		select {
		case <-p.settled:
		default:
			close(p.settled)
		}
	}

	ids := make([]uint64, 0, len(p.listeners))
	for id := range p.listeners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	listeners := make([]func(Session), len(ids))
	for i, id := range ids {
		listeners[i] = p.listeners[id]
	}
	p.mu.Unlock()

	if !changed {
		return
	}

	for _, fn := range listeners {
		fn(s)
	}
}

func (p *Provider) log(level logger.LogLevel, msg string, ctx *logger.LogContext) {
	if p.logger == nil {
		return
	}

	switch level {
	case logger.LogLevelWarn:
		p.logger.Warn(msg, ctx)
	default:
		p.logger.Info(msg, ctx)
	}
}
