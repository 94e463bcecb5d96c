package identity

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hvpham-yorku/StockSage-AI/logger"
)

const defaultIdleTTL = 30 * time.Minute

type entry struct {
	p    *Provider
	seen time.Time
}

// A Registry keeps one Provider per browser session.
type Registry struct {
	auth      Authenticator
	logger    logger.Logger
	now       func() time.Time
	onExpired func(sessionID string)
	ttl       time.Duration

	mu      sync.Mutex
	entries map[string]*entry
}

// A RegistryOpt configures a Registry.
type RegistryOpt func(*Registry)

// WithIdleTTL sets how long a Provider may go unused before Sweep evicts it.
func WithIdleTTL(ttl time.Duration) RegistryOpt {
	return func(r *Registry) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithRegistryLogger sets the Logger every Provider in the Registry reports to.
func WithRegistryLogger(l logger.Logger) RegistryOpt {
	return func(r *Registry) { r.logger = l }
}

// WithRegistryClock replaces time.Now.
func WithRegistryClock(now func() time.Time) RegistryOpt {
	return func(r *Registry) { r.now = now }
}

// WithSessionExpired sets fn to be called with the browser-session ID
// whose Provider was signed out by an expired credential.
func WithSessionExpired(fn func(sessionID string)) RegistryOpt {
	return func(r *Registry) { r.onExpired = fn }
}

// NewRegistry constructs a Registry whose Providers authenticate with auth.
func NewRegistry(auth Authenticator, opts ...RegistryOpt) *Registry {
	r := &Registry{
		auth:    auth,
		now:     time.Now,
		ttl:     defaultIdleTTL,
		entries: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Provider returns the Provider for sessionID,
// creating one and restoring it from refreshToken on first use.
//
// When restoring fails for any reason other than an expired credential,
// the signed out Provider is returned with the error and is not kept,
// so the next request retries.
func (r *Registry) Provider(ctx context.Context, sessionID, refreshToken string) (*Provider, error) {
	r.mu.Lock()
	if e, ok := r.entries[sessionID]; ok {
		e.seen = r.now()
		r.mu.Unlock()
		return e.p, nil
	}

	p := NewProvider(r.auth, r.providerOpts(sessionID)...)
	r.entries[sessionID] = &entry{p: p, seen: r.now()}
	r.mu.Unlock()

	err := p.Restore(ctx, refreshToken)
	if err != nil && !errors.Is(err, ErrTokenExpired) {
		r.forget(sessionID, p)
		return p, err
	}

	return p, err
}

// Forget drops the Provider for sessionID, signing it out.
func (r *Registry) Forget(sessionID string) {
	r.mu.Lock()
	e, ok := r.entries[sessionID]
	delete(r.entries, sessionID)
	r.mu.Unlock()

	if ok {
		e.p.SignOut()
	}
}

// Len reports how many Providers the Registry holds.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep evicts Providers idle longer than the TTL, returning how many it evicted.
//
// Evicted Providers are not signed out;
// the browser session can rehydrate from its cookie on the next request.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	for id, e := range r.entries {
		if e.seen.Before(cutoff) {
			delete(r.entries, id)
			n++
		}
	}

	return n
}

// Run sweeps every half TTL until ctx is done.
func (r *Registry) Run(ctx context.Context) {
	t := time.NewTicker(r.ttl / 2)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := r.Sweep(); n > 0 && r.logger != nil {
				r.logger.Debug("evicted idle identity providers", &logger.LogContext{Data: map[string]any{"evicted": n}})
			}
		}
	}
}

func (r *Registry) forget(sessionID string, p *Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[sessionID]; ok && e.p == p {
		delete(r.entries, sessionID)
	}
}

func (r *Registry) providerOpts(sessionID string) []ProviderOpt {
	opts := []ProviderOpt{WithClock(r.now)}
	if r.logger != nil {
		opts = append(opts, WithLogger(r.logger))
	}
	if r.onExpired != nil {
		opts = append(opts, WithOnExpired(func(Session) { r.onExpired(sessionID) }))
	}

	return opts
}
