package gate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hvpham-yorku/StockSage-AI/identity"
	"github.com/hvpham-yorku/StockSage-AI/logger"
)

const defaultTimeout = 5 * time.Second

// A State is what a Controller would render.
type State int

const (
	Unknown State = iota
	Settling
	Denied
	Granted
)

func (s State) String() string {
	switch s {
	case Settling:
		return "settling"
	case Denied:
		return "denied"
	case Granted:
		return "granted"
	default:
		return "unknown"
	}
}

// Decided asserts whether s is Denied or Granted.
func (s State) Decided() bool { return s == Denied || s == Granted }

// A Source emits Sessions, starting with the current one when subscribed to.
//
// *identity.Provider is a Source.
type Source interface {
	Subscribe(fn func(identity.Session)) (unsubscribe func())
}

var _ Source = (*identity.Provider)(nil)

// A Condition decides whether a signed in Session may see protected content.
// It should return promptly once ctx is done.
type Condition func(ctx context.Context, s identity.Session) (bool, error)

// Authenticated grants every signed in Session.
func Authenticated(_ context.Context, s identity.Session) (bool, error) {
	return s.SignedIn(), nil
}

// A Fallback is shown when a Controller is Denied:
// a redirect when Redirect is set, otherwise Content.
type Fallback struct {
	Redirect string
	Content  any
}

// RedirectTo is a Fallback sending the user to url.
func RedirectTo(url string) Fallback { return Fallback{Redirect: url} }

// Render is a Fallback showing content in place.
func Render(content any) Fallback { return Fallback{Content: content} }

// IsRedirect asserts whether f sends the user elsewhere.
func (f Fallback) IsRedirect() bool { return f.Redirect != "" }

// A Controller gates content behind a Condition on the current Session.
type Controller struct {
	cond     Condition
	fallback Fallback
	logger   logger.Logger
	src      Source
	timeout  time.Duration

	mu          sync.Mutex
	state       State
	gen         uint64
	cancel      context.CancelFunc
	changed     chan struct{}
	listeners   []func(State)
	mounted     bool
	unmounted   bool
	settledOnce bool
	timer       *time.Timer
	unsubscribe func()

	// pending holds transitions not yet delivered, oldest first.
	pending    []transition
	delivering bool
}

type transition struct {
	listeners []func(State)
	next      State
}

// New constructs a Controller in the Unknown state.
// src may be nil, in which case the Controller is Denied once mounted.
func New(src Source, opts ...Opt) *Controller {
	c := &Controller{
		cond:    Authenticated,
		src:     src,
		timeout: defaultTimeout,
		changed: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// State returns the current State.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Fallback returns what to show when Denied.
func (c *Controller) Fallback() Fallback { return c.fallback }

// OnChange registers fn to be called with every new State.
// Listeners hear transitions in the order they happened.
// fn runs with no locks held and must not block.
func (c *Controller) OnChange(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Mount starts listening to the Source.
// Mounting twice, or after Unmount, does nothing.
func (c *Controller) Mount() {
	c.mu.Lock()
	if c.mounted || c.unmounted {
		c.mu.Unlock()
		return
	}
	c.mounted = true

	if c.src == nil {
		notify := c.setLocked(Denied)
		c.mu.Unlock()
		notify()
		c.log("no session source, denying", nil)
		return
	}

	c.timer = time.AfterFunc(c.timeout, c.giveUp)
	c.mu.Unlock()

	unsubscribe := c.src.Subscribe(c.observe)

	c.mu.Lock()
	if c.unmounted {
		c.mu.Unlock()
		unsubscribe()
		return
	}
	c.unsubscribe = unsubscribe
	c.mu.Unlock()
}

// Unmount stops listening and abandons any evaluation in flight.
// The State never changes after Unmount returns.
func (c *Controller) Unmount() {
	c.mu.Lock()
	if c.unmounted {
		c.mu.Unlock()
		return
	}
	c.unmounted = true

	if c.timer != nil {
		c.timer.Stop()
	}
	if c.cancel != nil {
		c.cancel()
	}
	unsubscribe := c.unsubscribe
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// Wait blocks until the Controller is Denied or Granted, or ctx is done.
func (c *Controller) Wait(ctx context.Context) (State, error) {
	for {
		c.mu.Lock()
		state, changed := c.state, c.changed
		c.mu.Unlock()

		if state.Decided() {
			return state, nil
		}

		select {
		case <-changed:
		case <-ctx.Done():
			return state, ctx.Err()
		}
	}
}

// observe handles a Session from the Source.
func (c *Controller) observe(s identity.Session) {
	c.mu.Lock()
	if c.unmounted {
		c.mu.Unlock()
		return
	}

	c.gen++
	gen := c.gen
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	var notify func()
	switch {
	case s.State != identity.Settled:
		// NOTE: identity is in flux; hold off until it settles
		if c.settledOnce {
			notify = c.setLocked(Settling)
		}
	case !s.SignedIn():
		c.settled()
		notify = c.setLocked(Denied)
	default:
		c.settled()
		ctx, cancel := context.WithCancel(context.Background())
		c.cancel = cancel
		notify = c.setLocked(Settling)
		go c.evaluate(ctx, gen, s)
	}
	c.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// evaluate runs the Condition for generation gen,
// applying its result only if gen is still the latest.
func (c *Controller) evaluate(ctx context.Context, gen uint64, s identity.Session) {
	ok, err := c.run(ctx, s)

	c.mu.Lock()
	if c.unmounted || gen != c.gen {
		c.mu.Unlock()
		return
	}

	next := Denied
	if err == nil && ok {
		next = Granted
	}
	notify := c.setLocked(next)
	c.cancel = nil
	c.mu.Unlock()

	notify()
	if err != nil {
		c.log("condition failed, denying", &logger.LogContext{Error: err, User: s.User()})
	}
}

// run calls the Condition, turning a panic into an error.
func (c *Controller) run(ctx context.Context, s identity.Session) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, fmt.Errorf("condition panicked: %v", r)
		}
	}()

	return c.cond(ctx, s)
}

// giveUp denies if nothing has settled before the timeout.
func (c *Controller) giveUp() {
	c.mu.Lock()
	if c.unmounted || c.settledOnce {
		c.mu.Unlock()
		return
	}

	c.gen++
	notify := c.setLocked(Denied)
	c.mu.Unlock()

	notify()
	c.log("session source never settled, denying", &logger.LogContext{Data: map[string]any{"timeout": c.timeout.String()}})
}

// settled records the first settled Session. Callers hold c.mu.
func (c *Controller) settled() {
	if c.settledOnce {
		return
	}

	c.settledOnce = true
	if c.timer != nil {
		c.timer.Stop()
	}
}

// setLocked moves to next, returning a func that tells listeners.
// Callers hold c.mu and call the returned func after releasing it.
func (c *Controller) setLocked(next State) func() {
	if c.state == next {
		return func() {}
	}

	c.state = next
	close(c.changed)
	c.changed = make(chan struct{})

	listeners := append([]func(State){}, c.listeners...)
	c.pending = append(c.pending, transition{listeners: listeners, next: next})

	return c.deliver
}

// deliver drains pending transitions in order.
// Only one goroutine drains at a time; others leave their transitions to it.
func (c *Controller) deliver() {
	c.mu.Lock()
	if c.delivering {
		c.mu.Unlock()
		return
	}
	c.delivering = true

	for len(c.pending) > 0 {
		t := c.pending[0]
		c.pending = c.pending[1:]
		c.mu.Unlock()

		for _, fn := range t.listeners {
			fn(t.next)
		}

		c.mu.Lock()
	}

	c.delivering = false
	c.mu.Unlock()
}

func (c *Controller) log(msg string, ctx *logger.LogContext) {
	if c.logger != nil {
		c.logger.Debug(msg, ctx)
	}
}
