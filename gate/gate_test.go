package gate_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hvpham-yorku/StockSage-AI/gate"
	"github.com/hvpham-yorku/StockSage-AI/identity"
)

// fakeSource hands Sessions to its subscriber when told to.
type fakeSource struct {
	mu           sync.Mutex
	current      identity.Session
	fn           func(identity.Session)
	unsubscribed int
}

func newFakeSource(s identity.Session) *fakeSource { return &fakeSource{current: s} }

func (f *fakeSource) Subscribe(fn func(identity.Session)) func() {
	f.mu.Lock()
	f.fn = fn
	current := f.current
	f.mu.Unlock()

	fn(current)

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.fn = nil
		f.unsubscribed++
	}
}

func (f *fakeSource) emit(s identity.Session) {
	f.mu.Lock()
	f.current = s
	fn := f.fn
	f.mu.Unlock()

	if fn != nil {
		fn(s)
	}
}

func (f *fakeSource) Unsubscribed() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unsubscribed
}

var (
	loading   = identity.Session{State: identity.Settling}
	signedOut = identity.Session{State: identity.Settled}
	ada       = identity.Session{UserID: "uid-ada", Email: "ada@example.com", State: identity.Settled}
	grace     = identity.Session{UserID: "uid-grace", Email: "grace@example.com", State: identity.Settled}
)

func wait(t *testing.T, c *gate.Controller) gate.State {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	state, err := c.Wait(ctx)
	require.NoError(t, err)
	return state
}

func TestControllerDecides(t *testing.T) {
	boom := errors.New("boom")

	for _, tc := range []struct {
		name    string
		session identity.Session
		cond    gate.Condition
		expect  gate.State
	}{
		{"signed-out", signedOut, nil, gate.Denied},
		{"signed-in", ada, nil, gate.Granted},
		{"condition-false", ada, func(context.Context, identity.Session) (bool, error) { return false, nil }, gate.Denied},
		{"condition-error", ada, func(context.Context, identity.Session) (bool, error) { return true, boom }, gate.Denied},
		{"condition-panic", ada, func(context.Context, identity.Session) (bool, error) { panic("boom") }, gate.Denied},
		{"signed-out-skips-condition", signedOut, func(context.Context, identity.Session) (bool, error) { return true, nil }, gate.Denied},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			c := gate.New(newFakeSource(tc.session), gate.WithCondition(tc.cond))
			defer c.Unmount()

			// Act
			c.Mount()

			// Assert
			require.Equal(t, tc.expect, wait(t, c))
		})
	}
}

func TestControllerStartsUnknown(t *testing.T) {
	// Arrange
	src := newFakeSource(loading)
	c := gate.New(src, gate.WithTimeout(time.Minute))
	defer c.Unmount()

	// Act
	c.Mount()

	// Assert
	require.Equal(t, gate.Unknown, c.State())

	src.emit(signedOut)
	require.Equal(t, gate.Denied, c.State())
}

func TestControllerNilSource(t *testing.T) {
	// Arrange
	c := gate.New(nil)

	// Act
	c.Mount()

	// Assert
	require.Equal(t, gate.Denied, c.State())
}

func TestControllerTimeout(t *testing.T) {
	// Arrange
	c := gate.New(newFakeSource(loading), gate.WithTimeout(20*time.Millisecond))
	defer c.Unmount()

	// Act
	c.Mount()

	// Assert
	require.Equal(t, gate.Denied, wait(t, c))
}

func TestControllerTimeoutAfterSettle(t *testing.T) {
	// Arrange
	c := gate.New(newFakeSource(ada), gate.WithTimeout(20*time.Millisecond))
	defer c.Unmount()

	// Act
	c.Mount()
	time.Sleep(50 * time.Millisecond)

	// Assert
	require.Equal(t, gate.Granted, c.State())
}

func TestControllerLatestEventWins(t *testing.T) {
	// Arrange
	slow := func(ctx context.Context, s identity.Session) (bool, error) {
		select {
		case <-time.After(500 * time.Millisecond):
			return true, nil
		case <-ctx.Done():
			return true, nil
		}
	}
	src := newFakeSource(loading)
	c := gate.New(src, gate.WithCondition(slow))
	defer c.Unmount()
	c.Mount()

	// Act
	src.emit(ada)
	require.Equal(t, gate.Settling, c.State())
	time.Sleep(100 * time.Millisecond)
	src.emit(signedOut)

	// Assert
	require.Equal(t, gate.Denied, c.State())
	time.Sleep(600 * time.Millisecond)
	require.Equal(t, gate.Denied, c.State())
}

func TestControllerReevaluates(t *testing.T) {
	// Arrange
	onlyGrace := func(_ context.Context, s identity.Session) (bool, error) {
		return s.UserID == grace.UserID, nil
	}
	src := newFakeSource(ada)
	c := gate.New(src, gate.WithCondition(onlyGrace))
	defer c.Unmount()
	c.Mount()
	require.Equal(t, gate.Denied, wait(t, c))

	// Act
	src.emit(grace)

	// Assert
	require.Equal(t, gate.Granted, wait(t, c))
}

func TestControllerUnmount(t *testing.T) {
	// Arrange
	release := make(chan struct{})
	blocked := func(ctx context.Context, s identity.Session) (bool, error) {
		<-release
		return true, nil
	}
	src := newFakeSource(ada)
	c := gate.New(src, gate.WithCondition(blocked))
	c.Mount()
	require.Equal(t, gate.Settling, c.State())

	// Act
	c.Unmount()
	close(release)
	src.emit(signedOut)
	time.Sleep(20 * time.Millisecond)

	// Assert
	require.Equal(t, gate.Settling, c.State())
	require.Equal(t, 1, src.Unsubscribed())

	c.Unmount()
	require.Equal(t, 1, src.Unsubscribed())
}

func TestControllerOnChange(t *testing.T) {
	// Arrange
	var (
		mu  sync.Mutex
		got []gate.State
	)
	src := newFakeSource(loading)
	c := gate.New(src)
	c.OnChange(func(s gate.State) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, s)
	})
	defer c.Unmount()
	c.Mount()

	// Act
	src.emit(ada)
	wait(t, c)
	src.emit(signedOut)

	// Assert
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 3
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []gate.State{gate.Settling, gate.Granted, gate.Denied}, got)
}

func TestControllerOnChangeKeepsOrder(t *testing.T) {
	// Arrange
	var (
		mu  sync.Mutex
		got []gate.State
	)
	src := newFakeSource(loading)
	c := gate.New(src)
	c.OnChange(func(s gate.State) {
		if s == gate.Settling {
			// hold Settling back until the evaluation has already granted
			require.Eventually(t, func() bool { return c.State() == gate.Granted }, time.Second, time.Millisecond)
		}

		mu.Lock()
		defer mu.Unlock()
		got = append(got, s)
	})
	defer c.Unmount()
	c.Mount()

	// Act
	src.emit(ada)

	// Assert
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 2
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []gate.State{gate.Settling, gate.Granted}, got)
}

func TestControllerWaitCanceled(t *testing.T) {
	// Arrange
	c := gate.New(newFakeSource(loading), gate.WithTimeout(time.Minute))
	defer c.Unmount()
	c.Mount()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Act
	state, err := c.Wait(ctx)

	// Assert
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, gate.Unknown, state)
}

func TestControllerWithProvider(t *testing.T) {
	// Arrange
	p := identity.NewProvider(nil)
	c := gate.New(p, gate.WithTimeout(50*time.Millisecond))
	defer c.Unmount()

	// Act
	c.Mount()
	p.SignOut()

	// Assert
	require.Equal(t, gate.Denied, wait(t, c))
}

func TestFallback(t *testing.T) {
	require.True(t, gate.RedirectTo("/login").IsRedirect())
	require.False(t, gate.Render("header").IsRedirect())

	c := gate.New(nil, gate.WithFallback(gate.RedirectTo("/login")))
	require.Equal(t, "/login", c.Fallback().Redirect)
}

func TestStateString(t *testing.T) {
	for _, tc := range []struct {
		state   gate.State
		expect  string
		decided bool
	}{
		{gate.Unknown, "unknown", false},
		{gate.Settling, "settling", false},
		{gate.Denied, "denied", true},
		{gate.Granted, "granted", true},
	} {
		t.Run(tc.expect, func(t *testing.T) {
			require.Equal(t, tc.expect, tc.state.String())
			require.Equal(t, tc.decided, tc.state.Decided())
		})
	}
}
