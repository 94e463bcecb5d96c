package identity_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"

	"github.com/hvpham-yorku/StockSage-AI/identity"
)

// fakeAuth is an Authenticator minting unsigned-ish ID tokens for a fixed principal.
type fakeAuth struct {
	mu         sync.Mutex
	refreshes  int
	refreshErr error
	signInErr  error
	uid        string
	email      string
	exp        time.Time
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{uid: "uid-ada", email: "ada@example.com", exp: time.Now().Add(time.Hour)}
}

func (f *fakeAuth) SignIn(ctx context.Context, email, password string) (identity.Credential, error) {
	if f.signInErr != nil {
		return identity.Credential{}, f.signInErr
	}
	return identity.Credential{IDToken: f.token(email, 0), RefreshToken: "rt-" + f.uid}, nil
}

func (f *fakeAuth) SignUp(ctx context.Context, email, password, name string) (identity.Credential, error) {
	return f.SignIn(ctx, email, password)
}

func (f *fakeAuth) Refresh(ctx context.Context, refreshToken string) (identity.Credential, error) {
	f.mu.Lock()
	f.refreshes++
	n, err := f.refreshes, f.refreshErr
	f.mu.Unlock()

	if err != nil {
		return identity.Credential{}, err
	}

	return identity.Credential{IDToken: f.token(f.email, n), RefreshToken: refreshToken}, nil
}

func (f *fakeAuth) SendPasswordReset(ctx context.Context, email string) error { return nil }

func (f *fakeAuth) Refreshes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshes
}

// token mints an ID token; n tells successive refreshes apart.
func (f *fakeAuth) token(email string, n int) string {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": f.uid,
		"email":   email,
		"exp":     f.exp.Unix(),
		"n":       n,
	})
	s, err := tok.SignedString([]byte("test-key"))
	if err != nil {
		panic(err)
	}
	return s
}

// recorder collects every Session a listener hears.
type recorder struct {
	mu  sync.Mutex
	got []identity.Session
}

func (r *recorder) listen(s identity.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, s)
}

func (r *recorder) sessions() []identity.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]identity.Session(nil), r.got...)
}

func requireSignedIn(t *testing.T, s identity.Session) {
	t.Helper()
	require.True(t, s.SignedIn())
	require.Equal(t, "uid-ada", s.UserID)
}
