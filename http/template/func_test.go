package template

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	stocksage "github.com/hvpham-yorku/StockSage-AI"
	"github.com/hvpham-yorku/StockSage-AI/domain"
)

func TestAddFn(t *testing.T) {
	// Arrange
	tcs := []struct {
		name   string
		first  string
		second any
		length int
	}{
		{"zero-first", "", nil, 1},
		{"struct-second", "still nil", struct{}{}, 2},
		{"one-good", "one", func() {}, 3},
		{"two-good", "two", func() {}, 4},
		{"repeat", "one", func() {}, 4},
	}

	p := &Parse{}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			require.NotPanics(t, func() { p.AddFn(tc.first, tc.second) })

			// Assert
			require.Len(t, p.fns, tc.length)
		})
	}
}

func TestCurrentUser(t *testing.T) {
	for _, tc := range []struct {
		name     string
		expected any
	}{
		{"nil", nil},
		{"user", domain.User{ID: "uid-ada"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			name, fn := CurrentUser(tc.expected)

			// Assert
			require.Equal(t, "currentUser", name)
			require.Equal(t, tc.expected, fn())
		})
	}
}

func TestEnv(t *testing.T) {
	// Act
	name, fn := Env(stocksage.Testing)

	// Assert
	require.Equal(t, "env", name)
	require.Equal(t, "TESTING", fn())
}

func TestMoney(t *testing.T) {
	name, fn := Money()
	require.Equal(t, "money", name)

	for _, tc := range []struct {
		in       float64
		expected string
	}{
		{0, "$0.00"},
		{12.5, "$12.50"},
		{1234567.891, "$1,234,567.89"},
		{-2500, "-$2,500.00"},
	} {
		t.Run(tc.expected, func(t *testing.T) {
			require.Equal(t, tc.expected, fn(tc.in))
		})
	}
}

func TestPercent(t *testing.T) {
	name, fn := Percent()
	require.Equal(t, "percent", name)
	require.Equal(t, domain.Percent(0.125).String(), fn(0.125))
}

func TestDate(t *testing.T) {
	name, fn := Date()
	require.Equal(t, "date", name)

	for _, tc := range []struct {
		in       string
		expected string
	}{
		{"2024-03-05", "Mar 5, 2024"},
		{"2024-03-05T14:30:00", "Mar 5, 2024"},
		{"2024-03-05T14:30:00.123Z", "Mar 5, 2024"},
		{"", ""},
		{"someday", "someday"},
	} {
		t.Run(tc.in, func(t *testing.T) {
			require.Equal(t, tc.expected, fn(tc.in))
		})
	}
}

func TestNonce(t *testing.T) {
	// Arrange + Act
	name, fn := Nonce()

	// Assert
	require.Equal(t, "nonce", name)
	require.NotEqual(t, fn(), fn())
}

func TestRootUrl(t *testing.T) {
	// Arrange
	example, err := url.ParseRequestURI("https://example.com")
	require.Nil(t, err)

	tcs := []struct {
		name     string
		actual   *url.URL
		expected string
	}{
		{"nil", nil, ""},
		{"zero-value", new(url.URL), ""},
		{"example.com", example, "https://example.com"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			name, fn := RootUrl(tc.actual)

			// Assert
			require.Equal(t, "rootUrl", name)
			require.Equal(t, tc.expected, fn())
		})
	}
}
