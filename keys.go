package stocksage

import "sort"

type Key string

const (
	// CurrentUserKey stashes the signed in user for a browser session.
	CurrentUserKey Key = "CurrentUserKey"

	// IdentityKey stashes the Session Provider owned by a browser session.
	IdentityKey Key = "IdentityKey"

	// IpAddrKey stashes the IP address of an HTTP request being handled.
	IpAddrKey Key = "IpAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"

	// SessionKey stashes the session associated with an HTTP request.
	SessionKey Key = "SessionKey"

	// SessionIDKey stashes a unique UUID for each browser session.
	SessionIDKey Key = "SessionIDKey"
)

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "stocksage context key: " + string(k)
}

// ByKey is a list of Keys that can be sorted.
type ByKey []Key

func (k ByKey) Len() int           { return len(k) }
func (k ByKey) Less(i, j int) bool { return k[i] < k[j] }
func (k ByKey) Swap(i, j int)      { k[i], k[j] = k[j], k[i] }

// UniqueSort sorts the keys and drops duplicate and zero-value ones.
func (k ByKey) UniqueSort() ByKey {
	seen := make(map[Key]bool, len(k))
	out := make(ByKey, 0, len(k))
	for _, key := range k {
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}

	sort.Sort(out)
	return out
}
