/*
Package identity owns who is signed in to a browser session.

A [Provider] holds one [Session] and the refresh credential behind it.
Listeners registered with [Provider.Subscribe] hear the current Session straight away
and every change after it, in the order changes happen.
[Provider.CurrentToken] hands out an ID token for the backend,
minting a fresh one from the refresh credential when asked to.

An [Authenticator] talks to the identity provider; [Firebase] is the production one,
backed by the Identity Toolkit and Secure Token APIs.

A [Registry] keeps one Provider per browser session,
rehydrating it from the refresh credential stored in the session cookie.

# Expiry

When the identity provider rejects the refresh credential as expired or revoked,
the Provider signs out on its own, notifies listeners,
and calls the hook set with [WithOnExpired].
The caller gets [ErrTokenExpired] and should route the user to sign in again.
*/
package identity
