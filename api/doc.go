/*
Package api is the client for the StockSage backend.

Every call goes through [Client.Do], which asks the browser session's [TokenSource]
for a freshly minted ID token, refuses protected endpoints without one before touching the network,
attaches the token as a bearer credential, and turns non-2xx responses into [*HTTPError].

A [Client] is shared by the whole app; [Client.With] binds it to one browser session's TokenSource.

	c := api.New(baseURL, api.WithTimeout(10*time.Second))
	portfolios, err := c.With(provider).Portfolios(ctx)

Payloads are the types in package domain and are validated on the way out and on the way in.
*/
package api
