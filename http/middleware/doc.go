/*
The middleware package defines what a middleware is in stocksage and a set of basic middlewares.

The available middlewares are:
- CORS
- CurrentUser
- ForceHTTPS
- Gate
- Idempotent
- InjectIPAddress
- InjectSession
- LogRequest
- RateLimit
- ReportPanic
- RequestID
- RequireUnauthed

A typical chain, from outermost to innermost:

	vs := middleware.NewVisitors()
	adpts := []middleware.Adapter{
		middleware.ReportPanic(env),
		middleware.RateLimit(vs),
		middleware.ForceHTTPS(env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(log),
		middleware.InjectSession(sessionStore),
		middleware.CurrentUser(responder, registry),
	}

Routes requiring a signed in user add Gate on top of that.
*/
package middleware
