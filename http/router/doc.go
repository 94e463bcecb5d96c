/*
Package router defines how the web client routes requests.

[Router] utilizes [mux.Router] for its implementation,
and so functions as thin wrapper around that package.

A [Router] leverages a standardized data model - a [Route] -
when registering how requests should be routed.
A path and an HTTP method comprise a [Route].
An implementation of [http.Handler] is the function called when a request matches a Route.
Before a request gets to a handler, though,
any middlewares added to the Route are called in the order they appear.

Many routes share identical middleware stacks,
and small errors can lead to registering a route incorrectly,
thereby unintentionally exposing a page only a signed in user should see.
Thus, a [Router] provides conveniences for making a single call to register many logically associated Routes.

A Router expects two such groups of routes:
those for signed out visitors, like sign in and sign up, registered with UnauthedRoutes,
and those behind the auth gate, like portfolios, registered with AuthedRoutes.
*/
package router
