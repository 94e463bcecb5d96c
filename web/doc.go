/*
Package web holds the pages and forms of the StockSage web client.

Every page is rendered on the server from the templates embedded in [Templates].
Handlers call the StockSage backend through an [api.Client] bound to the browser session's Session Provider,
so each call carries a freshly minted ID token.

Pages behind the auth gate are registered with [*Handler.Routes];
a page whose data partly fails to load still renders,
showing the failure in place of the missing section.
*/
package web
