/*
Package ranger initializes and manages the StockSage web client with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type.
A [Ranger] ought to be constructed with [New].
Every component not provided through a [RangerOption] is built from the [Config] [NewConfig] reads.

[*Ranger.Guide] begins the web server.
By default, [*Ranger.Guide] listens on [DefaultPort] (:3000),
assuming a reverse proxy proxies requests to it.

Upon calling [*Ranger.Guide], all routes configured up to that point are now active.
Stop that web server with [*Ranger.Shutdown],
cancel the context.Context passed to [WithContext],
or send a signal [*Ranger.Guide] listens for.

# Configuration

A developer configures the web client through environment variables.
Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - API_ORIGIN: the Origin header sent to the backend, when the backend checks one
  - API_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for every backend call; default: 10s
  - API_URL: the base URL of the StockSage backend; default: http://localhost:8000
  - APP_TITLE: a short title for the application; default: StockSage
  - BASE_URL: the base URL the application runs on; default: http://localhost:3000
  - CONTACT_US_EMAIL: the email address end users can contact for help
  - CORS_ORIGIN: an origin, besides BASE_URL, allowed to make cross-origin requests
  - ENVIRONMENT: the environment the application is running in; cf. [stocksage.Environment]
  - FIREBASE_API_KEY, FIREBASE_AUTH_DOMAIN, FIREBASE_PROJECT_ID, FIREBASE_DATABASE_URL: the identity provider's settings; without all four nobody can sign in
  - HOST: the host the application is running on; default: localhost
  - IDENTITY_IDLE_TTL: how long - as understood by [time.ParseDuration] - a Session Provider may idle before eviction; default: 30m
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
  - MAINTENANCE_MODE: when true, every request is answered by [MaintModeHandler]
  - PORT: the port the application should listen on; default: :3000
  - REDIS_URL: when set, browser sessions and trade submissions are stored in Redis instead of cookies and memory
  - SENTRY_DSN: when set, errors are reported to Sentry
  - SERVER_IDLE_TIMEOUT: the timeout for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout for writing HTTP responses; default: 15s
  - SESSION_AUTH_KEY: a hex-encoded key for authenticating cookies; cf. [encoding/hex]
  - SESSION_ENCRYPTION_KEY: a hex-encoded key for encrypting cookies; cf. [encoding/hex]
  - SESSION_MAX_AGE: how many seconds a browser session lasts; default: one week
  - TEMPLATE_DIR: a directory whose templates shadow the embedded ones
*/
package ranger
