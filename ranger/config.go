package ranger

import (
	"net/url"
	"os"
	"time"

	stocksage "github.com/hvpham-yorku/StockSage-AI"
	"github.com/hvpham-yorku/StockSage-AI/identity"
	"github.com/hvpham-yorku/StockSage-AI/logger"
)

const (
	// App metadata
	AppTitleEnvVar   = "APP_TITLE"
	defaultAppTitle  = "StockSage"
	ContactUsEnvVar  = "CONTACT_US_EMAIL"
	defaultContactUs = "support@stocksage.example.com"

	// Backend defaults
	apiURLEnvVar      = "API_URL"
	defaultAPIURL     = "http://localhost:8000"
	apiOriginEnvVar   = "API_ORIGIN"
	apiTimeoutEnvVar  = "API_TIMEOUT"
	defaultAPITimeout = 10 * time.Second

	// Base URL defaults
	BaseURLEnvVar = "BASE_URL"
	corsEnvVar    = "CORS_ORIGIN"

	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Identity defaults
	firebaseAPIKeyEnvVar      = "FIREBASE_API_KEY"
	firebaseAuthDomainEnvVar  = "FIREBASE_AUTH_DOMAIN"
	firebaseProjectIDEnvVar   = "FIREBASE_PROJECT_ID"
	firebaseDatabaseURLEnvVar = "FIREBASE_DATABASE_URL"
	identityIdleTTLEnvVar     = "IDENTITY_IDLE_TTL"
	defaultIdentityIdleTTL    = 30 * time.Minute

	// Log defaults
	logLevelEnvVar = "LOG_LEVEL"

	// Maintenance defaults
	maintenanceEnvVar = "MAINTENANCE_MODE"

	// Redis defaults
	redisURLEnvVar = "REDIS_URL"

	// Template defaults
	templateDirEnvVar = "TEMPLATE_DIR"

	// Web server defaults
	DefaultHost               = "localhost"
	hostEnvVar                = "HOST"
	DefaultPort               = ":3000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 15 * time.Second

	// Session defaults
	SessionAuthKeyEnvVar    = "SESSION_AUTH_KEY"
	SessionEncryptKeyEnvVar = "SESSION_ENCRYPTION_KEY"
	sessionMaxAgeEnvVar     = "SESSION_MAX_AGE"
	defaultSessionMaxAge    = 3600 * 24 * 7
)

var defaultBaseURL = "http://" + DefaultHost + DefaultPort

// A Config holds every setting read from the environment.
type Config struct {
	APIOrigin  string
	APITimeout time.Duration
	APIURL     *url.URL
	AppTitle   string
	BaseURL    *url.URL
	ContactUs  string
	CORSOrigin string
	Env        stocksage.Environment

	// Firebase is the zero value's fields when unset;
	// cf. identity.Config.Missing.
	Firebase identity.Config

	IdleTTL     time.Duration
	LogLevel    logger.LogLevel
	Maintenance bool
	RedisURL    string

	SessionAuthKey    string
	SessionEncryptKey string
	SessionMaxAge     int

	TemplateDir string

	Host         string
	Port         string
	IdleTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewConfig reads a Config from environment variables, applying defaults to those unset.
// Confer the package documentation for the full list.
func NewConfig() Config {
	return Config{
		APIOrigin:  os.Getenv(apiOriginEnvVar),
		APITimeout: stocksage.EnvVarOrDuration(apiTimeoutEnvVar, defaultAPITimeout),
		APIURL:     stocksage.EnvVarOrURL(apiURLEnvVar, defaultAPIURL),
		AppTitle:   stocksage.EnvVarOrString(AppTitleEnvVar, defaultAppTitle),
		BaseURL:    stocksage.EnvVarOrURL(BaseURLEnvVar, defaultBaseURL),
		ContactUs:  stocksage.EnvVarOrString(ContactUsEnvVar, defaultContactUs),
		CORSOrigin: os.Getenv(corsEnvVar),
		Env:        stocksage.EnvVarOrEnv(environmentEnvVar, stocksage.Development),
		Firebase: identity.Config{
			APIKey:      os.Getenv(firebaseAPIKeyEnvVar),
			AuthDomain:  os.Getenv(firebaseAuthDomainEnvVar),
			ProjectID:   os.Getenv(firebaseProjectIDEnvVar),
			DatabaseURL: os.Getenv(firebaseDatabaseURLEnvVar),
		},
		IdleTTL:           stocksage.EnvVarOrDuration(identityIdleTTLEnvVar, defaultIdentityIdleTTL),
		LogLevel:          stocksage.EnvVarOrLogLevel(logLevelEnvVar, logger.LogLevelInfo),
		Maintenance:       stocksage.EnvVarOrBool(maintenanceEnvVar, false),
		RedisURL:          os.Getenv(redisURLEnvVar),
		SessionAuthKey:    os.Getenv(SessionAuthKeyEnvVar),
		SessionEncryptKey: os.Getenv(SessionEncryptKeyEnvVar),
		SessionMaxAge:     stocksage.EnvVarOrInt(sessionMaxAgeEnvVar, defaultSessionMaxAge),
		TemplateDir:       os.Getenv(templateDirEnvVar),
		Host:              stocksage.EnvVarOrString(hostEnvVar, DefaultHost),
		Port:              stocksage.EnvVarOrString(portEnvVar, DefaultPort),
		IdleTimeout:       stocksage.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ReadTimeout:       stocksage.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout:      stocksage.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}
}
