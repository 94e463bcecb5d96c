package identity

import (
	"fmt"
	"strings"
)

// Config names the Firebase project backing sign in.
type Config struct {
	APIKey      string
	AuthDomain  string
	ProjectID   string
	DatabaseURL string

	// ToolkitEndpoint overrides the Identity Toolkit base URL.
	ToolkitEndpoint string

	// TokenEndpoint overrides the Secure Token URL.
	TokenEndpoint string
}

// Missing lists the names of required values not set on c.
func (c Config) Missing() []string {
	var missing []string
	for _, kv := range []struct {
		key string
		val string
	}{
		{"apiKey", c.APIKey},
		{"authDomain", c.AuthDomain},
		{"projectId", c.ProjectID},
		{"databaseURL", c.DatabaseURL},
	} {
		if strings.TrimSpace(kv.val) == "" {
			missing = append(missing, kv.key)
		}
	}

	return missing
}

// Valid returns ErrBadConfig when any required value is missing.
func (c Config) Valid() error {
	if missing := c.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: missing Firebase config %s", ErrBadConfig, strings.Join(missing, ", "))
	}

	return nil
}

func (c Config) tokenURL() string {
	if c.TokenEndpoint != "" {
		return c.TokenEndpoint + "?key=" + c.APIKey
	}

	return "https://securetoken.googleapis.com/v1/token?key=" + c.APIKey
}
