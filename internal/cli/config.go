package cli

import (
	"os"

	"github.com/taskbloom/taskbloom/internal/factory"
	"github.com/taskbloom/taskbloom/internal/session"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Token     string
	TokenFile string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("BLOOM_SERVER", factory.DefaultBaseURL),
		Token:     os.Getenv("BLOOM_TOKEN"),
		TokenFile: getEnvOrDefault("BLOOM_TOKEN_FILE", session.DefaultTokenPath()),
		Output:    "text",
		Verbose:   false,
	}
}

// TokenStore returns the token persistence backend: the token file, unless
// a token was supplied directly via flag or environment
func (c *Config) TokenStore() session.TokenStore {
	if c.Token != "" {
		return session.NewMemoryTokenStore(c.Token)
	}
	return session.NewFileTokenStore(c.TokenFile)
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
