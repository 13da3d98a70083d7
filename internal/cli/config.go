package cli

import (
	"os"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	UserKey   string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("DBS2_SERVER", "http://localhost:8080"),
		UserKey:   os.Getenv("DBS2_USER_KEY"),
		Output:    "text",
		Verbose:   false,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
