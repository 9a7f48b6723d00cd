package cli

import (
	"fmt"
	"net/url"
	"os"
)

// Output formats accepted by --output
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Player    string
	Output    string
	Verbose   bool
}

// DefaultConfig reads WSGAME_SERVER and WSGAME_PLAYER from the environment
func DefaultConfig() *Config {
	server := os.Getenv("WSGAME_SERVER")
	if server == "" {
		server = "http://localhost:8080"
	}
	return &Config{
		ServerURL: server,
		Player:    os.Getenv("WSGAME_PLAYER"),
		Output:    FormatText,
	}
}

// Validate checks the values that came from flags or the environment
func (c *Config) Validate() error {
	if c.Output != FormatText && c.Output != FormatJSON {
		return fmt.Errorf("unknown output format %q (want %s or %s)", c.Output, FormatText, FormatJSON)
	}
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server URL %q", c.ServerURL)
	}
	return nil
}
