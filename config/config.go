package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ServerConfig holds everything the serve and mcp commands need to run.
type ServerConfig struct {
	Host  string `env:"TWENTY48_HOST" envDefault:"localhost"`
	Port  int    `env:"TWENTY48_PORT" envDefault:"8080"`
	Debug bool   `env:"TWENTY48_DEBUG" envDefault:"false"`

	NgrokEnabled   bool   `env:"NGROK_ENABLED" envDefault:"false"`
	NgrokAuthToken string `env:"NGROK_AUTHTOKEN"`
	NgrokDomain    string `env:"NGROK_DOMAIN"`

	SessionTTL      time.Duration `env:"TWENTY48_SESSION_TTL" envDefault:"24h"`
	CleanupInterval time.Duration `env:"TWENTY48_CLEANUP_INTERVAL" envDefault:"1h"`
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present; a missing file is not an
// error.
func Load() (*ServerConfig, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env file: %w", err)
	}

	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	// Some ngrok setups export the token with an underscore.
	if cfg.NgrokAuthToken == "" {
		cfg.NgrokAuthToken = os.Getenv("NGROK_AUTH_TOKEN")
	}

	return &cfg, nil
}

// Addr returns the host:port the HTTP server binds to.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BaseURL returns the server's local HTTP URL, as used by the MCP proxy and
// the log banner.
func (c *ServerConfig) BaseURL() string {
	return fmt.Sprintf("http://%s", c.Addr())
}
