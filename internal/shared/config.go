package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Catalog  CatalogConfig  `toml:"catalog"`
	Client   ClientConfig   `toml:"client"`
}

// ServerConfig contains HTTP server settings for `watchcall serve`.
type ServerConfig struct {
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	JWTSecret     string `toml:"jwt_secret"`
	Region        string `toml:"region"`
	SweepInterval string `toml:"sweep_interval"` // e.g. "24h"; empty disables the availability sweep
}

// Addr returns the host:port pair the server binds to.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SweepEvery parses SweepInterval, returning 0 when the sweep is disabled.
func (s ServerConfig) SweepEvery() time.Duration {
	if s.SweepInterval == "" {
		return 0
	}
	d, err := time.ParseDuration(s.SweepInterval)
	if err != nil {
		return 0
	}
	return d
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// CatalogConfig contains OMDb catalog credentials and limits.
type CatalogConfig struct {
	APIKey    string  `toml:"api_key"`
	BaseURL   string  `toml:"base_url"`
	RateLimit float64 `toml:"rate_limit"` // requests per second against OMDb
}

// ClientConfig contains settings for the CLI/TUI talking to the backend.
type ClientConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	TokenPath      string `toml:"token_path"` // where the session token is stored between invocations
}

// Timeout returns the per-request client timeout, defaulting to 10s.
func (c ClientConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
