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
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Sync        SyncConfig        `toml:"sync"`
	Classify    ClassifyConfig    `toml:"classify"`
}

// CredentialsConfig contains the work-management API credentials.
type CredentialsConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	TokenURL     string `toml:"token_url"`
	BaseURL      string `toml:"base_url"`
	Scope        string `toml:"scope"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// SyncConfig contains tuning knobs for the sync engine. All values have
// working defaults; they exist so the fixed constants of the upstream
// integration (pool size, scan margin) stay adjustable without a rebuild.
type SyncConfig struct {
	Workers        int     `toml:"workers"`
	PageSize       int     `toml:"page_size"`
	SafetyMargin   int     `toml:"safety_margin"`
	RequestTimeout int     `toml:"request_timeout_secs"`
	PageRateLimit  float64 `toml:"page_rate_limit"`
}

// ClassifyConfig contains tuning for the classification engine.
type ClassifyConfig struct {
	SimilarityFloor float64 `toml:"similarity_floor"`
}

// RequestTimeoutDuration returns the per-request timeout as a [time.Duration].
func (s SyncConfig) RequestTimeoutDuration() time.Duration {
	if s.RequestTimeout <= 0 {
		return 20 * time.Second
	}
	return time.Duration(s.RequestTimeout) * time.Second
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

	config.applyDefaults()
	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	config.applyDefaults()
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

func (c *Config) applyDefaults() {
	if c.Sync.Workers <= 0 {
		c.Sync.Workers = 15
	}
	if c.Sync.PageSize <= 0 {
		c.Sync.PageSize = 100
	}
	if c.Sync.SafetyMargin <= 0 {
		c.Sync.SafetyMargin = 50
	}
	if c.Sync.PageRateLimit <= 0 {
		c.Sync.PageRateLimit = 5.0
	}
	if c.Classify.SimilarityFloor <= 0 {
		c.Classify.SimilarityFloor = 0.85
	}
	if c.Credentials.Scope == "" {
		c.Credentials.Scope = "api"
	}
}
