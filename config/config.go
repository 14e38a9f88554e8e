package config

import (
	"fmt"
	"os"
	"time"
)

type ConciergeConfig struct {
	Provider              string `toml:"provider"`
	Model                 string `toml:"model"`
	BaseURL               string `toml:"base_url,omitempty"`
	APIKey                string `toml:"api_key,omitempty"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
}

type UserConfig struct {
	DataDirectory string          `toml:"data_directory"`
	Concierge     ConciergeConfig `toml:"concierge"`
}

type Config struct {
	DataDirectory     string
	Provider          string
	DefaultModel      string
	BaseURL           string
	APIKey            string
	RequestTimeout    time.Duration
	SystemInstruction string
}

func (c *Config) Model() string {
	return c.DefaultModel
}

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

func (c *Config) applyUserConfig(u *UserConfig) {
	if u.DataDirectory != "" {
		c.DataDirectory = u.DataDirectory
	}
	if u.Concierge.Provider != "" {
		c.Provider = u.Concierge.Provider
	}
	if u.Concierge.Model != "" {
		c.DefaultModel = u.Concierge.Model
	}
	c.BaseURL = u.Concierge.BaseURL
	c.APIKey = u.Concierge.APIKey
	c.RequestTimeout = time.Duration(u.Concierge.RequestTimeoutSeconds) * time.Second
}

func (c *Config) applyEnvOverrides() {
	if provider := os.Getenv("GUADAVILLAS_PROVIDER"); provider != "" {
		c.Provider = provider
	}
	if model := os.Getenv("GUADAVILLAS_MODEL"); model != "" {
		c.DefaultModel = model
	}
	if baseURL := os.Getenv("GUADAVILLAS_BASE_URL"); baseURL != "" {
		c.BaseURL = baseURL
	}
	if key := LookupAPIKey(); key != "" {
		c.APIKey = key
	}
	if dataDir := os.Getenv("GUADAVILLAS_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
}

// LookupAPIKey returns the first credential found in the environment.
// API_KEY is the variable the hosted site was deployed with.
func LookupAPIKey() string {
	for _, name := range []string{"GUADAVILLAS_API_KEY", "GEMINI_API_KEY", "API_KEY"} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

func Load() (*Config, error) {
	return LoadFrom(GetSettingsFilePath())
}

// LoadFrom reads the config file at path (creating it from the template when
// missing), then applies environment overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{
		DataDirectory:     GetDefaultDataDir(),
		Provider:          DefaultProvider,
		DefaultModel:      DefaultModel,
		RequestTimeout:    DefaultRequestTimeout,
		SystemInstruction: SystemInstruction,
	}

	userCfg, err := LoadUserConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.applyUserConfig(userCfg)
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dataDir := cfg.DataDir()
	if err := EnsureDataDirPermissions(dataDir); err != nil {
		return nil, fmt.Errorf("failed to prepare data directory: %w", err)
	}

	return cfg, nil
}
