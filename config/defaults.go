package config

import "time"

const (
	DefaultProvider       = "gemini"
	DefaultModel          = "gemini-2.5-flash"
	DefaultRequestTimeout = 120 * time.Second
)

// KnownProviders lists the provider IDs the session factory can build.
var KnownProviders = []string{"gemini", "openai", "openrouter", "anthropic", "ollama"}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		DataDirectory: GetDefaultDataDir(),
		Concierge: ConciergeConfig{
			Provider:              DefaultProvider,
			Model:                 DefaultModel,
			RequestTimeoutSeconds: int(DefaultRequestTimeout / time.Second),
		},
	}
}

func GenerateConfigTemplate() string {
	return `# GuadaVillas Configuration
# Location: ~/.config/guadavillas/config.toml
# This file uses TOML format: https://toml.io

# Directory for the debug log (GUADAVILLAS_DEBUG=1)
data_directory = "~/.local/share/guadavillas"

[concierge]
# One of: gemini, openai, openrouter, anthropic, ollama
provider = "gemini"

# Model used by Lola, the concierge
model = "gemini-2.5-flash"

# Leave empty for the provider's default endpoint
base_url = ""

# Prefer GUADAVILLAS_API_KEY (or GEMINI_API_KEY) in the environment
api_key = ""

# Upper bound for one concierge reply, streaming included
request_timeout_seconds = 120
`
}
