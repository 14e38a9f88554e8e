package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Validate reports every configuration problem at once.
//
// A missing API key is deliberately not checked here: it surfaces when the
// concierge first builds its chat session, and a later send retries.
func (c *Config) Validate() error {
	var result *multierror.Error

	if !IsKnownProvider(c.Provider) {
		result = multierror.Append(result, fmt.Errorf("unknown provider %q (expected one of: %s)",
			c.Provider, strings.Join(KnownProviders, ", ")))
	}
	if strings.TrimSpace(c.DefaultModel) == "" {
		result = multierror.Append(result, fmt.Errorf("concierge model must not be empty"))
	}
	if c.RequestTimeout < 0 {
		result = multierror.Append(result, fmt.Errorf("request_timeout_seconds must not be negative"))
	}

	return result.ErrorOrNil()
}

func IsKnownProvider(id string) bool {
	return slices.Contains(KnownProviders, id)
}
