package domain

import (
	"fmt"
	"net/url"
	"time"
)

const (
	// DefaultEndpoint is the public Travis CI lint API.
	DefaultEndpoint = "https://api.travis-ci.org/lint"
	// DefaultFile is linted when no filename is given.
	DefaultFile      = ".travis.yml"
	DefaultUserAgent = "travislint/dev"
)

// ClientConfig holds client settings loaded from .travislint.yaml,
// the environment and command-line flags.
type ClientConfig struct {
	Endpoint string `yaml:"endpoint"     json:"endpoint,omitempty"`
	// Timeout bounds the whole lint request. Zero leaves the transport default.
	Timeout     time.Duration `yaml:"timeout"      json:"timeout,omitempty"`
	UserAgent   string        `yaml:"user_agent"   json:"user_agent,omitempty"`
	DefaultFile string        `yaml:"default_file" json:"default_file,omitempty"`
	// Cache stores successful results under .travislint/cache.
	Cache    bool          `yaml:"cache"     json:"cache,omitempty"`
	CacheTTL time.Duration `yaml:"cache_ttl" json:"cache_ttl,omitempty"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() ClientConfig {
	return ClientConfig{
		Endpoint:    DefaultEndpoint,
		UserAgent:   DefaultUserAgent,
		DefaultFile: DefaultFile,
	}
}

// Merge overlays the non-zero fields of override on c.
func (c ClientConfig) Merge(override ClientConfig) ClientConfig {
	result := c
	if override.Endpoint != "" {
		result.Endpoint = override.Endpoint
	}
	if override.Timeout != 0 {
		result.Timeout = override.Timeout
	}
	if override.UserAgent != "" {
		result.UserAgent = override.UserAgent
	}
	if override.DefaultFile != "" {
		result.DefaultFile = override.DefaultFile
	}
	if override.Cache {
		result.Cache = true
	}
	if override.CacheTTL != 0 {
		result.CacheTTL = override.CacheTTL
	}
	return result
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ClientConfig) Validate() error {
	if c.Endpoint != "" {
		u, err := url.Parse(c.Endpoint)
		if err != nil {
			return fmt.Errorf("invalid endpoint %q: %w", c.Endpoint, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("endpoint %q must use http or https", c.Endpoint)
		}
		if u.Host == "" {
			return fmt.Errorf("endpoint %q has no host", c.Endpoint)
		}
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout %s must not be negative", c.Timeout)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl %s must not be negative", c.CacheTTL)
	}

	return nil
}
