package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/travislint/travislint/internal/domain"
)

const fileName = ".travislint.yaml"

// Environment variables consulted after the config file.
const (
	EnvEndpoint = "TRAVISLINT_ENDPOINT"
	EnvTimeout  = "TRAVISLINT_TIMEOUT"
)

// YAMLLoader implements domain.ConfigLoader by reading .travislint.yaml
// and the TRAVISLINT_* environment.
type YAMLLoader struct {
	getenv func(string) string
}

// New creates a YAMLLoader reading the process environment.
func New() *YAMLLoader { return &YAMLLoader{getenv: os.Getenv} }

// NewWithEnv creates a YAMLLoader with a custom environment lookup.
func NewWithEnv(getenv func(string) string) *YAMLLoader {
	return &YAMLLoader{getenv: getenv}
}

// Load reads .travislint.yaml from dir and applies environment overrides.
// A missing file yields DefaultConfig.
func (l *YAMLLoader) Load(dir string) (domain.ClientConfig, error) {
	fileCfg, err := l.readFile(dir)
	if err != nil {
		return domain.ClientConfig{}, err
	}

	envCfg, err := l.readEnv()
	if err != nil {
		return domain.ClientConfig{}, err
	}

	cfg := domain.DefaultConfig().Merge(fileCfg).Merge(envCfg)
	if err := cfg.Validate(); err != nil {
		return domain.ClientConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (l *YAMLLoader) readFile(dir string) (domain.ClientConfig, error) {
	data, err := os.ReadFile(filepath.Join(dir, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.ClientConfig{}, nil
		}
		return domain.ClientConfig{}, err
	}

	var cfg domain.ClientConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ClientConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	// Validate before merging, so the error names the file.
	if err := cfg.Validate(); err != nil {
		return domain.ClientConfig{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}
	return cfg, nil
}

func (l *YAMLLoader) readEnv() (domain.ClientConfig, error) {
	var cfg domain.ClientConfig
	cfg.Endpoint = l.getenv(EnvEndpoint)

	if v := l.getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return domain.ClientConfig{}, fmt.Errorf("parsing %s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}
