// Package config loads agent settings from YAML files with environment
// variable expansion, so API keys stay out of checked-in files.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that decodes from YAML strings like "30s".
// Bare integers are read as seconds.
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", v, err)
		}
		*d = Duration(parsed)
	case int:
		*d = Duration(time.Duration(v) * time.Second)
	default:
		return fmt.Errorf("invalid duration value %v", raw)
	}
	return nil
}

// Config holds provider and loop settings.
//
// YAML example:
//
//	api_key: ${DEEPSEEK_API_KEY}
//	model: deepseek-chat
//	temperature: 0.1
//	max_tokens: 2000
//	timeout: 30s
//	max_retries: 3
//	max_steps: 5
type Config struct {
	// APIKey authenticates against the provider. Values like
	// ${DEEPSEEK_API_KEY} are expanded from the environment.
	APIKey string `yaml:"api_key"`

	// BaseURL overrides the provider endpoint. Empty means the provider
	// default.
	BaseURL string `yaml:"base_url"`

	// Model is the backend model identifier.
	Model string `yaml:"model"`

	// Temperature is the sampling temperature.
	Temperature float64 `yaml:"temperature"`

	// MaxTokens caps reply length.
	MaxTokens int `yaml:"max_tokens"`

	// Timeout is the per-attempt wall-clock limit.
	Timeout Duration `yaml:"timeout"`

	// MaxRetries is the total number of model call attempts.
	MaxRetries int `yaml:"max_retries"`

	// MaxSteps bounds the agent loop.
	MaxSteps int `yaml:"max_steps"`
}

// Default returns the settings the library ships with.
func Default() Config {
	return Config{
		Model:       "deepseek-chat",
		Temperature: 0.1,
		MaxTokens:   2000,
		Timeout:     Duration(30 * time.Second),
		MaxRetries:  3,
		MaxSteps:    5,
	}
}

// Load reads a YAML config file. ${VAR} references anywhere in the file are
// expanded from the environment before parsing. Fields absent from the file
// keep their Default values.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes YAML bytes, expanding ${VAR} references from the
// environment.
func Parse(raw []byte) (Config, error) {
	expanded := os.ExpandEnv(string(raw))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature %v out of range [0, 2]", c.Temperature)
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must not be negative, got %d", c.MaxTokens)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max_retries must be at least 1, got %d", c.MaxRetries)
	}
	if c.MaxSteps < 1 {
		return fmt.Errorf("max_steps must be at least 1, got %d", c.MaxSteps)
	}
	return nil
}
