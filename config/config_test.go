package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "deepseek-chat", cfg.Model)
	assert.Equal(t, 0.1, cfg.Temperature)
	assert.Equal(t, 2000, cfg.MaxTokens)
	assert.Equal(t, 30*time.Second, cfg.Timeout.Std())
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 5, cfg.MaxSteps)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
model: deepseek-reasoner
temperature: 0.7
max_tokens: 4000
timeout: 60s
max_retries: 5
max_steps: 12
`))

	require.NoError(t, err)
	assert.Equal(t, "deepseek-reasoner", cfg.Model)
	assert.Equal(t, 0.7, cfg.Temperature)
	assert.Equal(t, 4000, cfg.MaxTokens)
	assert.Equal(t, 60*time.Second, cfg.Timeout.Std())
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, 12, cfg.MaxSteps)
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("max_steps: 8\n"))

	require.NoError(t, err)
	assert.Equal(t, 8, cfg.MaxSteps)
	assert.Equal(t, "deepseek-chat", cfg.Model)
	assert.Equal(t, 3, cfg.MaxRetries)
}

func TestParseExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_REAGENT_KEY", "sk-secret")

	cfg, err := Parse([]byte("api_key: ${TEST_REAGENT_KEY}\n"))

	require.NoError(t, err)
	assert.Equal(t, "sk-secret", cfg.APIKey)
}

func TestParseDurationForms(t *testing.T) {
	cfg, err := Parse([]byte("timeout: 1m30s\n"))
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.Timeout.Std())

	// Bare integers are seconds.
	cfg, err = Parse([]byte("timeout: 45\n"))
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.Timeout.Std())

	_, err = Parse([]byte("timeout: soon\n"))
	assert.Error(t, err)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "not yaml", yaml: "model: [unclosed"},
		{name: "temperature out of range", yaml: "temperature: 3.5"},
		{name: "negative max_tokens", yaml: "max_tokens: -1"},
		{name: "zero max_retries", yaml: "max_retries: 0"},
		{name: "zero max_steps", yaml: "max_steps: 0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: deepseek-reasoner\n"), 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "deepseek-reasoner", cfg.Model)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}
