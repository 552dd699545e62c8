package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"DB_URL", "OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_TEMPERATURE", "OPENAI_MAX_TOKENS"} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()
	assert.Equal(t, "investment.db", cfg.Database.DSN)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.InDelta(t, 0.3, cfg.LLM.Temperature, 1e-6)
	assert.Equal(t, 1000, cfg.LLM.MaxTokens)
	assert.Equal(t, "USD", cfg.Pipeline.DefaultCurrency)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/projects")
	t.Setenv("OPENAI_TEMPERATURE", "0.7")
	t.Setenv("OPENAI_MAX_TOKENS", "2000")
	t.Setenv("OPENAI_TIMEOUT", "10s")

	cfg := LoadConfig()
	assert.Equal(t, "postgres://localhost/projects", cfg.Database.DSN)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 1e-6)
	assert.Equal(t, 2000, cfg.LLM.MaxTokens)
	assert.Equal(t, 10*time.Second, cfg.LLM.Timeout)
}

func TestValidate(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg := LoadConfig()
	require.NoError(t, cfg.Validate())

	cfg.LLM.APIKey = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, IsKind(err, KindConfig))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
