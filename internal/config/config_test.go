package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[llm]
provider = "OpenAI"
model = "gpt-4o-mini"

[resolver]
max_suggestions = 3
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 3, cfg.Resolver.MaxSuggestions)
	assert.Equal(t, 3, cfg.Resolver.MinQueryLength)
	assert.Equal(t, 0.8, cfg.Resolver.LocalConfidence)
	assert.Equal(t, DefaultSearchPrompt, cfg.Prompts.Search)
	assert.Equal(t, DefaultValidatePrompt, cfg.Prompts.Validate)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")

	_, err = Load(writeConfig(t, "[llm\nprovider ="))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse TOML")
}

func TestSanitize(t *testing.T) {
	cfg := &Config{
		Resolver:    ResolverConfig{MinQueryLength: 0, MaxSuggestions: -1, LocalConfidence: 7},
		Concurrency: ConcurrencyConfig{BulkValidate: 0},
	}
	cfg.Sanitize()

	assert.Equal(t, 3, cfg.Resolver.MinQueryLength)
	assert.Equal(t, 5, cfg.Resolver.MaxSuggestions)
	assert.Equal(t, 0.8, cfg.Resolver.LocalConfidence)
	assert.Equal(t, 4, cfg.Concurrency.BulkValidate)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.NotEmpty(t, cfg.Prompts.Search)
}

func TestSanitize_Prompts(t *testing.T) {
	cfg := Default()
	cfg.Prompts.Search = "Busca el colegio %s"
	cfg.Prompts.Validate = "Valida {name} al 100%"
	cfg.Sanitize()

	assert.Equal(t, DefaultSearchPrompt, cfg.Prompts.Search)
	assert.Equal(t, "Valida {name} al 100%", cfg.Prompts.Validate)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "claude")
	t.Setenv("LLM_API_KEY", "secret")
	t.Setenv("MEMGRAPH_URI", "bolt://db:7687")
	t.Setenv("PORT", "9090")
	t.Setenv("LLM_MODEL", "")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "claude", cfg.LLM.Provider)
	assert.Equal(t, "secret", cfg.LLM.APIKey)
	assert.Equal(t, "gpt-oss:latest", cfg.LLM.Model)
	assert.Equal(t, "bolt://db:7687", cfg.Memgraph.URI)
	assert.Equal(t, "9090", cfg.Server.Port)
}
