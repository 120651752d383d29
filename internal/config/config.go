package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type PromptConfig struct {
	Search   string `toml:"search"`
	Validate string `toml:"validate"`
}

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type ResolverConfig struct {
	MinQueryLength  int     `toml:"min_query_length"`
	MaxSuggestions  int     `toml:"max_suggestions"`
	LocalConfidence float64 `toml:"local_confidence"`
}

type ConcurrencyConfig struct {
	BulkValidate int `toml:"bulk_validate"`
}

type ServerConfig struct {
	Port     string `toml:"port"`
	LogLevel string `toml:"log_level"`
}

type Config struct {
	LLM         LLMConfig         `toml:"llm"`
	Memgraph    MemgraphConfig    `toml:"memgraph"`
	Prompts     PromptConfig      `toml:"prompts"`
	Resolver    ResolverConfig    `toml:"resolver"`
	Concurrency ConcurrencyConfig `toml:"concurrency"`
	Server      ServerConfig      `toml:"server"`
}

// Default returns a configuration usable without any file: a local Ollama
// model, no Memgraph and the built-in prompts.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: "ollama",
			Model:    "gpt-oss:latest",
			BaseURL:  "http://localhost:11434",
		},
		Prompts: PromptConfig{
			Search:   DefaultSearchPrompt,
			Validate: DefaultValidatePrompt,
		},
		Resolver: ResolverConfig{
			MinQueryLength:  3,
			MaxSuggestions:  5,
			LocalConfidence: 0.8,
		},
		Concurrency: ConcurrencyConfig{
			BulkValidate: 4,
		},
		Server: ServerConfig{
			Port:     "8080",
			LogLevel: "info",
		},
	}
}

// Load reads a TOML file on top of Default, so a file only needs the keys it
// changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.Sanitize()
	return cfg, nil
}

// ApplyEnv overrides file values with environment variables when they are set.
func (c *Config) ApplyEnv() {
	override := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	override(&c.LLM.Provider, "LLM_PROVIDER")
	override(&c.LLM.Model, "LLM_MODEL")
	override(&c.LLM.APIKey, "LLM_API_KEY")
	override(&c.LLM.BaseURL, "LLM_BASE_URL")
	override(&c.Memgraph.URI, "MEMGRAPH_URI")
	override(&c.Memgraph.User, "MEMGRAPH_USER")
	override(&c.Memgraph.Password, "MEMGRAPH_PASSWORD")
	override(&c.Server.Port, "PORT")
	override(&c.Server.LogLevel, "LOG_LEVEL")
}

// Sanitize replaces empty, out-of-range or unusable values with defaults.
func (c *Config) Sanitize() {
	def := Default()
	// A template that cannot carry the user's text is unusable.
	if !strings.Contains(c.Prompts.Search, PlaceholderQuery) {
		c.Prompts.Search = def.Prompts.Search
	}
	if !strings.Contains(c.Prompts.Validate, PlaceholderName) {
		c.Prompts.Validate = def.Prompts.Validate
	}
	if c.Resolver.MinQueryLength < 1 {
		c.Resolver.MinQueryLength = def.Resolver.MinQueryLength
	}
	if c.Resolver.MaxSuggestions < 1 {
		c.Resolver.MaxSuggestions = def.Resolver.MaxSuggestions
	}
	if c.Resolver.LocalConfidence <= 0 || c.Resolver.LocalConfidence > 1 {
		c.Resolver.LocalConfidence = def.Resolver.LocalConfidence
	}
	if c.Concurrency.BulkValidate < 1 {
		c.Concurrency.BulkValidate = def.Concurrency.BulkValidate
	}
	if c.Server.Port == "" {
		c.Server.Port = def.Server.Port
	}
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
}
