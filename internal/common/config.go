package common

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string        `toml:"environment" validate:"omitempty,oneof=development production"`
	Tickers     []string      `toml:"tickers"` // Default ticker list; CLI -tickers overrides
	Markets     MarketsConfig `toml:"markets"`
	EODHD       EODHDConfig   `toml:"eodhd"`
	Claude      ClaudeConfig  `toml:"claude"`
	Gemini      GeminiConfig  `toml:"gemini"`
	LLM         LLMConfig     `toml:"llm"`
	Report      ReportConfig  `toml:"report"`
	Logging     LoggingConfig `toml:"logging"`
}

// MarketsConfig controls ticker parsing defaults
type MarketsConfig struct {
	DefaultExchange string `toml:"default_exchange"` // Exchange assumed for bare ticker symbols (default: "US")
}

// EODHDConfig contains EODHD API configuration
type EODHDConfig struct {
	APIKey    string `toml:"api_key" validate:"required"` // EODHD API key (or EODHD_API_KEY env)
	BaseURL   string `toml:"base_url"`                    // Override for testing; empty uses the production API
	RateLimit int    `toml:"rate_limit" validate:"gt=0"`  // Requests per second
	NewsLimit int    `toml:"news_limit" validate:"gt=0"`  // Headlines fetched for the Recent News section
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`     // Anthropic API key (or ANTHROPIC_API_KEY env)
	Model       string  `toml:"model"`       // Model for insight generation (default: "claude-haiku-3-5-20241022")
	MaxTokens   int     `toml:"max_tokens"`  // Maximum tokens in response (default: 1024)
	Temperature float32 `toml:"temperature"` // Completion temperature (default: 0.2)
}

// GeminiConfig contains Google Gemini API configuration
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`     // Gemini API key (or GEMINI_API_KEY env)
	Model       string  `toml:"model"`       // Model for insight generation (default: "gemini-3-flash-preview")
	Temperature float32 `toml:"temperature"` // Completion temperature (default: 0.2)
}

// LLMProvider represents the AI provider type
type LLMProvider string

const (
	// LLMProviderGemini uses Google Gemini API
	LLMProviderGemini LLMProvider = "gemini"
	// LLMProviderClaude uses Anthropic Claude API
	LLMProviderClaude LLMProvider = "claude"
)

// LLMConfig contains provider-independent insight generation settings
type LLMConfig struct {
	DefaultProvider LLMProvider `toml:"default_provider" validate:"oneof=gemini claude"` // Provider when model gives no hint
	Model           string      `toml:"model"`                                           // Model identifier; prefix or name selects the provider
	Timeout         string      `toml:"timeout" validate:"required"`                     // Per-section call timeout as duration string
}

// ReportConfig controls where artifacts are written
type ReportConfig struct {
	ReportsDir string `toml:"reports_dir" validate:"required"` // PDF output directory
	DataDir    string `toml:"data_dir" validate:"required"`    // CSV output directory
}

type LoggingConfig struct {
	Level  string   `toml:"level" validate:"oneof=debug info warn error"` // "debug", "info", "warn", "error"
	Output []string `toml:"output"`                                       // "stdout", "file"
}

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Markets: MarketsConfig{
			DefaultExchange: "US",
		},
		EODHD: EODHDConfig{
			RateLimit: 10,
			NewsLimit: 5,
		},
		Claude: ClaudeConfig{
			Model:       "claude-haiku-3-5-20241022",
			MaxTokens:   1024,
			Temperature: 0.2,
		},
		Gemini: GeminiConfig{
			Model:       "gemini-3-flash-preview",
			Temperature: 0.2,
		},
		LLM: LLMConfig{
			DefaultProvider: LLMProviderGemini,
			Timeout:         "60s",
		},
		Report: ReportConfig{
			ReportsDir: "./reports",
			DataDir:    "./data",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout", "file"},
		},
	}
}

// LoadFromFiles loads configuration from multiple files with priority:
// default -> file1 -> file2 -> ... -> env. Later files override earlier
// files; environment variables override everything.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if config.Markets.DefaultExchange != "" {
		SetDefaultExchange(config.Markets.DefaultExchange)
	}

	return config, nil
}

// Validate checks the configuration before the pipeline starts. A config
// failure is structural: nothing runs on a bad config.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Claude.APIKey == "" && c.Gemini.APIKey == "" {
		return fmt.Errorf("invalid configuration: no LLM API key set (claude.api_key or gemini.api_key)")
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("EQUITAS_ENV"); env != "" {
		config.Environment = env
	}

	if key := os.Getenv("EODHD_API_KEY"); key != "" {
		config.EODHD.APIKey = key
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		config.Claude.APIKey = key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	}

	if model := os.Getenv("EQUITAS_LLM_MODEL"); model != "" {
		config.LLM.Model = model
	}
	if level := os.Getenv("EQUITAS_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if limit := os.Getenv("EQUITAS_NEWS_LIMIT"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			config.EODHD.NewsLimit = n
		}
	}
}
