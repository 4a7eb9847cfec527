package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string            `toml:"environment"` // "development" or "production"
	Server      ServerConfig      `toml:"server"`
	Storage     StorageConfig     `toml:"storage"`
	Listings    ListingsConfig    `toml:"listings"`
	Logging     LoggingConfig     `toml:"logging"`
	Gemini      GeminiConfig      `toml:"gemini"`
	Claude      ClaudeConfig      `toml:"claude"`
	LLM         LLMConfig         `toml:"llm"`
	Maintenance MaintenanceConfig `toml:"maintenance"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

// ListingsConfig contains configuration for listing seed files
type ListingsConfig struct {
	Dir string `toml:"dir"` // Directory containing listing seed files (TOML)
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs (default: "15:04:05")
}

// GeminiConfig contains Google Gemini API configuration
type GeminiConfig struct {
	APIKey    string `toml:"api_key"`    // Google Gemini API key (or GEMINI_API_KEY env)
	Model     string `toml:"model"`      // Model for completions (default: "gemini-3-flash-preview")
	RateLimit string `toml:"rate_limit"` // Minimum interval between requests (default: "4s")
	MaxTokens int    `toml:"max_tokens"` // Maximum tokens in response
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey    string `toml:"api_key"`    // Anthropic API key (or ANTHROPIC_API_KEY env)
	Model     string `toml:"model"`      // Model for completions (default: "claude-haiku-3-5-20241022")
	RateLimit string `toml:"rate_limit"` // Minimum interval between requests (default: "1s")
	MaxTokens int    `toml:"max_tokens"` // Maximum tokens in response (default: 2048)
}

// LLMProvider represents the AI provider type
type LLMProvider string

const (
	// LLMProviderGemini uses Google Gemini API
	LLMProviderGemini LLMProvider = "gemini"
	// LLMProviderClaude uses Anthropic Claude API
	LLMProviderClaude LLMProvider = "claude"
)

// LLMConfig contains provider selection and the hard call timeout.
// The timeout bounds every outbound completion call so the deterministic
// fallback is guaranteed to trigger within a fixed latency ceiling.
type LLMConfig struct {
	DefaultProvider LLMProvider `toml:"default_provider"` // "gemini" or "claude" (default: "gemini")
	Timeout         string      `toml:"timeout"`          // Hard per-call timeout (default: "8s")
}

// MaintenanceConfig contains configuration for periodic storage maintenance
type MaintenanceConfig struct {
	Enabled  bool   `toml:"enabled"`  // Run periodic Badger value-log GC
	Schedule string `toml:"schedule"` // Cron schedule (default: every 6 hours)
}

// NewDefaultConfig creates a configuration with default values.
// Technical parameters are hardcoded here for production stability.
// Only user-facing settings should be exposed in domus.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Listings: ListingsConfig{
			Dir: "./listings", // Seed files loaded at startup (*.toml)
		},
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout", "file"},
			TimeFormat: "15:04:05",
		},
		Gemini: GeminiConfig{
			APIKey:    "", // User must provide API key (GEMINI_API_KEY or config)
			Model:     "gemini-3-flash-preview",
			RateLimit: "4s", // Free tier: 15 RPM
			MaxTokens: 2048,
		},
		Claude: ClaudeConfig{
			APIKey:    "", // User must provide API key (ANTHROPIC_API_KEY or config)
			Model:     "claude-haiku-3-5-20241022",
			RateLimit: "1s",
			MaxTokens: 2048,
		},
		LLM: LLMConfig{
			DefaultProvider: LLMProviderGemini,
			Timeout:         "8s", // Fallback must trigger within a few seconds of provider stall
		},
		Maintenance: MaintenanceConfig{
			Enabled:  true,
			Schedule: "0 */6 * * *", // Every 6 hours
		},
	}
}

// LoadFromFile loads configuration with priority: default -> file -> env -> CLI
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files.
// Later files override earlier files; environment variables override all files.
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

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("DOMUS_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("DOMUS_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("DOMUS_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Storage configuration
	if badgerPath := os.Getenv("DOMUS_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}
	if listingsDir := os.Getenv("DOMUS_LISTINGS_DIR"); listingsDir != "" {
		config.Listings.Dir = listingsDir
	}

	// Logging configuration
	if level := os.Getenv("DOMUS_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("DOMUS_LOG_OUTPUT"); output != "" {
		parts := strings.Split(output, ",")
		outputs := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// LLM configuration
	if provider := os.Getenv("DOMUS_LLM_PROVIDER"); provider != "" {
		config.LLM.DefaultProvider = LLMProvider(strings.ToLower(provider))
	}
	if timeout := os.Getenv("DOMUS_LLM_TIMEOUT"); timeout != "" {
		config.LLM.Timeout = timeout
	}

	// API keys: config value wins, env is the fallback resolved here so the
	// rest of the code never touches os.Getenv.
	if config.Gemini.APIKey == "" {
		config.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if config.Claude.APIKey == "" {
		config.Claude.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}
