package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Assistant providers
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Assistant AssistantConfig `yaml:"assistant"`
	Log       LogConfig       `yaml:"log"`
	Telegram  TelegramConfig  `yaml:"telegram"`
}

// ServerConfig HTTP listener settings
type ServerConfig struct {
	Port             int           `yaml:"port"`
	CORSOrigins      []string      `yaml:"cors_origins"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	GracefulShutdown time.Duration `yaml:"graceful_shutdown"`
}

// CatalogConfig where products come from and how prices render
type CatalogConfig struct {
	Source   string `yaml:"source"`
	Currency string `yaml:"currency"`
}

// AssistantConfig generative fallback settings. Keys may be empty.
type AssistantConfig struct {
	Provider      string        `yaml:"provider"`
	Model         string        `yaml:"model"`
	OpenAIAPIKey  string        `yaml:"openai_api_key"`
	OpenAIBaseURL string        `yaml:"openai_base_url"`
	GeminiAPIKey  string        `yaml:"gemini_api_key"`
	Timeout       time.Duration `yaml:"timeout"`
}

// LogConfig logger settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or console
}

// TelegramConfig optional bot channel, disabled when the token is empty
type TelegramConfig struct {
	Token string `yaml:"token"`
}

// Default values for a local run
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:             5000,
			CORSOrigins:      []string{"*"},
			ReadTimeout:      15 * time.Second,
			WriteTimeout:     60 * time.Second,
			GracefulShutdown: 10 * time.Second,
		},
		Catalog: CatalogConfig{
			Source:   "products.csv",
			Currency: "₹",
		},
		Assistant: AssistantConfig{
			Provider: ProviderOpenAI,
			Timeout:  30 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads .env when present, then the YAML file at path (or CONFIG_PATH),
// then environment overrides. Missing credentials are not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Validate checks formats only
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	switch c.Assistant.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("unknown assistant provider %q", c.Assistant.Provider)
	}
	if c.Assistant.Timeout < 0 {
		return fmt.Errorf("assistant timeout must not be negative: %s", c.Assistant.Timeout)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	if strings.TrimSpace(c.Catalog.Source) == "" {
		return fmt.Errorf("catalog source is empty")
	}
	return nil
}

// Addr listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Server.Port)
}

// APIKey credential of the selected provider
func (c *Config) APIKey() string {
	if c.Assistant.Provider == ProviderGemini {
		return c.Assistant.GeminiAPIKey
	}
	return c.Assistant.OpenAIAPIKey
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT is not a number: %w", err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = splitList(v)
	}

	if v := os.Getenv("CATALOG_SOURCE"); v != "" {
		cfg.Catalog.Source = v
	}
	if v := os.Getenv("CURRENCY_SYMBOL"); v != "" {
		cfg.Catalog.Currency = v
	}

	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.Assistant.Provider = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.Assistant.Model = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Assistant.OpenAIAPIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.Assistant.OpenAIBaseURL = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Assistant.GeminiAPIKey = v
	}
	if v := os.Getenv("FALLBACK_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("FALLBACK_TIMEOUT is not a duration: %w", err)
		}
		cfg.Assistant.Timeout = d
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}

	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.Token = v
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
