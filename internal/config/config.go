// Package config provides configuration management for the dashboard service.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the dashboard service.
type Config struct {
	// Server contains HTTP server settings.
	Server ServerConfig `mapstructure:"server"`
	// Logging contains structured logging settings.
	Logging LoggingConfig `mapstructure:"logging"`
	// Metrics contains Prometheus metrics exposure settings.
	Metrics MetricsConfig `mapstructure:"metrics"`
	// OpenAlex contains OpenAlex API client settings.
	OpenAlex OpenAlexConfig `mapstructure:"openalex"`
	// LLM contains completion API client settings.
	LLM LLMConfig `mapstructure:"llm"`
	// Dashboard contains aggregation and sampling knobs.
	Dashboard DashboardConfig `mapstructure:"dashboard"`
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	// Host is the address to bind the server to (default: 0.0.0.0).
	Host string `mapstructure:"host"`
	// HTTPPort is the HTTP server port (default: 8080).
	HTTPPort int `mapstructure:"http_port"`
	// MetricsPort is the metrics server port (default: 9091).
	MetricsPort int `mapstructure:"metrics_port"`
	// ReadTimeout is the maximum duration for reading request body.
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// WriteTimeout is the maximum duration for writing response.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// CORSAllowedOrigins lists the origins allowed to call the API.
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the log level (trace, debug, info, warn, error, fatal, panic).
	Level string `mapstructure:"level"`
	// Format is the log format (json, console).
	Format string `mapstructure:"format"`
	// Output is the log output destination (stdout, stderr).
	Output string `mapstructure:"output"`
	// AddSource adds source file and line to log output.
	AddSource bool `mapstructure:"add_source"`
	// TimeFormat is the timestamp format.
	TimeFormat string `mapstructure:"time_format"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	// Enabled enables metrics collection and exposure.
	Enabled bool `mapstructure:"enabled"`
	// Path is the HTTP path for metrics endpoint.
	Path string `mapstructure:"path"`
	// Namespace is the prefix applied to all metric names.
	Namespace string `mapstructure:"namespace"`
}

// OpenAlexConfig holds OpenAlex API client settings.
type OpenAlexConfig struct {
	// BaseURL is the API base URL.
	BaseURL string `mapstructure:"base_url"`
	// Email joins the OpenAlex polite pool and is sent on every request.
	Email string `mapstructure:"email"`
	// Timeout is the per-call timeout.
	Timeout time.Duration `mapstructure:"timeout"`
	// MinInterval is the minimum spacing between consecutive requests.
	MinInterval time.Duration `mapstructure:"min_interval"`
	// PerPage is the default page size for searches.
	PerPage int `mapstructure:"per_page"`
}

// LLMConfig holds completion API client settings.
type LLMConfig struct {
	// Provider is the completion provider (openai). Empty disables live
	// narrative generation; those endpoints then serve fallback text.
	Provider string `mapstructure:"provider"`
	// Timeout is the timeout for completion API calls.
	Timeout time.Duration `mapstructure:"timeout"`
	// Temperature is the default sampling temperature.
	Temperature float64 `mapstructure:"temperature"`
	// MaxTokens is the default completion length bound.
	MaxTokens int `mapstructure:"max_tokens"`
	// OpenAI contains OpenAI-specific settings.
	OpenAI OpenAIConfig `mapstructure:"openai"`
}

// OpenAIConfig holds OpenAI-specific settings.
type OpenAIConfig struct {
	// APIKey is the OpenAI API key (loaded from DASHBOARD_LLM_OPENAI_API_KEY env var).
	APIKey string `mapstructure:"-"`
	// Model is the OpenAI model to use.
	Model string `mapstructure:"model"`
	// BaseURL is the OpenAI API base URL (for custom endpoints).
	BaseURL string `mapstructure:"base_url"`
}

// DashboardConfig holds aggregation and sampling knobs.
type DashboardConfig struct {
	// TrendingWindowDays is the publication window for trending aggregation.
	TrendingWindowDays int `mapstructure:"trending_window_days"`
	// TrendingSample is how many recent works feed one aggregation.
	TrendingSample int `mapstructure:"trending_sample"`
	// MinConceptLevel is the minimum concept specificity counted.
	MinConceptLevel int `mapstructure:"min_concept_level"`
	// TopN caps the ranked topic list.
	TopN int `mapstructure:"top_n"`
	// AIConceptID anchors the default bibliographic queries.
	AIConceptID string `mapstructure:"ai_concept_id"`
	// ResearcherLimit bounds a researcher directory page.
	ResearcherLimit int `mapstructure:"researcher_limit"`
	// ChatSuggestions is how many papers and researchers a chat reply suggests.
	ChatSuggestions int `mapstructure:"chat_suggestions"`
	// LootboxQuery seeds the capsule candidate search.
	LootboxQuery string `mapstructure:"lootbox_query"`
	// LootboxYears bounds the capsule candidate publication window.
	LootboxYears int `mapstructure:"lootbox_years"`
}

// HTTPAddress returns the HTTP server address.
func (c *ServerConfig) HTTPAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.HTTPPort)
}

// MetricsAddress returns the metrics server address.
func (c *ServerConfig) MetricsAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.MetricsPort)
}

// Load loads configuration from environment variables and config files.
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read from environment variables
	v.SetEnvPrefix("DASHBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file if present
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/research-dashboard-service")

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use env vars and defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Load secrets exclusively from environment variables.
	// These fields use mapstructure:"-" to prevent loading from config files.
	loadSecrets(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadSecrets populates secret fields exclusively from environment variables.
func loadSecrets(cfg *Config) {
	cfg.LLM.OpenAI.APIKey = os.Getenv("DASHBOARD_LLM_OPENAI_API_KEY")
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.metrics_port", 9091)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.cors_allowed_origins", []string{"*"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.add_source", false)
	v.SetDefault("logging.time_format", time.RFC3339)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("metrics.namespace", "dashboard")

	// OpenAlex defaults
	v.SetDefault("openalex.base_url", "https://api.openalex.org")
	v.SetDefault("openalex.email", "")
	v.SetDefault("openalex.timeout", "10s")
	v.SetDefault("openalex.min_interval", "100ms")
	v.SetDefault("openalex.per_page", 25)

	// LLM defaults
	// API keys are loaded exclusively from environment variables (see loadSecrets).
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.timeout", "30s")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.max_tokens", 500)
	v.SetDefault("llm.openai.model", "gpt-4o-mini")
	v.SetDefault("llm.openai.base_url", "https://api.openai.com/v1")

	// Dashboard defaults
	v.SetDefault("dashboard.trending_window_days", 30)
	v.SetDefault("dashboard.trending_sample", 200)
	v.SetDefault("dashboard.min_concept_level", 2)
	v.SetDefault("dashboard.top_n", 30)
	v.SetDefault("dashboard.ai_concept_id", "C154945302")
	v.SetDefault("dashboard.researcher_limit", 50)
	v.SetDefault("dashboard.chat_suggestions", 3)
	v.SetDefault("dashboard.lootbox_query", "artificial intelligence OR machine learning OR deep learning")
	v.SetDefault("dashboard.lootbox_years", 5)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	// Validate server ports
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.Server.HTTPPort)
	}
	if c.Server.MetricsPort <= 0 || c.Server.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", c.Server.MetricsPort)
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"trace": true, "debug": true, "info": true,
		"warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	// Validate OpenAlex config
	if c.OpenAlex.BaseURL == "" {
		return fmt.Errorf("openalex base_url is required")
	}
	if c.OpenAlex.MinInterval < 0 {
		return fmt.Errorf("openalex min_interval must not be negative")
	}

	// Validate dashboard knobs
	if c.Dashboard.TrendingWindowDays <= 0 {
		return fmt.Errorf("dashboard trending_window_days must be positive")
	}
	if c.Dashboard.TopN <= 0 {
		return fmt.Errorf("dashboard top_n must be positive")
	}

	// A missing provider or API key runs the service on fallback narratives
	// only, which is a supported mode; only an unknown provider is rejected.
	switch strings.ToLower(c.LLM.Provider) {
	case "", "openai":
	default:
		return fmt.Errorf("unsupported LLM provider: %s", c.LLM.Provider)
	}

	return nil
}

// CompletionEnabled reports whether a completion provider is fully
// configured. When false, narrative endpoints serve fallback text.
func (c *Config) CompletionEnabled() bool {
	return strings.ToLower(c.LLM.Provider) == "openai" && c.LLM.OpenAI.APIKey != ""
}
