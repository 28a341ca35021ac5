package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"impactcompare/internal/adapters/llm"
)

type Config struct {
	Env               string `yaml:"app_env"`
	ListenAddr        string `yaml:"listen_addr"`
	DatabaseURL       string `yaml:"database_url"`
	ComparisonWorkers int    `yaml:"comparison_workers"`

	LLMProvider     string  `yaml:"llm_provider"`
	GatewayURL      string  `yaml:"ai_gateway_url"`
	GatewayAPIKey   string  `yaml:"ai_gateway_api_key"`
	AnthropicAPIKey string  `yaml:"anthropic_api_key"`
	VisionModel     string  `yaml:"vision_model"`
	ReasoningModel  string  `yaml:"reasoning_model"`
	BackendTimeout  int     `yaml:"backend_timeout_seconds"`
	BackendRPS      float64 `yaml:"backend_rps"`

	RetentionDays     int    `yaml:"retention_days"`
	RetentionSchedule string `yaml:"retention_schedule"`

	SQLitePath string `yaml:"sqlite_path"`
}

const minBackendTimeout = 5

// MissingError lists settings that are absent but tolerated. Callers decide
// whether any of them matter for the entry point they run.
type MissingError struct {
	Keys []string
}

func (e *MissingError) Error() string {
	return strings.Join(e.Keys, ", ") + " not set"
}

// Missing reports whether key is among the tolerated missing settings in err.
func Missing(err error, key string) bool {
	var m *MissingError
	if !errors.As(err, &m) {
		return false
	}
	for _, k := range m.Keys {
		if k == key {
			return true
		}
	}
	return false
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var out int
		_, err := fmt.Sscanf(v, "%d", &out)
		if err == nil {
			return out
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

// Load reads the optional YAML file named by CONFIG_PATH (default
// config.yaml), applies environment overrides, then defaults. Invalid values
// are returned as plain errors; absent optional ones as *MissingError.
func Load() (Config, error) {
	var cfg Config
	path := getenv("CONFIG_PATH", "config.yaml")
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.Env = getenv("APP_ENV", or(cfg.Env, "development"))
	cfg.ListenAddr = getenv("LISTEN_ADDR", or(cfg.ListenAddr, ":8080"))
	cfg.DatabaseURL = getenv("DATABASE_URL", cfg.DatabaseURL)
	cfg.ComparisonWorkers = getenvInt("COMPARISON_WORKERS", cfg.ComparisonWorkers)

	cfg.LLMProvider = strings.ToLower(getenv("LLM_PROVIDER", or(cfg.LLMProvider, llm.ProviderGateway)))
	cfg.GatewayURL = getenv("AI_GATEWAY_URL", or(cfg.GatewayURL, llm.DefaultGatewayURL))
	cfg.GatewayAPIKey = getenv("AI_GATEWAY_API_KEY", cfg.GatewayAPIKey)
	cfg.AnthropicAPIKey = getenv("ANTHROPIC_API_KEY", cfg.AnthropicAPIKey)
	cfg.VisionModel = getenv("VISION_MODEL", cfg.VisionModel)
	cfg.ReasoningModel = getenv("REASONING_MODEL", cfg.ReasoningModel)
	cfg.BackendTimeout = getenvInt("BACKEND_TIMEOUT_SECONDS", orInt(cfg.BackendTimeout, 60))
	cfg.BackendRPS = getenvFloat("BACKEND_RPS", cfg.BackendRPS)

	cfg.RetentionDays = getenvInt("RETENTION_DAYS", cfg.RetentionDays)
	cfg.RetentionSchedule = getenv("RETENTION_SCHEDULE", or(cfg.RetentionSchedule, "@daily"))
	cfg.SQLitePath = getenv("SQLITE_PATH", or(cfg.SQLitePath, "./impactcompare.db"))

	if err := cfg.validate(); err != nil {
		return cfg, err
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if !cfg.LLM().HasCredential() {
		missing = append(missing, cfg.credentialKey())
	}
	if len(missing) > 0 {
		return cfg, &MissingError{Keys: missing}
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.LLMProvider {
	case llm.ProviderGateway, llm.ProviderAnthropic:
	default:
		return fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q", llm.ProviderGateway, llm.ProviderAnthropic, c.LLMProvider)
	}
	if c.BackendTimeout < minBackendTimeout {
		return fmt.Errorf("BACKEND_TIMEOUT_SECONDS must be at least %d, got %d", minBackendTimeout, c.BackendTimeout)
	}
	if c.ComparisonWorkers < 0 {
		return fmt.Errorf("COMPARISON_WORKERS must not be negative")
	}
	if c.BackendRPS < 0 {
		return fmt.Errorf("BACKEND_RPS must not be negative")
	}
	return nil
}

func (c Config) credentialKey() string {
	if c.LLMProvider == llm.ProviderAnthropic {
		return "ANTHROPIC_API_KEY"
	}
	return "AI_GATEWAY_API_KEY"
}

// Production reports whether logs should be JSON.
func (c Config) Production() bool { return c.Env == "production" }

func (c Config) BackendTimeoutDuration() time.Duration {
	return time.Duration(c.BackendTimeout) * time.Second
}

// LLM returns the backend adapter settings.
func (c Config) LLM() llm.Config {
	return llm.Config{
		Provider:        c.LLMProvider,
		GatewayURL:      c.GatewayURL,
		GatewayAPIKey:   c.GatewayAPIKey,
		AnthropicAPIKey: c.AnthropicAPIKey,
		VisionModel:     c.VisionModel,
		ReasoningModel:  c.ReasoningModel,
		RPS:             c.BackendRPS,
	}
}

func or(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
