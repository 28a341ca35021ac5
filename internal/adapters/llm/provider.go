// Package llm adapts hosted model APIs to the vision and text backend ports.
package llm

import (
	"fmt"
	"log/slog"

	"impactcompare/internal/ports"
)

const (
	ProviderGateway   = "gateway"
	ProviderAnthropic = "anthropic"
)

// Config selects and configures one provider.
type Config struct {
	Provider        string
	GatewayURL      string
	GatewayAPIKey   string
	AnthropicAPIKey string
	VisionModel     string
	ReasoningModel  string
	RPS             float64
}

// Backend serves both the vision and the text port.
type Backend interface {
	ports.VisionBackend
	ports.TextBackend
}

// New returns the configured provider's backend.
func New(cfg Config, logger *slog.Logger) (Backend, error) {
	switch cfg.Provider {
	case "", ProviderGateway:
		return NewGateway(cfg, logger), nil
	case ProviderAnthropic:
		return NewAnthropic(cfg, logger), nil
	}
	return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
}

// HasCredential reports whether the selected provider has an API key.
func (c Config) HasCredential() bool {
	if c.Provider == ProviderAnthropic {
		return c.AnthropicAPIKey != ""
	}
	return c.GatewayAPIKey != ""
}
