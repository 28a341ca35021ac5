package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/time/rate"

	"impactcompare/internal/domain"
	"impactcompare/internal/imageref"
)

const DefaultAnthropicModel = "claude-sonnet-4-5-20250929"

const anthropicMaxTokens = 4096

// Anthropic serves both backends through the Messages API.
type Anthropic struct {
	client         anthropic.Client
	configured     bool
	visionModel    string
	reasoningModel string
	limiter        *rate.Limiter
	logger         *slog.Logger
}

// NewAnthropic builds the adapter. Extra options are appended after the API
// key, so tests can point it at a local server.
func NewAnthropic(cfg Config, logger *slog.Logger, opts ...option.RequestOption) *Anthropic {
	if logger == nil {
		logger = slog.Default()
	}
	opts = append([]option.RequestOption{option.WithAPIKey(cfg.AnthropicAPIKey), option.WithMaxRetries(0)}, opts...)
	return &Anthropic{
		client:         anthropic.NewClient(opts...),
		configured:     cfg.AnthropicAPIKey != "",
		visionModel:    or(cfg.VisionModel, DefaultAnthropicModel),
		reasoningModel: or(cfg.ReasoningModel, DefaultAnthropicModel),
		limiter:        newLimiter(cfg.RPS),
		logger:         logger,
	}
}

func (a *Anthropic) DescribeImage(ctx context.Context, prompt string, image imageref.Ref) (string, error) {
	var block anthropic.ContentBlockParamUnion
	if image.Kind == imageref.KindURL {
		block = anthropic.NewImageBlock(anthropic.URLImageSourceParam{URL: image.URL})
	} else {
		block = anthropic.NewImageBlockBase64(image.MediaType, image.Data)
	}
	return a.send(ctx, backendVision, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.visionModel),
		MaxTokens: anthropicMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(block, anthropic.NewTextBlock(prompt)),
		},
	})
}

func (a *Anthropic) Complete(ctx context.Context, system, user string) (string, error) {
	return a.send(ctx, backendReasoning, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.reasoningModel),
		MaxTokens: anthropicMaxTokens,
		System:    []anthropic.TextBlockParam{{Text: system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
}

func (a *Anthropic) send(ctx context.Context, backend string, params anthropic.MessageNewParams) (string, error) {
	if !a.configured {
		return "", domain.ErrMissingCredential
	}
	if err := a.limiter.Wait(ctx); err != nil {
		return "", err
	}

	message, err := a.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			a.logger.Error("anthropic returned error status", "backend", backend, "model", params.Model, "status", apiErr.StatusCode)
			return "", &BackendError{Backend: backend, Provider: ProviderAnthropic, StatusCode: apiErr.StatusCode, Body: apiErr.RawJSON()}
		}
		a.logger.Error("anthropic request failed", "backend", backend, "model", params.Model, "error", err)
		return "", fmt.Errorf("%s request: %w", backend, err)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			a.logger.Info("anthropic response",
				"backend", backend,
				"provider", ProviderAnthropic,
				"model", params.Model,
				"size", len(block.Text),
				"tokens_in", message.Usage.InputTokens,
				"tokens_out", message.Usage.OutputTokens)
			return block.Text, nil
		}
	}
	return "", nil
}
