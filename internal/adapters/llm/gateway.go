package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"impactcompare/internal/domain"
	"impactcompare/internal/imageref"
	"impactcompare/internal/llmjson"
)

const (
	DefaultGatewayURL   = "https://ai.gateway.lovable.dev/v1/chat/completions"
	DefaultGatewayModel = "google/gemini-2.5-flash"
)

// Larger replies could not be parsed anyway.
const maxResponseBytes = llmjson.MaxInputSize

// Gateway talks to an OpenAI-compatible chat completions endpoint for both
// vision and reasoning.
type Gateway struct {
	url            string
	apiKey         string
	visionModel    string
	reasoningModel string
	client         *http.Client
	limiter        *rate.Limiter
	logger         *slog.Logger
}

func NewGateway(cfg Config, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	url := cfg.GatewayURL
	if url == "" {
		url = DefaultGatewayURL
	}
	return &Gateway{
		url:            url,
		apiKey:         cfg.GatewayAPIKey,
		visionModel:    or(cfg.VisionModel, DefaultGatewayModel),
		reasoningModel: or(cfg.ReasoningModel, DefaultGatewayModel),
		// The per-call deadline comes from the caller's context.
		client:  &http.Client{Timeout: 5 * time.Minute},
		limiter: newLimiter(cfg.RPS),
		logger:  logger,
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

// Content is a string for text turns and a part list for vision turns.
type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (g *Gateway) DescribeImage(ctx context.Context, prompt string, image imageref.Ref) (string, error) {
	return g.chat(ctx, backendVision, g.visionModel, []chatMessage{{
		Role: "user",
		Content: []contentPart{
			{Type: "text", Text: prompt},
			{Type: "image_url", ImageURL: &imageURL{URL: image.String()}},
		},
	}})
}

func (g *Gateway) Complete(ctx context.Context, system, user string) (string, error) {
	return g.chat(ctx, backendReasoning, g.reasoningModel, []chatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	})
}

func (g *Gateway) chat(ctx context.Context, backend, model string, messages []chatMessage) (string, error) {
	if g.apiKey == "" {
		return "", domain.ErrMissingCredential
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}

	body, err := json.Marshal(chatRequest{Model: model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Error("gateway request failed", "backend", backend, "model", model, "error", err)
		return "", fmt.Errorf("%s request: %w", backend, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if len(respBody) > maxResponseBytes {
		return "", fmt.Errorf("%s response exceeds %d bytes", backend, maxResponseBytes)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		g.logger.Error("gateway returned error status",
			"backend", backend, "model", model, "status", resp.StatusCode, "body", truncate(string(respBody), 500))
		return "", &BackendError{Backend: backend, Provider: ProviderGateway, StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("parsing gateway response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("gateway error: %s", parsed.Error.Message)
	}
	// An empty choice list is a content problem, not a transport one; the
	// caller's parser treats empty text as unusable.
	var text string
	if len(parsed.Choices) > 0 {
		text = parsed.Choices[0].Message.Content
	}
	g.logger.Info("gateway response", "backend", backend, "provider", ProviderGateway, "model", model, "size", len(text))
	return text, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func or(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
