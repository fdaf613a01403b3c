// Package generator builds copywriting prompts and sends them to an
// OpenAI-compatible chat completion endpoint.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ErrUpstream wraps every failure of the text-generation service.
var ErrUpstream = errors.New("text generation failed")

const (
	DefaultModel   = openai.GPT3Dot5Turbo
	DefaultBaseURL = "https://api.openai.com/v1"

	systemPrompt = "Act as a professional copywriter and create a persuasive description for a product."
	userPrompt   = "Write a %s description about a(n) %s with the following details: %s. Do not use symbols, HTML tags or text formatting."
)

// Config holds the settings for the text-generation service.
// It is built once at startup and handed to New.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	// Timeout bounds a single call. Zero leaves the call bounded only by the
	// request context.
	Timeout time.Duration
}

// ChatClient is the subset of the OpenAI client the generator uses.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Generator produces product descriptions.
type Generator struct {
	client ChatClient
	model  string
	logger *slog.Logger
}

// New creates a Generator backed by the OpenAI API described by cfg.
func New(cfg Config, logger *slog.Logger) *Generator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return NewWithClient(openai.NewClientWithConfig(clientCfg), cfg.Model, logger)
}

// NewWithClient creates a Generator around an existing chat client.
func NewWithClient(client ChatClient, model string, logger *slog.Logger) *Generator {
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		client: client,
		model:  model,
		logger: logger,
	}
}

// BuildMessages assembles the fixed copywriting prompt for one request.
// Product name and comment are embedded verbatim.
func BuildMessages(productName, comment string, tier Tier) []openai.ChatCompletionMessage {
	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(userPrompt, tier, productName, comment)},
	}
}

// Generate asks the upstream model for a description of the product.
// Invalid tiers are rejected before any network call. One call is made per
// invocation, with no retry.
func (g *Generator) Generate(ctx context.Context, productName, comment string, tier Tier) (string, error) {
	if !tier.Valid() {
		return "", fmt.Errorf("%w: %d", ErrInvalidTier, int(tier))
	}

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     g.model,
		Messages:  BuildMessages(productName, comment, tier),
		MaxTokens: tier.MaxTokens(),
	})
	if err != nil {
		g.logger.Warn("Generation request failed",
			"tier", tier.String(),
			"model", g.model,
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no completion returned", ErrUpstream)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	g.logger.Debug("Generation completed",
		"tier", tier.String(),
		"model", g.model,
		"response_len", len(text),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return text, nil
}
