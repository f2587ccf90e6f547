// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

// Package llm is the chat completion client used for abstractive summaries
// and the ask assistant. It speaks the OpenAI chat completions API, so it
// works against OpenAI, Ollama and other compatible servers.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"github.com/tomtom215/newsprep/internal/breaker"
	"github.com/tomtom215/newsprep/internal/config"
	"github.com/tomtom215/newsprep/internal/metrics"
)

// ErrDisabled is returned by New when no LLM is configured.
var ErrDisabled = errors.New("llm disabled")

// ErrEmptyResponse is returned when the model produces no choices.
var ErrEmptyResponse = errors.New("llm returned no choices")

const defaultOllamaURL = "http://localhost:11434/v1"

// Roles accepted by Chat.
const (
	RoleSystem    = openai.ChatMessageRoleSystem
	RoleUser      = openai.ChatMessageRoleUser
	RoleAssistant = openai.ChatMessageRoleAssistant
)

// Message is one chat message.
type Message struct {
	Role    string
	Content string
}

// Client generates text.
type Client interface {
	// Complete sends prompt as a single user message.
	Complete(ctx context.Context, prompt string) (string, error)

	// Chat sends a full conversation.
	Chat(ctx context.Context, messages []Message) (string, error)
}

type purposeKey struct{}

// WithPurpose labels the calls made with ctx in metrics (summarize, ask, ...).
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

func purposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok && p != "" {
		return p
	}
	return "chat"
}

// OpenAIClient implements Client over go-openai behind a circuit breaker.
type OpenAIClient struct {
	client      *openai.Client
	provider    string
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	breaker     *breaker.Breaker[string]
	logger      zerolog.Logger
}

// New creates the client selected by cfg.Provider; "none" returns ErrDisabled.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg *config.LLMConfig, logger zerolog.Logger) (*OpenAIClient, error) {
	provider := strings.ToLower(cfg.Provider)
	switch provider {
	case "", "none":
		return nil, ErrDisabled
	case "openai", "ollama":
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("llm model is required for provider %s", provider)
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	switch {
	case cfg.BaseURL != "":
		clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	case provider == "ollama":
		clientConfig.BaseURL = defaultOllamaURL
	}
	clientConfig.HTTPClient = &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        8,
			MaxIdleConnsPerHost: 4,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	settings := breaker.DefaultSettings()
	// Generation failures are usually timeouts; give the server time to recover.
	settings.MinRequests = 5
	settings.Timeout = 2 * time.Minute

	return &OpenAIClient{
		client:      openai.NewClientWithConfig(clientConfig),
		provider:    provider,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   maxTokens,
		timeout:     timeout,
		breaker:     breaker.New[string]("llm-"+provider, settings),
		logger:      logger.With().Str("component", "llm").Str("provider", provider).Logger(),
	}, nil
}

// Complete implements Client.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	return c.Chat(ctx, []Message{{Role: RoleUser, Content: prompt}})
}

// Chat implements Client.
func (c *OpenAIClient) Chat(ctx context.Context, messages []Message) (string, error) {
	if len(messages) == 0 {
		return "", errors.New("no messages to send")
	}

	start := time.Now()
	purpose := purposeFrom(ctx)

	content, err := c.breaker.Execute(func() (string, error) {
		reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		req := openai.ChatCompletionRequest{
			Model:       c.model,
			Messages:    toOpenAI(messages),
			Temperature: c.temperature,
			MaxTokens:   c.maxTokens,
		}
		resp, err := c.client.CreateChatCompletion(reqCtx, req)
		if err != nil {
			return "", fmt.Errorf("chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", ErrEmptyResponse
		}
		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	})

	duration := time.Since(start)
	metrics.RecordLLMRequest(c.provider, purpose, duration, err)
	if err != nil {
		c.logger.Warn().Err(err).Str("purpose", purpose).Dur("duration", duration).Msg("LLM request failed")
		return "", err
	}

	c.logger.Debug().
		Str("purpose", purpose).
		Int("messages", len(messages)).
		Dur("duration", duration).
		Msg("LLM request completed")
	return content, nil
}

func toOpenAI(messages []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		out[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}
	return out
}
