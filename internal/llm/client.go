// Package llm abstracts the language-model completion interface consumed by
// the response pipeline and provides the OpenAI-backed implementation.
//
// The orchestrator only sees Client; provider errors and timeouts are plain
// errors that the caller converts into its fallback reply. Tests substitute
// a fake Client.
package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Client is the completion interface used by the response pipeline.
type Client interface {
	// Complete sends a system instruction and a composed user message and
	// returns the assistant reply text. Output length and temperature are
	// fixed per deployment at construction time.
	Complete(ctx context.Context, system, user string) (string, error)
}

// Config configures the OpenAI-backed Client.
type Config struct {
	APIKey      string
	BaseURL     string // optional, for proxies
	Model       string // e.g. "gpt-4o-mini"
	MaxTokens   int    // output token ceiling
	Temperature float64
	Timeout     time.Duration // per-call ceiling; 0 uses the default
}

const (
	defaultModel       = "gpt-4o-mini"
	defaultMaxTokens   = 75
	defaultTemperature = 0.7
	defaultTimeout     = 15 * time.Second
)

type openAIClient struct {
	client      openai.Client
	model       string
	maxTokens   int64
	temperature float64
	timeout     time.Duration
}

// NewOpenAI constructs the production Client.
func NewOpenAI(cfg Config) (Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("llm: api key required")
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &openAIClient{
		client:      openai.NewClient(opts...),
		model:       model,
		maxTokens:   int64(maxTokens),
		temperature: temperature,
		timeout:     timeout,
	}, nil
}

// ErrDisabled is returned by the Client built with Disabled.
var ErrDisabled = errors.New("llm: provider disabled")

type disabledClient struct{}

// Disabled returns a Client whose completions always fail. It lets the
// server boot without an API key; the pipeline falls back to its apology
// reply on every model call.
func Disabled() Client { return disabledClient{} }

func (disabledClient) Complete(context.Context, string, string) (string, error) {
	return "", ErrDisabled
}

// Complete issues one chat completion with a bounded deadline. A timeout is
// indistinguishable from any other provider failure to the caller.
func (c *openAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		MaxTokens:   openai.Int(c.maxTokens),
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("llm: empty completion")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
