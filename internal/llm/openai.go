// Package llm wraps the OpenAI-compatible chat completion call used to answer
// messages. The prompt it sends has already been through the request hooks,
// so the perception annotation is part of the user message by the time it
// reaches the wire.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openaigo "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"mew/plugins/perception-agent/internal/provider"
)

const (
	DefaultBaseURL           = "https://api.openai.com/v1"
	DefaultModel             = "gpt-4o-mini"
	DefaultMaxRetries        = 5
	DefaultRequestTimeout    = 75 * time.Second
	DefaultHTTPClientTimeout = 75 * time.Second
)

type ChatConfig struct {
	BaseURL string
	APIKey  string
	Model   string

	MaxRetries     int
	RequestTimeout time.Duration
}

func (c ChatConfig) withDefaults() ChatConfig {
	out := c
	if strings.TrimSpace(out.BaseURL) == "" {
		out.BaseURL = DefaultBaseURL
	}
	if strings.TrimSpace(out.Model) == "" {
		out.Model = DefaultModel
	}
	if out.MaxRetries <= 0 {
		out.MaxRetries = DefaultMaxRetries
	}
	if out.RequestTimeout <= 0 {
		out.RequestTimeout = DefaultRequestTimeout
	}
	return out
}

func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: DefaultHTTPClientTimeout}
}

// Complete sends a hook-processed request and returns the assistant reply
// text. Empty choices yield an error rather than an empty reply.
func Complete(ctx context.Context, httpClient *http.Client, cfg ChatConfig, req provider.Request) (string, error) {
	var messages []openaigo.ChatCompletionMessageParamUnion
	if strings.TrimSpace(req.System) != "" {
		messages = append(messages, openaigo.SystemMessage(req.System))
	}
	messages = append(messages, openaigo.UserMessage(req.Prompt))

	completion, err := CallChatCompletion(ctx, httpClient, cfg, messages)
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("empty choices in completion response")
	}
	reply := strings.TrimSpace(completion.Choices[0].Message.Content)
	if reply == "" {
		return "", fmt.Errorf("empty content in completion response")
	}
	return reply, nil
}

func CallChatCompletion(
	ctx context.Context,
	httpClient *http.Client,
	cfg ChatConfig,
	messages []openaigo.ChatCompletionMessageParamUnion,
) (*openaigo.ChatCompletion, error) {
	cfg = cfg.withDefaults()
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if httpClient == nil {
		httpClient = NewHTTPClient()
	}

	client := openaigo.NewClient(
		option.WithBaseURL(strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")),
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(cfg.MaxRetries),
		option.WithRequestTimeout(cfg.RequestTimeout),
	)

	params := openaigo.ChatCompletionNewParams{
		Model:    openaigo.ChatModel(strings.TrimSpace(cfg.Model)),
		Messages: messages,
	}

	return client.Chat.Completions.New(ctx, params)
}
