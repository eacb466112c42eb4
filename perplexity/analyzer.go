// Package perplexity implements content analysis using the Perplexity API.
// The API speaks the OpenAI chat-completions wire format, so the client is
// an OpenAI-compatible client pointed at the Perplexity endpoint.
package perplexity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/webinsight-api/webinsight"
	"github.com/webinsight-api/webinsight/retry"
)

const (
	baseURL   = "https://api.perplexity.ai"
	model     = "sonar-deep-research"
	maxTokens = 1024
)

// Ensure Analyzer implements webinsight.Analyzer at compile time.
var _ webinsight.Analyzer = (*Analyzer)(nil)

// Client is the subset of the OpenAI-compatible API the Analyzer uses.
type Client interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Analyzer analyzes page content through the Perplexity API, retrying
// transient failures with a fixed delay before giving up.
type Analyzer struct {
	client      Client
	maxAttempts int
	delay       time.Duration
	logger      *slog.Logger
}

// NewAnalyzer creates an Analyzer backed by the public Perplexity endpoint.
func NewAnalyzer(apiKey string, maxAttempts int, delay time.Duration, logger *slog.Logger) *Analyzer {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return NewAnalyzerWithClient(openai.NewClientWithConfig(cfg), maxAttempts, delay, logger)
}

// NewAnalyzerWithClient creates an Analyzer with an injected client.
func NewAnalyzerWithClient(client Client, maxAttempts int, delay time.Duration, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		client:      client,
		maxAttempts: maxAttempts,
		delay:       delay,
		logger:      logger,
	}
}

// Analyze sends the content to Perplexity and returns the model's answer.
func (a *Analyzer) Analyze(ctx context.Context, content string, queryType webinsight.QueryType) (string, error) {
	if content == "" {
		return "", webinsight.Errorf(webinsight.EINVALID, "content required")
	}

	prompt := webinsight.BuildPrompt(content, queryType)

	return retry.Do(ctx, func(ctx context.Context) (string, error) {
		return a.complete(ctx, prompt)
	}, a.maxAttempts, a.delay, a.logger)
}

func (a *Analyzer) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("perplexity api: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", webinsight.Errorf(webinsight.EINTERNAL, "perplexity returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
