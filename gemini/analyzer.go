// Package gemini implements content analysis using Google Gemini, as an
// alternate backend to the Perplexity analyzer.
package gemini

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"github.com/webinsight-api/webinsight"
	"github.com/webinsight-api/webinsight/retry"
)

const model = "gemini-2.5-flash"

// Ensure Analyzer implements webinsight.Analyzer at compile time.
var _ webinsight.Analyzer = (*Analyzer)(nil)

// Analyzer analyzes page content using Google Gemini.
type Analyzer struct {
	client      *genai.Client
	maxAttempts int
	delay       time.Duration
	logger      *slog.Logger
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(client *genai.Client, maxAttempts int, delay time.Duration, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		client:      client,
		maxAttempts: maxAttempts,
		delay:       delay,
		logger:      logger,
	}
}

// Analyze sends the content to Gemini and returns the model's answer.
func (a *Analyzer) Analyze(ctx context.Context, content string, queryType webinsight.QueryType) (string, error) {
	if content == "" {
		return "", webinsight.Errorf(webinsight.EINVALID, "content required")
	}

	prompt := webinsight.BuildPrompt(content, queryType)
	config := BuildConfig()

	return retry.Do(ctx, func(ctx context.Context) (string, error) {
		result, err := a.client.Models.GenerateContent(ctx, model,
			[]*genai.Content{{
				Parts: []*genai.Part{{Text: prompt}},
			}},
			config,
		)
		if err != nil {
			return "", err
		}
		if result == nil {
			return "", webinsight.Errorf(webinsight.EINTERNAL, "gemini returned nil result")
		}
		return result.Text(), nil
	}, a.maxAttempts, a.delay, a.logger)
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a careful assistant analyzing web page content. Base your answer only on the provided content and clearly separate summary from interpretation.",
			}},
		},
		Temperature: &temp,
	}
}
