package perplexity_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webinsight-api/webinsight"
	"github.com/webinsight-api/webinsight/perplexity"
)

// stubClient implements perplexity.Client with a function field.
type stubClient struct {
	fn func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

func (s *stubClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return s.fn(ctx, req)
}

func respondWith(text string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: text}},
		},
	}
}

func TestAnalyzer_Analyze(t *testing.T) {
	t.Parallel()

	t.Run("returns the model answer", func(t *testing.T) {
		t.Parallel()

		var gotReq openai.ChatCompletionRequest
		client := &stubClient{fn: func(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
			gotReq = req
			return respondWith("a fine summary"), nil
		}}

		a := perplexity.NewAnalyzerWithClient(client, 3, time.Millisecond, slog.Default())
		result, err := a.Analyze(context.Background(), "article text", webinsight.QuerySummary)

		require.NoError(t, err)
		assert.Equal(t, "a fine summary", result)
		assert.Equal(t, "sonar-deep-research", gotReq.Model)
		require.Len(t, gotReq.Messages, 1)
		assert.Contains(t, gotReq.Messages[0].Content, "article text")
		assert.Contains(t, gotReq.Messages[0].Content, "summary and key points")
	})

	t.Run("returns EINVALID for empty content", func(t *testing.T) {
		t.Parallel()

		a := perplexity.NewAnalyzerWithClient(nil, 3, time.Millisecond, slog.Default())
		_, err := a.Analyze(context.Background(), "", webinsight.QuerySummary)

		require.Error(t, err)
		assert.Equal(t, webinsight.EINVALID, webinsight.ErrorCode(err))
	})

	t.Run("retries transient failures before succeeding", func(t *testing.T) {
		t.Parallel()

		calls := 0
		client := &stubClient{fn: func(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
			calls++
			if calls < 3 {
				return openai.ChatCompletionResponse{}, errors.New("upstream blip")
			}
			return respondWith("eventually"), nil
		}}

		a := perplexity.NewAnalyzerWithClient(client, 3, time.Millisecond, slog.Default())
		result, err := a.Analyze(context.Background(), "text", webinsight.QueryAnalysis)

		require.NoError(t, err)
		assert.Equal(t, "eventually", result)
		assert.Equal(t, 3, calls)
	})

	t.Run("terminal error after exhausting retries", func(t *testing.T) {
		t.Parallel()

		calls := 0
		client := &stubClient{fn: func(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
			calls++
			return openai.ChatCompletionResponse{}, errors.New("hard down")
		}}

		a := perplexity.NewAnalyzerWithClient(client, 3, time.Millisecond, slog.Default())
		_, err := a.Analyze(context.Background(), "text", webinsight.QuerySummary)

		require.Error(t, err)
		assert.Equal(t, 3, calls)
		assert.Equal(t, webinsight.EUNAVAILABLE, webinsight.ErrorCode(err))
		assert.Contains(t, webinsight.ErrorMessage(err), "hard down")
	})

	t.Run("empty choices is an error", func(t *testing.T) {
		t.Parallel()

		client := &stubClient{fn: func(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
			return openai.ChatCompletionResponse{}, nil
		}}

		a := perplexity.NewAnalyzerWithClient(client, 1, time.Millisecond, slog.Default())
		_, err := a.Analyze(context.Background(), "text", webinsight.QuerySummary)

		require.Error(t, err)
		assert.Equal(t, webinsight.EUNAVAILABLE, webinsight.ErrorCode(err))
		assert.Contains(t, webinsight.ErrorMessage(err), "no choices")
	})
}
