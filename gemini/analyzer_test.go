package gemini_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webinsight-api/webinsight"
	"github.com/webinsight-api/webinsight/gemini"
)

func TestAnalyzer_Analyze_ReturnsErrorWhenContentEmpty(t *testing.T) {
	t.Parallel()

	a := gemini.NewAnalyzer(nil, 3, time.Millisecond, slog.Default()) // nil client ok for this test

	_, err := a.Analyze(context.Background(), "", webinsight.QuerySummary)

	require.Error(t, err)
	assert.Equal(t, webinsight.EINVALID, webinsight.ErrorCode(err))
	assert.Contains(t, webinsight.ErrorMessage(err), "content required")
}

func TestBuildConfig_SetsSystemInstruction(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.SystemInstruction)
	require.NotEmpty(t, config.SystemInstruction.Parts)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "web page content")
	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.4, float64(*config.Temperature), 0.001)
}
