package analysis

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classifierCorpus() ([]string, []string) {
	texts := []string{
		"engine failure during climb", "engine failure after takeoff",
		"engine failure on final", "engine flameout at altitude",
		"engine failure reported", "engine shutdown in cruise",
		"routine maintenance inspection", "scheduled inspection completed",
		"maintenance check performed", "repair completed at the gate",
		"inspection found no faults", "maintenance repair signed off",
	}
	return texts, SynthesizeLabels(texts)
}

func TestClassifierAdapter_Run(t *testing.T) {
	texts, labels := classifierCorpus()
	adapter := NewClassifierAdapter(discardLogger(), 0, 42)

	result := adapter.Run(context.Background(), texts, labels)
	require.False(t, result.Failed(), result.Err)

	payload, ok := result.Payload.(*ClassificationResult)
	require.True(t, ok)
	assert.False(t, payload.DegenerateEval)
	assert.Positive(t, payload.DataInfo.TrainSize)
	assert.Positive(t, payload.DataInfo.TestSize)
	assert.Equal(t, len(texts), payload.DataInfo.TrainSize+payload.DataInfo.TestSize)
	assert.GreaterOrEqual(t, payload.Accuracy, 0.0)
	assert.LessOrEqual(t, payload.Accuracy, 1.0)
	assert.NotEmpty(t, payload.TopFeatures)
	assert.NotEmpty(t, payload.Predictions)
}

func TestClassifierAdapter_TinyDatasetIsDegenerate(t *testing.T) {
	adapter := NewClassifierAdapter(discardLogger(), 0, 42)
	texts := []string{"engine failure", "maintenance inspection", "thrust loss"}

	result := adapter.Run(context.Background(), texts, SynthesizeLabels(texts))
	require.False(t, result.Failed(), result.Err)

	payload := result.Payload.(*ClassificationResult)
	assert.True(t, payload.DegenerateEval)
	assert.Equal(t, 3, payload.DataInfo.TrainSize)
	assert.Equal(t, 3, payload.DataInfo.TestSize)
}

func TestClassifierAdapter_InputValidation(t *testing.T) {
	adapter := NewClassifierAdapter(discardLogger(), 0, 42)

	result := adapter.Run(context.Background(), nil, nil)
	assert.True(t, result.Failed())

	result = adapter.Run(context.Background(), []string{"a", "b"}, []string{"x"})
	require.True(t, result.Failed())
	assert.Contains(t, result.Err, "length mismatch")
}

func TestClassifierAdapter_CanceledContext(t *testing.T) {
	adapter := NewClassifierAdapter(discardLogger(), 0, 42)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := adapter.Run(ctx, []string{"engine failure"}, []string{"engine_failure"})
	assert.True(t, result.Failed())
}

func TestTopicsAdapter_Run(t *testing.T) {
	adapter := NewTopicsAdapter(discardLogger(), 2, 42)
	texts := []string{
		"engine failure engine fire smoke",
		"engine failure turbine damage",
		"engine fire smoke cabin",
		"hydraulic leak gear extension",
		"hydraulic pressure gear pump",
		"hydraulic leak pressure loss",
	}

	result := adapter.Run(context.Background(), texts, nil)
	require.False(t, result.Failed(), result.Err)

	payload, ok := result.Payload.(*TopicModelingResult)
	require.True(t, ok)
	assert.Equal(t, 2, payload.NumTopics)
	assert.Len(t, payload.Topics, 2)
}

func TestTopicsAdapter_EmptyCorpus(t *testing.T) {
	adapter := NewTopicsAdapter(discardLogger(), 2, 42)

	result := adapter.Run(context.Background(), []string{"unique tokens only once"}, nil)
	assert.True(t, result.Failed())
}

func TestKeywordsAdapter_Run(t *testing.T) {
	adapter := NewKeywordsAdapter(discardLogger(), 5)
	texts := []string{
		"engine vibration detected during climb with repeated engine vibration",
		"engine vibration confirmed by maintenance after landing inspection",
	}

	result := adapter.Run(context.Background(), texts, nil)
	require.False(t, result.Failed(), result.Err)

	payload, ok := result.Payload.(*KeywordExtractionResult)
	require.True(t, ok)
	assert.Positive(t, payload.TotalExtracted)
	assert.Positive(t, payload.UniqueKeywords)
	assert.LessOrEqual(t, len(payload.TopByFrequency), 5)
	assert.LessOrEqual(t, len(payload.TopByScore), 5)
}

func TestKeywordsAdapter_SkipsShortTexts(t *testing.T) {
	adapter := NewKeywordsAdapter(discardLogger(), 5)

	result := adapter.Run(context.Background(), []string{"too short"}, nil)
	require.False(t, result.Failed())

	payload := result.Payload.(*KeywordExtractionResult)
	assert.Zero(t, payload.TotalExtracted)
}

func TestKeywordsAdapter_EmptyInput(t *testing.T) {
	adapter := NewKeywordsAdapter(discardLogger(), 5)
	result := adapter.Run(context.Background(), nil, nil)
	assert.True(t, result.Failed())
}

func TestSentimentAdapter_Run(t *testing.T) {
	adapter := NewSentimentAdapter(discardLogger())
	texts := []string{
		"severe engine fire forced an emergency landing",
		"routine flight landed safely without incident",
	}

	result := adapter.Run(context.Background(), texts, nil)
	require.False(t, result.Failed(), result.Err)

	payload, ok := result.Payload.(*SentimentResult)
	require.True(t, ok)
	assert.Equal(t, 2, payload.TotalAnalyzed)
	assert.Equal(t, 1, payload.Distribution["NEGATIVE"])
	assert.Equal(t, 1, payload.Distribution["POSITIVE"])
	assert.Greater(t, payload.AvgConfidence, 0.0)
	assert.Len(t, payload.Samples, 2)
}

func TestSentimentAdapter_EmptyInput(t *testing.T) {
	adapter := NewSentimentAdapter(discardLogger())
	result := adapter.Run(context.Background(), nil, nil)
	assert.True(t, result.Failed())
}

func TestSentimentAdapter_MultibyteLongText(t *testing.T) {
	adapter := NewSentimentAdapter(discardLogger())
	texts := []string{
		"sévère engine fire " + strings.Repeat("é", maxSentimentChars),
	}

	result := adapter.Run(context.Background(), texts, nil)
	require.False(t, result.Failed(), result.Err)

	payload, ok := result.Payload.(*SentimentResult)
	require.True(t, ok)
	assert.Equal(t, 1, payload.TotalAnalyzed)
	assert.Equal(t, 1, payload.Distribution["NEGATIVE"])
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"shorter than max", "engine", 10, "engine"},
		{"exactly max", "engine", 6, "engine"},
		{"ascii truncated", "engine failure", 6, "engine"},
		{"multibyte within rune limit", "éééé", 4, "éééé"},
		{"multibyte truncated on rune boundary", "aéîøü", 3, "aéî"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateRunes(tt.in, tt.max)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
