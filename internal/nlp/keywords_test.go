package nlp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKeywords(t *testing.T) {
	text := "engine vibration increased during climb, engine vibration persisted until engine shutdown"

	keywords := ExtractKeywords(text, 5)
	require.NotEmpty(t, keywords)
	assert.LessOrEqual(t, len(keywords), 5)

	phrases := make([]string, len(keywords))
	for i, kw := range keywords {
		phrases[i] = kw.Phrase
		assert.Positive(t, kw.Score)
	}
	assert.Contains(t, phrases, "engine vibration")

	// Descending score order.
	for i := 1; i < len(keywords); i++ {
		assert.GreaterOrEqual(t, keywords[i-1].Score, keywords[i].Score)
	}
}

func TestExtractKeywords_NoStopwordPhrases(t *testing.T) {
	keywords := ExtractKeywords("the engine was on fire and the crew declared an emergency", 20)
	for _, kw := range keywords {
		for _, tok := range strings.Fields(kw.Phrase) {
			assert.False(t, IsStopword(tok), "stopword %q leaked into %q", tok, kw.Phrase)
		}
	}
}

func TestExtractKeywords_EmptyInput(t *testing.T) {
	assert.Nil(t, ExtractKeywords("", 10))
	assert.Nil(t, ExtractKeywords("a the of", 10))
}

func TestExtractKeywords_TopKZeroKeepsAll(t *testing.T) {
	keywords := ExtractKeywords("turbine blade separation caused compressor damage", 0)
	assert.NotEmpty(t, keywords)
}
