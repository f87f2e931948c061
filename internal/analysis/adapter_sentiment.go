package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/haideralmesaody/asrspulse/internal/nlp"
)

// TechniqueSentiment identifies the sentiment classification technique.
const TechniqueSentiment = "sentiment"

const (
	maxSentimentTexts  = 100
	maxSentimentChars  = 512
	minSentimentChars  = 10
	maxSentimentSample = 10
)

// SentimentAdapter scores the corpus with the lexicon sentiment classifier.
// Only the first 100 texts are processed, each truncated to 512 characters
// before scoring.
type SentimentAdapter struct {
	logger *slog.Logger
}

// NewSentimentAdapter creates the sentiment technique adapter.
func NewSentimentAdapter(logger *slog.Logger) *SentimentAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SentimentAdapter{
		logger: logger.With(slog.String("technique", TechniqueSentiment)),
	}
}

// truncateRunes caps s at max characters without splitting a multibyte rune.
func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// Name implements Runner.
func (a *SentimentAdapter) Name() string { return TechniqueSentiment }

// Kind implements Runner.
func (a *SentimentAdapter) Kind() Kind { return KindSentiment }

// Run implements Runner.
func (a *SentimentAdapter) Run(ctx context.Context, texts, _ []string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = ErrorResult(TechniqueSentiment, KindSentiment, fmt.Errorf("sentiment panic: %v", r))
		}
	}()

	if err := ctx.Err(); err != nil {
		return ErrorResult(TechniqueSentiment, KindSentiment, err)
	}
	if len(texts) == 0 {
		return ErrorResult(TechniqueSentiment, KindSentiment, errors.New("no texts to score"))
	}

	if len(texts) > maxSentimentTexts {
		texts = texts[:maxSentimentTexts]
	}

	distribution := make(map[string]int)
	var scores []nlp.SentimentScore
	confidenceSum := 0.0

	for _, text := range texts {
		if len(strings.TrimSpace(text)) <= minSentimentChars {
			continue
		}
		text = truncateRunes(text, maxSentimentChars)
		score := nlp.ScoreSentiment(text)
		distribution[score.Label]++
		confidenceSum += score.Score
		scores = append(scores, score)
	}

	avgConfidence := 0.0
	if len(scores) > 0 {
		avgConfidence = confidenceSum / float64(len(scores))
	}

	samples := scores
	if len(samples) > maxSentimentSample {
		samples = samples[:maxSentimentSample]
	}

	a.logger.Info("sentiment analysis complete",
		slog.Int("analyzed", len(scores)),
		slog.Float64("avg_confidence", avgConfidence))

	return Result{
		Technique: TechniqueSentiment,
		Kind:      KindSentiment,
		Payload: &SentimentResult{
			ModelName:     "Lexicon Sentiment Analysis",
			Distribution:  distribution,
			AvgConfidence: avgConfidence,
			TotalAnalyzed: len(scores),
			Samples:       samples,
		},
	}
}
