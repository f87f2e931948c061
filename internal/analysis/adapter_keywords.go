package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/haideralmesaody/asrspulse/internal/nlp"
)

// TechniqueKeywords identifies the keyword extraction technique.
const TechniqueKeywords = "keywords"

const (
	maxKeywordTexts = 100
	minKeywordChars = 10
	defaultTopK     = 10
)

// KeywordsAdapter extracts ranked keyphrases from the corpus. Only the first
// 100 texts are processed and texts shorter than 10 characters after trimming
// are skipped, both performance caps carried over from the reference tooling.
type KeywordsAdapter struct {
	logger *slog.Logger
	topK   int
}

// NewKeywordsAdapter creates the keywords technique adapter.
func NewKeywordsAdapter(logger *slog.Logger, topK int) *KeywordsAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	if topK <= 0 {
		topK = defaultTopK
	}
	return &KeywordsAdapter{
		logger: logger.With(slog.String("technique", TechniqueKeywords)),
		topK:   topK,
	}
}

// Name implements Runner.
func (a *KeywordsAdapter) Name() string { return TechniqueKeywords }

// Kind implements Runner.
func (a *KeywordsAdapter) Kind() Kind { return KindKeywordExtraction }

// Run implements Runner.
func (a *KeywordsAdapter) Run(ctx context.Context, texts, _ []string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = ErrorResult(TechniqueKeywords, KindKeywordExtraction, fmt.Errorf("keyword extraction panic: %v", r))
		}
	}()

	if err := ctx.Err(); err != nil {
		return ErrorResult(TechniqueKeywords, KindKeywordExtraction, err)
	}
	if len(texts) == 0 {
		return ErrorResult(TechniqueKeywords, KindKeywordExtraction, errors.New("no texts to extract keywords from"))
	}

	if len(texts) > maxKeywordTexts {
		texts = texts[:maxKeywordTexts]
	}

	frequency := make(map[string]int)
	scores := make(map[string][]float64)
	total := 0

	for _, text := range texts {
		if len(strings.TrimSpace(text)) <= minKeywordChars {
			continue
		}
		for _, kw := range nlp.ExtractKeywords(text, a.topK) {
			frequency[kw.Phrase]++
			scores[kw.Phrase] = append(scores[kw.Phrase], kw.Score)
			total++
		}
	}

	a.logger.Info("keyword extraction complete",
		slog.Int("texts", len(texts)),
		slog.Int("unique_keywords", len(frequency)))

	return Result{
		Technique: TechniqueKeywords,
		Kind:      KindKeywordExtraction,
		Payload: &KeywordExtractionResult{
			ModelName:      "TF-IDF Keyphrase Extraction",
			TopByFrequency: topByFrequency(frequency, a.topK),
			TopByScore:     topByMeanScore(scores, a.topK),
			TotalExtracted: total,
			UniqueKeywords: len(frequency),
		},
	}
}

func topByFrequency(frequency map[string]int, topK int) []KeywordCount {
	out := make([]KeywordCount, 0, len(frequency))
	for kw, count := range frequency {
		out = append(out, KeywordCount{Keyword: kw, Frequency: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		return out[i].Keyword < out[j].Keyword
	})
	if len(out) > topK {
		out = out[:topK]
	}
	return out
}

func topByMeanScore(scores map[string][]float64, topK int) []KeywordScore {
	out := make([]KeywordScore, 0, len(scores))
	for kw, vals := range scores {
		sum := 0.0
		for _, v := range vals {
			sum += v
		}
		out = append(out, KeywordScore{Keyword: kw, Score: sum / float64(len(vals))})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Keyword < out[j].Keyword
	})
	if len(out) > topK {
		out = out[:topK]
	}
	return out
}
