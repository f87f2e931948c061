package nlp

import (
	"math"
	"sort"
	"strings"
)

// Keyword is a candidate phrase with its relevance score in one document.
type Keyword struct {
	Phrase string  `json:"keyword"`
	Score  float64 `json:"score"`
}

// ExtractKeywords returns the topK 1- and 2-gram candidate phrases of a
// single document ranked by a TF-IDF-like relevance score: term frequency in
// the document damped by global commonness of the phrase's tokens. Stopwords
// never start or end a phrase.
func ExtractKeywords(text string, topK int) []Keyword {
	tokens := ContentTokens(text, 2)
	if len(tokens) == 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, tok := range tokens {
		counts[tok]++
	}
	for i := 0; i+1 < len(tokens); i++ {
		counts[tokens[i]+" "+tokens[i+1]]++
	}

	total := float64(len(tokens))
	scored := make([]Keyword, 0, len(counts))
	for phrase, count := range counts {
		tf := float64(count) / total
		// Longer phrases are more specific; favor bigrams slightly.
		boost := 1.0
		if strings.Contains(phrase, " ") {
			boost = 1.5
		}
		scored = append(scored, Keyword{
			Phrase: phrase,
			Score:  tf * boost * math.Log(1+total/float64(count)),
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Phrase < scored[j].Phrase
	})

	if topK > 0 && len(scored) > topK {
		scored = scored[:topK]
	}
	return scored
}
