package nlp

import (
	"math"
	"sort"
)

// Vectorizer turns documents into l2-normalized TF-IDF vectors with stopword
// removal and a feature cap. Fit selects the vocabulary on the training set;
// Transform maps any document onto that vocabulary, ignoring unseen terms.
type Vectorizer struct {
	MaxFeatures int

	vocab []string
	index map[string]int
	idf   []float64
}

// NewVectorizer creates a vectorizer capped at maxFeatures terms. A cap of 0
// keeps every term.
func NewVectorizer(maxFeatures int) *Vectorizer {
	return &Vectorizer{MaxFeatures: maxFeatures}
}

// Fit builds the vocabulary and IDF weights from the documents and returns
// the transformed training matrix.
func (v *Vectorizer) Fit(docs []string) [][]float64 {
	tokenized := make([][]string, len(docs))
	df := make(map[string]int)
	tf := make(map[string]int)

	for i, doc := range docs {
		tokens := ContentTokens(doc, 1)
		tokenized[i] = tokens
		seen := make(map[string]bool)
		for _, tok := range tokens {
			tf[tok]++
			if !seen[tok] {
				df[tok]++
				seen[tok] = true
			}
		}
	}

	terms := make([]string, 0, len(tf))
	for term := range tf {
		terms = append(terms, term)
	}
	// Most frequent terms first; ties broken alphabetically for determinism.
	sort.Slice(terms, func(i, j int) bool {
		if tf[terms[i]] != tf[terms[j]] {
			return tf[terms[i]] > tf[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if v.MaxFeatures > 0 && len(terms) > v.MaxFeatures {
		terms = terms[:v.MaxFeatures]
	}
	sort.Strings(terms)

	v.vocab = terms
	v.index = make(map[string]int, len(terms))
	for i, term := range terms {
		v.index[term] = i
	}

	n := float64(len(docs))
	v.idf = make([]float64, len(terms))
	for i, term := range terms {
		// Smoothed IDF, never zero.
		v.idf[i] = math.Log((n+1)/(float64(df[term])+1)) + 1
	}

	matrix := make([][]float64, len(docs))
	for i, tokens := range tokenized {
		matrix[i] = v.vectorize(tokens)
	}
	return matrix
}

// Transform maps documents onto the fitted vocabulary.
func (v *Vectorizer) Transform(docs []string) [][]float64 {
	matrix := make([][]float64, len(docs))
	for i, doc := range docs {
		matrix[i] = v.vectorize(ContentTokens(doc, 1))
	}
	return matrix
}

// FeatureNames returns the fitted vocabulary in index order.
func (v *Vectorizer) FeatureNames() []string {
	return v.vocab
}

func (v *Vectorizer) vectorize(tokens []string) []float64 {
	vec := make([]float64, len(v.vocab))
	for _, tok := range tokens {
		if idx, ok := v.index[tok]; ok {
			vec[idx]++
		}
	}

	norm := 0.0
	for i := range vec {
		if vec[i] > 0 {
			vec[i] *= v.idf[i]
			norm += vec[i] * vec[i]
		}
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}
