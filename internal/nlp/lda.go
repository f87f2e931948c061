package nlp

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
)

// ErrEmptyCorpus is returned when vocabulary filtering leaves no usable
// tokens to model.
var ErrEmptyCorpus = errors.New("no terms left after vocabulary filtering")

// LDA fits a latent Dirichlet allocation topic model with collapsed Gibbs
// sampling. Before modeling, the vocabulary is filtered to terms appearing in
// at least MinDocFreq documents and at most MaxDocShare of them.
type LDA struct {
	NumTopics   int
	Alpha       float64
	Beta        float64
	Iterations  int
	MinDocFreq  int
	MaxDocShare float64
	Seed        int64

	vocab      []string
	topicWord  [][]int // topic x word counts
	topicTotal []int
	docTopic   [][]int // doc x topic counts
	docs       [][]int // documents as word ids
}

// NewLDA creates a model with the standard hyperparameters.
func NewLDA(numTopics int, seed int64) *LDA {
	return &LDA{
		NumTopics:   numTopics,
		Alpha:       0.1,
		Beta:        0.01,
		Iterations:  100,
		MinDocFreq:  2,
		MaxDocShare: 0.8,
		Seed:        seed,
	}
}

// Fit tokenizes the texts (tokens shorter than 3 characters are dropped),
// filters the vocabulary and runs the Gibbs sampler.
func (l *LDA) Fit(texts []string) error {
	tokenized := make([][]string, len(texts))
	df := make(map[string]int)
	for i, text := range texts {
		tokens := ContentTokens(text, 3)
		tokenized[i] = tokens
		seen := make(map[string]bool)
		for _, tok := range tokens {
			if !seen[tok] {
				df[tok]++
				seen[tok] = true
			}
		}
	}

	maxDocs := int(l.MaxDocShare * float64(len(texts)))
	var vocab []string
	for term, count := range df {
		if count >= l.MinDocFreq && count <= maxDocs {
			vocab = append(vocab, term)
		}
	}
	sort.Strings(vocab)
	if len(vocab) == 0 {
		return ErrEmptyCorpus
	}

	index := make(map[string]int, len(vocab))
	for i, term := range vocab {
		index[term] = i
	}

	l.vocab = vocab
	l.docs = make([][]int, len(texts))
	for i, tokens := range tokenized {
		for _, tok := range tokens {
			if id, ok := index[tok]; ok {
				l.docs[i] = append(l.docs[i], id)
			}
		}
	}

	l.sample()
	return nil
}

func (l *LDA) sample() {
	rng := rand.New(rand.NewSource(l.Seed))
	k := l.NumTopics
	v := len(l.vocab)

	l.topicWord = make([][]int, k)
	for t := range l.topicWord {
		l.topicWord[t] = make([]int, v)
	}
	l.topicTotal = make([]int, k)
	l.docTopic = make([][]int, len(l.docs))

	assignments := make([][]int, len(l.docs))
	for d, doc := range l.docs {
		l.docTopic[d] = make([]int, k)
		assignments[d] = make([]int, len(doc))
		for i, w := range doc {
			t := rng.Intn(k)
			assignments[d][i] = t
			l.docTopic[d][t]++
			l.topicWord[t][w]++
			l.topicTotal[t]++
		}
	}

	probs := make([]float64, k)
	for iter := 0; iter < l.Iterations; iter++ {
		for d, doc := range l.docs {
			for i, w := range doc {
				old := assignments[d][i]
				l.docTopic[d][old]--
				l.topicWord[old][w]--
				l.topicTotal[old]--

				total := 0.0
				for t := 0; t < k; t++ {
					p := (float64(l.docTopic[d][t]) + l.Alpha) *
						(float64(l.topicWord[t][w]) + l.Beta) /
						(float64(l.topicTotal[t]) + l.Beta*float64(v))
					probs[t] = p
					total += p
				}

				u := rng.Float64() * total
				next := 0
				for acc := probs[0]; acc < u && next < k-1; {
					next++
					acc += probs[next]
				}

				assignments[d][i] = next
				l.docTopic[d][next]++
				l.topicWord[next][w]++
				l.topicTotal[next]++
			}
		}
	}
}

// Topic describes one fitted topic: its id and leading terms formatted as
// weight*"term" pairs in descending weight order.
type Topic struct {
	ID    int    `json:"topic_id"`
	Words string `json:"words"`
}

// Topics returns the top n terms of every topic.
func (l *LDA) Topics(n int) []Topic {
	v := len(l.vocab)
	topics := make([]Topic, l.NumTopics)
	for t := 0; t < l.NumTopics; t++ {
		type termWeight struct {
			term   string
			weight float64
		}
		weights := make([]termWeight, v)
		for w := 0; w < v; w++ {
			weights[w] = termWeight{
				term:   l.vocab[w],
				weight: (float64(l.topicWord[t][w]) + l.Beta) / (float64(l.topicTotal[t]) + l.Beta*float64(v)),
			}
		}
		sort.Slice(weights, func(i, j int) bool {
			if weights[i].weight != weights[j].weight {
				return weights[i].weight > weights[j].weight
			}
			return weights[i].term < weights[j].term
		})

		limit := n
		if limit > len(weights) {
			limit = len(weights)
		}
		parts := make([]string, limit)
		for i := 0; i < limit; i++ {
			parts[i] = fmt.Sprintf("%.3f*%q", weights[i].weight, weights[i].term)
		}
		topics[t] = Topic{ID: t, Words: strings.Join(parts, " + ")}
	}
	return topics
}

// LogPerplexity returns the per-word log likelihood of the training corpus
// under the fitted model. Closer to zero is better.
func (l *LDA) LogPerplexity() float64 {
	v := len(l.vocab)
	k := l.NumTopics

	logLik := 0.0
	words := 0
	for d, doc := range l.docs {
		docLen := len(doc)
		if docLen == 0 {
			continue
		}
		for _, w := range doc {
			p := 0.0
			for t := 0; t < k; t++ {
				theta := (float64(l.docTopic[d][t]) + l.Alpha) / (float64(docLen) + l.Alpha*float64(k))
				phi := (float64(l.topicWord[t][w]) + l.Beta) / (float64(l.topicTotal[t]) + l.Beta*float64(v))
				p += theta * phi
			}
			logLik += math.Log(p)
			words++
		}
	}
	if words == 0 {
		return 0
	}
	return logLik / float64(words)
}
