package analysis

import "log/slog"

// Options carries the tunable knobs shared by the built-in techniques.
type Options struct {
	MaxFeatures int   // TF-IDF vocabulary cap
	NumTopics   int   // LDA topic count
	TopKeywords int   // keywords returned per ranking
	Seed        int64 // shared seed for reproducible splits and sampling
	Workers     int   // concurrent techniques per comparison
}

// DefaultOptions returns the standard technique configuration.
func DefaultOptions() Options {
	return Options{
		MaxFeatures: 5000,
		NumTopics:   5,
		TopKeywords: 10,
		Seed:        42,
		Workers:     4,
	}
}

// NewDefaultRegistry registers every built-in technique in its canonical
// order: tfidf_svm, lda, keywords, sentiment.
func NewDefaultRegistry(logger *slog.Logger, opts Options) *Registry {
	registry := NewRegistry()

	// Registration of the built-ins cannot collide.
	_ = registry.Register(NewClassifierAdapter(logger, opts.MaxFeatures, opts.Seed))
	_ = registry.Register(NewTopicsAdapter(logger, opts.NumTopics, opts.Seed))
	_ = registry.Register(NewKeywordsAdapter(logger, opts.TopKeywords))
	_ = registry.Register(NewSentimentAdapter(logger))

	return registry
}
