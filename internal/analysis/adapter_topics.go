package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/haideralmesaody/asrspulse/internal/nlp"
)

// TechniqueLDA identifies the LDA topic modeling technique.
const TechniqueLDA = "lda"

const topicTopTerms = 10

// TopicsAdapter fits an LDA topic model over the corpus. Labels are ignored;
// topic modeling is unsupervised.
type TopicsAdapter struct {
	logger    *slog.Logger
	numTopics int
	seed      int64
}

// NewTopicsAdapter creates the lda technique adapter.
func NewTopicsAdapter(logger *slog.Logger, numTopics int, seed int64) *TopicsAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	if numTopics <= 0 {
		numTopics = 5
	}
	return &TopicsAdapter{
		logger:    logger.With(slog.String("technique", TechniqueLDA)),
		numTopics: numTopics,
		seed:      seed,
	}
}

// Name implements Runner.
func (a *TopicsAdapter) Name() string { return TechniqueLDA }

// Kind implements Runner.
func (a *TopicsAdapter) Kind() Kind { return KindTopicModeling }

// Run implements Runner.
func (a *TopicsAdapter) Run(ctx context.Context, texts, _ []string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = ErrorResult(TechniqueLDA, KindTopicModeling, fmt.Errorf("topic model panic: %v", r))
		}
	}()

	if err := ctx.Err(); err != nil {
		return ErrorResult(TechniqueLDA, KindTopicModeling, err)
	}
	if len(texts) == 0 {
		return ErrorResult(TechniqueLDA, KindTopicModeling, errors.New("no texts to model"))
	}

	model := nlp.NewLDA(a.numTopics, a.seed)
	if err := model.Fit(texts); err != nil {
		return ErrorResult(TechniqueLDA, KindTopicModeling, err)
	}

	perplexity := model.LogPerplexity()
	a.logger.Info("topic modeling complete",
		slog.Int("num_topics", a.numTopics),
		slog.Float64("log_perplexity", perplexity))

	return Result{
		Technique: TechniqueLDA,
		Kind:      KindTopicModeling,
		Payload: &TopicModelingResult{
			ModelName:  "Latent Dirichlet Allocation",
			NumTopics:  a.numTopics,
			Topics:     model.Topics(topicTopTerms),
			Perplexity: perplexity,
		},
	}
}
