package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/haideralmesaody/asrspulse/internal/nlp"
)

const (
	// TechniqueTFIDFSVM identifies the TF-IDF + SVM classification technique.
	TechniqueTFIDFSVM = "tfidf_svm"

	tinyDatasetThreshold  = 5
	smallDatasetThreshold = 10
	testRatio             = 0.2
	maxPredictionSamples  = 10
	topFeatureCount       = 20
)

// ClassifierAdapter runs TF-IDF vectorization and a linear SVM over the
// corpus, applying the split policy for scarce data: fewer than 5 texts are
// trained and evaluated on the identical set, small or single-member-class
// datasets get a plain 80/20 split, everything else a stratified one.
type ClassifierAdapter struct {
	logger      *slog.Logger
	maxFeatures int
	seed        int64
}

// NewClassifierAdapter creates the tfidf_svm technique adapter.
func NewClassifierAdapter(logger *slog.Logger, maxFeatures int, seed int64) *ClassifierAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClassifierAdapter{
		logger:      logger.With(slog.String("technique", TechniqueTFIDFSVM)),
		maxFeatures: maxFeatures,
		seed:        seed,
	}
}

// Name implements Runner.
func (a *ClassifierAdapter) Name() string { return TechniqueTFIDFSVM }

// Kind implements Runner.
func (a *ClassifierAdapter) Kind() Kind { return KindClassification }

// Run implements Runner.
func (a *ClassifierAdapter) Run(ctx context.Context, texts, labels []string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = ErrorResult(TechniqueTFIDFSVM, KindClassification, fmt.Errorf("classifier panic: %v", r))
		}
	}()

	if err := ctx.Err(); err != nil {
		return ErrorResult(TechniqueTFIDFSVM, KindClassification, err)
	}
	if len(texts) == 0 {
		return ErrorResult(TechniqueTFIDFSVM, KindClassification, errors.New("no texts to classify"))
	}
	if len(texts) != len(labels) {
		return ErrorResult(TechniqueTFIDFSVM, KindClassification,
			fmt.Errorf("texts and labels length mismatch: %d vs %d", len(texts), len(labels)))
	}

	trainTexts, trainLabels, testTexts, testLabels, degenerate := a.split(texts, labels)

	vectorizer := nlp.NewVectorizer(a.maxFeatures)
	xTrain := vectorizer.Fit(trainTexts)
	xTest := vectorizer.Transform(testTexts)

	model := nlp.NewLinearSVM(a.seed)
	model.Fit(xTrain, trainLabels)
	predicted := model.Predict(xTest)

	accuracy := nlp.Accuracy(testLabels, predicted)
	confLabels, confMatrix := nlp.ConfusionMatrix(testLabels, predicted)

	a.logger.Info("classification complete",
		slog.Float64("accuracy", accuracy),
		slog.Int("train_size", len(trainTexts)),
		slog.Int("test_size", len(testTexts)),
		slog.Bool("degenerate_eval", degenerate))

	return Result{
		Technique: TechniqueTFIDFSVM,
		Kind:      KindClassification,
		Payload: &ClassificationResult{
			ModelName:       "TF-IDF + SVM",
			Accuracy:        accuracy,
			Report:          nlp.ClassificationReport(testLabels, predicted),
			ConfusionLabels: confLabels,
			ConfusionMatrix: confMatrix,
			TopFeatures:     topFeatures(vectorizer.FeatureNames(), model.FeatureWeights(), topFeatureCount),
			Predictions:     predictionSamples(testTexts, testLabels, predicted),
			DataInfo: DataInfo{
				TrainSize:         len(trainTexts),
				TestSize:          len(testTexts),
				UniqueLabels:      countDistinct(labels),
				LabelDistribution: labelDistribution(labels),
			},
			DegenerateEval: degenerate,
		},
	}
}

// split applies the scarce-data policy and returns the train/test partitions.
// The final return value marks the degenerate identity evaluation.
func (a *ClassifierAdapter) split(texts, labels []string) (trainTexts, trainLabels, testTexts, testLabels []string, degenerate bool) {
	if len(texts) < tinyDatasetThreshold {
		a.logger.Warn("very small dataset, training and evaluating on the full set",
			slog.Int("samples", len(texts)))
		return texts, labels, texts, labels, true
	}

	minClass := minClassSize(labels)
	var trainIdx, testIdx []int
	if minClass < 2 || len(texts) < smallDatasetThreshold {
		a.logger.Warn("small class sizes, using plain split without stratification",
			slog.Int("min_class_size", minClass),
			slog.Int("samples", len(texts)))
		trainIdx, testIdx = nlp.TrainTestSplit(len(texts), testRatio, a.seed)
	} else {
		trainIdx, testIdx = nlp.StratifiedSplit(labels, testRatio, a.seed)
	}

	return nlp.Select(texts, trainIdx), nlp.Select(labels, trainIdx),
		nlp.Select(texts, testIdx), nlp.Select(labels, testIdx), false
}

func topFeatures(names []string, weights []float64, n int) []FeatureWeight {
	if len(weights) == 0 {
		return nil
	}
	features := make([]FeatureWeight, len(names))
	for i, name := range names {
		features[i] = FeatureWeight{Feature: name, Weight: weights[i]}
	}
	sort.Slice(features, func(i, j int) bool {
		if features[i].Weight != features[j].Weight {
			return features[i].Weight > features[j].Weight
		}
		return features[i].Feature < features[j].Feature
	})
	if len(features) > n {
		features = features[:n]
	}
	return features
}

func predictionSamples(texts, trueLabels, predicted []string) []PredictionSample {
	n := len(texts)
	if n > maxPredictionSamples {
		n = maxPredictionSamples
	}
	samples := make([]PredictionSample, n)
	for i := 0; i < n; i++ {
		samples[i] = PredictionSample{
			Text:      texts[i],
			TrueLabel: trueLabels[i],
			Predicted: predicted[i],
		}
	}
	return samples
}

func minClassSize(labels []string) int {
	counts := labelDistribution(labels)
	min := 0
	for _, c := range counts {
		if min == 0 || c < min {
			min = c
		}
	}
	return min
}

func labelDistribution(labels []string) map[string]int {
	dist := make(map[string]int)
	for _, label := range labels {
		dist[label]++
	}
	return dist
}

func countDistinct(labels []string) int {
	return len(labelDistribution(labels))
}
