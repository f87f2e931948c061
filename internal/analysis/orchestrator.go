package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/alitto/pond/v2"

	"github.com/haideralmesaody/asrspulse/pkg/contracts/domain"
)

// Recommendation thresholds for the comparison summary.
const (
	accuracyRecommended = 0.8
	accuracyNeedsData   = 0.6
)

// BestAccuracy points at the classification technique with the highest
// accuracy. Present only when at least one classification technique
// succeeded.
type BestAccuracy struct {
	Model    string  `json:"model"`
	Accuracy float64 `json:"accuracy"`
}

// Summary aggregates the comparison outcome across techniques.
type Summary struct {
	ModelsCompared  []string      `json:"models_compared"`
	BestAccuracy    *BestAccuracy `json:"best_accuracy"`
	Recommendations []string      `json:"recommendations"`
}

// ComparisonDataInfo describes the shared input every technique saw.
type ComparisonDataInfo struct {
	TotalSamples      int            `json:"total_samples"`
	UniqueLabels      int            `json:"unique_labels"`
	LabelDistribution map[string]int `json:"label_distribution"`
}

// Comparison is the full result of one model comparison run.
type Comparison struct {
	DataInfo     ComparisonDataInfo `json:"data_info"`
	ModelResults map[string]Result  `json:"model_results"`
	Summary      Summary            `json:"comparison_summary"`
}

// Orchestrator resolves the comparison input once and runs the selected
// techniques, collecting per-technique results without letting any single
// failure abort the run.
type Orchestrator struct {
	logger   *slog.Logger
	registry *Registry
	workers  int
}

// NewOrchestrator creates an orchestrator over the given registry. workers
// bounds how many techniques run concurrently; each technique only reads the
// shared texts and labels and writes to its own result key, so no ordering
// between them is needed.
func NewOrchestrator(logger *slog.Logger, registry *Registry, workers int) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if workers <= 0 {
		workers = 1
	}
	return &Orchestrator{
		logger:   logger.With(slog.String("component", "comparison_orchestrator")),
		registry: registry,
		workers:  workers,
	}
}

// Registry exposes the underlying technique registry.
func (o *Orchestrator) Registry() *Registry {
	return o.registry
}

// Compare resolves texts and labels from the table and runs every selected
// technique. Unknown technique names are rejected before anything runs.
func (o *Orchestrator) Compare(ctx context.Context, table *domain.Table, textColumn, labelColumn string, techniques []string) (*Comparison, error) {
	if len(techniques) == 0 {
		return nil, fmt.Errorf("no techniques selected")
	}
	for _, name := range techniques {
		if !o.registry.Has(name) {
			return nil, fmt.Errorf("technique %s not found", name)
		}
	}
	if !table.HasColumn(textColumn) {
		return nil, fmt.Errorf("text column %s not found", textColumn)
	}

	texts, labels := o.prepareData(table, textColumn, labelColumn)

	o.logger.Info("starting model comparison",
		slog.Int("samples", len(texts)),
		slog.Any("techniques", techniques))

	results := o.runAll(ctx, texts, labels, techniques)

	return &Comparison{
		DataInfo: ComparisonDataInfo{
			TotalSamples:      len(texts),
			UniqueLabels:      countDistinct(labels),
			LabelDistribution: labelDistribution(labels),
		},
		ModelResults: results,
		Summary:      buildSummary(results, techniques),
	}, nil
}

// prepareData extracts the text column (missing values become empty strings)
// and resolves labels: the label column when given and present, otherwise
// synthetic keyword-derived labels.
func (o *Orchestrator) prepareData(table *domain.Table, textColumn, labelColumn string) (texts, labels []string) {
	texts = make([]string, table.Len())
	for i, rec := range table.Records {
		texts[i] = domain.AsString(rec[textColumn])
	}

	if labelColumn != "" && table.HasColumn(labelColumn) {
		labels = make([]string, table.Len())
		for i, rec := range table.Records {
			label := domain.AsString(rec[labelColumn])
			if label == "" {
				label = "unknown"
			}
			labels[i] = label
		}
		return texts, labels
	}

	return texts, SynthesizeLabels(texts)
}

// runAll executes the selected techniques on a bounded result pool, joined
// before aggregation. Each result lands under its own technique key.
func (o *Orchestrator) runAll(ctx context.Context, texts, labels []string, techniques []string) map[string]Result {
	pool := pond.NewPool(o.workers, pond.WithContext(ctx))

	var mu sync.Mutex
	results := make(map[string]Result, len(techniques))

	for _, name := range techniques {
		runner, err := o.registry.Get(name)
		if err != nil {
			// Validated above; kept as a guard against concurrent unregister.
			mu.Lock()
			results[name] = ErrorResult(name, "", err)
			mu.Unlock()
			continue
		}

		pool.Submit(func() {
			o.logger.Info("running technique", slog.String("technique", runner.Name()))
			result := runner.Run(ctx, texts, labels)
			if result.Failed() {
				o.logger.Error("technique failed",
					slog.String("technique", runner.Name()),
					slog.String("error", result.Err))
			}
			mu.Lock()
			results[runner.Name()] = result
			mu.Unlock()
		})
	}

	pool.StopAndWait()
	return results
}

// buildSummary derives the best classification accuracy and the fixed
// threshold recommendations from the collected results.
func buildSummary(results map[string]Result, techniques []string) Summary {
	summary := Summary{
		ModelsCompared:  append([]string(nil), techniques...),
		Recommendations: []string{},
	}

	for _, name := range techniques {
		result, ok := results[name]
		if !ok || result.Failed() || result.Kind != KindClassification {
			continue
		}
		payload, ok := result.Payload.(*ClassificationResult)
		if !ok {
			continue
		}
		if summary.BestAccuracy == nil || payload.Accuracy > summary.BestAccuracy.Accuracy {
			summary.BestAccuracy = &BestAccuracy{Model: name, Accuracy: payload.Accuracy}
		}
	}

	if result, ok := results[TechniqueTFIDFSVM]; ok && !result.Failed() {
		if payload, ok := result.Payload.(*ClassificationResult); ok {
			switch {
			case payload.Accuracy > accuracyRecommended:
				summary.Recommendations = append(summary.Recommendations,
					"TF-IDF + SVM shows high classification accuracy and is recommended for automatic categorization")
			case payload.Accuracy < accuracyNeedsData:
				summary.Recommendations = append(summary.Recommendations,
					"TF-IDF + SVM may need more data or feature engineering")
			}
		}
	}
	if result, ok := results[TechniqueKeywords]; ok && !result.Failed() {
		summary.Recommendations = append(summary.Recommendations,
			"Keyword extraction is well suited for identifying recurring themes in reports")
	}
	if result, ok := results[TechniqueLDA]; ok && !result.Failed() {
		summary.Recommendations = append(summary.Recommendations,
			"LDA can be used for unsupervised topic modeling of the corpus")
	}

	return summary
}
