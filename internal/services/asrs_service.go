package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/haideralmesaody/asrspulse/internal/analysis"
	"github.com/haideralmesaody/asrspulse/internal/dataprocessing"
	"github.com/haideralmesaody/asrspulse/internal/infrastructure"
	"github.com/haideralmesaody/asrspulse/pkg/contracts/domain"
)

const (
	// DefaultTextColumn is analyzed when the caller names no column.
	DefaultTextColumn = "narrative"

	lowFilterRatio  = 0.1
	highFilterRatio = 0.3
	sampleRows      = 5
)

// ASRSService owns the full analysis workflow: preprocessing uploaded report
// tables, running model comparisons over a session and aggregating results
// into comparison and report views.
type ASRSService struct {
	logger       *slog.Logger
	pipeline     *dataprocessing.Pipeline
	orchestrator *analysis.Orchestrator
	store        *SessionStore
	metrics      *infrastructure.Metrics
}

// NewASRSService wires the service from its collaborators.
func NewASRSService(logger *slog.Logger, pipeline *dataprocessing.Pipeline, orchestrator *analysis.Orchestrator, store *SessionStore, metrics *infrastructure.Metrics) *ASRSService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ASRSService{
		logger:       logger.With(slog.String("service", "asrs")),
		pipeline:     pipeline,
		orchestrator: orchestrator,
		store:        store,
		metrics:      metrics,
	}
}

// AvailableTechniques returns the registered technique names in order.
func (s *ASRSService) AvailableTechniques() []string {
	return s.orchestrator.Registry().Names()
}

// PreprocessResult is the response payload of a preprocessing run.
type PreprocessResult struct {
	SessionID        string          `json:"session_id"`
	Stats            *domain.Stats   `json:"stats"`
	SampleData       []domain.Record `json:"sample_data"`
	ProcessedColumns []string        `json:"processed_columns"`
	Warnings         []string        `json:"warnings,omitempty"`
}

// Preprocess loads a report file, runs the preprocessing pipeline and stores
// the result as a new session.
func (s *ASRSService) Preprocess(ctx context.Context, filePath string, textColumns []string) (*PreprocessResult, error) {
	if _, err := os.Stat(filePath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, filePath)
	}

	table, err := dataprocessing.LoadTable(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if table.Len() == 0 {
		return nil, ErrEmptyTable
	}

	processed, stats, err := s.pipeline.Run(table, textColumns)
	if err != nil {
		return nil, err
	}

	session := &Session{FilePath: filePath, Table: processed, Stats: stats}
	sessionID := s.store.Put(session)
	s.metrics.PreprocessRuns.Inc()

	var warnings []string
	if stats.FilterRatio < lowFilterRatio {
		warnings = append(warnings, fmt.Sprintf(
			"Low filter ratio (%.1f%%). The file may contain few motor-related reports.",
			stats.FilterRatio*100))
	}

	s.logger.InfoContext(ctx, "preprocessing succeeded",
		slog.String("session_id", sessionID),
		slog.Int("final_count", stats.FinalCount))

	return &PreprocessResult{
		SessionID:        sessionID,
		Stats:            stats,
		SampleData:       processed.Head(sampleRows),
		ProcessedColumns: append([]string(nil), processed.Columns...),
		Warnings:         warnings,
	}, nil
}

// Analyze runs the selected techniques over a session's table and attaches
// the comparison to the session.
func (s *ASRSService) Analyze(ctx context.Context, sessionID, textColumn, targetColumn string, models []string) (*analysis.Comparison, error) {
	if len(models) == 0 {
		return nil, ErrNoModelsSelected
	}
	registry := s.orchestrator.Registry()
	for _, model := range models {
		if !registry.Has(model) {
			return nil, fmt.Errorf("%w: %s (available: %s)",
				ErrUnknownTechnique, model, strings.Join(registry.Names(), ", "))
		}
	}

	session, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Table.Len() == 0 {
		return nil, ErrEmptyTable
	}

	textColumn = s.resolveTextColumn(session.Table, textColumn)
	if textColumn == "" {
		return nil, ErrTextColumnMissing
	}

	comparison, err := s.orchestrator.Compare(ctx, session.Table, textColumn, targetColumn, models)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	session.Analysis = comparison
	for name, result := range comparison.ModelResults {
		if result.Failed() {
			s.metrics.TechniqueFailures.WithLabelValues(name).Inc()
		} else {
			s.metrics.AnalysesRun.WithLabelValues(name).Inc()
		}
	}

	s.logger.InfoContext(ctx, "analysis succeeded",
		slog.String("session_id", sessionID),
		slog.String("text_column", textColumn),
		slog.Any("models", models))

	return comparison, nil
}

// resolveTextColumn falls back to the first column whose name contains
// "text" or "narrative" when the requested column does not exist.
func (s *ASRSService) resolveTextColumn(table *domain.Table, textColumn string) string {
	if textColumn == "" {
		textColumn = DefaultTextColumn
	}
	if table.HasColumn(textColumn) {
		return textColumn
	}
	for _, col := range table.Columns {
		lower := strings.ToLower(col)
		if strings.Contains(lower, "text") || strings.Contains(lower, "narrative") {
			s.logger.Warn("text column not found, falling back",
				slog.String("requested", textColumn),
				slog.String("fallback", col))
			return col
		}
	}
	return ""
}

// ModelPerformance is the per-technique slice of the comparison view.
type ModelPerformance struct {
	Name            string                  `json:"name"`
	Type            string                  `json:"type"`
	Accuracy        *float64                `json:"accuracy,omitempty"`
	ConfusionMatrix [][]int                 `json:"confusion_matrix,omitempty"`
	TopKeywords     []analysis.KeywordCount `json:"top_keywords,omitempty"`
	Topics          []string                `json:"topics,omitempty"`
	Sentiment       map[string]int          `json:"sentiment_distribution,omitempty"`
}

// AccuracyPoint feeds the accuracy comparison chart.
type AccuracyPoint struct {
	Model    string  `json:"model"`
	Accuracy float64 `json:"accuracy"`
}

// KeywordPoint feeds the keyword frequency chart.
type KeywordPoint struct {
	Keyword   string `json:"keyword"`
	Frequency int    `json:"frequency"`
}

// VisualizationData bundles chart-ready series.
type VisualizationData struct {
	AccuracyComparison []AccuracyPoint `json:"accuracy_comparison"`
	KeywordFrequency   []KeywordPoint  `json:"keyword_frequency"`
}

// ComparisonView is the read-only aggregation served by the compare endpoint.
type ComparisonView struct {
	ModelPerformance  map[string]ModelPerformance `json:"model_performance"`
	VisualizationData VisualizationData           `json:"visualization_data"`
	Recommendations   []string                    `json:"recommendations"`
}

// Compare builds the comparison view from a session's stored analysis. It is
// read-only and fails when no analysis has been run yet.
func (s *ASRSService) Compare(ctx context.Context, sessionID string) (*ComparisonView, error) {
	session, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if !session.HasAnalysis() {
		return nil, ErrNoAnalysisResults
	}

	view := &ComparisonView{
		ModelPerformance: make(map[string]ModelPerformance),
		VisualizationData: VisualizationData{
			AccuracyComparison: []AccuracyPoint{},
			KeywordFrequency:   []KeywordPoint{},
		},
		Recommendations: session.Analysis.Summary.Recommendations,
	}

	for name, result := range session.Analysis.ModelResults {
		if result.Failed() {
			continue
		}
		perf := buildPerformance(result)
		view.ModelPerformance[name] = perf

		if perf.Accuracy != nil {
			view.VisualizationData.AccuracyComparison = append(view.VisualizationData.AccuracyComparison,
				AccuracyPoint{Model: perf.Name, Accuracy: *perf.Accuracy})
		}
		for _, kw := range perf.TopKeywords {
			view.VisualizationData.KeywordFrequency = append(view.VisualizationData.KeywordFrequency,
				KeywordPoint{Keyword: kw.Keyword, Frequency: kw.Frequency})
		}
	}

	return view, nil
}

func buildPerformance(result analysis.Result) ModelPerformance {
	perf := ModelPerformance{Name: result.Technique, Type: "analysis"}

	switch payload := result.Payload.(type) {
	case *analysis.ClassificationResult:
		perf.Name = payload.ModelName
		perf.Type = "classification"
		acc := payload.Accuracy
		perf.Accuracy = &acc
		perf.ConfusionMatrix = payload.ConfusionMatrix
	case *analysis.KeywordExtractionResult:
		perf.Name = payload.ModelName
		perf.TopKeywords = payload.TopByFrequency
	case *analysis.TopicModelingResult:
		perf.Name = payload.ModelName
		topics := make([]string, len(payload.Topics))
		for i, t := range payload.Topics {
			topics[i] = t.Words
		}
		perf.Topics = topics
	case *analysis.SentimentResult:
		perf.Name = payload.ModelName
		perf.Sentiment = payload.Distribution
	}
	return perf
}

// Report is the summary document served by the report endpoint.
type Report struct {
	Title           string               `json:"title"`
	GeneratedAt     time.Time            `json:"generated_at"`
	DataSummary     *domain.Stats        `json:"data_summary"`
	AnalysisResults *analysis.Comparison `json:"analysis_results,omitempty"`
	Recommendations []string             `json:"recommendations"`
	Conclusions     []string             `json:"conclusions"`
}

// GenerateReport synthesizes a human-readable report over a session.
func (s *ASRSService) GenerateReport(ctx context.Context, sessionID string) (*Report, error) {
	session, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Title:           "ASRS Engine-Related Incidents - Analysis Report",
		GeneratedAt:     time.Now(),
		DataSummary:     session.Stats,
		AnalysisResults: session.Analysis,
		Recommendations: []string{},
		Conclusions:     []string{},
	}

	switch {
	case session.Stats.FilterRatio < lowFilterRatio:
		report.Recommendations = append(report.Recommendations,
			"Low filter ratio for motor-related reports. Review the keyword list or data quality.")
	case session.Stats.FilterRatio > highFilterRatio:
		report.Recommendations = append(report.Recommendations,
			"High filter ratio for motor-related reports. The data contains many relevant reports.")
	}

	if session.HasAnalysis() {
		if result, ok := session.Analysis.ModelResults[analysis.TechniqueTFIDFSVM]; ok && !result.Failed() {
			if payload, ok := result.Payload.(*analysis.ClassificationResult); ok {
				if payload.Accuracy > 0.8 {
					report.Recommendations = append(report.Recommendations,
						"TF-IDF + SVM shows high classification accuracy. Recommended for automatic categorization.")
				} else {
					report.Recommendations = append(report.Recommendations,
						"TF-IDF + SVM shows moderate accuracy. Consider feature engineering or more training data.")
				}
			}
		}
		if result, ok := session.Analysis.ModelResults[analysis.TechniqueKeywords]; ok && !result.Failed() {
			report.Recommendations = append(report.Recommendations,
				"Keyword extraction works well for pulling relevant terms out of reports.")
		}

		report.Conclusions = append(report.Conclusions,
			fmt.Sprintf("Analyzed %d motor-related ASRS reports.", session.Stats.FinalCount))
		if len(session.Analysis.ModelResults) > 1 {
			report.Conclusions = append(report.Conclusions,
				fmt.Sprintf("Compared %d different NLP techniques.", len(session.Analysis.ModelResults)))
		}
	}

	return report, nil
}

// SessionInfo is the list view of one session.
type SessionInfo struct {
	SessionID   string        `json:"session_id"`
	FilePath    string        `json:"filepath"`
	CreatedAt   time.Time     `json:"created_at"`
	Stats       *domain.Stats `json:"stats"`
	HasAnalysis bool          `json:"has_analysis"`
}

// Sessions lists every live session.
func (s *ASRSService) Sessions(ctx context.Context) []SessionInfo {
	sessions := s.store.List()
	infos := make([]SessionInfo, 0, len(sessions))
	for _, session := range sessions {
		infos = append(infos, SessionInfo{
			SessionID:   session.ID,
			FilePath:    session.FilePath,
			CreatedAt:   session.CreatedAt,
			Stats:       session.Stats,
			HasAnalysis: session.HasAnalysis(),
		})
	}
	return infos
}
