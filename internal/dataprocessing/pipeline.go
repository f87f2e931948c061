package dataprocessing

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/haideralmesaody/asrspulse/pkg/contracts/domain"
)

// ErrNoRelevantReports is returned when the relevance filter leaves zero
// rows. An empty corpus makes every downstream statistic ill-defined, so the
// pipeline surfaces this as a hard failure instead of passing an empty table
// on.
var ErrNoRelevantReports = errors.New("no motor-related reports found in the data")

// Pipeline composes the preprocessing steps into one deterministic transform:
// relevance filtering, missing value handling, categorical standardization,
// date feature extraction and per-column text normalization.
type Pipeline struct {
	logger       *slog.Logger
	filter       *RelevanceFilter
	missing      *MissingValueHandler
	standardizer *CategoricalStandardizer
	dates        *DateFeatureExtractor
}

// NewPipeline creates a pipeline with all steps wired.
func NewPipeline(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		logger:       logger.With(slog.String("component", "preprocessing_pipeline")),
		filter:       NewRelevanceFilter(logger),
		missing:      NewMissingValueHandler(logger),
		standardizer: NewCategoricalStandardizer(logger),
		dates:        NewDateFeatureExtractor(logger),
	}
}

// Run executes every preprocessing step in order and returns the processed
// table together with its stats summary. Stats counts reflect the pre- and
// post-filter row counts; later steps never change the row count.
func (p *Pipeline) Run(table *domain.Table, textColumns []string) (*domain.Table, *domain.Stats, error) {
	p.logger.Info("starting preprocessing", slog.Int("records", table.Len()))

	filtered := p.filter.Filter(table, textColumns)
	if filtered.Len() == 0 {
		return nil, p.buildStats(table, filtered, filtered), ErrNoRelevantReports
	}

	clean := p.missing.Clean(filtered)

	if clean.HasColumn("aircraft_type") {
		clean = p.standardizer.Standardize(clean, "aircraft_type", AircraftTypeRules, StyleBucketPattern)
	}
	if clean.HasColumn("flight_phase") {
		clean = p.standardizer.Standardize(clean, "flight_phase", FlightPhaseRules, StyleFlat)
	}

	if dateCol := firstDateColumn(clean); dateCol != "" {
		clean = p.dates.Extract(clean, dateCol)
	}

	clean = p.normalizeTextColumns(clean, textColumns)

	stats := p.buildStats(table, filtered, clean)
	p.logger.Info("preprocessing complete",
		slog.Int("original", stats.OriginalCount),
		slog.Int("final", stats.FinalCount),
		slog.Float64("filter_ratio", stats.FilterRatio))

	return clean, stats, nil
}

// normalizeTextColumns writes a "<col>_processed" column for each configured
// text column present in the table.
func (p *Pipeline) normalizeTextColumns(table *domain.Table, textColumns []string) *domain.Table {
	if len(textColumns) == 0 {
		return table
	}

	out := table.Clone()
	for _, col := range textColumns {
		if !out.HasColumn(col) {
			continue
		}
		derived := col + "_processed"
		out.AddColumn(derived)
		for _, rec := range out.Records {
			rec[derived] = NormalizeText(domain.AsString(rec[col]))
		}
	}
	return out
}

func (p *Pipeline) buildStats(original, filtered, final *domain.Table) *domain.Stats {
	ratio := 0.0
	if original.Len() > 0 {
		ratio = float64(filtered.Len()) / float64(original.Len())
	}
	return &domain.Stats{
		OriginalCount:      original.Len(),
		FilteredCount:      filtered.Len(),
		FinalCount:         final.Len(),
		FilterRatio:        ratio,
		Columns:            append([]string(nil), final.Columns...),
		MotorKeywordsFound: p.filter.Keywords(),
	}
}

// firstDateColumn returns the first column whose name contains "date",
// case-insensitively.
func firstDateColumn(table *domain.Table) string {
	for _, col := range table.Columns {
		if strings.Contains(strings.ToLower(col), "date") {
			return col
		}
	}
	return ""
}
