package dataprocessing

import (
	"log/slog"
	"strings"

	"github.com/haideralmesaody/asrspulse/pkg/contracts/domain"
)

// MotorKeywords is the fixed vocabulary used to decide whether a report is
// engine/motor related. Matching is substring based on purpose: "power" is
// meant to match "powerplant" as well.
var MotorKeywords = []string{
	"engine", "motor", "turbine", "compressor", "combustor", "fan", "rotor",
	"stator", "blade", "vane", "nozzle", "thrust", "power", "rpm", "egt",
	"fuel", "oil", "hydraulic", "pneumatic", "bleed", "starter", "ignition",
	"vibration", "surge", "stall", "flameout", "shutdown", "failure",
	"malfunction", "anomaly", "warning", "caution", "alert",
}

// DefaultTextColumns are the report columns scanned for motor keywords when
// the caller does not name any.
var DefaultTextColumns = []string{"narrative", "synopsis", "problem_description", "text"}

// RelevanceFilter selects engine/motor-related reports by scanning text
// columns against the keyword vocabulary.
type RelevanceFilter struct {
	logger   *slog.Logger
	keywords []string
}

// NewRelevanceFilter creates a filter over the default motor vocabulary.
func NewRelevanceFilter(logger *slog.Logger) *RelevanceFilter {
	if logger == nil {
		logger = slog.Default()
	}
	return &RelevanceFilter{
		logger:   logger.With(slog.String("component", "relevance_filter")),
		keywords: MotorKeywords,
	}
}

// Keywords returns the vocabulary the filter matches against.
func (f *RelevanceFilter) Keywords() []string {
	return f.keywords
}

// Filter returns a new table containing only records where at least one
// scanned column contains at least one keyword as a case-insensitive
// substring. Missing values never match. When textColumns is empty the
// default column list is used, restricted to columns actually present; if
// none are present every textual column is scanned.
func (f *RelevanceFilter) Filter(table *domain.Table, textColumns []string) *domain.Table {
	columns := f.resolveColumns(table, textColumns)

	filtered := domain.NewTable(append([]string(nil), table.Columns...))
	for _, rec := range table.Records {
		if f.matches(rec, columns) {
			filtered.Records = append(filtered.Records, rec)
		}
	}

	f.logger.Info("filtered motor-related reports",
		slog.Int("kept", filtered.Len()),
		slog.Int("total", table.Len()),
		slog.Any("scanned_columns", columns))

	return filtered
}

func (f *RelevanceFilter) resolveColumns(table *domain.Table, textColumns []string) []string {
	if len(textColumns) == 0 {
		textColumns = DefaultTextColumns
	}

	var available []string
	for _, col := range textColumns {
		if table.HasColumn(col) {
			available = append(available, col)
		}
	}

	if len(available) == 0 {
		f.logger.Warn("no configured text columns found, scanning all textual columns")
		available = table.TextColumns()
	}

	return available
}

func (f *RelevanceFilter) matches(rec domain.Record, columns []string) bool {
	for _, col := range columns {
		text := strings.ToLower(domain.AsString(rec[col]))
		if text == "" {
			continue
		}
		for _, keyword := range f.keywords {
			if strings.Contains(text, keyword) {
				return true
			}
		}
	}
	return false
}
