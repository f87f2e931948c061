package dataprocessing

import (
	"log/slog"
	"strings"
	"time"

	"github.com/haideralmesaody/asrspulse/pkg/contracts/domain"
)

// dateLayouts are tried in order when parsing report dates. ASRS exports are
// not consistent about date formatting.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"1/2/2006",
	"02.01.2006",
	"2006/01/02",
	"200601",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// DateFeatureExtractor derives calendar components from a date-like column.
type DateFeatureExtractor struct {
	logger *slog.Logger
}

// NewDateFeatureExtractor creates an extractor.
func NewDateFeatureExtractor(logger *slog.Logger) *DateFeatureExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &DateFeatureExtractor{
		logger: logger.With(slog.String("component", "date_feature_extractor")),
	}
}

// Extract adds year, month, quarter and day_of_week columns parsed from the
// named date column. Unparseable values leave the derived features missing
// for that row only; the row itself is kept. A missing source column is a
// logged no-op.
func (e *DateFeatureExtractor) Extract(table *domain.Table, dateColumn string) *domain.Table {
	if !table.HasColumn(dateColumn) {
		e.logger.Warn("date column not found, skipping feature extraction",
			slog.String("column", dateColumn))
		return table
	}

	out := table.Clone()
	for _, col := range []string{"year", "month", "quarter", "day_of_week"} {
		out.AddColumn(col)
	}

	parsed := 0
	for _, rec := range out.Records {
		t, ok := parseDate(domain.AsString(rec[dateColumn]))
		if !ok {
			rec["year"] = nil
			rec["month"] = nil
			rec["quarter"] = nil
			rec["day_of_week"] = nil
			continue
		}
		rec["year"] = t.Year()
		rec["month"] = int(t.Month())
		rec["quarter"] = (int(t.Month())-1)/3 + 1
		// Monday = 0, matching the upstream ASRS tooling convention.
		rec["day_of_week"] = (int(t.Weekday()) + 6) % 7
		parsed++
	}

	e.logger.Info("date features extracted",
		slog.String("column", dateColumn),
		slog.Int("parsed", parsed),
		slog.Int("records", out.Len()))

	return out
}

func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
