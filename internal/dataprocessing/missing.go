package dataprocessing

import (
	"log/slog"
	"sort"

	"github.com/haideralmesaody/asrspulse/pkg/contracts/domain"
)

// MissingTextSentinel replaces missing values in textual columns.
const MissingTextSentinel = "Unknown"

// MissingValueHandler fills gaps in the table: numeric columns get the column
// median, textual columns get the "Unknown" sentinel. Other column types pass
// through unchanged.
type MissingValueHandler struct {
	logger *slog.Logger
}

// NewMissingValueHandler creates a handler.
func NewMissingValueHandler(logger *slog.Logger) *MissingValueHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &MissingValueHandler{
		logger: logger.With(slog.String("component", "missing_value_handler")),
	}
}

// Clean returns a copy of the table with missing values filled. A numeric
// column whose values are all missing has no median; such cells are left
// missing rather than defaulted to zero, so downstream consumers can still
// tell that no data existed.
func (h *MissingValueHandler) Clean(table *domain.Table) *domain.Table {
	out := table.Clone()

	for _, col := range out.Columns {
		switch {
		case out.IsNumericColumn(col):
			h.fillNumeric(out, col)
		case out.IsTextColumn(col) || h.allMissing(out, col):
			h.fillText(out, col)
		}
	}

	h.logger.Info("missing values handled", slog.Int("records", out.Len()))
	return out
}

func (h *MissingValueHandler) fillNumeric(table *domain.Table, col string) {
	median, ok := columnMedian(table, col)
	if !ok {
		return
	}
	for _, rec := range table.Records {
		if domain.IsMissing(rec[col]) {
			rec[col] = median
		}
	}
}

func (h *MissingValueHandler) fillText(table *domain.Table, col string) {
	for _, rec := range table.Records {
		if domain.IsMissing(rec[col]) {
			rec[col] = MissingTextSentinel
		}
	}
}

func (h *MissingValueHandler) allMissing(table *domain.Table, col string) bool {
	for _, rec := range table.Records {
		if !domain.IsMissing(rec[col]) {
			return false
		}
	}
	return table.Len() > 0
}

// columnMedian computes the median over present values only. The second
// return value is false when the column has no present numeric values.
func columnMedian(table *domain.Table, col string) (float64, bool) {
	var values []float64
	for _, rec := range table.Records {
		if f, ok := domain.AsFloat(rec[col]); ok {
			values = append(values, f)
		}
	}
	if len(values) == 0 {
		return 0, false
	}

	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 0 {
		return (values[mid-1] + values[mid]) / 2, true
	}
	return values[mid], true
}
