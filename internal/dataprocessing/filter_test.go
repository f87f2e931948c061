package dataprocessing

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haideralmesaody/asrspulse/pkg/contracts/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func narrativeTable(texts ...string) *domain.Table {
	table := domain.NewTable([]string{"narrative"})
	for _, text := range texts {
		table.Records = append(table.Records, domain.Record{"narrative": text})
	}
	return table
}

func TestRelevanceFilter_KeepsMotorReports(t *testing.T) {
	filter := NewRelevanceFilter(discardLogger())
	table := narrativeTable(
		"engine failure occurred",
		"routine flight",
		"turbine vibration detected",
	)

	filtered := filter.Filter(table, nil)

	require.Equal(t, 2, filtered.Len())
	assert.Equal(t, "engine failure occurred", filtered.Records[0]["narrative"])
	assert.Equal(t, "turbine vibration detected", filtered.Records[1]["narrative"])
}

func TestRelevanceFilter_CaseInsensitiveSubstring(t *testing.T) {
	filter := NewRelevanceFilter(discardLogger())

	tests := []struct {
		name string
		text string
		kept bool
	}{
		{"uppercase keyword", "ENGINE SHUTDOWN IN FLIGHT", true},
		{"keyword inside word", "powerplant inspection finding", true},
		{"no keyword", "smooth uneventful approach", false},
		{"empty narrative", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := filter.Filter(narrativeTable(tt.text), nil)
			if tt.kept {
				assert.Equal(t, 1, filtered.Len())
			} else {
				assert.Equal(t, 0, filtered.Len())
			}
		})
	}
}

func TestRelevanceFilter_MissingValuesNeverMatch(t *testing.T) {
	filter := NewRelevanceFilter(discardLogger())
	table := domain.NewTable([]string{"narrative"})
	table.Records = append(table.Records, domain.Record{"narrative": nil})

	filtered := filter.Filter(table, nil)
	assert.Equal(t, 0, filtered.Len())
}

func TestRelevanceFilter_ExplicitColumns(t *testing.T) {
	filter := NewRelevanceFilter(discardLogger())
	table := domain.NewTable([]string{"narrative", "remarks"})
	table.Records = append(table.Records,
		domain.Record{"narrative": "nothing notable", "remarks": "oil pressure dropped"},
	)

	// Only the narrative column is scanned, so the keyword in remarks is
	// invisible.
	filtered := filter.Filter(table, []string{"narrative"})
	assert.Equal(t, 0, filtered.Len())

	filtered = filter.Filter(table, []string{"remarks"})
	assert.Equal(t, 1, filtered.Len())
}

func TestRelevanceFilter_FallsBackToTextualColumns(t *testing.T) {
	filter := NewRelevanceFilter(discardLogger())
	table := domain.NewTable([]string{"report_body"})
	table.Records = append(table.Records,
		domain.Record{"report_body": "compressor stall on takeoff"},
		domain.Record{"report_body": "clear skies all day"},
	)

	// None of the default columns exist, so every textual column is scanned.
	filtered := filter.Filter(table, nil)
	assert.Equal(t, 1, filtered.Len())
}

func TestRelevanceFilter_DoesNotMutateInput(t *testing.T) {
	filter := NewRelevanceFilter(discardLogger())
	table := narrativeTable("engine fire warning", "quiet flight")

	_ = filter.Filter(table, nil)
	assert.Equal(t, 2, table.Len())
}
