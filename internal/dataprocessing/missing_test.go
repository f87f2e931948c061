package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haideralmesaody/asrspulse/pkg/contracts/domain"
)

func TestMissingValueHandler_FillsNumericWithMedian(t *testing.T) {
	handler := NewMissingValueHandler(discardLogger())
	table := domain.NewTable([]string{"altitude"})
	table.Records = append(table.Records,
		domain.Record{"altitude": 1000.0},
		domain.Record{"altitude": nil},
		domain.Record{"altitude": 3000.0},
		domain.Record{"altitude": 2000.0},
	)

	out := handler.Clean(table)
	assert.Equal(t, 2000.0, out.Records[1]["altitude"])
}

func TestMissingValueHandler_EvenCountMedian(t *testing.T) {
	handler := NewMissingValueHandler(discardLogger())
	table := domain.NewTable([]string{"n1"})
	table.Records = append(table.Records,
		domain.Record{"n1": 10.0},
		domain.Record{"n1": 20.0},
		domain.Record{"n1": nil},
	)

	out := handler.Clean(table)
	assert.Equal(t, 15.0, out.Records[2]["n1"])
}

func TestMissingValueHandler_FillsTextWithSentinel(t *testing.T) {
	handler := NewMissingValueHandler(discardLogger())
	table := domain.NewTable([]string{"narrative"})
	table.Records = append(table.Records,
		domain.Record{"narrative": "engine surge"},
		domain.Record{"narrative": nil},
	)

	out := handler.Clean(table)
	assert.Equal(t, MissingTextSentinel, out.Records[1]["narrative"])
	assert.Equal(t, "engine surge", out.Records[0]["narrative"])
}

func TestMissingValueHandler_AllMissingColumn(t *testing.T) {
	handler := NewMissingValueHandler(discardLogger())
	table := domain.NewTable([]string{"remarks"})
	table.Records = append(table.Records,
		domain.Record{"remarks": nil},
		domain.Record{"remarks": nil},
	)

	// No values to infer a type from, so the sentinel applies.
	out := handler.Clean(table)
	for _, rec := range out.Records {
		assert.Equal(t, MissingTextSentinel, rec["remarks"])
	}
}

func TestMissingValueHandler_NumericStringsCountAsNumeric(t *testing.T) {
	handler := NewMissingValueHandler(discardLogger())
	table := domain.NewTable([]string{"egt"})
	table.Records = append(table.Records,
		domain.Record{"egt": "850"},
		domain.Record{"egt": "910"},
		domain.Record{"egt": nil},
	)

	out := handler.Clean(table)
	assert.Equal(t, 880.0, out.Records[2]["egt"])
}

func TestMissingValueHandler_DoesNotMutateInput(t *testing.T) {
	handler := NewMissingValueHandler(discardLogger())
	table := domain.NewTable([]string{"narrative"})
	table.Records = append(table.Records, domain.Record{"narrative": nil})

	out := handler.Clean(table)
	require.NotSame(t, table, out)
	assert.Nil(t, table.Records[0]["narrative"])
}
