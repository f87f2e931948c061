package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/haideralmesaody/asrspulse/pkg/contracts/domain"
)

// LoadTable reads an ASRS report file into a table. CSV and TXT files are
// parsed as comma-separated values; XLSX files are read from their first
// sheet. The first row is the header; empty cells become missing values.
func LoadTable(path string) (*domain.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return loadCSV(path)
	case ".xlsx":
		return loadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
}

func loadCSV(path string) (*domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // ragged rows are tolerated
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	return rowsToTable(path, rows)
}

func loadXLSX(path string) (*domain.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in %s", filepath.Base(path))
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return rowsToTable(path, rows)
}

func rowsToTable(path string, rows [][]string) (*domain.Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("file %s is empty", filepath.Base(path))
	}

	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = strings.TrimSpace(name)
	}

	table := domain.NewTable(header)
	for _, row := range rows[1:] {
		rec := make(domain.Record, len(header))
		for i, col := range header {
			if i < len(row) {
				cell := strings.TrimSpace(row[i])
				if cell != "" {
					rec[col] = cell
					continue
				}
			}
			rec[col] = nil
		}
		table.Records = append(table.Records, rec)
	}

	slog.Info("loaded report table",
		slog.String("file", filepath.Base(path)),
		slog.Int("rows", table.Len()),
		slog.Int("columns", len(table.Columns)))

	return table, nil
}
