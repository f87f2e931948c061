package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"github.com/haideralmesaody/asrspulse/internal/dataprocessing"
	"github.com/haideralmesaody/asrspulse/pkg/contracts/domain"
)

func main() {
	inPath := flag.String("in", "", "input report file (.csv, .txt or .xlsx)")
	outPath := flag.String("out", "", "output CSV file (defaults to <in>_processed.csv)")
	statsPath := flag.String("stats", "", "optional JSON file for preprocessing stats")
	textCols := flag.String("text-columns", "", "comma-separated text columns to normalize (auto-detected when empty)")
	level := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      parseLevel(*level),
		TimeFormat: time.Kitchen,
	}))

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "usage: preprocess -in <file> [-out <file>] [-stats <file>]")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if *outPath == "" {
		ext := filepath.Ext(*inPath)
		*outPath = strings.TrimSuffix(*inPath, ext) + "_processed.csv"
	}

	logger.Info("Loading incident reports", slog.String("path", *inPath))
	table, err := dataprocessing.LoadTable(*inPath)
	if err != nil {
		logger.Error("Failed to load input file", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Loaded reports",
		slog.Int("rows", table.Len()),
		slog.Int("columns", len(table.Columns)))

	var columns []string
	if *textCols != "" {
		for _, col := range strings.Split(*textCols, ",") {
			if trimmed := strings.TrimSpace(col); trimmed != "" {
				columns = append(columns, trimmed)
			}
		}
	}

	pipeline := dataprocessing.NewPipeline(logger)
	processed, stats, err := pipeline.Run(table, columns)
	if err != nil {
		logger.Error("Preprocessing failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Preprocessing complete",
		slog.Int("original", stats.OriginalCount),
		slog.Int("filtered", stats.FilteredCount),
		slog.Int("final", stats.FinalCount),
		slog.Float64("filter_ratio", stats.FilterRatio))

	if err := writeCSV(*outPath, processed); err != nil {
		logger.Error("Failed to write output", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Wrote processed reports", slog.String("path", *outPath))

	if *statsPath != "" {
		if err := writeStats(*statsPath, stats); err != nil {
			logger.Error("Failed to write stats", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("Wrote stats", slog.String("path", *statsPath))
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func writeCSV(path string, table *domain.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(table.Columns); err != nil {
		return err
	}
	row := make([]string, len(table.Columns))
	for _, rec := range table.Records {
		for i, col := range table.Columns {
			row[i] = domain.AsString(rec[col])
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeStats(path string, stats *domain.Stats) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
