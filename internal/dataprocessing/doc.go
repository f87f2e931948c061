// Package dataprocessing provides the preprocessing pipeline for aviation
// incident report tables. It consolidates loading, filtering, cleaning, and
// feature extraction into a cohesive package that takes a raw CSV or XLSX
// upload to an analysis-ready table.
//
// # Architecture
//
// The pipeline applies its stages in a fixed order:
//
//	1. Filter: keeps rows whose text columns mention motor-related keywords
//	2. MissingValueHandler: median imputation for numeric columns, a sentinel
//	   for categorical ones
//	3. Standardizer: maps free-form categorical values onto canonical tokens
//	4. DateFeatureExtractor: derives year, month, and day-of-week columns
//	5. TextNormalizer: lowercases and strips report narratives for modeling
//
// # Usage
//
// Load a table and run the full pipeline:
//
//	table, err := dataprocessing.LoadTable("uploads/reports.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	processed, stats, err := pipeline.Run(table, nil)
//
// Individual stages are exported and usable on their own.
//
// # Error Handling
//
// Stages report which column or row caused a failure. A filter pass that
// keeps zero rows returns ErrNoRelevantReports together with the computed
// statistics so callers can explain the rejection.
//
// # Testing
//
// The package includes table-driven tests for every stage. Use small inline
// fixtures when adding new functionality.
package dataprocessing
