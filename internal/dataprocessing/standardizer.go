package dataprocessing

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/haideralmesaody/asrspulse/pkg/contracts/domain"
)

// Rule maps a canonical bucket name to the sub-patterns that select it.
type Rule struct {
	Bucket   string
	Patterns []string
}

// RuleTable is an ordered list of rules. Order is significant: the first rule
// whose any pattern is a substring of the value wins, so rule tables must
// never be stored in a map.
type RuleTable []Rule

// RuleStyle controls how a matched rule is rendered into the derived value.
type RuleStyle int

const (
	// StyleBucketPattern emits "bucket_pattern", e.g. "boeing_b737".
	StyleBucketPattern RuleStyle = iota
	// StyleFlat emits the matched pattern verbatim, e.g. "takeoff".
	StyleFlat
)

// AircraftTypeRules bucket raw aircraft type strings by manufacturer model
// codes.
var AircraftTypeRules = RuleTable{
	{Bucket: "boeing", Patterns: []string{"b737", "b747", "b757", "b767", "b777", "b787"}},
	{Bucket: "airbus", Patterns: []string{"a319", "a320", "a321", "a330", "a340", "a350", "a380"}},
	{Bucket: "embraer", Patterns: []string{"e170", "e175", "e190", "e195"}},
	{Bucket: "bombardier", Patterns: []string{"crj", "dash"}},
	{Bucket: "other", Patterns: []string{"md80", "md90", "dc9", "dc10"}},
}

// FlightPhaseRules bucket raw flight phase strings into the canonical phase
// list.
var FlightPhaseRules = RuleTable{
	{Bucket: "phase", Patterns: []string{
		"taxi", "takeoff", "climb", "cruise", "descent", "approach", "landing",
		"ground", "parked", "maintenance",
	}},
}

// CategoricalStandardizer maps free-text categorical values into canonical
// buckets via ordered substring rules.
type CategoricalStandardizer struct {
	logger *slog.Logger
}

// NewCategoricalStandardizer creates a standardizer.
func NewCategoricalStandardizer(logger *slog.Logger) *CategoricalStandardizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoricalStandardizer{
		logger: logger.With(slog.String("component", "categorical_standardizer")),
	}
}

// Standardize adds a "<column>_standardized" column derived from the source
// column through the rule table. Values that match no rule map to "other".
// A missing source column is a logged no-op returning the input unchanged.
func (s *CategoricalStandardizer) Standardize(table *domain.Table, column string, rules RuleTable, style RuleStyle) *domain.Table {
	if !table.HasColumn(column) {
		s.logger.Warn("column not found, skipping standardization", slog.String("column", column))
		return table
	}

	derived := column + "_standardized"
	out := table.Clone()
	out.AddColumn(derived)

	for _, rec := range out.Records {
		raw := domain.AsString(rec[column])
		if raw == "" {
			raw = "Unknown"
		}
		rec[derived] = StandardizeValue(raw, rules, style)
	}

	s.logger.Info("standardized categorical column",
		slog.String("column", column),
		slog.String("derived", derived))

	return out
}

// StandardizeValue applies the rule table to a single value. Total: every
// input maps to either a canonical label or "other".
func StandardizeValue(value string, rules RuleTable, style RuleStyle) string {
	value = strings.TrimSpace(strings.ToLower(value))

	for _, rule := range rules {
		for _, pattern := range rule.Patterns {
			if strings.Contains(value, pattern) {
				if style == StyleFlat {
					return pattern
				}
				return fmt.Sprintf("%s_%s", rule.Bucket, pattern)
			}
		}
	}

	return "other"
}
