package analysis

import "strings"

// labelRule maps a synthetic category to the keywords that select it. The
// table is ordered and first-match-wins; the trailing "other" category has no
// keywords and acts as the default.
type labelRule struct {
	category string
	keywords []string
}

var labelRules = []labelRule{
	{category: "engine_failure", keywords: []string{"failure", "malfunction", "shutdown", "flameout"}},
	{category: "engine_warning", keywords: []string{"warning", "caution", "alert", "indication"}},
	{category: "maintenance", keywords: []string{"maintenance", "inspection", "repair", "replace"}},
	{category: "performance", keywords: []string{"performance", "power", "thrust", "rpm", "egt"}},
	{category: "other"},
}

// SynthesizeLabels derives a categorical label per text when no ground-truth
// target column exists. Each text gets the first category whose keyword list
// has a substring match; texts matching nothing get "other". The result is a
// parallel array of the same length.
func SynthesizeLabels(texts []string) []string {
	labels := make([]string, len(texts))
	for i, text := range texts {
		labels[i] = synthesizeLabel(strings.ToLower(text))
	}
	return labels
}

func synthesizeLabel(lower string) string {
	for _, rule := range labelRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.category
			}
		}
	}
	return "other"
}

// SyntheticCategories lists the categories SynthesizeLabels can produce, in
// rule order.
func SyntheticCategories() []string {
	out := make([]string, len(labelRules))
	for i, rule := range labelRules {
		out[i] = rule.category
	}
	return out
}
