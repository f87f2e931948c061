package nlp

import "sort"

// Accuracy is the share of predictions matching the truth. Empty input yields 0.
func Accuracy(yTrue, yPred []string) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue))
}

// LabelMetrics holds per-label classification quality figures. Undefined
// ratios (zero denominators) are reported as 0.
type LabelMetrics struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1_score"`
	Support   int     `json:"support"`
}

// ConfusionMatrix counts (true, predicted) pairs over the union of labels in
// both slices, sorted alphabetically.
func ConfusionMatrix(yTrue, yPred []string) (labels []string, matrix [][]int) {
	labels = unionSorted(yTrue, yPred)
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}

	matrix = make([][]int, len(labels))
	for i := range matrix {
		matrix[i] = make([]int, len(labels))
	}
	for i := range yTrue {
		matrix[index[yTrue[i]]][index[yPred[i]]]++
	}
	return labels, matrix
}

// ClassificationReport computes precision, recall, F1 and support per label.
func ClassificationReport(yTrue, yPred []string) map[string]LabelMetrics {
	labels, matrix := ConfusionMatrix(yTrue, yPred)

	report := make(map[string]LabelMetrics, len(labels))
	for i, label := range labels {
		tp := matrix[i][i]
		var predicted, actual int
		for j := range labels {
			predicted += matrix[j][i]
			actual += matrix[i][j]
		}

		var precision, recall, f1 float64
		if predicted > 0 {
			precision = float64(tp) / float64(predicted)
		}
		if actual > 0 {
			recall = float64(tp) / float64(actual)
		}
		if precision+recall > 0 {
			f1 = 2 * precision * recall / (precision + recall)
		}

		report[label] = LabelMetrics{
			Precision: precision,
			Recall:    recall,
			F1:        f1,
			Support:   actual,
		}
	}
	return report
}

func unionSorted(a, b []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range a {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range b {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
