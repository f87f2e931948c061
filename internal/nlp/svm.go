package nlp

import (
	"math/rand"
	"sort"
)

// LinearSVM is a one-vs-rest linear classifier trained with hinge-loss SGD.
// It exposes per-feature weights so callers can inspect feature importance.
type LinearSVM struct {
	LearningRate float64
	Lambda       float64
	Epochs       int
	Seed         int64

	classes []string
	weights [][]float64 // one weight vector per class
	bias    []float64
}

// NewLinearSVM creates a classifier with the default hyperparameters.
func NewLinearSVM(seed int64) *LinearSVM {
	return &LinearSVM{
		LearningRate: 0.01,
		Lambda:       0.0001,
		Epochs:       50,
		Seed:         seed,
	}
}

// Fit trains one binary hinge-loss model per distinct label.
func (m *LinearSVM) Fit(x [][]float64, labels []string) {
	m.classes = distinctSorted(labels)

	dims := 0
	if len(x) > 0 {
		dims = len(x[0])
	}

	m.weights = make([][]float64, len(m.classes))
	m.bias = make([]float64, len(m.classes))
	rng := rand.New(rand.NewSource(m.Seed))

	for c, class := range m.classes {
		y := make([]float64, len(labels))
		for i, label := range labels {
			if label == class {
				y[i] = 1
			} else {
				y[i] = -1
			}
		}
		m.weights[c], m.bias[c] = m.trainBinary(x, y, dims, rng)
	}
}

func (m *LinearSVM) trainBinary(x [][]float64, y []float64, dims int, rng *rand.Rand) ([]float64, float64) {
	w := make([]float64, dims)
	b := 0.0

	order := make([]int, len(x))
	for i := range order {
		order[i] = i
	}

	for epoch := 0; epoch < m.Epochs; epoch++ {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		for _, i := range order {
			margin := y[i] * (dot(w, x[i]) + b)
			if margin < 1 {
				for d := range w {
					w[d] += m.LearningRate * (y[i]*x[i][d] - m.Lambda*w[d])
				}
				b += m.LearningRate * y[i]
			} else {
				for d := range w {
					w[d] -= m.LearningRate * m.Lambda * w[d]
				}
			}
		}
	}
	return w, b
}

// Predict returns the class with the highest decision value for each sample.
func (m *LinearSVM) Predict(x [][]float64) []string {
	out := make([]string, len(x))
	for i, vec := range x {
		best, bestScore := 0, dot(m.weights[0], vec)+m.bias[0]
		for c := 1; c < len(m.classes); c++ {
			if score := dot(m.weights[c], vec) + m.bias[c]; score > bestScore {
				best, bestScore = c, score
			}
		}
		out[i] = m.classes[best]
	}
	return out
}

// Classes returns the fitted class labels in sorted order.
func (m *LinearSVM) Classes() []string {
	return m.classes
}

// FeatureWeights returns the mean absolute weight per feature across all
// class models, a linear-model importance signal.
func (m *LinearSVM) FeatureWeights() []float64 {
	if len(m.weights) == 0 {
		return nil
	}
	dims := len(m.weights[0])
	out := make([]float64, dims)
	for _, w := range m.weights {
		for d, v := range w {
			if v < 0 {
				v = -v
			}
			out[d] += v
		}
	}
	for d := range out {
		out[d] /= float64(len(m.weights))
	}
	return out
}

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func distinctSorted(labels []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	sort.Strings(out)
	return out
}
