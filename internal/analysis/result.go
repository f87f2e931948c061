package analysis

import (
	"encoding/json"

	"github.com/haideralmesaody/asrspulse/internal/nlp"
)

// Kind classifies what capability a technique provides.
type Kind string

const (
	KindClassification    Kind = "classification"
	KindTopicModeling     Kind = "topic_modeling"
	KindKeywordExtraction Kind = "keyword_extraction"
	KindSentiment         Kind = "sentiment"
)

// Result is the tagged union every technique adapter produces: either a
// technique-specific payload or an error reason, never both. A failed
// technique never aborts its siblings; the orchestrator collects error
// variants alongside successful ones.
type Result struct {
	Technique string
	Kind      Kind
	Err       string
	Payload   interface{}
}

// Failed reports whether this is the error variant.
func (r Result) Failed() bool {
	return r.Err != ""
}

// MarshalJSON renders either the payload object or {"error": reason},
// matching the wire contract consumed by the report endpoints.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Failed() {
		return json.Marshal(map[string]string{"error": r.Err})
	}
	return json.Marshal(r.Payload)
}

// ErrorResult builds the error variant for a technique.
func ErrorResult(technique string, kind Kind, err error) Result {
	return Result{Technique: technique, Kind: kind, Err: err.Error()}
}

// FeatureWeight pairs a vocabulary term with its absolute model weight.
type FeatureWeight struct {
	Feature string  `json:"feature"`
	Weight  float64 `json:"weight"`
}

// PredictionSample is one literal test example for spot inspection.
type PredictionSample struct {
	Text      string `json:"text"`
	TrueLabel string `json:"true_label"`
	Predicted string `json:"predicted_label"`
}

// DataInfo describes how the data was split for a classification run.
type DataInfo struct {
	TrainSize         int            `json:"train_size"`
	TestSize          int            `json:"test_size"`
	UniqueLabels      int            `json:"unique_labels"`
	LabelDistribution map[string]int `json:"label_distribution"`
}

// ClassificationResult is the payload of a classification technique.
type ClassificationResult struct {
	ModelName       string                      `json:"model_name"`
	Accuracy        float64                     `json:"accuracy"`
	Report          map[string]nlp.LabelMetrics `json:"classification_report"`
	ConfusionLabels []string                    `json:"confusion_labels"`
	ConfusionMatrix [][]int                     `json:"confusion_matrix"`
	TopFeatures     []FeatureWeight             `json:"top_features"`
	Predictions     []PredictionSample          `json:"predictions"`
	DataInfo        DataInfo                    `json:"data_info"`
	DegenerateEval  bool                        `json:"degenerate_eval,omitempty"`
}

// TopicModelingResult is the payload of a topic modeling technique.
type TopicModelingResult struct {
	ModelName  string      `json:"model_name"`
	NumTopics  int         `json:"num_topics"`
	Topics     []nlp.Topic `json:"topics"`
	Perplexity float64     `json:"perplexity"`
}

// KeywordCount pairs a keyword with its cross-document frequency.
type KeywordCount struct {
	Keyword   string `json:"keyword"`
	Frequency int    `json:"frequency"`
}

// KeywordScore pairs a keyword with its mean relevance score.
type KeywordScore struct {
	Keyword string  `json:"keyword"`
	Score   float64 `json:"score"`
}

// KeywordExtractionResult is the payload of a keyword extraction technique.
type KeywordExtractionResult struct {
	ModelName      string         `json:"model_name"`
	TopByFrequency []KeywordCount `json:"top_keywords_by_frequency"`
	TopByScore     []KeywordScore `json:"top_keywords_by_score"`
	TotalExtracted int            `json:"total_keywords_extracted"`
	UniqueKeywords int            `json:"unique_keywords"`
}

// SentimentResult is the payload of a sentiment technique.
type SentimentResult struct {
	ModelName     string               `json:"model_name"`
	Distribution  map[string]int       `json:"sentiment_distribution"`
	AvgConfidence float64              `json:"average_confidence"`
	TotalAnalyzed int                  `json:"total_analyzed"`
	Samples       []nlp.SentimentScore `json:"sample_results"`
}
