package nlp

// Sentiment labels produced by the lexicon scorer. Aviation incident
// narratives skew heavily negative; the lexicon leans on safety vocabulary
// rather than general-purpose affect words.
const (
	SentimentPositive = "POSITIVE"
	SentimentNegative = "NEGATIVE"
	SentimentNeutral  = "NEUTRAL"
)

var negativeLexicon = map[string]float64{
	"failure": 1.0, "failed": 1.0, "fail": 0.9, "malfunction": 1.0,
	"emergency": 1.0, "fire": 1.0, "smoke": 0.9, "warning": 0.7,
	"caution": 0.6, "alert": 0.6, "abnormal": 0.8, "anomaly": 0.8,
	"vibration": 0.6, "surge": 0.7, "stall": 0.8, "flameout": 1.0,
	"shutdown": 0.8, "loss": 0.8, "lost": 0.8, "severe": 0.9,
	"damage": 0.9, "damaged": 0.9, "broken": 0.8, "leak": 0.8,
	"leaking": 0.8, "unable": 0.7, "problem": 0.7, "fault": 0.8,
	"error": 0.7, "danger": 1.0, "dangerous": 1.0, "critical": 0.8,
	"declared": 0.5, "diverted": 0.6, "aborted": 0.8, "rejected": 0.7,
	"inoperative": 0.8, "degraded": 0.7, "excessive": 0.6, "low": 0.4,
	"high": 0.4, "overheat": 0.9, "overheated": 0.9,
}

var positiveLexicon = map[string]float64{
	"normal": 0.8, "normally": 0.8, "safe": 0.9, "safely": 0.9,
	"successful": 0.9, "successfully": 0.9, "routine": 0.8, "stable": 0.7,
	"resolved": 0.8, "corrected": 0.8, "recovered": 0.8, "good": 0.6,
	"smooth": 0.7, "uneventful": 0.9, "nominal": 0.8, "secured": 0.7,
	"completed": 0.6, "operational": 0.6, "restored": 0.8,
}

// SentimentScore holds one scored text.
type SentimentScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ScoreSentiment classifies a text by accumulating lexicon hits. The score is
// the winning side's share of total hit weight; texts with no hits are
// NEUTRAL with a weak 0.5 confidence.
func ScoreSentiment(text string) SentimentScore {
	var pos, neg float64
	for _, tok := range Tokenize(text) {
		if w, ok := positiveLexicon[tok]; ok {
			pos += w
		}
		if w, ok := negativeLexicon[tok]; ok {
			neg += w
		}
	}

	total := pos + neg
	if total == 0 {
		return SentimentScore{Label: SentimentNeutral, Score: 0.5}
	}
	if neg >= pos {
		return SentimentScore{Label: SentimentNegative, Score: neg / total}
	}
	return SentimentScore{Label: SentimentPositive, Score: pos / total}
}
