package infrastructure

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	require.NotNil(t, m)

	m.PreprocessRuns.Inc()
	m.AnalysesRun.WithLabelValues("tfidf_svm").Add(2)
	m.TechniqueFailures.WithLabelValues("lda").Inc()
	m.RequestDuration.WithLabelValues("/api/analyze", "2xx").Observe(0.05)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.PreprocessRuns))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AnalysesRun.WithLabelValues("tfidf_svm")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TechniqueFailures.WithLabelValues("lda")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, fam := range families {
		names = append(names, fam.GetName())
	}
	assert.Contains(t, names, "asrspulse_preprocess_runs_total")
	assert.Contains(t, names, "asrspulse_http_request_duration_seconds")
}

func TestNewMetrics_FreshRegistriesIndependent(t *testing.T) {
	a := NewMetrics(prometheus.NewRegistry())
	b := NewMetrics(prometheus.NewRegistry())

	a.PreprocessRuns.Inc()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.PreprocessRuns))
}
