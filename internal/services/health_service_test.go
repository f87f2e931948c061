package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHealthService(t *testing.T) (*HealthService, *SessionStore) {
	t.Helper()
	service, store := newTestService(t)
	return NewHealthService("v1.0.0-test", "2026-01-01", t.TempDir(), service, store, discardLogger()), store
}

func TestHealthService_HealthCheck(t *testing.T) {
	hs, _ := newTestHealthService(t)

	status := hs.HealthCheck(context.Background())
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "v1.0.0-test", status.Version)
	assert.WithinDuration(t, time.Now(), status.Timestamp, time.Second)
}

func TestHealthService_ReadinessCheck(t *testing.T) {
	hs, _ := newTestHealthService(t)

	status := hs.ReadinessCheck(context.Background())
	assert.Equal(t, "ready", status.Status)

	for _, name := range []string{"analysis", "sessions", "storage"} {
		service, ok := status.Services[name].(ServiceHealth)
		require.True(t, ok, "missing service %q", name)
		assert.Equal(t, "ready", service.Status, name)
	}
}

func TestHealthService_ReadinessMissingUploadsDir(t *testing.T) {
	service, store := newTestService(t)
	hs := NewHealthService("v1", "", filepath.Join(t.TempDir(), "does-not-exist"), service, store, discardLogger())

	status := hs.ReadinessCheck(context.Background())
	assert.Equal(t, "not_ready", status.Status)

	storage := status.Services["storage"].(ServiceHealth)
	assert.Equal(t, "not_ready", storage.Status)
}

func TestHealthService_ReadinessNilDependencies(t *testing.T) {
	hs := NewHealthService("v1", "", t.TempDir(), nil, nil, discardLogger())

	status := hs.ReadinessCheck(context.Background())
	assert.Equal(t, "not_ready", status.Status)
}

func TestHealthService_LivenessCheck(t *testing.T) {
	hs, _ := newTestHealthService(t)

	status := hs.LivenessCheck(context.Background())
	assert.Equal(t, "alive", status.Status)
	assert.Contains(t, status.Runtime, "go_version")
	assert.Contains(t, status.Runtime, "goroutines")
}

func TestHealthService_Version(t *testing.T) {
	hs, _ := newTestHealthService(t)

	version := hs.Version()
	assert.Equal(t, "v1.0.0-test", version["version"])
	assert.Equal(t, "2026-01-01", version["build_time"])
	assert.Contains(t, version, "go_version")
}

func TestHealthService_SystemStats(t *testing.T) {
	hs, store := newTestHealthService(t)
	store.Put(&Session{})

	stats, err := hs.SystemStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ActiveSessions)
	assert.Zero(t, stats.TotalFiles)
	assert.GreaterOrEqual(t, stats.UptimeSeconds, 0.0)
}

func TestHealthService_GetDetailedHealth(t *testing.T) {
	hs, _ := newTestHealthService(t)

	detail := hs.GetDetailedHealth(context.Background())
	assert.Contains(t, detail, "health")
	assert.Contains(t, detail, "readiness")
	assert.Contains(t, detail, "liveness")
	assert.Contains(t, detail, "stats")
}
