package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/impact-dashboard/internal/cache"
)

func newHealthDeps(t *testing.T, mr *miniredis.Miniredis) (sqlmock.Sqlmock, *HealthChecker) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	client, err := cache.NewClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return mock, NewHealthChecker(db, cache.NewMetricsCache(client, 0))
}

func TestHealthAllUp(t *testing.T) {
	mock, hc := newHealthDeps(t, miniredis.RunT(t))
	mock.ExpectPing()

	rec := httptest.NewRecorder()
	hc.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "up", status.Checks["database"].Status)
	assert.Equal(t, "up", status.Checks["redis"].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadinessDatabaseDown(t *testing.T) {
	mock, hc := newHealthDeps(t, miniredis.RunT(t))
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	rec := httptest.NewRecorder()
	hc.HandleReadiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body struct {
		Ready  bool   `json:"ready"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Ready)
	assert.Equal(t, "unhealthy", body.Status)
}

func TestReadinessCacheDownIsDegraded(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	mock, hc := newHealthDeps(t, mr)
	mock.ExpectPing()
	mr.Close()

	rec := httptest.NewRecorder()
	hc.HandleReadiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
}

func TestLiveness(t *testing.T) {
	hc := NewHealthChecker(nil, nil)
	rec := httptest.NewRecorder()
	hc.HandleLiveness(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"alive"`)
}

func TestDetermineOverallStatus(t *testing.T) {
	tests := []struct {
		name   string
		checks map[string]ComponentCheck
		want   string
	}{
		{"nothing configured", map[string]ComponentCheck{
			"database": {Status: "down", Message: notConfigured},
			"redis":    {Status: "down", Message: notConfigured},
		}, "healthy"},
		{"database down", map[string]ComponentCheck{
			"database": {Status: "down", Message: "ping failed: eof"},
			"redis":    {Status: "up"},
		}, "unhealthy"},
		{"slow database", map[string]ComponentCheck{
			"database": {Status: "degraded"},
			"redis":    {Status: "up"},
		}, "degraded"},
		{"cache down", map[string]ComponentCheck{
			"database": {Status: "up"},
			"redis":    {Status: "down", Message: "ping failed: eof"},
		}, "degraded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, determineOverallStatus(tt.checks))
		})
	}
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "5s", formatUptime(5e9))
	assert.Equal(t, "1m 5s", formatUptime(65e9))
}
