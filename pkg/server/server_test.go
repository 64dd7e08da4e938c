package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dp-tools/privacy-atlas/pkg/models/api"
	"github.com/dp-tools/privacy-atlas/pkg/models/domain"
	"github.com/dp-tools/privacy-atlas/pkg/services/patterns"
	"github.com/dp-tools/privacy-atlas/pkg/store/duckdb/history"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRunner struct{ mock.Mock }

func (m *mockRunner) Run(ctx context.Context, scope domain.ScanScope) (domain.ComplianceReport, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(domain.ComplianceReport), args.Error(1)
}

type mockHistory struct{ mock.Mock }

func (m *mockHistory) Add(ctx context.Context, report domain.ComplianceReport) (history.Run, error) {
	args := m.Called(ctx, report)
	return args.Get(0).(history.Run), args.Error(1)
}

func (m *mockHistory) List(ctx context.Context, subscriptionID string) ([]history.Run, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]history.Run), args.Error(1)
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	scope := domain.ScanScope{SubscriptionID: "sub-1"}
	report := domain.ComplianceReport{
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Scope:     scope,
		Status:    domain.ComplianceStatus{OverallRisk: domain.RiskMedium},
	}

	runner := new(mockRunner)
	runner.On("Run", mock.Anything, scope).Return(report, nil)

	store := new(mockHistory)
	store.On("Add", mock.Anything, report).Return(history.Run{ID: "run-1"}, nil)
	store.On("List", mock.Anything, "sub-1").Return([]history.Run{{ID: "run-1", SubscriptionID: "sub-1"}}, nil)

	registry := patterns.Builtin()
	webAPI := NewWebAPI(logger, Config{
		Addr: ":8080",
		Dependencies: Dependencies{
			Runner:   runner,
			History:  store,
			Registry: registry,
		},
	})

	testServer := httptest.NewServer(webAPI.router)
	defer testServer.Close()

	t.Run("RunScan", func(t *testing.T) {
		resp, err := http.Post(testServer.URL+"/api/v1/scans", "application/json",
			strings.NewReader(`{"subscription_id":"sub-1"}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body api.ComplianceReport
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "sub-1", body.SubscriptionID)
		assert.Equal(t, "Medium", body.ComplianceStatus.OverallRisk)
	})

	t.Run("ListScans", func(t *testing.T) {
		resp, err := http.Get(testServer.URL + "/api/v1/scans?subscription=sub-1")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body []api.ScanRun
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Len(t, body, 1)
		assert.Equal(t, "run-1", body[0].ID)
	})

	t.Run("ListPatterns", func(t *testing.T) {
		resp, err := http.Get(testServer.URL + "/api/v1/patterns")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body []api.PatternRule
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Len(t, body, len(registry.Rules()))
	})

	runner.AssertExpectations(t)
	store.AssertExpectations(t)
}
