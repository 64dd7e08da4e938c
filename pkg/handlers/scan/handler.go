package scan

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dp-tools/privacy-atlas/pkg/adapters"
	"github.com/dp-tools/privacy-atlas/pkg/models/api"
	"github.com/dp-tools/privacy-atlas/pkg/models/domain"
	"github.com/dp-tools/privacy-atlas/pkg/services/patterns"
	"github.com/dp-tools/privacy-atlas/pkg/store/duckdb/history"
	"github.com/rs/zerolog"
)

// Runner executes one compliance scan for a scope.
type Runner interface {
	Run(ctx context.Context, scope domain.ScanScope) (domain.ComplianceReport, error)
}

type Handler struct {
	runner   Runner
	history  history.Store
	registry *patterns.Registry
}

func NewHandler(runner Runner, historyStore history.Store, registry *patterns.Registry) *Handler {
	return &Handler{
		runner:   runner,
		history:  historyStore,
		registry: registry,
	}
}

// RunScan starts a scan for the requested scope and returns the full
// report. The run summary is recorded in the scan history.
func (h *Handler) RunScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.SubscriptionID == "" {
		http.Error(w, "subscription_id is required", http.StatusBadRequest)
		return
	}

	scope := domain.ScanScope{
		SubscriptionID: req.SubscriptionID,
		ResourceGroup:  req.ResourceGroup,
	}

	report, err := h.runner.Run(ctx, scope)
	if err != nil {
		logger.Error().Err(err).Str("scope", scope.String()).Msg("scan failed")
		http.Error(w, "scan failed", http.StatusBadGateway)
		return
	}

	if _, err := h.history.Add(ctx, report); err != nil {
		// History is best-effort; the report is still returned.
		logger.Error().Err(err).Msg("failed to record scan run")
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(adapters.MapReportDomainToApi(report)); err != nil {
		logger.Error().Err(err).Msg("failed to encode report")
	}
}

// ListScans returns the persisted scan history for a subscription.
func (h *Handler) ListScans(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	subscription := r.URL.Query().Get("subscription")
	if subscription == "" {
		http.Error(w, "subscription query parameter is required", http.StatusBadRequest)
		return
	}

	runs, err := h.history.List(ctx, subscription)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list scan history")
		http.Error(w, "failed to list scan history", http.StatusInternalServerError)
		return
	}

	response := make([]api.ScanRun, 0, len(runs))
	for _, run := range runs {
		response = append(response, api.ScanRun{
			ID:                   run.ID,
			SubscriptionID:       run.SubscriptionID,
			ScanScope:            run.ScanScope,
			OverallRisk:          run.OverallRisk,
			FindingCount:         run.FindingCount,
			SensitiveCount:       run.SensitiveCount,
			SecurityFindingCount: run.SecurityFindingCount,
			RecommendationCount:  run.RecommendationCount,
			CreatedAt:            run.CreatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode scan history")
	}
}

// ListPatterns returns the active detection rules.
func (h *Handler) ListPatterns(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	rules := h.registry.Rules()
	response := make([]api.PatternRule, 0, len(rules))
	for _, rule := range rules {
		response = append(response, api.PatternRule{
			DataType:       string(rule.DataType),
			Pattern:        rule.Matcher.String(),
			Classification: string(rule.Classification),
			GDPRCategory:   rule.GDPRCategory,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode pattern rules")
	}
}
