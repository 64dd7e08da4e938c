package report

import (
	"context"

	"github.com/dp-tools/privacy-atlas/pkg/models/domain"
	"github.com/dp-tools/privacy-atlas/pkg/services/recommend"
	"github.com/rs/zerolog"
)

// ObjectScanner produces personal-data findings for a scope.
type ObjectScanner interface {
	Scan(ctx context.Context, scope domain.ScanScope) ([]domain.Finding, error)
}

// SecurityMerger produces the relevant external security findings.
type SecurityMerger interface {
	FetchRelevant(ctx context.Context, subscriptionID string) []domain.SecurityFinding
}

// Runner executes one full compliance scan: storage discovery and the
// security feed run independently, then the results are joined into
// recommendations and a single report.
type Runner struct {
	scanner ObjectScanner
	merger  SecurityMerger
}

func NewRunner(scanner ObjectScanner, merger SecurityMerger) *Runner {
	return &Runner{scanner: scanner, merger: merger}
}

// Run produces the compliance report for the scope. Only a total
// storage enumeration failure is an error; degraded sub-scans surface
// as reduced counts plus log lines.
func (r *Runner) Run(ctx context.Context, scope domain.ScanScope) (domain.ComplianceReport, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().Str("scope", scope.String()).Msg("starting compliance scan")

	type feedResult struct {
		findings []domain.SecurityFinding
	}
	feedDone := make(chan feedResult, 1)
	go func() {
		feedDone <- feedResult{findings: r.merger.FetchRelevant(ctx, scope.SubscriptionID)}
	}()

	findings, err := r.scanner.Scan(ctx, scope)
	if err != nil {
		<-feedDone
		return domain.ComplianceReport{}, err
	}
	securityFindings := (<-feedDone).findings

	recommendations := recommend.Recommend(findings, securityFindings)
	result := Assemble(scope, findings, securityFindings, recommendations)

	logger.Info().
		Int("findings", result.Status.FindingCount).
		Int("security_findings", result.Status.SecurityFindingCount).
		Int("recommendations", result.Status.RecommendationCount).
		Str("overall_risk", string(result.Status.OverallRisk)).
		Msg("compliance scan finished")

	return result, nil
}
