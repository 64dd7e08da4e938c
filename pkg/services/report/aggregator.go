package report

import (
	"time"

	"github.com/dp-tools/privacy-atlas/pkg/models/domain"
)

// Assemble builds the write-once compliance report for a single scan
// run. Overall risk is High exactly when at least one finding is
// special-category data, Medium otherwise.
func Assemble(
	scope domain.ScanScope,
	findings []domain.Finding,
	securityFindings []domain.SecurityFinding,
	recommendations []domain.Recommendation,
) domain.ComplianceReport {
	sensitive := 0
	for _, f := range findings {
		if f.Classification == domain.ClassificationSensitive {
			sensitive++
		}
	}

	overall := domain.RiskMedium
	if sensitive > 0 {
		overall = domain.RiskHigh
	}

	return domain.ComplianceReport{
		Timestamp:        time.Now().UTC(),
		Scope:            scope,
		Findings:         findings,
		SecurityFindings: securityFindings,
		Recommendations:  recommendations,
		Status: domain.ComplianceStatus{
			OverallRisk:          overall,
			FindingCount:         len(findings),
			SensitiveCount:       sensitive,
			SecurityFindingCount: len(securityFindings),
			RecommendationCount:  len(recommendations),
		},
	}
}
