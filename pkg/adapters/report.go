package adapters

import (
	"github.com/dp-tools/privacy-atlas/pkg/models/api"
	"github.com/dp-tools/privacy-atlas/pkg/models/domain"
)

func MapFindingDomainToApi(f domain.Finding) api.Finding {
	return api.Finding{
		ID:              f.ID,
		Location:        f.Location,
		DataType:        string(f.DataType),
		Classification:  string(f.Classification),
		GDPRCategory:    f.GDPRCategory,
		DetectionMethod: string(f.DetectionMethod),
		RiskLevel:       string(f.RiskLevel),
	}
}

func MapSecurityFindingDomainToApi(f domain.SecurityFinding) api.SecurityFinding {
	refs := make([]string, len(f.ResourceRefs))
	copy(refs, f.ResourceRefs)
	return api.SecurityFinding{
		Name:             f.Name,
		Description:      f.Description,
		Severity:         string(f.Severity),
		Status:           f.Status,
		ResourceRefs:     refs,
		ComplianceImpact: f.ComplianceImpact,
	}
}

func MapRecommendationDomainToApi(r domain.Recommendation) api.Recommendation {
	return api.Recommendation{
		Priority:          string(r.Priority),
		Category:          r.Category,
		Recommendation:    r.Recommendation,
		ComplianceControl: r.ComplianceControl,
		ActionRequired:    r.ActionRequired,
	}
}

func MapReportDomainToApi(r domain.ComplianceReport) api.ComplianceReport {
	res := api.ComplianceReport{
		Timestamp:              r.Timestamp,
		SubscriptionID:         r.Scope.SubscriptionID,
		ScanScope:              r.Scope.String(),
		PersonalDataDiscovered: make([]api.Finding, 0, len(r.Findings)),
		SecurityFindings:       make([]api.SecurityFinding, 0, len(r.SecurityFindings)),
		Recommendations:        make([]api.Recommendation, 0, len(r.Recommendations)),
		ComplianceStatus: api.ComplianceStatus{
			OverallRisk:          string(r.Status.OverallRisk),
			FindingCount:         r.Status.FindingCount,
			SensitiveCount:       r.Status.SensitiveCount,
			SecurityFindingCount: r.Status.SecurityFindingCount,
			RecommendationCount:  r.Status.RecommendationCount,
		},
	}
	for _, f := range r.Findings {
		res.PersonalDataDiscovered = append(res.PersonalDataDiscovered, MapFindingDomainToApi(f))
	}
	for _, f := range r.SecurityFindings {
		res.SecurityFindings = append(res.SecurityFindings, MapSecurityFindingDomainToApi(f))
	}
	for _, rec := range r.Recommendations {
		res.Recommendations = append(res.Recommendations, MapRecommendationDomainToApi(rec))
	}
	return res
}
