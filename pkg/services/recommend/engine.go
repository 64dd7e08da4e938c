package recommend

import "github.com/dp-tools/privacy-atlas/pkg/models/domain"

// Recommend derives remediation actions from the aggregated findings of
// one scan run. Rules are independent and evaluated in declaration
// order; nothing is merged or deduplicated, because the scanner is
// stateless across invocations.
func Recommend(findings []domain.Finding, securityFindings []domain.SecurityFinding) []domain.Recommendation {
	var recommendations []domain.Recommendation

	if len(findings) > 0 {
		recommendations = append(recommendations, domain.Recommendation{
			Priority:          domain.PriorityHigh,
			Category:          "Data Protection",
			Recommendation:    "Apply data classification labels and enable encryption for storage containing personal data",
			ComplianceControl: "GDPR Article 32 - Security of processing",
			ActionRequired:    "Enable storage service encryption and apply sensitivity labels to identified locations",
		})
	}

	if hasSensitive(findings) {
		recommendations = append(recommendations, domain.Recommendation{
			Priority:          domain.PriorityCritical,
			Category:          "Special Category Data",
			Recommendation:    "Apply heightened protection to special-category personal data",
			ComplianceControl: "GDPR Article 9 - Processing of special categories of personal data",
			ActionRequired:    "Restrict access, enable customer-managed keys and review the lawful basis for processing",
		})
	}

	if hasHighSeverity(securityFindings) {
		recommendations = append(recommendations, domain.Recommendation{
			Priority:          domain.PriorityCritical,
			Category:          "Security Posture",
			Recommendation:    "Remediate high-severity security findings immediately",
			ComplianceControl: "GDPR Article 32 - Security of processing",
			ActionRequired:    "Triage the reported alerts and assessments and apply the suggested remediations",
		})
	}

	return recommendations
}

func hasSensitive(findings []domain.Finding) bool {
	for _, f := range findings {
		if f.Classification == domain.ClassificationSensitive {
			return true
		}
	}
	return false
}

func hasHighSeverity(findings []domain.SecurityFinding) bool {
	for _, f := range findings {
		if f.Severity == domain.SecuritySeverityHigh {
			return true
		}
	}
	return false
}
