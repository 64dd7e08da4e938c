package azure

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/security/armsecurity"

	"github.com/dp-tools/privacy-atlas/pkg/models/domain"
)

// SecurityFeed implements secfeed.SecurityFeed on top of Microsoft
// Defender for Cloud alerts and assessments.
type SecurityFeed struct {
	alerts      *armsecurity.AlertsClient
	assessments *armsecurity.AssessmentsClient
}

func NewSecurityFeed(subscriptionID string, cred azcore.TokenCredential) (*SecurityFeed, error) {
	alerts, err := armsecurity.NewAlertsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create alerts client: %w", err)
	}
	assessments, err := armsecurity.NewAssessmentsClient(cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create assessments client: %w", err)
	}
	return &SecurityFeed{alerts: alerts, assessments: assessments}, nil
}

func (f *SecurityFeed) ListAlerts(ctx context.Context, subscriptionID string) ([]domain.SecurityFinding, error) {
	var out []domain.SecurityFinding
	pager := f.alerts.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list security alerts: %w", err)
		}
		for _, alert := range page.Value {
			if alert == nil || alert.Properties == nil {
				continue
			}
			props := alert.Properties
			finding := domain.SecurityFinding{
				Name:             deref(props.AlertDisplayName),
				Description:      deref(props.Description),
				ComplianceImpact: "May indicate unauthorized access to personal data",
			}
			if props.Severity != nil {
				finding.Severity = normalizeSeverity(string(*props.Severity))
			}
			if props.Status != nil {
				finding.Status = string(*props.Status)
			}
			if id := deref(alert.ID); id != "" {
				finding.ResourceRefs = append(finding.ResourceRefs, id)
			}
			out = append(out, finding)
		}
	}
	return out, nil
}

func (f *SecurityFeed) ListAssessments(ctx context.Context, subscriptionID string) ([]domain.SecurityFinding, error) {
	scope := "/subscriptions/" + subscriptionID

	var out []domain.SecurityFinding
	pager := f.assessments.NewListPager(scope, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list security assessments: %w", err)
		}
		for _, assessment := range page.Value {
			if assessment == nil || assessment.Properties == nil {
				continue
			}
			props := assessment.Properties
			finding := domain.SecurityFinding{
				Name:             deref(props.DisplayName),
				ComplianceImpact: "Assessment relevant to data protection posture",
			}
			if props.Status != nil {
				finding.Status = string(derefCode(props.Status.Code))
			}
			if props.Metadata != nil {
				finding.Description = deref(props.Metadata.Description)
				if props.Metadata.Severity != nil {
					finding.Severity = normalizeSeverity(string(*props.Metadata.Severity))
				}
			}
			if id := deref(assessment.ID); id != "" {
				finding.ResourceRefs = append(finding.ResourceRefs, id)
			}
			out = append(out, finding)
		}
	}
	return out, nil
}

func derefCode(code *armsecurity.AssessmentStatusCode) armsecurity.AssessmentStatusCode {
	if code == nil {
		return ""
	}
	return *code
}

func normalizeSeverity(s string) domain.SecuritySeverity {
	switch strings.ToLower(s) {
	case "high":
		return domain.SecuritySeverityHigh
	case "medium":
		return domain.SecuritySeverityMedium
	default:
		return domain.SecuritySeverityLow
	}
}
