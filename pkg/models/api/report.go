package api

import "time"

type Finding struct {
	ID              string `json:"id"`
	Location        string `json:"location"`
	DataType        string `json:"data_type"`
	Classification  string `json:"classification"`
	GDPRCategory    string `json:"gdpr_category"`
	DetectionMethod string `json:"detection_method"`
	RiskLevel       string `json:"risk_level"`
}

type SecurityFinding struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Severity         string   `json:"severity"`
	Status           string   `json:"status"`
	ResourceRefs     []string `json:"resource_refs,omitempty"`
	ComplianceImpact string   `json:"compliance_impact"`
}

type Recommendation struct {
	Priority          string `json:"priority"`
	Category          string `json:"category"`
	Recommendation    string `json:"recommendation"`
	ComplianceControl string `json:"compliance_control"`
	ActionRequired    string `json:"action_required"`
}

type ComplianceStatus struct {
	OverallRisk          string `json:"overall_risk"`
	FindingCount         int    `json:"finding_count"`
	SensitiveCount       int    `json:"sensitive_count"`
	SecurityFindingCount int    `json:"security_finding_count"`
	RecommendationCount  int    `json:"recommendation_count"`
}

type ComplianceReport struct {
	Timestamp              time.Time         `json:"timestamp"`
	SubscriptionID         string            `json:"subscription_id"`
	ScanScope              string            `json:"scan_scope"`
	PersonalDataDiscovered []Finding         `json:"personal_data_discovered"`
	SecurityFindings       []SecurityFinding `json:"security_findings"`
	Recommendations        []Recommendation  `json:"recommendations"`
	ComplianceStatus       ComplianceStatus  `json:"compliance_status"`
}

// ScanRequest is the payload accepted by the scan endpoint.
type ScanRequest struct {
	SubscriptionID string `json:"subscription_id"`
	ResourceGroup  string `json:"resource_group,omitempty"`
}

// ScanRun is a persisted summary of a past scan.
type ScanRun struct {
	ID                   string    `json:"id"`
	SubscriptionID       string    `json:"subscription_id"`
	ScanScope            string    `json:"scan_scope"`
	OverallRisk          string    `json:"overall_risk"`
	FindingCount         int       `json:"finding_count"`
	SensitiveCount       int       `json:"sensitive_count"`
	SecurityFindingCount int       `json:"security_finding_count"`
	RecommendationCount  int       `json:"recommendation_count"`
	CreatedAt            time.Time `json:"created_at"`
}

// PatternRule describes one active detection rule.
type PatternRule struct {
	DataType       string `json:"data_type"`
	Pattern        string `json:"pattern"`
	Classification string `json:"classification"`
	GDPRCategory   string `json:"gdpr_category"`
}
