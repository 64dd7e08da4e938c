package domain

import "time"

// ScanScope is the subscription and optional resource-group boundary
// within which a scan executes.
type ScanScope struct {
	SubscriptionID string
	ResourceGroup  string // empty means all resource groups
}

func (s ScanScope) String() string {
	if s.ResourceGroup == "" {
		return "subscription:" + s.SubscriptionID
	}
	return "subscription:" + s.SubscriptionID + "/resourceGroup:" + s.ResourceGroup
}

// ComplianceStatus summarizes a finished scan run.
type ComplianceStatus struct {
	OverallRisk          RiskLevel
	FindingCount         int
	SensitiveCount       int
	SecurityFindingCount int
	RecommendationCount  int
}

// ComplianceReport is the top-level aggregate produced once per scan
// invocation. It is write-once; persistence is a store concern.
type ComplianceReport struct {
	Timestamp        time.Time
	Scope            ScanScope
	Findings         []Finding
	SecurityFindings []SecurityFinding
	Recommendations  []Recommendation
	Status           ComplianceStatus
}
