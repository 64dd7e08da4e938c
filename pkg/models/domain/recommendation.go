package domain

// Priority orders remediation actions for display. Generation order is
// Critical-first by rule declaration, not a sort.
type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityMedium   Priority = "Medium"
	PriorityLow      Priority = "Low"
)

// Recommendation is a prioritized remediation action derived from the
// aggregated findings of a single scan run.
type Recommendation struct {
	Priority          Priority
	Category          string
	Recommendation    string
	ComplianceControl string
	ActionRequired    string
}
