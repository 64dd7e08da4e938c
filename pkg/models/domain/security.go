package domain

// SecuritySeverity is the severity reported by the external security feed.
type SecuritySeverity string

const (
	SecuritySeverityLow    SecuritySeverity = "Low"
	SecuritySeverityMedium SecuritySeverity = "Medium"
	SecuritySeverityHigh   SecuritySeverity = "High"
)

// SecurityFinding is a normalized alert or assessment pulled from the
// external security feed. It is a read-only pass-through after the
// relevance filter.
type SecurityFinding struct {
	Name             string
	Description      string
	Severity         SecuritySeverity
	Status           string
	ResourceRefs     []string
	ComplianceImpact string
}
