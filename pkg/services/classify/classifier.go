package classify

import (
	"github.com/dp-tools/privacy-atlas/pkg/models/domain"
	"github.com/dp-tools/privacy-atlas/pkg/services/patterns"
	"github.com/google/uuid"
)

// Classifier applies the pattern registry to scanned field values.
// It is pure: no I/O, no state beyond the read-only registry.
type Classifier struct {
	registry *patterns.Registry
}

func NewClassifier(registry *patterns.Registry) *Classifier {
	return &Classifier{registry: registry}
}

// Classify evaluates every rule against the field value and returns one
// finding per matching rule. A field containing both an email and a
// phone number yields two findings; that is intentional.
func (c *Classifier) Classify(location, value string, method domain.DetectionMethod) []domain.Finding {
	var findings []domain.Finding
	for _, rule := range c.registry.Rules() {
		if !rule.Matcher.MatchString(value) {
			continue
		}
		findings = append(findings, domain.Finding{
			ID:              uuid.NewString(),
			Location:        location,
			DataType:        rule.DataType,
			Classification:  rule.Classification,
			GDPRCategory:    rule.GDPRCategory,
			DetectionMethod: method,
			RiskLevel:       rule.Classification.Risk(),
		})
	}
	return findings
}
