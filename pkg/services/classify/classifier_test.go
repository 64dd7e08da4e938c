package classify

import (
	"sort"
	"testing"

	"github.com/dp-tools/privacy-atlas/pkg/models/domain"
	"github.com/dp-tools/privacy-atlas/pkg/services/patterns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_EmailOnly(t *testing.T) {
	c := NewClassifier(patterns.Builtin())

	findings := c.Classify("acct/cont/blob/metadata:note", "contact: alice@example.com", domain.DetectionMetadata)

	require.Len(t, findings, 1)
	f := findings[0]
	assert.NotEmpty(t, f.ID)
	assert.Equal(t, "acct/cont/blob/metadata:note", f.Location)
	assert.Equal(t, domain.DataTypeEmail, f.DataType)
	assert.Equal(t, domain.ClassificationPersonal, f.Classification)
	assert.Equal(t, domain.RiskMedium, f.RiskLevel)
	assert.Equal(t, domain.DetectionMetadata, f.DetectionMethod)
}

func TestClassify_SSNIsSensitive(t *testing.T) {
	c := NewClassifier(patterns.Builtin())

	findings := c.Classify("acct/cont/blob/metadata:id", "123-45-6789", domain.DetectionMetadata)

	require.Len(t, findings, 1)
	assert.Equal(t, domain.DataTypeSSN, findings[0].DataType)
	assert.Equal(t, domain.ClassificationSensitive, findings[0].Classification)
	assert.Equal(t, domain.RiskHigh, findings[0].RiskLevel)
}

func TestClassify_MultipleMatchesPerField(t *testing.T) {
	c := NewClassifier(patterns.Builtin())

	findings := c.Classify("loc", "alice@example.com or 555-123-4567", domain.DetectionMetadata)

	require.Len(t, findings, 2)
	types := []string{string(findings[0].DataType), string(findings[1].DataType)}
	sort.Strings(types)
	assert.Equal(t, []string{"Email", "PhoneNumber"}, types)
	assert.NotEqual(t, findings[0].ID, findings[1].ID)
}

func TestClassify_NoMatch(t *testing.T) {
	c := NewClassifier(patterns.Builtin())

	findings := c.Classify("loc", "nothing interesting here", domain.DetectionMetadata)

	assert.Empty(t, findings)
}

func TestClassify_Idempotent(t *testing.T) {
	c := NewClassifier(patterns.Builtin())

	key := func(f domain.Finding) [5]string {
		return [5]string{
			f.Location,
			string(f.DataType),
			string(f.Classification),
			string(f.RiskLevel),
			f.GDPRCategory,
		}
	}

	first := c.Classify("loc", "alice@example.com 123-45-6789", domain.DetectionMetadata)
	second := c.Classify("loc", "alice@example.com 123-45-6789", domain.DetectionMetadata)

	require.Equal(t, len(first), len(second))
	seen := map[[5]string]int{}
	for _, f := range first {
		seen[key(f)]++
	}
	for _, f := range second {
		seen[key(f)]--
	}
	for _, count := range seen {
		assert.Zero(t, count)
	}
}

func TestClassify_ContentMethodPreserved(t *testing.T) {
	c := NewClassifier(patterns.Builtin())

	findings := c.Classify("acct/cont/blob/content", "ip 10.0.0.12", domain.DetectionContent)

	require.Len(t, findings, 1)
	assert.Equal(t, domain.DataTypeIPAddress, findings[0].DataType)
	assert.Equal(t, domain.DetectionContent, findings[0].DetectionMethod)
}
