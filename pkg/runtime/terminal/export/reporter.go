package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/dp-tools/privacy-atlas/pkg/models/domain"
)

type TableConfig struct {
	LocationWidth int
	DataTypeWidth int
	RiskWidth     int
	CategoryWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		LocationWidth: 60,
		DataTypeWidth: 14,
		RiskWidth:     8,
		CategoryWidth: 24,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(report domain.ComplianceReport) error {
	funcMap := template.FuncMap{
		"formatRow": func(location, dataType, risk, category interface{}) string {
			return fmt.Sprintf("| %-*v | %-*v | %-*v | %-*v |",
				c.config.LocationWidth, location,
				c.config.DataTypeWidth, dataType,
				c.config.RiskWidth, risk,
				c.config.CategoryWidth, category)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.LocationWidth+2),
				strings.Repeat("-", c.config.DataTypeWidth+2),
				strings.Repeat("-", c.config.RiskWidth+2),
				strings.Repeat("-", c.config.CategoryWidth+2))
		},
	}

	tmpl := `
Personal Data Compliance Scan
Scope: {{.Scope}}
Generated: {{.Timestamp.Format "2006-01-02 15:04:05 MST"}}
Overall Risk: {{.Status.OverallRisk}}

=== Personal Data ({{.Status.FindingCount}} findings, {{.Status.SensitiveCount}} sensitive) ===
{{if .Findings}}{{separator}}
{{formatRow "Location" "Data Type" "Risk" "GDPR Category"}}
{{separator}}
{{range .Findings}}{{formatRow .Location .DataType .RiskLevel .GDPRCategory}}
{{end}}{{separator}}
{{else}}No personal data detected.
{{end}}
=== Security Findings ({{.Status.SecurityFindingCount}}) ===
{{range .SecurityFindings}}- [{{.Severity}}] {{.Name}}{{if .Status}} ({{.Status}}){{end}}
  {{.Description}}
{{else}}No relevant security findings.
{{end}}
=== Recommendations ({{.Status.RecommendationCount}}) ===
{{range .Recommendations}}[{{.Priority}}] {{.Recommendation}}
  Control: {{.ComplianceControl}}
  Action: {{.ActionRequired}}
{{else}}No recommendations.
{{end}}`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}
