package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dp-tools/privacy-atlas/pkg/adapters"
	"github.com/dp-tools/privacy-atlas/pkg/models/domain"
)

// Write serializes the report to its documented JSON shape.
func Write(w io.Writer, report domain.ComplianceReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(adapters.MapReportDomainToApi(report)); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// WriteFile persists the report as a JSON document at path.
func WriteFile(path string, report domain.ComplianceReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := Write(f, report); err != nil {
		return err
	}
	return f.Close()
}
