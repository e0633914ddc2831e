package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/IlyaSylkin/OS-2-lab/internal/bench"
)

// OutputFormat represents the available structured report formats
type OutputFormat string

const (
	// FormatJSON outputs the full report as indented JSON
	FormatJSON OutputFormat = "json"
	// FormatYAML outputs the full report as YAML
	FormatYAML OutputFormat = "yaml"
)

// FormatForPath picks the report format from the file extension.
func FormatForPath(path string) OutputFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// MarshalReport encodes the full report, including skipped and failed rows.
func MarshalReport(report *bench.Report, format OutputFormat) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal report: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		// Round-trip through JSON so YAML keys match the JSON field tags.
		raw, err := json.Marshal(report)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal report: %w", err)
		}
		var doc interface{}
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to convert report: %w", err)
		}
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal report: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// SaveReport writes the report to path in the format its extension implies.
func SaveReport(path string, report *bench.Report) error {
	data, err := MarshalReport(report, FormatForPath(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
