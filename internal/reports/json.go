// Package reports provides progress report generation for the sidequest app.
package reports

import (
	"encoding/json"
)

// FormatJSON formats a progress report as JSON.
func FormatJSON(report *ProgressReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
