package outline

import (
	"fmt"
	"strings"
)

// Warning describes a non-fatal anomaly encountered while processing a
// document. The pipeline degrades gracefully instead of failing, so
// warnings are the only record of skipped or ambiguous input.
type Warning struct {
	// Stage names the pipeline stage that produced the warning, e.g.
	// "collect" or "filter".
	Stage string

	// Page is the 1-based page the warning refers to, or 0 when the
	// warning applies to the whole document.
	Page int

	// Message describes the anomaly.
	Message string
}

// String formats the warning for display.
func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("%s (page %d): %s", w.Stage, w.Page, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}

// FormatWarnings joins warnings into a single human-readable string, one
// warning per line. It returns the empty string for an empty slice.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
