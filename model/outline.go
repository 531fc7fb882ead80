package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// HeadingLevel represents the hierarchical level of a heading (H1-H4)
type HeadingLevel int

const (
	LevelUnknown HeadingLevel = iota
	H1                        // Main title / chapter
	H2                        // Major section
	H3                        // Subsection
	H4                        // Sub-subsection
)

// MaxLevel is the deepest heading level the pipeline assigns.
const MaxLevel = H4

// String returns the conventional label for the level ("H1".."H4").
func (l HeadingLevel) String() string {
	switch l {
	case H1:
		return "H1"
	case H2:
		return "H2"
	case H3:
		return "H3"
	case H4:
		return "H4"
	default:
		return "unknown"
	}
}

// HTMLTag returns the HTML tag for this heading level
func (l HeadingLevel) HTMLTag() string {
	if l >= H1 && l <= H4 {
		return strings.ToLower(l.String())
	}
	return "p"
}

// MarshalJSON encodes the level as its label, e.g. "H2".
func (l HeadingLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes a level label such as "H2".
func (l *HeadingLevel) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "H1":
		*l = H1
	case "H2":
		*l = H2
	case "H3":
		*l = H3
	case "H4":
		*l = H4
	default:
		return fmt.Errorf("unknown heading level %q", label)
	}
	return nil
}

// HeadingEntry is a single entry in a document outline.
type HeadingEntry struct {
	// Level is the heading level (H1-H4)
	Level HeadingLevel `json:"level"`

	// Text is the trimmed, normalized heading text. A single trailing
	// space is appended during assembly for downstream formatting.
	Text string `json:"text"`

	// Page is the 1-based page number the heading appears on
	Page int `json:"page"`
}

// Outline is the final result of outline extraction: a title plus the ordered
// heading entries. It is constructed once per document and immutable after
// assembly.
type Outline struct {
	// Title is the extracted document title (may be empty)
	Title string `json:"title"`

	// Entries are the headings in (page, position, document) order.
	// Always non-nil so the JSON form is an array, never null.
	Entries []HeadingEntry `json:"outline"`
}

// EntryCount returns the number of outline entries
func (o *Outline) EntryCount() int {
	if o == nil {
		return 0
	}
	return len(o.Entries)
}

// EntriesAtLevel returns all entries at a specific level
func (o *Outline) EntriesAtLevel(level HeadingLevel) []HeadingEntry {
	if o == nil {
		return nil
	}
	var result []HeadingEntry
	for _, e := range o.Entries {
		if e.Level == level {
			result = append(result, e)
		}
	}
	return result
}

// TableOfContents returns a plain-text table of contents, one heading per
// line, indented by level.
func (o *Outline) TableOfContents() string {
	if o == nil || len(o.Entries) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, e := range o.Entries {
		indent := strings.Repeat("  ", int(e.Level)-1)
		sb.WriteString(indent)
		sb.WriteString(strings.TrimRight(e.Text, " "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// MarkdownTOC returns a markdown-formatted table of contents with page
// references.
func (o *Outline) MarkdownTOC() string {
	if o == nil || len(o.Entries) == 0 {
		return ""
	}

	var sb strings.Builder
	if o.Title != "" {
		sb.WriteString("# ")
		sb.WriteString(o.Title)
		sb.WriteString("\n\n")
	}
	for _, e := range o.Entries {
		indent := strings.Repeat("  ", int(e.Level)-1)
		sb.WriteString(indent)
		sb.WriteString("- ")
		sb.WriteString(strings.TrimRight(e.Text, " "))
		sb.WriteString(fmt.Sprintf(" (p.%d)", e.Page))
		sb.WriteString("\n")
	}
	return sb.String()
}
