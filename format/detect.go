// Package format provides input format detection for the outline library.
package format

import (
	"path/filepath"
	"strings"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// SpanJSON indicates a structured span dump in JSON form, as produced
	// by an external text-layout extraction service.
	SpanJSON
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case SpanJSON:
		return "SpanJSON"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case SpanJSON:
		return ".json"
	default:
		return ""
	}
}

// Detect determines the input format from the filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDF
	case ".json":
		return SpanJSON
	default:
		return Unknown
	}
}

// DetectFromMagic checks leading bytes to determine the format. This is more
// reliable than extension-based detection. Returns Unknown when the bytes are
// ambiguous.
func DetectFromMagic(data []byte) Format {
	// Skip leading whitespace for the JSON check.
	start := 0
	for start < len(data) && (data[start] == ' ' || data[start] == '\t' || data[start] == '\n' || data[start] == '\r') {
		start++
	}
	data = data[start:]

	if len(data) < 4 {
		return Unknown
	}

	// PDF magic: %PDF
	if data[0] == '%' && data[1] == 'P' && data[2] == 'D' && data[3] == 'F' {
		return PDF
	}

	// A span dump is a JSON object.
	if data[0] == '{' {
		return SpanJSON
	}

	return Unknown
}
