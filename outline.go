// Package outline provides a fluent API for extracting a document outline
// (title plus H1-H4 headings) from PDF files using font and layout signals.
//
// Basic usage:
//
//	result, warnings, err := outline.Open("document.pdf").Extract()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", outline.FormatWarnings(warnings))
//	}
//
// With options:
//
//	result, _, err := outline.Open("report.pdf").
//	    MaxPages(10).
//	    TitlePages(2).
//	    Extract()
//
// For advanced use cases, the lower-level collect, score, cluster, and filter
// packages are also available.
package outline

import (
	"github.com/docpeak/outline/model"
)

// Open prepares an Extractor for the file at filename. The file is not read
// until a terminal operation like Extract() runs.
//
// Example:
//
//	result, warnings, err := outline.Open("document.pdf").Extract()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromDocument creates an Extractor over an already-collected span document.
// This is useful when spans come from a source other than the built-in
// collectors, or when the same document is analyzed repeatedly with different
// options.
//
// Example:
//
//	doc, err := collect.Collect("document.pdf", collect.DefaultOptions())
//	if err != nil {
//	    // handle error
//	}
//	result, warnings, err := outline.FromDocument(doc).Extract()
func FromDocument(doc *model.Document) *Extractor {
	return &Extractor{
		doc:       doc,
		docLoaded: true,
		options:   defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	doc := outline.Must(outline.Open("document.pdf").Document())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustExtract is a helper that wraps a call to a terminal operation like
// Extract() and panics if the error is non-nil. It discards warnings and
// returns just the value. It is intended for use in scripts or tests where
// error handling would be cumbersome.
//
// Example:
//
//	o := outline.MustExtract(outline.Open("document.pdf").Extract())
func MustExtract[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
