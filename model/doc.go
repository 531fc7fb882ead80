// Package model defines the core data types shared across the outline
// extraction pipeline: text spans with font and position attributes, document
// containers, and the final outline value.
//
// All types in this package are plain values. TextSpans are read-only input
// produced by a span collector and are never mutated by pipeline stages; an
// Outline is constructed once per document and is immutable after assembly.
package model
