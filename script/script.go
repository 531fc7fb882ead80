// Package script identifies the dominant writing system of a document from
// the Unicode distribution of its text. The detected profile parameterizes
// pattern matching in downstream stages.
package script

import (
	"unicode"

	"github.com/docpeak/outline/model"
)

// Profile identifies one of the supported writing systems. Exactly one
// profile is active per document run.
type Profile int

const (
	// Latin is the default profile and the tie-break winner.
	Latin Profile = iota
	// Devanagari covers Hindi and related languages (U+0900-U+097F).
	Devanagari
	// CJK covers Chinese and Japanese (Han, Hiragana, Katakana).
	CJK
	// Hangul covers Korean (U+AC00-U+D7A3 and the Jamo blocks).
	Hangul
	// Arabic covers the Arabic block (U+0600-U+06FF).
	Arabic
)

// String returns a short identifier for the profile.
func (p Profile) String() string {
	switch p {
	case Devanagari:
		return "devanagari"
	case CJK:
		return "cjk"
	case Hangul:
		return "hangul"
	case Arabic:
		return "arabic"
	default:
		return "latin"
	}
}

// RightToLeft reports whether the profile's script is written right-to-left.
func (p Profile) RightToLeft() bool {
	return p == Arabic
}

// profileOf classifies a single rune. Runes outside every known range return
// Latin, the safe default.
func profileOf(r rune) Profile {
	switch {
	case unicode.Is(unicode.Devanagari, r):
		return Devanagari
	case unicode.Is(unicode.Han, r), unicode.Is(unicode.Hiragana, r), unicode.Is(unicode.Katakana, r):
		return CJK
	case unicode.Is(unicode.Hangul, r):
		return Hangul
	case unicode.Is(unicode.Arabic, r):
		return Arabic
	default:
		return Latin
	}
}

// Detect tallies non-whitespace characters by Unicode range and returns the
// profile with the largest share. Ties break toward Latin, and empty input
// returns Latin. Detect never fails.
func Detect(text string) Profile {
	var counts [Arabic + 1]int
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		counts[profileOf(r)]++
	}

	best := Latin
	for p := Latin; p <= Arabic; p++ {
		if counts[p] > counts[best] {
			best = p
		}
	}
	return best
}

// DetectDocument runs Detect over the full text of a document's spans.
func DetectDocument(doc *model.Document) Profile {
	if doc == nil {
		return Latin
	}
	return Detect(doc.Text())
}
