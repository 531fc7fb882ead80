// Package filter removes false-positive heading candidates after level
// assignment: duplicates, date-like strings, short fragments, and
// line-wrapping artifacts. Rules run in a fixed order so the surviving set is
// deterministic.
package filter

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/docpeak/outline/cluster"
	"github.com/docpeak/outline/script"
)

// Config holds the filter rules' parameters. The pattern tables are compiled
// once and never mutated.
type Config struct {
	// MinHeadingRunes is the minimum trimmed length of a heading.
	// Single-rune CJK headings are exempt under the CJK profile.
	// Default: 2
	MinHeadingRunes int

	// DatePatterns match date/time-only strings that masquerade as
	// headings ("12/04/2024", "10:30 AM")
	DatePatterns []*regexp.Regexp
}

// DefaultConfig returns the default filter configuration.
func DefaultConfig() Config {
	return Config{
		MinHeadingRunes: 2,
		DatePatterns: []*regexp.Regexp{
			regexp.MustCompile(`^\d{1,2}[\-/ ]\d{1,2}[\-/ ]\d{2,4}$`),
			regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
			regexp.MustCompile(`^\d{1,2} \w+ \d{4}$`),
			regexp.MustCompile(`^\w+ \d{1,2}, \d{4}$`),
			regexp.MustCompile(`^\d{1,2}:\d{2}\s?([ap]\.?m\.?|[AP]M)?$`),
		},
	}
}

// Filter removes non-heading candidates from leveled spans.
type Filter struct {
	config Config
}

// NewFilter creates a filter with default configuration
func NewFilter() *Filter {
	return NewFilterWithConfig(DefaultConfig())
}

// NewFilterWithConfig creates a filter with custom configuration
func NewFilterWithConfig(config Config) *Filter {
	if config.MinHeadingRunes <= 0 {
		config.MinHeadingRunes = DefaultConfig().MinHeadingRunes
	}
	if config.DatePatterns == nil {
		config.DatePatterns = DefaultConfig().DatePatterns
	}
	return &Filter{config: config}
}

// Apply runs the filter rules in order: (1) exact-duplicate (text, page)
// removal keeping the first occurrence, (2) date/number-only text, (3)
// minimum length, (4) continuation fragments of an adjacent retained span on
// the same page, and finally suppression of a heading that repeats the
// document title. Input order is preserved.
func (f *Filter) Apply(assignments []cluster.Assignment, profile script.Profile, title string) []cluster.Assignment {
	if len(assignments) == 0 {
		return nil
	}

	titleKey := normalize(title)

	seen := make(map[string]bool)
	var kept []cluster.Assignment
	for _, a := range assignments {
		text := strings.TrimSpace(a.Span.Text)
		key := normalize(text) + "\x00" + strconv.Itoa(a.Span.Page)

		switch {
		case text == "":
		case seen[key]:
		case f.isDateLike(text):
		case f.tooShort(text, profile):
		case titleKey != "" && normalize(text) == titleKey:
		default:
			seen[key] = true
			kept = append(kept, a)
			continue
		}
	}

	return f.dropFragments(kept)
}

// isDateLike reports whether text is a date/time string or contains no
// letters at all (bare numbers, echoed page numbers, dividers).
func (f *Filter) isDateLike(text string) bool {
	for _, re := range f.config.DatePatterns {
		if re.MatchString(text) {
			return true
		}
	}

	for _, r := range text {
		if unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// tooShort reports whether text falls under the minimum heading length.
// Single-rune CJK headings are meaningful and exempt under the CJK profile.
func (f *Filter) tooShort(text string, profile script.Profile) bool {
	n := utf8.RuneCountInString(text)
	if n >= f.config.MinHeadingRunes {
		return false
	}
	if profile == script.CJK && n == 1 {
		r, _ := utf8.DecodeRuneInString(text)
		if unicode.Is(unicode.Han, r) || unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r) {
			return false
		}
	}
	return true
}

// dropFragments removes spans whose text is a strict prefix or suffix of an
// adjacent retained span on the same page, the typical line-wrapping artifact
// where a heading was emitted both whole and in pieces.
func (f *Filter) dropFragments(assignments []cluster.Assignment) []cluster.Assignment {
	if len(assignments) < 2 {
		return assignments
	}

	drop := make([]bool, len(assignments))
	for i := range assignments {
		text := normalize(strings.TrimSpace(assignments[i].Span.Text))
		for _, j := range []int{i - 1, i + 1} {
			if j < 0 || j >= len(assignments) || drop[j] {
				continue
			}
			if assignments[j].Span.Page != assignments[i].Span.Page {
				continue
			}
			neighbor := normalize(strings.TrimSpace(assignments[j].Span.Text))
			if len(text) < len(neighbor) &&
				(strings.HasPrefix(neighbor, text) || strings.HasSuffix(neighbor, text)) {
				drop[i] = true
				break
			}
		}
	}

	var out []cluster.Assignment
	for i, a := range assignments {
		if !drop[i] {
			out = append(out, a)
		}
	}
	return out
}

// normalize folds text to NFKC and lowercases it for comparisons, so
// fullwidth/compatibility variants and case differences do not defeat
// duplicate detection.
func normalize(text string) string {
	return strings.ToLower(norm.NFKC.String(strings.TrimSpace(text)))
}
