// Package pattern detects script-specific structural markers in span text:
// numbered section prefixes, Roman numerals, and chapter/section keywords in
// each supported writing system. A match carries a fixed confidence boost for
// the feature scorer and, for numbered prefixes, a nesting depth that can
// suggest a heading level independent of font size.
package pattern

import (
	"strings"
	"unicode"

	"github.com/docpeak/outline/script"
)

// Tag classifies the kind of structural marker found in a span.
type Tag int

const (
	// TagNone means no structural marker was found.
	TagNone Tag = iota
	// TagNumbered is a decimal section prefix such as "1." or "2.3.1".
	TagNumbered
	// TagRoman is a Roman numeral prefix such as "IV.".
	TagRoman
	// TagLetter is a letter prefix such as "A.".
	TagLetter
	// TagChapter is a chapter-level keyword ("Chapter", 第N章, अध्याय, 제N장, الفصل).
	TagChapter
	// TagSection is a section-level keyword ("Section", 第N節, खंड, 제N절, القسم).
	TagSection
	// TagKeyword is a generic structural keyword with no level hint
	// ("Appendix", "References", परिशिष्ट, 부록, الملحق).
	TagKeyword
)

// String returns a short identifier for the tag.
func (t Tag) String() string {
	switch t {
	case TagNumbered:
		return "numbered"
	case TagRoman:
		return "roman"
	case TagLetter:
		return "letter"
	case TagChapter:
		return "chapter"
	case TagSection:
		return "section"
	case TagKeyword:
		return "keyword"
	default:
		return "none"
	}
}

// Match is the result of matching a span's text against the active profile's
// pattern tables.
type Match struct {
	// Tag is the kind of marker found
	Tag Tag

	// Boost is the fixed confidence boost contributed to the heading score
	Boost float64

	// Depth is the suggested nesting depth (1 = top level), or 0 when the
	// marker carries no level hint
	Depth int
}

// Config holds the confidence boosts applied per tag. Boosts are fixed
// process-wide constants, never mutated at runtime.
type Config struct {
	// Boosts maps each tag to its confidence contribution
	Boosts map[Tag]float64
}

// DefaultConfig returns the default per-tag confidence boosts. Chapter and
// numbered markers boost hardest: they can push a modestly sized span past
// the acceptance threshold on their own.
func DefaultConfig() Config {
	return Config{
		Boosts: map[Tag]float64{
			TagNumbered: 0.30,
			TagRoman:    0.25,
			TagLetter:   0.20,
			TagChapter:  0.35,
			TagSection:  0.30,
			TagKeyword:  0.25,
		},
	}
}

// Matcher matches span text against the pattern tables of a script profile.
// The tables are fixed and closed: one rule set per supported profile,
// selected explicitly by profile value.
type Matcher struct {
	config Config
	tables map[script.Profile][]rule
}

// NewMatcher creates a matcher with default configuration
func NewMatcher() *Matcher {
	return NewMatcherWithConfig(DefaultConfig())
}

// NewMatcherWithConfig creates a matcher with custom boost configuration
func NewMatcherWithConfig(config Config) *Matcher {
	if config.Boosts == nil {
		config.Boosts = DefaultConfig().Boosts
	}
	return &Matcher{
		config: config,
		tables: buildTables(),
	}
}

// Match tests text against the active profile's pattern family. It returns
// the first matching rule's tag, boost, and depth, or ok=false when nothing
// matches. Rules are ordered most-specific first, so deeper numbered patterns
// win over shallow ones.
func (m *Matcher) Match(text string, profile script.Profile) (Match, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Match{}, false
	}

	rules, ok := m.tables[profile]
	if !ok {
		rules = m.tables[script.Latin]
	}

	for _, r := range rules {
		loc := r.re.FindStringIndex(text)
		if loc == nil {
			continue
		}

		match := Match{
			Tag:   r.tag,
			Boost: m.config.Boosts[r.tag],
			Depth: r.depth,
		}
		if r.depthFromDigits {
			match.Depth = digitRunCount(text[loc[0]:loc[1]])
		}
		return match, true
	}

	return Match{}, false
}

// digitRunCount counts maximal runs of decimal digits in s. "1.2.3" has three
// runs, giving nesting depth 3. unicode.IsDigit covers Devanagari and
// Arabic-Indic digits as well as ASCII.
func digitRunCount(s string) int {
	runs := 0
	inRun := false
	for _, r := range s {
		if unicode.IsDigit(r) {
			if !inRun {
				runs++
				inRun = true
			}
		} else {
			inRun = false
		}
	}
	return runs
}
