package pattern

import (
	"regexp"

	"github.com/docpeak/outline/script"
)

// rule pairs a compiled pattern with the tag and level hint it produces.
type rule struct {
	re  *regexp.Regexp
	tag Tag

	// depth is the fixed nesting depth this rule suggests (0 = no hint)
	depth int

	// depthFromDigits derives depth from the matched digit runs instead
	depthFromDigits bool
}

// buildTables compiles the per-profile pattern families. The tables are
// constructed once per Matcher and never mutated.
func buildTables() map[script.Profile][]rule {
	// Decimal section numbering is shared by every profile that uses
	// Western digits in practice (Latin, Hangul, CJK technical documents).
	decimal := rule{
		re:              regexp.MustCompile(`^\d+(\.\d+)*\.?\s`),
		tag:             TagNumbered,
		depthFromDigits: true,
	}

	latin := []rule{
		decimal,
		{re: regexp.MustCompile(`^[IVXLCM]+\.\s?`), tag: TagRoman, depth: 1},
		{re: regexp.MustCompile(`^[A-Z]\.\s`), tag: TagLetter, depth: 2},
		{re: regexp.MustCompile(`(?i)^(chapter|part)\b`), tag: TagChapter, depth: 1},
		{re: regexp.MustCompile(`(?i)^(section)\b`), tag: TagSection, depth: 2},
		{re: regexp.MustCompile(`(?i)^(appendix|introduction|conclusion|references|acknowledgements|table of contents|revision history|summary|abstract|background|glossary|index)\b`), tag: TagKeyword},
	}

	devanagari := []rule{
		// Devanagari digit numbering, e.g. "१.२ शीर्षक"
		{re: regexp.MustCompile(`^[\x{0966}-\x{096F}]+(\.[\x{0966}-\x{096F}]+)*\.?\s`), tag: TagNumbered, depthFromDigits: true},
		decimal,
		{re: regexp.MustCompile(`^अध्याय`), tag: TagChapter, depth: 1},
		{re: regexp.MustCompile(`^भाग`), tag: TagChapter, depth: 1},
		{re: regexp.MustCompile(`^खंड`), tag: TagSection, depth: 2},
		{re: regexp.MustCompile(`^(परिशिष्ट|परिचय|सारांश|निष्कर्ष)`), tag: TagKeyword},
	}

	cjk := []rule{
		// 第1章 / 第１章 / 第一章 chapter forms
		{re: regexp.MustCompile(`^第[0-9０-９一二三四五六七八九十百]+章`), tag: TagChapter, depth: 1},
		// 第1節 / 第1节 section forms
		{re: regexp.MustCompile(`^第[0-9０-９一二三四五六七八九十百]+[節节]`), tag: TagSection, depth: 2},
		// Bare numbered headers, fullwidth digits included. A separator is
		// required so year-like prefixes ("2024年度...") do not match.
		{re: regexp.MustCompile(`^[0-9０-９]+([.．][0-9０-９]+)*[.．\s]`), tag: TagNumbered, depthFromDigits: true},
		{re: regexp.MustCompile(`^(はじめに|概要|目次|付録|まとめ|参考文献|引言|摘要|附录|结论|参考资料)`), tag: TagKeyword},
	}

	hangul := []rule{
		// 제1장 chapter, 제1절 section
		{re: regexp.MustCompile(`^제\s?[0-9０-９]+\s?장`), tag: TagChapter, depth: 1},
		{re: regexp.MustCompile(`^제\s?[0-9０-９]+\s?절`), tag: TagSection, depth: 2},
		decimal,
		{re: regexp.MustCompile(`^(서론|개요|목차|부록|결론|참고문헌|요약)`), tag: TagKeyword},
	}

	arabic := []rule{
		// Arabic-Indic digit numbering, e.g. "١.٢ عنوان" or "١- عنوان".
		// Matched on logical character order, independent of visual
		// direction.
		{re: regexp.MustCompile(`^[\x{0660}-\x{0669}]+([.\-][\x{0660}-\x{0669}]+)*[.\-]?\s`), tag: TagNumbered, depthFromDigits: true},
		decimal,
		{re: regexp.MustCompile(`^(الفصل|الباب)`), tag: TagChapter, depth: 1},
		{re: regexp.MustCompile(`^القسم`), tag: TagSection, depth: 2},
		{re: regexp.MustCompile(`^(الملحق|مقدمة|ملخص|الخاتمة|المراجع|الفهرس)`), tag: TagKeyword},
	}

	return map[script.Profile][]rule{
		script.Latin:      latin,
		script.Devanagari: devanagari,
		script.CJK:        cjk,
		script.Hangul:     hangul,
		script.Arabic:     arabic,
	}
}
