package filter

import (
	"testing"

	"github.com/docpeak/outline/cluster"
	"github.com/docpeak/outline/model"
	"github.com/docpeak/outline/score"
	"github.com/docpeak/outline/script"
)

func leveled(text string, page int, level model.HeadingLevel) cluster.Assignment {
	return cluster.Assignment{
		Span: score.ScoredSpan{
			TextSpan: model.TextSpan{Text: text, FontSize: 14, Page: page},
			Score:    0.7,
		},
		Level: level,
	}
}

func texts(assignments []cluster.Assignment) []string {
	var out []string
	for _, a := range assignments {
		out = append(out, a.Span.Text)
	}
	return out
}

func TestApplyEmpty(t *testing.T) {
	f := NewFilter()
	if got := f.Apply(nil, script.Latin, ""); got != nil {
		t.Errorf("empty input should return nil, got %v", got)
	}
}

func TestApplyDropsDuplicates(t *testing.T) {
	f := NewFilter()

	in := []cluster.Assignment{
		leveled("Introduction", 1, model.H1),
		leveled("Introduction", 1, model.H2), // same text, same page
		leveled("Introduction", 3, model.H1), // same text, other page: kept
	}
	out := f.Apply(in, script.Latin, "")

	if len(out) != 2 {
		t.Fatalf("expected 2 survivors, got %d: %v", len(out), texts(out))
	}
	if out[0].Level != model.H1 {
		t.Error("first occurrence should be kept")
	}
	if out[1].Span.Page != 3 {
		t.Error("same text on a different page should survive")
	}
}

func TestApplyDropsDates(t *testing.T) {
	f := NewFilter()

	tests := []string{
		"12/04/2024",
		"2024-01-01",
		"12-04-24",
		"March 12, 2024",
		"3 March 2024",
		"10:30 AM",
		"42",    // bare number, no letters
		"— § —", // no letters at all
	}

	for _, text := range tests {
		out := f.Apply([]cluster.Assignment{leveled(text, 1, model.H1)}, script.Latin, "")
		if len(out) != 0 {
			t.Errorf("date/number-only text %q should be dropped", text)
		}
	}
}

func TestApplyKeepsNumberedHeadings(t *testing.T) {
	f := NewFilter()

	out := f.Apply([]cluster.Assignment{leveled("2.1 Evaluation", 1, model.H2)}, script.Latin, "")
	if len(out) != 1 {
		t.Error("numbered heading with letters should survive the date rule")
	}
}

func TestApplyMinLength(t *testing.T) {
	f := NewFilter()

	out := f.Apply([]cluster.Assignment{leveled("x", 1, model.H1)}, script.Latin, "")
	if len(out) != 0 {
		t.Error("single Latin character should be dropped")
	}

	// Single-rune CJK heading survives under the CJK profile.
	out = f.Apply([]cluster.Assignment{leveled("序", 1, model.H1)}, script.CJK, "")
	if len(out) != 1 {
		t.Error("single CJK character should survive under the CJK profile")
	}

	// ...but not under a Latin profile.
	out = f.Apply([]cluster.Assignment{leveled("序", 1, model.H1)}, script.Latin, "")
	if len(out) != 0 {
		t.Error("single CJK character should be dropped under the Latin profile")
	}
}

func TestApplyDropsFragments(t *testing.T) {
	f := NewFilter()

	in := []cluster.Assignment{
		leveled("Evaluation and Awarding of Contract", 2, model.H1),
		leveled("Evaluation and", 2, model.H2), // prefix fragment, adjacent
		leveled("Next Section", 2, model.H1),
	}
	out := f.Apply(in, script.Latin, "")

	got := texts(out)
	if len(got) != 2 || got[0] != "Evaluation and Awarding of Contract" || got[1] != "Next Section" {
		t.Errorf("prefix fragment should be dropped, got %v", got)
	}
}

func TestApplyFragmentOtherPageKept(t *testing.T) {
	f := NewFilter()

	in := []cluster.Assignment{
		leveled("Evaluation and Awarding of Contract", 2, model.H1),
		leveled("Evaluation and", 3, model.H2), // other page: not a wrap artifact
	}
	out := f.Apply(in, script.Latin, "")
	if len(out) != 2 {
		t.Errorf("fragment rule must only apply within a page, got %v", texts(out))
	}
}

func TestApplySuppressesTitle(t *testing.T) {
	f := NewFilter()

	in := []cluster.Assignment{
		leveled("Annual Report 2023", 1, model.H1),
		leveled("Overview", 1, model.H1),
	}
	out := f.Apply(in, script.Latin, "Annual Report 2023")

	got := texts(out)
	if len(got) != 1 || got[0] != "Overview" {
		t.Errorf("title repeat should be suppressed, got %v", got)
	}
}

func TestApplyNormalizesForComparison(t *testing.T) {
	f := NewFilter()

	// Fullwidth vs halfwidth digits normalize to the same key.
	in := []cluster.Assignment{
		leveled("第１章 概要", 1, model.H1),
		leveled("第1章 概要", 1, model.H1),
	}
	out := f.Apply(in, script.CJK, "")
	if len(out) != 1 {
		t.Errorf("NFKC-equal duplicates should collapse, got %v", texts(out))
	}
}

func TestApplyPreservesOrder(t *testing.T) {
	f := NewFilter()

	in := []cluster.Assignment{
		leveled("Alpha", 1, model.H1),
		leveled("Beta", 1, model.H2),
		leveled("Gamma", 2, model.H2),
	}
	out := f.Apply(in, script.Latin, "")

	got := texts(out)
	want := []string{"Alpha", "Beta", "Gamma"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order not preserved: %v", got)
		}
	}
}
