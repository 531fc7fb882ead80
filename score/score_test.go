package score

import (
	"testing"

	"github.com/docpeak/outline/model"
	"github.com/docpeak/outline/pattern"
	"github.com/docpeak/outline/script"
)

// makeSpan creates a test span positioned on a line at the given top Y.
func makeSpan(text string, size float64, bold bool, page int, top float64) model.TextSpan {
	return model.TextSpan{
		Text:     text,
		FontSize: size,
		IsBold:   bold,
		BBox:     model.NewBBox(72, top-size, 200, size),
		Page:     page,
	}
}

// bodyDoc builds a document with an 11pt body column and the given extra
// spans. Body lines are tightly spaced; extras are placed with generous
// whitespace so they read as isolated.
func bodyDoc(extras ...model.TextSpan) *model.Document {
	doc := &model.Document{PageCount: 1, PageWidth: 612, PageHeight: 792}
	top := 700.0
	for i := 0; i < 12; i++ {
		doc.Spans = append(doc.Spans, makeSpan("This is an ordinary line of body text in the document.", 11, false, 1, top))
		top -= 14 // 11pt line + 3pt leading
	}
	doc.Spans = append(doc.Spans, extras...)
	return doc
}

func TestBodyFontSize(t *testing.T) {
	s := NewScorer()

	doc := bodyDoc(makeSpan("Heading", 18, true, 1, 760))
	if got := s.BodyFontSize(doc); got != 11 {
		t.Errorf("BodyFontSize = %f, want 11", got)
	}
}

func TestBodyFontSizeEmpty(t *testing.T) {
	s := NewScorer()
	if got := s.BodyFontSize(&model.Document{}); got != 12.0 {
		t.Errorf("BodyFontSize(empty) = %f, want default 12", got)
	}
	if got := s.BodyFontSize(nil); got != 12.0 {
		t.Errorf("BodyFontSize(nil) = %f, want default 12", got)
	}
}

func TestScoreEmptyDocument(t *testing.T) {
	s := NewScorer()
	result := s.Score(&model.Document{}, script.Latin)

	if len(result.Spans) != 0 || len(result.Retained) != 0 {
		t.Errorf("empty document should score no spans, got %d/%d", len(result.Spans), len(result.Retained))
	}
}

func TestScoreRetainsLargeBoldHeading(t *testing.T) {
	s := NewScorer()

	heading := makeSpan("System Architecture", 18, true, 1, 500)
	doc := bodyDoc(heading)

	result := s.Score(doc, script.Latin)
	if len(result.Retained) != 1 {
		t.Fatalf("expected 1 retained span, got %d (threshold %f)", len(result.Retained), result.Threshold)
	}
	if result.Retained[0].Text != "System Architecture" {
		t.Errorf("retained wrong span: %q", result.Retained[0].Text)
	}
	if result.Retained[0].Score < result.Threshold {
		t.Error("retained span should meet the threshold")
	}
}

func TestScoreDropsBodyText(t *testing.T) {
	s := NewScorer()

	doc := bodyDoc()
	result := s.Score(doc, script.Latin)
	if len(result.Retained) != 0 {
		t.Errorf("plain body text should not be retained, got %d spans", len(result.Retained))
	}
}

func TestScoreSizeFactorSaturates(t *testing.T) {
	s := NewScorer()
	cfg := DefaultConfig()

	huge := s.scoreSpan(makeSpan("T", 40, false, 1, 500), 11, false, 0)
	saturated := s.scoreSpan(makeSpan("T", 11*cfg.SaturationRatio, false, 1, 500), 11, false, 0)
	if huge != saturated {
		t.Errorf("size factor should saturate: 40pt=%f vs saturation=%f", huge, saturated)
	}
	if saturated != cfg.SizeWeight {
		t.Errorf("saturated size factor = %f, want %f", saturated, cfg.SizeWeight)
	}
}

func TestScoreMonotonicInSize(t *testing.T) {
	s := NewScorer()

	prev := -1.0
	for _, size := range []float64{11, 12, 13, 14, 16, 18, 20} {
		got := s.scoreSpan(makeSpan("T", size, false, 1, 500), 11, false, 0)
		if got < prev {
			t.Errorf("score not monotonic at %fpt: %f < %f", size, got, prev)
		}
		prev = got
	}
}

func TestScoreLengthPenalty(t *testing.T) {
	s := NewScorer()

	long := "this span has far too many words to plausibly be a heading because " +
		"it runs on and on across multiple clauses like a full sentence of body text would"
	short := "Short heading"

	longScore := s.scoreSpan(model.TextSpan{Text: long, FontSize: 14}, 11, false, 0)
	shortScore := s.scoreSpan(model.TextSpan{Text: short, FontSize: 14}, 11, false, 0)
	if longScore >= shortScore {
		t.Errorf("long span should be penalized: long=%f short=%f", longScore, shortScore)
	}
}

func TestScorePatternBoostAlone(t *testing.T) {
	s := NewScorer()

	// Modest size, not bold: the chapter pattern boost plus isolation must
	// carry it past the threshold.
	heading := makeSpan("第1章 概要", 12, false, 1, 500)
	doc := bodyDoc(heading)

	result := s.Score(doc, script.CJK)

	var found *ScoredSpan
	for i := range result.Retained {
		if result.Retained[i].Text == "第1章 概要" {
			found = &result.Retained[i]
		}
	}
	if found == nil {
		t.Fatalf("pattern-tagged span should be retained (threshold %f)", result.Threshold)
	}
	if found.Tag != pattern.TagChapter {
		t.Errorf("tag = %v, want TagChapter", found.Tag)
	}
	if found.Depth != 1 {
		t.Errorf("depth = %d, want 1", found.Depth)
	}
}

func TestScoreRangeClamped(t *testing.T) {
	s := NewScorer()

	// Everything stacked: size, bold, isolation, pattern.
	sc := s.scoreSpan(makeSpan("Chapter 1", 40, true, 1, 500), 11, true, 0.35)
	if sc > 1.0 || sc < 0.0 {
		t.Errorf("score out of range: %f", sc)
	}
}

func TestComputeIsolation(t *testing.T) {
	s := NewScorer()

	doc := bodyDoc(makeSpan("Lonely Heading", 14, true, 1, 400))
	result := s.Score(doc, script.Latin)

	for _, sp := range result.Spans {
		if sp.Text == "Lonely Heading" && !sp.Isolated {
			t.Error("well-separated heading should be isolated")
		}
	}

	// Body lines at uniform spacing are not isolated (gaps equal the
	// median, not above it).
	for _, sp := range result.Spans[1 : len(result.Spans)-2] {
		if sp.FontSize == 11 && sp.Isolated {
			t.Errorf("uniformly spaced body line should not be isolated: %q top=%f", sp.Text, sp.BBox.Top())
		}
	}
}

func TestDeriveThresholdClamped(t *testing.T) {
	s := NewScorer()
	cfg := DefaultConfig()

	// All-zero scores: threshold sits at the floor.
	spans := make([]ScoredSpan, 10)
	if got := s.deriveThreshold(spans); got != cfg.ThresholdFloor {
		t.Errorf("threshold = %f, want floor %f", got, cfg.ThresholdFloor)
	}

	// All-high scores: threshold is capped so strong patterns stay
	// acceptable.
	for i := range spans {
		spans[i].Score = 0.9
	}
	if got := s.deriveThreshold(spans); got != cfg.ThresholdCeiling {
		t.Errorf("threshold = %f, want ceiling %f", got, cfg.ThresholdCeiling)
	}
}

func TestScoreDeterministic(t *testing.T) {
	s := NewScorer()
	doc := bodyDoc(
		makeSpan("Heading One", 18, true, 1, 500),
		makeSpan("Heading Two", 14, true, 1, 300),
	)

	a := s.Score(doc, script.Latin)
	b := s.Score(doc, script.Latin)

	if len(a.Retained) != len(b.Retained) {
		t.Fatalf("non-deterministic retention: %d vs %d", len(a.Retained), len(b.Retained))
	}
	for i := range a.Retained {
		if a.Retained[i].Score != b.Retained[i].Score || a.Retained[i].Index != b.Retained[i].Index {
			t.Errorf("non-deterministic scores at %d", i)
		}
	}
	if a.Threshold != b.Threshold {
		t.Errorf("non-deterministic threshold: %f vs %f", a.Threshold, b.Threshold)
	}
}
