package deck

import (
	"strings"
	"testing"

	"github.com/raunakm/stepdeck/internal/pptx"
	"github.com/raunakm/stepdeck/internal/qgen"
)

func sampleQuestion() *qgen.Question {
	return &qgen.Question{
		Stem: "A study reports a p-value of 0.04. Which statement is most accurate?",
		Choices: []qgen.Choice{
			{Label: "A", Text: "The null hypothesis is true"},
			{Label: "B", Text: "There is a 4% probability of these results if the null hypothesis is true"},
			{Label: "C", Text: "The effect size is large"},
		},
		CorrectLabel: "B",
		Explanations: map[string]string{
			"A": "Incorrect. A p-value never proves the null hypothesis.",
			"B": "Correct. The p-value is the probability of results at least this extreme under the null.",
			"C": "Incorrect. Significance says nothing about effect size.",
		},
		Concept: "p-value interpretation",
	}
}

func paragraphTexts(s *pptx.Slide) []string {
	var out []string
	for _, p := range s.Paragraphs() {
		out = append(out, p.Text)
	}
	return out
}

func findParagraph(t *testing.T, s *pptx.Slide, substr string) pptx.Paragraph {
	t.Helper()
	for _, p := range s.Paragraphs() {
		if strings.Contains(p.Text, substr) {
			return p
		}
	}
	t.Fatalf("no paragraph contains %q; have %v", substr, paragraphTexts(s))
	return pptx.Paragraph{}
}

func TestAddPlainSlide(t *testing.T) {
	prs := pptx.New()
	q := sampleQuestion()
	s := AddPlainSlide(prs, q)

	texts := paragraphTexts(s)
	// Stem, three choices, trailing blank.
	if len(texts) != 5 {
		t.Fatalf("expected 5 paragraphs, got %d: %v", len(texts), texts)
	}
	if texts[0] != q.Stem {
		t.Errorf("first paragraph should be the stem, got %q", texts[0])
	}
	if texts[1] != "A: The null hypothesis is true" {
		t.Errorf("unexpected choice formatting: %q", texts[1])
	}
	if texts[4] != "" {
		t.Errorf("expected trailing blank paragraph, got %q", texts[4])
	}

	// No highlight on the question-only slide.
	for _, p := range s.Paragraphs() {
		if p.Color == highlightColor {
			t.Errorf("plain slide must not highlight anything: %q", p.Text)
		}
	}
}

func TestAddRevealedSlide(t *testing.T) {
	prs := pptx.New()
	q := sampleQuestion()
	s := AddRevealedSlide(prs, q)

	// Correct choice is highlighted at stem size.
	correct := findParagraph(t, s, "B: There is a 4% probability")
	if correct.Color != highlightColor {
		t.Errorf("correct choice should be highlighted, got %v", correct.Color)
	}
	if correct.SizePt != stemSizePt {
		t.Errorf("choice size = %v, want %v", correct.SizePt, stemSizePt)
	}

	// Incorrect choices stay in body color.
	wrong := findParagraph(t, s, "A: The null hypothesis is true")
	if wrong.Color != bodyColor {
		t.Errorf("incorrect choice should use body color, got %v", wrong.Color)
	}

	// The correct explanation comes first, highlighted, smaller, and with
	// the "Correct. " prefix stripped.
	expl := findParagraph(t, s, "The p-value is the probability")
	if strings.Contains(expl.Text, "Correct. ") {
		t.Errorf("prefix not stripped: %q", expl.Text)
	}
	if !strings.HasPrefix(expl.Text, "B: ") {
		t.Errorf("explanation should lead with its label: %q", expl.Text)
	}
	if expl.Color != highlightColor {
		t.Errorf("correct explanation should be highlighted, got %v", expl.Color)
	}
	if expl.SizePt != explSizePt {
		t.Errorf("explanation size = %v, want %v", expl.SizePt, explSizePt)
	}

	// Incorrect explanations follow with their prefix stripped too.
	wrongExpl := findParagraph(t, s, "Significance says nothing")
	if strings.Contains(wrongExpl.Text, "Incorrect. ") {
		t.Errorf("prefix not stripped: %q", wrongExpl.Text)
	}
	if wrongExpl.Color != bodyColor {
		t.Errorf("incorrect explanation should use body color, got %v", wrongExpl.Color)
	}
}

func TestRevealedSlide_ExplanationOrder(t *testing.T) {
	prs := pptx.New()
	q := sampleQuestion()
	s := AddRevealedSlide(prs, q)

	texts := paragraphTexts(s)
	// Stem, 3 choices, blank, correct explanation, 2 incorrect explanations.
	if len(texts) != 8 {
		t.Fatalf("expected 8 paragraphs, got %d: %v", len(texts), texts)
	}
	if !strings.HasPrefix(texts[5], "B: ") {
		t.Errorf("correct explanation must come first, got %q", texts[5])
	}
	if !strings.HasPrefix(texts[6], "A: ") || !strings.HasPrefix(texts[7], "C: ") {
		t.Errorf("incorrect explanations must follow in option order: %v", texts[5:])
	}
}

func TestBuild_TwoSlidesPerQuestion(t *testing.T) {
	questions := []*qgen.Question{sampleQuestion(), sampleQuestion()}
	prs := Build(questions)
	if prs.SlideCount() != 4 {
		t.Errorf("expected 4 slides, got %d", prs.SlideCount())
	}
}

func TestBuildFromPayloads(t *testing.T) {
	payload := "```json\n" + `{
		"question": "A 2x2 table yields a sensitivity of 90%. What does this mean?",
		"options": {
			"A": "90% of diseased patients test positive",
			"B": "90% of positive tests are diseased"
		},
		"correct_answer": "A",
		"explanation": {
			"A": "Correct. Sensitivity is the true positive rate among the diseased.",
			"B": "Incorrect. That describes positive predictive value."
		}
	}` + "\n```"

	prs, err := BuildFromPayloads([]string{payload})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prs.SlideCount() != 2 {
		t.Fatalf("expected 2 slides, got %d", prs.SlideCount())
	}

	revealed := prs.Slides()[1]
	correct := findParagraph(t, revealed, "A: 90% of diseased patients test positive")
	if correct.Color != highlightColor {
		t.Errorf("expected correct choice highlighted on revealed slide")
	}
	expl := findParagraph(t, revealed, "true positive rate")
	if strings.Contains(expl.Text, "Correct. ") {
		t.Errorf("prefix not stripped: %q", expl.Text)
	}
}

func TestBuildFromPayloads_Malformed(t *testing.T) {
	_, err := BuildFromPayloads([]string{`{"question": "q"}`})
	if err == nil {
		t.Fatal("expected error for malformed payload")
	}
	if !strings.Contains(err.Error(), "payload 1") {
		t.Errorf("error should name the payload index: %v", err)
	}
}
