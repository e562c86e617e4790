// Package deck renders questions into slides and writes one .pptx per
// subject.
package deck

import (
	"fmt"
	"strings"

	"github.com/raunakm/stepdeck/internal/pptx"
	"github.com/raunakm/stepdeck/internal/qgen"
)

// Slide styling. The highlight color marks the correct answer on the
// revealed slide.
var (
	bodyColor      = pptx.RGB{R: 54, G: 54, B: 54}
	highlightColor = pptx.RGB{R: 255, G: 0, B: 0}
)

const (
	fontName      = "Proxima Nova Regular"
	stemSizePt    = 16
	explSizePt    = 12
	correctPrefix = "Correct. "
	wrongPrefix   = "Incorrect. "
)

// AddPlainSlide appends the question-only slide: stem, one paragraph per
// choice in payload order, and a trailing blank paragraph.
func AddPlainSlide(prs *pptx.Presentation, q *qgen.Question) *pptx.Slide {
	return addSlide(prs, q, false)
}

// AddRevealedSlide appends the answer slide: same as the plain slide but
// with the correct choice in the highlight color, followed by the
// correct choice's explanation (highlighted) and then one explanation
// per incorrect choice, all at the smaller size.
func AddRevealedSlide(prs *pptx.Presentation, q *qgen.Question) *pptx.Slide {
	return addSlide(prs, q, true)
}

func addSlide(prs *pptx.Presentation, q *qgen.Question, reveal bool) *pptx.Slide {
	s := prs.AddSlide()

	s.AddParagraph(pptx.Paragraph{
		Text:   q.Stem,
		SizePt: stemSizePt,
		Color:  bodyColor,
		Font:   fontName,
	})

	for _, c := range q.Choices {
		color := bodyColor
		if reveal && c.Label == q.CorrectLabel {
			color = highlightColor
		}
		s.AddParagraph(pptx.Paragraph{
			Text:   fmt.Sprintf("%s: %s", c.Label, c.Text),
			SizePt: stemSizePt,
			Color:  color,
			Font:   fontName,
		})
	}

	s.AddParagraph(pptx.Paragraph{})

	if reveal {
		addExplanations(s, q)
	}

	return s
}

func addExplanations(s *pptx.Slide, q *qgen.Question) {
	s.AddParagraph(pptx.Paragraph{
		Text:   fmt.Sprintf("%s: %s", q.CorrectLabel, strings.ReplaceAll(q.Explanations[q.CorrectLabel], correctPrefix, "")),
		SizePt: explSizePt,
		Color:  highlightColor,
		Font:   fontName,
	})

	for _, c := range q.Choices {
		if c.Label == q.CorrectLabel {
			continue
		}
		s.AddParagraph(pptx.Paragraph{
			Text:   fmt.Sprintf("%s: %s", c.Label, strings.ReplaceAll(q.Explanations[c.Label], wrongPrefix, "")),
			SizePt: explSizePt,
			Color:  bodyColor,
			Font:   fontName,
		})
	}
}

// Build renders both slide variants for every question, in order.
func Build(questions []*qgen.Question) *pptx.Presentation {
	prs := pptx.New()
	for _, q := range questions {
		AddPlainSlide(prs, q)
		AddRevealedSlide(prs, q)
	}
	return prs
}

// BuildFromPayloads parses raw question payload strings (bare JSON or
// fenced blocks) and renders them. A malformed payload fails the whole
// deck, matching the all-or-nothing save semantics.
func BuildFromPayloads(payloads []string) (*pptx.Presentation, error) {
	questions := make([]*qgen.Question, 0, len(payloads))
	for i, raw := range payloads {
		q, err := qgen.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("payload %d: %w", i+1, err)
		}
		questions = append(questions, q)
	}
	return Build(questions), nil
}
