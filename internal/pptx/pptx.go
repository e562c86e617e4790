// Package pptx writes minimal PowerPoint (.pptx) files: blank slides,
// each holding one text box of styled paragraphs. A .pptx is a zip of
// XML parts, so the package is a thin layer over archive/zip and
// hand-assembled PresentationML.
package pptx

import "fmt"

// RGB is a paragraph font color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as PresentationML expects it, e.g. "FF0000".
func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// Paragraph is one line (or wrapped block) of text on a slide.
type Paragraph struct {
	Text string

	// SizePt is the font size in points. Zero means 16pt.
	SizePt float64

	// Color is the font color. The zero value is black.
	Color RGB

	// Font is the typeface name. Empty uses the theme default.
	Font string

	// LineSpacingPt fixes the line height in points. Zero lets the
	// renderer pick 1.15 times the font size.
	LineSpacingPt float64
}

// Slide is an ordered list of paragraphs in a single full-width text box.
type Slide struct {
	paragraphs []Paragraph
}

// AddParagraph appends a paragraph to the slide.
func (s *Slide) AddParagraph(p Paragraph) {
	s.paragraphs = append(s.paragraphs, p)
}

// Paragraphs returns the slide's paragraphs in order.
func (s *Slide) Paragraphs() []Paragraph {
	return s.paragraphs
}

// Presentation is an ordered sequence of slides.
type Presentation struct {
	slides []*Slide
}

// New creates an empty presentation.
func New() *Presentation {
	return &Presentation{}
}

// AddSlide appends a blank slide and returns it for population.
func (p *Presentation) AddSlide() *Slide {
	s := &Slide{}
	p.slides = append(p.slides, s)
	return s
}

// Slides returns the slides in order.
func (p *Presentation) Slides() []*Slide {
	return p.slides
}

// SlideCount returns the number of slides.
func (p *Presentation) SlideCount() int {
	return len(p.slides)
}
