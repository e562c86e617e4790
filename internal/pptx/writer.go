package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strings"
)

// EMU (English Metric Units) per inch; all PresentationML geometry uses EMU.
const emuPerInch = 914400

// Text box geometry: 0.5in margin, 9in wide, 6in tall on a 10x7.5in slide.
const (
	boxOffEMU    = emuPerInch / 2
	boxWidthEMU  = 9 * emuPerInch
	boxHeightEMU = 6 * emuPerInch
	slideCX      = 10 * emuPerInch
	slideCY      = 7*emuPerInch + emuPerInch/2
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// WriteTo serializes the presentation as a .pptx zip.
func (p *Presentation) WriteTo(w io.Writer) error {
	zw := zip.NewWriter(w)

	parts := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", p.contentTypes()},
		{"_rels/.rels", rootRels},
		{"ppt/presentation.xml", p.presentationXML()},
		{"ppt/_rels/presentation.xml.rels", p.presentationRels()},
		{"ppt/slideMasters/slideMaster1.xml", slideMasterXML},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRels},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayoutXML},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRels},
	}
	for i, s := range p.slides {
		n := i + 1
		parts = append(parts,
			struct{ name, body string }{
				fmt.Sprintf("ppt/slides/slide%d.xml", n), slideXML(s),
			},
			struct{ name, body string }{
				fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), slideRels,
			},
		)
	}

	for _, part := range parts {
		f, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("create zip entry %s: %w", part.name, err)
		}
		if _, err := io.WriteString(f, part.body); err != nil {
			return fmt.Errorf("write zip entry %s: %w", part.name, err)
		}
	}

	return zw.Close()
}

func (p *Presentation) contentTypes() string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	b.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>`)
	for i := range p.slides {
		fmt.Fprintf(&b, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i+1)
	}
	b.WriteString(`</Types>`)
	return b.String()
}

const rootRels = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/>` +
	`</Relationships>`

func (p *Presentation) presentationXML() string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<p:presentation xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">`)
	b.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	if len(p.slides) > 0 {
		b.WriteString(`<p:sldIdLst>`)
		for i := range p.slides {
			// Slide IDs must be >= 256; rels for slides start at rId2.
			fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, i+2)
		}
		b.WriteString(`</p:sldIdLst>`)
	}
	fmt.Fprintf(&b, `<p:sldSz cx="%d" cy="%d"/><p:notesSz cx="%d" cy="%d"/>`, slideCX, slideCY, slideCY, slideCX)
	b.WriteString(`</p:presentation>`)
	return b.String()
}

func (p *Presentation) presentationRels() string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	b.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="slideMasters/slideMaster1.xml"/>`)
	for i := range p.slides {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`, i+2, i+1)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

const slideMasterXML = xmlHeader +
	`<p:sldMaster xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">` +
	`<p:cSld><p:spTree>` +
	`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
	`<p:grpSpPr/>` +
	`</p:spTree></p:cSld>` +
	`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>` +
	`<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst>` +
	`</p:sldMaster>`

const slideMasterRels = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>` +
	`</Relationships>`

// Layout 1 is the blank layout every slide uses.
const slideLayoutXML = xmlHeader +
	`<p:sldLayout xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" type="blank">` +
	`<p:cSld><p:spTree>` +
	`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
	`<p:grpSpPr/>` +
	`</p:spTree></p:cSld>` +
	`</p:sldLayout>`

const slideLayoutRels = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="../slideMasters/slideMaster1.xml"/>` +
	`</Relationships>`

const slideRels = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>` +
	`</Relationships>`

func slideXML(s *Slide) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">`)
	b.WriteString(`<p:cSld><p:spTree>`)
	b.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`)
	b.WriteString(`<p:grpSpPr/>`)

	b.WriteString(`<p:sp>`)
	b.WriteString(`<p:nvSpPr><p:cNvPr id="2" name="Content"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`)
	fmt.Fprintf(&b, `<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>`,
		boxOffEMU, boxOffEMU, boxWidthEMU, boxHeightEMU)

	b.WriteString(`<p:txBody><a:bodyPr wrap="square"><a:normAutofit/></a:bodyPr><a:lstStyle/>`)
	for _, para := range s.paragraphs {
		writeParagraph(&b, para)
	}
	b.WriteString(`</p:txBody></p:sp>`)

	b.WriteString(`</p:spTree></p:cSld>`)
	b.WriteString(`</p:sld>`)
	return b.String()
}

func writeParagraph(b *strings.Builder, p Paragraph) {
	if p.Text == "" {
		b.WriteString(`<a:p/>`)
		return
	}

	size := p.SizePt
	if size <= 0 {
		size = 16
	}
	spacing := p.LineSpacingPt
	if spacing <= 0 {
		spacing = size * 1.15
	}

	b.WriteString(`<a:p>`)
	// Line spacing in hundredths of a point.
	fmt.Fprintf(b, `<a:pPr><a:lnSpc><a:spcPts val="%d"/></a:lnSpc></a:pPr>`, hundredths(spacing))
	b.WriteString(`<a:r>`)
	// Font size in hundredths of a point.
	fmt.Fprintf(b, `<a:rPr lang="en-US" sz="%d" dirty="0"><a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, hundredths(size), p.Color.Hex())
	if p.Font != "" {
		fmt.Fprintf(b, `<a:latin typeface="%s"/>`, escapeAttr(p.Font))
	}
	b.WriteString(`</a:rPr>`)
	fmt.Fprintf(b, `<a:t>%s</a:t>`, escapeText(p.Text))
	b.WriteString(`</a:r></a:p>`)
}

// hundredths converts points to the hundredths-of-a-point integers
// PresentationML uses for sz and spcPts.
func hundredths(pt float64) int {
	return int(math.Round(pt * 100))
}

func escapeText(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func escapeAttr(s string) string {
	return escapeText(s)
}
