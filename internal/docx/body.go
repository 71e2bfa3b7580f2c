package docx

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/shynneri-source/markdocx/internal/document"
	"github.com/shynneri-source/markdocx/internal/fileutil"
	"github.com/shynneri-source/markdocx/internal/highlight"
	"github.com/shynneri-source/markdocx/internal/mathml"
	"github.com/shynneri-source/markdocx/internal/render"
)

// emu per pixel at 96 DPI, and the width cap for embedded images.
const (
	emuPerPixel = 9525
	maxImageEMU = 6 * 914400
)

// blockCtx carries inherited formatting into nested blocks.
type blockCtx struct {
	quote bool
	// numID and level are set for the first paragraph of a list item.
	numID int
	level int
	// indent applies to follow-up paragraphs inside a list item.
	indent int
}

func (b *builder) buildBody(doc *document.Document) {
	for _, n := range doc.Children {
		b.writeNode(n, blockCtx{})
	}
	b.writeFootnotes(doc.Footnotes)
}

func (b *builder) writeNode(n document.Node, ctx blockCtx) {
	switch t := n.(type) {
	case *document.Heading:
		b.body.WriteString(fmt.Sprintf(`<w:p><w:pPr><w:pStyle w:val="Heading%d"/></w:pPr>`, t.Level))
		b.writeRuns(t.Runs)
		b.body.WriteString(`</w:p>`)

	case *document.Paragraph:
		b.openParagraph(ctx)
		b.writeRuns(t.Runs)
		b.body.WriteString(`</w:p>`)

	case *document.List:
		b.writeList(t)

	case *document.Table:
		b.writeTable(t)

	case *document.Blockquote:
		sub := ctx
		sub.quote = true
		for _, child := range t.Children {
			b.writeNode(child, sub)
		}

	case *document.CodeBlock:
		b.writeCodeBlock(t)

	case *document.MathBlock:
		b.writeMathBlock(t)

	case *document.Diagram:
		b.writeDiagram(t)

	case *document.Image:
		b.writeBlockImage(t.Src, t.Alt, t.Title)

	case *document.Rule:
		b.body.WriteString(`<w:p><w:pPr><w:pBdr>` +
			`<w:bottom w:val="single" w:sz="6" w:space="1" w:color="` + colorRule + `"/>` +
			`</w:pBdr></w:pPr></w:p>`)
	}
}

// openParagraph writes <w:p> with the paragraph properties ctx calls for.
// The caller closes the element.
func (b *builder) openParagraph(ctx blockCtx) {
	b.body.WriteString(`<w:p>`)
	var props strings.Builder
	if ctx.quote {
		props.WriteString(`<w:pStyle w:val="Quote"/>`)
	}
	if ctx.numID > 0 {
		props.WriteString(fmt.Sprintf(`<w:numPr><w:ilvl w:val="%d"/><w:numId w:val="%d"/></w:numPr>`,
			ctx.level, ctx.numID))
	} else if ctx.indent > 0 {
		props.WriteString(fmt.Sprintf(`<w:ind w:left="%d"/>`, ctx.indent))
	}
	if props.Len() > 0 {
		b.body.WriteString(`<w:pPr>` + props.String() + `</w:pPr>`)
	}
}

func (b *builder) writeList(list *document.List) {
	numID := 1
	if list.Ordered {
		numID = b.newOrderedNum()
	}
	for _, item := range list.Items {
		first := true
		for _, child := range item.Children {
			switch child.(type) {
			case *document.List:
				// Nested lists carry their own numbering.
				b.writeNode(child, blockCtx{})
			case *document.Paragraph:
				ctx := blockCtx{indent: 720 + list.Depth*504}
				if first {
					ctx = blockCtx{numID: numID, level: list.Depth}
					first = false
				}
				b.writeNode(child, ctx)
			default:
				b.writeNode(child, blockCtx{indent: 720 + list.Depth*504})
			}
		}
	}
}

func (b *builder) writeTable(t *document.Table) {
	border := `<w:tblBorders>` +
		`<w:top w:val="single" w:sz="4" w:color="` + colorTableBorder + `"/>` +
		`<w:left w:val="single" w:sz="4" w:color="` + colorTableBorder + `"/>` +
		`<w:bottom w:val="single" w:sz="4" w:color="` + colorTableBorder + `"/>` +
		`<w:right w:val="single" w:sz="4" w:color="` + colorTableBorder + `"/>` +
		`<w:insideH w:val="single" w:sz="4" w:color="` + colorTableBorder + `"/>` +
		`<w:insideV w:val="single" w:sz="4" w:color="` + colorTableBorder + `"/>` +
		`</w:tblBorders>`
	b.body.WriteString(`<w:tbl><w:tblPr>` + border +
		`<w:tblW w:w="0" w:type="auto"/></w:tblPr>`)

	if t.Header != nil {
		b.writeTableRow(t, t.Header, true)
	}
	for _, row := range t.Rows {
		b.writeTableRow(t, row, false)
	}
	b.body.WriteString(`</w:tbl>`)
}

func (b *builder) writeTableRow(t *document.Table, cells []document.Cell, header bool) {
	b.body.WriteString(`<w:tr>`)
	for i, cell := range cells {
		b.body.WriteString(`<w:tc><w:tcPr>`)
		if header {
			b.body.WriteString(`<w:shd w:val="clear" w:color="auto" w:fill="` + colorTableHeadBG + `"/>`)
		}
		b.body.WriteString(`</w:tcPr><w:p>`)

		var props []string
		if i < len(t.Aligns) {
			switch t.Aligns[i] {
			case document.AlignCenter:
				props = append(props, `<w:jc w:val="center"/>`)
			case document.AlignRight:
				props = append(props, `<w:jc w:val="right"/>`)
			}
		}
		if len(props) > 0 {
			b.body.WriteString(`<w:pPr>` + strings.Join(props, "") + `</w:pPr>`)
		}

		runs := []document.Run(cell)
		if header {
			bolded := make([]document.Run, len(runs))
			for j, r := range runs {
				r.Bold = true
				bolded[j] = r
			}
			runs = bolded
		}
		b.writeRuns(runs)
		b.body.WriteString(`</w:p></w:tc>`)
	}
	b.body.WriteString(`</w:tr>`)
}

// writeCodeBlock emits one shaded, bordered paragraph per source block with
// a line break between source lines and per-token coloring.
func (b *builder) writeCodeBlock(cb *document.CodeBlock) {
	b.body.WriteString(`<w:p><w:pPr>` +
		`<w:shd w:val="clear" w:color="auto" w:fill="` + colorCodeBlockBG + `"/>` +
		`<w:pBdr>` +
		`<w:top w:val="single" w:sz="4" w:space="6" w:color="` + colorCodeBorder + `"/>` +
		`<w:left w:val="single" w:sz="4" w:space="6" w:color="` + colorCodeBorder + `"/>` +
		`<w:bottom w:val="single" w:sz="4" w:space="6" w:color="` + colorCodeBorder + `"/>` +
		`<w:right w:val="single" w:sz="4" w:space="6" w:color="` + colorCodeBorder + `"/>` +
		`</w:pBdr><w:spacing w:after="0" w:line="240" w:lineRule="auto"/></w:pPr>`)

	code := strings.TrimRight(cb.Code, "\n")
	for _, frag := range highlight.Highlight(code, cb.Language) {
		lines := strings.Split(frag.Text, "\n")
		for i, line := range lines {
			if i > 0 {
				b.body.WriteString(`<w:r><w:br/></w:r>`)
			}
			if line == "" {
				continue
			}
			b.body.WriteString(`<w:r><w:rPr>` +
				`<w:rFonts w:ascii="` + fontCode + `" w:hAnsi="` + fontCode + `"/><w:sz w:val="18"/>`)
			if frag.Color != "" {
				b.body.WriteString(`<w:color w:val="` + frag.Color + `"/>`)
			}
			b.body.WriteString(`</w:rPr>` + textElem(line) + `</w:r>`)
		}
	}
	b.body.WriteString(`</w:p>`)
}

func (b *builder) writeMathBlock(mb *document.MathBlock) {
	omml, err := mathml.DisplayOMML(mb.TeX)
	if err != nil {
		// Outside the supported subset: show the source centered in mono.
		b.body.WriteString(`<w:p><w:pPr><w:jc w:val="center"/></w:pPr>` +
			`<w:r><w:rPr><w:rFonts w:ascii="` + fontCode + `" w:hAnsi="` + fontCode + `"/><w:i/></w:rPr>` +
			textElem(mb.TeX) + `</w:r></w:p>`)
		return
	}
	b.body.WriteString(`<w:p><w:pPr><w:jc w:val="center"/></w:pPr>` + omml + `</w:p>`)
}

// writeDiagram rasterizes the spec and embeds the image. An unusable spec
// degrades to an error note followed by the raw block, so the source is
// never silently lost.
func (b *builder) writeDiagram(d *document.Diagram) {
	if d.Spec != nil {
		if data, err := render.PNG(d.Spec); err == nil {
			b.embedCentered(data, string(d.Diagram))
			if caption := d.Spec.CaptionText(); caption != "" {
				b.writeCaption(caption)
			}
			return
		}
	}

	detail := "empty diagram"
	if d.Err != nil {
		detail = d.Err.Error()
	}
	b.body.WriteString(`<w:p><w:r><w:rPr><w:color w:val="` + colorError + `"/><w:b/></w:rPr>` +
		textElem("[diagram error: "+detail+"]") + `</w:r></w:p>`)
	b.writeCodeBlock(&document.CodeBlock{Code: d.Raw, Language: "text"})
}

func (b *builder) writeCaption(text string) {
	b.body.WriteString(`<w:p><w:pPr><w:pStyle w:val="Caption"/></w:pPr><w:r>` +
		textElem(text) + `</w:r></w:p>`)
}

// writeBlockImage embeds an image file from disk. Remote URLs and missing
// files degrade to a visible placeholder with the alt text.
func (b *builder) writeBlockImage(src, alt, title string) {
	data, err := b.loadImage(src)
	if err != nil {
		label := alt
		if label == "" {
			label = src
		}
		b.body.WriteString(`<w:p><w:r><w:rPr><w:i/><w:color w:val="` + colorCaption + `"/></w:rPr>` +
			textElem("[image: "+label+"]") + `</w:r></w:p>`)
		return
	}
	b.embedCentered(data, alt)
	if title != "" {
		b.writeCaption(title)
	}
}

func (b *builder) loadImage(src string) ([]byte, error) {
	if fileutil.IsURL(src) {
		return nil, fmt.Errorf("docx: remote image %s not embedded", src)
	}
	path := src
	if !filepath.IsAbs(path) {
		path = filepath.Join(b.opts.BaseDir, path)
	}
	return os.ReadFile(path)
}

func (b *builder) embedCentered(data []byte, name string) {
	if run := b.drawingRun(data, name); run != "" {
		b.body.WriteString(`<w:p><w:pPr><w:jc w:val="center"/></w:pPr>` + run + `</w:p>`)
	}
}

// drawingRun registers the media part and returns the inline drawing run,
// scaled down to the page width cap while preserving aspect ratio.
func (b *builder) drawingRun(data []byte, name string) string {
	cfg, ext, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ""
	}
	if ext == "jpeg" {
		ext = "jpg"
	}

	cx := int64(cfg.Width) * emuPerPixel
	cy := int64(cfg.Height) * emuPerPixel
	limit := int64(maxImageEMU)
	if b.opts.MaxImageWidth > 0 {
		limit = int64(b.opts.MaxImageWidth * 914400)
	}
	if cx > limit {
		cy = cy * limit / cx
		cx = limit
	}

	mediaName := b.addMedia(ext, data)
	relID := b.addRel(relImage, "media/"+mediaName, false)
	id := len(b.media)

	return fmt.Sprintf(
		`<w:r><w:drawing>`+
			`<wp:inline distT="0" distB="0" distL="0" distR="0">`+
			`<wp:extent cx="%d" cy="%d"/>`+
			`<wp:docPr id="%d" name="%s"/>`+
			`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">`+
			`<pic:pic>`+
			`<pic:nvPicPr><pic:cNvPr id="%d" name="%s"/><pic:cNvPicPr/></pic:nvPicPr>`+
			`<pic:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`+
			`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
			`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`+
			`</pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r>`,
		cx, cy, id, esc(name), id, esc(name), relID, cx, cy)
}

// writeFootnotes appends the footnote section: a rule, a title, and one
// numbered entry per resolved definition.
func (b *builder) writeFootnotes(notes []*document.Footnote) {
	if len(notes) == 0 {
		return
	}
	b.writeNode(&document.Rule{}, blockCtx{})
	b.body.WriteString(`<w:p><w:r><w:rPr><w:b/></w:rPr>` + textElem("Footnotes") + `</w:r></w:p>`)

	for _, note := range notes {
		b.body.WriteString(`<w:p><w:pPr><w:ind w:left="360" w:hanging="360"/></w:pPr>` +
			`<w:r><w:rPr><w:vertAlign w:val="superscript"/></w:rPr>` +
			textElem(fmt.Sprintf("%d", note.Index)) + `</w:r>` +
			`<w:r>` + textElem(" ") + `</w:r>`)
		if len(note.Children) > 0 {
			if p, ok := note.Children[0].(*document.Paragraph); ok {
				b.writeRuns(p.Runs)
			}
		}
		b.body.WriteString(`</w:p>`)
		if len(note.Children) > 1 {
			for _, extra := range note.Children[1:] {
				b.writeNode(extra, blockCtx{indent: 360})
			}
		}
	}
}

// writeRuns emits the run sequence of one paragraph.
func (b *builder) writeRuns(runs []document.Run) {
	for _, r := range runs {
		switch r.Kind {
		case document.RunBreak:
			b.body.WriteString(`<w:r><w:br/></w:r>`)

		case document.RunCode:
			b.body.WriteString(`<w:r><w:rPr><w:rStyle w:val="InlineCode"/>` + runFlags(r) + `</w:rPr>` +
				textElem(r.Text) + `</w:r>`)

		case document.RunMath:
			omml, err := mathml.InlineOMML(r.Text)
			if err != nil {
				b.body.WriteString(`<w:r><w:rPr><w:i/></w:rPr>` + textElem("$"+r.Text+"$") + `</w:r>`)
				continue
			}
			b.body.WriteString(omml)

		case document.RunLink:
			relID := b.addRel(relHyperlink, r.Dest, true)
			b.body.WriteString(`<w:hyperlink r:id="` + relID + `">` +
				`<w:r><w:rPr><w:rStyle w:val="Hyperlink"/>` + runFlags(r) + `</w:rPr>` +
				textElem(r.Text) + `</w:r></w:hyperlink>`)

		case document.RunImage:
			// Inline images embed the same way as block images; Word
			// treats the drawing as a character.
			b.writeInlineImageRun(r)

		case document.RunFootnoteMark:
			b.body.WriteString(`<w:r><w:rPr><w:vertAlign w:val="superscript"/></w:rPr>` +
				textElem(fmt.Sprintf("%d", r.Index)) + `</w:r>`)

		default:
			b.body.WriteString(`<w:r>`)
			if flags := runFlags(r); flags != "" {
				b.body.WriteString(`<w:rPr>` + flags + `</w:rPr>`)
			}
			b.body.WriteString(textElem(r.Text) + `</w:r>`)
		}
	}
}

func (b *builder) writeInlineImageRun(r document.Run) {
	data, err := b.loadImage(r.Dest)
	if err == nil {
		if run := b.drawingRun(data, r.Alt()); run != "" {
			b.body.WriteString(run)
			return
		}
	}
	label := r.Alt()
	if label == "" {
		label = r.Dest
	}
	b.body.WriteString(`<w:r><w:rPr><w:i/><w:color w:val="` + colorCaption + `"/></w:rPr>` +
		textElem("[image: "+label+"]") + `</w:r>`)
}

// runFlags renders the style toggles shared by text-bearing runs.
func runFlags(r document.Run) string {
	var sb strings.Builder
	if r.Bold {
		sb.WriteString(`<w:b/>`)
	}
	if r.Italic {
		sb.WriteString(`<w:i/>`)
	}
	if r.Strike {
		sb.WriteString(`<w:strike/>`)
	}
	if r.Highlight {
		sb.WriteString(`<w:highlight w:val="yellow"/>`)
	}
	return sb.String()
}

func textElem(s string) string {
	return `<w:t xml:space="preserve">` + esc(s) + `</w:t>`
}
