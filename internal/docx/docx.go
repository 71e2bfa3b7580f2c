// Package docx serializes a document tree into a WordprocessingML (.docx)
// package. The writer emits the OPC zip structure directly: content types,
// relationships, the document body, styles, numbering, and embedded media.
//
// No third-party OOXML library covers math runs, per-token syntax coloring,
// and generated diagram media together, so the XML is written by hand
// against the ECMA-376 shapes the output needs.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shynneri-source/markdocx/internal/document"
)

// Options carries document metadata and the directory image paths resolve
// against.
type Options struct {
	Title   string
	Author  string
	Subject string
	BaseDir string
	Created time.Time

	// MaxImageWidth caps embedded image width in inches. Zero means the
	// default 6 inch cap.
	MaxImageWidth float64
}

// Write serializes doc as a complete .docx package to w.
func Write(w io.Writer, doc *document.Document, opts Options) error {
	b := newBuilder(opts)
	b.buildBody(doc)

	zw := zip.NewWriter(w)
	parts := []struct {
		name string
		data string
	}{
		{"[Content_Types].xml", b.contentTypes()},
		{"_rels/.rels", packageRels},
		{"word/_rels/document.xml.rels", b.documentRels()},
		{"word/document.xml", b.documentXML()},
		{"word/styles.xml", stylesXML},
		{"word/numbering.xml", b.numberingXML()},
		{"docProps/core.xml", b.coreXML()},
		{"docProps/app.xml", appXML},
	}
	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return fmt.Errorf("creating %s: %w", p.name, err)
		}
		if _, err := f.Write([]byte(p.data)); err != nil {
			return fmt.Errorf("writing %s: %w", p.name, err)
		}
	}
	for _, m := range b.media {
		f, err := zw.Create("word/media/" + m.name)
		if err != nil {
			return fmt.Errorf("creating media %s: %w", m.name, err)
		}
		if _, err := f.Write(m.data); err != nil {
			return fmt.Errorf("writing media %s: %w", m.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing package: %w", err)
	}
	return nil
}

// relationship is one entry in document.xml.rels.
type relationship struct {
	id       string
	relType  string
	target   string
	external bool
}

type mediaFile struct {
	name string
	data []byte
}

// builder accumulates the document body and its package dependencies.
type builder struct {
	opts  Options
	body  strings.Builder
	rels  []relationship
	media []mediaFile

	// nextNum hands out numbering instances; each ordered list gets its
	// own so numbering restarts per list.
	nextNum     int
	orderedNums []int
}

func newBuilder(opts Options) *builder {
	b := &builder{opts: opts, nextNum: 2}
	b.rels = append(b.rels,
		relationship{id: "rId1", relType: relStyles, target: "styles.xml"},
		relationship{id: "rId2", relType: relNumbering, target: "numbering.xml"},
	)
	return b
}

func (b *builder) addRel(relType, target string, external bool) string {
	id := fmt.Sprintf("rId%d", len(b.rels)+1)
	b.rels = append(b.rels, relationship{id: id, relType: relType, target: target, external: external})
	return id
}

func (b *builder) addMedia(ext string, data []byte) string {
	name := fmt.Sprintf("image%d.%s", len(b.media)+1, ext)
	b.media = append(b.media, mediaFile{name: name, data: data})
	return name
}

// newOrderedNum allocates a numbering instance for one ordered list.
func (b *builder) newOrderedNum() int {
	b.nextNum++
	b.orderedNums = append(b.orderedNums, b.nextNum)
	return b.nextNum
}

const (
	relStyles    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relNumbering = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering"
	relImage     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	relHyperlink = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
)

const packageRels = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties" Target="docProps/app.xml"/>` +
	`</Relationships>`

func (b *builder) contentTypes() string {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	sb.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	sb.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	sb.WriteString(`<Default Extension="png" ContentType="image/png"/>`)
	sb.WriteString(`<Default Extension="jpeg" ContentType="image/jpeg"/>`)
	sb.WriteString(`<Default Extension="jpg" ContentType="image/jpeg"/>`)
	sb.WriteString(`<Default Extension="gif" ContentType="image/gif"/>`)
	sb.WriteString(`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>`)
	sb.WriteString(`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>`)
	sb.WriteString(`<Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>`)
	sb.WriteString(`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>`)
	sb.WriteString(`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>`)
	sb.WriteString(`</Types>`)
	return sb.String()
}

func (b *builder) documentRels() string {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for _, r := range b.rels {
		sb.WriteString(`<Relationship Id="` + r.id + `" Type="` + r.relType + `" Target="` + esc(r.target) + `"`)
		if r.external {
			sb.WriteString(` TargetMode="External"`)
		}
		sb.WriteString(`/>`)
	}
	sb.WriteString(`</Relationships>`)
	return sb.String()
}

func (b *builder) documentXML() string {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"` +
		` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"` +
		` xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"` +
		` xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
		` xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture"` +
		` xmlns:m="http://schemas.openxmlformats.org/officeDocument/2006/math">`)
	sb.WriteString(`<w:body>`)
	sb.WriteString(b.body.String())
	// A4 with one-inch margins.
	sb.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/>` +
		`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440"/></w:sectPr>`)
	sb.WriteString(`</w:body></w:document>`)
	return sb.String()
}

func (b *builder) coreXML() string {
	created := b.opts.Created
	if created.IsZero() {
		created = time.Now()
	}
	stamp := created.UTC().Format(time.RFC3339)
	subject := ""
	if b.opts.Subject != "" {
		subject = `<dc:subject>` + esc(b.opts.Subject) + `</dc:subject>`
	}
	return xml.Header +
		`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"` +
		` xmlns:dc="http://purl.org/dc/elements/1.1/"` +
		` xmlns:dcterms="http://purl.org/dc/terms/"` +
		` xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
		`<dc:title>` + esc(b.opts.Title) + `</dc:title>` +
		`<dc:creator>` + esc(b.opts.Author) + `</dc:creator>` +
		subject +
		`<dcterms:created xsi:type="dcterms:W3CDTF">` + stamp + `</dcterms:created>` +
		`<dcterms:modified xsi:type="dcterms:W3CDTF">` + stamp + `</dcterms:modified>` +
		`</cp:coreProperties>`
}

const appXML = xml.Header +
	`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">` +
	`<Application>markdocx</Application>` +
	`</Properties>`

// esc escapes text for XML element and attribute content.
func esc(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}
