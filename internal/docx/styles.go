package docx

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Font and color scheme. Sizes are OOXML half-points.
const (
	fontBody    = "Times New Roman"
	fontHeading = "Arial"
	fontCode    = "Consolas"

	colorBodyText     = "212121"
	colorLink         = "0563C1"
	colorQuoteText    = "555555"
	colorQuoteBorder  = "BBBBBB"
	colorInlineCodeBG = "E8E8E8"
	colorCodeBlockBG  = "F8F8F8"
	colorCodeBorder   = "DDDDDD"
	colorTableHeadBG  = "E3F2FD"
	colorTableBorder  = "BBBBBB"
	colorRule         = "CCCCCC"
	colorCaption      = "666666"
	colorError        = "CC0000"
)

var headingSizes = [6]int{40, 32, 28, 24, 22, 22}

var stylesXML = buildStyles()

func buildStyles() string {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`)

	// Document defaults.
	sb.WriteString(`<w:docDefaults><w:rPrDefault><w:rPr>` +
		`<w:rFonts w:ascii="` + fontBody + `" w:hAnsi="` + fontBody + `" w:eastAsia="` + fontBody + `"/>` +
		`<w:sz w:val="24"/><w:color w:val="` + colorBodyText + `"/>` +
		`</w:rPr></w:rPrDefault>` +
		`<w:pPrDefault><w:pPr><w:spacing w:after="160" w:line="276" w:lineRule="auto"/></w:pPr></w:pPrDefault>` +
		`</w:docDefaults>`)

	sb.WriteString(`<w:style w:type="paragraph" w:default="1" w:styleId="Normal">` +
		`<w:name w:val="Normal"/></w:style>`)

	for i, size := range headingSizes {
		level := i + 1
		sb.WriteString(fmt.Sprintf(
			`<w:style w:type="paragraph" w:styleId="Heading%d">`+
				`<w:name w:val="heading %d"/><w:basedOn w:val="Normal"/>`+
				`<w:pPr><w:keepNext/><w:spacing w:before="240" w:after="120"/><w:outlineLvl w:val="%d"/></w:pPr>`+
				`<w:rPr><w:rFonts w:ascii="%s" w:hAnsi="%s"/><w:b/><w:sz w:val="%d"/></w:rPr>`+
				`</w:style>`,
			level, level, i, fontHeading, fontHeading, size))
	}

	sb.WriteString(`<w:style w:type="character" w:styleId="Hyperlink">` +
		`<w:name w:val="Hyperlink"/>` +
		`<w:rPr><w:color w:val="` + colorLink + `"/><w:u w:val="single"/></w:rPr>` +
		`</w:style>`)

	sb.WriteString(`<w:style w:type="character" w:styleId="InlineCode">` +
		`<w:name w:val="Inline Code"/>` +
		`<w:rPr><w:rFonts w:ascii="` + fontCode + `" w:hAnsi="` + fontCode + `"/>` +
		`<w:sz w:val="19"/><w:shd w:val="clear" w:color="auto" w:fill="` + colorInlineCodeBG + `"/></w:rPr>` +
		`</w:style>`)

	sb.WriteString(`<w:style w:type="paragraph" w:styleId="Quote">` +
		`<w:name w:val="Quote"/><w:basedOn w:val="Normal"/>` +
		`<w:pPr><w:ind w:left="480"/>` +
		`<w:pBdr><w:left w:val="single" w:sz="18" w:space="8" w:color="` + colorQuoteBorder + `"/></w:pBdr></w:pPr>` +
		`<w:rPr><w:i/><w:color w:val="` + colorQuoteText + `"/></w:rPr>` +
		`</w:style>`)

	sb.WriteString(`<w:style w:type="paragraph" w:styleId="Caption">` +
		`<w:name w:val="caption"/><w:basedOn w:val="Normal"/>` +
		`<w:pPr><w:jc w:val="center"/><w:spacing w:after="240"/></w:pPr>` +
		`<w:rPr><w:i/><w:sz w:val="20"/><w:color w:val="` + colorCaption + `"/></w:rPr>` +
		`</w:style>`)

	sb.WriteString(`</w:styles>`)
	return sb.String()
}

// numberingXML declares one bullet and one decimal abstract definition,
// both six levels deep. numId 1 is the shared bullet instance; every
// ordered list in the body gets its own instance so numbering restarts.
func (b *builder) numberingXML() string {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<w:numbering xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`)

	bullets := []string{"", "o", ""}
	sb.WriteString(`<w:abstractNum w:abstractNumId="0">`)
	for lvl := 0; lvl < 6; lvl++ {
		sb.WriteString(fmt.Sprintf(
			`<w:lvl w:ilvl="%d"><w:numFmt w:val="bullet"/><w:lvlText w:val="%s"/>`+
				`<w:pPr><w:ind w:left="%d" w:hanging="360"/></w:pPr>`+
				`<w:rPr><w:rFonts w:ascii="Symbol" w:hAnsi="Symbol"/></w:rPr></w:lvl>`,
			lvl, bullets[lvl%len(bullets)], 720+lvl*504))
	}
	sb.WriteString(`</w:abstractNum>`)

	sb.WriteString(`<w:abstractNum w:abstractNumId="1">`)
	for lvl := 0; lvl < 6; lvl++ {
		sb.WriteString(fmt.Sprintf(
			`<w:lvl w:ilvl="%d"><w:start w:val="1"/><w:numFmt w:val="decimal"/>`+
				`<w:lvlText w:val="%%%d."/>`+
				`<w:pPr><w:ind w:left="%d" w:hanging="360"/></w:pPr></w:lvl>`,
			lvl, lvl+1, 720+lvl*504))
	}
	sb.WriteString(`</w:abstractNum>`)

	sb.WriteString(`<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>`)
	for _, id := range b.orderedNums {
		sb.WriteString(fmt.Sprintf(`<w:num w:numId="%d"><w:abstractNumId w:val="1"/>`, id))
		for lvl := 0; lvl < 6; lvl++ {
			sb.WriteString(fmt.Sprintf(
				`<w:lvlOverride w:ilvl="%d"><w:startOverride w:val="1"/></w:lvlOverride>`, lvl))
		}
		sb.WriteString(`</w:num>`)
	}
	sb.WriteString(`</w:numbering>`)
	return sb.String()
}
