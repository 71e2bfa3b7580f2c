package geometry

import (
	"encoding/json"
	"strconv"
	"strings"
)

// MatrixSpec is the canonical form of a matrix block: an optional name
// label, a rectangular grid of cell values, and an optional caption. Cells
// keep their string form for display; IsNumeric identifies cells that align
// as numbers.
type MatrixSpec struct {
	Name    string
	Rows    [][]string
	Caption string
}

func (*MatrixSpec) DiagramKind() Kind     { return Matrix }
func (s *MatrixSpec) CaptionText() string { return s.Caption }

// Cols returns the common column count. Rows are padded on parse, so the
// first row is authoritative.
func (s *MatrixSpec) Cols() int {
	if len(s.Rows) == 0 {
		return 0
	}
	return len(s.Rows[0])
}

// ParseMatrix parses a matrix block in JSON or shorthand form.
func ParseMatrix(raw string) (Spec, *ParseError) {
	if isJSON(raw) {
		return parseMatrixJSON(raw)
	}
	return parseMatrixShorthand(raw)
}

// matrixJSON mirrors the JSON surface syntax. Data values may be numbers or
// strings; both normalize to cell text.
type matrixJSON struct {
	Name    string              `json:"name"`
	Data    [][]json.RawMessage `json:"data"`
	Caption string              `json:"caption"`
}

func parseMatrixJSON(raw string) (Spec, *ParseError) {
	var obj matrixJSON
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, &ParseError{Diagram: Matrix, Kind: ErrMalformedJSON, Detail: err.Error()}
	}

	spec := &MatrixSpec{Name: obj.Name, Caption: obj.Caption}
	for _, row := range obj.Data {
		cells := make([]string, 0, len(row))
		for _, v := range row {
			cells = append(cells, jsonCellText(v))
		}
		spec.Rows = append(spec.Rows, cells)
	}
	if len(spec.Rows) == 0 {
		return nil, &ParseError{Diagram: Matrix, Kind: ErrEmptyBody}
	}
	padRows(spec)
	return spec, nil
}

// jsonCellText renders one JSON cell value as display text.
func jsonCellText(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return normalizeCell(s)
	}
	var f float64
	if err := json.Unmarshal(v, &f); err == nil {
		return formatNumber(f)
	}
	return strings.Trim(string(v), `"`)
}

func parseMatrixShorthand(raw string) (Spec, *ParseError) {
	spec := &MatrixSpec{}
	scanning := true

	for _, line := range bodyLines(raw) {
		if v, ok := directive(line, "name"); ok {
			spec.Name = v
			continue
		}
		if v, ok := directive(line, "caption"); ok {
			spec.Caption = v
			continue
		}
		if !scanning {
			continue
		}
		cells := splitCells(line)
		if len(cells) == 0 {
			// A data line with no cells ends row scanning.
			scanning = false
			continue
		}
		spec.Rows = append(spec.Rows, cells)
	}

	if len(spec.Rows) == 0 {
		return nil, &ParseError{Diagram: Matrix, Kind: ErrEmptyBody}
	}
	padRows(spec)
	return spec, nil
}

// splitCells splits a row on commas when present, otherwise on whitespace
// runs, normalizing each cell. Double quotes protect a cell's text: a quoted
// cell keeps commas and emptiness verbatim, with "" for an embedded quote.
func splitCells(line string) []string {
	if strings.ContainsAny(line, `,"`) {
		return splitCommaCells(line)
	}
	var cells []string
	for _, p := range strings.Fields(line) {
		cells = append(cells, normalizeCell(p))
	}
	return cells
}

// splitCommaCells splits on commas outside double quotes. Unquoted cells are
// trimmed and dropped when empty; quoted cells survive as-is.
func splitCommaCells(line string) []string {
	var cells []string
	var cur strings.Builder
	inQuote, quoted := false, false

	flush := func() {
		text := cur.String()
		cur.Reset()
		if !quoted {
			text = strings.TrimSpace(text)
			if text == "" {
				return
			}
		}
		quoted = false
		cells = append(cells, normalizeCell(text))
	}

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuote && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
				continue
			}
			inQuote = !inQuote
			if inQuote && !quoted {
				quoted = true
				cur.Reset()
			}
		case c == ',' && !inQuote:
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return cells
}

// padRows right-pads every row with empty cells to the widest row.
func padRows(s *MatrixSpec) {
	cols := 0
	for _, row := range s.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	for i, row := range s.Rows {
		for len(row) < cols {
			row = append(row, "")
		}
		s.Rows[i] = row
	}
}

// normalizeCell canonicalizes numeric-looking cells (1.0 becomes 1) and
// leaves everything else untouched.
func normalizeCell(cell string) string {
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return formatNumber(f)
	}
	return cell
}

// formatNumber renders a float the way cells display it: integers without a
// decimal point, everything else in shortest form.
func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// IsNumeric reports whether a cell value parses as a number. Numeric cells
// right-align when the matrix renders.
func IsNumeric(cell string) bool {
	_, err := strconv.ParseFloat(cell, 64)
	return err == nil
}

// Shorthand serializes the spec back to the line-oriented syntax. Parsing
// the result yields an identical spec; the canonical form is idempotent.
func (s *MatrixSpec) Shorthand() string {
	var b strings.Builder
	if s.Name != "" {
		b.WriteString("name: ")
		b.WriteString(s.Name)
		b.WriteByte('\n')
	}
	for _, row := range s.Rows {
		parts := make([]string, len(row))
		for i, cell := range row {
			parts[i] = quoteCell(cell)
		}
		b.WriteString(strings.Join(parts, ", "))
		b.WriteByte('\n')
	}
	if s.Caption != "" {
		b.WriteString("caption: ")
		b.WriteString(s.Caption)
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// quoteCell protects cells the comma grammar would otherwise mangle: empty
// cells, and cells containing commas, quotes, or whitespace.
func quoteCell(cell string) string {
	if cell != "" && !strings.ContainsAny(cell, ", \t\"") {
		return cell
	}
	return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
}
