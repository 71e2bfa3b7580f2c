// Package mathml converts a practical subset of LaTeX math into OMML, the
// Office Math Markup Language embedded in WordprocessingML documents.
//
// The subset covers fractions, radicals, super/subscripts, n-ary operators
// with limits, accents, stretchy delimiters, text runs, and the blackboard
// bold number sets. Anything outside the subset fails with
// ErrInvalidExpression so the caller can fall back to a literal run.
package mathml

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidExpression marks input outside the supported subset or with
// broken structure (unbalanced braces, a command missing its argument).
var ErrInvalidExpression = errors.New("mathml: invalid expression")

// node is one element of the parsed expression tree.
type node interface{ isNode() }

// run is a literal leaf. sty selects the OMML run style: "i" italic
// identifier, "p" plain, empty for operators and digits.
type run struct {
	text string
	sty  string
}

type frac struct{ num, den []node }

// rad is a radical. A nil deg renders as a square root with the degree
// slot hidden.
type rad struct{ deg, body []node }

// script attaches subscript and/or superscript to a base.
type script struct{ base, sub, sup []node }

// nary is a big operator (sum, product, integral) with optional limits.
type nary struct {
	chr      string
	sub, sup []node
}

type accent struct {
	chr  string
	base []node
}

// delim is a \left...\right balanced pair.
type delim struct {
	open, close string
	body        []node
}

func (run) isNode()    {}
func (frac) isNode()   {}
func (rad) isNode()    {}
func (script) isNode() {}
func (nary) isNode()   {}
func (accent) isNode() {}
func (delim) isNode()  {}

// shortcuts are normalized before parsing, matching the common habit of
// writing number sets without the \mathbb wrapper.
var shortcuts = strings.NewReplacer(
	`\R`, `\mathbb{R}`,
	`\N`, `\mathbb{N}`,
	`\Z`, `\mathbb{Z}`,
	`\Q`, `\mathbb{Q}`,
	`\C`, `\mathbb{C}`,
)

func normalize(tex string) string {
	s := strings.TrimSpace(tex)
	// Replace only standalone shortcuts so \Rightarrow etc. survive.
	var out strings.Builder
	for i := 0; i < len(s); {
		if s[i] == '\\' && i+1 < len(s) && strings.ContainsRune("RNZQC", rune(s[i+1])) {
			if i+2 >= len(s) || !isCommandRune(rune(s[i+2])) {
				out.WriteString(shortcuts.Replace(s[i : i+2]))
				i += 2
				continue
			}
		}
		out.WriteByte(s[i])
		i++
	}
	return out.String()
}

func isCommandRune(r rune) bool {
	return unicode.IsLetter(r)
}

// parser walks the normalized source rune slice.
type parser struct {
	src []rune
	pos int
}

// parse converts a LaTeX expression to its node tree.
func parse(tex string) ([]node, error) {
	p := &parser{src: []rune(normalize(tex))}
	nodes, err := p.sequence(endOfInput)
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.src) {
		return nil, fmt.Errorf("%w: unexpected %q", ErrInvalidExpression, string(p.src[p.pos]))
	}
	return nodes, nil
}

// stop conditions for sequence parsing.
type stopKind int

const (
	endOfInput stopKind = iota
	closeBrace
	rightDelim
)

func (p *parser) sequence(stop stopKind) ([]node, error) {
	var nodes []node
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			if stop != endOfInput {
				return nil, fmt.Errorf("%w: unterminated group", ErrInvalidExpression)
			}
			return nodes, nil
		}
		switch {
		case p.src[p.pos] == '}':
			if stop != closeBrace {
				return nil, fmt.Errorf("%w: unmatched closing brace", ErrInvalidExpression)
			}
			p.pos++
			return nodes, nil
		case stop == rightDelim && p.peekCommand() == "right":
			return nodes, nil
		}

		n, err := p.atom()
		if err != nil {
			return nil, err
		}
		n, err = p.scripts(n)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

// peekCommand returns the command name starting at pos without consuming,
// or empty if pos is not a backslash.
func (p *parser) peekCommand() string {
	if p.pos >= len(p.src) || p.src[p.pos] != '\\' {
		return ""
	}
	i := p.pos + 1
	for i < len(p.src) && isCommandRune(p.src[i]) {
		i++
	}
	return string(p.src[p.pos+1 : i])
}

// atom parses one unit: a command, a braced group, or a single character.
func (p *parser) atom() (node, error) {
	c := p.src[p.pos]
	switch {
	case c == '\\':
		return p.command()
	case c == '{':
		p.pos++
		nodes, err := p.sequence(closeBrace)
		if err != nil {
			return nil, err
		}
		return delim{body: nodes}, nil
	case c == '^' || c == '_':
		return nil, fmt.Errorf("%w: script without base", ErrInvalidExpression)
	case unicode.IsLetter(c):
		p.pos++
		return run{text: string(c), sty: "i"}, nil
	case unicode.IsDigit(c):
		start := p.pos
		for p.pos < len(p.src) && (unicode.IsDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
			p.pos++
		}
		return run{text: string(p.src[start:p.pos])}, nil
	default:
		p.pos++
		return run{text: string(c)}, nil
	}
}

// group parses a mandatory {...} argument; a bare atom also qualifies, so
// \frac12 works the way TeX resolves it.
func (p *parser) group() ([]node, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, fmt.Errorf("%w: missing argument", ErrInvalidExpression)
	}
	if p.src[p.pos] == '{' {
		p.pos++
		return p.sequence(closeBrace)
	}
	n, err := p.atom()
	if err != nil {
		return nil, err
	}
	return []node{n}, nil
}

// scripts attaches ^ and _ arguments to a freshly parsed base.
func (p *parser) scripts(base node) (node, error) {
	var sub, sup []node
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			break
		}
		switch p.src[p.pos] {
		case '^':
			if sup != nil {
				return nil, fmt.Errorf("%w: double superscript", ErrInvalidExpression)
			}
			p.pos++
			arg, err := p.group()
			if err != nil {
				return nil, err
			}
			sup = arg
			continue
		case '_':
			if sub != nil {
				return nil, fmt.Errorf("%w: double subscript", ErrInvalidExpression)
			}
			p.pos++
			arg, err := p.group()
			if err != nil {
				return nil, err
			}
			sub = arg
			continue
		}
		break
	}
	if sub == nil && sup == nil {
		return base, nil
	}
	if op, ok := base.(nary); ok {
		op.sub, op.sup = sub, sup
		return op, nil
	}
	return script{base: []node{base}, sub: sub, sup: sup}, nil
}

func (p *parser) command() (node, error) {
	name := p.peekCommand()
	if name == "" {
		// Escaped single character such as \{, \%, or a spacing command.
		if p.pos+1 < len(p.src) {
			ch := p.src[p.pos+1]
			p.pos += 2
			if sym, ok := symbols[string(ch)]; ok {
				return run{text: sym}, nil
			}
			return run{text: string(ch)}, nil
		}
		return nil, fmt.Errorf("%w: trailing backslash", ErrInvalidExpression)
	}
	p.pos += 1 + len(name)

	switch name {
	case "frac", "dfrac", "tfrac":
		num, err := p.group()
		if err != nil {
			return nil, err
		}
		den, err := p.group()
		if err != nil {
			return nil, err
		}
		return frac{num: num, den: den}, nil

	case "sqrt":
		var deg []node
		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == '[' {
			p.pos++
			var err error
			deg, err = p.bracketGroup()
			if err != nil {
				return nil, err
			}
		}
		body, err := p.group()
		if err != nil {
			return nil, err
		}
		return rad{deg: deg, body: body}, nil

	case "mathbb":
		arg, err := p.group()
		if err != nil {
			return nil, err
		}
		return blackboard(arg)

	case "text", "mathrm", "operatorname":
		text, err := p.literalGroup()
		if err != nil {
			return nil, err
		}
		return run{text: text, sty: "p"}, nil

	case "left":
		return p.leftRight()

	case "hat", "bar", "vec", "tilde", "dot", "overline", "widehat", "widetilde":
		base, err := p.group()
		if err != nil {
			return nil, err
		}
		return accent{chr: accentChars[name], base: base}, nil
	}

	if chr, ok := naryChars[name]; ok {
		return nary{chr: chr}, nil
	}
	if sym, ok := symbols[name]; ok {
		sty := ""
		if functionNames[name] {
			sty = "p"
		}
		return run{text: sym, sty: sty}, nil
	}
	return nil, fmt.Errorf("%w: unsupported command \\%s", ErrInvalidExpression, name)
}

// bracketGroup parses up to the matching ] after an opening [ was consumed.
func (p *parser) bracketGroup() ([]node, error) {
	var nodes []node
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, fmt.Errorf("%w: unterminated optional argument", ErrInvalidExpression)
		}
		if p.src[p.pos] == ']' {
			p.pos++
			return nodes, nil
		}
		n, err := p.atom()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
}

// literalGroup reads the raw text of a {...} argument without math parsing.
func (p *parser) literalGroup() (string, error) {
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != '{' {
		return "", fmt.Errorf("%w: missing text argument", ErrInvalidExpression)
	}
	p.pos++
	start := p.pos
	depth := 1
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				text := string(p.src[start:p.pos])
				p.pos++
				return text, nil
			}
		}
		p.pos++
	}
	return "", fmt.Errorf("%w: unterminated text argument", ErrInvalidExpression)
}

// leftRight parses \left<d> ... \right<d> as a stretchy delimiter pair.
func (p *parser) leftRight() (node, error) {
	open, err := p.delimiterChar()
	if err != nil {
		return nil, err
	}
	body, err := p.sequence(rightDelim)
	if err != nil {
		return nil, err
	}
	if p.peekCommand() != "right" {
		return nil, fmt.Errorf("%w: \\left without \\right", ErrInvalidExpression)
	}
	p.pos += len(`\right`)
	closing, err := p.delimiterChar()
	if err != nil {
		return nil, err
	}
	return delim{open: open, close: closing, body: body}, nil
}

func (p *parser) delimiterChar() (string, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return "", fmt.Errorf("%w: missing delimiter", ErrInvalidExpression)
	}
	c := p.src[p.pos]
	switch c {
	case '(', ')', '[', ']', '|':
		p.pos++
		return string(c), nil
	case '.':
		p.pos++
		return "", nil
	case '\\':
		name := p.peekCommand()
		switch name {
		case "{", "":
			if p.pos+1 < len(p.src) && (p.src[p.pos+1] == '{' || p.src[p.pos+1] == '}') {
				ch := p.src[p.pos+1]
				p.pos += 2
				return string(ch), nil
			}
		case "lbrace":
			p.pos += 1 + len(name)
			return "{", nil
		case "rbrace":
			p.pos += 1 + len(name)
			return "}", nil
		case "langle":
			p.pos += 1 + len(name)
			return "⟨", nil
		case "rangle":
			p.pos += 1 + len(name)
			return "⟩", nil
		}
	}
	return "", fmt.Errorf("%w: unsupported delimiter %q", ErrInvalidExpression, string(c))
}

// blackboard maps the letters of a \mathbb argument to their double-struck
// code points.
func blackboard(arg []node) (node, error) {
	var out strings.Builder
	for _, n := range arg {
		r, ok := n.(run)
		if !ok || len(r.text) != 1 || r.text[0] < 'A' || r.text[0] > 'Z' {
			return nil, fmt.Errorf("%w: \\mathbb expects capital letters", ErrInvalidExpression)
		}
		out.WriteRune(doubleStruck[rune(r.text[0])])
	}
	return run{text: out.String()}, nil
}
