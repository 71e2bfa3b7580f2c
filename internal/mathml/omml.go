package mathml

import (
	"encoding/xml"
	"strings"
)

// symbols maps LaTeX command names to their Unicode forms.
var symbols = map[string]string{
	// Greek lowercase.
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ",
	"epsilon": "ε", "varepsilon": "ε", "zeta": "ζ", "eta": "η",
	"theta": "θ", "vartheta": "ϑ", "iota": "ι", "kappa": "κ",
	"lambda": "λ", "mu": "μ", "nu": "ν", "xi": "ξ",
	"pi": "π", "rho": "ρ", "sigma": "σ", "tau": "τ",
	"upsilon": "υ", "phi": "φ", "varphi": "φ", "chi": "χ",
	"psi": "ψ", "omega": "ω",

	// Greek uppercase.
	"Gamma": "Γ", "Delta": "Δ", "Theta": "Θ", "Lambda": "Λ",
	"Xi": "Ξ", "Pi": "Π", "Sigma": "Σ", "Upsilon": "Υ",
	"Phi": "Φ", "Psi": "Ψ", "Omega": "Ω",

	// Binary operators and relations.
	"times": "×", "cdot": "·", "div": "÷", "pm": "±", "mp": "∓",
	"leq": "≤", "le": "≤", "geq": "≥", "ge": "≥", "neq": "≠", "ne": "≠",
	"approx": "≈", "equiv": "≡", "sim": "∼", "propto": "∝",
	"ll": "≪", "gg": "≫",

	// Arrows.
	"to": "→", "rightarrow": "→", "leftarrow": "←",
	"Rightarrow": "⇒", "Leftarrow": "⇐", "leftrightarrow": "↔",
	"Leftrightarrow": "⇔", "mapsto": "↦",

	// Sets and logic.
	"in": "∈", "notin": "∉", "subset": "⊂", "subseteq": "⊆",
	"supset": "⊃", "supseteq": "⊇", "cup": "∪", "cap": "∩",
	"setminus": "∖", "emptyset": "∅", "varnothing": "∅",
	"forall": "∀", "exists": "∃", "neg": "¬", "land": "∧",
	"lor": "∨", "implies": "⟹", "iff": "⟺",

	// Calculus and misc.
	"infty": "∞", "partial": "∂", "nabla": "∇", "prime": "′",
	"ldots": "…", "cdots": "⋯", "dots": "…", "vdots": "⋮",
	"angle": "∠", "perp": "⊥", "parallel": "∥", "degree": "°",
	"hbar": "ℏ", "ell": "ℓ", "Re": "ℜ", "Im": "ℑ", "aleph": "ℵ",

	// Spacing falls back to fixed spaces.
	"quad": " ", "qquad": "  ", ",": " ", ";": " ",

	// Function names, rendered upright.
	"sin": "sin", "cos": "cos", "tan": "tan", "cot": "cot",
	"sec": "sec", "csc": "csc", "arcsin": "arcsin", "arccos": "arccos",
	"arctan": "arctan", "sinh": "sinh", "cosh": "cosh", "tanh": "tanh",
	"exp": "exp", "log": "log", "ln": "ln", "lg": "lg",
	"lim": "lim", "max": "max", "min": "min", "sup": "sup", "inf": "inf",
	"det": "det", "dim": "dim", "ker": "ker", "deg": "deg",
	"gcd": "gcd", "mod": "mod", "arg": "arg",
}

// functionNames are emitted as plain (upright) runs.
var functionNames = map[string]bool{
	"sin": true, "cos": true, "tan": true, "cot": true,
	"sec": true, "csc": true, "arcsin": true, "arccos": true,
	"arctan": true, "sinh": true, "cosh": true, "tanh": true,
	"exp": true, "log": true, "ln": true, "lg": true,
	"lim": true, "max": true, "min": true, "sup": true, "inf": true,
	"det": true, "dim": true, "ker": true, "deg": true,
	"gcd": true, "mod": true, "arg": true,
}

// naryChars maps big-operator commands to the character carried on m:nary.
var naryChars = map[string]string{
	"sum":      "∑",
	"prod":     "∏",
	"int":      "∫",
	"iint":     "∬",
	"iiint":    "∭",
	"oint":     "∮",
	"bigcup":   "⋃",
	"bigcap":   "⋂",
	"bigvee":   "⋁",
	"bigwedge": "⋀",
}

// accentChars maps accent commands to their combining characters.
var accentChars = map[string]string{
	"hat":       "̂",
	"widehat":   "̂",
	"bar":       "̅",
	"overline":  "̅",
	"vec":       "⃗",
	"tilde":     "̃",
	"widetilde": "̃",
	"dot":       "̇",
}

// doubleStruck maps capital letters to their blackboard bold code points.
var doubleStruck = map[rune]rune{
	'A': '𝔸', 'B': '𝔹', 'C': 'ℂ', 'D': '𝔻', 'E': '𝔼', 'F': '𝔽',
	'G': '𝔾', 'H': 'ℍ', 'I': '𝕀', 'J': '𝕁', 'K': '𝕂', 'L': '𝕃',
	'M': '𝕄', 'N': 'ℕ', 'O': '𝕆', 'P': 'ℙ', 'Q': 'ℚ', 'R': 'ℝ',
	'S': '𝕊', 'T': '𝕋', 'U': '𝕌', 'V': '𝕍', 'W': '𝕎', 'X': '𝕏',
	'Y': '𝕐', 'Z': 'ℤ',
}

// InlineOMML converts a LaTeX expression to an m:oMath fragment for use
// inside a WordprocessingML run sequence. The fragment assumes the m:
// namespace prefix is declared on the document root.
func InlineOMML(tex string) (string, error) {
	nodes, err := parse(tex)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString("<m:oMath>")
	emitNodes(&sb, nodes)
	sb.WriteString("</m:oMath>")
	return sb.String(), nil
}

// DisplayOMML converts a LaTeX expression to an m:oMathPara block for
// display math paragraphs.
func DisplayOMML(tex string) (string, error) {
	inner, err := InlineOMML(tex)
	if err != nil {
		return "", err
	}
	return "<m:oMathPara>" + inner + "</m:oMathPara>", nil
}

func emitNodes(sb *strings.Builder, nodes []node) {
	for _, n := range nodes {
		emitNode(sb, n)
	}
}

func emitNode(sb *strings.Builder, n node) {
	switch t := n.(type) {
	case run:
		emitRun(sb, t)

	case frac:
		sb.WriteString("<m:f><m:num>")
		emitNodes(sb, t.num)
		sb.WriteString("</m:num><m:den>")
		emitNodes(sb, t.den)
		sb.WriteString("</m:den></m:f>")

	case rad:
		if t.deg == nil {
			sb.WriteString(`<m:rad><m:radPr><m:degHide m:val="1"/></m:radPr><m:deg/><m:e>`)
		} else {
			sb.WriteString("<m:rad><m:radPr/><m:deg>")
			emitNodes(sb, t.deg)
			sb.WriteString("</m:deg><m:e>")
		}
		emitNodes(sb, t.body)
		sb.WriteString("</m:e></m:rad>")

	case script:
		switch {
		case t.sub != nil && t.sup != nil:
			sb.WriteString("<m:sSubSup><m:e>")
			emitNodes(sb, t.base)
			sb.WriteString("</m:e><m:sub>")
			emitNodes(sb, t.sub)
			sb.WriteString("</m:sub><m:sup>")
			emitNodes(sb, t.sup)
			sb.WriteString("</m:sup></m:sSubSup>")
		case t.sub != nil:
			sb.WriteString("<m:sSub><m:e>")
			emitNodes(sb, t.base)
			sb.WriteString("</m:e><m:sub>")
			emitNodes(sb, t.sub)
			sb.WriteString("</m:sub></m:sSub>")
		default:
			sb.WriteString("<m:sSup><m:e>")
			emitNodes(sb, t.base)
			sb.WriteString("</m:e><m:sup>")
			emitNodes(sb, t.sup)
			sb.WriteString("</m:sup></m:sSup>")
		}

	case nary:
		sb.WriteString(`<m:nary><m:naryPr><m:chr m:val="` + escape(t.chr) + `"/></m:naryPr><m:sub>`)
		emitNodes(sb, t.sub)
		sb.WriteString("</m:sub><m:sup>")
		emitNodes(sb, t.sup)
		sb.WriteString("</m:sup><m:e/></m:nary>")

	case accent:
		sb.WriteString(`<m:acc><m:accPr><m:chr m:val="` + escape(t.chr) + `"/></m:accPr><m:e>`)
		emitNodes(sb, t.base)
		sb.WriteString("</m:e></m:acc>")

	case delim:
		if t.open == "" && t.close == "" {
			// Plain brace group, no visible delimiters.
			emitNodes(sb, t.body)
			return
		}
		sb.WriteString(`<m:d><m:dPr><m:begChr m:val="` + escape(t.open) +
			`"/><m:endChr m:val="` + escape(t.close) + `"/></m:dPr><m:e>`)
		emitNodes(sb, t.body)
		sb.WriteString("</m:e></m:d>")
	}
}

func emitRun(sb *strings.Builder, r run) {
	if r.text == "" {
		return
	}
	sb.WriteString("<m:r>")
	if r.sty != "" {
		sb.WriteString(`<m:rPr><m:sty m:val="` + r.sty + `"/></m:rPr>`)
	}
	sb.WriteString("<m:t>")
	sb.WriteString(escape(r.text))
	sb.WriteString("</m:t></m:r>")
}

func escape(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}
