// Package highlight tokenizes source code for syntax-colored rendering in
// the DOCX output. It wraps chroma and flattens its token stream into plain
// colored fragments so the document writer stays ignorant of lexing.
package highlight

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Fragment is one colored span of source code. Color is an RRGGBB hex
// string; empty means the default text color.
type Fragment struct {
	Text  string
	Color string
}

// aliases maps fence tags that chroma does not resolve on its own, plus a
// few habitual short names, onto canonical lexer names.
var aliases = map[string]string{
	"c++":        "cpp",
	"c#":         "csharp",
	"shell":      "bash",
	"sh":         "bash",
	"yml":        "yaml",
	"dockerfile": "docker",
	"plaintext":  "text",
	"plain":      "text",
	"txt":        "text",
}

// palette maps token categories to colors, mirroring a light editor theme.
// Lookups walk up the token hierarchy, so only categories that differ from
// their parent need an entry.
var palette = map[chroma.TokenType]string{
	chroma.Keyword:               "0000CC",
	chroma.KeywordNamespace:      "7B307B",
	chroma.KeywordType:           "267F99",
	chroma.NameFunction:          "795E26",
	chroma.NameDecorator:         "795E26",
	chroma.NameClass:             "267F99",
	chroma.NameBuiltin:           "267F99",
	chroma.NameBuiltinPseudo:     "0000CC",
	chroma.NameTag:               "800000",
	chroma.NameAttribute:         "FF0000",
	chroma.LiteralString:         "A31515",
	chroma.LiteralStringEscape:   "EE0000",
	chroma.LiteralStringInterpol: "EE0000",
	chroma.LiteralStringAffix:    "0000CC",
	chroma.LiteralNumber:         "098858",
	chroma.Comment:               "6A9955",
	chroma.CommentPreproc:        "7B307B",
	chroma.Operator:              "333333",
	chroma.OperatorWord:          "0000CC",
	chroma.Punctuation:           "333333",
}

// lexerFor resolves a fence language tag to a lexer, falling back to the
// plain-text lexer for unknown tags.
func lexerFor(language string) chroma.Lexer {
	if canonical, ok := aliases[language]; ok {
		language = canonical
	}
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// Highlight tokenizes code and returns colored fragments. It never fails:
// an unknown language or a lexer error degrades to one uncolored fragment
// holding the full source.
func Highlight(code, language string) []Fragment {
	iterator, err := lexerFor(language).Tokenise(nil, code)
	if err != nil {
		return []Fragment{{Text: code}}
	}

	var frags []Fragment
	for _, tok := range iterator.Tokens() {
		if tok.Value == "" {
			continue
		}
		frags = append(frags, Fragment{Text: tok.Value, Color: colorFor(tok.Type)})
	}
	if len(frags) == 0 {
		return []Fragment{{Text: code}}
	}
	return frags
}

// colorFor walks the token type hierarchy until a palette entry matches.
func colorFor(t chroma.TokenType) string {
	for t != 0 {
		if c, ok := palette[t]; ok {
			return c
		}
		t = t.Parent()
	}
	return ""
}
