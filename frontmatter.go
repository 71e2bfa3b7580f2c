package markdocx

import (
	"fmt"
	"strings"

	"github.com/shynneri-source/markdocx/internal/yamlutil"
)

// frontMatterDelim opens and closes a YAML front matter block. The opening
// line must be the very first line of the document.
const frontMatterDelim = "---"

// splitFrontMatter extracts YAML front matter from content.
// Returns the parsed metadata and the remaining Markdown body. Content
// without a front matter block passes through unchanged with zero Meta.
func splitFrontMatter(content string) (Meta, string, error) {
	var meta Meta

	rest, ok := strings.CutPrefix(content, frontMatterDelim+"\n")
	if !ok {
		return meta, content, nil
	}

	block, body, ok := cutClosingDelim(rest)
	if !ok {
		// An unterminated block is not front matter. Treat the whole
		// content as body, opening line included.
		return meta, content, nil
	}

	if err := yamlutil.Unmarshal([]byte(block), &meta); err != nil {
		return meta, body, fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}
	return meta, body, nil
}

// cutClosingDelim splits rest at the first line holding only the delimiter.
func cutClosingDelim(rest string) (block, body string, ok bool) {
	offset := 0
	for _, line := range strings.SplitAfter(rest, "\n") {
		if strings.TrimSuffix(line, "\n") == frontMatterDelim {
			return rest[:offset], rest[offset+len(line):], true
		}
		offset += len(line)
	}
	return "", "", false
}
