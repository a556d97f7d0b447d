package report

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	tagRe        = regexp.MustCompile(`<[^>]+>`)
	blankLinesRe = regexp.MustCompile(`\n\s*\n`)
	entityRe     = regexp.MustCompile(`&(nbsp|amp|lt|gt|#\d+);`)
)

// HTMLToText derives the plain-text alternative of an HTML body.
// Tags are stripped, the basic entities and numeric character references are decoded,
// and runs of blank lines collapse into one.
func HTMLToText(html string) string {
	text := tagRe.ReplaceAllString(html, "")
	text = entityRe.ReplaceAllStringFunc(text, decodeEntity)
	text = blankLinesRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// decodeEntity decodes one reference; each is decoded exactly once.
func decodeEntity(ref string) string {
	switch ref {
	case "&nbsp;":
		return " "
	case "&amp;":
		return "&"
	case "&lt;":
		return "<"
	case "&gt;":
		return ">"
	}
	n, err := strconv.Atoi(ref[2 : len(ref)-1])
	if err != nil {
		return ref
	}
	return string(rune(n))
}
