package text

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// StripHTML drops markup from doc and returns its text content, with text
// nodes separated by single spaces. Entities are unescaped. Text that does not
// parse as markup is returned as is.
func StripHTML(doc string) string {
	if !strings.ContainsRune(doc, '<') && !strings.ContainsRune(doc, '&') {
		return doc
	}
	var parts []string
	z := html.NewTokenizer(bytes.NewBufferString(doc))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(parts, " ")
		case html.TextToken:
			if t := strings.TrimSpace(string(z.Text())); t != "" {
				parts = append(parts, t)
			}
		}
	}
}
