package api

import (
	"strings"

	"golang.org/x/net/html"
)

// StripHTML reduces an HTML fragment to its visible text. Script and
// style contents are dropped; tag boundaries collapse to single spaces so
// sentence detection downstream still works. Plain text without markup
// passes through unchanged apart from whitespace normalization.
func StripHTML(input string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(input))

	skipDepth := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// EOF or malformed markup; either way the text collected so
			// far is the best available answer.
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			name, _ := z.TagName()
			if skippedTag(string(name)) {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if skippedTag(string(name)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(z.Text())
				b.WriteByte(' ')
			}
		}
	}
}

func skippedTag(name string) bool {
	switch name {
	case "script", "style", "noscript", "head":
		return true
	}
	return false
}
