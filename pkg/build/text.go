package build

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/matzehuels/framecast/pkg/style"
)

var typographic = strings.NewReplacer(
	"\u00a0", " ",
	"\u2018", "'",
	"\u2019", "'",
	"\u201c", `"`,
	"\u201d", `"`,
)

// CleanText decodes HTML entities, drops inline markup, straightens
// typographic quotes, collapses whitespace and applies a CSS
// text-transform.
func CleanText(text, transform string) string {
	text = typographic.Replace(plainText(text))
	text = strings.Join(strings.Fields(text), " ")
	return style.ApplyTransform(text, transform)
}

// plainText returns the character data of an HTML fragment. Text without
// markup or entities is returned unchanged.
func plainText(text string) string {
	if !strings.ContainsAny(text, "<&") {
		return text
	}
	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return text
	}

	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
		case html.ElementNode:
			switch n.Data {
			case "script", "style":
				return
			case "br", "p", "div", "li":
				b.WriteByte(' ')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return b.String()
}
