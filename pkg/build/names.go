package build

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/framecast/pkg/element"
)

const (
	maxNameLen     = 50
	maxNameTextLen = 30
)

var (
	nameUnsafe = regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)
	spaces     = regexp.MustCompile(`\s+`)
)

var semanticNames = map[string]string{
	"header":   "Header",
	"footer":   "Footer",
	"nav":      "Navigation",
	"main":     "Main Content",
	"aside":    "Sidebar",
	"section":  "Section",
	"article":  "Article",
	"p":        "Paragraph",
	"img":      "Image",
	"button":   "Button",
	"a":        "Link",
	"ul":       "List",
	"li":       "List Item",
	"form":     "Form",
	"input":    "Input",
	"textarea": "Text Area",
	"select":   "Select",
	"div":      "Container",
	"span":     "Text",
}

// NodeName derives a display name from el: its id, else its first class,
// else its text (truncated), else a name for its tag.
func NodeName(el *element.Element) string {
	if id := strings.TrimSpace(el.ID); id != "" {
		if n := cleanName(id); n != "" {
			return n
		}
	}
	if c := el.FirstClass(); c != "" {
		if n := cleanName(c); n != "" {
			return n
		}
	}
	if text := el.TrimmedText(); text != "" {
		if utf8.RuneCountInString(text) > maxNameTextLen {
			text = string([]rune(text)[:maxNameTextLen]) + "..."
		}
		if n := cleanName(text); n != "" {
			return n
		}
	}
	return tagName(el.LowerTag())
}

func tagName(tag string) string {
	if name, ok := semanticNames[tag]; ok {
		return name
	}
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return "Heading " + tag[1:]
	}
	if tag == "" {
		return "Element"
	}
	return strings.ToUpper(tag[:1]) + tag[1:]
}

func cleanName(s string) string {
	s = nameUnsafe.ReplaceAllString(s, "")
	s = strings.TrimSpace(spaces.ReplaceAllString(s, " "))
	if len(s) > maxNameLen {
		s = strings.TrimSpace(s[:maxNameLen])
	}
	return s
}
