// Package classify decides which design-node archetype an extracted
// element becomes.
//
// [Classify] is a pure function evaluated in fixed precedence:
//
//  1. Text: non-empty trimmed text and a text-bearing tag
//     (p, h1-h6, span, a, label, button)
//  2. Frame: a container tag (div, section, article, header, footer, nav,
//     main, aside)
//  3. Group: more than one child element
//  4. Shape: everything else, images included
//
// Tags are compared case-insensitively.
package classify

import (
	"strings"

	"github.com/matzehuels/framecast/pkg/design"
	"github.com/matzehuels/framecast/pkg/element"
)

var textTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"span": true, "a": true, "label": true, "button": true,
}

var containerTags = map[string]bool{
	"div": true, "section": true, "article": true, "header": true,
	"footer": true, "nav": true, "main": true, "aside": true,
}

// Classify returns the node kind for el. A nil element is a Shape.
func Classify(el *element.Element) design.Kind {
	if el == nil {
		return design.KindShape
	}
	tag := el.LowerTag()
	switch {
	case el.TrimmedText() != "" && textTags[tag]:
		return design.KindText
	case containerTags[tag]:
		return design.KindFrame
	case len(el.Children) > 1:
		return design.KindGroup
	}
	return design.KindShape
}

// IsContainerTag reports whether tag names a layout container.
func IsContainerTag(tag string) bool {
	return containerTags[lower(tag)]
}

// IsTextTag reports whether tag may carry a text run.
func IsTextTag(tag string) bool {
	return textTags[lower(tag)]
}

func lower(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
