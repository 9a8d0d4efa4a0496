package classify

import (
	"testing"

	"github.com/matzehuels/framecast/pkg/design"
	"github.com/matzehuels/framecast/pkg/element"
)

func TestClassify(t *testing.T) {
	two := []*element.Element{{Tag: "span"}, {Tag: "span"}}
	tests := []struct {
		name string
		el   *element.Element
		want design.Kind
	}{
		{"paragraph with text", &element.Element{Tag: "P", Text: "Hello"}, design.KindText},
		{"heading", &element.Element{Tag: "h3", Text: "Title"}, design.KindText},
		{"button", &element.Element{Tag: "BUTTON", Text: "Go"}, design.KindText},
		{"empty paragraph", &element.Element{Tag: "p", Text: "   "}, design.KindShape},
		{"div", &element.Element{Tag: "DIV"}, design.KindFrame},
		{"div with text", &element.Element{Tag: "div", Text: "x"}, design.KindFrame},
		{"nav with children", &element.Element{Tag: "nav", Children: two}, design.KindFrame},
		{"ul with children", &element.Element{Tag: "ul", Children: two}, design.KindGroup},
		{"ul with one child", &element.Element{Tag: "ul", Children: two[:1]}, design.KindShape},
		{"img", &element.Element{Tag: "IMG", Src: "https://x/a.png"}, design.KindShape},
		{"text tag, text precedence over children", &element.Element{Tag: "a", Text: "link", Children: two}, design.KindText},
		{"nil", nil, design.KindShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.el)
			if got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
			for range 5 {
				if again := Classify(tt.el); again != got {
					t.Fatalf("Classify not deterministic: %v then %v", got, again)
				}
			}
		})
	}
}

func TestTagSets(t *testing.T) {
	if !IsContainerTag("SECTION") || IsContainerTag("span") {
		t.Error("IsContainerTag mismatch")
	}
	if !IsTextTag(" Label ") || IsTextTag("div") {
		t.Error("IsTextTag mismatch")
	}
}
