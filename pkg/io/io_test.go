package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/framecast/pkg/design"
	ferrors "github.com/matzehuels/framecast/pkg/errors"
	"github.com/matzehuels/framecast/pkg/host"
)

func TestReadElements(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantTitle string
		wantErr   bool
	}{
		{
			name:      "array",
			input:     `[{"tagName":"DIV","bounds":{"x":0,"y":0,"width":10,"height":10}},{"tagName":"P","textContent":"hi"}]`,
			wantCount: 2,
		},
		{
			name:      "page object",
			input:     `{"title":"Example","viewport":{"width":800,"height":600},"elements":[{"tagName":"IMG","src":"https://x/a.png"}]}`,
			wantCount: 1,
			wantTitle: "Example",
		},
		{name: "whitespace before array", input: "\n  []", wantCount: 0},
		{name: "empty", input: "   ", wantErr: true},
		{name: "scalar", input: `"nope"`, wantErr: true},
		{name: "malformed", input: `[{"tagName":`, wantErr: true},
		{name: "null element", input: `[null]`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := ReadElements(strings.NewReader(tt.input))
			if tt.wantErr {
				if !ferrors.Is(err, ferrors.ErrCodeInvalidInput) {
					t.Errorf("err = %v, want INVALID_INPUT", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadElements: %v", err)
			}
			if len(page.Elements) != tt.wantCount {
				t.Errorf("elements = %d, want %d", len(page.Elements), tt.wantCount)
			}
			if page.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", page.Title, tt.wantTitle)
			}
		})
	}
}

func TestImportElementsMissingFile(t *testing.T) {
	if _, err := ImportElements(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	doc := host.NewDocument("Page")
	frame, _ := doc.CreateNode(design.KindFrame)
	_ = doc.SetName(frame, "Website")
	_ = doc.Resize(frame, 800, 600)
	shape, _ := doc.CreateNode(design.KindShape)
	_ = doc.AppendChild(frame, shape)

	var buf bytes.Buffer
	if err := WriteDocument(doc, &buf); err != nil {
		t.Fatalf("WriteDocument: %v", err)
	}
	got, err := ReadDocument(&buf)
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	if got.Name != "Page" || got.Len() != 2 {
		t.Errorf("document = %q with %d nodes", got.Name, got.Len())
	}
	if n, ok := got.Node(shape); !ok || n.Parent() == nil || n.Parent().Name != "Website" {
		t.Error("parent link not restored")
	}

	path := filepath.Join(t.TempDir(), "doc.json")
	if err := ExportDocument(doc, path); err != nil {
		t.Fatalf("ExportDocument: %v", err)
	}
	again, err := ImportDocument(path)
	if err != nil {
		t.Fatalf("ImportDocument: %v", err)
	}
	if again.Len() != 2 {
		t.Errorf("imported %d nodes", again.Len())
	}
}
