package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/framecast/pkg/host"
)

// WriteDocument encodes doc as indented JSON and writes it to w.
// The output can be re-read with [ReadDocument].
func WriteDocument(doc *host.Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportDocument writes doc to a JSON file at path.
// This is a convenience wrapper around [WriteDocument] for file-based output.
func ExportDocument(doc *host.Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteDocument(doc, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
