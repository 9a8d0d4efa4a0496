package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/framecast/pkg/element"
	ferrors "github.com/matzehuels/framecast/pkg/errors"
	"github.com/matzehuels/framecast/pkg/host"
)

// ReadElements decodes extracted elements from r. The input is either a
// JSON array of elements or a page object with an "elements" array.
//
// ReadElements returns an INVALID_INPUT error if the JSON is malformed or
// is neither shape. It does not close r.
func ReadElements(r io.Reader) (*element.Page, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ferrors.New(ferrors.ErrCodeInvalidInput, "empty input")
	}

	page := &element.Page{}
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &page.Elements); err != nil {
			return nil, ferrors.Wrap(ferrors.ErrCodeInvalidInput, err, "decode elements")
		}
	case '{':
		if err := json.Unmarshal(trimmed, page); err != nil {
			return nil, ferrors.Wrap(ferrors.ErrCodeInvalidInput, err, "decode page")
		}
	default:
		return nil, ferrors.New(ferrors.ErrCodeInvalidInput, "expected a JSON array or object")
	}

	for i, el := range page.Elements {
		if el == nil {
			return nil, ferrors.New(ferrors.ErrCodeInvalidInput, "element %d is null", i)
		}
	}
	return page, nil
}

// ImportElements reads the elements file at path.
func ImportElements(path string) (*element.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	page, err := ReadElements(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return page, nil
}

// ReadDocument decodes a document written by [WriteDocument].
func ReadDocument(r io.Reader) (*host.Document, error) {
	var doc host.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeInvalidInput, err, "decode document")
	}
	return &doc, nil
}

// ImportDocument reads the document file at path.
func ImportDocument(path string) (*host.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDocument(f)
}
