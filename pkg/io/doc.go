// Package io reads extracted elements and writes converted documents as
// JSON.
//
// # Element Input
//
// Extractors emit either a bare array of elements or a page object:
//
//	{
//	  "title": "Example",
//	  "url": "https://example.com",
//	  "viewport": {"width": 1440, "height": 900},
//	  "elements": [
//	    {"tagName": "DIV", "bounds": {"x": 0, "y": 0, "width": 1440, "height": 80},
//	     "styles": {"backgroundColor": "#fff"}, "children": [...]}
//	  ]
//	}
//
// Use [ReadElements] for any io.Reader and [ImportElements] for a file path.
// Both return an [element.Page]; a bare array yields a page with no title.
// Style keys may be camelCase or kebab-case.
//
// # Document Output
//
// [WriteDocument] and [ExportDocument] encode a [host.Document] as indented
// JSON. [ReadDocument] and [ImportDocument] decode it again, rebuilding the
// handle index so the document can be queried or rendered.
package io
