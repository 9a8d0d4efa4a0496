package element

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Styles maps camelCase CSS property names to computed values.
type Styles map[string]string

// Get returns the trimmed value of a property, or "" when absent.
func (s Styles) Get(key string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(s[key])
}

// nestedStyles maps an object-valued style onto the flat properties it
// carries, e.g. backgroundProperties.size to backgroundSize.
var nestedStyles = map[string]map[string]string{
	"backgroundProperties": {
		"size":     "backgroundSize",
		"position": "backgroundPosition",
		"repeat":   "backgroundRepeat",
	},
}

// UnmarshalJSON accepts string, number, boolean and null values. Known
// object values are flattened; other objects and arrays are skipped.
// A flat property wins over the same property nested in an object.
func (s *Styles) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("styles: %w", err)
	}
	out := make(Styles, len(raw))
	nested := make(Styles)
	for k, v := range raw {
		key := camelCase(k)
		if v = bytes.TrimSpace(v); len(v) > 0 && (v[0] == '{' || v[0] == '[') {
			if fields, ok := nestedStyles[key]; ok && v[0] == '{' {
				if err := flattenStyle(v, fields, nested); err != nil {
					return fmt.Errorf("style %s: %w", k, err)
				}
			}
			continue
		}
		val, err := styleValue(v)
		if err != nil {
			return fmt.Errorf("style %s: %w", k, err)
		}
		if val == "" {
			continue
		}
		out[key] = val
	}
	for k, v := range nested {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	*s = out
	return nil
}

func flattenStyle(v json.RawMessage, fields map[string]string, into Styles) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(v, &obj); err != nil {
		return err
	}
	for name, raw := range obj {
		prop, ok := fields[name]
		if !ok {
			continue
		}
		if raw = bytes.TrimSpace(raw); len(raw) > 0 && (raw[0] == '{' || raw[0] == '[') {
			continue
		}
		val, err := styleValue(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if val != "" {
			into[prop] = val
		}
	}
	return nil
}

func styleValue(v json.RawMessage) (string, error) {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || bytes.Equal(v, []byte("null")) {
		return "", nil
	}
	switch v[0] {
	case '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return "", err
		}
		return s, nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(v, &b); err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil
	default:
		var f float64
		if err := json.Unmarshal(v, &f); err != nil {
			return "", fmt.Errorf("unsupported value %s", v)
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
}

// camelCase folds "font-size" to "fontSize". Vendor prefixes keep their
// leading segment lower case ("-webkit-box-shadow" to "webkitBoxShadow").
func camelCase(key string) string {
	if !strings.Contains(key, "-") {
		return key
	}
	parts := strings.Split(strings.TrimPrefix(key, "-"), "-")
	var b strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i == 0 {
			b.WriteString(p)
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// wireElement is the tolerant decoding shape for Element.
type wireElement struct {
	ID          json.RawMessage `json:"id"`
	TagName     string          `json:"tagName"`
	Tag         string          `json:"tag"`
	TextContent string          `json:"textContent"`
	Text        string          `json:"text"`
	ClassName   string          `json:"className"`
	Class       string          `json:"class"`
	Bounds      *Bounds         `json:"bounds"`
	Styles      Styles          `json:"styles"`
	Src         string          `json:"src"`
	ZIndex      json.RawMessage `json:"zIndex"`
	Children    []*Element      `json:"children"`
}

// UnmarshalJSON decodes either field-name convention.
func (e *Element) UnmarshalJSON(data []byte) error {
	var w wireElement
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	id, err := styleValue(w.ID)
	if err != nil {
		return fmt.Errorf("id: %w", err)
	}

	*e = Element{
		ID:        id,
		Tag:       firstNonEmpty(w.TagName, w.Tag),
		Text:      strings.TrimSpace(firstNonEmpty(w.TextContent, w.Text)),
		ClassName: firstNonEmpty(w.ClassName, w.Class),
		Bounds:    w.Bounds,
		Styles:    w.Styles,
		Src:       w.Src,
		Children:  w.Children,
	}

	if z, ok := parseZIndex(w.ZIndex); ok {
		e.ZIndex = &z
	}
	return nil
}

// parseZIndex accepts an integer, a numeric string, or "auto"/null.
func parseZIndex(raw json.RawMessage) (int, bool) {
	s, err := styleValue(raw)
	if err != nil || s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return int(max(min(f, math.MaxInt32), math.MinInt32)), true
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
