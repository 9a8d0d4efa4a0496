package style

import (
	"strings"
)

// ParseRadius returns the first numeric token of a border-radius, or 0.
func ParseRadius(s string) float64 {
	v, ok := firstNumber(s)
	if !ok || v < 0 {
		return 0
	}
	return v
}

// ParseOpacity returns the opacity clamped to [0,1]. The second result is
// false when s is empty or not a number.
func ParseOpacity(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	v, ok := parseNumber(s)
	if !ok {
		return 1, false
	}
	if strings.HasSuffix(s, "%") {
		v /= 100
	}
	return clamp01(v), true
}

// ParseBoxShadow converts the first layer of a box-shadow into one shadow
// effect. The color may come before or after the lengths, as browsers emit
// it first in computed styles.
func ParseBoxShadow(s string) []Effect {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return nil
	}

	layer := splitTopLevel(s, ',')[0]
	var (
		lengths []float64
		color   = Color{0, 0, 0, 1}
		inset   bool
		colored bool
	)
	for _, tok := range fieldsTopLevel(layer) {
		switch {
		case strings.EqualFold(tok, "inset"):
			inset = true
		case isLength(tok):
			v, _ := parseNumber(tok)
			lengths = append(lengths, v)
		default:
			if c, ok := parseColor(tok); ok && !colored {
				color, colored = c, true
			}
		}
	}
	if len(lengths) < 2 {
		return nil
	}

	e := Effect{
		Type:    EffectDropShadow,
		Color:   color,
		Offset:  Vector{X: lengths[0], Y: lengths[1]},
		Visible: true,
	}
	if inset {
		e.Type = EffectInnerShadow
	}
	if len(lengths) > 2 {
		e.Radius = max(0, lengths[2])
	}
	if len(lengths) > 3 {
		e.Spread = lengths[3]
	}
	return []Effect{e}
}

var borderStyles = map[string]bool{
	"solid": true, "dashed": true, "dotted": true, "double": true,
	"groove": true, "ridge": true, "inset": true, "outset": true,
}

// ParseBorder converts a "<width> <style> <color>" shorthand into a solid
// stroke. It returns nil for none, hidden or a zero width.
func ParseBorder(s string) *Stroke {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	var (
		width   float64
		style   string
		color   = Black
		hasSize bool
	)
	for _, tok := range fieldsTopLevel(s) {
		low := strings.ToLower(tok)
		switch {
		case low == "none" || low == "hidden":
			return nil
		case borderStyles[low]:
			style = low
		case isLength(tok):
			width, _ = parseNumber(tok)
			hasSize = true
		default:
			if c, ok := parseColor(tok); ok {
				color = c
			}
		}
	}
	if style == "" || !hasSize || width <= 0 {
		return nil
	}
	return &Stroke{Paint: Solid(color), Weight: width, Style: style}
}
