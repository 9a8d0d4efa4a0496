package style

import "strings"

// Style is the parsed form of an element's computed style map.
type Style struct {
	// Fills holds the background color layer, if any.
	Fills []Paint
	// TextColor is the foreground color for text nodes.
	TextColor Color
	Stroke    *Stroke
	Effects   []Effect
	// CornerRadius is the first radius of border-radius.
	CornerRadius float64
	Opacity      float64
	// HasOpacity is false when the element declared no opacity.
	HasOpacity bool
	Typography Typography
	Layout     *AutoLayout

	// Gradient is set when background-image (or the extractor's
	// backgroundGradient field) holds a gradient function.
	Gradient *Gradient
	// BackgroundURL is the background image to resolve, if any.
	BackgroundURL string
	// BackgroundMode and BackgroundTransform place the background image.
	BackgroundMode      ScaleMode
	BackgroundTransform *Matrix
}

// HasBackground reports whether the style asks for an image or gradient
// background, which requires asset resolution.
func (s *Style) HasBackground() bool {
	return s.BackgroundURL != "" || s.Gradient != nil
}

// Parse reads a style map. It never fails.
func Parse(styles map[string]string) *Style {
	get := func(k string) string { return strings.TrimSpace(styles[k]) }

	s := &Style{
		TextColor:    Black,
		CornerRadius: ParseRadius(get("borderRadius")),
		Effects:      ParseBoxShadow(get("boxShadow")),
		Stroke:       ParseBorder(get("border")),
		Typography:   ParseTypography(styles),
		Layout:       ParseAutoLayout(styles),
		Opacity:      1,
	}

	if v := get("color"); v != "" {
		s.TextColor = ParseColor(v)
	}
	if v := get("backgroundColor"); v != "" {
		if c := ParseColor(v); c.A > 0 {
			s.Fills = []Paint{Solid(c)}
		}
	}
	if v := get("opacity"); v != "" {
		s.Opacity, s.HasOpacity = ParseOpacity(v)
	}

	bg := get("backgroundImage")
	if g, ok := ParseGradient(firstNonEmpty(get("backgroundGradient"), gradientOnly(bg))); ok {
		s.Gradient = g
	}
	if u := BackgroundURL(bg); u != "" {
		s.BackgroundURL = u
		s.BackgroundMode, s.BackgroundTransform = BackgroundScale(get("backgroundSize"), get("backgroundPosition"))
	}
	return s
}

func gradientOnly(s string) string {
	if IsGradient(s) {
		return s
	}
	return ""
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
