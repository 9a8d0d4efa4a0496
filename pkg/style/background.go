package style

import (
	"regexp"
	"strconv"
	"strings"
)

var cssURL = regexp.MustCompile(`url\(\s*['"]?([^'")]+?)['"]?\s*\)`)

// BackgroundURL extracts the image URL from a background-image value. A
// bare value that is neither a gradient nor "none" is taken as the URL
// itself, which is how the extractor reports resolved backgrounds.
func BackgroundURL(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return ""
	}
	if m := cssURL.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	if IsGradient(s) || strings.ContainsAny(s, " ()") {
		return ""
	}
	return s
}

// BackgroundScale derives the image scale mode from background-size.
// Only an explicit size produces a crop transform, built from
// background-position.
func BackgroundScale(size, position string) (ScaleMode, *Matrix) {
	size = strings.ToLower(strings.TrimSpace(size))
	switch {
	case size == "" || size == "cover":
		return ScaleFill, nil
	case size == "contain":
		return ScaleFit, nil
	case strings.Contains(size, "auto"):
		return ScaleCrop, nil
	}
	x, y := parsePosition(position)
	return ScaleCrop, &Matrix{
		{1, 0, x - 0.5},
		{0, 1, y - 0.5},
	}
}

// parsePosition reads background-position as fractions of the box.
// Pixel offsets cannot be expressed relative to an unknown image size and
// read as 0.
func parsePosition(s string) (x, y float64) {
	parts := strings.Fields(strings.ToLower(s))
	if len(parts) == 1 {
		switch parts[0] {
		case "center":
			return 0.5, 0.5
		case "top", "bottom":
			parts = []string{"center", parts[0]}
		}
	}
	if len(parts) > 0 {
		x = positionPart(parts[0], "left", "right")
	}
	if len(parts) > 1 {
		y = positionPart(parts[1], "top", "bottom")
	}
	return x, y
}

func positionPart(p, low, high string) float64 {
	switch p {
	case low:
		return 0
	case "center":
		return 0.5
	case high:
		return 1
	}
	if pct, ok := strings.CutSuffix(p, "%"); ok {
		if v, err := strconv.ParseFloat(pct, 64); err == nil {
			return v / 100
		}
	}
	return 0
}
