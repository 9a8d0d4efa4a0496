package style

import (
	"math"
	"strconv"
	"strings"
)

// GradientType is the geometric kind of a gradient.
type GradientType string

const (
	GradientLinear  GradientType = "linear"
	GradientRadial  GradientType = "radial"
	GradientAngular GradientType = "angular"
)

// Matrix is a 2x3 affine transform in the design tool's [[a b c] [d e f]]
// convention.
type Matrix [2][3]float64

// Identity is the transform used by radial gradients.
var Identity = Matrix{{1, 0, 0}, {0, 1, 0}}

// Stop is one gradient color stop. Position is in [0,1].
type Stop struct {
	Color    Color   `json:"color"`
	Position float64 `json:"position"`
}

// Gradient is a parsed CSS gradient.
type Gradient struct {
	Type      GradientType `json:"type"`
	Angle     float64      `json:"angle"`
	Stops     []Stop       `json:"stops"`
	Transform Matrix       `json:"transform"`
}

// DefaultAngle points from top to bottom.
const DefaultAngle = 180

var namedDirections = map[string]float64{
	"to top":          0,
	"to right":        90,
	"to bottom":       180,
	"to left":         270,
	"to top right":    45,
	"to right top":    45,
	"to bottom right": 135,
	"to right bottom": 135,
	"to bottom left":  225,
	"to left bottom":  225,
	"to top left":     315,
	"to left top":     315,
}

var gradientPrefixes = []struct {
	prefix string
	typ    GradientType
}{
	{"repeating-linear-gradient", GradientLinear},
	{"repeating-radial-gradient", GradientRadial},
	{"repeating-conic-gradient", GradientAngular},
	{"linear-gradient", GradientLinear},
	{"radial-gradient", GradientRadial},
	{"conic-gradient", GradientAngular},
}

// IsGradient reports whether s contains a CSS gradient function.
func IsGradient(s string) bool {
	return strings.Contains(strings.ToLower(s), "gradient(")
}

// ParseGradient parses the first gradient function found in s. It returns
// false when s holds no gradient or the gradient has no usable color stop.
func ParseGradient(s string) (*Gradient, bool) {
	s = strings.ToLower(strings.TrimSpace(s))

	var typ GradientType
	start := -1
	for _, p := range gradientPrefixes {
		if i := strings.Index(s, p.prefix+"("); i >= 0 && (start < 0 || i < start) {
			typ, start = p.typ, i+len(p.prefix)
		}
	}
	if start < 0 {
		return nil, false
	}

	body, ok := parenBody(s[start:])
	if !ok {
		return nil, false
	}
	parts := splitTopLevel(body, ',')

	angle := float64(DefaultAngle)
	if len(parts) > 0 && isGradientPreamble(parts[0]) {
		if a, ok := preambleAngle(parts[0], typ); ok {
			angle = a
		}
		parts = parts[1:]
	}

	stops := parseStops(parts)
	if len(stops) == 0 {
		return nil, false
	}

	g := &Gradient{Type: typ, Angle: angle, Stops: stops}
	g.Transform = gradientTransform(angle, typ)
	return g, true
}

// parenBody returns the text between the opening parenthesis at s[0] and
// its matching close.
func parenBody(s string) (string, bool) {
	if !strings.HasPrefix(s, "(") {
		return "", false
	}
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[1:i], true
			}
		}
	}
	return "", false
}

// isGradientPreamble reports whether the first gradient argument is a
// direction, shape or position rather than a color stop.
func isGradientPreamble(p string) bool {
	if strings.HasPrefix(p, "to ") || strings.HasPrefix(p, "from ") || strings.HasPrefix(p, "at ") {
		return true
	}
	if _, ok := parseAngle(p); ok {
		return true
	}
	for _, kw := range []string{"circle", "ellipse", "closest-", "farthest-", " at "} {
		if strings.Contains(p, kw) {
			return true
		}
	}
	return false
}

func preambleAngle(p string, typ GradientType) (float64, bool) {
	if typ == GradientRadial {
		return 0, false
	}
	if a, ok := namedDirections[strings.Join(strings.Fields(p), " ")]; ok {
		return a, true
	}
	// conic: "from 45deg at 50% 50%"
	if rest, ok := strings.CutPrefix(p, "from "); ok {
		p = rest
	}
	fields := strings.Fields(p)
	if len(fields) == 0 {
		return 0, false
	}
	return parseAngle(fields[0])
}

// parseAngle converts a CSS angle with an explicit unit to degrees.
func parseAngle(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	units := []struct {
		suffix string
		toDeg  float64
	}{
		{"deg", 1},
		{"grad", 0.9},
		{"rad", 180 / math.Pi},
		{"turn", 360},
	}
	for _, u := range units {
		num, ok := strings.CutSuffix(s, u.suffix)
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, false
		}
		return v * u.toDeg, true
	}
	return 0, false
}

// parseStops reads color stops, skipping bare color hints such as "30%".
// Stops without a percentage are spread evenly by index.
func parseStops(parts []string) []Stop {
	type rawStop struct {
		color    Color
		position float64
		explicit bool
	}
	var raw []rawStop
	for _, p := range parts {
		tokens := fieldsTopLevel(p)
		if len(tokens) == 0 {
			continue
		}
		c, ok := parseColor(tokens[0])
		if !ok {
			continue
		}
		rs := rawStop{color: c}
		if len(tokens) > 1 {
			if pct, ok := strings.CutSuffix(tokens[1], "%"); ok {
				if v, err := strconv.ParseFloat(pct, 64); err == nil {
					rs.position, rs.explicit = v/100, true
				}
			}
		}
		raw = append(raw, rs)
	}

	stops := make([]Stop, len(raw))
	for i, rs := range raw {
		pos := rs.position
		if !rs.explicit {
			pos = float64(i) / math.Max(1, float64(len(raw)-1))
		}
		stops[i] = Stop{Color: rs.color, Position: clamp01(pos)}
	}
	return stops
}

// gradientTransform builds the rotation for angle, centered on the shape.
func gradientTransform(angle float64, typ GradientType) Matrix {
	if typ == GradientRadial {
		return Identity
	}
	rad := angle * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	return Matrix{
		{cos, -sin, 0.5},
		{sin, cos, 0.5},
	}
}
