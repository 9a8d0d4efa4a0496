package style

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color is an RGBA color with every channel in [0,1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

var (
	Black       = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}
	Transparent = Color{0, 0, 0, 0}
)

// Hex returns the color as #rrggbb, ignoring alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

// ParseColor parses a CSS color. Unrecognized input yields opaque black.
func ParseColor(s string) Color {
	c, ok := parseColor(s)
	if !ok {
		return Black
	}
	return c
}

// parseColor reports whether s was understood as a color at all.
func parseColor(s string) (Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return Color{}, false
	case s == "transparent":
		return Transparent, true
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgb"):
		return parseRGB(s)
	case strings.HasPrefix(s, "hsl"):
		return parseHSL(s)
	}
	if rgba, ok := colornames.Map[s]; ok {
		return Color{
			R: float64(rgba.R) / 255,
			G: float64(rgba.G) / 255,
			B: float64(rgba.B) / 255,
			A: float64(rgba.A) / 255,
		}, true
	}
	return Color{}, false
}

func parseHex(hex string) (Color, bool) {
	switch len(hex) {
	case 3, 4:
		var b strings.Builder
		for _, ch := range hex {
			b.WriteRune(ch)
			b.WriteRune(ch)
		}
		hex = b.String()
	case 6, 8:
	default:
		return Color{}, false
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, false
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, true
}

// funcArgs splits the argument list of a color function. Both the legacy
// comma syntax and the space syntax with a "/ alpha" suffix are accepted.
func funcArgs(s string) ([]string, bool) {
	open := strings.IndexByte(s, '(')
	end := strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return nil, false
	}
	body := s[open+1 : end]
	body = strings.ReplaceAll(body, "/", " ")
	body = strings.ReplaceAll(body, ",", " ")
	args := strings.Fields(body)
	if len(args) < 3 {
		return nil, false
	}
	return args, true
}

func parseRGB(s string) (Color, bool) {
	args, ok := funcArgs(s)
	if !ok {
		return Color{}, false
	}
	var ch [3]float64
	for i := range ch {
		v, ok := parseComponent(args[i], 255)
		if !ok {
			return Color{}, false
		}
		ch[i] = clamp01(v / 255)
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: parseAlpha(args)}, true
}

func parseHSL(s string) (Color, bool) {
	args, ok := funcArgs(s)
	if !ok {
		return Color{}, false
	}
	h, ok := parseHue(args[0])
	if !ok {
		return Color{}, false
	}
	sat, ok1 := parseComponent(args[1], 100)
	light, ok2 := parseComponent(args[2], 100)
	if !ok1 || !ok2 {
		return Color{}, false
	}
	c := colorful.Hsl(h, clamp01(sat/100), clamp01(light/100)).Clamped()
	return Color{R: c.R, G: c.G, B: c.B, A: parseAlpha(args)}, true
}

// parseComponent reads a number or a percentage of scale.
func parseComponent(s string, scale float64) (float64, bool) {
	if p, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, false
		}
		return v / 100 * scale, true
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

func parseAlpha(args []string) float64 {
	if len(args) < 4 {
		return 1
	}
	a, ok := parseComponent(args[3], 1)
	if !ok {
		return 1
	}
	return clamp01(a)
}

// parseHue returns degrees normalized to [0,360).
func parseHue(s string) (float64, bool) {
	deg, ok := parseAngle(s)
	if !ok {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		deg = v
	}
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg, true
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
