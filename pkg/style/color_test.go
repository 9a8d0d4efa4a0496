package style

import (
	"math"
	"testing"
)

const eps = 0.005

func approx(a, b float64) bool { return math.Abs(a-b) <= eps }

func colorEq(a, b Color) bool {
	return approx(a.R, b.R) && approx(a.G, b.G) && approx(a.B, b.B) && approx(a.A, b.A)
}

func TestParseColorFormatAgnostic(t *testing.T) {
	red := Color{1, 0, 0, 1}
	for _, in := range []string{
		"#ff0000",
		"#F00",
		"#ff0000ff",
		"rgb(255,0,0)",
		"rgb(255 0 0)",
		"rgba(255, 0, 0, 1)",
		"rgb(100%, 0%, 0%)",
		"hsl(0,100%,50%)",
		"hsl(360deg 100% 50%)",
		"hsla(0, 100%, 50%, 1)",
		"red",
		"RED",
	} {
		t.Run(in, func(t *testing.T) {
			got := ParseColor(in)
			if !colorEq(got, red) {
				t.Errorf("ParseColor(%q) = %+v, want %+v", in, got, red)
			}
			// idempotent
			if again := ParseColor(in); again != got {
				t.Errorf("second parse = %+v, want %+v", again, got)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"transparent", Color{0, 0, 0, 0}},
		{"rgba(0, 0, 0, 0.5)", Color{0, 0, 0, 0.5}},
		{"rgb(0 0 255 / 25%)", Color{0, 0, 1, 0.25}},
		{"#0000ff80", Color{0, 0, 1, 128.0 / 255}},
		{"#abcd", Color{0xaa / 255.0, 0xbb / 255.0, 0xcc / 255.0, 0xdd / 255.0}},
		{"green", Color{0, 128.0 / 255, 0, 1}},
		{"hsl(120, 100%, 25%)", Color{0, 0.5, 0, 1}},
		{"hsl(240, 100%, 50%)", Color{0, 0, 1, 1}},
		{"rgb(300, -5, 0)", Color{1, 0, 0, 1}},

		// fallbacks
		{"", Black},
		{"not-a-color", Black},
		{"#12", Black},
		{"#gggggg", Black},
		{"rgb(1,2)", Black},
		{"currentcolor", Black},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseColor(tt.in); !colorEq(got, tt.want) {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorHex(t *testing.T) {
	if got := ParseColor("rgb(255, 128, 0)").Hex(); got != "#ff8000" {
		t.Errorf("Hex() = %q, want #ff8000", got)
	}
}
