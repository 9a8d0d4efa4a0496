package style

import (
	"math"
	"testing"
)

func TestParseGradientLinear45(t *testing.T) {
	g, ok := ParseGradient("linear-gradient(45deg, red, blue)")
	if !ok {
		t.Fatal("ParseGradient returned false")
	}
	if g.Type != GradientLinear {
		t.Errorf("Type = %v, want linear", g.Type)
	}
	if g.Angle != 45 {
		t.Errorf("Angle = %v, want 45", g.Angle)
	}
	if len(g.Stops) != 2 {
		t.Fatalf("len(Stops) = %d, want 2", len(g.Stops))
	}
	if !colorEq(g.Stops[0].Color, Color{1, 0, 0, 1}) || g.Stops[0].Position != 0 {
		t.Errorf("stop 0 = %+v", g.Stops[0])
	}
	if !colorEq(g.Stops[1].Color, Color{0, 0, 1, 1}) || g.Stops[1].Position != 1 {
		t.Errorf("stop 1 = %+v", g.Stops[1])
	}

	c, s := math.Cos(math.Pi/4), math.Sin(math.Pi/4)
	want := Matrix{{c, -s, 0.5}, {s, c, 0.5}}
	for i := range want {
		for j := range want[i] {
			if !approx(g.Transform[i][j], want[i][j]) {
				t.Errorf("Transform[%d][%d] = %v, want %v", i, j, g.Transform[i][j], want[i][j])
			}
		}
	}
}

func TestParseGradientDirections(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"linear-gradient(red, blue)", 180},
		{"linear-gradient(to top, red, blue)", 0},
		{"linear-gradient(to right, red, blue)", 90},
		{"linear-gradient(to top right, red, blue)", 45},
		{"linear-gradient(to left   top, red, blue)", 315},
		{"linear-gradient(0.25turn, red, blue)", 90},
		{"linear-gradient(100grad, red, blue)", 90},
		{"linear-gradient(3.14159265rad, red, blue)", 180},
		{"conic-gradient(from 90deg, red, blue)", 90},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			g, ok := ParseGradient(tt.in)
			if !ok {
				t.Fatal("ParseGradient returned false")
			}
			if !approx(g.Angle, tt.want) {
				t.Errorf("Angle = %v, want %v", g.Angle, tt.want)
			}
		})
	}
}

func TestParseGradientStops(t *testing.T) {
	g, ok := ParseGradient("linear-gradient(90deg, rgba(255, 0, 0, 0.5) 10%, #00ff00, blue 150%)")
	if !ok {
		t.Fatal("ParseGradient returned false")
	}
	if len(g.Stops) != 3 {
		t.Fatalf("len(Stops) = %d, want 3 (nested commas respected)", len(g.Stops))
	}
	wantPos := []float64{0.1, 0.5, 1}
	for i, w := range wantPos {
		if !approx(g.Stops[i].Position, w) {
			t.Errorf("stop %d position = %v, want %v", i, g.Stops[i].Position, w)
		}
	}
	if !approx(g.Stops[0].Color.A, 0.5) {
		t.Errorf("stop 0 alpha = %v, want 0.5", g.Stops[0].Color.A)
	}
}

func TestParseGradientRadialAndConic(t *testing.T) {
	g, ok := ParseGradient("radial-gradient(circle at center, white, black)")
	if !ok {
		t.Fatal("radial: ParseGradient returned false")
	}
	if g.Type != GradientRadial || g.Transform != Identity || len(g.Stops) != 2 {
		t.Errorf("radial = %+v", g)
	}

	g, ok = ParseGradient("conic-gradient(red, yellow, green)")
	if !ok {
		t.Fatal("conic: ParseGradient returned false")
	}
	if g.Type != GradientAngular || len(g.Stops) != 3 {
		t.Errorf("conic = %+v", g)
	}
	if !approx(g.Stops[1].Position, 0.5) {
		t.Errorf("middle stop = %v, want 0.5", g.Stops[1].Position)
	}
}

func TestParseGradientInvalid(t *testing.T) {
	for _, in := range []string{"", "none", "url(a.png)", "linear-gradient(", "linear-gradient(45deg)"} {
		if _, ok := ParseGradient(in); ok {
			t.Errorf("ParseGradient(%q) = ok, want false", in)
		}
	}
}

func TestGradientPaint(t *testing.T) {
	tests := []struct {
		in   string
		want PaintType
	}{
		{"linear-gradient(red, blue)", PaintGradientLinear},
		{"radial-gradient(red, blue)", PaintGradientRadial},
		{"conic-gradient(red, blue)", PaintGradientAngular},
	}
	for _, tt := range tests {
		g, _ := ParseGradient(tt.in)
		p := GradientPaint(g)
		if p.Type != tt.want {
			t.Errorf("%s: Type = %v, want %v", tt.in, p.Type, tt.want)
		}
		if p.GradientTransform == nil || len(p.GradientStops) != 2 {
			t.Errorf("%s: paint = %+v", tt.in, p)
		}
	}
}
