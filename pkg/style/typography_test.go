package style

import "testing"

func TestParseFontFamily(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`"Helvetica Neue", Arial, sans-serif`, "Inter"},
		{"-apple-system, BlinkMacSystemFont", "Inter"},
		{"Roboto", "Roboto"},
		{"'Open Sans'", "Open Sans"},
		{"Garamond, serif", "Times New Roman"},
		{"Georgia", "Georgia"},
		{"Menlo, monospace", "Courier New"},
		{"Playfair Display, serif", "Playfair Display"},
		{"", "Inter"},
		{`""`, "Inter"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseFontFamily(tt.in); got != tt.want {
				t.Errorf("ParseFontFamily(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFontVariant(t *testing.T) {
	tests := []struct {
		weight, style, want string
	}{
		{"", "", "Regular"},
		{"400", "normal", "Regular"},
		{"bold", "", "Bold"},
		{"lighter", "", "Light"},
		{"100", "", "Thin"},
		{"200", "", "ExtraLight"},
		{"300", "", "Light"},
		{"500", "", "Medium"},
		{"600", "", "SemiBold"},
		{"700", "", "Bold"},
		{"800", "", "ExtraBold"},
		{"900", "", "Black"},
		{"400", "italic", "Italic"},
		{"700", "italic", "Bold Italic"},
		{"900", "oblique 10deg", "Black Italic"},
		{"200", "italic", "Thin Italic"},
		{"300", "italic", "Light Italic"},
		{"garbage", "", "Regular"},
	}
	for _, tt := range tests {
		t.Run(tt.weight+"/"+tt.style, func(t *testing.T) {
			if got := ParseFontVariant(tt.weight, tt.style); got != tt.want {
				t.Errorf("ParseFontVariant(%q, %q) = %q, want %q", tt.weight, tt.style, got, tt.want)
			}
		})
	}
}

func TestParseLineHeight(t *testing.T) {
	tests := []struct {
		in   string
		size float64
		want Measure
	}{
		{"", 16, Auto},
		{"normal", 16, Auto},
		{"24px", 16, Measure{UnitPixels, 24}},
		{"1.5", 16, Measure{UnitPixels, 24}},
		{"2", 0, Measure{UnitPixels, 32}},
		{"1.5em", 20, Measure{UnitPixels, 30}},
		{"2rem", 20, Measure{UnitPixels, 32}},
		{"150%", 16, Measure{UnitPercent, 150}},
		{"28", 16, Measure{UnitPixels, 28}},
		{"inherit", 16, Auto},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLineHeight(tt.in, tt.size); got != tt.want {
				t.Errorf("ParseLineHeight(%q, %v) = %+v, want %+v", tt.in, tt.size, got, tt.want)
			}
		})
	}
}

func TestParseLetterSpacing(t *testing.T) {
	tests := []struct {
		in   string
		want *Measure
	}{
		{"normal", nil},
		{"", nil},
		{"2px", &Measure{UnitPixels, 2}},
		{"0.05em", &Measure{UnitPercent, 5}},
		{"3", &Measure{UnitPixels, 3}},
		{"wide", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseLetterSpacing(tt.in)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("ParseLetterSpacing(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if got != nil && (got.Unit != tt.want.Unit || !approx(got.Value, tt.want.Value)) {
				t.Errorf("ParseLetterSpacing(%q) = %+v, want %+v", tt.in, *got, *tt.want)
			}
		})
	}
}

func TestParseTextAlign(t *testing.T) {
	tests := map[string]TextAlign{
		"left":    AlignLeft,
		"center":  AlignCenter,
		"centre":  AlignCenter,
		"right":   AlignRight,
		"justify": AlignJustified,
		"start":   AlignLeft,
		"end":     AlignRight,
		"":        AlignLeft,
		"bogus":   AlignLeft,
	}
	for in, want := range tests {
		if got := ParseTextAlign(in); got != want {
			t.Errorf("ParseTextAlign(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseDecoration(t *testing.T) {
	tests := map[string]Decoration{
		"none":                         DecorationNone,
		"":                             DecorationNone,
		"underline":                    DecorationUnderline,
		"underline solid rgb(0, 0, 0)": DecorationUnderline,
		"line-through":                 DecorationStrikethrough,
		"line-through underline":       DecorationUnderline,
	}
	for in, want := range tests {
		if got := ParseDecoration(in); got != want {
			t.Errorf("ParseDecoration(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestApplyTransform(t *testing.T) {
	tests := []struct {
		text, transform, want string
	}{
		{"Hello World", "uppercase", "HELLO WORLD"},
		{"Hello World", "lowercase", "hello world"},
		{"hello big-world", "capitalize", "Hello Big-World"},
		{"Hello", "none", "Hello"},
		{"Hello", "", "Hello"},
	}
	for _, tt := range tests {
		if got := ApplyTransform(tt.text, tt.transform); got != tt.want {
			t.Errorf("ApplyTransform(%q, %q) = %q, want %q", tt.text, tt.transform, got, tt.want)
		}
	}
}

func TestParseTypography(t *testing.T) {
	ty := ParseTypography(map[string]string{
		"fontFamily":    "Arial",
		"fontSize":      "20px",
		"fontWeight":    "600",
		"lineHeight":    "1.5",
		"textAlign":     "center",
		"textTransform": "uppercase",
	})
	if ty.Font != (Font{"Inter", "SemiBold"}) {
		t.Errorf("Font = %+v", ty.Font)
	}
	if ty.Size != 20 {
		t.Errorf("Size = %v, want 20", ty.Size)
	}
	if ty.LineHeight != (Measure{UnitPixels, 30}) {
		t.Errorf("LineHeight = %+v, want 30px", ty.LineHeight)
	}
	if ty.Align != AlignCenter || ty.Transform != "uppercase" || ty.Decoration != DecorationNone {
		t.Errorf("got %+v", ty)
	}

	def := ParseTypography(nil)
	if def.Font != DefaultFont || def.Size != DefaultFontSize || def.LineHeight != Auto || def.Align != AlignLeft {
		t.Errorf("defaults = %+v", def)
	}
}
