package style

import (
	"strings"
	"unicode"
)

// DefaultFamily is used when no family can be resolved.
const DefaultFamily = "Inter"

// DefaultFontSize is the CSS root font size in pixels.
const DefaultFontSize = 16

// Unit qualifies a line-height or letter-spacing value.
type Unit string

const (
	UnitAuto    Unit = "AUTO"
	UnitPixels  Unit = "PIXELS"
	UnitPercent Unit = "PERCENT"
)

// Measure is a value with an explicit unit. Value is unused for AUTO.
type Measure struct {
	Unit  Unit    `json:"unit"`
	Value float64 `json:"value,omitempty"`
}

// Auto is the line height used when none can be parsed.
var Auto = Measure{Unit: UnitAuto}

// TextAlign is horizontal text alignment.
type TextAlign string

const (
	AlignLeft      TextAlign = "LEFT"
	AlignCenter    TextAlign = "CENTER"
	AlignRight     TextAlign = "RIGHT"
	AlignJustified TextAlign = "JUSTIFIED"
)

// Decoration is a text decoration flag.
type Decoration string

const (
	DecorationNone          Decoration = "NONE"
	DecorationUnderline     Decoration = "UNDERLINE"
	DecorationStrikethrough Decoration = "STRIKETHROUGH"
)

// Font names a family and one of its named variants, e.g. Inter Bold.
type Font struct {
	Family string `json:"family"`
	Style  string `json:"style"`
}

// DefaultFont is the typography fallback when a font cannot be loaded.
var DefaultFont = Font{Family: DefaultFamily, Style: "Regular"}

// Typography is the parsed text style of an element.
type Typography struct {
	Font          Font       `json:"font"`
	Size          float64    `json:"size"`
	LineHeight    Measure    `json:"lineHeight"`
	Align         TextAlign  `json:"align"`
	Decoration    Decoration `json:"decoration"`
	Transform     string     `json:"transform,omitempty"`
	LetterSpacing *Measure   `json:"letterSpacing,omitempty"`
}

var familyAliases = map[string]string{
	// sans-serif
	"arial":              "Inter",
	"helvetica":          "Inter",
	"helvetica neue":     "Inter",
	"sans-serif":         "Inter",
	"system-ui":          "Inter",
	"-apple-system":      "Inter",
	"blinkmacsystemfont": "Inter",
	"segoe ui":           "Inter",
	"roboto":             "Roboto",
	"ubuntu":             "Inter",
	"cantarell":          "Inter",
	"fira sans":          "Inter",
	"droid sans":         "Inter",
	"oxygen":             "Inter",
	"open sans":          "Open Sans",
	"lato":               "Inter",
	"montserrat":         "Inter",
	"source sans pro":    "Inter",
	"inter":              "Inter",

	// serif
	"times":           "Times New Roman",
	"times new roman": "Times New Roman",
	"serif":           "Times New Roman",
	"georgia":         "Georgia",
	"garamond":        "Times New Roman",
	"baskerville":     "Times New Roman",
	"palatino":        "Times New Roman",

	// monospace
	"courier":          "Courier New",
	"courier new":      "Courier New",
	"monospace":        "Courier New",
	"monaco":           "Courier New",
	"menlo":            "Courier New",
	"consolas":         "Courier New",
	"dejavu sans mono": "Courier New",
	"liberation mono":  "Courier New",
	"source code pro":  "Courier New",
	"fira code":        "Courier New",

	// display
	"impact":        "Inter",
	"trebuchet ms":  "Inter",
	"verdana":       "Inter",
	"tahoma":        "Inter",
	"comic sans ms": "Inter",
}

// ParseFontFamily resolves the first family of a font stack through the
// alias table. Unknown families pass through with quotes removed.
func ParseFontFamily(stack string) string {
	first, _, _ := strings.Cut(stack, ",")
	family := strings.TrimSpace(strings.NewReplacer(`"`, "", "'", "").Replace(first))
	if family == "" {
		return DefaultFamily
	}
	if alias, ok := familyAliases[strings.ToLower(family)]; ok {
		return alias
	}
	return family
}

// ParseFontWeight returns a numeric CSS weight. Relative keywords are
// resolved against the normal weight.
func ParseFontWeight(s string) int {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return 400
	case "bold", "bolder":
		return 700
	case "lighter":
		return 300
	}
	v, ok := parseNumber(s)
	if !ok || v <= 0 {
		return 400
	}
	return int(v)
}

// ParseFontVariant maps a weight and font-style onto a named variant.
func ParseFontVariant(weight, fontStyle string) string {
	w := ParseFontWeight(weight)
	fs := strings.ToLower(strings.TrimSpace(fontStyle))

	if fs == "italic" || strings.HasPrefix(fs, "oblique") {
		switch {
		case w >= 800:
			return "Black Italic"
		case w >= 700:
			return "Bold Italic"
		case w >= 600:
			return "SemiBold Italic"
		case w >= 500:
			return "Medium Italic"
		case w <= 200:
			return "Thin Italic"
		case w <= 300:
			return "Light Italic"
		}
		return "Italic"
	}

	switch {
	case w >= 900:
		return "Black"
	case w >= 800:
		return "ExtraBold"
	case w >= 700:
		return "Bold"
	case w >= 600:
		return "SemiBold"
	case w >= 500:
		return "Medium"
	case w <= 100:
		return "Thin"
	case w <= 200:
		return "ExtraLight"
	case w <= 300:
		return "Light"
	}
	return "Regular"
}

// ParseFontSize returns the size in pixels, or DefaultFontSize.
func ParseFontSize(s string) float64 {
	v, ok := parseNumber(s)
	if !ok || v <= 0 {
		return DefaultFontSize
	}
	if strings.HasSuffix(strings.TrimSpace(s), "rem") || strings.HasSuffix(strings.TrimSpace(s), "em") {
		return v * DefaultFontSize
	}
	return v
}

// ParseLineHeight converts a CSS line-height to a measure. Unitless values
// below 10 are multipliers of fontSize; larger unitless values are pixels.
func ParseLineHeight(s string, fontSize float64) Measure {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "normal" {
		return Auto
	}
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	v, ok := parseNumber(s)
	if !ok {
		return Auto
	}

	switch {
	case strings.HasSuffix(s, "px"):
		return Measure{Unit: UnitPixels, Value: v}
	case strings.HasSuffix(s, "rem"):
		return Measure{Unit: UnitPixels, Value: v * DefaultFontSize}
	case strings.HasSuffix(s, "em"):
		return Measure{Unit: UnitPixels, Value: v * fontSize}
	case strings.HasSuffix(s, "%"):
		return Measure{Unit: UnitPercent, Value: v}
	case leadingNumber.FindString(s) == s:
		if v < 10 {
			return Measure{Unit: UnitPixels, Value: v * fontSize}
		}
		return Measure{Unit: UnitPixels, Value: v}
	}
	return Auto
}

// ParseLetterSpacing converts px or em spacing. It returns nil for
// "normal" and anything it does not understand.
func ParseLetterSpacing(s string) *Measure {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "normal" {
		return nil
	}
	v, ok := parseNumber(s)
	if !ok {
		return nil
	}
	switch {
	case strings.HasSuffix(s, "px"):
		return &Measure{Unit: UnitPixels, Value: v}
	case strings.HasSuffix(s, "rem"):
		return nil
	case strings.HasSuffix(s, "em"):
		return &Measure{Unit: UnitPercent, Value: v * 100}
	case leadingNumber.FindString(s) == s:
		return &Measure{Unit: UnitPixels, Value: v}
	}
	return nil
}

// ParseTextAlign maps CSS text-align, defaulting to LEFT.
func ParseTextAlign(s string) TextAlign {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "center", "centre", "-webkit-center":
		return AlignCenter
	case "right", "end", "-webkit-right":
		return AlignRight
	case "justify":
		return AlignJustified
	}
	return AlignLeft
}

// ParseDecoration maps text-decoration. Underline wins over line-through.
func ParseDecoration(s string) Decoration {
	fields := strings.Fields(strings.ToLower(s))
	for _, f := range fields {
		if f == "underline" {
			return DecorationUnderline
		}
	}
	for _, f := range fields {
		if f == "line-through" {
			return DecorationStrikethrough
		}
	}
	return DecorationNone
}

// ApplyTransform applies a CSS text-transform to text.
func ApplyTransform(text, transform string) string {
	switch strings.ToLower(strings.TrimSpace(transform)) {
	case "uppercase":
		return strings.ToUpper(text)
	case "lowercase":
		return strings.ToLower(text)
	case "capitalize":
		return capitalize(text)
	}
	return text
}

// capitalize upper-cases the first letter of every word.
func capitalize(s string) string {
	out := []rune(s)
	prevWord := false
	for i, r := range out {
		word := unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
		if word && !prevWord {
			out[i] = unicode.ToUpper(r)
		}
		prevWord = word
	}
	return string(out)
}

// ParseTypography reads the text-related properties of a style map.
func ParseTypography(styles map[string]string) Typography {
	get := func(k string) string { return strings.TrimSpace(styles[k]) }

	size := ParseFontSize(get("fontSize"))
	t := Typography{
		Font: Font{
			Family: ParseFontFamily(get("fontFamily")),
			Style:  ParseFontVariant(get("fontWeight"), get("fontStyle")),
		},
		Size:          size,
		LineHeight:    ParseLineHeight(get("lineHeight"), size),
		Align:         ParseTextAlign(get("textAlign")),
		Decoration:    ParseDecoration(get("textDecoration")),
		LetterSpacing: ParseLetterSpacing(get("letterSpacing")),
	}
	if tr := strings.ToLower(get("textTransform")); tr != "" && tr != "none" {
		t.Transform = tr
	}
	return t
}
