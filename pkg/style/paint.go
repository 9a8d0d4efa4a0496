package style

// PaintType names the kind of a fill or stroke paint.
type PaintType string

const (
	PaintSolid           PaintType = "SOLID"
	PaintGradientLinear  PaintType = "GRADIENT_LINEAR"
	PaintGradientRadial  PaintType = "GRADIENT_RADIAL"
	PaintGradientAngular PaintType = "GRADIENT_ANGULAR"
	PaintImage           PaintType = "IMAGE"
)

// ScaleMode controls how an image paint fits its node.
type ScaleMode string

const (
	ScaleFill ScaleMode = "FILL"
	ScaleFit  ScaleMode = "FIT"
	ScaleCrop ScaleMode = "CROP"
)

// Paint is one fill layer. Which fields are meaningful depends on Type.
type Paint struct {
	Type    PaintType `json:"type"`
	Color   *Color    `json:"color,omitempty"`
	Opacity float64   `json:"opacity"`

	GradientStops     []Stop  `json:"gradientStops,omitempty"`
	GradientTransform *Matrix `json:"gradientTransform,omitempty"`

	ImageHash      string    `json:"imageHash,omitempty"`
	ScaleMode      ScaleMode `json:"scaleMode,omitempty"`
	ImageTransform *Matrix   `json:"imageTransform,omitempty"`
}

// Solid returns a solid paint. The color's alpha becomes the paint
// opacity.
func Solid(c Color) Paint {
	opaque := c
	opaque.A = 1
	return Paint{Type: PaintSolid, Color: &opaque, Opacity: c.A}
}

// GradientPaint returns the paint for g.
func GradientPaint(g *Gradient) Paint {
	t := g.Transform
	p := Paint{
		Type:              PaintGradientLinear,
		Opacity:           1,
		GradientStops:     g.Stops,
		GradientTransform: &t,
	}
	switch g.Type {
	case GradientRadial:
		p.Type = PaintGradientRadial
	case GradientAngular:
		p.Type = PaintGradientAngular
	}
	return p
}

// ImagePaint returns an image fill referencing a content handle.
func ImagePaint(hash string, mode ScaleMode, transform *Matrix) Paint {
	return Paint{
		Type:           PaintImage,
		Opacity:        1,
		ImageHash:      hash,
		ScaleMode:      mode,
		ImageTransform: transform,
	}
}

// Stroke is a solid outline.
type Stroke struct {
	Paint  Paint   `json:"paint"`
	Weight float64 `json:"weight"`
	Style  string  `json:"style"`
}

// EffectType names a shadow effect.
type EffectType string

const (
	EffectDropShadow  EffectType = "DROP_SHADOW"
	EffectInnerShadow EffectType = "INNER_SHADOW"
)

// Vector is a 2D offset.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Effect is a shadow layer.
type Effect struct {
	Type    EffectType `json:"type"`
	Color   Color      `json:"color"`
	Offset  Vector     `json:"offset"`
	Radius  float64    `json:"radius"`
	Spread  float64    `json:"spread"`
	Visible bool       `json:"visible"`
}
