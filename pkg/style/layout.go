package style

import "strings"

// LayoutMode is the direction of an auto layout.
type LayoutMode string

const (
	LayoutHorizontal LayoutMode = "HORIZONTAL"
	LayoutVertical   LayoutMode = "VERTICAL"
)

// AutoLayout describes flex or grid flow on a frame.
type AutoLayout struct {
	Mode        LayoutMode `json:"mode"`
	ItemSpacing float64    `json:"itemSpacing"`
	Padding     float64    `json:"padding"`
}

// ParseAutoLayout returns a layout for flex and grid containers, or nil.
func ParseAutoLayout(styles map[string]string) *AutoLayout {
	switch strings.ToLower(strings.TrimSpace(styles["display"])) {
	case "flex", "inline-flex", "grid", "inline-grid":
	default:
		return nil
	}

	l := &AutoLayout{Mode: LayoutHorizontal}
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(styles["flexDirection"])), "column") {
		l.Mode = LayoutVertical
	}
	if v, ok := firstNumber(styles["gap"]); ok && v > 0 {
		l.ItemSpacing = v
	}
	if v, ok := firstNumber(styles["padding"]); ok && v > 0 {
		l.Padding = v
	}
	return l
}
