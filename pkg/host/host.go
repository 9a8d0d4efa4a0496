// Package host defines the capability interface of the design tool that
// receives a built tree, and an in-memory implementation of it.
//
// [Emit] walks a design tree and replays it as host calls. [Document]
// records those calls as a node tree that can be exported as JSON.
// [FontCache] sits in front of [Host.LoadTypography] so each font is
// requested once.
package host

import (
	"context"
	"errors"

	"github.com/matzehuels/framecast/pkg/design"
	"github.com/matzehuels/framecast/pkg/style"
)

// ErrUnknownHandle is returned for operations on handles the host never
// issued.
var ErrUnknownHandle = errors.New("unknown node handle")

// Handle is an opaque host node reference.
type Handle string

// Host is the node-creation API of a design tool. Positions are relative
// to the nearest frame ancestor.
type Host interface {
	CreateNode(kind design.Kind) (Handle, error)
	SetName(h Handle, name string) error
	Resize(h Handle, width, height float64) error
	SetPosition(h Handle, x, y float64) error
	SetFills(h Handle, fills []style.Paint) error
	SetStrokes(h Handle, strokes []style.Stroke) error
	SetEffects(h Handle, effects []style.Effect) error
	SetOpacity(h Handle, opacity float64) error
	SetCornerRadius(h Handle, radius float64) error
	SetLayout(h Handle, layout style.AutoLayout) error
	SetText(h Handle, characters string, typography style.Typography) error

	// AppendChild moves child under parent.
	AppendChild(parent, child Handle) error

	// GroupNodes wraps children in a new group inserted into parent. An
	// empty parent creates a root-level group.
	GroupNodes(children []Handle, parent Handle) (Handle, error)

	// LoadTypography makes font available for text nodes.
	LoadTypography(ctx context.Context, font style.Font) error
}
