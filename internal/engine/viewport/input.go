package viewport

import (
	"github.com/Munormae/cryxtal-castor/internal/engine/overlay"
	"github.com/Munormae/cryxtal-castor/pkg/math"
)

// Modifiers carries the keyboard modifier state sampled with the frame.
type Modifiers struct {
	Shift bool
	Ctrl  bool
}

// Input is one frame's worth of pointer and key state for the viewport.
// The windowing layer fills one of these per frame; the viewport never
// talks to the event queue directly.
type Input struct {
	// Rect is the viewport rectangle in window coordinates.
	Rect overlay.Rect

	// PointerPos is valid only when HasPointer is true.
	PointerPos math.Vec2
	HasPointer bool

	// PointerDelta is the pointer movement since the previous frame.
	PointerDelta math.Vec2

	PrimaryDown   bool
	SecondaryDown bool
	MiddleDown    bool

	// PrimaryClicked fires on the frame the primary button is released
	// without having dragged. DoubleClicked fires on the second such
	// release inside the platform double-click window.
	PrimaryClicked bool
	DoubleClicked  bool

	// ScrollDelta is the wheel movement this frame, positive away from
	// the user.
	ScrollDelta float32

	Modifiers Modifiers

	// Hovered reports whether the pointer is over the viewport at all.
	Hovered bool

	// PivotKeyPressed is the press edge of the pivot pick key,
	// PivotKeyDown its level.
	PivotKeyPressed bool
	PivotKeyDown    bool
}
