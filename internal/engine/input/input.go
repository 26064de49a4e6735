// Package input polls SDL2 events and condenses them into one viewport
// input snapshot per frame.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Munormae/cryxtal-castor/internal/engine/overlay"
	"github.com/Munormae/cryxtal-castor/internal/engine/viewport"
	"github.com/Munormae/cryxtal-castor/pkg/math"
)

// clickSlop is how far the pointer may travel between press and release for
// the release to still count as a click.
const clickSlop = 3.0

// Handler accumulates SDL events between frames.
type Handler struct {
	pointer    math.Vec2
	hasPointer bool
	delta      math.Vec2

	primaryDown   bool
	secondaryDown bool
	middleDown    bool

	pressPos   math.Vec2
	pressValid bool

	clicked       bool
	doubleClicked bool
	scroll        float32

	pivotPressed bool
	keyPresses   []sdl.Scancode

	resized       bool
	width, height int
}

// New creates a new input handler.
func New() *Handler {
	return &Handler{
		keyPresses: make([]sdl.Scancode, 0, 8),
	}
}

// Update polls SDL events and folds them into this frame's state.
// Returns true if the application should quit.
func (h *Handler) Update() bool {
	h.delta = math.Vec2{}
	h.clicked = false
	h.doubleClicked = false
	h.scroll = 0
	h.pivotPressed = false
	h.keyPresses = h.keyPresses[:0]
	h.resized = false

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				h.resized = true
				h.width = int(e.Data1)
				h.height = int(e.Data2)
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				h.keyPresses = append(h.keyPresses, e.Keysym.Scancode)
				if e.Keysym.Scancode == sdl.SCANCODE_V {
					h.pivotPressed = true
				}
			}

		case *sdl.MouseMotionEvent:
			h.pointer = math.Vec2{X: float32(e.X), Y: float32(e.Y)}
			h.hasPointer = true
			h.delta = h.delta.Add(math.Vec2{X: float32(e.XRel), Y: float32(e.YRel)})

		case *sdl.MouseButtonEvent:
			pos := math.Vec2{X: float32(e.X), Y: float32(e.Y)}
			h.pointer = pos
			h.hasPointer = true
			down := e.Type == sdl.MOUSEBUTTONDOWN
			switch e.Button {
			case sdl.BUTTON_LEFT:
				h.primaryDown = down
				if down {
					h.pressPos = pos
					h.pressValid = true
				} else if h.pressValid && pos.Distance(h.pressPos) <= clickSlop {
					h.clicked = true
					if e.Clicks >= 2 {
						h.doubleClicked = true
					}
				}
			case sdl.BUTTON_RIGHT:
				h.secondaryDown = down
			case sdl.BUTTON_MIDDLE:
				h.middleDown = down
			}

		case *sdl.MouseWheelEvent:
			h.scroll += float32(e.Y)
		}
	}

	return quit
}

// Snapshot builds the viewport input for this frame against the given
// viewport rectangle.
func (h *Handler) Snapshot(rect overlay.Rect) viewport.Input {
	mods := sdl.GetModState()
	keys := sdl.GetKeyboardState()

	return viewport.Input{
		Rect:           rect,
		PointerPos:     h.pointer,
		HasPointer:     h.hasPointer,
		PointerDelta:   h.delta,
		PrimaryDown:    h.primaryDown,
		SecondaryDown:  h.secondaryDown,
		MiddleDown:     h.middleDown,
		PrimaryClicked: h.clicked,
		DoubleClicked:  h.doubleClicked,
		// SDL reports one unit per wheel notch; the viewport expects
		// point-like deltas, so one notch zooms by about exp(0.4).
		ScrollDelta: h.scroll * 40,
		Modifiers: viewport.Modifiers{
			Shift: mods&sdl.KMOD_SHIFT != 0,
			Ctrl:  mods&sdl.KMOD_CTRL != 0,
		},
		Hovered:         h.hasPointer && rect.Contains(h.pointer),
		PivotKeyPressed: h.pivotPressed,
		PivotKeyDown:    keys[sdl.SCANCODE_V] != 0,
	}
}

// Resized reports a window resize seen this frame and its new size.
func (h *Handler) Resized() (int, int, bool) {
	return h.width, h.height, h.resized
}

// KeyPressed checks if a specific key was pressed this frame.
func (h *Handler) KeyPressed(scancode sdl.Scancode) bool {
	for _, sc := range h.keyPresses {
		if sc == scancode {
			return true
		}
	}
	return false
}
