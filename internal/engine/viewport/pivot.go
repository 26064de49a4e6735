package viewport

import (
	"github.com/Munormae/cryxtal-castor/internal/engine/overlay"
	"github.com/Munormae/cryxtal-castor/pkg/math"
)

// PivotState tracks the orbit pivot position and whether a pivot pick is
// armed. Arming is sticky: a key press arms it and it stays armed until a
// point is picked or the interaction is cancelled, so the user can release
// the key before clicking.
type PivotState struct {
	position math.Vec3
	pickMode bool
}

// Position returns the current pivot point.
func (p *PivotState) Position() math.Vec3 {
	return p.position
}

// SetPosition moves the pivot.
func (p *PivotState) SetPosition(position math.Vec3) {
	p.position = position
}

// ArmPick latches pick mode on.
func (p *PivotState) ArmPick() {
	p.pickMode = true
}

// IsPickActive reports whether a pivot pick should run: either the latch is
// set or the key is held right now.
func (p *PivotState) IsPickActive(keyDown bool) bool {
	return p.pickMode || keyDown
}

// DisarmPick clears the latch.
func (p *PivotState) DisarmPick() {
	p.pickMode = false
}

// Draw paints the pivot marker: a small cross with a ring around it.
// project maps a world point to screen space and reports visibility.
func (p *PivotState) Draw(painter overlay.Painter, project func(math.Vec3) (math.Vec2, float64, bool)) {
	pos, _, ok := project(p.position)
	if !ok {
		return
	}
	stroke := overlay.NewStroke(1.5, overlay.Gray(230))
	const size = 6.0
	painter.LineSegment(
		pos.Add(math.Vec2{X: -size}),
		pos.Add(math.Vec2{X: size}),
		stroke,
	)
	painter.LineSegment(
		pos.Add(math.Vec2{Y: -size}),
		pos.Add(math.Vec2{Y: size}),
		stroke,
	)
	painter.CircleStroke(pos, size*0.8, stroke)
}
