// Package sdlpaint implements the overlay drawing contract on the SDL2 2D
// renderer, using the gfx primitives for circles, polygons, and text.
package sdlpaint

import (
	"github.com/veandco/go-sdl2/gfx"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Munormae/cryxtal-castor/internal/engine/overlay"
	"github.com/Munormae/cryxtal-castor/pkg/math"
)

// glyphWidth is the cell width of the gfx built-in 8x8 font.
const glyphWidth = 8

// Painter draws overlay shapes through an sdl.Renderer.
type Painter struct {
	renderer *sdl.Renderer
}

// New wraps an SDL renderer as an overlay painter.
func New(renderer *sdl.Renderer) *Painter {
	return &Painter{renderer: renderer}
}

// Clear fills the whole render target with the given color.
func (p *Painter) Clear(c overlay.Color) {
	p.renderer.SetDrawColor(c.R, c.G, c.B, c.A)
	p.renderer.Clear()
}

// RectFilled draws a filled rectangle, rounded when radius > 0.
func (p *Painter) RectFilled(rect overlay.Rect, radius float32, fill overlay.Color) {
	x1, y1 := round32(rect.Min.X), round32(rect.Min.Y)
	x2, y2 := round32(rect.Max.X), round32(rect.Max.Y)
	if radius > 0.5 {
		gfx.RoundedBoxRGBA(p.renderer, x1, y1, x2, y2, round32(radius), fill.R, fill.G, fill.B, fill.A)
		return
	}
	gfx.BoxRGBA(p.renderer, x1, y1, x2, y2, fill.R, fill.G, fill.B, fill.A)
}

// RectStroke draws a rectangle outline. Strokes wider than one pixel are
// built from inset repetitions.
func (p *Painter) RectStroke(rect overlay.Rect, radius float32, stroke overlay.Stroke) {
	c := stroke.Color
	passes := round32(stroke.Width)
	if passes < 1 {
		passes = 1
	}
	for i := int32(0); i < passes; i++ {
		inset := float32(i)
		x1, y1 := round32(rect.Min.X+inset), round32(rect.Min.Y+inset)
		x2, y2 := round32(rect.Max.X-inset), round32(rect.Max.Y-inset)
		if x2 <= x1 || y2 <= y1 {
			break
		}
		if radius > 0.5 {
			gfx.RoundedRectangleRGBA(p.renderer, x1, y1, x2, y2, round32(radius), c.R, c.G, c.B, c.A)
		} else {
			gfx.RectangleRGBA(p.renderer, x1, y1, x2, y2, c.R, c.G, c.B, c.A)
		}
	}
}

// LineSegment draws a line with the stroke's width.
func (p *Painter) LineSegment(start, end math.Vec2, stroke overlay.Stroke) {
	c := stroke.Color
	width := round32(stroke.Width)
	if width <= 1 {
		gfx.AALineRGBA(p.renderer, round32(start.X), round32(start.Y), round32(end.X), round32(end.Y), c.R, c.G, c.B, c.A)
		return
	}
	gfx.ThickLineRGBA(p.renderer, round32(start.X), round32(start.Y), round32(end.X), round32(end.Y), width, c.R, c.G, c.B, c.A)
}

// CircleFilled draws a filled circle with an anti-aliased rim.
func (p *Painter) CircleFilled(center math.Vec2, radius float32, fill overlay.Color) {
	x, y, r := round32(center.X), round32(center.Y), round32(radius)
	gfx.FilledCircleRGBA(p.renderer, x, y, r, fill.R, fill.G, fill.B, fill.A)
	gfx.AACircleRGBA(p.renderer, x, y, r, fill.R, fill.G, fill.B, fill.A)
}

// CircleStroke draws a circle outline.
func (p *Painter) CircleStroke(center math.Vec2, radius float32, stroke overlay.Stroke) {
	c := stroke.Color
	x, y := round32(center.X), round32(center.Y)
	passes := round32(stroke.Width)
	if passes < 1 {
		passes = 1
	}
	for i := int32(0); i < passes; i++ {
		r := round32(radius) - i
		if r <= 0 {
			break
		}
		gfx.AACircleRGBA(p.renderer, x, y, r, c.R, c.G, c.B, c.A)
	}
}

// Polygon draws a filled polygon with an outline. A fully transparent fill
// or stroke skips that pass.
func (p *Painter) Polygon(points []math.Vec2, fill overlay.Color, stroke overlay.Stroke) {
	if len(points) < 3 {
		return
	}
	vx := make([]int16, len(points))
	vy := make([]int16, len(points))
	for i, pt := range points {
		vx[i] = int16(round32(pt.X))
		vy[i] = int16(round32(pt.Y))
	}
	if fill.A > 0 {
		gfx.FilledPolygonRGBA(p.renderer, vx, vy, fill.R, fill.G, fill.B, fill.A)
	}
	if stroke.Color.A > 0 {
		gfx.AAPolygonRGBA(p.renderer, vx, vy, stroke.Color.R, stroke.Color.G, stroke.Color.B, stroke.Color.A)
	}
}

// Text draws a string with the gfx built-in 8x8 font. size is accepted for
// contract compatibility; the bitmap font has one size.
func (p *Painter) Text(pos math.Vec2, align overlay.Align, text string, size float32, color overlay.Color) {
	x := round32(pos.X)
	y := round32(pos.Y)
	if align == overlay.AlignCenter {
		x -= int32(len(text)) * glyphWidth / 2
		y -= glyphWidth / 2
	}
	gfx.StringRGBA(p.renderer, x, y, text, color.R, color.G, color.B, color.A)
}

func round32(v float32) int32 {
	if v >= 0 {
		return int32(v + 0.5)
	}
	return int32(v - 0.5)
}
