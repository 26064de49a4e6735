package overlay

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// RGB creates a fully opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA creates a color with explicit alpha.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Gray creates an opaque gray.
func Gray(v uint8) Color {
	return Color{R: v, G: v, B: v, A: 255}
}

// Mix blends c toward tint by factor in [0, 1], keeping c's alpha.
func (c Color) Mix(tint Color, factor float32) Color {
	mix := func(b, t uint8) uint8 {
		v := float32(b)*(1-factor) + float32(t)*factor
		if v < 0 {
			v = 0
		} else if v > 255 {
			v = 255
		}
		return uint8(v)
	}
	return Color{R: mix(c.R, tint.R), G: mix(c.G, tint.G), B: mix(c.B, tint.B), A: c.A}
}

// Shade scales the color channels by level in [0, 1].
func (c Color) Shade(level float64) Color {
	if level < 0 {
		level = 0
	} else if level > 1 {
		level = 1
	}
	return Color{
		R: uint8(float64(c.R) * level),
		G: uint8(float64(c.G) * level),
		B: uint8(float64(c.B) * level),
		A: c.A,
	}
}

// Stroke describes an outline width and color.
type Stroke struct {
	Width float32
	Color Color
}

// NewStroke creates a stroke.
func NewStroke(width float32, color Color) Stroke {
	return Stroke{Width: width, Color: color}
}

// Align identifies a text anchor.
type Align int

// Text anchors.
const (
	AlignLeftTop Align = iota
	AlignCenter
)
