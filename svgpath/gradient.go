package svgpath

import (
	"fmt"
	"image/color"
	"math"
)

// GradientUnits is the type for gradient units
type GradientUnits byte

// SVG bounds paremater constants
const (
	ObjectBoundingBox GradientUnits = iota
	UserSpaceOnUse
)

// ParseGradientUnits reads the gradientUnits attribute.
func ParseGradientUnits(s string) (GradientUnits, error) {
	switch s {
	case "userSpaceOnUse":
		return UserSpaceOnUse, nil
	case "objectBoundingBox":
		return ObjectBoundingBox, nil
	}
	return 0, fmt.Errorf("expected 'userSpaceOnUse' or 'objectBoundingBox', got %q", s)
}

// SpreadMethod is the type for spread parameters
type SpreadMethod byte

// SVG spread parameter constants
const (
	PadSpread SpreadMethod = iota
	ReflectSpread
	RepeatSpread
)

// ParseSpreadMethod reads the spreadMethod attribute.
func ParseSpreadMethod(s string) (SpreadMethod, error) {
	switch s {
	case "pad":
		return PadSpread, nil
	case "reflect":
		return ReflectSpread, nil
	case "repeat":
		return RepeatSpread, nil
	}
	return 0, fmt.Errorf("expected 'pad' | 'reflect' | 'repeat', got %q", s)
}

// GradStop represents a stop in the SVG 2.0 gradient specification
type GradStop struct {
	StopColor color.Color
	Offset    float64
	Opacity   float64
}

// Gradient holds a description of an SVG 2.0 gradient.
// Coordinates are fractions of the bounding box of the painted
// path for ObjectBoundingBox units, user space values otherwise.
type Gradient struct {
	Direction GradientDirection
	Stops     []GradStop
	Spread    SpreadMethod
	Units     GradientUnits
}

// GradientDirection is either Linear or Radial
type GradientDirection interface {
	isRadial() bool
}

// x1, y1, x2, y2
type Linear [4]float64

func (Linear) isRadial() bool { return false }

// cx, cy, fx, fy, r, fr
type Radial [6]float64

func (Radial) isRadial() bool { return true }

// IsRadial returns true for radial gradients.
func (g *Gradient) IsRadial() bool { return g.Direction != nil && g.Direction.isRadial() }

// UserSpace returns the gradient geometry in user space, when painting
// a path with the given bounds. Radii of ObjectBoundingBox radial
// gradients are scaled by the normalized diagonal of the bounds.
func (g *Gradient) UserSpace(bounds Rect) GradientDirection {
	if g.Units == UserSpaceOnUse {
		return g.Direction
	}
	w, h := bounds.W(), bounds.H()
	x := func(f float64) float64 { return bounds.Min.X + f*w }
	y := func(f float64) float64 { return bounds.Min.Y + f*h }
	switch dir := g.Direction.(type) {
	case Linear:
		return Linear{x(dir[0]), y(dir[1]), x(dir[2]), y(dir[3])}
	case Radial:
		diag := math.Sqrt((w*w + h*h) / 2)
		return Radial{x(dir[0]), y(dir[1]), x(dir[2]), y(dir[3]), dir[4] * diag, dir[5] * diag}
	}
	return g.Direction
}

// Fallback returns the color used by painters without
// gradient support, or nil for a gradient without stops.
func (g *Gradient) Fallback() color.Color {
	if len(g.Stops) == 0 {
		return nil
	}
	return g.Stops[0].StopColor
}
