// Implements an abstract representation of
// svg paths, which can then be consumed
// by painting drivers.
package svgpath

import (
	"fmt"
	"strings"

	"golang.org/x/image/math/fixed"
)

// Adder interface for types that can accumulate path commands,
// such as the rasterx fillers and dashers.
type Adder interface {
	// Start starts a new curve at the given point.
	Start(a fixed.Point26_6)
	// Line adds a line segment to the path
	Line(b fixed.Point26_6)
	// QuadBezier adds a quadratic bezier curve to the path
	QuadBezier(b, c fixed.Point26_6)
	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)
	// Closes the path to the start point if closeLoop is true
	Stop(closeLoop bool)
}

// Point is a point in user space.
type Point struct{ X, Y float64 }

// Fixed converts the point to the 26.6 fixed format used by rasterizers.
func (p Point) Fixed() fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(p.X * 64), Y: fixed.Int26_6(p.Y * 64)}
}

type pathCommand uint8

// Human readable path constants
const (
	pathMoveTo pathCommand = iota
	pathLineTo
	pathCubicTo
	pathClose
)

// Operation groups the different SVG commands
type Operation interface {
	command() pathCommand
}

type MoveTo Point

type LineTo Point

// CubicTo stores the two control points and the end point.
type CubicTo [3]Point

type Close struct{}

func (MoveTo) command() pathCommand  { return pathMoveTo }
func (LineTo) command() pathCommand  { return pathLineTo }
func (CubicTo) command() pathCommand { return pathCubicTo }
func (Close) command() pathCommand   { return pathClose }

// Path describes a sequence of basic SVG operations.
// Higher-level shapes may be reduced to a path.
type Path []Operation

// ToSVGPath returns a string representation of the path
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%4.3f,%4.3f", op.X, op.Y)
		case LineTo:
			chunks[i] = fmt.Sprintf("L%4.3f,%4.3f", op.X, op.Y)
		case CubicTo:
			chunks[i] = fmt.Sprintf("C%4.3f,%4.3f,%4.3f,%4.3f,%4.3f,%4.3f",
				op[0].X, op[0].Y, op[1].X, op[1].Y, op[2].X, op[2].Y)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// AddTo replays the path into q, applying
// an implicit (open) stop before each new sub path and at the end.
func (p Path) AddTo(q Adder) {
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			q.Stop(false) // implicit close if currently in path.
			q.Start(Point(op).Fixed())
		case LineTo:
			q.Line(Point(op).Fixed())
		case CubicTo:
			q.CubeBezier(op[0].Fixed(), op[1].Fixed(), op[2].Fixed())
		case Close:
			q.Stop(true)
		}
	}
	q.Stop(false)
}

// Builder accumulates path commands.
// A builder has a single owner, which must call Destroy
// once the path is not needed anymore.
type Builder struct {
	path     Path
	released bool
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder { return &Builder{} }

// MoveTo starts a new sub path at (x, y).
func (b *Builder) MoveTo(x, y float64) {
	b.path = append(b.path, MoveTo{x, y})
}

// LineTo adds a linear segment to the current sub path.
func (b *Builder) LineTo(x, y float64) {
	b.path = append(b.path, LineTo{x, y})
}

// CurveTo adds a cubic segment with control points (x1, y1), (x2, y2)
// ending at (x3, y3).
func (b *Builder) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	b.path = append(b.path, CubicTo{{x1, y1}, {x2, y2}, {x3, y3}})
}

// ClosePath joins the end of the current sub path to its start.
func (b *Builder) ClosePath() {
	b.path = append(b.path, Close{})
}

// Path returns the accumulated commands. The slice is owned by the builder.
func (b *Builder) Path() Path { return b.path }

// Len returns the number of commands.
func (b *Builder) Len() int { return len(b.path) }

// Destroy releases the commands. It is safe to call it more than once.
func (b *Builder) Destroy() {
	b.path = nil
	b.released = true
}

// Released returns true once Destroy has been called.
func (b *Builder) Released() bool { return b.released }
