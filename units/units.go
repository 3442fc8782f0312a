/*
Package units supports the SVG length units (px, em, ex, in, cm, mm, pt, pc and %).

A Length is parsed early from an attribute, together with the axis
it applies to, and resolved later into user space units once
the drawing Context (viewport size, resolution and font size) is known.
*/
package units

import (
	"errors"
	"fmt"
	"math"
	"strings"

	parse "github.com/tdewolff/parse/v2/strconv"
)

// standard conversion factors
const (
	MmPerInch = 25.4
	CmPerInch = 2.54
	PtPerInch = 72.0
	PcPerInch = 6.0
)

// ErrInvalidLength is returned when parsing a malformed length.
var ErrInvalidLength = errors.New("invalid length")

// Unit is the unit of a Length.
type Unit uint8

const (
	// Px = user space unit, also used when no unit is given
	Px Unit = iota
	// Percent = fraction of the viewport dimension
	Percent
	// Em = font size
	Em
	// Ex = half of the font size
	Ex
	// In = inches
	In
	// Cm = centimeters
	Cm
	// Mm = millimeters
	Mm
	// Pt = points, 1/72 of an inch
	Pt
	// Pc = picas, 1/6 of an inch
	Pc
)

var unitNames = [...]string{
	Px:      "px",
	Percent: "%",
	Em:      "em",
	Ex:      "ex",
	In:      "in",
	Cm:      "cm",
	Mm:      "mm",
	Pt:      "pt",
	Pc:      "pc",
}

func (u Unit) String() string {
	if int(u) < len(unitNames) {
		return unitNames[u]
	}
	return "<unknown Unit>"
}

// Direction is the axis a length is measured along,
// which matters for percentages and non square resolutions.
type Direction uint8

const (
	Horizontal Direction = iota
	Vertical
	Both
)

func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case Both:
		return "both"
	default:
		return "<unknown Direction>"
	}
}

// Context provides the reference values needed to resolve lengths.
type Context interface {
	// Viewport returns the size of the current viewport, in user units.
	Viewport() (w, h float64)
	// DPI returns the horizontal and vertical resolutions.
	DPI() (x, y float64)
	// FontSize returns the current font size, in user units.
	FontSize() float64
}

// Length is a value with its unit and direction.
// Percentages are stored as fractions.
type Length struct {
	Value float64
	Unit  Unit
	Dir   Direction
}

func (l Length) String() string {
	v := l.Value
	if l.Unit == Percent {
		v *= 100
	}
	return fmt.Sprintf("%g%s", v, l.Unit)
}

// Parse reads a number followed by an optional unit.
func Parse(s string, dir Direction) (Length, error) {
	b := []byte(strings.TrimSpace(s))
	v, n := parse.ParseFloat(b)
	if n == 0 {
		return Length{Dir: dir}, fmt.Errorf("%w: %q", ErrInvalidLength, s)
	}
	out := Length{Value: v, Dir: dir}
	suffix := string(b[n:])
	switch suffix {
	case "", "px":
		out.Unit = Px
	case "%":
		out.Unit = Percent
		out.Value /= 100
	default:
		found := false
		for u, name := range unitNames {
			if name == suffix {
				out.Unit, found = Unit(u), true
				break
			}
		}
		if !found {
			return Length{Dir: dir}, fmt.Errorf("%w: unknown unit in %q", ErrInvalidLength, s)
		}
	}
	return out, nil
}

// ParseOrZero is like Parse, but returns a zero length
// (with direction dir) for invalid inputs.
func ParseOrZero(s string, dir Direction) Length {
	l, err := Parse(s, dir)
	if err != nil {
		return Length{Dir: dir}
	}
	return l
}

// Resolve converts the length into user space units.
func (l Length) Resolve(ctx Context) float64 {
	switch l.Unit {
	case Px:
		return l.Value
	case Percent:
		w, h := ctx.Viewport()
		switch l.Dir {
		case Horizontal:
			return l.Value * w
		case Vertical:
			return l.Value * h
		default:
			return l.Value * math.Sqrt(w*w+h*h) / math.Sqrt2
		}
	case Em:
		return l.Value * ctx.FontSize()
	case Ex:
		return l.Value * ctx.FontSize() / 2
	}

	dpi := l.dpi(ctx)
	switch l.Unit {
	case In:
		return l.Value * dpi
	case Cm:
		return l.Value * dpi / CmPerInch
	case Mm:
		return l.Value * dpi / MmPerInch
	case Pt:
		return l.Value * dpi / PtPerInch
	case Pc:
		return l.Value * dpi / PcPerInch
	}
	return 0
}

func (l Length) dpi(ctx Context) float64 {
	x, y := ctx.DPI()
	switch l.Dir {
	case Horizontal:
		return x
	case Vertical:
		return y
	default:
		return math.Sqrt(x * y)
	}
}
