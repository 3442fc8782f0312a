package shapes

import (
	"image/color"

	"github.com/benoitkugler/svgshapes/svgpath"
)

// FillRule selects the filling algorithm.
type FillRule uint8

const (
	NonZero FillRule = iota
	EvenOdd
)

// JoinMode type to specify how segments join.
type JoinMode uint8

// JoinMode constants determine how stroke segments bridge the gap at a join
// ArcClip mode is like MiterClip applied to arcs, and is not part of the SVG2.0
// standard.
const (
	Arc JoinMode = iota // New in SVG2
	Round
	Bevel
	Miter
	MiterClip // New in SVG2
	ArcClip   // Like MiterClip applied to arcs, and is not part of the SVG2.0 standard.
)

func (s JoinMode) String() string {
	switch s {
	case Round:
		return "Round"
	case Bevel:
		return "Bevel"
	case Miter:
		return "Miter"
	case MiterClip:
		return "MiterClip"
	case Arc:
		return "Arc"
	case ArcClip:
		return "ArcClip"
	default:
		return "<unknown JoinMode>"
	}
}

// CapMode defines how to draw caps on the ends of lines
type CapMode uint8

const (
	ButtCap CapMode = iota
	SquareCap
	RoundCap
)

func (c CapMode) String() string {
	switch c {
	case ButtCap:
		return "ButtCap"
	case SquareCap:
		return "SquareCap"
	case RoundCap:
		return "RoundCap"
	default:
		return "<unknown CapMode>"
	}
}

type stateField uint16

const (
	fieldFill stateField = 1 << iota
	fieldStroke
	fieldFillOpacity
	fieldStrokeOpacity
	fieldStrokeWidth
	fieldFillRule
	fieldLineJoin
	fieldLineCap
	fieldMarkers
)

// State is the style state attached to a node.
// It records which properties were explicitly set,
// so that it may be combined with the inherited one.
type State struct {
	Fill, Stroke               color.Color // nil disables filling or stroking
	FillGradient               *svgpath.Gradient
	StrokeGradient             *svgpath.Gradient
	FillOpacity, StrokeOpacity float64
	StrokeWidth                float64
	FillRule                   FillRule
	LineJoin                   JoinMode
	LineCap                    CapMode

	// marker shapes, in stroke width units, oriented along +x
	MarkerStart, MarkerMid, MarkerEnd svgpath.Path

	set stateField
}

// NewState returns the initial state: black fill, no stroke,
// full opacity, with nothing marked as set.
func NewState() *State {
	return &State{
		Fill:          color.NRGBA{0, 0, 0, 0xff},
		FillOpacity:   1,
		StrokeOpacity: 1,
		StrokeWidth:   1,
		LineJoin:      Miter,
		LineCap:       ButtCap,
	}
}

func (s *State) SetFill(c color.Color) { s.Fill, s.FillGradient = c, nil; s.set |= fieldFill }

func (s *State) SetStroke(c color.Color) { s.Stroke, s.StrokeGradient = c, nil; s.set |= fieldStroke }

// SetFillGradient paints the fill with g. Fill is set to
// the gradient fallback color, so that a gradient without
// stops disables filling.
func (s *State) SetFillGradient(g *svgpath.Gradient) {
	s.Fill, s.FillGradient = g.Fallback(), g
	if s.Fill == nil {
		s.FillGradient = nil
	}
	s.set |= fieldFill
}

// SetStrokeGradient is the same as SetFillGradient, for the stroke.
func (s *State) SetStrokeGradient(g *svgpath.Gradient) {
	s.Stroke, s.StrokeGradient = g.Fallback(), g
	if s.Stroke == nil {
		s.StrokeGradient = nil
	}
	s.set |= fieldStroke
}

func (s *State) SetFillOpacity(o float64) { s.FillOpacity = o; s.set |= fieldFillOpacity }

func (s *State) SetStrokeOpacity(o float64) { s.StrokeOpacity = o; s.set |= fieldStrokeOpacity }

func (s *State) SetStrokeWidth(w float64) { s.StrokeWidth = w; s.set |= fieldStrokeWidth }

func (s *State) SetFillRule(r FillRule) { s.FillRule = r; s.set |= fieldFillRule }

func (s *State) SetLineJoin(j JoinMode) { s.LineJoin = j; s.set |= fieldLineJoin }

func (s *State) SetLineCap(c CapMode) { s.LineCap = c; s.set |= fieldLineCap }

// SetMarkers sets the three marker shapes. A nil path disables the marker.
func (s *State) SetMarkers(start, mid, end svgpath.Path) {
	s.MarkerStart, s.MarkerMid, s.MarkerEnd = start, mid, end
	s.set |= fieldMarkers
}

// HasMarkers returns true if at least one marker shape is defined.
func (s *State) HasMarkers() bool {
	return len(s.MarkerStart) != 0 || len(s.MarkerMid) != 0 || len(s.MarkerEnd) != 0
}

// Marker returns the marker shape for the given vertex kind.
func (s *State) Marker(kind svgpath.VertexKind) svgpath.Path {
	switch kind {
	case svgpath.StartVertex:
		return s.MarkerStart
	case svgpath.MidVertex:
		return s.MarkerMid
	default:
		return s.MarkerEnd
	}
}

var fieldCopiers = [...]struct {
	field stateField
	copy  func(dst, src *State)
}{
	{fieldFill, func(dst, src *State) { dst.Fill, dst.FillGradient = src.Fill, src.FillGradient }},
	{fieldStroke, func(dst, src *State) { dst.Stroke, dst.StrokeGradient = src.Stroke, src.StrokeGradient }},
	{fieldFillOpacity, func(dst, src *State) { dst.FillOpacity = src.FillOpacity }},
	{fieldStrokeOpacity, func(dst, src *State) { dst.StrokeOpacity = src.StrokeOpacity }},
	{fieldStrokeWidth, func(dst, src *State) { dst.StrokeWidth = src.StrokeWidth }},
	{fieldFillRule, func(dst, src *State) { dst.FillRule = src.FillRule }},
	{fieldLineJoin, func(dst, src *State) { dst.LineJoin = src.LineJoin }},
	{fieldLineCap, func(dst, src *State) { dst.LineCap = src.LineCap }},
	{fieldMarkers, func(dst, src *State) {
		dst.MarkerStart, dst.MarkerMid, dst.MarkerEnd = src.MarkerStart, src.MarkerMid, src.MarkerEnd
	}},
}

// Reinherit combines the inherited state with a node local one.
// Properties set on only one side are taken from it. For properties set
// on both sides, the local value wins, unless dominate is non zero,
// in which case the inherited value wins.
func Reinherit(inherited, local State, dominate int) State {
	out := local
	for _, fc := range fieldCopiers {
		if inherited.set&fc.field == 0 {
			continue
		}
		if dominate != 0 || local.set&fc.field == 0 {
			fc.copy(&out, &inherited)
		}
	}
	out.set = inherited.set | local.set
	return out
}
