package svgpath

import "math"

// VertexKind selects which marker is drawn on a vertex.
type VertexKind uint8

const (
	StartVertex VertexKind = iota
	MidVertex
	EndVertex
)

func (k VertexKind) String() string {
	switch k {
	case StartVertex:
		return "start"
	case MidVertex:
		return "mid"
	case EndVertex:
		return "end"
	default:
		return "<unknown VertexKind>"
	}
}

// Vertex is a point of the path where a marker may be drawn.
type Vertex struct {
	Point
	Kind  VertexKind
	Angle float64 // orientation, in radians
}

type tangents struct {
	pt            Point
	in, out       float64
	hasIn, hasOut bool
}

func direction(from Point, to ...Point) (float64, bool) {
	for _, t := range to {
		if t != from {
			return math.Atan2(t.Y-from.Y, t.X-from.X), true
		}
	}
	return 0, false
}

func (t tangents) angle() float64 {
	switch {
	case t.hasIn && t.hasOut:
		// bisector of the incoming and outgoing directions
		return math.Atan2(math.Sin(t.in)+math.Sin(t.out), math.Cos(t.in)+math.Cos(t.out))
	case t.hasIn:
		return t.in
	case t.hasOut:
		return t.out
	}
	return 0
}

// Vertices returns the vertices of the path, in order.
// The first one is a StartVertex, the last one an EndVertex
// and all others are MidVertex.
// A closing segment adds a vertex on the start of its sub path.
func (p Path) Vertices() []Vertex {
	var (
		ts          []tangents
		start, curr Point
	)
	// connect links the last vertex to the new one
	connect := func(next Point, outDir, inDir float64, ok1, ok2 bool) {
		if len(ts) != 0 {
			last := &ts[len(ts)-1]
			last.out, last.hasOut = outDir, ok1
		}
		ts = append(ts, tangents{pt: next, in: inDir, hasIn: ok2})
		curr = next
	}
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			start, curr = Point(op), Point(op)
			ts = append(ts, tangents{pt: curr})
		case LineTo:
			d, ok := direction(curr, Point(op))
			connect(Point(op), d, d, ok, ok)
		case CubicTo:
			d1, ok1 := direction(curr, op[0], op[1], op[2])
			d2, ok2 := direction(op[2], op[1], op[0], curr)
			connect(op[2], d1, d2+math.Pi, ok1, ok2)
		case Close:
			if curr == start {
				continue
			}
			d, ok := direction(curr, start)
			connect(start, d, d, ok, ok)
		}
	}

	out := make([]Vertex, len(ts))
	for i, t := range ts {
		kind := MidVertex
		if i == 0 {
			kind = StartVertex
		} else if i == len(ts)-1 {
			kind = EndVertex
		}
		out[i] = Vertex{Point: t.pt, Kind: kind, Angle: t.angle()}
	}
	return out
}
