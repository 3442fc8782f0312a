package svgpath

import "math"

// compute the bounding box of a path, as needed
// when painting with objectBoundingBox units

// Rect is an axis aligned rectangle.
type Rect struct{ Min, Max Point }

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Min: Point{math.Min(r.Min.X, o.Min.X), math.Min(r.Min.Y, o.Min.Y)},
		Max: Point{math.Max(r.Max.X, o.Max.X), math.Max(r.Max.Y, o.Max.Y)},
	}
}

// W returns the width of the rectangle.
func (r Rect) W() float64 { return r.Max.X - r.Min.X }

// H returns the height of the rectangle.
func (r Rect) H() float64 { return r.Max.Y - r.Min.Y }

// cubic polinomial
// x = At^3 + Bt^2 + Ct + D
// where A,B,C,D:
// A = p3 -3 * p2 + 3 * p1 - p0
// B = 3 * p2 - 6 * p1 +3 * p0
// C = 3 * p1 - 3 * p0
// D = p0
func bezierSpline(p0, p1, p2, p3, t float64) float64 {
	return (p3-3*p2+3*p1-p0)*t*t*t +
		(3*p2-6*p1+3*p0)*t*t +
		(3*p1-3*p0)*t +
		(p0)
}

// derivative of the cubic polinomial, as at^2 + bt + c
func cubicDerivative(p0, p1, p2, p3 float64) (a, b, c float64) {
	return 3*p3 - 9*p2 + 9*p1 - 3*p0, 6*p2 - 12*p1 + 6*p0, 3*p1 - 3*p0
}

func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		if b == 0 {
			return nil
		}
		return []float64{-c / b}
	}
	d := b*b - 4*a*c
	if d < 0 {
		return nil
	}
	if d == 0 {
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(d)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

// cubicBounds returns the extent of the curve from p0 to p3.
func cubicBounds(p0, p1, p2, p3 Point) Rect {
	ax, bx, cx := cubicDerivative(p0.X, p1.X, p2.X, p3.X)
	ay, by, cy := cubicDerivative(p0.Y, p1.Y, p2.Y, p3.Y)
	ts := append(quadraticRoots(ax, bx, cx), quadraticRoots(ay, by, cy)...)

	r := Rect{Min: p0, Max: p0}
	r = r.Union(Rect{Min: p3, Max: p3})
	for _, t := range ts {
		// filter invalid value
		if !(0 <= t && t <= 1) {
			continue
		}
		pt := Point{bezierSpline(p0.X, p1.X, p2.X, p3.X, t), bezierSpline(p0.Y, p1.Y, p2.Y, p3.Y, t)}
		r = r.Union(Rect{Min: pt, Max: pt})
	}
	return r
}

// Bounds returns the exact extent of the path.
// ok is false for a path without points.
func (p Path) Bounds() (r Rect, ok bool) {
	var current Point
	extend := func(o Rect) {
		if !ok {
			r, ok = o, true
			return
		}
		r = r.Union(o)
	}
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			current = Point(op)
			extend(Rect{Min: current, Max: current})
		case LineTo:
			current = Point(op)
			extend(Rect{Min: current, Max: current})
		case CubicTo:
			extend(cubicBounds(current, op[0], op[1], op[2]))
			current = op[2]
		}
	}
	return r, ok
}

// Flatten approximates the path by a polyline, each cubic curve
// being split in steps segments. Sub paths are concatenated.
func (p Path) Flatten(steps int) []Point {
	var (
		out            []Point
		start, current Point
	)
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			start, current = Point(op), Point(op)
			out = append(out, current)
		case LineTo:
			current = Point(op)
			out = append(out, current)
		case CubicTo:
			for i := 1; i <= steps; i++ {
				t := float64(i) / float64(steps)
				out = append(out, Point{
					bezierSpline(current.X, op[0].X, op[1].X, op[2].X, t),
					bezierSpline(current.Y, op[0].Y, op[1].Y, op[2].Y, t),
				})
			}
			current = op[2]
		case Close:
			current = start
		}
	}
	return out
}
