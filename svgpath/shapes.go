package svgpath

// This file implements the transformation from
// high level shapes to their path equivalent

// ArcMagic is the control point offset factor
// approximating a quarter of circle with one cubic bezier:
// 4/3 * (1-cos 45)/sin 45 = 4/3 * (sqrt(2) - 1)
const ArcMagic = 0.5522847498

// AddCircle approximates the circle of center (cx, cy) and radius r
// with 4 cubic curves, starting at (cx+r, cy) and
// turning toward +y first.
func AddCircle(b *Builder, cx, cy, r float64) {
	k := r * ArcMagic
	b.MoveTo(cx+r, cy)
	b.CurveTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	b.CurveTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	b.CurveTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	b.CurveTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	b.ClosePath()
}

// AddEllipse approximates the axis aligned ellipse of center (cx, cy)
// and radii rx, ry with 4 cubic curves, starting at (cx+rx, cy).
// Contrary to AddCircle, the first quadrant goes toward -y.
func AddEllipse(b *Builder, cx, cy, rx, ry float64) {
	kx, ky := rx*ArcMagic, ry*ArcMagic
	b.MoveTo(cx+rx, cy)
	b.CurveTo(cx+rx, cy-ky, cx+kx, cy-ry, cx, cy-ry)
	b.CurveTo(cx-kx, cy-ry, cx-rx, cy-ky, cx-rx, cy)
	b.CurveTo(cx-rx, cy+ky, cx-kx, cy+ry, cx, cy+ry)
	b.CurveTo(cx+kx, cy+ry, cx+rx, cy+ky, cx+rx, cy)
	b.ClosePath()
}

// AddPolyline adds the points stored as pairs in coords,
// closing the path if closePath is true.
// If the last pair is incomplete, the previous y coordinate is reused.
// It returns false and does nothing if coords does not hold at least one point.
func AddPolyline(b *Builder, coords []float64, closePath bool) bool {
	if len(coords) < 2 {
		return false
	}
	b.MoveTo(coords[0], coords[1])
	for i := 2; i < len(coords); i += 2 {
		x, y := coords[i], coords[i-1]
		if i+1 < len(coords) {
			y = coords[i+1]
		}
		b.LineTo(x, y)
	}
	if closePath {
		b.ClosePath()
	}
	return true
}
