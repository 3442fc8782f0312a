package svgpath

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/fixed"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestParseNumbers(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want []float64
		ok   bool
	}{
		{"", nil, true},
		{"   ", nil, true},
		{"0,0 10,0 10,10", []float64{0, 0, 10, 0, 10, 10}, true},
		{"0,0 10", []float64{0, 0, 10}, true},
		{" 1 2 \n\t3 ", []float64{1, 2, 3}, true},
		{"1,2,", []float64{1, 2}, true},
		{"1 , 2", []float64{1, 2}, true},
		{"10-5", []float64{10, -5}, true},
		{"1.5.5", []float64{1.5, 0.5}, true},
		{"1e2,-3.5E-1", []float64{100, -0.35}, true},
		{"abc", nil, false},
		{"1 2 x", nil, false},
		{",1 2", nil, false},
		{"1,,2", nil, false},
	} {
		got, ok := ParseNumbers(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		if diff := cmp.Diff(tc.want, got, approx, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("input %q: unexpected numbers (-want +got):\n%s", tc.in, diff)
		}
	}
}

func TestBuilder(t *testing.T) {
	b := NewBuilder()
	b.MoveTo(1, 2)
	b.LineTo(3, 4)
	b.CurveTo(5, 6, 7, 8, 9, 10)
	b.ClosePath()

	want := Path{MoveTo{1, 2}, LineTo{3, 4}, CubicTo{{5, 6}, {7, 8}, {9, 10}}, Close{}}
	assert.Equal(t, want, b.Path())
	assert.Equal(t, 4, b.Len())
	assert.Equal(t, "M1.000,2.000 L3.000,4.000 C5.000,6.000,7.000,8.000,9.000,10.000 Z", b.Path().String())

	assert.False(t, b.Released())
	b.Destroy()
	assert.True(t, b.Released())
	assert.Zero(t, b.Len())
	b.Destroy() // no-op
	assert.True(t, b.Released())
}

func TestAddCircle(t *testing.T) {
	b := NewBuilder()
	AddCircle(b, 0, 0, 5)
	k := 5 * ArcMagic
	want := Path{
		MoveTo{5, 0},
		CubicTo{{5, k}, {k, 5}, {0, 5}},
		CubicTo{{-k, 5}, {-5, k}, {-5, 0}},
		CubicTo{{-5, -k}, {-k, -5}, {0, -5}},
		CubicTo{{k, -5}, {5, -k}, {5, 0}},
		Close{},
	}
	if diff := cmp.Diff(want, b.Path(), approx); diff != "" {
		t.Errorf("circle (-want +got):\n%s", diff)
	}
}

func TestAddEllipse(t *testing.T) {
	b := NewBuilder()
	AddEllipse(b, 10, 20, 4, 2)
	kx, ky := 4*ArcMagic, 2*ArcMagic
	want := Path{
		MoveTo{14, 20},
		CubicTo{{14, 20 - ky}, {10 + kx, 18}, {10, 18}},
		CubicTo{{10 - kx, 18}, {6, 20 - ky}, {6, 20}},
		CubicTo{{6, 20 + ky}, {10 - kx, 22}, {10, 22}},
		CubicTo{{10 + kx, 22}, {14, 20 + ky}, {14, 20}},
		Close{},
	}
	if diff := cmp.Diff(want, b.Path(), approx); diff != "" {
		t.Errorf("ellipse (-want +got):\n%s", diff)
	}
}

func TestAddPolyline(t *testing.T) {
	b := NewBuilder()
	assert.False(t, AddPolyline(b, []float64{1}, true))
	assert.Zero(t, b.Len())

	assert.True(t, AddPolyline(b, []float64{0, 0, 10, 0, 10}, false))
	assert.Equal(t, Path{MoveTo{0, 0}, LineTo{10, 0}, LineTo{10, 0}}, b.Path())

	b = NewBuilder()
	assert.True(t, AddPolyline(b, []float64{0, 0, 10, 0, 10, 10}, true))
	assert.Equal(t, Path{MoveTo{0, 0}, LineTo{10, 0}, LineTo{10, 10}, Close{}}, b.Path())

	b = NewBuilder()
	assert.True(t, AddPolyline(b, []float64{3, 4}, true))
	assert.Equal(t, Path{MoveTo{3, 4}, Close{}}, b.Path())
}

func TestBounds(t *testing.T) {
	_, ok := Path{}.Bounds()
	assert.False(t, ok)

	b := NewBuilder()
	AddCircle(b, 10, 10, 5)
	r, ok := b.Path().Bounds()
	require.True(t, ok)
	want := Rect{Min: Point{5, 5}, Max: Point{15, 15}}
	if diff := cmp.Diff(want, r, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("circle bounds (-want +got):\n%s", diff)
	}

	// the control points lie outside of the curve extent
	b = NewBuilder()
	b.MoveTo(0, 0)
	b.CurveTo(0, 10, 10, 10, 10, 0)
	r, _ = b.Path().Bounds()
	assert.InDelta(t, 7.5, r.Max.Y, 1e-9)
	assert.InDelta(t, 10, r.W(), 1e-9)
	assert.InDelta(t, 7.5, r.H(), 1e-9)
}

func TestVertices(t *testing.T) {
	b := NewBuilder()
	AddPolyline(b, []float64{0, 0, 10, 0, 10, 10}, false)
	vs := b.Path().Vertices()
	require.Len(t, vs, 3)

	assert.Equal(t, StartVertex, vs[0].Kind)
	assert.Equal(t, MidVertex, vs[1].Kind)
	assert.Equal(t, EndVertex, vs[2].Kind)
	assert.Equal(t, Point{10, 0}, vs[1].Point)

	assert.InDelta(t, 0, vs[0].Angle, 1e-9)
	assert.InDelta(t, math.Pi/4, vs[1].Angle, 1e-9)
	assert.InDelta(t, math.Pi/2, vs[2].Angle, 1e-9)

	// closing adds a vertex back on the start point
	b = NewBuilder()
	AddPolyline(b, []float64{0, 0, 10, 0, 10, 10}, true)
	vs = b.Path().Vertices()
	require.Len(t, vs, 4)
	assert.Equal(t, Point{0, 0}, vs[3].Point)
	assert.Equal(t, EndVertex, vs[3].Kind)
	assert.InDelta(t, -3*math.Pi/4, vs[3].Angle, 1e-9)
}

type call struct {
	op string
	p  fixed.Point26_6 // end point, zero for stops
}

type recorder struct{ calls []call }

func (r *recorder) Start(a fixed.Point26_6)            { r.calls = append(r.calls, call{"start", a}) }
func (r *recorder) Line(b fixed.Point26_6)             { r.calls = append(r.calls, call{"line", b}) }
func (r *recorder) QuadBezier(b, c fixed.Point26_6)    { r.calls = append(r.calls, call{"quad", c}) }
func (r *recorder) CubeBezier(b, c, d fixed.Point26_6) { r.calls = append(r.calls, call{"cube", d}) }
func (r *recorder) Stop(closeLoop bool) {
	if closeLoop {
		r.calls = append(r.calls, call{op: "close"})
	} else {
		r.calls = append(r.calls, call{op: "stop"})
	}
}

func TestAddTo(t *testing.T) {
	b := NewBuilder()
	b.MoveTo(1, 1)
	b.LineTo(2, 1)
	b.CurveTo(2, 2, 2, 2, 1, 2)
	b.ClosePath()

	var r recorder
	b.Path().AddTo(&r)
	assert.Equal(t, []call{
		{op: "stop"},
		{"start", fixed.Point26_6{X: 64, Y: 64}},
		{"line", fixed.Point26_6{X: 128, Y: 64}},
		{"cube", fixed.Point26_6{X: 64, Y: 128}},
		{op: "close"},
		{op: "stop"},
	}, r.calls)
	assert.Equal(t, fixed.Point26_6{X: 64, Y: 128}, Point{1, 2}.Fixed())
}
