package shapes

import (
	"encoding/xml"
	"image/color"
	"testing"

	"github.com/benoitkugler/svgshapes/svgpath"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingContext stores what the nodes ask for
type recordingContext struct {
	w, h float64

	states   []State
	paths    []svgpath.Path
	markers  []svgpath.Path
	borrowed []*svgpath.Builder
}

func (c *recordingContext) Viewport() (float64, float64) { return c.w, c.h }
func (c *recordingContext) DPI() (float64, float64)      { return 96, 96 }
func (c *recordingContext) FontSize() float64            { return 12 }

func (c *recordingContext) ReinheritState(state *State, dominate int) {
	c.states = append(c.states, Reinherit(State{}, *state, dominate))
}

func (c *recordingContext) RenderPath(b *svgpath.Builder) {
	// copy, since the builder may be released after the call
	c.paths = append(c.paths, append(svgpath.Path(nil), b.Path()...))
	c.borrowed = append(c.borrowed, b)
}

func (c *recordingContext) RenderMarkers(b *svgpath.Builder) {
	c.markers = append(c.markers, append(svgpath.Path(nil), b.Path()...))
}

var approx = cmpopts.EquateApprox(0, 1e-9)

func draw(t *testing.T, n *Node) *recordingContext {
	t.Helper()
	ctx := &recordingContext{w: 200, h: 100}
	n.Draw(ctx, 0)
	return ctx
}

func TestCircle(t *testing.T) {
	n := NewCircle(nil)
	n.SetAttributes(Attrs{"cx": "10", "cy": "10", "r": "5"})
	ctx := draw(t, n)

	require.Len(t, ctx.paths, 1)
	require.Len(t, ctx.states, 1)
	assert.Empty(t, ctx.markers)

	k := 5 * svgpath.ArcMagic
	expected := svgpath.Path{
		svgpath.MoveTo{X: 15, Y: 10},
		svgpath.CubicTo{{X: 15, Y: 10 + k}, {X: 10 + k, Y: 15}, {X: 10, Y: 15}},
		svgpath.CubicTo{{X: 10 - k, Y: 15}, {X: 5, Y: 10 + k}, {X: 5, Y: 10}},
		svgpath.CubicTo{{X: 5, Y: 10 - k}, {X: 10 - k, Y: 5}, {X: 10, Y: 5}},
		svgpath.CubicTo{{X: 10 + k, Y: 5}, {X: 15, Y: 10 - k}, {X: 15, Y: 10}},
		svgpath.Close{},
	}
	if diff := cmp.Diff(expected, ctx.paths[0], approx); diff != "" {
		t.Fatalf("unexpected circle path (-want +got):\n%s", diff)
	}

	// the builder is only lent to the context
	assert.True(t, ctx.borrowed[0].Released())
}

func TestCircleDegenerate(t *testing.T) {
	for _, attrs := range []Attrs{
		{"cx": "10", "cy": "10", "r": "0"},
		{"cx": "10", "cy": "10", "r": "-4"},
		{"cx": "10", "cy": "10", "r": "abc"},
		{"cx": "10", "cy": "10"},
		{},
	} {
		n := NewCircle(nil)
		n.SetAttributes(attrs)
		ctx := draw(t, n)
		assert.Empty(t, ctx.paths, attrs)
		assert.Empty(t, ctx.states, attrs)
	}
}

func TestCircleUnits(t *testing.T) {
	n := NewCircle(nil)
	n.SetAttributes(Attrs{"cx": "50%", "cy": "50%", "r": "1in"})
	b := n.Shape().(*Circle).Path(&recordingContext{w: 200, h: 100})
	require.NotNil(t, b)
	defer b.Destroy()

	assert.Equal(t, svgpath.MoveTo{X: 100 + 96, Y: 50}, b.Path()[0])
}

func TestEllipse(t *testing.T) {
	n := NewEllipse(nil)
	n.SetAttributes(Attrs{"cx": "0", "cy": "0", "rx": "4", "ry": "2"})
	ctx := draw(t, n)
	require.Len(t, ctx.paths, 1)

	kx, ky := 4*svgpath.ArcMagic, 2*svgpath.ArcMagic
	expected := svgpath.Path{
		svgpath.MoveTo{X: 4, Y: 0},
		svgpath.CubicTo{{X: 4, Y: -ky}, {X: kx, Y: -2}, {X: 0, Y: -2}},
		svgpath.CubicTo{{X: -kx, Y: -2}, {X: -4, Y: -ky}, {X: -4, Y: 0}},
		svgpath.CubicTo{{X: -4, Y: ky}, {X: -kx, Y: 2}, {X: 0, Y: 2}},
		svgpath.CubicTo{{X: kx, Y: 2}, {X: 4, Y: ky}, {X: 4, Y: 0}},
		svgpath.Close{},
	}
	if diff := cmp.Diff(expected, ctx.paths[0], approx); diff != "" {
		t.Fatalf("unexpected ellipse path (-want +got):\n%s", diff)
	}
	assert.True(t, ctx.borrowed[0].Released())
}

func TestEllipseDegenerate(t *testing.T) {
	for _, attrs := range []Attrs{
		{"rx": "0", "ry": "3"},
		{"rx": "3", "ry": "0"},
		{"rx": "3"},
		{"rx": "-1", "ry": "-1"},
	} {
		n := NewEllipse(nil)
		n.SetAttributes(attrs)
		ctx := draw(t, n)
		assert.Empty(t, ctx.paths, attrs)
	}
}

// the first curve of a circle turns toward +y,
// the one of a circular ellipse toward -y
func TestCircleEllipseDirection(t *testing.T) {
	c := NewCircle(nil)
	c.SetAttributes(Attrs{"r": "1"})
	e := NewEllipse(nil)
	e.SetAttributes(Attrs{"rx": "1", "ry": "1"})

	cp, ep := draw(t, c).paths[0], draw(t, e).paths[0]
	assert.Greater(t, cp[1].(svgpath.CubicTo)[2].Y, 0.)
	assert.Less(t, ep[1].(svgpath.CubicTo)[2].Y, 0.)
}

func TestPolygon(t *testing.T) {
	n := NewPolygon(nil)
	n.SetAttributes(Attrs{"points": "0,0 10,0 10,10"})
	ctx := draw(t, n)

	expected := svgpath.Path{
		svgpath.MoveTo{X: 0, Y: 0},
		svgpath.LineTo{X: 10, Y: 0},
		svgpath.LineTo{X: 10, Y: 10},
		svgpath.Close{},
	}
	require.Len(t, ctx.paths, 1)
	assert.Equal(t, expected, ctx.paths[0])
	assert.Equal(t, []svgpath.Path{expected}, ctx.markers)

	// the builder is retained by the node
	assert.False(t, ctx.borrowed[0].Released())
	assert.Same(t, n.Shape().(*Poly).Builder(), ctx.borrowed[0])
}

func TestPolyline(t *testing.T) {
	for _, tc := range []struct {
		points   string
		expected svgpath.Path
	}{
		{"0,0 10,0 10,10", svgpath.Path{
			svgpath.MoveTo{X: 0, Y: 0},
			svgpath.LineTo{X: 10, Y: 0},
			svgpath.LineTo{X: 10, Y: 10},
		}},
		// odd count: the last x reuses the preceding y
		{"0,0 10,5 20", svgpath.Path{
			svgpath.MoveTo{X: 0, Y: 0},
			svgpath.LineTo{X: 10, Y: 5},
			svgpath.LineTo{X: 20, Y: 5},
		}},
		{"0,0 10,0 20", svgpath.Path{
			svgpath.MoveTo{X: 0, Y: 0},
			svgpath.LineTo{X: 10, Y: 0},
			svgpath.LineTo{X: 20, Y: 0},
		}},
		{"3 4", svgpath.Path{svgpath.MoveTo{X: 3, Y: 4}}},
	} {
		n := NewPolyline(nil)
		n.SetAttributes(Attrs{"points": tc.points})
		ctx := draw(t, n)
		require.Len(t, ctx.paths, 1, tc.points)
		assert.Equal(t, tc.expected, ctx.paths[0], tc.points)
	}
}

func TestPolyInvalid(t *testing.T) {
	for _, points := range []string{"", "   ", "5", "0,0 a,b", ",1 2", "1,,2"} {
		n := NewPolygon(nil)
		n.SetAttributes(Attrs{"points": points})
		assert.Nil(t, n.Shape().(*Poly).Builder(), points)

		ctx := draw(t, n)
		assert.Empty(t, ctx.paths, points)
		assert.Empty(t, ctx.markers, points)
		assert.Empty(t, ctx.states, points)
	}
}

func TestPolyLegacyVerts(t *testing.T) {
	n := NewPolyline(nil)
	n.SetAttributes(Attrs{"verts": "1,2 3,4", "points": "100,100 200,200"})
	ctx := draw(t, n)
	require.Len(t, ctx.paths, 1)
	assert.Equal(t, svgpath.MoveTo{X: 1, Y: 2}, ctx.paths[0][0])

	// an invalid legacy list still wins
	n.SetAttributes(Attrs{"verts": "x", "points": "100,100 200,200"})
	assert.Nil(t, n.Shape().(*Poly).Builder())
}

func TestPolyReingestion(t *testing.T) {
	n := NewPolygon(nil)
	n.SetAttributes(Attrs{"points": "0,0 1,1 2,0"})
	first := n.Shape().(*Poly).Builder()
	require.NotNil(t, first)

	n.SetAttributes(Attrs{"points": "5,5 6,6"})
	second := n.Shape().(*Poly).Builder()
	require.NotNil(t, second)
	assert.True(t, first.Released())
	assert.NotSame(t, first, second)
	// replaced, not appended
	assert.Equal(t, 3, second.Len())

	// invalid text still releases the previous builder
	n.SetAttributes(Attrs{"points": "not numbers"})
	assert.True(t, second.Released())
	assert.Nil(t, n.Shape().(*Poly).Builder())

	n.SetAttributes(Attrs{"points": "0,0 1,1"})
	third := n.Shape().(*Poly).Builder()
	n.SetAttributes(Attrs{})
	assert.True(t, third.Released())
	assert.Nil(t, n.Shape().(*Poly).Builder())
}

func TestDispose(t *testing.T) {
	n := NewPolyline(nil)
	n.SetAttributes(Attrs{"points": "0,0 1,1"})
	b := n.Shape().(*Poly).Builder()

	n.Dispose()
	assert.True(t, b.Released())
	assert.True(t, n.Disposed())
	n.Dispose()

	ctx := draw(t, n)
	assert.Empty(t, ctx.paths)

	n.SetAttributes(Attrs{"points": "0,0 1,1"})
	assert.Nil(t, n.Shape().(*Poly).Builder())
}

func TestDrawStateless(t *testing.T) {
	n := NewCircle(nil)
	n.SetAttributes(Attrs{"cx": "1", "cy": "2", "r": "3"})
	ctx := &recordingContext{}
	n.Draw(ctx, 0)
	n.Draw(ctx, 0)
	require.Len(t, ctx.paths, 2)
	assert.Equal(t, ctx.paths[0], ctx.paths[1])
	assert.NotSame(t, ctx.borrowed[0], ctx.borrowed[1])
}

func TestNewByName(t *testing.T) {
	for name, kind := range map[string]Kind{
		"circle":   KindCircle,
		"ellipse":  KindEllipse,
		"polygon":  KindPolygon,
		"polyline": KindPolyline,
	} {
		n, ok := NewByName(name, nil)
		require.True(t, ok)
		assert.Equal(t, kind, n.Kind())
		assert.Equal(t, kind, n.Shape().Kind())
		assert.Equal(t, name, kind.String())
	}
	_, ok := NewByName("rect", nil)
	assert.False(t, ok)
}

func TestXMLAttrs(t *testing.T) {
	attrs := XMLAttrs{
		{Name: xml.Name{Local: "points"}, Value: "1 2 3 4"},
		{Name: xml.Name{Space: "http://example.com", Local: "r"}, Value: "5"},
	}
	v, ok := attrs.Lookup("r")
	assert.True(t, ok)
	assert.Equal(t, "5", v)
	_, ok = attrs.Lookup("cx")
	assert.False(t, ok)

	n := NewPolyline(nil)
	n.SetAttributes(attrs)
	assert.Equal(t, 2, n.Shape().(*Poly).Builder().Len())
}

func TestReinherit(t *testing.T) {
	red, blue := color.NRGBA{R: 0xff, A: 0xff}, color.NRGBA{B: 0xff, A: 0xff}

	parent := NewState()
	parent.SetFill(red)
	parent.SetStrokeWidth(3)

	local := NewState()
	local.SetFill(blue)
	local.SetLineCap(RoundCap)

	s := Reinherit(*parent, *local, 0)
	assert.Equal(t, color.Color(blue), s.Fill)
	assert.Equal(t, 3., s.StrokeWidth)
	assert.Equal(t, RoundCap, s.LineCap)

	s = Reinherit(*parent, *local, 1)
	assert.Equal(t, color.Color(red), s.Fill)
	assert.Equal(t, 3., s.StrokeWidth)
	assert.Equal(t, RoundCap, s.LineCap)

	// unset values are never inherited
	s = Reinherit(State{}, *local, 1)
	assert.Equal(t, color.Color(blue), s.Fill)
	assert.Equal(t, 1., s.StrokeWidth)
}

func TestStateGradient(t *testing.T) {
	red := color.NRGBA{R: 0xff, A: 0xff}
	grad := &svgpath.Gradient{
		Direction: svgpath.Linear{0, 0, 1, 0},
		Stops:     []svgpath.GradStop{{StopColor: red, Opacity: 1}},
	}

	parent := NewState()
	parent.SetFillGradient(grad)
	parent.SetStrokeGradient(grad)
	assert.Same(t, grad, parent.FillGradient)
	assert.Equal(t, color.Color(red), parent.Fill)
	assert.Equal(t, color.Color(red), parent.Stroke)

	// the gradient follows the fill when inherited
	s := Reinherit(*parent, *NewState(), 0)
	assert.Same(t, grad, s.FillGradient)
	assert.Same(t, grad, s.StrokeGradient)

	local := NewState()
	local.SetFill(nil)
	s = Reinherit(*parent, *local, 0)
	assert.Nil(t, s.Fill)
	assert.Nil(t, s.FillGradient)

	// a plain color replaces the gradient
	parent.SetFill(red)
	assert.Nil(t, parent.FillGradient)

	// without stops, nothing is painted
	parent.SetFillGradient(&svgpath.Gradient{Direction: svgpath.Linear{}})
	assert.Nil(t, parent.Fill)
	assert.Nil(t, parent.FillGradient)
}
