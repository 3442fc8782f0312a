// Implements a raster backend to render SVG images,
// by wrapping rasterx.
package svgraster

import (
	"errors"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/benoitkugler/svgshapes/shapes"
	"github.com/benoitkugler/svgshapes/svgicon"
	"github.com/benoitkugler/svgshapes/svgpath"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

var _ svgicon.Canvas = (*Renderer)(nil) // assert interface conformance

var errEmptyIcon = errors.New("icon has an empty size")

const miterLimit = 4

// Options configures the rasterization.
type Options struct {
	DPI       float64 // zero means svgicon.DefaultDPI
	FontSize  float64 // zero means svgicon.DefaultFontSize
	Width     int     // width of the image, zero to use the icon size
	ErrorMode svgicon.ErrorMode
}

func (opts Options) resolver(viewBox svgicon.Bounds) resolver {
	r := resolver{w: viewBox.W, h: viewBox.H, dpi: opts.DPI, fontSize: opts.FontSize}
	if r.dpi <= 0 {
		r.dpi = svgicon.DefaultDPI
	}
	if r.fontSize <= 0 {
		r.fontSize = svgicon.DefaultFontSize
	}
	return r
}

// resolver provides the values needed to resolve lengths
type resolver struct {
	w, h     float64
	dpi      float64
	fontSize float64
}

func (r resolver) Viewport() (float64, float64) { return r.w, r.h }
func (r resolver) DPI() (float64, float64)      { return r.dpi, r.dpi }
func (r resolver) FontSize() float64            { return r.fontSize }

type Renderer struct {
	resolver

	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance

	transform rasterx.Matrix2D // user space to image space
	scale     float64          // mean scaling factor of transform

	stack []shapes.State
}

// NewRenderer returns a renderer drawing the content of viewBox
// into a width x height image, painted by scanner.
func NewRenderer(width, height int, scanner rasterx.Scanner, viewBox svgicon.Bounds, opts Options) *Renderer {
	sx, sy := 1., 1.
	if viewBox.W > 0 && viewBox.H > 0 {
		sx, sy = float64(width)/viewBox.W, float64(height)/viewBox.H
	}
	return &Renderer{
		resolver:  opts.resolver(viewBox),
		dasher:    rasterx.NewDasher(width, height, scanner),
		filler:    rasterx.NewFiller(width, height, scanner),
		transform: rasterx.Identity.Scale(sx, sy).Translate(-viewBox.X, -viewBox.Y),
		scale:     math.Sqrt(sx * sy),
		stack:     []shapes.State{*shapes.NewState()},
	}
}

// RasterSVGIconToImage uses a ScannerGV instance to renderer the
// icon into an image and returns it
func RasterSVGIconToImage(icon io.Reader, opts Options) (*image.RGBA, error) {
	parsedIcon, err := svgicon.ReadIconStream(icon, opts.ErrorMode)
	if err != nil {
		return nil, err
	}
	defer parsedIcon.Dispose()

	fw, fh := parsedIcon.Size(opts.resolver(parsedIcon.ViewBox))
	if opts.Width > 0 && fw > 0 {
		fw, fh = float64(opts.Width), fh*float64(opts.Width)/fw
	}
	w, h := int(math.Ceil(fw)), int(math.Ceil(fh))
	if w <= 0 || h <= 0 {
		return nil, errEmptyIcon
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	renderer := NewRenderer(w, h, scanner, parsedIcon.ViewBox, opts)
	parsedIcon.Draw(renderer)
	return img, nil
}

func (rd *Renderer) current() *shapes.State { return &rd.stack[len(rd.stack)-1] }

func (rd *Renderer) PushState() { rd.stack = append(rd.stack, *rd.current()) }

func (rd *Renderer) PopState() {
	if len(rd.stack) > 1 {
		rd.stack = rd.stack[:len(rd.stack)-1]
	}
}

func (rd *Renderer) ReinheritState(state *shapes.State, dominate int) {
	top := rd.current()
	*top = shapes.Reinherit(*top, *state, dominate)
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		shapes.Round:     rasterx.Round,
		shapes.Bevel:     rasterx.Bevel,
		shapes.Miter:     rasterx.Miter,
		shapes.MiterClip: rasterx.MiterClip,
		shapes.Arc:       rasterx.Arc,
		shapes.ArcClip:   rasterx.ArcClip,
	}

	capToFunc = [...]rasterx.CapFunc{
		shapes.ButtCap:   rasterx.ButtCap,
		shapes.SquareCap: rasterx.SquareCap,
		shapes.RoundCap:  rasterx.RoundCap,
	}
)

// RenderPath fills then strokes the path with the current state.
func (rd *Renderer) RenderPath(b *svgpath.Builder) {
	st := rd.current()
	path := b.Path()

	if st.Fill != nil { // nil color disable filling
		if fill := rd.paint(st.Fill, st.FillGradient, st.FillOpacity, path); fill != nil {
			rd.filler.Clear()
			rd.filler.SetWinding(st.FillRule == shapes.NonZero)
			path.AddTo(&rasterx.MatrixAdder{Adder: rd.filler, M: rd.transform})
			rd.filler.SetColor(fill)
			rd.filler.Draw()
			rd.filler.SetWinding(true) // default is true
		}
	}

	if st.Stroke != nil && st.StrokeWidth > 0 { // nil color disable lining
		stroke := rd.paint(st.Stroke, st.StrokeGradient, st.StrokeOpacity, path)
		if stroke == nil {
			return
		}
		rd.dasher.Clear()
		lineCap := capToFunc[st.LineCap]
		rd.dasher.SetStroke(
			fixed.Int26_6(st.StrokeWidth*rd.scale*64), fixed.Int26_6(miterLimit*64),
			lineCap, lineCap, rasterx.RoundGap, joinToJoin[st.LineJoin], nil, 0,
		)
		path.AddTo(&rasterx.MatrixAdder{Adder: rd.dasher, M: rd.transform})
		rd.dasher.SetColor(stroke)
		rd.dasher.Draw()
	}
}

// paint returns the color or the color function to use for
// the given paint, or nil if nothing should be painted.
func (rd *Renderer) paint(col color.Color, grad *svgpath.Gradient, opacity float64, path svgpath.Path) interface{} {
	if grad == nil {
		return rasterx.ApplyOpacity(col, opacity)
	}
	rg, ok := rd.toRasterxGradient(grad, path)
	if !ok {
		return nil
	}
	return rg.GetColorFunction(opacity)
}

// toRasterxGradient expresses grad in image space. It returns false
// for object bounding box units on a path with an empty extent.
func (rd *Renderer) toRasterxGradient(grad *svgpath.Gradient, path svgpath.Path) (rasterx.Gradient, bool) {
	stops := make([]rasterx.GradStop, len(grad.Stops))
	for i, stop := range grad.Stops {
		stops[i] = rasterx.GradStop(stop)
	}
	out := rasterx.Gradient{
		Stops:    stops,
		Matrix:   rasterx.Identity,
		Spread:   rasterx.SpreadMethod(grad.Spread),
		IsRadial: grad.IsRadial(),
	}

	var points [5]float64
	switch grad.Units {
	case svgpath.ObjectBoundingBox:
		bounds, ok := path.Bounds()
		if !ok || bounds.W() == 0 || bounds.H() == 0 {
			return out, false
		}
		// the transform is axis aligned
		x0, y0 := rd.transform.Transform(bounds.Min.X, bounds.Min.Y)
		x1, y1 := rd.transform.Transform(bounds.Max.X, bounds.Max.Y)
		out.Units = rasterx.ObjectBoundingBox
		out.Bounds.X, out.Bounds.Y, out.Bounds.W, out.Bounds.H = x0, y0, x1-x0, y1-y0
		switch dir := grad.Direction.(type) {
		case svgpath.Linear:
			points[0], points[1], points[2], points[3] = dir[0], dir[1], dir[2], dir[3]
		case svgpath.Radial:
			points[0], points[1], points[2], points[3], points[4] = dir[0], dir[1], dir[2], dir[3], dir[4] // fr is ignored
		}
	default:
		out.Units = rasterx.UserSpaceOnUse
		out.Bounds.W, out.Bounds.H = 1, 1
		switch dir := grad.Direction.(type) {
		case svgpath.Linear:
			points[0], points[1] = rd.transform.Transform(dir[0], dir[1])
			points[2], points[3] = rd.transform.Transform(dir[2], dir[3])
		case svgpath.Radial:
			points[0], points[1] = rd.transform.Transform(dir[0], dir[1])
			points[2], points[3] = rd.transform.Transform(dir[2], dir[3])
			points[4] = dir[4] * rd.scale
		}
	}
	out.Points = points
	return out, true
}

// RenderMarkers fills the markers of the current state on the
// vertices of the path, scaled by the stroke width and oriented
// along the path. Markers use the stroke paint, or the fill one
// for paths without stroke.
func (rd *Renderer) RenderMarkers(b *svgpath.Builder) {
	st := rd.current()
	if !st.HasMarkers() {
		return
	}
	paint, opacity := st.Stroke, st.StrokeOpacity
	if paint == nil {
		paint, opacity = st.Fill, st.FillOpacity
	}
	if paint == nil {
		return
	}

	for _, v := range b.Path().Vertices() {
		marker := st.Marker(v.Kind)
		if len(marker) == 0 {
			continue
		}
		m := rd.transform.Translate(v.X, v.Y).Rotate(v.Angle).Scale(st.StrokeWidth, st.StrokeWidth)
		rd.filler.Clear()
		marker.AddTo(&rasterx.MatrixAdder{Adder: rd.filler, M: m})
		rd.filler.SetColor(rasterx.ApplyOpacity(paint, opacity))
		rd.filler.Draw()
	}
}
