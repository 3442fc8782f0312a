// Implements a PDF backend to render SVG images,
// by wrapping github.com/jung-kurt/gofpdf.
package svgpdf

import (
	"errors"
	"image/color"
	"io"
	"math"

	"github.com/benoitkugler/svgshapes/shapes"
	"github.com/benoitkugler/svgshapes/svgicon"
	"github.com/benoitkugler/svgshapes/svgpath"
	"github.com/jung-kurt/gofpdf"
	"github.com/srwiley/rasterx"
)

var _ svgicon.Canvas = (*Renderer)(nil) // assert interface conformance

var errEmptyIcon = errors.New("icon has an empty size")

// Options configures the PDF output.
type Options struct {
	DPI       float64 // zero means svgicon.DefaultDPI
	FontSize  float64 // zero means svgicon.DefaultFontSize
	Width     float64 // width of the page, in pixels, zero to use the icon size
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

	pdf       *gofpdf.Fpdf
	transform rasterx.Matrix2D // user space to page space
	scale     float64

	stack []shapes.State

	extent    svgpath.Rect
	hasExtent bool
}

// NewRenderer return a renderer which will write the content
// of viewBox to the given `pdf`, in the rectangle (0, 0, width, height)
// of the current page.
func NewRenderer(pdf *gofpdf.Fpdf, viewBox svgicon.Bounds, width, height float64, opts Options) *Renderer {
	sx, sy := 1., 1.
	if viewBox.W > 0 && viewBox.H > 0 {
		sx, sy = width/viewBox.W, height/viewBox.H
	}
	return &Renderer{
		resolver:  opts.resolver(viewBox),
		pdf:       pdf,
		transform: rasterx.Identity.Scale(sx, sy).Translate(-viewBox.X, -viewBox.Y),
		scale:     math.Sqrt(sx * sy),
		stack:     []shapes.State{*shapes.NewState()},
	}
}

// RenderSVGIconToPDF writes a one page document, with the page
// size fitted to the icon.
func RenderSVGIconToPDF(icon io.Reader, out io.Writer, opts Options) error {
	parsedIcon, err := svgicon.ReadIconStream(icon, opts.ErrorMode)
	if err != nil {
		return err
	}
	defer parsedIcon.Dispose()

	res := opts.resolver(parsedIcon.ViewBox)
	w, h := parsedIcon.Size(res)
	if opts.Width > 0 && w > 0 {
		w, h = opts.Width, h*opts.Width/w
	}
	if w <= 0 || h <= 0 {
		return errEmptyIcon
	}
	// pixels to points
	ptPerPx := 72 / res.dpi
	w, h = w*ptPerPx, h*ptPerPx

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	renderer := NewRenderer(pdf, parsedIcon.ViewBox, w, h, opts)
	parsedIcon.Draw(renderer)
	return pdf.Output(out)
}

// Extent returns the union of the bounding boxes of the
// rendered paths, in user space.
func (rd *Renderer) Extent() (svgpath.Rect, bool) { return rd.extent, rd.hasExtent }

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

// implements the path commands, mapping
// the points with m
type pather struct {
	pdf *gofpdf.Fpdf
	m   rasterx.Matrix2D
}

func (p pather) addPath(path svgpath.Path) {
	for _, op := range path {
		switch op := op.(type) {
		case svgpath.MoveTo:
			p.pdf.MoveTo(p.m.Transform(op.X, op.Y))
		case svgpath.LineTo:
			p.pdf.LineTo(p.m.Transform(op.X, op.Y))
		case svgpath.CubicTo:
			cx0, cy0 := p.m.Transform(op[0].X, op[0].Y)
			cx1, cy1 := p.m.Transform(op[1].X, op[1].Y)
			x, y := p.m.Transform(op[2].X, op[2].Y)
			p.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
		case svgpath.Close:
			p.pdf.ClosePath()
		}
	}
}

func toRGB(c color.Color) (r, g, b int, alpha float64) {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return int(nc.R), int(nc.G), int(nc.B), float64(nc.A) / 255.
}

// setFillColor returns false for fully transparent colors
func (rd *Renderer) setFillColor(c color.Color, opacity float64) bool {
	r, g, b, alpha := toRGB(c)
	rd.pdf.SetFillColor(r, g, b)
	opacity *= alpha
	rd.pdf.SetAlpha(opacity, "Normal")
	return opacity > 0
}

func (rd *Renderer) setStrokeColor(c color.Color, opacity float64) bool {
	r, g, b, alpha := toRGB(c)
	rd.pdf.SetDrawColor(r, g, b)
	opacity *= alpha
	rd.pdf.SetAlpha(opacity, "Normal")
	return opacity > 0
}

// number of segments used to flatten curves into clipping polygons
const flattenSteps = 16

// fillGradient paints the path with grad, clipped to its outline.
// gofpdf gradients blend two colors: the first and last stops are used,
// with the pad spread method.
func (rd *Renderer) fillGradient(path svgpath.Path, grad *svgpath.Gradient, opacity float64) {
	bounds, ok := path.Bounds()
	if !ok || bounds.W() == 0 || bounds.H() == 0 || len(grad.Stops) == 0 {
		return
	}
	x0, y0 := rd.transform.Transform(bounds.Min.X, bounds.Min.Y)
	x1, y1 := rd.transform.Transform(bounds.Max.X, bounds.Max.Y)
	w, h := x1-x0, y1-y0
	// gradient vectors are relative to the painted rectangle,
	// with the origin at its lower left corner
	rel := func(x, y float64) (float64, float64) {
		x, y = rd.transform.Transform(x, y)
		return (x - x0) / w, 1 - (y-y0)/h
	}

	first, last := grad.Stops[0], grad.Stops[len(grad.Stops)-1]
	r1, g1, b1, _ := toRGB(first.StopColor)
	r2, g2, b2, _ := toRGB(last.StopColor)

	flat := path.Flatten(flattenSteps)
	polygon := make([]gofpdf.PointType, len(flat))
	for i, p := range flat {
		polygon[i].X, polygon[i].Y = rd.transform.Transform(p.X, p.Y)
	}

	rd.pdf.SetAlpha(opacity, "Normal")
	rd.pdf.ClipPolygon(polygon, false)
	switch dir := grad.UserSpace(bounds).(type) {
	case svgpath.Linear:
		ax, ay := rel(dir[0], dir[1])
		bx, by := rel(dir[2], dir[3])
		rd.pdf.LinearGradient(x0, y0, w, h, r1, g1, b1, r2, g2, b2, ax, ay, bx, by)
	case svgpath.Radial:
		fx, fy := rel(dir[2], dir[3])
		cx, cy := rel(dir[0], dir[1])
		rd.pdf.RadialGradient(x0, y0, w, h, r1, g1, b1, r2, g2, b2, fx, fy, cx, cy, dir[4]*rd.scale/math.Sqrt(w*h))
	}
	rd.pdf.ClipEnd()
}

var (
	joinStyles = [...]string{
		shapes.Arc:       "round",
		shapes.Round:     "round",
		shapes.Bevel:     "bevel",
		shapes.Miter:     "miter",
		shapes.MiterClip: "miter",
		shapes.ArcClip:   "round",
	}

	capStyles = [...]string{
		shapes.ButtCap:   "butt",
		shapes.SquareCap: "square",
		shapes.RoundCap:  "round",
	}
)

// RenderPath fills then strokes the path with the current state.
func (rd *Renderer) RenderPath(b *svgpath.Builder) {
	st := rd.current()
	path := b.Path()
	p := pather{pdf: rd.pdf, m: rd.transform}

	if r, ok := path.Bounds(); ok {
		if rd.hasExtent {
			rd.extent = rd.extent.Union(r)
		} else {
			rd.extent, rd.hasExtent = r, true
		}
	}

	// fill and stroke may have different opacities,
	// so they are painted separately.
	// Gradient strokes use the fallback color.
	if st.FillGradient != nil {
		rd.fillGradient(path, st.FillGradient, st.FillOpacity)
	} else if st.Fill != nil && rd.setFillColor(st.Fill, st.FillOpacity) {
		p.addPath(path)
		if st.FillRule == shapes.EvenOdd {
			rd.pdf.DrawPath("F*")
		} else {
			rd.pdf.DrawPath("F")
		}
	}

	if st.Stroke != nil && st.StrokeWidth > 0 && rd.setStrokeColor(st.Stroke, st.StrokeOpacity) {
		rd.pdf.SetLineWidth(st.StrokeWidth * rd.scale)
		rd.pdf.SetLineJoinStyle(joinStyles[st.LineJoin])
		rd.pdf.SetLineCapStyle(capStyles[st.LineCap])
		p.addPath(path)
		rd.pdf.DrawPath("D")
	}
}

// RenderMarkers fills the markers of the current state on the
// vertices of the path, with the same conventions as the
// raster backend.
func (rd *Renderer) RenderMarkers(b *svgpath.Builder) {
	st := rd.current()
	if !st.HasMarkers() {
		return
	}
	paint, opacity := st.Stroke, st.StrokeOpacity
	if paint == nil {
		paint, opacity = st.Fill, st.FillOpacity
	}
	if paint == nil || !rd.setFillColor(paint, opacity) {
		return
	}

	for _, v := range b.Path().Vertices() {
		marker := st.Marker(v.Kind)
		if len(marker) == 0 {
			continue
		}
		m := rd.transform.Translate(v.X, v.Y).Rotate(v.Angle).Scale(st.StrokeWidth, st.StrokeWidth)
		pather{pdf: rd.pdf, m: m}.addPath(marker)
		rd.pdf.DrawPath("F")
	}
}
