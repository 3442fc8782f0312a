package shapes

import "github.com/benoitkugler/svgshapes/svgpath"

// Poly is the payload of <polygon> (closed) and <polyline> elements.
// Unlike circles and ellipses, the path only depends on the
// attributes and is built once, at ingestion.
type Poly struct {
	closed  bool
	builder *svgpath.Builder
}

func (p *Poly) Kind() Kind {
	if p.closed {
		return KindPolygon
	}
	return KindPolyline
}

// Builder returns the retained path, or nil if the
// points are missing or invalid.
func (p *Poly) Builder() *svgpath.Builder { return p.builder }

func (p *Poly) setAttributes(bag Attributes) {
	if p.builder != nil {
		p.builder.Destroy()
		p.builder = nil
	}

	// "verts" is a legacy spelling of "points"
	text, ok := lookupFirst(bag, "verts", "points")
	if !ok {
		return
	}
	p.builder = buildPoly(text, p.closed)
}

func buildPoly(text string, closed bool) *svgpath.Builder {
	coords, ok := svgpath.ParseNumbers(text)
	if !ok {
		return nil
	}
	b := svgpath.NewBuilder()
	if !svgpath.AddPolyline(b, coords, closed) {
		b.Destroy()
		return nil
	}
	return b
}

func (p *Poly) draw(state *State, ctx DrawingContext, dominate int) {
	if p.builder == nil {
		return
	}
	ctx.ReinheritState(state, dominate)
	ctx.RenderPath(p.builder)
	ctx.RenderMarkers(p.builder)
}

func (p *Poly) dispose() {
	if p.builder != nil {
		p.builder.Destroy()
		p.builder = nil
	}
}
