package shapes

import (
	"github.com/benoitkugler/svgshapes/svgpath"
	"github.com/benoitkugler/svgshapes/units"
)

// Ellipse is the payload of an <ellipse> element.
type Ellipse struct {
	Cx, Cy, Rx, Ry units.Length
}

func (*Ellipse) Kind() Kind { return KindEllipse }

func (e *Ellipse) setAttributes(bag Attributes) {
	*e = Ellipse{
		Cx: units.Length{Dir: units.Horizontal},
		Cy: units.Length{Dir: units.Vertical},
		Rx: units.Length{Dir: units.Horizontal},
		Ry: units.Length{Dir: units.Vertical},
	}
	if v, ok := bag.Lookup("cx"); ok {
		e.Cx = units.ParseOrZero(v, units.Horizontal)
	}
	if v, ok := bag.Lookup("cy"); ok {
		e.Cy = units.ParseOrZero(v, units.Vertical)
	}
	if v, ok := bag.Lookup("rx"); ok {
		e.Rx = units.ParseOrZero(v, units.Horizontal)
	}
	if v, ok := bag.Lookup("ry"); ok {
		e.Ry = units.ParseOrZero(v, units.Vertical)
	}
}

// Path resolves the lengths and returns a new builder holding
// the ellipse outline, or nil if one of the radii is not positive.
func (e *Ellipse) Path(ctx units.Context) *svgpath.Builder {
	rx, ry := e.Rx.Resolve(ctx), e.Ry.Resolve(ctx)
	if rx <= 0 || ry <= 0 {
		return nil
	}
	b := svgpath.NewBuilder()
	svgpath.AddEllipse(b, e.Cx.Resolve(ctx), e.Cy.Resolve(ctx), rx, ry)
	return b
}

func (e *Ellipse) draw(state *State, ctx DrawingContext, dominate int) {
	b := e.Path(ctx)
	if b == nil {
		return
	}
	defer b.Destroy()

	ctx.ReinheritState(state, dominate)
	ctx.RenderPath(b)
}

func (*Ellipse) dispose() {}
