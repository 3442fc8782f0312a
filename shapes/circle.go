package shapes

import (
	"github.com/benoitkugler/svgshapes/svgpath"
	"github.com/benoitkugler/svgshapes/units"
)

// Circle is the payload of a <circle> element.
// The path is computed at each draw, since lengths
// depend on the drawing context.
type Circle struct {
	Cx, Cy, R units.Length
}

func (*Circle) Kind() Kind { return KindCircle }

func (c *Circle) setAttributes(bag Attributes) {
	*c = Circle{
		Cx: units.Length{Dir: units.Horizontal},
		Cy: units.Length{Dir: units.Vertical},
		R:  units.Length{Dir: units.Both},
	}
	if v, ok := bag.Lookup("cx"); ok {
		c.Cx = units.ParseOrZero(v, units.Horizontal)
	}
	if v, ok := bag.Lookup("cy"); ok {
		c.Cy = units.ParseOrZero(v, units.Vertical)
	}
	if v, ok := bag.Lookup("r"); ok {
		c.R = units.ParseOrZero(v, units.Both)
	}
}

// Path resolves the lengths and returns a new builder holding
// the circle outline, or nil for a non positive radius.
// The caller owns the returned builder.
func (c *Circle) Path(ctx units.Context) *svgpath.Builder {
	r := c.R.Resolve(ctx)
	if r <= 0 {
		return nil
	}
	b := svgpath.NewBuilder()
	svgpath.AddCircle(b, c.Cx.Resolve(ctx), c.Cy.Resolve(ctx), r)
	return b
}

func (c *Circle) draw(state *State, ctx DrawingContext, dominate int) {
	b := c.Path(ctx)
	if b == nil {
		return
	}
	defer b.Destroy()

	ctx.ReinheritState(state, dominate)
	ctx.RenderPath(b)
}

func (*Circle) dispose() {}
