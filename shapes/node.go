// Package shapes turns the SVG basic shapes (circle, ellipse, polygon and
// polyline) into path geometry handed to a painting backend.
//
// A Node is created for an element, fed with the element attributes
// through SetAttributes, and later drawn any number of times.
// Malformed attributes never fail: they degrade to zero lengths or
// to an empty geometry, and the shape simply renders nothing.
package shapes

import (
	"github.com/benoitkugler/svgshapes/svgpath"
	"github.com/benoitkugler/svgshapes/units"
)

// Kind identifies the shape variant of a node.
type Kind uint8

const (
	KindCircle Kind = iota
	KindEllipse
	KindPolygon
	KindPolyline
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindEllipse:
		return "ellipse"
	case KindPolygon:
		return "polygon"
	case KindPolyline:
		return "polyline"
	default:
		return "<unknown Kind>"
	}
}

// DrawingContext is the painting backend, as seen by the nodes.
type DrawingContext interface {
	units.Context

	// ReinheritState combines the node state with the current one,
	// see Reinherit.
	ReinheritState(state *State, dominate int)
	// RenderPath paints the path with the current state.
	// The builder is only borrowed for the duration of the call.
	RenderPath(b *svgpath.Builder)
	// RenderMarkers paints the markers of the current state
	// at the vertices of the path.
	RenderMarkers(b *svgpath.Builder)
}

// Parent is the container owning a node.
type Parent interface {
	State() *State
}

// Shape is the variant specific payload of a node:
// one of *Circle, *Ellipse or *Poly.
type Shape interface {
	Kind() Kind

	setAttributes(bag Attributes)
	draw(state *State, ctx DrawingContext, dominate int)
	dispose()
}

// Node is a shape element of the document tree.
type Node struct {
	kind   Kind
	parent Parent
	state  *State
	shape  Shape

	disposed bool
}

func newNode(kind Kind, parent Parent, state *State, shape Shape) *Node {
	return &Node{kind: kind, parent: parent, state: state, shape: shape}
}

// NewNode returns a node of the given kind, with a fresh state
// and default (empty) geometry.
func NewNode(kind Kind, parent Parent) *Node {
	switch kind {
	case KindCircle:
		return newNode(kind, parent, NewState(), new(Circle))
	case KindEllipse:
		return newNode(kind, parent, NewState(), new(Ellipse))
	case KindPolygon:
		return newNode(kind, parent, NewState(), &Poly{closed: true})
	case KindPolyline:
		return newNode(kind, parent, NewState(), &Poly{closed: false})
	default:
		return nil
	}
}

// NewCircle returns a <circle> node, with no geometry until SetAttributes.
func NewCircle(parent Parent) *Node { return NewNode(KindCircle, parent) }

// NewEllipse returns an <ellipse> node.
func NewEllipse(parent Parent) *Node { return NewNode(KindEllipse, parent) }

// NewPolygon returns a <polygon> node, whose path is closed.
func NewPolygon(parent Parent) *Node { return NewNode(KindPolygon, parent) }

// NewPolyline returns a <polyline> node, whose path is left open.
func NewPolyline(parent Parent) *Node { return NewNode(KindPolyline, parent) }

var constructors = map[string]func(Parent) *Node{
	"circle":   NewCircle,
	"ellipse":  NewEllipse,
	"polygon":  NewPolygon,
	"polyline": NewPolyline,
}

// NewByName returns a node for the element name, or false
// if the element is not a supported shape.
func NewByName(element string, parent Parent) (*Node, bool) {
	cons, ok := constructors[element]
	if !ok {
		return nil, false
	}
	return cons(parent), true
}

// Kind returns the shape variant of the node.
func (n *Node) Kind() Kind { return n.kind }

// Parent returns the enclosing element, which may be nil.
func (n *Node) Parent() Parent { return n.parent }

// State returns the style state owned by the node.
func (n *Node) State() *State { return n.state }

// Shape returns the variant specific geometry.
func (n *Node) Shape() Shape { return n.shape }

// Disposed returns true once Dispose has been called.
func (n *Node) Disposed() bool { return n.disposed }

// SetAttributes reads the geometry from the attribute bag,
// replacing any previous one.
func (n *Node) SetAttributes(bag Attributes) {
	if n.disposed {
		return
	}
	n.shape.setAttributes(bag)
}

// Draw renders the node into ctx. Shapes with a degenerate
// geometry draw nothing, and do not touch the context.
func (n *Node) Draw(ctx DrawingContext, dominate int) {
	if n.disposed {
		return
	}
	n.shape.draw(n.state, ctx, dominate)
}

// Dispose releases the resources held by the node.
// It is safe to call it more than once.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.shape.dispose()
	n.disposed = true
}
