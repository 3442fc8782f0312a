// Provides parsing and rendering of SVG images made of basic shapes.
// SVG files are parsed into a tree of groups and shape nodes,
// which can then be consumed by painting drivers.
// See for example svgshapes/svgraster or svgshapes/svgpdf .
package svgicon

import (
	"encoding/xml"
	"io"
	"os"

	"github.com/benoitkugler/svgshapes/shapes"
	"github.com/benoitkugler/svgshapes/svgpath"
	"github.com/benoitkugler/svgshapes/units"
	"golang.org/x/net/html/charset"
)

// default values used when resolving lengths
const (
	DefaultDPI      = 96.
	DefaultFontSize = 12.
)

// Canvas is the painting backend of an icon.
// The style state is saved and restored around each element.
type Canvas interface {
	shapes.DrawingContext

	PushState()
	PopState()
}

// Bounds defines a bounding box, such as a viewport
// or a path extent.
type Bounds struct{ X, Y, W, H float64 }

// Element is either a *Group or a *shapes.Node.
type Element interface {
	State() *shapes.State
}

// Group is a container element (<svg> or <g>).
type Group struct {
	parent   *Group
	state    *shapes.State
	Children []Element
}

func newGroup(parent *Group) *Group {
	return &Group{parent: parent, state: shapes.NewState()}
}

func (g *Group) State() *shapes.State { return g.state }

// Parent returns the enclosing group, or nil for the root.
func (g *Group) Parent() *Group { return g.parent }

// Shapes returns the shape nodes contained in the group,
// in document order.
func (g *Group) Shapes() []*shapes.Node {
	var out []*shapes.Node
	for _, child := range g.Children {
		switch child := child.(type) {
		case *Group:
			out = append(out, child.Shapes()...)
		case *shapes.Node:
			out = append(out, child)
		}
	}
	return out
}

func (g *Group) dispose() {
	for _, child := range g.Children {
		switch child := child.(type) {
		case *Group:
			child.dispose()
		case *shapes.Node:
			child.Dispose()
		}
	}
	g.Children = nil
}

// SvgIcon holds data from parsed SVGs.
// See the `Draw` methods to use it.
type SvgIcon struct {
	ViewBox      Bounds
	Titles       []string // Title elements collect here
	Descriptions []string // Description elements collect here
	Root         *Group

	Width, Height units.Length // top level width and height attributes

	defs      []*Group // parsed, but not drawn
	markers   map[string]svgpath.Path
	gradients map[string]*svgpath.Gradient
}

// Size returns the size of the icon, as given by the top level
// width and height attributes, or by the view box.
func (s *SvgIcon) Size(ctx units.Context) (w, h float64) {
	w, h = s.ViewBox.W, s.ViewBox.H
	if s.Width.Value != 0 {
		w = s.Width.Resolve(ctx)
	}
	if s.Height.Value != 0 {
		h = s.Height.Resolve(ctx)
	}
	return w, h
}

// Draw the icon into the canvas, with each element
// drawn between PushState and PopState.
func (s *SvgIcon) Draw(c Canvas) {
	if s.Root == nil {
		return
	}
	drawElement(c, s.Root, 0)
}

func drawElement(c Canvas, e Element, dominate int) {
	c.PushState()
	defer c.PopState()

	switch e := e.(type) {
	case *Group:
		c.ReinheritState(e.state, dominate)
		for _, child := range e.Children {
			drawElement(c, child, dominate)
		}
	case *shapes.Node:
		e.Draw(c, dominate)
	}
}

// Dispose releases the shape nodes of the icon.
// The icon draws nothing afterwards.
func (s *SvgIcon) Dispose() {
	if s.Root != nil {
		s.Root.dispose()
		s.Root = nil
	}
	for _, g := range s.defs {
		g.dispose()
	}
	s.defs = nil
}

// ReadIconStream reads the Icon from the given io.Reader
// This only supports a sub-set of SVG, but
// is enough to draw many icons. errMode determines if the icon ignores, errors out, or logs a warning
// if it does not handle an element found in the icon file.
func ReadIconStream(stream io.Reader, errMode ErrorMode) (*SvgIcon, error) {
	icon := &SvgIcon{
		Root:      newGroup(nil),
		markers:   make(map[string]svgpath.Path),
		gradients: make(map[string]*svgpath.Gradient),
	}
	cursor := &iconCursor{icon: icon, errorMode: errMode, groups: []*Group{icon.Root}}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	seenTag := false
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !seenTag {
					return nil, errInvalidIcon
				}
				break
			}
			return icon, err
		}
		// Inspect the type of the XML token
		switch se := t.(type) {
		case xml.StartElement:
			seenTag = true
			err = cursor.readStartElement(se)
			if err != nil {
				return icon, err
			}
		case xml.EndElement:
			cursor.readEndElement(se)
		case xml.CharData:
			cursor.readCharData(se)
		}
	}
	return icon, nil
}

// ReadIcon reads the Icon from the named file
// This only supports a sub-set of SVG, but
// is enough to draw many icons. errMode determines if the icon ignores, errors out, or logs a warning
// if it does not handle an element found in the icon file.
func ReadIcon(iconFile string, errMode ErrorMode) (*SvgIcon, error) {
	fin, errf := os.Open(iconFile)
	if errf != nil {
		return nil, errf
	}
	defer fin.Close()
	return ReadIconStream(fin, errMode)
}
