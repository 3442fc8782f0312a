package svgicon

import (
	"encoding/xml"
	"image/color"
	"strings"

	"github.com/benoitkugler/svgshapes/shapes"
	"github.com/benoitkugler/svgshapes/svgpath"
	"github.com/benoitkugler/svgshapes/units"
)

// svgFunc handles a start element, and must push
// exactly one entry on the cursor group stack
type svgFunc func(c *iconCursor, se xml.StartElement) error

var drawFuncs = map[string]svgFunc{
	"svg":      svgF,
	"g":        gF,
	"circle":   shapeF,
	"ellipse":  shapeF,
	"polyline": shapeF,
	"polygon":  shapeF,
	"desc":     descF,
	"title":    titleF,
	"defs":     defsF,
	"marker":   markerF,

	"linearGradient": gradientF,
	"radialGradient": gradientF,
}

func svgF(c *iconCursor, se xml.StartElement) error {
	if c.seenSvg { // nested svg are simple groups
		return gF(c, se)
	}
	c.seenSvg = true

	var err error
	for _, attr := range se.Attr {
		switch attr.Name.Local {
		case "viewBox":
			points, ok := svgpath.ParseNumbers(attr.Value)
			if !ok || len(points) != 4 {
				return errParamMismatch
			}
			c.icon.ViewBox.X = points[0]
			c.icon.ViewBox.Y = points[1]
			c.icon.ViewBox.W = points[2]
			c.icon.ViewBox.H = points[3]
		case "width":
			c.icon.Width, err = units.Parse(attr.Value, units.Horizontal)
		case "height":
			c.icon.Height, err = units.Parse(attr.Value, units.Vertical)
		}
		if err != nil {
			return err
		}
	}
	if c.icon.ViewBox.W == 0 {
		c.icon.ViewBox.W = c.icon.Width.Resolve(c)
	}
	if c.icon.ViewBox.H == 0 {
		c.icon.ViewBox.H = c.icon.Height.Resolve(c)
	}

	root := c.icon.Root
	if err = c.readStyle(root.state, se.Attr); err != nil {
		return err
	}
	c.groups = append(c.groups, root)
	return nil
}

func gF(c *iconCursor, se xml.StartElement) error {
	parent := c.current()
	g := newGroup(parent)
	if err := c.readStyle(g.state, se.Attr); err != nil {
		return err
	}
	parent.Children = append(parent.Children, g)
	c.groups = append(c.groups, g)
	return nil
}

func shapeF(c *iconCursor, se xml.StartElement) error {
	parent := c.current()
	node, ok := shapes.NewByName(se.Name.Local, parent)
	if !ok {
		return c.handleError("Cannot process svg element " + se.Name.Local)
	}
	if err := c.readStyle(node.State(), se.Attr); err != nil {
		node.Dispose()
		return err
	}
	node.SetAttributes(shapes.XMLAttrs(se.Attr))
	parent.Children = append(parent.Children, node)
	c.groups = append(c.groups, nil) // shapes have no children
	return nil
}

func descF(c *iconCursor, _ xml.StartElement) error {
	c.inDescText = true
	c.icon.Descriptions = append(c.icon.Descriptions, "")
	c.groups = append(c.groups, nil)
	return nil
}

func titleF(c *iconCursor, _ xml.StartElement) error {
	c.inTitleText = true
	c.icon.Titles = append(c.icon.Titles, "")
	c.groups = append(c.groups, nil)
	return nil
}

// defsF starts a group which is kept out of the drawn tree
func defsF(c *iconCursor, _ xml.StartElement) error {
	g := newGroup(c.current())
	c.icon.defs = append(c.icon.defs, g)
	c.groups = append(c.groups, g)
	return nil
}

// markerF collects the shapes of a <marker> element. They are
// converted to a path when the element ends, see endMarker.
func markerF(c *iconCursor, se xml.StartElement) error {
	if c.marker != nil {
		return errNestedMarker
	}
	var id string
	for _, attr := range se.Attr {
		if attr.Name.Local == "id" {
			id = attr.Value
		}
	}
	if id == "" {
		return errZeroLengthID
	}
	c.marker, c.markerID = newGroup(c.current()), id
	c.groups = append(c.groups, c.marker)
	return nil
}

// endMarker registers the path of the marker being parsed.
// Circles and ellipses are resolved against the icon.
func (c *iconCursor) endMarker() {
	var path svgpath.Path
	for _, node := range c.marker.Shapes() {
		var b *svgpath.Builder
		switch shape := node.Shape().(type) {
		case *shapes.Circle:
			b = shape.Path(c)
		case *shapes.Ellipse:
			b = shape.Path(c)
		case *shapes.Poly:
			if pb := shape.Builder(); pb != nil {
				path = append(path, pb.Path()...)
			}
		}
		if b != nil {
			path = append(path, b.Path()...)
			b.Destroy()
		}
	}
	c.icon.markers[c.markerID] = path
	c.marker.dispose()
	c.marker, c.markerID = nil, ""
}

// default gradient geometry, also used when
// resolving user space values
var gradientDefaults = map[string]string{
	"x1": "0%", "y1": "0%", "x2": "100%", "y2": "0%",
	"cx": "50%", "cy": "50%", "r": "50%", "fr": "0%",
}

var gradientDirections = map[string]units.Direction{
	"x1": units.Horizontal, "x2": units.Horizontal, "cx": units.Horizontal, "fx": units.Horizontal,
	"y1": units.Vertical, "y2": units.Vertical, "cy": units.Vertical, "fy": units.Vertical,
	"r": units.Both, "fr": units.Both,
}

// gradientF starts a <linearGradient> or <radialGradient> element.
// Its stops are collected until the element ends, see endGradient.
func gradientF(c *iconCursor, se xml.StartElement) error {
	grad := new(svgpath.Gradient)
	coords := make(map[string]string)
	var id string
	for _, attr := range se.Attr {
		var err error
		switch k := attr.Name.Local; k {
		case "id":
			id = attr.Value
		case "gradientUnits":
			grad.Units, err = svgpath.ParseGradientUnits(strings.TrimSpace(attr.Value))
		case "spreadMethod":
			grad.Spread, err = svgpath.ParseSpreadMethod(strings.TrimSpace(attr.Value))
		default:
			if _, ok := gradientDirections[k]; ok {
				coords[k] = attr.Value
			}
		}
		if err != nil {
			if err = c.handleError(err.Error()); err != nil {
				return err
			}
		}
	}
	if id == "" {
		return errZeroLengthID
	}

	for k, v := range gradientDefaults {
		if coords[k] == "" {
			coords[k] = v
		}
	}
	// the focal point defaults to the center
	for _, k := range [2]string{"fx", "fy"} {
		if coords[k] == "" {
			coords[k] = coords["c"+k[1:]]
		}
	}

	values := make(map[string]float64, len(coords))
	for k, v := range coords {
		var err error
		if grad.Units == svgpath.ObjectBoundingBox {
			values[k], err = readFraction(v)
		} else {
			var l units.Length
			l, err = units.Parse(v, gradientDirections[k])
			values[k] = l.Resolve(c)
		}
		if err != nil {
			return err
		}
	}
	if se.Name.Local == "radialGradient" {
		grad.Direction = svgpath.Radial{values["cx"], values["cy"], values["fx"], values["fy"], values["r"], values["fr"]}
	} else {
		grad.Direction = svgpath.Linear{values["x1"], values["y1"], values["x2"], values["y2"]}
	}

	c.grad, c.gradID = grad, id
	c.groups = append(c.groups, nil)
	c.gradLevel = len(c.groups)
	return nil
}

// stopF adds a stop to the gradient being parsed.
// Offsets are clamped to [0, 1] and may not decrease.
func stopF(c *iconCursor, se xml.StartElement) error {
	stop := svgpath.GradStop{StopColor: color.NRGBA{0, 0, 0, 0xff}, Opacity: 1}
	for _, pair := range splitStyle(se.Attr) {
		k, v, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		v = strings.TrimSpace(v)
		var err error
		switch strings.TrimSpace(k) {
		case "offset":
			stop.Offset, err = readFraction(v)
		case "stop-color":
			var col color.Color
			col, err = parseSVGColor(v)
			if col == nil {
				col, stop.Opacity = color.NRGBA{}, 0
			}
			stop.StopColor = col
		case "stop-opacity":
			stop.Opacity, err = parseBasicFloat(v)
		}
		if err != nil {
			return err
		}
	}
	stop.Offset = clampUnit(stop.Offset)
	if n := len(c.grad.Stops); n > 0 && stop.Offset < c.grad.Stops[n-1].Offset {
		stop.Offset = c.grad.Stops[n-1].Offset
	}
	c.grad.Stops = append(c.grad.Stops, stop)
	c.groups = append(c.groups, nil)
	return nil
}

// endGradient registers the gradient being parsed.
func (c *iconCursor) endGradient() {
	c.icon.gradients[c.gradID] = c.grad
	c.grad, c.gradID, c.gradLevel = nil, "", 0
}

func clampUnit(f float64) float64 {
	if f < 0 {
		return 0
	} else if f > 1 {
		return 1
	}
	return f
}
