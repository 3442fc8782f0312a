package svgicon

import (
	"encoding/xml"
	"errors"
	"fmt"
	"image/color"
	"log"
	"strconv"
	"strings"

	"github.com/benoitkugler/svgshapes/shapes"
	"github.com/benoitkugler/svgshapes/svgpath"
	"github.com/benoitkugler/svgshapes/units"
	parse "github.com/tdewolff/parse/v2/strconv"
	"golang.org/x/image/colornames"
)

// ErrorMode is the for setting how the parser reacts to unparsed elements
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unparsed SVG elements
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode outputs a warning when an unparsed SVG element is found
	WarnErrorMode
	// StrictErrorMode causes an error when an unparsed SVG element is found
	StrictErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case IgnoreErrorMode:
		return "ignore"
	case WarnErrorMode:
		return "warn"
	case StrictErrorMode:
		return "strict"
	default:
		return "<unknown ErrorMode>"
	}
}

// ParseErrorMode is the inverse of ErrorMode.String.
func ParseErrorMode(s string) (ErrorMode, error) {
	for _, m := range [...]ErrorMode{IgnoreErrorMode, WarnErrorMode, StrictErrorMode} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("invalid error mode %q", s)
}

var (
	errParamMismatch = errors.New("param mismatch")
	errInvalidIcon   = errors.New("invalid svg xml icon")
	errZeroLengthID  = errors.New("zero length id")
	errNestedMarker  = errors.New("nested marker elements are not supported")
)

// iconCursor is used while parsing SVG files
type iconCursor struct {
	icon      *SvgIcon
	errorMode ErrorMode

	// one entry per opened element, nil for
	// the elements which may not have children
	groups []*Group
	// > 0 inside an unsupported element
	skipDepth int

	seenSvg                 bool
	inTitleText, inDescText bool

	marker   *Group // non nil inside a <marker> element
	markerID string

	grad      *svgpath.Gradient // non nil inside a gradient element
	gradID    string
	gradLevel int // length of groups inside the gradient element
}

func (c *iconCursor) current() *Group { return c.groups[len(c.groups)-1] }

// the cursor resolves lengths found while parsing
// (top level size, stroke width, markers)

func (c *iconCursor) Viewport() (float64, float64) { return c.icon.ViewBox.W, c.icon.ViewBox.H }
func (c *iconCursor) DPI() (float64, float64)      { return DefaultDPI, DefaultDPI }
func (c *iconCursor) FontSize() float64            { return DefaultFontSize }

func (c *iconCursor) handleError(errStr string) error {
	if c.errorMode == StrictErrorMode {
		return errors.New(errStr)
	} else if c.errorMode == WarnErrorMode {
		log.Println(errStr)
	}
	return nil
}

func (c *iconCursor) readStartElement(se xml.StartElement) error {
	if c.skipDepth > 0 {
		c.skipDepth++
		return nil
	}
	if c.grad != nil && len(c.groups) == c.gradLevel && se.Name.Local == "stop" {
		return stopF(c, se)
	}
	if c.current() == nil { // children of shapes, titles, etc...
		c.skipDepth = 1
		return nil
	}
	df, ok := drawFuncs[se.Name.Local]
	if !ok {
		c.skipDepth = 1
		return c.handleError("Cannot process svg element " + se.Name.Local)
	}
	return df(c, se)
}

func (c *iconCursor) readEndElement(se xml.EndElement) {
	if c.skipDepth > 0 {
		c.skipDepth--
		return
	}
	switch se.Name.Local {
	case "title":
		c.inTitleText = false
	case "desc":
		c.inDescText = false
	}
	top := c.current()
	c.groups = c.groups[:len(c.groups)-1]
	if top != nil && top == c.marker {
		c.endMarker()
	}
	if c.grad != nil && len(c.groups) < c.gradLevel {
		c.endGradient()
	}
}

func (c *iconCursor) readCharData(se xml.CharData) {
	if c.skipDepth > 0 {
		return
	}
	if c.inTitleText {
		c.icon.Titles[len(c.icon.Titles)-1] += string(se)
	}
	if c.inDescText {
		c.icon.Descriptions[len(c.icon.Descriptions)-1] += string(se)
	}
}

// readStyle parses the presentation attributes and the content
// of the style attribute into state.
func (c *iconCursor) readStyle(state *shapes.State, attrs []xml.Attr) error {
	for _, pair := range splitStyle(attrs) {
		k, v, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		k = strings.TrimSpace(strings.ToLower(k))
		v = strings.TrimSpace(v)
		if err := c.readStyleAttr(state, k, v); err != nil {
			return err
		}
	}
	return nil
}

// splitStyle returns the attributes as "key:value" pairs,
// with the content of the style attribute expanded.
func splitStyle(attrs []xml.Attr) []string {
	var pairs []string
	for _, attr := range attrs {
		switch strings.ToLower(attr.Name.Local) {
		case "style":
			pairs = append(pairs, strings.Split(attr.Value, ";")...)
		default:
			pairs = append(pairs, attr.Name.Local+":"+attr.Value)
		}
	}
	return pairs
}

func (c *iconCursor) readStyleAttr(state *shapes.State, k, v string) error {
	switch k {
	case "fill":
		col, grad, err := c.readPaint(v)
		if err != nil {
			return err
		}
		if grad != nil {
			state.SetFillGradient(grad)
		} else {
			state.SetFill(col)
		}
	case "stroke":
		col, grad, err := c.readPaint(v)
		if err != nil {
			return err
		}
		if grad != nil {
			state.SetStrokeGradient(grad)
		} else {
			state.SetStroke(col)
		}
	case "fill-rule":
		switch v {
		case "nonzero":
			state.SetFillRule(shapes.NonZero)
		case "evenodd":
			state.SetFillRule(shapes.EvenOdd)
		}
	case "stroke-linecap":
		switch v {
		case "butt":
			state.SetLineCap(shapes.ButtCap)
		case "round":
			state.SetLineCap(shapes.RoundCap)
		case "square":
			state.SetLineCap(shapes.SquareCap)
		}
	case "stroke-linejoin":
		switch v {
		case "miter":
			state.SetLineJoin(shapes.Miter)
		case "miter-clip":
			state.SetLineJoin(shapes.MiterClip)
		case "arc-clip":
			state.SetLineJoin(shapes.ArcClip)
		case "round":
			state.SetLineJoin(shapes.Round)
		case "arc":
			state.SetLineJoin(shapes.Arc)
		case "bevel":
			state.SetLineJoin(shapes.Bevel)
		}
	case "stroke-width":
		width, err := units.Parse(v, units.Both)
		if err != nil {
			return err
		}
		state.SetStrokeWidth(width.Resolve(c))
	case "opacity", "stroke-opacity", "fill-opacity":
		op, err := parseBasicFloat(v)
		if err != nil {
			return err
		}
		if k != "stroke-opacity" {
			state.SetFillOpacity(state.FillOpacity * op)
		}
		if k != "fill-opacity" {
			state.SetStrokeOpacity(state.StrokeOpacity * op)
		}
	case "marker":
		m, err := c.readMarkerURL(v)
		if err != nil {
			return err
		}
		state.SetMarkers(m, m, m)
	case "marker-start":
		m, err := c.readMarkerURL(v)
		if err != nil {
			return err
		}
		state.SetMarkers(m, state.MarkerMid, state.MarkerEnd)
	case "marker-mid":
		m, err := c.readMarkerURL(v)
		if err != nil {
			return err
		}
		state.SetMarkers(state.MarkerStart, m, state.MarkerEnd)
	case "marker-end":
		m, err := c.readMarkerURL(v)
		if err != nil {
			return err
		}
		state.SetMarkers(state.MarkerStart, state.MarkerMid, m)
	}
	return nil
}

// readMarkerURL resolves url(#id) against the markers already parsed.
// "none" returns a nil path.
func (c *iconCursor) readMarkerURL(v string) (svgpath.Path, error) {
	if v == "none" {
		return nil, nil
	}
	id := strings.TrimPrefix(v, "url(")
	if id == v || !strings.HasSuffix(id, ")") {
		return nil, errParamMismatch
	}
	id = strings.TrimSpace(strings.TrimSuffix(id, ")"))
	if !strings.HasPrefix(id, "#") {
		return nil, errors.New("only the ID CSS selector is supported")
	}
	path, ok := c.icon.markers[id[1:]]
	if !ok {
		return nil, fmt.Errorf("marker %s not found in previous definitions", id)
	}
	return path, nil
}

// readPaint parses a fill or stroke value: a color, or a gradient
// reference with an optional fallback color. Gradients must be defined
// before use; a missing one without fallback disables painting.
func (c *iconCursor) readPaint(v string) (color.Color, *svgpath.Gradient, error) {
	if !strings.HasPrefix(v, "url(") {
		col, err := parseSVGColor(v)
		return col, nil, err
	}
	end := strings.IndexByte(v, ')')
	if end < 0 {
		return nil, nil, errParamMismatch
	}
	id := strings.TrimSpace(v[len("url("):end])
	if strings.HasPrefix(id, "#") {
		if grad, ok := c.icon.gradients[id[1:]]; ok {
			return nil, grad, nil
		}
	}
	if fallback := strings.TrimSpace(v[end+1:]); fallback != "" {
		col, err := parseSVGColor(fallback)
		return col, nil, err
	}
	return nil, nil, c.handleError("paint server " + id + " not found in previous definitions")
}

// readFraction accepts a number or a percentage
func readFraction(v string) (float64, error) {
	v = strings.TrimSpace(v)
	d := 1.0
	if strings.HasSuffix(v, "%") {
		d = 100
		v = strings.TrimSuffix(v, "%")
	}
	f, err := parseBasicFloat(v)
	return f / d, err
}

// parseBasicFloat accepts a number without unit
func parseBasicFloat(s string) (float64, error) {
	f, n := parse.ParseFloat([]byte(s))
	if n == 0 || n != len(s) {
		return 0, errParamMismatch
	}
	return f, nil
}

// parseSVGColor parses an SVG color string in all forms
// including all SVG1.1 names, obtained from the colornames package.
// "none" returns a nil color.
func parseSVGColor(colorStr string) (color.Color, error) {
	v := strings.ToLower(colorStr)
	switch v {
	case "none":
		// nil signals that the function (fill or stroke) is off;
		// not the same as black
		return nil, nil
	case "":
		return nil, errParamMismatch
	}
	if cn, ok := colornames.Map[v]; ok {
		return cn, nil
	}
	cStr := strings.TrimPrefix(v, "rgb(")
	if cStr != v {
		cStr = strings.TrimSuffix(cStr, ")")
		vals := strings.Split(cStr, ",")
		if len(vals) != 3 {
			return nil, errParamMismatch
		}
		var cvals [3]uint8
		var err error
		for i := range cvals {
			cvals[i], err = parseColorValue(vals[i])
			if err != nil {
				return nil, err
			}
		}
		return color.NRGBA{cvals[0], cvals[1], cvals[2], 0xFF}, nil
	}
	if v[0] == '#' {
		r, g, b, err := parseSVGColorNum(v)
		if err != nil {
			return nil, err
		}
		return color.NRGBA{r, g, b, 0xFF}, nil
	}
	return nil, errParamMismatch
}

// parseSVGColorNum reads the SVG color string e.g. #FBD9BD or #FBD
func parseSVGColorNum(colorStr string) (r, g, b uint8, err error) {
	colorStr = strings.TrimPrefix(colorStr, "#")
	switch len(colorStr) {
	case 6:
	case 3:
		// SVG specs say duplicate characters in case of 3 digit hex number
		colorStr = string([]byte{colorStr[0], colorStr[0],
			colorStr[1], colorStr[1], colorStr[2], colorStr[2]})
	default:
		return 0, 0, 0, errParamMismatch
	}
	for _, v := range []struct {
		c *uint8
		s string
	}{
		{&r, colorStr[0:2]},
		{&g, colorStr[2:4]},
		{&b, colorStr[4:6]},
	} {
		var t uint64
		t, err = strconv.ParseUint(v.s, 16, 8)
		if err != nil {
			return
		}
		*v.c = uint8(t)
	}
	return
}

func parseColorValue(v string) (uint8, error) {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "%") {
		n, err := parseBasicFloat(strings.TrimSuffix(v, "%"))
		if err != nil {
			return 0, err
		}
		return clampColor(n * 0xFF / 100), nil
	}
	n, err := parseBasicFloat(v)
	if err != nil {
		return 0, err
	}
	return clampColor(n), nil
}

func clampColor(f float64) uint8 {
	if f < 0 {
		return 0
	} else if f > 0xFF {
		return 0xFF
	}
	return uint8(f + 0.5)
}
