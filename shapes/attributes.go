package shapes

import "encoding/xml"

// Attributes is the attribute bag handed to a node at ingestion.
type Attributes interface {
	// Lookup returns the value of the attribute, if present.
	Lookup(name string) (string, bool)
}

// Attrs is a map based attribute bag.
type Attrs map[string]string

func (a Attrs) Lookup(name string) (string, bool) {
	v, ok := a[name]
	return v, ok
}

// XMLAttrs adapts the attributes of an XML start element,
// matching on the local name. The first occurrence wins.
type XMLAttrs []xml.Attr

func (a XMLAttrs) Lookup(name string) (string, bool) {
	for _, attr := range a {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

// lookupFirst returns the value of the first attribute found,
// in the order of names.
func lookupFirst(bag Attributes, names ...string) (string, bool) {
	for _, name := range names {
		if v, ok := bag.Lookup(name); ok {
			return v, true
		}
	}
	return "", false
}
