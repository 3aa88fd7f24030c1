// Package cswxml builds CSW 2.0.2 request documents and the OGC filter fragments
// embedded in them.
package cswxml

import (
	"encoding/xml"
	"strings"

	"github.com/ogccite/csw-dgiwg-contract-tests/servicedef"
)

// Queryable property names per output schema vocabulary.
var queryableProperties = map[servicedef.OutputSchema]struct{ identifier, title string }{
	servicedef.DublinCore: {identifier: "dc:identifier", title: "dc:title"},
	servicedef.ISO19139:   {identifier: "apiso:Identifier", title: "apiso:Title"},
}

var propertyNamespaces = map[string]string{
	"dc":    servicedef.NamespaceDC,
	"dct":   servicedef.NamespaceDCT,
	"apiso": servicedef.NamespaceAPISO,
}

// Filter is a single equality predicate over a queryable property. It is a value
// type: filters created from the same inputs compare equal.
type Filter struct {
	Schema   servicedef.OutputSchema
	Property string
	Literal  string
}

type ogcFilter struct {
	XMLName xml.Name          `xml:"ogc:Filter"`
	EqualTo propertyIsEqualTo `xml:"ogc:PropertyIsEqualTo"`
}

type propertyIsEqualTo struct {
	PropertyName string `xml:"ogc:PropertyName"`
	Literal      string `xml:"ogc:Literal"`
}

// CreateIdentifierFilter returns a filter matching records whose identifier equals
// the given value.
func CreateIdentifierFilter(schema servicedef.OutputSchema, identifier string) Filter {
	return Filter{Schema: schema, Property: queryableProperties[schema].identifier, Literal: identifier}
}

// CreateTitleFilter returns a filter matching records whose title equals the given
// value.
func CreateTitleFilter(schema servicedef.OutputSchema, title string) Filter {
	return Filter{Schema: schema, Property: queryableProperties[schema].title, Literal: title}
}

// Namespaces returns the prefix declarations needed to interpret the filter.
func (f Filter) Namespaces() map[string]string {
	ret := map[string]string{"ogc": servicedef.NamespaceOGC}
	if i := strings.IndexByte(f.Property, ':'); i > 0 {
		prefix := f.Property[:i]
		if uri, ok := propertyNamespaces[prefix]; ok {
			ret[prefix] = uri
		}
	}
	return ret
}

func (f Filter) element() ogcFilter {
	return ogcFilter{EqualTo: propertyIsEqualTo{PropertyName: f.Property, Literal: f.Literal}}
}

// String returns the ogc:Filter fragment. Namespace prefixes are declared by the
// enclosing request document.
func (f Filter) String() string {
	data, err := xml.Marshal(f.element())
	if err != nil {
		return ""
	}
	return string(data)
}
