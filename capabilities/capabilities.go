// Package capabilities indexes the operations metadata of a CSW capabilities
// document.
package capabilities

import (
	"fmt"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/antchfx/xmlquery"

	"github.com/ogccite/csw-dgiwg-contract-tests/servicedef"
	"github.com/ogccite/csw-dgiwg-contract-tests/xmlutil"
)

// Binding identifies an operation exposed through one HTTP method.
type Binding struct {
	Operation string
	Method    servicedef.ProtocolBinding
}

// Index is an immutable lookup table built from a capabilities document.
type Index struct {
	endpoints  map[Binding]string
	operations []string
	parameters map[string]map[string]mapset.Set[string]
}

var owsPrefixes = []string{"ows", "ows11"}

// Parse reads a capabilities document. OWS 1.0.0 (used by CSW 2.0.2) and OWS 1.1.0
// operations metadata are both recognized.
func Parse(data []byte) (*Index, error) {
	doc, err := xmlutil.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("malformed capabilities document: %w", err)
	}
	root := xmlutil.DocumentElement(doc)
	if root.Data == "ExceptionReport" {
		return nil, fmt.Errorf("service returned an exception report instead of capabilities: %s",
			strings.TrimSpace(root.InnerText()))
	}
	if root.Data != "Capabilities" {
		return nil, fmt.Errorf("document element is %s, expected csw:Capabilities", root.Data)
	}

	idx := &Index{
		endpoints:  make(map[Binding]string),
		parameters: make(map[string]map[string]mapset.Set[string]),
	}
	bindings := servicedef.StandardBindings()
	for _, ows := range owsPrefixes {
		v, err := xmlutil.EvaluateXPath(doc, "//"+ows+":OperationsMetadata/"+ows+":Operation", bindings, xmlutil.NodeSet)
		if err != nil {
			return nil, err
		}
		for _, op := range v.([]*xmlquery.Node) {
			if err := idx.addOperation(op, ows, bindings); err != nil {
				return nil, err
			}
		}
	}
	sort.Strings(idx.operations)
	return idx, nil
}

func (idx *Index) addOperation(op *xmlquery.Node, ows string, bindings servicedef.NamespaceBindings) error {
	name := strings.TrimSpace(op.SelectAttr("name"))
	if name == "" {
		return nil
	}
	if _, seen := idx.parameters[name]; !seen {
		idx.operations = append(idx.operations, name)
		idx.parameters[name] = make(map[string]mapset.Set[string])
	}

	for _, m := range []servicedef.ProtocolBinding{servicedef.GET, servicedef.POST} {
		element := ows + ":Get"
		if m == servicedef.POST {
			element = ows + ":Post"
		}
		v, err := xmlutil.EvaluateXPath(op, ows+":DCP/"+ows+":HTTP/"+element, bindings, xmlutil.NodeSet)
		if err != nil {
			return err
		}
		for _, n := range v.([]*xmlquery.Node) {
			href := strings.TrimSpace(attrNS(n, servicedef.NamespaceXLink, "href"))
			key := Binding{Operation: name, Method: m}
			if href != "" && idx.endpoints[key] == "" {
				idx.endpoints[key] = href
			}
		}
	}

	v, err := xmlutil.EvaluateXPath(op, ows+":Parameter", bindings, xmlutil.NodeSet)
	if err != nil {
		return err
	}
	for _, p := range v.([]*xmlquery.Node) {
		paramName := p.SelectAttr("name")
		values := mapset.NewSet[string]()
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			collectValues(c, values)
		}
		if existing, ok := idx.parameters[name][paramName]; ok {
			existing.Append(values.ToSlice()...)
		} else {
			idx.parameters[name][paramName] = values
		}
	}
	return nil
}

// collectValues gathers ows:Value elements, which OWS 1.1 nests in ows:AllowedValues.
func collectValues(n *xmlquery.Node, into mapset.Set[string]) {
	if n.Type != xmlquery.ElementNode {
		return
	}
	if n.Data == "Value" {
		if v := strings.TrimSpace(n.InnerText()); v != "" {
			into.Add(v)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectValues(c, into)
	}
}

func attrNS(n *xmlquery.Node, namespace, local string) string {
	for _, a := range n.Attr {
		if a.Name.Local == local && (a.NamespaceURI == namespace || a.Name.Space == "xlink") {
			return a.Value
		}
	}
	return ""
}

// EndpointFor returns the URI bound to an operation for the given HTTP method. The
// second return value is false if the capabilities document does not advertise that
// binding, which is not an error: binding availability is itself under test.
func (idx *Index) EndpointFor(operation string, method servicedef.ProtocolBinding) (string, bool) {
	if idx == nil {
		return "", false
	}
	uri, ok := idx.endpoints[Binding{Operation: operation, Method: method}]
	return uri, ok
}

// Operations returns the names of all advertised operations, sorted.
func (idx *Index) Operations() []string {
	return append([]string(nil), idx.operations...)
}

// Methods returns the HTTP methods through which an operation is bound.
func (idx *Index) Methods(operation string) mapset.Set[servicedef.ProtocolBinding] {
	ret := mapset.NewSet[servicedef.ProtocolBinding]()
	if idx == nil {
		return ret
	}
	for b := range idx.endpoints {
		if b.Operation == operation {
			ret.Add(b.Method)
		}
	}
	return ret
}

// ParameterValues returns the advertised domain of an operation parameter, such as
// the outputSchema values of GetRecords. The returned set is a copy.
func (idx *Index) ParameterValues(operation, parameter string) mapset.Set[string] {
	if idx == nil {
		return mapset.NewSet[string]()
	}
	if params, ok := idx.parameters[operation]; ok {
		if values, ok := params[parameter]; ok {
			return values.Clone()
		}
	}
	return mapset.NewSet[string]()
}
