// Package xmlutil parses and serializes XML entities and evaluates namespace-aware
// XPath expressions against them.
package xmlutil

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// ResultType selects how the result of an XPath expression is returned, in the
// same way as the XPath 1.0 conversion functions.
type ResultType int

const (
	// NodeSet returns []*xmlquery.Node.
	NodeSet ResultType = iota
	// String returns the string value of the result.
	String
	// Boolean returns the boolean value of the result.
	Boolean
)

// ErrNotXML is returned by Parse for input that has no root element.
var ErrNotXML = errors.New("entity does not contain an XML document")

// Parse reads an XML document.
func Parse(data []byte) (*xmlquery.Node, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if DocumentElement(doc) == nil {
		return nil, ErrNotXML
	}
	return doc, nil
}

// DocumentElement returns the root element of a document node, or the node itself
// if it is already an element.
func DocumentElement(n *xmlquery.Node) *xmlquery.Node {
	if n == nil {
		return nil
	}
	if n.Type == xmlquery.ElementNode {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return c
		}
	}
	return nil
}

// WriteNodeToString serializes a node, including the node itself.
func WriteNodeToString(n *xmlquery.Node) string {
	if n == nil {
		return ""
	}
	return n.OutputXML(true)
}

// EvaluateXPath evaluates expr against the subtree rooted at node. Absolute paths
// such as "//dc:title" are resolved relative to node, not to the owning document.
func EvaluateXPath(node *xmlquery.Node, expr string, bindings map[string]string, resultType ResultType) (interface{}, error) {
	if node == nil {
		return nil, errors.New("no node to evaluate XPath expression against")
	}
	compiled, err := xpath.CompileWithNS(expr, bindings)
	if err != nil {
		return nil, fmt.Errorf("invalid XPath expression %q: %w", expr, err)
	}
	raw := compiled.Evaluate(xmlquery.CreateXPathNavigator(node))

	switch resultType {
	case NodeSet:
		nodes, ok := toNodes(raw)
		if !ok {
			return nil, fmt.Errorf("XPath expression %q does not select nodes", expr)
		}
		return nodes, nil
	case String:
		return toString(raw), nil
	case Boolean:
		return toBoolean(raw), nil
	default:
		return nil, fmt.Errorf("unknown XPath result type %d", resultType)
	}
}

// EvaluateString is a shortcut for EvaluateXPath with the String result type. The
// string value of a node is returned as it is, including surrounding whitespace.
func EvaluateString(node *xmlquery.Node, expr string, bindings map[string]string) (string, error) {
	v, err := EvaluateXPath(node, expr, bindings, String)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func toNodes(raw interface{}) ([]*xmlquery.Node, bool) {
	iter, ok := raw.(*xpath.NodeIterator)
	if !ok {
		return nil, false
	}
	var ret []*xmlquery.Node
	for iter.MoveNext() {
		if nav, ok := iter.Current().(*xmlquery.NodeNavigator); ok {
			ret = append(ret, nav.Current())
		}
	}
	return ret, true
}

func toString(raw interface{}) string {
	switch v := raw.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case *xpath.NodeIterator:
		if v.MoveNext() {
			return v.Current().Value()
		}
	}
	return ""
}

func toBoolean(raw interface{}) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	case *xpath.NodeIterator:
		return v.MoveNext()
	}
	return false
}
