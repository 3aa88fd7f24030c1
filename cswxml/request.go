package cswxml

import (
	"encoding/xml"
	"fmt"
	"sort"

	"github.com/ogccite/csw-dgiwg-contract-tests/servicedef"
)

const resultTypeResults = "results"

// Request is a complete GetRecords request document.
type Request struct {
	Schema         servicedef.OutputSchema
	ElementSetName servicedef.ElementSetName
	Filter         *Filter
	MaxRecords     int
	StartPosition  int
	data           []byte
}

// RequestOption customizes optional GetRecords parameters.
type RequestOption func(*Request)

// WithMaxRecords sets the maxRecords parameter.
func WithMaxRecords(n int) RequestOption {
	return func(r *Request) { r.MaxRecords = n }
}

// WithStartPosition sets the startPosition parameter.
func WithStartPosition(n int) RequestOption {
	return func(r *Request) { r.StartPosition = n }
}

type getRecords struct {
	XMLName       xml.Name   `xml:"csw:GetRecords"`
	Namespaces    []xml.Attr `xml:",any,attr"`
	Service       string     `xml:"service,attr"`
	Version       string     `xml:"version,attr"`
	ResultType    string     `xml:"resultType,attr"`
	OutputFormat  string     `xml:"outputFormat,attr"`
	OutputSchema  string     `xml:"outputSchema,attr"`
	StartPosition int        `xml:"startPosition,attr,omitempty"`
	MaxRecords    int        `xml:"maxRecords,attr,omitempty"`
	Query         query      `xml:"csw:Query"`
}

type query struct {
	TypeNames      string      `xml:"typeNames,attr"`
	ElementSetName string      `xml:"csw:ElementSetName"`
	Constraint     *constraint `xml:"csw:Constraint,omitempty"`
}

type constraint struct {
	Version string    `xml:"version,attr"`
	Filter  ogcFilter `xml:"ogc:Filter"`
}

// CreateGetRecordsRequest builds a GetRecords request for the given output schema
// and element set. If filter is nil the request has no constraint.
func CreateGetRecordsRequest(
	schema servicedef.OutputSchema,
	elementSetName servicedef.ElementSetName,
	filter *Filter,
	options ...RequestOption,
) *Request {
	r := &Request{
		Schema:         schema,
		ElementSetName: elementSetName,
	}
	if filter != nil {
		f := *filter
		r.Filter = &f
	}
	for _, o := range options {
		o(r)
	}
	r.data = r.encode()
	return r
}

func (r *Request) namespaces() map[string]string {
	ret := map[string]string{"csw": servicedef.NamespaceCSW}
	if r.Schema == servicedef.ISO19139 {
		ret["gmd"] = servicedef.NamespaceGMD
	}
	if r.Filter != nil {
		for prefix, uri := range r.Filter.Namespaces() {
			ret[prefix] = uri
		}
	}
	return ret
}

func (r *Request) encode() []byte {
	doc := getRecords{
		Service:       servicedef.ServiceName,
		Version:       servicedef.ServiceVersion,
		ResultType:    resultTypeResults,
		OutputFormat:  servicedef.MediaTypeApplicationXML,
		OutputSchema:  r.Schema.URI(),
		StartPosition: r.StartPosition,
		MaxRecords:    r.MaxRecords,
		Query: query{
			TypeNames:      r.Schema.TypeName(),
			ElementSetName: string(r.ElementSetName),
		},
	}
	for _, prefix := range sortedKeys(r.namespaces()) {
		doc.Namespaces = append(doc.Namespaces,
			xml.Attr{Name: xml.Name{Local: "xmlns:" + prefix}, Value: r.namespaces()[prefix]})
	}
	if r.Filter != nil {
		doc.Query.Constraint = &constraint{Version: servicedef.FilterVersion, Filter: r.Filter.element()}
	}
	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		// only plain strings and ints are encoded
		panic(fmt.Errorf("unable to encode GetRecords request: %w", err))
	}
	return append([]byte(xml.Header), data...)
}

// Bytes returns the encoded request document.
func (r *Request) Bytes() []byte {
	return append([]byte(nil), r.data...)
}

func (r *Request) String() string {
	return string(r.data)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
