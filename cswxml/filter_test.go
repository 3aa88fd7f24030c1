package cswxml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogccite/csw-dgiwg-contract-tests/servicedef"
	"github.com/ogccite/csw-dgiwg-contract-tests/xmlutil"
)

func TestFilterPropertyNames(t *testing.T) {
	assert.Equal(t, "dc:identifier", CreateIdentifierFilter(servicedef.DublinCore, "x").Property)
	assert.Equal(t, "dc:title", CreateTitleFilter(servicedef.DublinCore, "x").Property)
	assert.Equal(t, "apiso:Identifier", CreateIdentifierFilter(servicedef.ISO19139, "x").Property)
	assert.Equal(t, "apiso:Title", CreateTitleFilter(servicedef.ISO19139, "x").Property)
}

func TestIdentifierFilterIsDeterministic(t *testing.T) {
	for _, schema := range []servicedef.OutputSchema{servicedef.DublinCore, servicedef.ISO19139} {
		a := CreateIdentifierFilter(schema, "id-001")
		b := CreateIdentifierFilter(schema, "id-001")
		assert.Equal(t, a, b)
		assert.Equal(t, a.String(), b.String())
	}
}

func TestFilterFragment(t *testing.T) {
	f := CreateTitleFilter(servicedef.DublinCore, "Lake Survey")
	assert.Equal(t,
		"<ogc:Filter><ogc:PropertyIsEqualTo><ogc:PropertyName>dc:title</ogc:PropertyName>"+
			"<ogc:Literal>Lake Survey</ogc:Literal></ogc:PropertyIsEqualTo></ogc:Filter>",
		f.String())
}

func TestFilterEscapesMarkup(t *testing.T) {
	title := `Lakes & <ogc:Or>"Rivers"</ogc:Or>`
	f := CreateTitleFilter(servicedef.DublinCore, title)
	assert.NotContains(t, f.String(), "<ogc:Or>")

	req := CreateGetRecordsRequest(servicedef.DublinCore, servicedef.Full, &f)
	doc, err := xmlutil.Parse(req.Bytes())
	require.NoError(t, err)

	literal, err := xmlutil.EvaluateString(doc, "//ogc:Literal", servicedef.StandardBindings())
	require.NoError(t, err)
	assert.Equal(t, title, literal)

	injected, err := xmlutil.EvaluateXPath(doc, "//ogc:Or", servicedef.StandardBindings(), xmlutil.Boolean)
	require.NoError(t, err)
	assert.Equal(t, false, injected)
}

func TestFilterNamespaces(t *testing.T) {
	assert.Equal(t, map[string]string{
		"ogc": servicedef.NamespaceOGC,
		"dc":  servicedef.NamespaceDC,
	}, CreateTitleFilter(servicedef.DublinCore, "t").Namespaces())
	assert.Equal(t, map[string]string{
		"ogc":   servicedef.NamespaceOGC,
		"apiso": servicedef.NamespaceAPISO,
	}, CreateIdentifierFilter(servicedef.ISO19139, "i").Namespaces())
}
