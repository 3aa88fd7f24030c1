package servicedef

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMessage(t *testing.T) {
	assert.Equal(t, "Unexpected status code.", FormatMessage(UnexpectedStatus))
	assert.Equal(t, "No POST binding available for GetRecords request.",
		FormatMessage(NoBinding, POST, OperationGetRecords))
	assert.Equal(t, "No value available for Queryable 'Title'.", FormatMessage(NoQueryableValue, "Title"))
	assert.Equal(t, "SomethingElse", FormatMessage(MessageKey("SomethingElse")))
}

func TestOutputSchemaVocabulary(t *testing.T) {
	assert.Equal(t, NamespaceCSW, DublinCore.URI())
	assert.Equal(t, "csw:Record", DublinCore.TypeName())
	assert.Equal(t, NamespaceGMD, ISO19139.URI())
	assert.Equal(t, "gmd:MD_Metadata", ISO19139.TypeName())
}

func TestStandardBindingsAreIndependent(t *testing.T) {
	b := StandardBindings()
	b["ex"] = "urn:example"
	_, ok := StandardBindings()["ex"]
	assert.False(t, ok)
	assert.Equal(t, NamespaceGCO, b["gco"])
}
