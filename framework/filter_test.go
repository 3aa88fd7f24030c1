package framework

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexFilters(t *testing.T) {
	var f RegexFilters
	assert.True(t, f.AsFilter(TestID{Path: []string{"anything"}}))

	require.NoError(t, f.MustMatch.Set("^GetRecords/"))
	require.NoError(t, f.MustNotMatch.Set("Title$"))

	assert.True(t, f.AsFilter(TestID{Path: []string{"GetRecords", "DublinCore", "Identifier"}}))
	assert.False(t, f.AsFilter(TestID{Path: []string{"GetRecords", "DublinCore", "Title"}}))
	assert.False(t, f.AsFilter(TestID{Path: []string{"GetCapabilities"}}))
}

func TestRegexListRejectsInvalidPattern(t *testing.T) {
	var r RegexList
	assert.Error(t, r.Set("("))
	assert.False(t, r.IsDefined())
	assert.Equal(t, "regex", r.Type())
}

func TestPrintFilterDescription(t *testing.T) {
	var f RegexFilters
	require.NoError(t, f.MustNotMatch.Set("ISO"))

	var buf bytes.Buffer
	PrintFilterDescription(&buf, f, []string{"GetRecords POST binding"})
	assert.Contains(t, buf.String(), `skip any matching "ISO"`)
	assert.Contains(t, buf.String(), "GetRecords POST binding")
}
