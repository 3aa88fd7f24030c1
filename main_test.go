package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ogccite/csw-dgiwg-contract-tests/framework"
)

const capabilitiesDocument = `<csw:Capabilities xmlns:csw="http://www.opengis.net/cat/csw/2.0.2" xmlns:ows="http://www.opengis.net/ows" xmlns:xlink="http://www.w3.org/1999/xlink" version="2.0.2">
  <ows:OperationsMetadata>
    <ows:Operation name="GetRecords">
      <ows:DCP>
        <ows:HTTP>
          <ows:Post xlink:href="%s/csw"/>
        </ows:HTTP>
      </ows:DCP>
      <ows:Parameter name="outputSchema">
        <ows:Value>http://www.opengis.net/cat/csw/2.0.2</ows:Value>
        <ows:Value>http://www.isotc211.org/2005/gmd</ows:Value>
      </ows:Parameter>
    </ows:Operation>
  </ows:OperationsMetadata>
</csw:Capabilities>`

const getOnlyCapabilitiesDocument = `<csw:Capabilities xmlns:csw="http://www.opengis.net/cat/csw/2.0.2" xmlns:ows="http://www.opengis.net/ows" xmlns:xlink="http://www.w3.org/1999/xlink" version="2.0.2">
  <ows:OperationsMetadata>
    <ows:Operation name="GetRecords">
      <ows:DCP>
        <ows:HTTP>
          <ows:Get xlink:href="%s/csw?"/>
        </ows:HTTP>
      </ows:DCP>
    </ows:Operation>
  </ows:OperationsMetadata>
</csw:Capabilities>`

func testParams(t *testing.T, capabilities, serverURL string) commandParams {
	dir := t.TempDir()
	capsFile := filepath.Join(dir, "capabilities.xml")
	require.NoError(t, os.WriteFile(capsFile, []byte(fmt.Sprintf(capabilities, serverURL)), 0o600))
	return commandParams{
		capabilitiesFile: capsFile,
		timeout:          time.Second * 5,
		reportFile:       filepath.Join(dir, "report.yaml"),
	}
}

func getRecordsHandler(t *testing.T) http.Handler {
	body, err := os.ReadFile(filepath.Join("testdata", "getrecords-response.xml"))
	require.NoError(t, err)
	headers := make(http.Header)
	headers.Set("Content-Type", "application/xml")
	return httphelpers.HandlerWithResponse(200, headers, body)
}

func readReport(t *testing.T, path string) report {
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var r report
	require.NoError(t, yaml.Unmarshal(data, &r))
	return r
}

func TestRunWithBundledSchemasPasses(t *testing.T) {
	color.NoColor = true
	handler, requestsCh := httphelpers.RecordingHandler(getRecordsHandler(t))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		params := testParams(t, capabilitiesDocument, server.URL)
		var out bytes.Buffer

		require.NoError(t, run(context.Background(), params, &out))

		// one sampling request, then one per scenario
		assert.Len(t, requestsCh, 5)
		assert.Contains(t, out.String(), "Ran 4 tests: 4 passed, 0 failed, 0 skipped")

		r := readReport(t, params.reportFile)
		assert.Equal(t, summary{Total: 4, Passed: 4}, r.Summary)
		assert.Len(t, r.Tests, 4)
		for _, tr := range r.Tests {
			assert.Equal(t, framework.VerdictPass, tr.Verdict, tr.ID)
		}
	})
}

func TestRunWithoutSchemasFailsAndWritesReport(t *testing.T) {
	color.NoColor = true
	handler, requestsCh := httphelpers.RecordingHandler(getRecordsHandler(t))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		params := testParams(t, capabilitiesDocument, server.URL)
		params.schemaDir = filepath.Join(t.TempDir(), "no-schemas")
		var out bytes.Buffer

		err := run(context.Background(), params, &out)
		assert.ErrorIs(t, err, errTestsFailed)

		require.Len(t, requestsCh, 5)
		assert.Contains(t, out.String(), "Ran 4 tests: 0 passed, 4 failed, 0 skipped")
		assert.Contains(t, out.String(), "No schema validator is available for output schema DublinCore.")

		r := readReport(t, params.reportFile)
		assert.NotEmpty(t, r.RunID)
		assert.Equal(t, params.capabilitiesFile, r.Capabilities)
		assert.Equal(t, summary{Total: 4, Passed: 0, Failed: 4}, r.Summary)
		assert.Len(t, r.Tests, 4)
		for _, tr := range r.Tests {
			assert.Equal(t, framework.VerdictFail, tr.Verdict, tr.ID)
			assert.Contains(t, tr.Attributes["request"], "csw:GetRecords")
			assert.Contains(t, tr.Attributes["reproduce"], server.URL+"/csw")
		}
		for i := 0; i < 5; i++ {
			req := <-requestsCh
			assert.Equal(t, r.RunID, req.Request.Header.Get(runIDHeader))
		}
	})
}

func TestRunSkipsWhenCatalogueIsEmpty(t *testing.T) {
	color.NoColor = true
	httphelpers.WithServer(httphelpers.HandlerWithStatus(500), func(server *httptest.Server) {
		params := testParams(t, capabilitiesDocument, server.URL)
		var out bytes.Buffer

		require.NoError(t, run(context.Background(), params, &out))
		assert.Contains(t, out.String(), "Ran 4 tests: 0 passed, 0 failed, 4 skipped")
		assert.Contains(t, out.String(), "No value available for Queryable 'Identifier'.")
	})
}

func TestRunDoesNotContactCatalogueWithoutPostBinding(t *testing.T) {
	color.NoColor = true
	handler, requestsCh := httphelpers.RecordingHandler(getRecordsHandler(t))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		params := testParams(t, getOnlyCapabilitiesDocument, server.URL)
		var out bytes.Buffer

		require.NoError(t, run(context.Background(), params, &out))
		assert.Len(t, requestsCh, 0)
		assert.Contains(t, out.String(), "Ran 4 tests: 0 passed, 0 failed, 4 skipped")
		assert.Contains(t, out.String(), "No POST binding available for GetRecords request.")
	})
}

func TestRunRejectsInvalidCapabilities(t *testing.T) {
	dir := t.TempDir()
	capsFile := filepath.Join(dir, "capabilities.xml")
	require.NoError(t, os.WriteFile(capsFile, []byte("<ows:ExceptionReport xmlns:ows=\"http://www.opengis.net/ows\"/>"), 0o600))

	err := run(context.Background(), commandParams{capabilitiesFile: capsFile, timeout: time.Second}, &bytes.Buffer{})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errTestsFailed)
}
