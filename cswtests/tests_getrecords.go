package cswtests

import (
	"net/http"

	"github.com/ogccite/csw-dgiwg-contract-tests/cswxml"
	"github.com/ogccite/csw-dgiwg-contract-tests/servicedef"
)

var getRecordsSchemas = []servicedef.OutputSchema{servicedef.DublinCore, servicedef.ISO19139}

// DoGetRecordsTests checks that GetRecords requests filtered on each queryable
// return a schema-valid GetRecordsResponse, for every output schema.
func DoGetRecordsTests(t *T) {
	for _, schema := range getRecordsSchemas {
		t.Run(schema.TypeName(), func(t *T) {
			for _, q := range allQueryables {
				t.Run(string(q), func(t *T) {
					doGetRecordsWithFilter(t, schema, q)
				})
			}
		})
	}
}

func doGetRecordsWithFilter(t *T, schema servicedef.OutputSchema, q Queryable) {
	endpoint := t.RequireEndpoint(servicedef.OperationGetRecords, servicedef.POST)

	filter, ok := q.CreateFilter(t.Records())
	if !ok {
		t.Skip(servicedef.FormatMessage(servicedef.NoQueryableValue, q))
	}

	req := cswxml.CreateGetRecordsRequest(schema, servicedef.Full, &filter)
	resp := t.SubmitPost(endpoint, req)

	t.RequireStatus(resp, http.StatusOK)

	doc := t.RequireResponseDocument(resp)
	t.RequireXPath(doc, "//csw:GetRecordsResponse", "Response is not a GetRecordsResponse")

	t.RequireSchemaValid(schema, resp.Body)
}
