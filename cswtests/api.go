package cswtests

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/antchfx/xmlquery"
	"github.com/stretchr/testify/require"

	"github.com/ogccite/csw-dgiwg-contract-tests/client"
	"github.com/ogccite/csw-dgiwg-contract-tests/cswxml"
	"github.com/ogccite/csw-dgiwg-contract-tests/framework"
	"github.com/ogccite/csw-dgiwg-contract-tests/sampler"
	"github.com/ogccite/csw-dgiwg-contract-tests/servicedef"
	"github.com/ogccite/csw-dgiwg-contract-tests/validation"
	"github.com/ogccite/csw-dgiwg-contract-tests/xmlutil"
)

// Names of the diagnostic attributes attached to failed tests.
const (
	AttributeRequest   = "request"
	AttributeResponse  = "response"
	AttributeReproduce = "reproduce"
)

// T represents a test or subtest in the CSW test suite.
//
// It implements the same basic functionality as Go's testing.T, on top of the
// lower-level framework package, and adds operations specific to testing a
// catalogue: resolving bindings from the capabilities document, submitting
// requests, and checking responses. Most of these methods make the test fail and
// exit immediately if something unexpected happens, so tests need little
// boilerplate.
//
// To make test assertions, you can use the assert and require packages, passing
// the *T as if it were a *testing.T.
type T struct {
	context *framework.Context
	env     *Environment
}

func newTestScope(context *framework.Context, env *Environment) *T {
	return &T{context: context, env: env}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
//
// The specified function receives a new T instance with no request or response state.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.env))
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Skip ends the test as inconclusive because one of its preconditions does not hold.
func (t *T) Skip(reason string) {
	t.context.SkipWithReason(reason)
}

func (t *T) ctx() context.Context {
	if t.env.Context == nil {
		return context.Background()
	}
	return t.env.Context
}

// RequireEndpoint returns the URI bound to an operation and method in the
// capabilities document. If there is none, the test is skipped.
func (t *T) RequireEndpoint(operation string, method servicedef.ProtocolBinding) string {
	uri, ok := t.env.Capabilities.EndpointFor(operation, method)
	if !ok {
		t.Skip(servicedef.FormatMessage(servicedef.NoBinding, method, operation))
	}
	t.Debug("%s %s endpoint: %s", method, operation, uri)
	return uri
}

// Records returns the sampled catalogue content. It is never nil.
func (t *T) Records() *sampler.Records {
	if t.env.Records == nil {
		return sampler.NewRecords()
	}
	if r := t.env.Records.Records(t.ctx()); r != nil {
		return r
	}
	return sampler.NewRecords()
}

// SubmitPost sends a request document to endpoint. The request, the response, and
// an equivalent curl command are attached to the test in case it fails. A
// transport error, including a timeout, fails the test immediately.
func (t *T) SubmitPost(endpoint string, req *cswxml.Request) *client.Response {
	t.context.SetAttribute(AttributeRequest, req.String())
	t.context.SetAttribute(AttributeReproduce, curlCommand(http.MethodPost, endpoint, req.Bytes()))
	t.Debug("POST %s\n%s", endpoint, req)

	resp, err := t.env.Transport.SubmitPost(t.ctx(), endpoint, req.Bytes())
	require.NoError(t, err)

	t.context.SetAttribute(AttributeResponse, describeResponse(resp))
	t.Debug("response status %d (%d bytes in %s)", resp.StatusCode, len(resp.Body), resp.Duration)
	return resp
}

// RequireStatus fails the test immediately if the response status is not the
// expected one.
func (t *T) RequireStatus(resp *client.Response, expected int) {
	require.Equal(t, expected, resp.StatusCode, servicedef.FormatMessage(servicedef.UnexpectedStatus))
}

// RequireResponseDocument parses the response entity, failing the test
// immediately if it is not XML.
func (t *T) RequireResponseDocument(resp *client.Response) *xmlquery.Node {
	doc, err := xmlutil.Parse(resp.Body)
	if err != nil {
		require.Fail(t, servicedef.FormatMessage(servicedef.UnexpectedResponse, err))
	}
	return doc
}

// RequireXPath fails the test immediately if expr does not match node.
func (t *T) RequireXPath(node *xmlquery.Node, expr, message string) {
	validation.AssertXPath(t, expr, node, servicedef.StandardBindings(), message)
}

// RequireSchemaValid fails the test immediately if entity does not conform to
// the schemas of the output schema.
func (t *T) RequireSchemaValid(schema servicedef.OutputSchema, entity []byte) {
	v := t.env.Validators.For(schema)
	if v == nil {
		require.Fail(t, servicedef.FormatMessage(servicedef.ValidatorUnavailable, schema))
	}
	validation.AssertSchemaValid(t, v, entity)
}

func describeResponse(resp *client.Response) string {
	s := fmt.Sprintf("Status: %d\nHeaders: %v\n", resp.StatusCode, resp.Header)
	if !resp.IsXML() && !bytes.HasPrefix(bytes.TrimSpace(resp.Body), []byte("<")) {
		return s
	}
	if doc, err := xmlutil.Parse(resp.Body); err == nil {
		return s + "\n" + xmlutil.WriteNodeToString(xmlutil.DocumentElement(doc))
	}
	return s + "\n" + string(resp.Body)
}
