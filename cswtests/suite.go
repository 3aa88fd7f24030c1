package cswtests

import (
	"context"

	"github.com/ogccite/csw-dgiwg-contract-tests/capabilities"
	"github.com/ogccite/csw-dgiwg-contract-tests/client"
	"github.com/ogccite/csw-dgiwg-contract-tests/framework"
	"github.com/ogccite/csw-dgiwg-contract-tests/sampler"
	"github.com/ogccite/csw-dgiwg-contract-tests/servicedef"
	"github.com/ogccite/csw-dgiwg-contract-tests/validation"
)

// Transport submits requests to the catalogue under test.
type Transport interface {
	SubmitPost(ctx context.Context, endpoint string, body []byte, mediaTypes ...string) (*client.Response, error)
}

// RecordSource supplies the sampled catalogue content.
type RecordSource interface {
	Records(ctx context.Context) *sampler.Records
}

// Validators holds the compiled schema validators, one per output schema. A nil
// member is unusable and fails every test that needs it.
type Validators struct {
	CSW validation.Validator
	ISO validation.Validator
}

// For returns the validator for responses in the given output schema.
func (v Validators) For(schema servicedef.OutputSchema) validation.Validator {
	if schema == servicedef.ISO19139 {
		return v.ISO
	}
	return v.CSW
}

// Environment contains everything the tests share. It is set up once before any
// test runs and is not modified afterward.
type Environment struct {
	Context      context.Context
	Capabilities *capabilities.Index
	Records      RecordSource
	Transport    Transport
	Validators   Validators
}

// RunTestSuite runs all tests against the environment.
func RunTestSuite(
	env Environment,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	if env.Context == nil {
		env.Context = context.Background()
	}
	if env.Records != nil {
		env.Records.Records(env.Context)
	}

	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c, &env)

		t.Run("GetRecords", DoGetRecordsTests)
	})
}

// MissingFeatures lists what the tests depend on that the service does not
// advertise, for the description printed before the run.
func MissingFeatures(idx *capabilities.Index) []string {
	var missing []string
	if !idx.Methods(servicedef.OperationGetRecords).Contains(servicedef.POST) {
		missing = append(missing, "GetRecords POST binding")
	}
	schemas := idx.ParameterValues(servicedef.OperationGetRecords, servicedef.ParameterOutputSchema)
	for _, s := range getRecordsSchemas {
		if !schemas.Contains(s.URI()) {
			missing = append(missing, "GetRecords outputSchema "+s.URI())
		}
	}
	return missing
}
