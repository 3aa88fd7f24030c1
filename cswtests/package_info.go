// Package cswtests contains the DGIWG Basic CSW conformance tests themselves and
// their supporting API.
//
// Test harness infrastructure that is not specific to the CSW domain, such as test
// contexts, verdicts and filtering, is in the lower-level framework package.
package cswtests
