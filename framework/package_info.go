// Package framework contains the low-level implementation of test harness infrastructure
// that can be reused for different kinds of tests.
//
// The general model is:
//
// 1. The test harness sends requests to a service under test and inspects what it
// returns. Domain-specific code decides what to send and what to expect.
//
// 2. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results. A test ends with exactly one verdict: it passes, fails, or is
// skipped because its precondition could not be met.
//
// 3. A test can attach diagnostic attributes, such as the messages it exchanged with the
// service, which are retained for failed tests.
//
// The domain-specific code that knows what is being tested is responsible for building
// requests, validating responses, and providing a domain-specific test API on top of the
// test context.
package framework
