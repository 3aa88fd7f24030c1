package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Context is the state of one test or subtest. It implements the TestingT interface
// of testify's assert and require packages.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	hasSubtests bool
	skipReason  string
	errors      []error
	attributes  map[string]string
}

func Run(
	filter func(TestID) bool,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			if !c.skipped {
				c.failed = true
				var addError error
				if _, ok := r.(*Context); ok {
					if len(c.errors) == 0 {
						addError = errors.New("test failed with no failure message")
					}
				} else {
					addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
				}
				if addError != nil {
					c.errors = append(c.errors, addError)
					c.env.testLogger.TestError(c.id, addError)
				}
			}
		}
		if len(c.id.Path) == 0 {
			return
		}
		result := TestResult{
			TestID:      c.id,
			Errors:      c.errors,
			Skipped:     c.skipped,
			SkipReason:  c.skipReason,
			HasSubtests: c.hasSubtests,
		}
		if c.failed {
			result.Attributes = c.Attributes()
		}
		c.env.results.Tests = append(c.env.results.Tests, result)
		switch {
		case c.skipped:
			c.env.results.Skipped = append(c.env.results.Skipped, result)
		case c.failed:
			c.env.results.Failures = append(c.env.results.Failures, result)
		}
	}()

	action(c)
}

func (c *Context) ID() TestID {
	return c.id
}

func (c *Context) Run(name string, action func(*Context)) {
	id := TestID{Path: append(append([]string(nil), c.id.Path...), name)}
	c.hasSubtests = true

	c.env.testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		c.env.testLogger.TestSkipped(id, "excluded by filter parameters")
		return
	}
	c1 := &Context{
		id:  id,
		env: c.env,
	}
	c1.run(action)
	if c1.skipped {
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	} else {
		c.env.testLogger.TestFinished(id, c1.failed, c1.debugLogger.Output())
	}
}

func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

func (c *Context) FailNow() {
	panic(c)
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

// SkipWithReason marks the test as inconclusive: its precondition could not be met.
// A skipped test is not counted as a failure.
func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

// SetAttribute attaches diagnostic information to the test. Attributes are kept
// in the results only if the test fails.
func (c *Context) SetAttribute(name, value string) {
	if c.attributes == nil {
		c.attributes = make(map[string]string)
	}
	c.attributes[name] = value
}

// Attributes returns a copy of the attributes set so far.
func (c *Context) Attributes() map[string]string {
	if len(c.attributes) == 0 {
		return nil
	}
	ret := make(map[string]string, len(c.attributes))
	for k, v := range c.attributes {
		ret[k] = v
	}
	return ret
}
