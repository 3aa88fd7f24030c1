package framework

import (
	"fmt"
	"io"
	"strings"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Skipped  []TestResult
}

type TestResult struct {
	TestID     TestID
	Errors     []error
	Skipped    bool
	SkipReason string
	Attributes map[string]string
	// HasSubtests is set for a test that only groups other tests.
	HasSubtests bool
}

// Verdict is the outcome of a single test.
type Verdict string

const (
	VerdictPass Verdict = "pass"
	VerdictFail Verdict = "fail"
	VerdictSkip Verdict = "skip"
)

func (r TestResult) Verdict() Verdict {
	switch {
	case r.Skipped:
		return VerdictSkip
	case len(r.Errors) > 0:
		return VerdictFail
	default:
		return VerdictPass
	}
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Passed returns the number of tests that neither failed nor were skipped. A test
// with subtests is not counted unless it failed or was skipped itself.
func (r Results) Passed() int {
	n := 0
	for _, t := range r.Tests {
		if t.Counted() && t.Verdict() == VerdictPass {
			n++
		}
	}
	return n
}

// Total returns the number of tests that have a verdict of their own.
func (r Results) Total() int {
	return r.Passed() + len(r.Failures) + len(r.Skipped)
}

// Counted reports whether the result is part of the run's totals.
func (r TestResult) Counted() bool {
	return !r.HasSubtests || r.Verdict() != VerdictPass
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// PrintResults writes a summary of the test run.
func PrintResults(out io.Writer, results Results) {
	fmt.Fprintf(out, "Ran %d tests: %d passed, %d failed, %d skipped\n",
		results.Total(), results.Passed(), len(results.Failures), len(results.Skipped))
	if len(results.Failures) > 0 {
		fmt.Fprintln(out, "FAILED TESTS:")
		for _, f := range results.Failures {
			fmt.Fprintf(out, "  * %s\n", f.TestID)
		}
	}
	if len(results.Skipped) > 0 {
		fmt.Fprintln(out, "SKIPPED TESTS:")
		for _, s := range results.Skipped {
			if s.SkipReason == "" {
				fmt.Fprintf(out, "  * %s\n", s.TestID)
			} else {
				fmt.Fprintf(out, "  * %s (%s)\n", s.TestID, s.SkipReason)
			}
		}
	}
}
