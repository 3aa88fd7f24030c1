package framework

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTestLogger struct {
	started  []string
	finished map[string]bool
	skipped  map[string]string
	errors   map[string][]error
}

func newRecordingTestLogger() *recordingTestLogger {
	return &recordingTestLogger{
		finished: make(map[string]bool),
		skipped:  make(map[string]string),
		errors:   make(map[string][]error),
	}
}

func (l *recordingTestLogger) TestStarted(id TestID) {
	l.started = append(l.started, id.String())
}

func (l *recordingTestLogger) TestError(id TestID, err error) {
	l.errors[id.String()] = append(l.errors[id.String()], err)
}

func (l *recordingTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	l.finished[id.String()] = failed
}

func (l *recordingTestLogger) TestSkipped(id TestID, reason string) {
	l.skipped[id.String()] = reason
}

func TestVerdicts(t *testing.T) {
	logger := newRecordingTestLogger()
	results := Run(nil, logger, func(c *Context) {
		c.Run("a", func(c *Context) {
			c.Run("passes", func(c *Context) {})
			c.Run("fails", func(c *Context) {
				require.Equal(c, 200, 500)
			})
			c.Run("skips", func(c *Context) {
				c.SkipWithReason("no POST binding")
			})
		})
	})

	assert.False(t, results.OK())
	assert.Equal(t, []string{"a", "a/passes", "a/fails", "a/skips"}, logger.started)
	assert.Equal(t, false, logger.finished["a/passes"])
	assert.Equal(t, true, logger.finished["a/fails"])
	assert.Equal(t, "no POST binding", logger.skipped["a/skips"])

	require.Len(t, results.Failures, 1)
	assert.Equal(t, "a/fails", results.Failures[0].TestID.String())
	assert.Equal(t, VerdictFail, results.Failures[0].Verdict())
	require.Len(t, results.Skipped, 1)
	assert.Equal(t, VerdictSkip, results.Skipped[0].Verdict())
	assert.Equal(t, "no POST binding", results.Skipped[0].SkipReason)
	assert.Equal(t, 4, len(results.Tests))
	assert.Equal(t, 1, results.Passed())
	assert.Equal(t, 3, results.Total())
}

func TestGroupingTestsAreNotCounted(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("GetRecords", func(c *Context) {
			c.Run("csw:Record", func(c *Context) {
				c.Run("Identifier", func(c *Context) {})
			})
		})
	})

	require.Len(t, results.Tests, 3)
	assert.True(t, results.Tests[2].HasSubtests)
	assert.False(t, results.Tests[2].Counted())
	assert.False(t, results.Tests[0].HasSubtests)
	assert.Equal(t, 1, results.Passed())
	assert.Equal(t, 1, results.Total())

	var out bytes.Buffer
	PrintResults(&out, results)
	assert.Contains(t, out.String(), "Ran 1 tests: 1 passed, 0 failed, 0 skipped")
}

func TestFailingGroupIsCounted(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("group", func(c *Context) {
			c.Run("child", func(c *Context) {})
			c.Errorf("setup failed")
		})
	})
	require.Len(t, results.Failures, 1)
	assert.True(t, results.Failures[0].Counted())
	assert.Equal(t, 1, results.Passed())
	assert.Equal(t, 2, results.Total())
}

func TestFailNowStopsTest(t *testing.T) {
	reached := false
	results := Run(nil, nil, func(c *Context) {
		c.Run("t", func(c *Context) {
			c.Errorf("first")
			c.FailNow()
			reached = true
		})
	})
	assert.False(t, reached)
	require.Len(t, results.Failures, 1)
	require.Len(t, results.Failures[0].Errors, 1)
	assert.EqualError(t, results.Failures[0].Errors[0], "first")
}

func TestFailNowWithoutMessage(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("t", func(c *Context) { c.FailNow() })
	})
	require.Len(t, results.Failures, 1)
	assert.EqualError(t, results.Failures[0].Errors[0], "test failed with no failure message")
}

func TestUnexpectedPanicIsAFailure(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("t", func(c *Context) { panic(errors.New("boom")) })
	})
	require.Len(t, results.Failures, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "boom")
}

func TestAttributesAreKeptOnlyForFailures(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("passes", func(c *Context) {
			c.SetAttribute("request", "<a/>")
		})
		c.Run("fails", func(c *Context) {
			c.SetAttribute("request", "<b/>")
			c.Errorf("bad")
		})
	})
	require.Len(t, results.Tests, 2)
	assert.Nil(t, results.Tests[0].Attributes)
	assert.Equal(t, map[string]string{"request": "<b/>"}, results.Tests[1].Attributes)
}

func TestFilterExcludesTests(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustNotMatch.Set("ISO"))

	ran := map[string]bool{}
	logger := newRecordingTestLogger()
	Run(filters.AsFilter, logger, func(c *Context) {
		for _, name := range []string{"DublinCore", "ISO19139"} {
			name := name
			c.Run(name, func(c *Context) { ran[name] = true })
		}
	})
	assert.True(t, ran["DublinCore"])
	assert.False(t, ran["ISO19139"])
	assert.Equal(t, "excluded by filter parameters", logger.skipped["ISO19139"])
}

func TestSubtestIDsDoNotShareBackingArrays(t *testing.T) {
	var ids []string
	Run(nil, nil, func(c *Context) {
		c.Run("a", func(c *Context) {
			c.Run("x", func(c *Context) { ids = append(ids, c.ID().String()) })
			c.Run("y", func(c *Context) { ids = append(ids, c.ID().String()) })
		})
	})
	assert.Equal(t, []string{"a/x", "a/y"}, ids)
}
