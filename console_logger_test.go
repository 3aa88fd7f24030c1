package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/ogccite/csw-dgiwg-contract-tests/framework"
)

func TestConsoleTestLogger(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	logger := &ConsoleTestLogger{Out: &buf, DebugOutputOnFailure: true}
	id := framework.TestID{Path: []string{"GetRecords", "csw:Record", "Title"}}

	logger.TestStarted(id)
	logger.TestError(id, errors.New("first line\nsecond line"))
	logger.TestFinished(id, true, framework.CapturedOutput{{Message: "POST http://csw.example.org/csw"}})
	logger.TestSkipped(id, "No POST binding available for GetRecords request.")

	out := buf.String()
	assert.Contains(t, out, "[GetRecords/csw:Record/Title]\n")
	assert.Contains(t, out, "  first line\n  second line\n")
	assert.Contains(t, out, "  FAILED: GetRecords/csw:Record/Title\n")
	assert.Contains(t, out, "DEBUG")
	assert.Contains(t, out, "POST http://csw.example.org/csw")
	assert.Contains(t, out, "  SKIPPED: GetRecords/csw:Record/Title (No POST binding available for GetRecords request.)\n")
}
