package framework

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCapturedOutputDump(t *testing.T) {
	at := time.Date(2026, 10, 19, 9, 30, 15, 250*int(time.Millisecond), time.UTC)
	output := CapturedOutput{
		{Time: at, Message: "POST http://csw.example.org/csw\n<csw:GetRecords>\n</csw:GetRecords>\n"},
		{Time: at, Message: "response status 200"},
	}
	var sb strings.Builder
	output.Dump(&sb, "  ")

	assert.Equal(t, ""+
		"  [09:30:15.250] POST http://csw.example.org/csw\n"+
		"                 <csw:GetRecords>\n"+
		"                 </csw:GetRecords>\n"+
		"  [09:30:15.250] response status 200\n",
		sb.String())
}

func TestCapturingLoggerReturnsCopy(t *testing.T) {
	var l CapturingLogger
	l.Printf("sampled %d records", 3)
	out := l.Output()
	l.Printf("another")

	assert.Len(t, out, 1)
	assert.Equal(t, "sampled 3 records", out[0].Message)
	assert.Len(t, l.Output(), 2)
}
