package framework

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const timestampFormat = "15:04:05.000"

// TestLogger is notified as tests start, fail and finish, so that progress can be
// reported while the suite runs.
type TestLogger interface {
	TestStarted(id TestID)
	TestError(id TestID, err error)
	TestFinished(id TestID, failed bool, debugOutput CapturedOutput)
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (nullTestLogger) TestStarted(TestID)                        {}
func (nullTestLogger) TestError(TestID, error)                   {}
func (nullTestLogger) TestFinished(TestID, bool, CapturedOutput) {}
func (nullTestLogger) TestSkipped(TestID, string)                {}

type CapturedMessage struct {
	Time    time.Time
	Message string
}

type CapturedOutput []CapturedMessage

// CapturingLogger keeps the debug output of one test until the test is finished.
type CapturingLogger struct {
	output []CapturedMessage
	lock   sync.Mutex
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	m := CapturedMessage{Time: time.Now(), Message: fmt.Sprintf(message, args...)}
	l.lock.Lock()
	l.output = append(l.output, m)
	l.lock.Unlock()
}

func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	defer l.lock.Unlock()
	return append(CapturedOutput(nil), l.output...)
}

// Dump writes each message with its timestamp. Continuation lines of multi-line
// messages, such as request documents, are indented under the first line.
func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		stamp := "[" + m.Time.Format(timestampFormat) + "] "
		indent := strings.Repeat(" ", len(stamp))
		for i, line := range strings.Split(strings.TrimRight(m.Message, "\n"), "\n") {
			if i == 0 {
				fmt.Fprintf(dest, "%s%s%s\n", prefix, stamp, line)
			} else {
				fmt.Fprintf(dest, "%s%s%s\n", prefix, indent, line)
			}
		}
	}
}
