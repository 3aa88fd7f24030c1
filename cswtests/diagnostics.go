package cswtests

import (
	"strings"

	"github.com/alessio/shellescape"

	"github.com/ogccite/csw-dgiwg-contract-tests/servicedef"
)

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// curlCommand returns a shell command that repeats a request.
func curlCommand(method, endpoint string, body []byte) string {
	var b commandBuilder
	b.add("curl", "-sS", "-X", method)
	b.add("-H", "Accept: "+servicedef.MediaTypeApplicationXML+", "+servicedef.MediaTypeTextXML)
	if len(body) > 0 {
		b.add("-H", "Content-Type: "+servicedef.MediaTypeApplicationXML)
		b.add("--data-binary", string(body))
	}
	b.add(endpoint)
	return b.String()
}
