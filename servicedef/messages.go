package servicedef

import "fmt"

// MessageKey identifies a failure message template.
type MessageKey string

const (
	UnexpectedStatus     MessageKey = "UnexpectedStatus"
	NotSchemaValid       MessageKey = "NotSchemaValid"
	XPathError           MessageKey = "XPathError"
	UnexpectedResponse   MessageKey = "UnexpectedResponse"
	ValidatorUnavailable MessageKey = "ValidatorUnavailable"
	NoBinding            MessageKey = "NoBinding"
	NoQueryableValue     MessageKey = "NoQueryableValue"
)

var messages = map[MessageKey]string{
	UnexpectedStatus:     "Unexpected status code.",
	NotSchemaValid:       "%d schema validation error(s) detected:\n%s",
	XPathError:           "%s (expression %q did not match)",
	UnexpectedResponse:   "Response entity is not an XML document: %s",
	ValidatorUnavailable: "No schema validator is available for output schema %s.",
	NoBinding:            "No %s binding available for %s request.",
	NoQueryableValue:     "No value available for Queryable '%s'.",
}

// FormatMessage fills in the template registered for key.
func FormatMessage(key MessageKey, args ...interface{}) string {
	tmpl, ok := messages[key]
	if !ok {
		return string(key)
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}
