// Package validation checks response entities against XML Schema and XPath
// expectations.
package validation

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/lestrrat-go/libxml2"
	"github.com/lestrrat-go/libxml2/xsd"
)

const schemaSetNamespace = "urn:x-csw-contract-tests:schema-set"

// ErrValidatorUnavailable is returned by a validator that could not be compiled.
var ErrValidatorUnavailable = errors.New("schema validator is not available")

// Validator checks an XML entity against a compiled schema set.
type Validator interface {
	Validate(entity []byte) error
}

// Violations lists the reasons a document does not conform to a schema set.
type Violations struct {
	Errors []error
}

func (v *Violations) Error() string {
	lines := make([]string, 0, len(v.Errors))
	for _, e := range v.Errors {
		lines = append(lines, strings.TrimSpace(e.Error()))
	}
	return strings.Join(lines, "\n")
}

// SchemaValidator validates documents against one or more schema namespaces. It
// can be reused but serializes concurrent calls.
type SchemaValidator struct {
	namespaces []string
	schema     *xsd.Schema
	lock       sync.Mutex
}

// Compile builds a validator for the given namespaces. Each namespace is looked up
// with resolver; imports between the resolved schema files are resolved relative to
// those files.
func Compile(resolver Resolver, namespaces ...string) (*SchemaValidator, error) {
	if len(namespaces) == 0 {
		return nil, errors.New("no schema namespaces to compile")
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	fmt.Fprintf(&buf, `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="%s" elementFormDefault="qualified">`,
		schemaSetNamespace)
	buf.WriteString("\n")
	for _, ns := range namespaces {
		location, ok := resolver.Resolve(ns)
		if !ok {
			return nil, fmt.Errorf("no schema found for namespace %s", ns)
		}
		buf.WriteString(`  <xs:import namespace="`)
		_ = xml.EscapeText(&buf, []byte(ns))
		buf.WriteString(`" schemaLocation="`)
		_ = xml.EscapeText(&buf, []byte(location))
		buf.WriteString("\"/>\n")
	}
	buf.WriteString("</xs:schema>\n")

	schema, err := xsd.Parse(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to compile schemas for %s: %w", strings.Join(namespaces, ", "), err)
	}
	return &SchemaValidator{namespaces: namespaces, schema: schema}, nil
}

// Namespaces returns the namespaces the validator was compiled for.
func (v *SchemaValidator) Namespaces() []string {
	return append([]string(nil), v.namespaces...)
}

// Validate returns nil if entity conforms, *Violations if it does not, and
// ErrValidatorUnavailable for a nil validator.
func (v *SchemaValidator) Validate(entity []byte) error {
	if v == nil || v.schema == nil {
		return ErrValidatorUnavailable
	}
	doc, err := libxml2.Parse(entity)
	if err != nil {
		return &Violations{Errors: []error{fmt.Errorf("entity is not well-formed XML: %w", err)}}
	}
	defer doc.Free()

	v.lock.Lock()
	defer v.lock.Unlock()
	if err := v.schema.Validate(doc); err != nil {
		var sve xsd.SchemaValidationError
		if errors.As(err, &sve) && len(sve.Errors()) > 0 {
			return &Violations{Errors: sve.Errors()}
		}
		return &Violations{Errors: []error{err}}
	}
	return nil
}

// Close releases the compiled schema.
func (v *SchemaValidator) Close() {
	if v == nil {
		return
	}
	v.lock.Lock()
	defer v.lock.Unlock()
	if v.schema != nil {
		v.schema.Free()
		v.schema = nil
	}
}
