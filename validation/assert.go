package validation

import (
	"errors"

	"github.com/antchfx/xmlquery"
	"github.com/stretchr/testify/require"

	"github.com/ogccite/csw-dgiwg-contract-tests/servicedef"
	"github.com/ogccite/csw-dgiwg-contract-tests/xmlutil"
)

// AssertXPath fails the test and stops it if expr, evaluated against node, yields
// an empty node-set or false.
func AssertXPath(t require.TestingT, expr string, node *xmlquery.Node, bindings map[string]string, message string) {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	v, err := xmlutil.EvaluateXPath(node, expr, bindings, xmlutil.Boolean)
	if err != nil {
		require.Fail(t, servicedef.FormatMessage(servicedef.XPathError, message, expr), err.Error())
	}
	if matched, _ := v.(bool); !matched {
		require.Fail(t, servicedef.FormatMessage(servicedef.XPathError, message, expr))
	}
}

// AssertSchemaValid fails the test and stops it if entity does not conform to the
// validator's schemas. Every reported violation is included in the failure message.
func AssertSchemaValid(t require.TestingT, v Validator, entity []byte) {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	if v == nil {
		require.Fail(t, ErrValidatorUnavailable.Error())
	}
	err := v.Validate(entity)
	if err == nil {
		return
	}
	var violations *Violations
	if errors.As(err, &violations) {
		require.Fail(t, servicedef.FormatMessage(servicedef.NotSchemaValid, len(violations.Errors), violations.Error()))
	}
	require.Fail(t, err.Error())
}
