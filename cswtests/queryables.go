package cswtests

import (
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/ogccite/csw-dgiwg-contract-tests/cswxml"
	"github.com/ogccite/csw-dgiwg-contract-tests/sampler"
	"github.com/ogccite/csw-dgiwg-contract-tests/servicedef"
	"github.com/ogccite/csw-dgiwg-contract-tests/xmlutil"
)

// Queryable is a record property the GetRecords tests filter on.
type Queryable string

const (
	Identifier Queryable = "Identifier"
	Title      Queryable = "Title"
)

var allQueryables = []Queryable{Identifier, Title}

// Record titles are looked up in the Dublin Core vocabulary first, then in the
// ISO citation.
var titleExpressions = []string{
	"//dc:title",
	"//gmd:identificationInfo//gmd:citation//gmd:title/gco:CharacterString",
}

// CreateFilter derives a filter for the queryable from the sampled records. The
// identifier filter always uses the ISO queryable and the title filter the Dublin
// Core one, whatever the requested output schema. The second return value is
// false if no sampled record provides a value.
func (q Queryable) CreateFilter(records *sampler.Records) (cswxml.Filter, bool) {
	switch q {
	case Identifier:
		ids := records.IDs()
		if len(ids) == 0 {
			return cswxml.Filter{}, false
		}
		return cswxml.CreateIdentifierFilter(servicedef.ISO19139, ids[0]), true
	case Title:
		title, ok := firstTitle(records)
		if !ok {
			return cswxml.Filter{}, false
		}
		return cswxml.CreateTitleFilter(servicedef.DublinCore, title), true
	}
	return cswxml.Filter{}, false
}

// firstTitle returns the first title that is not blank, exactly as the catalogue
// stores it, so that an equality filter on it matches the record.
func firstTitle(records *sampler.Records) (string, bool) {
	bindings := servicedef.StandardBindings()
	var title string
	records.Each(func(_ string, record *xmlquery.Node) bool {
		for _, expr := range titleExpressions {
			v, err := xmlutil.EvaluateString(record, expr, bindings)
			if err == nil && strings.TrimSpace(v) != "" {
				title = v
				return false
			}
		}
		return true
	})
	return title, title != ""
}
