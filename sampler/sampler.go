// Package sampler takes a small sample of the metadata records hosted by the
// catalogue under test, so that queries can use values the catalogue actually
// contains.
package sampler

import (
	"context"
	"encoding/xml"
	"log/slog"
	"strings"
	"sync"

	"github.com/antchfx/xmlquery"

	"github.com/ogccite/csw-dgiwg-contract-tests/client"
	"github.com/ogccite/csw-dgiwg-contract-tests/cswxml"
	"github.com/ogccite/csw-dgiwg-contract-tests/servicedef"
	"github.com/ogccite/csw-dgiwg-contract-tests/xmlutil"
)

// DefaultSampleSize is the maxRecords value of the sampling request.
const DefaultSampleSize = 10

// Transport is the part of the CSW client the sampler uses.
type Transport interface {
	SubmitPost(ctx context.Context, endpoint string, body []byte, mediaTypes ...string) (*client.Response, error)
}

// DataSampler queries the catalogue once and caches what it found.
type DataSampler struct {
	transport  Transport
	endpoint   string
	sampleSize int
	logger     *slog.Logger
	once       sync.Once
	records    *Records
}

// Option customizes a DataSampler.
type Option func(*DataSampler)

// WithSampleSize sets the maximum number of records requested.
func WithSampleSize(n int) Option {
	return func(s *DataSampler) {
		if n > 0 {
			s.sampleSize = n
		}
	}
}

// WithLogger sets the logger for sampling diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *DataSampler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a sampler for the POST binding of GetRecords at endpoint. An empty
// endpoint yields an empty sample without contacting the catalogue.
func New(transport Transport, endpoint string, options ...Option) *DataSampler {
	s := &DataSampler{
		transport:  transport,
		endpoint:   endpoint,
		sampleSize: DefaultSampleSize,
		logger:     slog.Default(),
	}
	for _, o := range options {
		o(s)
	}
	return s
}

// Records returns the sampled records, querying the catalogue on the first call
// only. Failures are logged and yield an empty set.
func (s *DataSampler) Records(ctx context.Context) *Records {
	s.once.Do(func() {
		s.records = s.sample(ctx)
	})
	return s.records
}

func (s *DataSampler) sample(ctx context.Context) *Records {
	records := NewRecords()
	if s.endpoint == "" {
		s.logger.Warn("no POST binding for GetRecords, catalogue will not be sampled")
		return records
	}

	req := cswxml.CreateGetRecordsRequest(servicedef.DublinCore, servicedef.Full, nil,
		cswxml.WithMaxRecords(s.sampleSize), cswxml.WithStartPosition(1))

	resp, err := s.transport.SubmitPost(ctx, s.endpoint, req.Bytes())
	if err != nil {
		s.logger.Warn("failed to sample catalogue", "url", s.endpoint, "error", err)
		return records
	}
	if resp.StatusCode != 200 {
		s.logger.Warn("failed to sample catalogue", "url", s.endpoint, "status", resp.StatusCode)
		return records
	}
	doc, err := xmlutil.Parse(resp.Body)
	if err != nil {
		s.logger.Warn("sampled GetRecords response is not XML", "url", s.endpoint, "error", err)
		return records
	}

	extractRecords(doc, records)
	if records.Len() == 0 {
		s.logger.Warn("catalogue returned no records with identifiers", "url", s.endpoint)
	} else {
		s.logger.Info("sampled catalogue", "url", s.endpoint, "records", records.Len())
	}
	return records
}

// recordIdentifiers maps the record elements a GetRecords response may carry to
// the path of their identifier.
var recordIdentifiers = map[xml.Name]string{
	{Space: servicedef.NamespaceCSW, Local: "Record"}:        "dc:identifier",
	{Space: servicedef.NamespaceCSW, Local: "SummaryRecord"}: "dc:identifier",
	{Space: servicedef.NamespaceCSW, Local: "BriefRecord"}:   "dc:identifier",
	{Space: servicedef.NamespaceGMD, Local: "MD_Metadata"}:   "gmd:fileIdentifier/gco:CharacterString",
}

// extractRecords adds the records of a GetRecords response to records in
// document order. XPath expressions evaluated against a record node only see
// that record's subtree.
func extractRecords(doc *xmlquery.Node, records *Records) {
	bindings := servicedef.StandardBindings()
	v, err := xmlutil.EvaluateXPath(doc, "//csw:SearchResults/*", bindings, xmlutil.NodeSet)
	if err != nil {
		return
	}
	for _, n := range v.([]*xmlquery.Node) {
		path, ok := recordIdentifiers[xml.Name{Space: n.NamespaceURI, Local: n.Data}]
		if !ok {
			continue
		}
		id, err := xmlutil.EvaluateString(n, path, bindings)
		if err != nil {
			continue
		}
		records.Add(strings.TrimSpace(id), n)
	}
}
