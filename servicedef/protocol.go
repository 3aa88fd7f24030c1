package servicedef

// Service and version values sent with every request.
const (
	ServiceName    = "CSW"
	ServiceVersion = "2.0.2"
	FilterVersion  = "1.1.0"
)

// Operation names advertised in the capabilities document.
const (
	OperationGetCapabilities = "GetCapabilities"
	OperationDescribeRecord  = "DescribeRecord"
	OperationGetRecords      = "GetRecords"
	OperationGetRecordByID   = "GetRecordById"
	OperationGetDomain       = "GetDomain"
	OperationTransaction     = "Transaction"
	OperationHarvest         = "Harvest"
)

// Media types accepted for XML request and response entities.
const (
	MediaTypeApplicationXML = "application/xml"
	MediaTypeTextXML        = "text/xml"
)

// Parameter names used in the operations metadata of the capabilities document.
const (
	ParameterOutputSchema   = "outputSchema"
	ParameterTypeNames      = "typeNames"
	ParameterElementSetName = "ElementSetName"
)

// ProtocolBinding is an HTTP method through which an operation is exposed.
type ProtocolBinding string

const (
	GET  ProtocolBinding = "GET"
	POST ProtocolBinding = "POST"
)

// OutputSchema selects the element vocabulary of the records in a GetRecords
// request and response.
type OutputSchema int

const (
	// DublinCore requests csw:Record results.
	DublinCore OutputSchema = iota
	// ISO19139 requests gmd:MD_Metadata results.
	ISO19139
)

// URI is the value of the outputSchema request parameter.
func (s OutputSchema) URI() string {
	if s == ISO19139 {
		return NamespaceGMD
	}
	return NamespaceCSW
}

// TypeName is the qualified name of the record element, used as typeNames.
func (s OutputSchema) TypeName() string {
	if s == ISO19139 {
		return "gmd:MD_Metadata"
	}
	return "csw:Record"
}

func (s OutputSchema) String() string {
	if s == ISO19139 {
		return "ISO19139"
	}
	return "DublinCore"
}

// ElementSetName is the requested verbosity of returned records.
type ElementSetName string

const (
	Brief   ElementSetName = "brief"
	Summary ElementSetName = "summary"
	Full    ElementSetName = "full"
)
