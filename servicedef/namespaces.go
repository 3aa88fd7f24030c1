package servicedef

// Namespace URIs used by CSW 2.0.2 and the ISO metadata schemas.
const (
	NamespaceCSW   = "http://www.opengis.net/cat/csw/2.0.2"
	NamespaceOGC   = "http://www.opengis.net/ogc"
	NamespaceOWS   = "http://www.opengis.net/ows"
	NamespaceOWS11 = "http://www.opengis.net/ows/1.1"
	NamespaceDC    = "http://purl.org/dc/elements/1.1/"
	NamespaceDCT   = "http://purl.org/dc/terms/"
	NamespaceGMD   = "http://www.isotc211.org/2005/gmd"
	NamespaceGCO   = "http://www.isotc211.org/2005/gco"
	NamespaceSRV   = "http://www.isotc211.org/2005/srv"
	NamespaceGML   = "http://www.opengis.net/gml"
	NamespaceAPISO = "http://www.opengis.net/cat/csw/apiso/1.0"
	NamespaceXLink = "http://www.w3.org/1999/xlink"
	NamespaceXSI   = "http://www.w3.org/2001/XMLSchema-instance"
	NamespaceXSD   = "http://www.w3.org/2001/XMLSchema"
)

// NamespaceBindings maps prefixes to namespace URIs for XPath evaluation.
type NamespaceBindings map[string]string

// StandardBindings returns a fresh table with all the prefixes the test suite
// uses in its XPath expressions.
func StandardBindings() NamespaceBindings {
	return NamespaceBindings{
		"csw":   NamespaceCSW,
		"ogc":   NamespaceOGC,
		"ows":   NamespaceOWS,
		"ows11": NamespaceOWS11,
		"dc":    NamespaceDC,
		"dct":   NamespaceDCT,
		"gmd":   NamespaceGMD,
		"gco":   NamespaceGCO,
		"srv":   NamespaceSRV,
		"gml":   NamespaceGML,
		"apiso": NamespaceAPISO,
		"xlink": NamespaceXLink,
		"xsi":   NamespaceXSI,
	}
}
