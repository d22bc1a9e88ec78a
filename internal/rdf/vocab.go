package rdf

// Namespace IRIs used by test manifests and attestation reports.
const (
	NSRDF   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NSRDFS  = "http://www.w3.org/2000/01/rdf-schema#"
	NSXSD   = "http://www.w3.org/2001/XMLSchema#"
	NSMF    = "http://www.w3.org/2001/sw/DataAccess/tests/test-manifest#"
	NSQT    = "http://www.w3.org/2001/sw/DataAccess/tests/test-query#"
	NSUT    = "http://www.w3.org/2009/sparql/tests/test-update#"
	NSDAWGT = "http://www.w3.org/2001/sw/DataAccess/tests/test-dawg#"
	NSRDFT  = "http://www.w3.org/ns/rdftest#"
	NSEARL  = "http://www.w3.org/ns/earl#"
	NSDOAP  = "http://usefulinc.com/ns/doap#"
	NSFOAF  = "http://xmlns.com/foaf/0.1/"
	NSDC    = "http://purl.org/dc/terms/"
)

// RDF and RDFS terms.
const (
	RDFType     = NSRDF + "type"
	RDFFirst    = NSRDF + "first"
	RDFRest     = NSRDF + "rest"
	RDFNil      = NSRDF + "nil"
	RDFSLabel   = NSRDFS + "label"
	RDFSComment = NSRDFS + "comment"

	XSDString   = NSXSD + "string"
	XSDDateTime = NSXSD + "dateTime"
)

// Test manifest vocabulary.
const (
	MFManifest      = NSMF + "Manifest"
	MFInclude       = NSMF + "include"
	MFEntries       = NSMF + "entries"
	MFName          = NSMF + "name"
	MFAction        = NSMF + "action"
	MFResult        = NSMF + "result"
	MFSpecification = NSMF + "specification"

	QTQuery   = NSQT + "query"
	UTRequest = NSUT + "request"

	DAWGTApproval = NSDAWGT + "approval"
)
