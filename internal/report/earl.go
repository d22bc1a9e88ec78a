package report

import (
	"fmt"
	"io"
	"time"

	"github.com/roach88/rdftest/internal/rdf"
	"github.com/roach88/rdftest/internal/testcase"
)

const (
	earlAssertion   = rdf.NSEARL + "Assertion"
	earlTestResult  = rdf.NSEARL + "TestResult"
	earlSoftware    = rdf.NSEARL + "Software"
	earlTestSubject = rdf.NSEARL + "TestSubject"
	earlAssertor    = rdf.NSEARL + "Assertor"
	earlAssertedBy  = rdf.NSEARL + "assertedBy"
	earlSubject     = rdf.NSEARL + "subject"
	earlTest        = rdf.NSEARL + "test"
	earlResult      = rdf.NSEARL + "result"
	earlMode        = rdf.NSEARL + "mode"
	earlAutomatic   = rdf.NSEARL + "automatic"
	earlOutcome     = rdf.NSEARL + "outcome"
	earlPassed      = rdf.NSEARL + "passed"
	earlFailed      = rdf.NSEARL + "failed"
	earlInfo        = rdf.NSEARL + "info"

	doapProject     = rdf.NSDOAP + "Project"
	doapName        = rdf.NSDOAP + "name"
	doapHomepage    = rdf.NSDOAP + "homepage"
	doapLicense     = rdf.NSDOAP + "license"
	doapBugDatabase = rdf.NSDOAP + "bug-database"
	doapDescription = rdf.NSDOAP + "description"
	doapImplements  = rdf.NSDOAP + "implements"
	doapDeveloper   = rdf.NSDOAP + "developer"
	doapRelease     = rdf.NSDOAP + "release"
	doapRevision    = rdf.NSDOAP + "revision"
	doapProgLang    = rdf.NSDOAP + "programming-language"

	foafDocument     = rdf.NSFOAF + "Document"
	foafPerson       = rdf.NSFOAF + "Person"
	foafPrimaryTopic = rdf.NSFOAF + "primaryTopic"
	foafMaker        = rdf.NSFOAF + "maker"
	foafName         = rdf.NSFOAF + "name"
	foafHomepage     = rdf.NSFOAF + "homepage"

	dcIssued = rdf.NSDC + "issued"
	dcDate   = rdf.NSDC + "date"
	dcTitle  = rdf.NSDC + "title"
)

// Prefixes are the namespace prefixes used when serializing EARL reports.
var Prefixes = map[string]string{
	"earl": rdf.NSEARL,
	"doap": rdf.NSDOAP,
	"foaf": rdf.NSFOAF,
	"dc":   rdf.NSDC,
	"xsd":  rdf.NSXSD,
	"rdf":  rdf.NSRDF,
}

type graphBuilder struct {
	triples []rdf.Triple
}

func (g *graphBuilder) add(s rdf.Term, p string, o rdf.Term) {
	g.triples = append(g.triples, rdf.Triple{Subject: s, Predicate: rdf.IRI(p), Object: o})
}

func (g *graphBuilder) text(s rdf.Term, p, value string) {
	if value != "" {
		g.add(s, p, rdf.Literal(value, ""))
	}
}

func (g *graphBuilder) link(s rdf.Term, p, iri string) {
	if iri != "" {
		g.add(s, p, rdf.IRI(iri))
	}
}

func nodeOr(iri, label string) rdf.Term {
	if iri != "" {
		return rdf.IRI(iri)
	}
	return rdf.Blank(label)
}

func dateTime(t time.Time) rdf.Term {
	return rdf.Literal(t.UTC().Format(time.RFC3339), rdf.XSDDateTime)
}

// Earl builds the EARL graph attesting results for the application
// described by props. issued stamps the report and every result.
func Earl(results []testcase.Result, props *Properties, issued time.Time) ([]rdf.Triple, error) {
	if props == nil {
		return nil, &Error{Message: "EARL reporting requires tool properties"}
	}
	if props.ApplicationURI == "" {
		return nil, &Error{Message: "EARL properties must declare applicationUri"}
	}

	var g graphBuilder
	app := rdf.IRI(props.ApplicationURI)
	report := nodeOr(props.ReportURI, "report")

	g.add(report, rdf.RDFType, rdf.IRI(foafDocument))
	g.add(report, foafPrimaryTopic, app)
	g.add(report, dcIssued, dateTime(issued))
	if props.ApplicationNameFull != "" {
		g.text(report, dcTitle, fmt.Sprintf("%s test results", props.ApplicationNameFull))
	}

	g.add(app, rdf.RDFType, rdf.IRI(doapProject))
	g.add(app, rdf.RDFType, rdf.IRI(earlSoftware))
	g.add(app, rdf.RDFType, rdf.IRI(earlTestSubject))
	g.text(app, doapName, props.ApplicationNameFull)
	g.link(app, doapHomepage, props.ApplicationHomepageURL)
	g.link(app, doapLicense, props.LicenseURI)
	g.link(app, doapBugDatabase, props.ApplicationBugsURL)
	g.text(app, doapDescription, props.ApplicationDescription)
	g.text(app, doapProgLang, props.ProgrammingLanguage)
	for _, spec := range props.SpecificationURIs {
		g.link(app, doapImplements, spec)
	}
	if props.Version != "" {
		release := rdf.Blank("release")
		g.add(app, doapRelease, release)
		g.text(release, doapRevision, props.Version)
	}

	var assertor rdf.Term
	for i, a := range props.Authors {
		author := nodeOr(a.URI, fmt.Sprintf("author%d", i))
		if i == 0 {
			assertor = author
		}
		g.add(app, doapDeveloper, author)
		g.add(report, foafMaker, author)
		g.add(author, rdf.RDFType, rdf.IRI(foafPerson))
		g.add(author, rdf.RDFType, rdf.IRI(earlAssertor))
		g.text(author, foafName, a.Name)
		g.link(author, foafHomepage, a.Homepage)
	}
	if assertor == (rdf.Term{}) {
		assertor = app
	}

	for i, r := range results {
		assertion := rdf.Blank(fmt.Sprintf("assertion%d", i))
		result := rdf.Blank(fmt.Sprintf("result%d", i))

		g.add(assertion, rdf.RDFType, rdf.IRI(earlAssertion))
		g.add(assertion, earlAssertedBy, assertor)
		g.add(assertion, earlSubject, app)
		test := rdf.IRI(r.URI)
		if r.Anonymous {
			test = rdf.Blank(fmt.Sprintf("test%d", i))
		}
		g.add(assertion, earlTest, test)
		g.add(assertion, earlResult, result)
		g.add(assertion, earlMode, rdf.IRI(earlAutomatic))

		outcome := earlFailed
		if r.OK {
			outcome = earlPassed
		}
		g.add(result, rdf.RDFType, rdf.IRI(earlTestResult))
		g.add(result, earlOutcome, rdf.IRI(outcome))
		g.add(result, dcDate, dateTime(issued))
		if !r.OK {
			g.text(result, earlInfo, r.Detail)
		}
	}

	return g.triples, nil
}

// WriteEarl serializes an EARL graph as Turtle.
func WriteEarl(w io.Writer, triples []rdf.Triple) error {
	return rdf.WriteTurtle(w, triples, Prefixes)
}
