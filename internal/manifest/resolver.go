package manifest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/rdftest/internal/fetch"
	"github.com/roach88/rdftest/internal/rdf"
	"github.com/roach88/rdftest/internal/testcase"
)

// Resolver loads manifests.
type Resolver struct {
	Fetcher fetch.Fetcher
	// Parser defaults to rdf.DecoderParser.
	Parser rdf.Parser
	// Registry defaults to testcase.Default().
	Registry *testcase.Registry
	Logger   *slog.Logger
	// Concurrency bounds how many entries of one manifest are built at
	// once. Zero or less means no limit.
	Concurrency int
}

// Resolve loads the manifest at url and everything it includes.
//
// It fails with a *ResolutionError if the root manifest resource cannot be
// found after loading, or if an include is not a document IRI.
func (r *Resolver) Resolve(ctx context.Context, url string) (*Manifest, error) {
	s := r.newResolution()

	if err := s.load(ctx, url); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	final := s.finalURL(url)
	root, ok := s.lookup(url)
	if !ok || !isDescribed(root) {
		return nil, &ResolutionError{
			URL:    url,
			Reason: fmt.Sprintf("could not find a resource %s in the document at %s", url, final),
			Err:    s.failure(url),
		}
	}

	m := s.materialize(ctx, root, nil)
	m.Failures = s.failures()
	return m, nil
}

func (r *Resolver) newResolution() *resolution {
	parser := r.Parser
	if parser == nil {
		parser = rdf.DecoderParser{}
	}
	registry := r.Registry
	if registry == nil {
		registry = testcase.Default()
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &resolution{
		fetcher:   newMemoFetcher(r.Fetcher),
		parser:    parser,
		registry:  registry,
		logger:    logger,
		limit:     r.Concurrency,
		graph:     rdf.NewGraph(),
		manifests: make(map[string]*Manifest),
	}
}

// resolution is the state of one Resolve call.
type resolution struct {
	fetcher  *memoFetcher
	parser   rdf.Parser
	registry *testcase.Registry
	logger   *slog.Logger
	limit    int
	graph    *rdf.Graph

	// visited holds every URL whose load has started, by request and by
	// final URL.
	visited sync.Map
	// final maps request URLs to post-redirect URLs.
	final sync.Map
	// failed maps request URLs to the error that dropped them.
	failed sync.Map

	mu        sync.Mutex
	manifests map[string]*Manifest
}

// load fetches, parses and merges the document at url, then loads its
// includes concurrently. Only an invalid include term is returned as an
// error; fetch and parse failures are recorded and logged.
func (s *resolution) load(ctx context.Context, url string) error {
	if _, seen := s.visited.LoadOrStore(url, true); seen {
		s.logger.Debug("document already loaded", "url", url)
		return nil
	}

	doc, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.fail(url, err)
		return nil
	}
	if doc.URL != url {
		s.final.Store(url, doc.URL)
		if _, seen := s.visited.LoadOrStore(doc.URL, true); seen {
			return nil
		}
	}

	triples, err := s.parser.Parse(ctx, doc.URL, doc.Body, rdf.FormatFor(doc.ContentType, doc.URL))
	if err != nil {
		s.fail(url, err)
		return nil
	}
	s.graph.Import(doc.URL, triples)
	s.logger.Debug("document loaded", "url", doc.URL, "triples", len(triples))

	includes, err := s.includes(url)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, inc := range includes {
		g.Go(func() error {
			return s.load(gctx, inc)
		})
	}
	return g.Wait()
}

// includes returns the document IRIs listed by mf:include on the manifest
// resource of url.
func (s *resolution) includes(url string) ([]string, error) {
	res, ok := s.lookup(url)
	if !ok {
		return nil, nil
	}

	var out []string
	for _, val := range res.Property(rdf.MFInclude) {
		items, isList := val.List()
		if !isList {
			items = []*rdf.Resource{val}
		}
		for _, item := range items {
			if !item.IsIRI() {
				return nil, &ResolutionError{
					URL:    s.finalURL(url),
					Reason: fmt.Sprintf("found invalid manifest term %s", item.Term),
				}
			}
			out = append(out, item.Value())
		}
	}
	return out, nil
}

// materialize builds the Manifest of res, reusing the one already built for
// the same resource.
func (s *resolution) materialize(ctx context.Context, res *rdf.Resource, inherited []string) *Manifest {
	s.mu.Lock()
	if m, ok := s.manifests[res.ID()]; ok {
		s.mu.Unlock()
		return m
	}
	m := &Manifest{
		URI:            res.Value(),
		Label:          res.Text(rdf.RDFSLabel),
		Comment:        res.Text(rdf.RDFSComment),
		Specifications: testcase.MergeSpecifications(inherited, res.Texts(rdf.MFSpecification)),
	}
	s.manifests[res.ID()] = m
	s.mu.Unlock()

	m.Entries = s.entries(ctx, m, res)

	for _, val := range res.Property(rdf.MFInclude) {
		items, isList := val.List()
		if !isList {
			items = []*rdf.Resource{val}
		}
		for _, item := range items {
			target, ok := s.lookup(item.Value())
			if !ok {
				target = item
			}
			m.Includes = append(m.Includes, s.materialize(ctx, target, m.Specifications))
		}
	}
	return m
}

// entries builds the test cases listed by mf:entries, concurrently up to the
// resolver's limit and in list order.
func (s *resolution) entries(ctx context.Context, m *Manifest, res *rdf.Resource) []testcase.TestCase {
	var resources []*rdf.Resource
	for _, val := range res.Property(rdf.MFEntries) {
		items, ok := val.List()
		if !ok {
			s.logger.Warn("mf:entries is not a list", "manifest", m.URI, "value", val.Term.String())
			continue
		}
		resources = append(resources, items...)
	}

	env := testcase.Env{
		Registry:       s.registry,
		Fetcher:        s.fetcher,
		Specifications: m.Specifications,
	}

	out := make([]testcase.TestCase, len(resources))
	var g errgroup.Group
	if s.limit > 0 {
		g.SetLimit(s.limit)
	}
	for i, r := range resources {
		g.Go(func() error {
			out[i] = s.registry.FromResource(ctx, env, r)
			return nil
		})
	}
	_ = g.Wait()

	for _, tc := range out {
		if e, ok := tc.(*testcase.Errored); ok {
			s.logger.Warn("invalid test case", "test", tc.Info().URI, "error", e.Err)
		}
	}
	return out
}

// lookup finds the resource a document URL describes, preferring the
// post-redirect URL.
func (s *resolution) lookup(url string) (*rdf.Resource, bool) {
	if res, ok := s.graph.Resource(s.finalURL(url)); ok {
		return res, true
	}
	return s.graph.Resource(url)
}

// isDescribed reports whether a loaded document made statements about res,
// as opposed to only mentioning it.
func isDescribed(res *rdf.Resource) bool {
	return len(res.Types()) > 0 || res.First(rdf.MFEntries) != nil || res.First(rdf.MFInclude) != nil
}

func (s *resolution) finalURL(url string) string {
	if v, ok := s.final.Load(url); ok {
		return v.(string)
	}
	return url
}

func (s *resolution) fail(url string, err error) {
	s.logger.Error("failed to load document", "url", url, "error", err)
	s.failed.Store(url, err)
}

func (s *resolution) failure(url string) error {
	if v, ok := s.failed.Load(url); ok {
		return v.(error)
	}
	return nil
}

func (s *resolution) failures() []LoadFailure {
	var out []LoadFailure
	s.failed.Range(func(k, v any) bool {
		out = append(out, LoadFailure{URL: k.(string), Err: v.(error)})
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].URL < out[j].URL })
	return out
}
