// Package resolver downloads a WSDL document together with every WSDL
// and XML Schema document it imports, directly or transitively, and
// writes them to a directory with their imports rewritten to point at
// the local copies.
//
// Each distinct URL is fetched once per run, however many documents
// import it and whether or not the imports form cycles. Every reference
// to it, including those seen after it was fetched, is rewritten to the
// same local file name. Documents are written only after the whole
// import graph has been fetched, children before the documents that
// import them, with the root document last.
package resolver // import "github.com/CognitoIQ/wsdlfetch/resolver"

import (
	"context"
	"os"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/CognitoIQ/wsdlfetch/internal/dependency"
	"github.com/CognitoIQ/wsdlfetch/wsdl"
	"github.com/CognitoIQ/wsdlfetch/xmltree"
	"github.com/CognitoIQ/wsdlfetch/xsd"
)

// A Result lists the files written by a run.
type Result struct {
	// Root is the root document's file.
	Root Artifact
	// Files holds every written file in the order written. The
	// root document is last.
	Files []Artifact
}

// Process fetches the WSDL document at rootURL and resolves its imports
// as described for Resolve. The output directory is created, along with
// any missing parents, before anything is fetched.
func (cfg *Config) Process(ctx context.Context, rootURL, outputDir string) (*Result, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, &WriteError{Path: outputDir, Err: err}
	}
	cfg.logger.Info().Str("url", rootURL).Msg("Reading")
	root, err := cfg.source.Fetch(ctx, rootURL)
	if err != nil {
		return nil, err
	}
	return cfg.Resolve(ctx, root, rootURL, outputDir)
}

// Resolve fetches every document imported by root, which was retrieved
// from rootURL, rewrites the imports of root and the fetched documents
// in place to refer to local files, and writes all of them to outputDir.
// Imports without a location are left alone.
//
// The first error stops the run. If a document cannot be fetched or
// named, nothing is written. If a write fails, the files already
// written are left in place, and the root document is not written.
func (cfg *Config) Resolve(ctx context.Context, root *xmltree.Element, rootURL, outputDir string) (*Result, error) {
	name, err := RootFilename(rootURL, root, cfg.wsdlPrefix)
	if err != nil {
		return nil, err
	}
	s := newSession(cfg)
	// Claimed up front so that imports of the root URL are
	// rewritten to the root's own file.
	if _, _, err := s.ledger.Claim(rootURL, name); err != nil {
		return nil, err
	}
	doc := &document{url: rootURL, filename: name, root: root}
	s.docs[rootURL] = doc

	if err := s.discover(ctx, doc); err != nil {
		return nil, err
	}
	return s.write(rootURL, outputDir)
}

type document struct {
	url, filename string
	root          *xmltree.Element
}

// A session holds the state of one call to Resolve.
type session struct {
	cfg    *Config
	ledger *Ledger
	sem    chan struct{}

	mu    sync.Mutex
	graph dependency.Graph
	docs  map[string]*document
}

func newSession(cfg *Config) *session {
	return &session{
		cfg:    cfg,
		ledger: NewLedger(),
		sem:    make(chan struct{}, cfg.concurrency),
		docs:   make(map[string]*document),
	}
}

type reference struct {
	xsd.Ref
	kind Kind
}

func (s *session) references(doc *document) []reference {
	var refs []reference
	for _, r := range wsdl.Imports(doc.root, s.cfg.wsdlPrefix) {
		refs = append(refs, reference{r, WSDL})
	}
	for _, r := range xsd.Imports(doc.root, s.cfg.xsdPrefix) {
		refs = append(refs, reference{r, XSD})
	}
	return refs
}

// discover rewrites the imports of doc, then fetches and discovers
// the documents it is the first to import. Only the goroutine that
// discovers a document modifies its tree.
func (s *session) discover(ctx context.Context, doc *document) error {
	refs := s.references(doc)
	var children []*document
	for _, ref := range refs {
		if ref.Location == "" {
			continue
		}
		target, err := resolveReference(doc.url, ref.Location)
		if err != nil {
			return err
		}
		filename, first, err := s.claim(target, ref.kind)
		if err != nil {
			return err
		}
		ref.Relocate(filename)
		s.addEdge(doc.url, target)
		if first {
			children = append(children, &document{url: target, filename: filename})
		} else {
			s.cfg.logger.Debug().Str("url", target).Str("file", filename).Msg("Already downloaded")
		}
	}
	if len(children) == 0 {
		return nil
	}
	s.cfg.logger.Info().
		Str("document", wsdl.Label(doc.root, s.cfg.wsdlPrefix)).
		Int("imports", len(children)).
		Msg("Fetching imported documents")

	p := pool.New().
		WithMaxGoroutines(s.cfg.concurrency).
		WithErrors().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()
	for _, child := range children {
		child := child
		p.Go(func(ctx context.Context) error {
			root, err := s.fetch(ctx, child.url)
			if err != nil {
				return err
			}
			child.root = root
			s.register(child)
			return s.discover(ctx, child)
		})
	}
	return p.Wait()
}

func (s *session) claim(url string, kind Kind) (filename string, first bool, err error) {
	if name, ok := s.ledger.Filename(url); ok {
		return name, false, nil
	}
	name, err := ChildFilename(url, kind)
	if err != nil {
		return "", false, err
	}
	return s.ledger.Claim(url, name)
}

func (s *session) fetch(ctx context.Context, url string) (*xmltree.Element, error) {
	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-s.sem }()

	s.cfg.logger.Info().Str("url", url).Msg("Reading")
	return s.cfg.source.Fetch(ctx, url)
}

func (s *session) register(doc *document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.url] = doc
}

func (s *session) addEdge(from, to string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph.Add(from, to)
}

// write writes every document reachable from the root, each after the
// documents it imports. Import cycles are broken arbitrarily but
// deterministically.
func (s *session) write(rootURL, outputDir string) (*Result, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, &WriteError{Path: outputDir, Err: err}
	}
	var result Result
	err := s.graph.Walk(rootURL, func(url string) error {
		doc := s.docs[url]
		s.cfg.logger.Info().Str("file", doc.filename).Msg("Writing")
		path, err := writeFile(outputDir, doc.filename, Render(doc.root, s.cfg.indentWidth))
		if err != nil {
			return err
		}
		result.Files = append(result.Files, Artifact{URL: url, Filename: doc.filename, Path: path})
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Root = result.Files[len(result.Files)-1]
	return &result, nil
}
