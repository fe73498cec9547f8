package browser

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// PageSource returns the HTML for url
type PageSource func(ctx context.Context, url string) (io.ReadCloser, error)

// FileSource serves the saved page at path for any url
func FileSource(path string) PageSource {
	return func(_ context.Context, _ string) (io.ReadCloser, error) {
		return os.Open(path)
	}
}

// StaticSource serves in-memory pages keyed by url
func StaticSource(pages map[string]string) PageSource {
	return func(_ context.Context, url string) (io.ReadCloser, error) {
		html, ok := pages[url]
		if !ok {
			return nil, fmt.Errorf("no page for %s", url)
		}
		return io.NopCloser(strings.NewReader(html)), nil
	}
}

// DocumentSession is a Session over static HTML. Selectors are evaluated by
// cascadia the same way a browser's querySelector would, without scripts.
type DocumentSession struct {
	source PageSource

	mu  sync.Mutex
	doc *goquery.Document
}

// NewDocumentSession returns a session that loads pages from source
func NewDocumentSession(source PageSource) *DocumentSession {
	return &DocumentSession{source: source}
}

// Navigate fetches and parses the page for url
func (s *DocumentSession) Navigate(ctx context.Context, url string) error {
	rc, err := s.source(ctx, url)
	if err != nil {
		return fmt.Errorf("load %s: %w", url, err)
	}
	defer rc.Close()

	doc, err := goquery.NewDocumentFromReader(rc)
	if err != nil {
		return fmt.Errorf("parse %s: %w", url, err)
	}

	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
	return nil
}

func (s *DocumentSession) root() (*goquery.Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return nil, ErrNoPage
	}
	return s.doc.Selection, nil
}

// FindFirst implements Scope against the whole document
func (s *DocumentSession) FindFirst(ctx context.Context, selector string) (Element, error) {
	root, err := s.root()
	if err != nil {
		return nil, err
	}
	return findFirst(ctx, root, selector)
}

// FindAll implements Scope against the whole document
func (s *DocumentSession) FindAll(ctx context.Context, selector string) ([]Element, error) {
	root, err := s.root()
	if err != nil {
		return nil, err
	}
	return findAll(ctx, root, selector)
}

// Close drops the parsed document
func (s *DocumentSession) Close() error {
	s.mu.Lock()
	s.doc = nil
	s.mu.Unlock()
	return nil
}

func match(ctx context.Context, scope *goquery.Selection, selector string) (*goquery.Selection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("compile selector %q: %w", selector, err)
	}
	return scope.FindMatcher(sel), nil
}

func findFirst(ctx context.Context, scope *goquery.Selection, selector string) (Element, error) {
	found, err := match(ctx, scope, selector)
	if err != nil {
		return nil, err
	}
	if found.Length() == 0 {
		return nil, ErrNotFound
	}
	return documentElement{sel: found.First()}, nil
}

func findAll(ctx context.Context, scope *goquery.Selection, selector string) ([]Element, error) {
	found, err := match(ctx, scope, selector)
	if err != nil {
		return nil, err
	}
	elements := make([]Element, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		elements = append(elements, documentElement{sel: s})
	})
	return elements, nil
}

type documentElement struct {
	sel *goquery.Selection
}

func (e documentElement) FindFirst(ctx context.Context, selector string) (Element, error) {
	return findFirst(ctx, e.sel, selector)
}

func (e documentElement) FindAll(ctx context.Context, selector string) ([]Element, error) {
	return findAll(ctx, e.sel, selector)
}

func (e documentElement) Text(_ context.Context) (string, error) {
	return e.sel.Text(), nil
}

// DumpHTML returns the markup of the loaded document
func (s *DocumentSession) DumpHTML(_ context.Context) (string, error) {
	root, err := s.root()
	if err != nil {
		return "", err
	}
	return root.Html()
}
