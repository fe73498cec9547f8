// Package browser defines the page session the extractor reads from and
// its two implementations: a live Chrome tab driven through chromedp and a
// static HTML document parsed with goquery.
package browser

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by FindFirst when no element matches
	ErrNotFound = errors.New("element not found")
	// ErrNoPage is returned by lookups issued before a successful Navigate
	ErrNoPage = errors.New("no page loaded")
)

// Scope is anything selector queries can run against: the whole document
// or a single element.
type Scope interface {
	// FindFirst returns the first element matching selector, or ErrNotFound
	FindFirst(ctx context.Context, selector string) (Element, error)
	// FindAll returns every matching element in document order. No match is
	// an empty slice, not an error.
	FindAll(ctx context.Context, selector string) ([]Element, error)
}

// Element is a matched node. It is also a scope for nested queries.
type Element interface {
	Scope
	Text(ctx context.Context) (string, error)
}

// Session is a loaded page plus the resources behind it. A session is owned
// by one caller at a time and must be closed on every exit path.
type Session interface {
	Scope
	// Navigate loads url and returns once the page has settled
	Navigate(ctx context.Context, url string) error
	Close() error
}

// HTMLDumper is implemented by sessions that can return the loaded markup
type HTMLDumper interface {
	DumpHTML(ctx context.Context) (string, error)
}
