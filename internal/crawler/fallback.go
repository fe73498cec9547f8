package crawler

import (
	"context"
	"strings"

	"linkedin-extractor/internal/browser"
)

// Lookup is the outcome of one selector attempt: either Found with the
// trimmed text of the match, or NotFound.
type Lookup struct {
	Text  string
	Found bool
}

// NotFound is the Lookup of an attempt that matched nothing
var NotFound = Lookup{}

// Found wraps text as a successful Lookup
func Found(text string) Lookup {
	return Lookup{Text: text, Found: true}
}

// Attempt is a single lookup in a selector chain
type Attempt func(ctx context.Context) Lookup

// FirstFound evaluates attempts in order and returns the first Found lookup
// together with its index. Attempts after it are never evaluated. When every
// attempt misses it returns NotFound and -1.
func FirstFound(ctx context.Context, attempts ...Attempt) (Lookup, int) {
	for i, attempt := range attempts {
		if l := attempt(ctx); l.Found {
			return l, i
		}
	}
	return NotFound, -1
}

// TextAt looks up the first element matching selector inside scope and
// reads its trimmed text. Any lookup or read error is a miss.
func TextAt(scope browser.Scope, selector string) Attempt {
	return func(ctx context.Context) Lookup {
		el, err := scope.FindFirst(ctx, selector)
		if err != nil {
			return NotFound
		}
		text, err := el.Text(ctx)
		if err != nil {
			return NotFound
		}
		return Found(strings.TrimSpace(text))
	}
}

// TextChain builds one TextAt attempt per selector of chain
func TextChain(scope browser.Scope, chain []string) []Attempt {
	attempts := make([]Attempt, 0, len(chain))
	for _, selector := range chain {
		attempts = append(attempts, TextAt(scope, selector))
	}
	return attempts
}

// firstText runs chain against scope and returns the winning text, or ""
func firstText(ctx context.Context, scope browser.Scope, chain []string) string {
	l, _ := FirstFound(ctx, TextChain(scope, chain)...)
	return l.Text
}

func limit[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
