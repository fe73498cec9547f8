package browser

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fixture = `<!doctype html>
<html><body>
  <h1 class="name"> Jane Doe </h1>
  <ul id="jobs">
    <li class="job"><span class="title">Engineer</span><span class="co">Acme</span></li>
    <li class="job"><span class="title">Intern</span></li>
  </ul>
</body></html>`

func loaded(t *testing.T) *DocumentSession {
	t.Helper()
	s := NewDocumentSession(StaticSource(map[string]string{"https://example.test/in/jane": fixture}))
	if err := s.Navigate(context.Background(), "https://example.test/in/jane"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	return s
}

func TestDocumentSession_FindFirstReturnsText(t *testing.T) {
	s := loaded(t)
	ctx := context.Background()

	el, err := s.FindFirst(ctx, "h1.name")
	if err != nil {
		t.Fatalf("FindFirst: %v", err)
	}
	text, err := el.Text(ctx)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if text != " Jane Doe " {
		t.Fatalf("expected untrimmed text, got %q", text)
	}
}

func TestDocumentSession_FindFirstNotFound(t *testing.T) {
	s := loaded(t)
	_, err := s.FindFirst(context.Background(), "h2.missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDocumentSession_FindAllEmptyIsNotError(t *testing.T) {
	s := loaded(t)
	els, err := s.FindAll(context.Background(), ".nothing")
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(els) != 0 {
		t.Fatalf("expected no elements, got %d", len(els))
	}
}

func TestDocumentSession_ScopedQueries(t *testing.T) {
	s := loaded(t)
	ctx := context.Background()

	jobs, err := s.FindAll(ctx, "#jobs .job")
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}

	if _, err := jobs[0].FindFirst(ctx, ".co"); err != nil {
		t.Fatalf("first job should have a company: %v", err)
	}
	if _, err := jobs[1].FindFirst(ctx, ".co"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second job lookup must stay inside its scope, got %v", err)
	}
}

func TestDocumentSession_InvalidSelectorIsLookupError(t *testing.T) {
	s := loaded(t)
	_, err := s.FindFirst(context.Background(), "h1[")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected a compile error, got %v", err)
	}
}

func TestDocumentSession_LookupBeforeNavigate(t *testing.T) {
	s := NewDocumentSession(StaticSource(nil))
	if _, err := s.FindFirst(context.Background(), "h1"); !errors.Is(err, ErrNoPage) {
		t.Fatalf("expected ErrNoPage, got %v", err)
	}
}

func TestDocumentSession_NavigateUnknownURL(t *testing.T) {
	s := NewDocumentSession(StaticSource(map[string]string{}))
	if err := s.Navigate(context.Background(), "https://example.test/in/nobody"); err == nil {
		t.Fatal("expected navigation error")
	}
}

func TestDocumentSession_CloseDropsPage(t *testing.T) {
	s := loaded(t)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := s.FindAll(context.Background(), "h1"); !errors.Is(err, ErrNoPage) {
		t.Fatalf("expected ErrNoPage after Close, got %v", err)
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte(fixture), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewDocumentSession(FileSource(path))
	if err := s.Navigate(context.Background(), "ignored"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if _, err := s.FindFirst(context.Background(), "h1"); err != nil {
		t.Fatalf("FindFirst: %v", err)
	}
}

func TestDocumentSession_CancelledContext(t *testing.T) {
	s := loaded(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.FindFirst(ctx, "h1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDocumentSession_DumpHTML(t *testing.T) {
	s := loaded(t)
	html, err := s.DumpHTML(context.Background())
	if err != nil {
		t.Fatalf("DumpHTML: %v", err)
	}
	if !strings.Contains(html, "Jane Doe") {
		t.Fatalf("dump should contain page text, got %q", html)
	}
}
