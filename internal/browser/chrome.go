package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"linkedin-extractor/internal/models"
)

const hideWebdriverScript = `Object.defineProperty(navigator, 'webdriver', {get: () => undefined})`

// ChromeSession drives a single Chrome tab through chromedp
type ChromeSession struct {
	ctx    context.Context
	cancel context.CancelFunc
	cfg    models.BrowserConfig

	closeOnce sync.Once
}

// NewChromeSession launches Chrome with the anti-automation flags and
// returns a session bound to its first tab
func NewChromeSession(ctx context.Context, cfg models.BrowserConfig) (*ChromeSession, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("enable-automation", false),
		chromedp.Flag("disable-infobars", true),
	)
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	combinedCancel := func() {
		browserCancel()
		allocCancel()
	}

	err := chromedp.Run(browserCtx,
		network.Enable(),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(hideWebdriverScript).Do(ctx)
			return err
		}),
	)
	if err != nil {
		combinedCancel()
		return nil, fmt.Errorf("start chrome: %w", err)
	}

	return &ChromeSession{ctx: browserCtx, cancel: combinedCancel, cfg: cfg}, nil
}

// Navigate loads url, waits for the body to be ready and then sleeps the
// configured settle delay so client-side rendering can finish
func (s *ChromeSession) Navigate(ctx context.Context, url string) error {
	nctx, cancel := s.bind(ctx, s.cfg.NavigationTimeout)
	defer cancel()

	err := chromedp.Run(nctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}

	select {
	case <-time.After(s.cfg.SettleDelay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// FindFirst implements Scope against the whole document
func (s *ChromeSession) FindFirst(ctx context.Context, selector string) (Element, error) {
	return s.findFirst(ctx, selector, nil)
}

// FindAll implements Scope against the whole document
func (s *ChromeSession) FindAll(ctx context.Context, selector string) ([]Element, error) {
	return s.findAll(ctx, selector, nil)
}

// DumpHTML returns the rendered document markup
func (s *ChromeSession) DumpHTML(ctx context.Context) (string, error) {
	dctx, cancel := s.bind(ctx, s.cfg.NavigationTimeout)
	defer cancel()

	var html string
	if err := chromedp.Run(dctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("dump html: %w", err)
	}
	return html, nil
}

// Close shuts the tab and the browser process down. Safe to call twice.
func (s *ChromeSession) Close() error {
	s.closeOnce.Do(s.cancel)
	return nil
}

// bind derives a chromedp context from the session with its own timeout
// that is also cancelled when the caller's ctx is.
func (s *ChromeSession) bind(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	cctx, cancel := context.WithTimeout(s.ctx, timeout)
	stop := context.AfterFunc(ctx, cancel)
	return cctx, func() {
		stop()
		cancel()
	}
}

// nodes queries without waiting: AtLeast(0) makes an absent selector an
// immediate empty result instead of a poll until timeout.
func (s *ChromeSession) nodes(ctx context.Context, selector string, by chromedp.QueryOption, parent *cdp.Node) ([]*cdp.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lctx, cancel := s.bind(ctx, s.cfg.LookupTimeout)
	defer cancel()

	opts := []chromedp.QueryOption{by, chromedp.AtLeast(0)}
	if parent != nil {
		opts = append(opts, chromedp.FromNode(parent))
	}

	var nodes []*cdp.Node
	if err := chromedp.Run(lctx, chromedp.Nodes(selector, &nodes, opts...)); err != nil {
		return nil, fmt.Errorf("query %q: %w", selector, err)
	}
	return nodes, nil
}

func (s *ChromeSession) findFirst(ctx context.Context, selector string, parent *cdp.Node) (Element, error) {
	nodes, err := s.nodes(ctx, selector, chromedp.ByQuery, parent)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, ErrNotFound
	}
	return &chromeElement{session: s, node: nodes[0]}, nil
}

func (s *ChromeSession) findAll(ctx context.Context, selector string, parent *cdp.Node) ([]Element, error) {
	nodes, err := s.nodes(ctx, selector, chromedp.ByQueryAll, parent)
	if err != nil {
		return nil, err
	}
	elements := make([]Element, 0, len(nodes))
	for _, n := range nodes {
		elements = append(elements, &chromeElement{session: s, node: n})
	}
	return elements, nil
}

type chromeElement struct {
	session *ChromeSession
	node    *cdp.Node
}

func (e *chromeElement) FindFirst(ctx context.Context, selector string) (Element, error) {
	return e.session.findFirst(ctx, selector, e.node)
}

func (e *chromeElement) FindAll(ctx context.Context, selector string) ([]Element, error) {
	return e.session.findAll(ctx, selector, e.node)
}

// Text returns the rendered (visible) text of the element
func (e *chromeElement) Text(ctx context.Context) (string, error) {
	tctx, cancel := e.session.bind(ctx, e.session.cfg.LookupTimeout)
	defer cancel()

	var text string
	err := chromedp.Run(tctx, chromedp.Text([]cdp.NodeID{e.node.NodeID}, &text, chromedp.ByNodeID))
	if err != nil {
		return "", fmt.Errorf("read text of node %d: %w", e.node.NodeID, err)
	}
	return text, nil
}
