package orchestrator

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"linkedin-extractor/internal/browser"
	"linkedin-extractor/internal/crawler"
	"linkedin-extractor/internal/models"
)

// SessionFactory opens a new browser session. The caller owns the session
// and must close it.
type SessionFactory func(ctx context.Context) (browser.Session, error)

// ChromeFactory opens a fresh Chrome session per call
func ChromeFactory(cfg models.BrowserConfig) SessionFactory {
	return func(ctx context.Context) (browser.Session, error) {
		s, err := browser.NewChromeSession(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

// DocumentFactory opens a static-HTML session over source
func DocumentFactory(source browser.PageSource) SessionFactory {
	return func(context.Context) (browser.Session, error) {
		return browser.NewDocumentSession(source), nil
	}
}

// ExtractOptions tune a single extraction
type ExtractOptions struct {
	// Credentials are accepted for compatibility; no login is performed
	Credentials models.Credentials
	// DumpHTMLPath, when set, receives the rendered page after extraction
	DumpHTMLPath string
}

// ExtractProfile opens a session, extracts url and always closes the
// session again, on success and on every failure path.
func ExtractProfile(ctx context.Context, factory SessionFactory, url string, opts ExtractOptions, logger zerolog.Logger) (*models.ProfileRecord, error) {
	session, err := factory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open browser session: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn().Err(err).Msg("error closing browser session")
		}
	}()

	if opts.Credentials.IsSet() {
		logger.Warn().Str("email", opts.Credentials.Email).
			Msg("login is not implemented, extracting the public view of the profile")
	}

	record, err := crawler.NewProfileExtractor(session, logger).ExtractProfileData(ctx, url)

	if opts.DumpHTMLPath != "" {
		dumpHTML(ctx, session, opts.DumpHTMLPath, logger)
	}

	return record, err
}

func dumpHTML(ctx context.Context, session browser.Session, path string, logger zerolog.Logger) {
	dumper, ok := session.(browser.HTMLDumper)
	if !ok {
		logger.Warn().Msg("session cannot dump html")
		return
	}
	html, err := dumper.DumpHTML(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("dump html failed")
		return
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("dump html failed")
		return
	}
	logger.Info().Str("path", path).Msg("page html saved")
}
