package orchestrator

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"linkedin-extractor/internal/crawler"
	"linkedin-extractor/internal/storage"
)

// processAll fans urls out to the configured number of workers. Each worker
// owns one session for its whole life; sessions are never shared.
func (r *Runner) processAll(ctx context.Context, urls []string) error {
	if len(urls) == 0 {
		return nil
	}

	workers := r.config.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(urls) {
		workers = len(urls)
	}

	jobs := make(chan string)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < workers; i++ {
		id := i
		g.Go(func() error {
			return r.worker(gctx, id, jobs)
		})
	}

feed:
	for _, url := range urls {
		select {
		case jobs <- url:
		case <-gctx.Done():
			break feed
		}
	}
	close(jobs)

	return g.Wait()
}

func (r *Runner) worker(ctx context.Context, id int, jobs <-chan string) error {
	logger := r.logger.With().Int("worker", id).Logger()

	session, err := r.factory(ctx)
	if err != nil {
		return fmt.Errorf("worker %d: failed to open browser session: %w", id, err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn().Err(err).Msg("error closing browser session")
		}
	}()

	extractor := crawler.NewProfileExtractor(session, logger)

	for url := range jobs {
		if ctx.Err() != nil {
			// drain so the feeder is never blocked
			continue
		}
		r.processURL(ctx, extractor, url)
	}
	return nil
}

// processURL extracts url once and records the outcome. A failure caused by
// the run being cancelled leaves the url pending.
func (r *Runner) processURL(ctx context.Context, extractor *crawler.ProfileExtractor, url string) {
	repo := r.dbStorage.ProfileRepo

	record, err := extractor.ExtractProfileData(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		atomic.AddInt32(&r.stats.Processed, 1)
		atomic.AddInt32(&r.stats.Failed, 1)
		if dbErr := repo.MarkFailed(url, r.runID, err); dbErr != nil {
			r.logger.Error().Err(dbErr).Str("url", url).Msg("failed to record failure")
		}
		fmt.Printf("❌ %s: %v\n", url, err)
		return
	}

	atomic.AddInt32(&r.stats.Processed, 1)
	if record.HasData() {
		atomic.AddInt32(&r.stats.WithData, 1)
	} else {
		atomic.AddInt32(&r.stats.NoData, 1)
	}

	if err := repo.MarkSuccess(url, r.runID, record); err != nil {
		r.logger.Error().Err(err).Str("url", url).Msg("failed to store record")
	}
	if err := r.results.Write(storage.ResultLine{
		URL:         url,
		RunID:       r.runID,
		ExtractedAt: time.Now().UTC(),
		Profile:     record,
	}); err != nil {
		r.logger.Error().Err(err).Str("url", url).Msg("failed to write result")
	}

	name := record.PersonalInfo.FullName
	if name == "" {
		name = "(no name)"
	}
	fmt.Printf("✅ %s: %s | exp=%d edu=%d skills=%d\n", url, name,
		len(record.Experience), len(record.Education), len(record.Skills))
}
