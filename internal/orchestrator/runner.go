package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"linkedin-extractor/internal/database"
	"linkedin-extractor/internal/models"
	"linkedin-extractor/internal/storage"
	"linkedin-extractor/internal/utils"
)

// Runner extracts every pending URL of the job database in one run
type Runner struct {
	config  models.Config
	factory SessionFactory
	logger  zerolog.Logger

	runID     string
	dbStorage *storage.DBStorage
	results   *storage.ResultWriter

	shutdownRequested int32
	stats             struct {
		Processed int32
		WithData  int32
		NoData    int32
		Failed    int32
	}
	startTime time.Time
}

// RunStats are the counters of a finished run
type RunStats struct {
	RunID     string
	Processed int
	WithData  int
	NoData    int
	Failed    int
	Duration  time.Duration
}

// NewRunner opens the job database, imports the URL list named by the
// config (when the file exists) and opens the output file
func NewRunner(config models.Config, factory SessionFactory, logger zerolog.Logger) (*Runner, error) {
	dbStorage, err := storage.NewDBStorage(config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := importURLFile(dbStorage, config.URLsFilePath, logger); err != nil {
		dbStorage.Close()
		return nil, err
	}

	results, err := storage.NewResultWriter(config.OutputFilePath)
	if err != nil {
		dbStorage.Close()
		return nil, err
	}

	runID := uuid.New().String()
	if err := dbStorage.RunRepo.CreateRun(runID); err != nil {
		results.Close()
		dbStorage.Close()
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	return &Runner{
		config:    config,
		factory:   factory,
		logger:    logger.With().Str("component", "runner").Str("run_id", runID).Logger(),
		runID:     runID,
		dbStorage: dbStorage,
		results:   results,
	}, nil
}

// Run processes all pending URLs. SIGINT/SIGTERM cancel the run; profiles
// interrupted that way stay pending for the next run.
func (r *Runner) Run(ctx context.Context) (RunStats, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stopSignals := utils.SetupSignalHandling(&r.shutdownRequested, cancel, r.logger)
	defer stopSignals()

	r.startTime = time.Now()

	urls, err := r.dbStorage.ProfileRepo.GetPendingURLs(0)
	if err != nil {
		return RunStats{}, fmt.Errorf("failed to load pending urls: %w", err)
	}

	fmt.Printf("🚀 Run %s: %d profiles pending, %d worker(s)\n", r.runID, len(urls), r.config.Workers)
	fmt.Println(strings.Repeat("=", 60))

	runErr := r.processAll(ctx, urls)

	stats := r.snapshot()
	if err := r.dbStorage.RunRepo.FinishRun(r.runID, stats.Processed, stats.WithData+stats.NoData, stats.Failed); err != nil {
		r.logger.Warn().Err(err).Msg("failed to record run counters")
	}
	r.printFinalResults(stats)

	return stats, runErr
}

// importURLFile queues the URLs of path. A missing file is not an error: the
// run then works on URLs queued by earlier imports.
func importURLFile(dbStorage *storage.DBStorage, path string, logger zerolog.Logger) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		logger.Info().Str("file", path).Msg("url file not found, using queued urls only")
		return nil
	}
	n, err := dbStorage.ImportURLsFromFile(path)
	if err != nil {
		return err
	}
	logger.Info().Int("urls", n).Str("file", path).Msg("urls imported")
	return nil
}

// RunID returns the identifier of this run
func (r *Runner) RunID() string {
	return r.runID
}

// GetDBStorage returns the database storage
func (r *Runner) GetDBStorage() *storage.DBStorage {
	return r.dbStorage
}

// Close flushes the output file and closes the database
func (r *Runner) Close() error {
	resultsErr := r.results.Close()
	dbErr := r.dbStorage.Close()
	if resultsErr != nil {
		return resultsErr
	}
	return dbErr
}

func (r *Runner) snapshot() RunStats {
	return RunStats{
		RunID:     r.runID,
		Processed: int(atomic.LoadInt32(&r.stats.Processed)),
		WithData:  int(atomic.LoadInt32(&r.stats.WithData)),
		NoData:    int(atomic.LoadInt32(&r.stats.NoData)),
		Failed:    int(atomic.LoadInt32(&r.stats.Failed)),
		Duration:  time.Since(r.startTime),
	}
}

// printFinalResults prints the run summary and the database totals
func (r *Runner) printFinalResults(stats RunStats) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Printf("🎉 Run finished in %s\n", utils.FormatDuration(stats.Duration))
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("   📊 Processed:          %d\n", stats.Processed)
	fmt.Printf("   🎯 With data:          %d (%.1f%%)\n", stats.WithData, utils.Percent(stats.WithData, stats.Processed))
	fmt.Printf("   📭 Without data:       %d\n", stats.NoData)
	fmt.Printf("   ❌ Failed:             %d\n", stats.Failed)

	if atomic.LoadInt32(&r.shutdownRequested) == 1 {
		fmt.Println("   ⚠️ Interrupted, remaining profiles stay pending")
	}

	if totals, err := r.dbStorage.ProfileRepo.GetStats(); err == nil {
		fmt.Printf("   💾 Database: %d total, %d pending\n",
			totals["total"], totals[string(database.ProfileStatusPending)])
	}
	fmt.Printf("   📄 Output: %s\n", r.config.OutputFilePath)
	fmt.Println(strings.Repeat("=", 60))
}
