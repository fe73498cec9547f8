package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"linkedin-extractor/internal/browser"
	"linkedin-extractor/internal/config"
	"linkedin-extractor/internal/models"
	"linkedin-extractor/internal/orchestrator"
	"linkedin-extractor/internal/utils"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		configPath string
		profileURL string
		urlsFile   string
		htmlPath   string
		email      string
		password   string
		headless   bool
		workers    int
		dbPath     string
		outPath    string
		dumpPath   string
		verbose    bool
	)

	flag.StringVar(&configPath, "config", os.Getenv("EXTRACTOR_CONFIG"), "Path to YAML config file")
	flag.StringVar(&profileURL, "url", "", "Extract a single profile URL")
	flag.StringVar(&urlsFile, "urls", "", "File with profile URLs to queue and extract in batch")
	flag.StringVar(&htmlPath, "html", "", "Extract from a saved profile page instead of a live browser")
	flag.StringVar(&email, "email", os.Getenv("LINKEDIN_EMAIL"), "Account email (accepted, login is not performed)")
	flag.StringVar(&password, "password", os.Getenv("LINKEDIN_PASSWORD"), "Account password (accepted, login is not performed)")
	flag.BoolVar(&headless, "headless", true, "Run Chrome headless")
	flag.IntVar(&workers, "workers", 1, "Concurrent browser sessions in batch mode")
	flag.StringVar(&dbPath, "db", "", "SQLite job database path")
	flag.StringVar(&outPath, "out", "", "JSON-lines output file for batch mode")
	flag.StringVar(&dumpPath, "dump-html", "", "Write the rendered page here after a single extraction")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	cfg := config.DefaultConfig()
	if configPath != "" {
		if err := config.LoadFile(configPath, &cfg); err != nil {
			log.Fatal().Err(err).Msg("config")
		}
	}
	config.ApplyEnv(&cfg)

	// only flags given on the command line override file and env values
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "headless":
			cfg.Browser.Headless = headless
		case "workers":
			cfg.Workers = workers
		case "db":
			cfg.DBPath = dbPath
		case "out":
			cfg.OutputFilePath = outPath
		case "urls":
			cfg.URLsFilePath = urlsFile
		}
	})
	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	ctx := context.Background()
	creds := models.Credentials{Email: email, Password: password}

	switch {
	case htmlPath != "":
		target := profileURL
		if target == "" {
			abs, _ := filepath.Abs(htmlPath)
			target = "file://" + abs
		}
		factory := orchestrator.DocumentFactory(browser.FileSource(htmlPath))
		os.Exit(runSingle(ctx, factory, target, orchestrator.ExtractOptions{Credentials: creds}))

	case profileURL != "":
		opts := orchestrator.ExtractOptions{Credentials: creds, DumpHTMLPath: dumpPath}
		os.Exit(runSingle(ctx, orchestrator.ChromeFactory(cfg.Browser), profileURL, opts))

	default:
		os.Exit(runBatch(ctx, cfg))
	}
}

func runSingle(ctx context.Context, factory orchestrator.SessionFactory, url string, opts orchestrator.ExtractOptions) int {
	record, err := orchestrator.ExtractProfile(ctx, factory, url, opts, log.Logger)
	if err != nil {
		log.Error().Err(err).Str("url", url).Msg("extraction failed")
		return 1
	}

	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("encode record")
		return 1
	}
	fmt.Println(string(out))
	return 0
}

func runBatch(ctx context.Context, cfg models.Config) int {
	fmt.Println("🚀 LinkedIn Profile Extractor")
	fmt.Println(strings.Repeat("=", 60))

	runner, err := orchestrator.NewRunner(cfg, orchestrator.ChromeFactory(cfg.Browser), log.Logger)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize runner")
		return 1
	}
	defer runner.Close()

	stats, err := runner.Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("run aborted")
		return 1
	}

	fmt.Printf("📊 %d/%d profiles extracted (%.1f%%) in %s\n",
		stats.WithData+stats.NoData, stats.Processed,
		utils.Percent(stats.WithData+stats.NoData, stats.Processed),
		utils.FormatDuration(stats.Duration))
	return 0
}
