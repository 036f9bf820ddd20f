package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/japaniel/verbpractice/pkg/app"
	"github.com/japaniel/verbpractice/pkg/config"
	"github.com/japaniel/verbpractice/pkg/content"
	"github.com/japaniel/verbpractice/pkg/harvest"
)

// urlList collects repeated -harvest-url flags.
type urlList []string

func (l *urlList) String() string { return strings.Join(*l, ",") }

func (l *urlList) Set(v string) error {
	for _, u := range strings.Split(v, ",") {
		if u = strings.TrimSpace(u); u != "" {
			*l = append(*l, u)
		}
	}
	return nil
}

func main() {
	var harvestURLs urlList
	trackFlag := flag.String("track", "", "Practice track: verbs or comparisons (default from config)")
	initFlag := flag.Bool("init", false, "Write the bundled starter data to the configured paths")
	importFlag := flag.Bool("import-sqlite", false, "Copy the verb JSON file into the SQLite database")
	flag.Var(&harvestURLs, "harvest-url", "Article URL to collect example sentences from (repeatable)")
	saveFlag := flag.Bool("save", false, "With -harvest-url, save the proposed sentences")
	flag.Parse()

	// Setup context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, options{
		track:       *trackFlag,
		init:        *initFlag,
		importDB:    *importFlag,
		harvestURLs: harvestURLs,
		save:        *saveFlag,
	})
	cancel()
	if err != nil {
		log.Fatal(err)
	}
}

type options struct {
	track       string
	init        bool
	importDB    bool
	harvestURLs []string
	save        bool
}

// run does the work of main and returns instead of exiting, so deferred
// cleanup such as closing the store always happens.
func run(ctx context.Context, opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.track != "" {
		track := strings.ToLower(strings.TrimSpace(opts.track))
		if !config.IsTrack(track) {
			return fmt.Errorf("unknown track %q (want verbs or comparisons)", opts.track)
		}
		cfg.Practice.Track = track
	}
	logger := app.NewLogger(cfg.Log, os.Stderr)

	if opts.init {
		written, err := app.InitData(cfg)
		if err != nil {
			return fmt.Errorf("failed to write starter data: %w", err)
		}
		for _, p := range written {
			fmt.Printf("Wrote %s\n", p)
		}
		if len(written) == 0 {
			fmt.Println("Data files already exist, nothing written.")
		}
		return nil
	}

	if opts.importDB {
		n, err := app.ImportSQLite(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to import verbs: %w", err)
		}
		fmt.Printf("Imported %d verbs into %s\n", n, cfg.Data.SQLitePath)
		return nil
	}

	store, closeStore, err := app.OpenStore(cfg, logger)
	if err != nil {
		if errors.Is(err, content.ErrDataUnavailable) {
			return fmt.Errorf("%w\nRun with -init to create starter data", err)
		}
		return fmt.Errorf("failed to open data: %w", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("close store", "error", err)
		}
	}()

	if len(opts.harvestURLs) > 0 {
		h := harvest.NewHarvester(logger)
		fmt.Printf("Fetching %d page(s)...\n", len(opts.harvestURLs))
		if _, err := app.Harvest(ctx, store, h, opts.harvestURLs, cfg.Harvest.PerVerbLimit, opts.save, os.Stdout); err != nil {
			return fmt.Errorf("harvest failed: %w", err)
		}
		return nil
	}

	seed := cfg.Practice.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	runner := app.NewRunner(store, os.Stdin, os.Stdout, rand.New(rand.NewPCG(seed, seed)), logger)

	switch cfg.Practice.Track {
	case config.TrackComparisons:
		err = runner.PracticeComparisons()
	default:
		err = runner.PracticeVerbs()
	}
	if err != nil {
		return fmt.Errorf("practice failed: %w", err)
	}
	return nil
}
