package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kozaktomas/immich-sync/internal/config"
	"github.com/kozaktomas/immich-sync/internal/immich"
	"github.com/kozaktomas/immich-sync/internal/syncer"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Keep the configured album filled with assets of the configured people",
	Long: `Sync runs the album synchronization. By default it keeps running and
repeats a sync cycle every SYNC_INTERVAL_SECONDS seconds until interrupted.

Each cycle resolves the names from IMMICH_PERSONS against the server's
people directory, searches for all assets depicting them (optionally
narrowed by the IMMICH_NAME_FILTERS globs), and adds the assets missing
from the IMMICH_ALBUM_ID album. Assets are never removed.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().Bool("once", false, "Run a single sync cycle and exit")
	syncCmd.Flags().Bool("dry-run", false, "Preview additions without changing the album")
	syncCmd.Flags().Int("interval", 0, "Seconds between cycles (overrides SYNC_INTERVAL_SECONDS)")
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	logger := newLogger(cfg)

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("configuration is incomplete")
	}
	warnBadInterval(logger)

	once := mustGetBool(cmd, "once")
	dryRun := mustGetBool(cmd, "dry-run")
	if interval := mustGetInt(cmd, "interval"); interval > 0 {
		cfg.Sync.IntervalSeconds = interval
	}

	client, err := immich.New(cfg.Immich.BaseURL, cfg.Immich.APIKey, logger)
	if err != nil {
		return fmt.Errorf("failed to create Immich client: %w", err)
	}

	opts := syncer.Options{
		AlbumID:         cfg.Sync.AlbumID,
		PersonNames:     cfg.Sync.PersonNames,
		FilenameFilters: cfg.Sync.FilenameFilters,
		DryRun:          dryRun,
	}

	// Set up context with signal handling for graceful cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info().Msg("received shutdown signal, finishing up")
		cancel()
	}()

	logger.Info().
		Str("album_id", cfg.Sync.AlbumID).
		Strs("persons", cfg.Sync.PersonNames).
		Strs("filters", cfg.Sync.FilenameFilters).
		Int("interval_seconds", cfg.Sync.IntervalSeconds).
		Bool("dry_run", dryRun).
		Msg("starting immich-sync")

	if once {
		var bar *progressbar.ProgressBar
		if effectiveLogFormat(cfg) != "json" {
			bar = progressbar.NewOptions(-1,
				progressbar.OptionSetDescription("Starting sync"),
				progressbar.OptionSpinnerType(14),
				progressbar.OptionFullWidth(),
			)
			opts.OnProgress = func(info syncer.ProgressInfo) {
				switch info.Phase {
				case "people":
					bar.Describe("Resolving person names")
				case "search":
					bar.Describe(fmt.Sprintf("Searching assets (%d matched)", info.Current))
				case "album":
					bar.Describe("Reading album contents")
				case "add":
					bar.Describe(fmt.Sprintf("Adding assets (%d/%d)", info.Current, info.Total))
				}
				bar.Add(1)
			}
		}

		s := syncer.New(client, opts, logger)
		result, err := s.Run(ctx)
		if bar != nil {
			fmt.Println()
		}
		if err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}

		printResult(result)
		return nil
	}

	// Watch mode holds a lock file so two daemons never sync the same
	// album at once.
	lockPath := filepath.Join(os.TempDir(), fmt.Sprintf("immich-sync-%s.lock", cfg.Sync.AlbumID))
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("could not acquire lock file %s: %w", lockPath, err)
	}
	if !locked {
		return fmt.Errorf("another immich-sync instance is already running for this album (lock file %s)", lockPath)
	}
	defer lock.Unlock()

	s := syncer.New(client, opts, logger)
	runLoop(ctx, s, time.Duration(cfg.Sync.IntervalSeconds)*time.Second, logger)
	return nil
}

// runLoop runs sync cycles until the context is cancelled. The first cycle
// starts immediately; later ones follow the ticker.
func runLoop(ctx context.Context, s *syncer.Syncer, interval time.Duration, logger zerolog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		runCycle(ctx, s, logger)

		select {
		case <-ctx.Done():
			logger.Info().Msg("shutting down")
			return
		case <-ticker.C:
		}
	}
}

// runCycle executes one cycle and logs its outcome. Cycle failures and
// panics are contained here so the loop always reaches the next tick.
func runCycle(ctx context.Context, s *syncer.Syncer, logger zerolog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("sync cycle panicked")
		}
	}()

	start := time.Now()
	result, err := s.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		logger.Error().Err(err).Msg("sync cycle failed")
		return
	}

	event := logger.Info()
	if len(result.Errors) > 0 {
		event = logger.Warn().Int("errors", len(result.Errors))
	}
	event.
		Int("resolved_persons", result.ResolvedPersons).
		Int("matched", result.Matched).
		Int("in_album", result.InAlbum).
		Int("added", result.Added).
		Dur("elapsed", time.Since(start)).
		Msg("sync cycle finished")
}

func printResult(result *syncer.Result) {
	fmt.Printf("\nResolved persons: %d\n", result.ResolvedPersons)
	fmt.Printf("Matched assets: %d\n", result.Matched)
	fmt.Printf("Already in album: %d\n", result.InAlbum)
	if result.DryRun {
		fmt.Printf("Would add: %d\n", result.Added)
	} else {
		fmt.Printf("Added: %d\n", result.Added)
	}

	if len(result.Errors) > 0 {
		fmt.Printf("\nErrors: %d\n", len(result.Errors))
		for _, err := range result.Errors {
			fmt.Printf("  - %v\n", err)
		}
	}
}

// warnBadInterval points out when SYNC_INTERVAL_SECONDS was set to
// something unusable and the default applies instead.
func warnBadInterval(logger zerolog.Logger) {
	raw := os.Getenv("SYNC_INTERVAL_SECONDS")
	if raw == "" {
		return
	}
	if n, err := strconv.Atoi(raw); err != nil || n <= 0 {
		logger.Warn().
			Str("value", raw).
			Int("default", config.DefaultSyncIntervalSeconds).
			Msg("SYNC_INTERVAL_SECONDS is not a positive integer, using the default")
	}
}
