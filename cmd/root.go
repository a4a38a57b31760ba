package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kozaktomas/immich-sync/internal/config"
)

var (
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "immich-sync",
	Short: "Keeps an Immich album in sync with photos of selected people",
	Long: `immich-sync connects to an Immich instance and keeps one album filled
with every asset that depicts a configured set of people. It resolves the
configured names against the server's people directory, searches for their
assets, and adds whatever the album is missing. Assets are only ever added,
never removed.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default from LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: console or json (default from LOG_FORMAT)")
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}

// newLogger builds the process logger. Flags win over the environment;
// console output is the default, json is meant for running under a
// supervisor or container runtime.
func newLogger(cfg *config.Config) zerolog.Logger {
	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}

	var w io.Writer = os.Stderr
	if effectiveLogFormat(cfg) != "json" {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	}

	return zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger()
}

// effectiveLogFormat resolves the --log-format flag against LOG_FORMAT.
func effectiveLogFormat(cfg *config.Config) string {
	if logFormat != "" {
		return strings.ToLower(logFormat)
	}
	return strings.ToLower(cfg.Log.Format)
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
