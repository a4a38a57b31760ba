package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultSyncIntervalSeconds is used when SYNC_INTERVAL_SECONDS is unset
// or not a positive integer.
const DefaultSyncIntervalSeconds = 3600

type Config struct {
	Immich ImmichConfig
	Sync   SyncConfig
	Log    LogConfig
}

type ImmichConfig struct {
	BaseURL string
	APIKey  string
}

type SyncConfig struct {
	AlbumID         string   // album kept in sync; must be a canonical UUID
	PersonNames     []string // person names to resolve, matched case-insensitively
	FilenameFilters []string // glob patterns; empty means no filename filtering
	IntervalSeconds int
}

type LogConfig struct {
	Level  string // defaults to info
	Format string // "console" or "json", defaults to console
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// splitCSV splits a comma-separated value into trimmed entries, dropping
// empty ones.
func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func Load() *Config {
	return &Config{
		Immich: ImmichConfig{
			BaseURL: os.Getenv("IMMICH_BASE_URL"),
			APIKey:  os.Getenv("IMMICH_API_KEY"),
		},
		Sync: SyncConfig{
			AlbumID:         os.Getenv("IMMICH_ALBUM_ID"),
			PersonNames:     splitCSV(os.Getenv("IMMICH_PERSONS")),
			FilenameFilters: splitCSV(os.Getenv("IMMICH_NAME_FILTERS")),
			IntervalSeconds: envInt("SYNC_INTERVAL_SECONDS", DefaultSyncIntervalSeconds),
		},
		Log: LogConfig{
			Level:  os.Getenv("LOG_LEVEL"),
			Format: os.Getenv("LOG_FORMAT"),
		},
	}
}

// Validate checks that every variable the sync needs is set. The album ID
// only has to be present here; its shape is checked each cycle.
func (c *Config) Validate() error {
	var missing []string
	if c.Immich.BaseURL == "" {
		missing = append(missing, "IMMICH_BASE_URL")
	}
	if c.Immich.APIKey == "" {
		missing = append(missing, "IMMICH_API_KEY")
	}
	if c.Sync.AlbumID == "" {
		missing = append(missing, "IMMICH_ALBUM_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}
