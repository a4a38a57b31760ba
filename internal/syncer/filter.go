package syncer

import (
	"path"
	"strings"

	"github.com/rs/zerolog"
)

// compileFilters prepares the configured filename patterns for matching:
// trimmed, lowercased, empty entries dropped. Patterns path.Match cannot
// parse are dropped with a warning since they could never match.
func compileFilters(patterns []string, logger zerolog.Logger) []string {
	var compiled []string
	for _, pattern := range patterns {
		pattern = strings.ToLower(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}
		if _, err := path.Match(pattern, ""); err != nil {
			logger.Warn().Str("pattern", pattern).Msg("dropping malformed filename filter")
			continue
		}
		compiled = append(compiled, pattern)
	}
	return compiled
}

// matchesFilters reports whether the file name glob-matches at least one
// of the compiled patterns. Matching is case-insensitive.
func matchesFilters(fileName string, patterns []string) bool {
	lower := strings.ToLower(fileName)
	for _, pattern := range patterns {
		if ok, _ := path.Match(pattern, lower); ok {
			return true
		}
	}
	return false
}
