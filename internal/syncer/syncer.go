package syncer

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/kozaktomas/immich-sync/internal/immich"
)

// Syncer runs sync cycles that fill one album with every asset depicting
// the configured persons. It keeps no state between cycles.
type Syncer struct {
	client  *immich.Client
	opts    Options
	filters []string
	logger  zerolog.Logger
}

// ProgressInfo contains progress information for callbacks
type ProgressInfo struct {
	Phase   string // "people", "search", "album", "add"
	Current int
	Total   int // -1 when unknown
}

type Options struct {
	AlbumID         string
	PersonNames     []string
	FilenameFilters []string
	DryRun          bool
	OnProgress      func(ProgressInfo) // Optional progress callback
}

// Result summarizes one sync cycle. Errors collects recoverable failures
// (aborted searches, a failed album read or update); the cycle itself
// still counts as completed.
type Result struct {
	ResolvedPersons int
	Matched         int
	InAlbum         int
	Added           int
	DryRun          bool
	Errors          []error
}

func New(client *immich.Client, opts Options, logger zerolog.Logger) *Syncer {
	logger = logger.With().Str("component", "syncer").Logger()
	return &Syncer{
		client:  client,
		opts:    opts,
		filters: compileFilters(opts.FilenameFilters, logger),
		logger:  logger,
	}
}

// Run executes one sync cycle: resolve the configured names, search their
// assets, diff against the album and add what is missing. Remote failures
// along the way degrade to empty results; Run returns an error only when
// the album ID is unusable or the context is cancelled.
func (s *Syncer) Run(ctx context.Context) (*Result, error) {
	result := &Result{DryRun: s.opts.DryRun}

	if !immich.IsValidUUID(s.opts.AlbumID) {
		return nil, fmt.Errorf("album id %q is missing or not a valid UUID", s.opts.AlbumID)
	}

	if len(s.opts.PersonNames) == 0 {
		s.logger.Info().Msg("no person names configured, nothing to do")
		return result, nil
	}

	s.progress("people", 0, -1)
	personIDs := s.resolvePersons(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result.ResolvedPersons = len(personIDs)
	s.progress("people", len(personIDs), len(s.opts.PersonNames))
	if len(personIDs) == 0 {
		s.logger.Warn().Msg("no configured person could be resolved, ending cycle")
		return result, nil
	}

	matched := s.findAssets(ctx, personIDs, result)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result.Matched = len(matched)
	if len(matched) == 0 {
		s.logger.Info().Msg("no assets matched the configured persons and filters")
		return result, nil
	}
	s.logger.Info().Int("assets", len(matched)).Msg("completed all asset searches")

	existing := s.albumAssetIDs(ctx, result)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result.InAlbum = len(existing)

	toAdd := missingFrom(matched, existing)
	if len(toAdd) == 0 {
		s.logger.Info().Int("matched", len(matched)).Msg("all matched assets are already in the album")
		return result, nil
	}

	if s.opts.DryRun {
		result.Added = len(toAdd)
		s.logger.Info().Int("assets", len(toAdd)).Msg("dry run, skipping album update")
		return result, nil
	}

	s.progress("add", 0, len(toAdd))
	if err := s.addToAlbum(ctx, toAdd); err != nil {
		result.Errors = append(result.Errors, err)
		s.logger.Error().Err(err).Str("album_id", s.opts.AlbumID).Int("assets", len(toAdd)).Msg("failed to add assets to album")
		return result, nil
	}
	result.Added = len(toAdd)
	s.progress("add", len(toAdd), len(toAdd))

	s.logger.Info().
		Str("album_id", s.opts.AlbumID).
		Int("matched", result.Matched).
		Int("in_album", result.InAlbum).
		Int("added", result.Added).
		Msg("album updated")
	return result, nil
}

// albumAssetIDs fetches the IDs of assets currently in the album. A failed
// read degrades to an empty set, so the cycle re-submits everything it
// matched; adding an asset twice is harmless.
func (s *Syncer) albumAssetIDs(ctx context.Context, result *Result) map[string]struct{} {
	s.progress("album", 0, -1)

	album, err := s.client.GetAlbum(ctx, s.opts.AlbumID)
	if err != nil {
		result.Errors = append(result.Errors, err)
		if immich.IsNotFoundError(err) {
			s.logger.Error().Str("album_id", s.opts.AlbumID).Msg("album does not exist on the server, check IMMICH_ALBUM_ID")
		} else {
			s.logger.Error().Err(err).Str("album_id", s.opts.AlbumID).Msg("failed to read album, treating it as empty")
		}
		return map[string]struct{}{}
	}

	existing := make(map[string]struct{}, len(album.Assets))
	for _, asset := range album.Assets {
		if asset.ID == "" {
			continue
		}
		if !immich.IsValidUUID(asset.ID) {
			s.logger.Warn().Str("asset_id", asset.ID).Msg("skipping album asset with invalid id")
			continue
		}
		existing[asset.ID] = struct{}{}
	}

	s.logger.Info().Str("album_id", s.opts.AlbumID).Int("assets", len(existing)).Msg("fetched album contents")
	return existing
}

// addToAlbum submits the missing assets and logs the per-asset outcome
// when the server provides one.
func (s *Syncer) addToAlbum(ctx context.Context, assetIDs []string) error {
	s.logger.Info().Int("assets", len(assetIDs)).Str("album_id", s.opts.AlbumID).Msg("adding assets to album")

	results, err := s.client.AddAssetsToAlbum(ctx, s.opts.AlbumID, assetIDs)
	if err != nil {
		return err
	}
	if results == nil {
		s.logger.Info().Int("assets", len(assetIDs)).Msg("server accepted album update without details")
		return nil
	}

	accepted, rejected := 0, 0
	for _, r := range results {
		if r.Success {
			accepted++
			continue
		}
		rejected++
		s.logger.Debug().Str("asset_id", r.ID).Str("reason", r.Error).Msg("asset was not added")
	}
	s.logger.Debug().Int("accepted", accepted).Int("rejected", rejected).Msg("album update details")
	return nil
}

// missingFrom returns the matched IDs absent from existing, sorted so the
// resulting request body is deterministic.
func missingFrom(matched, existing map[string]struct{}) []string {
	var out []string
	for id := range matched {
		if _, ok := existing[id]; !ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

func (s *Syncer) progress(phase string, current, total int) {
	if s.opts.OnProgress == nil {
		return
	}
	s.opts.OnProgress(ProgressInfo{Phase: phase, Current: current, Total: total})
}
