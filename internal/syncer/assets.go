package syncer

import (
	"context"
	"fmt"

	"github.com/kozaktomas/immich-sync/internal/immich"
)

// findAssets collects the IDs of every asset depicting the configured
// persons. The first search asks for all persons together (the server
// treats multiple IDs as a conjunction); with more than one person, each
// is additionally searched individually and the results are unioned.
func (s *Syncer) findAssets(ctx context.Context, personIDs []string, result *Result) map[string]struct{} {
	if len(s.filters) > 0 {
		s.logger.Info().Strs("filters", s.filters).Msg("applying filename filters to asset searches")
	}

	matched := make(map[string]struct{})

	joint, err := s.searchPass(ctx, personIDs)
	if err != nil {
		result.Errors = append(result.Errors, err)
		s.logger.Error().Err(err).Msg("joint asset search aborted, keeping partial results")
	}
	for id := range joint {
		matched[id] = struct{}{}
	}
	s.logger.Info().Int("assets", len(joint)).Msg("joint search finished")

	if len(personIDs) > 1 {
		for _, personID := range personIDs {
			found, err := s.searchPass(ctx, []string{personID})
			if err != nil {
				result.Errors = append(result.Errors, err)
				s.logger.Error().Err(err).Str("person_id", personID).Msg("individual asset search aborted, keeping partial results")
			}
			before := len(matched)
			for id := range found {
				matched[id] = struct{}{}
			}
			s.logger.Info().
				Str("person_id", personID).
				Int("assets", len(found)).
				Int("new", len(matched)-before).
				Msg("individual search finished")
		}
	}

	return matched
}

// searchPass pages through one metadata search and returns the IDs of the
// assets that pass the filename filters. On a failed page the assets
// collected so far are returned together with the error.
func (s *Syncer) searchPass(ctx context.Context, personIDs []string) (map[string]struct{}, error) {
	s.logger.Info().Strs("person_ids", personIDs).Msg("starting asset search")

	found := make(map[string]struct{})
	for page := 1; ; page++ {
		assets, err := s.client.SearchAssetsPage(ctx, personIDs, page)
		if err != nil {
			return found, fmt.Errorf("search page %d: %w", page, err)
		}

		for _, asset := range assets {
			if !immich.IsValidUUID(asset.ID) {
				s.logger.Warn().Str("asset_id", asset.ID).Msg("skipping asset with missing or invalid id")
				continue
			}
			if len(s.filters) > 0 {
				if asset.OriginalFileName == "" {
					s.logger.Debug().Str("asset_id", asset.ID).Msg("asset has no file name, cannot apply filters")
					continue
				}
				if !matchesFilters(asset.OriginalFileName, s.filters) {
					s.logger.Debug().Str("asset_id", asset.ID).Str("file_name", asset.OriginalFileName).Msg("file name did not match filters")
					continue
				}
			}
			found[asset.ID] = struct{}{}
		}

		s.progress("search", len(found), -1)

		if len(assets) < immich.SearchPageSize {
			break
		}
	}

	return found, nil
}
