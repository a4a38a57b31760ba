package syncer

import (
	"context"
	"sort"
	"strings"

	"github.com/kozaktomas/immich-sync/internal/immich"
)

// personIndex maps names from the server's people directory to person IDs,
// once by exact lowercase name and once accent-folded.
type personIndex struct {
	exact  map[string]string
	folded map[string]string
}

// buildPersonIndex indexes the people directory for lookups. Unnamed
// entries are a normal server state (every detected face gets one) and
// are skipped quietly; entries with a missing or non-UUID ID are skipped
// with a warning.
func (s *Syncer) buildPersonIndex(people []immich.Person) personIndex {
	index := personIndex{
		exact:  make(map[string]string),
		folded: make(map[string]string),
	}

	unnamed := 0
	for _, person := range people {
		if person.Name == "" {
			unnamed++
			continue
		}
		if person.ID == "" {
			s.logger.Warn().Str("name", person.Name).Msg("skipping person entry without id")
			continue
		}
		if !immich.IsValidUUID(person.ID) {
			s.logger.Warn().Str("person_id", person.ID).Str("name", person.Name).Msg("skipping person with invalid id")
			continue
		}
		index.exact[strings.ToLower(person.Name)] = person.ID
		index.folded[foldName(person.Name)] = person.ID
	}

	if unnamed > 0 {
		s.logger.Debug().Int("count", unnamed).Msg("skipped unnamed person entries")
	}

	return index
}

// lookup resolves a configured name against the index. The exact
// lowercase form wins; the accent-folded form is tried as a fallback.
func (idx personIndex) lookup(name string) (string, bool, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if id, ok := idx.exact[key]; ok {
		return id, true, false
	}
	if id, ok := idx.folded[foldName(key)]; ok {
		return id, true, true
	}
	return "", false, false
}

// resolvePersons maps the configured person names to IDs using the
// server's people directory. Names that cannot be resolved are logged and
// skipped; a remote failure degrades to an empty result and never aborts
// the cycle.
func (s *Syncer) resolvePersons(ctx context.Context) []string {
	s.logger.Info().Strs("names", s.opts.PersonNames).Msg("resolving person names")

	people, err := s.client.GetPeople(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch people directory")
		return nil
	}
	if len(people) == 0 {
		s.logger.Info().Msg("people directory is empty")
		return nil
	}

	index := s.buildPersonIndex(people)
	if len(index.exact) == 0 {
		s.logger.Warn().Int("entries", len(people)).Msg("no person entry had both a valid id and a name")
	}

	seen := make(map[string]struct{})
	var personIDs []string
	for _, name := range s.opts.PersonNames {
		id, found, foldedMatch := index.lookup(name)
		if !found {
			s.logger.Warn().Str("name", name).Msg("person not found on server")
			continue
		}
		if foldedMatch {
			s.logger.Info().Str("name", name).Str("person_id", id).Msg("resolved person via accent-insensitive match")
		} else {
			s.logger.Info().Str("name", name).Str("person_id", id).Msg("resolved person")
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		personIDs = append(personIDs, id)
	}

	if len(personIDs) == 0 && len(index.exact) > 0 {
		names := make([]string, 0, len(index.exact))
		for name := range index.exact {
			names = append(names, name)
		}
		sort.Strings(names)
		s.logger.Info().Strs("available", names).Msg("no configured name matched, these names exist on the server")
	}

	return personIDs
}
