package immich

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
)

// GetPeople retrieves the people directory from Immich. Current servers
// wrap the list in an object ({"people": [...]}), older ones return a bare
// array; both shapes are accepted. Entries that do not decode are skipped.
func (c *Client) GetPeople(ctx context.Context) ([]Person, error) {
	raw, err := doGetJSON[json.RawMessage](ctx, c, "people")
	if err != nil {
		return nil, err
	}

	var envelope struct {
		People []json.RawMessage `json:"people"`
	}
	var records []json.RawMessage
	if err := json.Unmarshal(*raw, &envelope); err == nil && envelope.People != nil {
		records = envelope.People
	} else if err := json.Unmarshal(*raw, &records); err != nil {
		return nil, fmt.Errorf("could not unmarshal people response: %w", err)
	}

	return decodeRecords[Person](c.logger, records, "person"), nil
}
