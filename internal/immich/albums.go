package immich

import (
	"context"

	"github.com/goccy/go-json"
)

// albumResponse mirrors the album detail payload with the asset list kept
// raw so malformed entries can be skipped individually.
type albumResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"albumName"`
	Description string            `json:"description"`
	AssetCount  int               `json:"assetCount"`
	Shared      bool              `json:"shared"`
	OwnerID     string            `json:"ownerId"`
	CreatedAt   string            `json:"createdAt"`
	UpdatedAt   string            `json:"updatedAt"`
	Assets      []json.RawMessage `json:"assets"`
}

// GetAlbum retrieves a single album, including its assets, by ID.
func (c *Client) GetAlbum(ctx context.Context, albumID string) (*Album, error) {
	result, err := doGetJSON[albumResponse](ctx, c, "albums/"+albumID)
	if err != nil {
		return nil, err
	}

	return &Album{
		ID:          result.ID,
		Name:        result.Name,
		Description: result.Description,
		AssetCount:  result.AssetCount,
		Shared:      result.Shared,
		OwnerID:     result.OwnerID,
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.UpdatedAt,
		Assets:      decodeRecords[Asset](c.logger, result.Assets, "album asset"),
	}, nil
}

// GetAlbums retrieves all albums from Immich. The returned albums carry
// counts but not their asset lists.
func (c *Client) GetAlbums(ctx context.Context) ([]Album, error) {
	result, err := doGetJSON[[]Album](ctx, c, "albums")
	if err != nil {
		return nil, err
	}
	return *result, nil
}

// AddAssetsToAlbum adds assets to an album. Server versions differ in how
// they answer, so any 2xx status counts as success; the per-asset results
// are returned when the body parses and are nil otherwise.
func (c *Client) AddAssetsToAlbum(ctx context.Context, albumID string, assetIDs []string) ([]AddAssetResult, error) {
	if len(assetIDs) == 0 {
		return nil, nil
	}

	input := struct {
		IDs []string `json:"ids"`
	}{
		IDs: assetIDs,
	}

	body, err := doPutRaw(ctx, c, "albums/"+albumID+"/assets", input)
	if err != nil {
		return nil, err
	}

	var results []AddAssetResult
	if err := json.Unmarshal(body, &results); err != nil {
		c.logger.Debug().Int("bytes", len(body)).Msg("album update response was not JSON")
		return nil, nil
	}
	return results, nil
}
