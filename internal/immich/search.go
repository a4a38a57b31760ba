package immich

import "context"

// SearchPageSize is the number of assets requested per metadata search
// page. A response with fewer items marks the last page.
const SearchPageSize = 1000

// searchMetadataRequest is the body for the metadata search endpoint.
// Assets match only when tagged with every listed person.
type searchMetadataRequest struct {
	PersonIDs []string `json:"personIds"`
	Size      int      `json:"size"`
	Page      int      `json:"page"`
}

type searchMetadataResponse struct {
	Assets struct {
		Total int     `json:"total"`
		Count int     `json:"count"`
		Items []Asset `json:"items"`
	} `json:"assets"`
}

// SearchAssetsPage fetches one page of assets tagged with all the given
// person IDs. Pages start at 1.
func (c *Client) SearchAssetsPage(ctx context.Context, personIDs []string, page int) ([]Asset, error) {
	input := searchMetadataRequest{
		PersonIDs: personIDs,
		Size:      SearchPageSize,
		Page:      page,
	}

	result, err := doPostJSON[searchMetadataResponse](ctx, c, "search/metadata", input)
	if err != nil {
		return nil, err
	}
	return result.Assets.Items, nil
}
