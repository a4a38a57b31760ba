package immich

// Person represents one entry of the Immich people directory.
type Person struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	BirthDate     string `json:"birthDate"`
	ThumbnailPath string `json:"thumbnailPath"`
	IsHidden      bool   `json:"isHidden"`
	IsFavorite    bool   `json:"isFavorite"`
	UpdatedAt     string `json:"updatedAt"`
}

// Asset represents a photo or video entry as returned by the metadata
// search and by album details.
type Asset struct {
	ID               string `json:"id"`
	Type             string `json:"type"`
	OriginalFileName string `json:"originalFileName"`
	OriginalPath     string `json:"originalPath"`
	OwnerID          string `json:"ownerId"`
	IsFavorite       bool   `json:"isFavorite"`
	IsArchived       bool   `json:"isArchived"`
	FileCreatedAt    string `json:"fileCreatedAt"`
	FileModifiedAt   string `json:"fileModifiedAt"`
}

// Album represents an Immich album. Assets is populated only by GetAlbum;
// the listing endpoint returns albums without their contents.
type Album struct {
	ID          string  `json:"id"`
	Name        string  `json:"albumName"`
	Description string  `json:"description"`
	AssetCount  int     `json:"assetCount"`
	Shared      bool    `json:"shared"`
	OwnerID     string  `json:"ownerId"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
	Assets      []Asset `json:"assets"`
}

// AddAssetResult is one entry of the bulk response from adding assets to
// an album. Error is typically "duplicate" for assets already present.
type AddAssetResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
