package immich

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// defaultTimeout bounds every API call, including the large search pages.
const defaultTimeout = 60 * time.Second

// Client represents a client for the Immich API. All requests carry the
// API key; there is no session state to establish or tear down.
type Client struct {
	Url       string
	parsedURL *url.URL
	apiKey    string
	http      *http.Client
	logger    zerolog.Logger
}

// New creates a new Immich client for the given server URL and API key.
// A trailing slash on the URL is tolerated.
func New(rawURL, apiKey string, logger zerolog.Logger) (*Client, error) {
	apiURL := strings.TrimRight(rawURL, "/") + "/api"
	parsed, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Immich URL: %w", err)
	}

	return &Client{
		Url:       apiURL,
		parsedURL: parsed,
		apiKey:    apiKey,
		http:      &http.Client{Timeout: defaultTimeout},
		logger:    logger.With().Str("component", "immich").Logger(),
	}, nil
}

// resolveURL builds a full URL from the base API URL and the given path segments.
func (c *Client) resolveURL(pathSegments ...string) string {
	if len(pathSegments) == 0 {
		return c.parsedURL.String()
	}
	return c.parsedURL.JoinPath(pathSegments...).String()
}

// readErrorBody reads up to limit bytes of the response body for error messages.
// Returns a placeholder if reading fails (we're already in an error path).
func readErrorBody(r io.Reader, limit int) string {
	body, err := io.ReadAll(io.LimitReader(r, int64(limit)))
	if err != nil {
		return "(could not read error body)"
	}
	return string(body)
}
