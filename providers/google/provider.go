package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"synastry-service/datasource"
	"synastry-service/models"
)

// DefaultBaseURL is the Google Geocoding API endpoint.
const DefaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// ErrMissingAPIKey is returned when the source is used without a key.
var ErrMissingAPIKey = errors.New("google geocoding API key not configured")

// GoogleSource is an implementation of the datasource.Provider interface for the Google Geocoding API
type GoogleSource struct {
	apiKey   string
	baseURL  string
	language string
	client   *http.Client
}

// Ensure GoogleSource implements datasource.Provider
var _ datasource.Provider = (*GoogleSource)(nil)

// NewGoogleSource creates a new Google geocoding data source
func NewGoogleSource(apiKey, baseURL string, timeout time.Duration) *GoogleSource {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &GoogleSource{
		apiKey:   apiKey,
		baseURL:  baseURL,
		language: "en",
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name returns the name of this data source
func (g *GoogleSource) Name() string {
	return "Google"
}

// GoogleResponse represents the API response structure
type GoogleResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves place to its best match
func (g *GoogleSource) Geocode(ctx context.Context, place string) (models.Location, error) {
	locs, err := g.geocode(ctx, place)
	if err != nil {
		return models.Location{}, err
	}
	if len(locs) == 0 {
		return models.Location{}, fmt.Errorf("%s: %q: %w", g.Name(), place, datasource.ErrLocationUnresolved)
	}
	loc := locs[0]
	loc.Query = place
	return loc, nil
}

func (g *GoogleSource) geocode(ctx context.Context, address string) ([]models.Location, error) {
	if g.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	params := url.Values{}
	params.Set("address", address)
	params.Set("key", g.apiKey)
	params.Set("language", g.language)

	sep := "?"
	if strings.Contains(g.baseURL, "?") {
		sep = "&"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+sep+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned non-200 status: %d", resp.StatusCode)
	}

	rawData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var gResp GoogleResponse
	if err := json.Unmarshal(rawData, &gResp); err != nil {
		return nil, fmt.Errorf("failed to parse API response: %w", err)
	}

	switch gResp.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, nil
	default:
		return nil, fmt.Errorf("API returned status %s: %s", gResp.Status, gResp.ErrorMessage)
	}

	out := make([]models.Location, 0, len(gResp.Results))
	for _, r := range gResp.Results {
		out = append(out, models.Location{
			DisplayName: r.FormattedAddress,
			Latitude:    r.Geometry.Location.Lat,
			Longitude:   r.Geometry.Location.Lng,
			Provider:    g.Name(),
		})
	}
	return out, nil
}
