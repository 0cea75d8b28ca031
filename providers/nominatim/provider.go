package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"synastry-service/datasource"
	"synastry-service/models"
)

// DefaultBaseURL is the public OpenStreetMap Nominatim endpoint.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// DefaultUserAgent identifies the service as Nominatim's usage policy asks.
const DefaultUserAgent = "synastry-service/1.0"

// NominatimSource is an implementation of the datasource.Provider interface for Nominatim
type NominatimSource struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// Ensure NominatimSource implements datasource.Provider
var _ datasource.Provider = (*NominatimSource)(nil)

// NewNominatimSource creates a new Nominatim data source. Empty arguments
// select the defaults.
func NewNominatimSource(baseURL, userAgent string, timeout time.Duration) *NominatimSource {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &NominatimSource{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name returns the name of this data source
func (n *NominatimSource) Name() string {
	return "Nominatim"
}

// nominatimPlace is one element of the search response array
type nominatimPlace struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Geocode resolves place to its best match
func (n *NominatimSource) Geocode(ctx context.Context, place string) (models.Location, error) {
	places, err := n.search(ctx, place, 1)
	if err != nil {
		return models.Location{}, err
	}
	if len(places) == 0 {
		return models.Location{}, fmt.Errorf("%s: %q: %w", n.Name(), place, datasource.ErrLocationUnresolved)
	}
	loc := places[0]
	loc.Query = place
	return loc, nil
}

// search calls /search and converts the results
func (n *NominatimSource) search(ctx context.Context, query string, limit int) ([]models.Location, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.client.Do(req)
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

	var places []nominatimPlace
	if err := json.Unmarshal(rawData, &places); err != nil {
		return nil, fmt.Errorf("failed to parse API response: %w", err)
	}

	out := make([]models.Location, 0, len(places))
	for _, p := range places {
		lat, err := strconv.ParseFloat(p.Lat, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse latitude %q: %w", p.Lat, err)
		}
		lon, err := strconv.ParseFloat(p.Lon, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse longitude %q: %w", p.Lon, err)
		}
		out = append(out, models.Location{
			DisplayName: p.DisplayName,
			Latitude:    lat,
			Longitude:   lon,
			Provider:    n.Name(),
		})
	}
	return out, nil
}
