// Package geocode is a best-effort client for a Nominatim-style geocoding
// service. Lookups feed address suggestions in the booking form; failures
// never block booking, callers fall back to whatever text the user typed.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public Nominatim instance.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// MinQueryLength is the minimum input length before a suggestion lookup is
// issued; shorter queries return no suggestions without a network call.
const MinQueryLength = 3

const suggestionLimit = 5

// Suggestion is one candidate address returned for a free-text query.
type Suggestion struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Client queries the geocoding service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a geocoding client. An empty baseURL selects the default
// public instance.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Search returns up to five address suggestions for the query. Queries
// shorter than MinQueryLength return an empty list without a lookup.
func (c *Client) Search(ctx context.Context, query string) ([]Suggestion, error) {
	if len(query) < MinQueryLength {
		return nil, nil
	}

	params := url.Values{
		"format": {"json"},
		"q":      {query},
		"limit":  {fmt.Sprintf("%d", suggestionLimit)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode search: HTTP %d", resp.StatusCode)
	}

	var suggestions []Suggestion
	if err := json.NewDecoder(resp.Body).Decode(&suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// Reverse resolves coordinates to a display address. On any failure it
// returns the raw coordinates formatted as a string; a map click must always
// yield a usable location.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) string {
	fallback := fmt.Sprintf("%.6f, %.6f", lat, lon)

	params := url.Values{
		"format": {"json"},
		"lat":    {fmt.Sprintf("%f", lat)},
		"lon":    {fmt.Sprintf("%f", lon)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+params.Encode(), nil)
	if err != nil {
		return fallback
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fallback
	}

	var result struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil || result.DisplayName == "" {
		return fallback
	}
	return result.DisplayName
}
